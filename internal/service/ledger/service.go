package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shiftwise/workforce-backend-go/internal/config"
	"github.com/shiftwise/workforce-backend-go/internal/domain/leave"
	"github.com/shiftwise/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise/workforce-backend-go/internal/repository/postgresql"
)

// LedgerServiceImpl is the only writer of leave balances. Every mutation
// runs under a row lock on the (employee, type, year) key, so concurrent
// debits against the same balance serialize.
type LedgerServiceImpl struct {
	db *database.DB
	leave.LeaveBalanceRepository
	notificationService notification.Service
	cfg                 config.LeaveConfig
}

func NewLedgerService(
	db *database.DB,
	balanceRepository leave.LeaveBalanceRepository,
	notificationService notification.Service,
	cfg config.LeaveConfig,
) leave.LedgerService {
	return &LedgerServiceImpl{
		db:                     db,
		LeaveBalanceRepository: balanceRepository,
		notificationService:    notificationService,
		cfg:                    cfg,
	}
}

// GetOrCreate implements leave.LedgerService.
func (s *LedgerServiceImpl) GetOrCreate(ctx context.Context, employeeID, leaveType string, year int) (leave.LeaveBalance, error) {
	balance, err := s.LeaveBalanceRepository.GetByKey(ctx, employeeID, leaveType, year)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.LeaveBalance{}, err
	}

	created, err := s.LeaveBalanceRepository.Create(ctx, leave.LeaveBalance{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		Year:       year,
		Allocated:  s.cfg.DefaultAllocationDays,
		Used:       0,
	})
	if err != nil {
		// A concurrent caller created the row first; the insert is
		// conflict-tolerant, so reading back the winner is safe even
		// inside an enclosing transaction.
		if errors.Is(err, leave.ErrBalanceExists) {
			return s.LeaveBalanceRepository.GetByKey(ctx, employeeID, leaveType, year)
		}
		return leave.LeaveBalance{}, err
	}

	return created, nil
}

// Debit implements leave.LedgerService.
func (s *LedgerServiceImpl) Debit(ctx context.Context, employeeID, leaveType string, year int, days float64) (leave.LeaveBalance, error) {
	if days <= 0 {
		return leave.LeaveBalance{}, fmt.Errorf("debit days must be positive, got %v", days)
	}

	var balance leave.LeaveBalance

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if _, err := s.GetOrCreate(txCtx, employeeID, leaveType, year); err != nil {
			return err
		}

		locked, err := s.LeaveBalanceRepository.GetByKeyForUpdate(txCtx, employeeID, leaveType, year)
		if err != nil {
			return err
		}

		if locked.Remaining < days {
			return leave.ErrInsufficientBalance
		}

		if err := s.LeaveBalanceRepository.SetUsed(txCtx, locked.ID, locked.Used+days); err != nil {
			return err
		}

		balance, err = s.LeaveBalanceRepository.GetByKey(txCtx, employeeID, leaveType, year)
		if err != nil {
			return err
		}

		if locked.Remaining >= s.cfg.LowBalanceThreshold && balance.Remaining < s.cfg.LowBalanceThreshold {
			remaining := balance.Remaining
			// The warning waits for the outermost commit; a rollback of
			// an enclosing approval discards it. Queued on a fresh
			// context since the hook outlives the transaction. Fire and
			// forget, a lost warning is not worth failing the debit.
			postgresql.AfterCommit(txCtx, func() {
				_ = s.notificationService.Queue(context.Background(), notification.CreateNotificationRequest{
					RecipientID: employeeID,
					Type:        notification.TypeLowLeaveBalance,
					Title:       "Leave balance running low",
					Message:     fmt.Sprintf("Your %s balance for %d is down to %.1f day(s).", leaveType, year, remaining),
					Data: map[string]interface{}{
						"leave_type": leaveType,
						"year":       year,
						"remaining":  remaining,
					},
				})
			})
		}
		return nil
	})
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return balance, nil
}

// Credit implements leave.LedgerService.
func (s *LedgerServiceImpl) Credit(ctx context.Context, employeeID, leaveType string, year int, days float64) (leave.LeaveBalance, error) {
	if days <= 0 {
		return leave.LeaveBalance{}, fmt.Errorf("credit days must be positive, got %v", days)
	}

	var balance leave.LeaveBalance

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		locked, err := s.LeaveBalanceRepository.GetByKeyForUpdate(txCtx, employeeID, leaveType, year)
		if err != nil {
			return err
		}

		used := locked.Used - days
		if used < 0 {
			used = 0
		}

		if err := s.LeaveBalanceRepository.SetUsed(txCtx, locked.ID, used); err != nil {
			return err
		}

		balance, err = s.LeaveBalanceRepository.GetByKey(txCtx, employeeID, leaveType, year)
		return err
	})
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return balance, nil
}

// GetBalances implements leave.LedgerService.
func (s *LedgerServiceImpl) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	balances, err := s.LeaveBalanceRepository.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.BalanceResponse{
			EmployeeID: b.EmployeeID,
			LeaveType:  b.LeaveType,
			Year:       b.Year,
			Allocated:  b.Allocated,
			Used:       b.Used,
			Remaining:  b.Remaining,
		})
	}

	return responses, nil
}
