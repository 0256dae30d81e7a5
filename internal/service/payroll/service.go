package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/config"
	"github.com/shiftwise/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise/workforce-backend-go/internal/domain/overtime"
	"github.com/shiftwise/workforce-backend-go/internal/domain/payroll"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise/workforce-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

// PayrollServiceImpl owns the cycle lifecycle and is the only writer of
// wage computations. Processing runs at snapshot isolation so check-outs
// arriving mid-run cannot produce partially-reflected sums.
type PayrollServiceImpl struct {
	db *database.DB
	payroll.PayrollRepository
	employee.EmployeeRepository
	overtimeRepository  overtime.OvertimeRequestRepository
	notificationService notification.Service
	cfg                 config.PayrollConfig
}

func NewPayrollService(
	db *database.DB,
	payrollRepository payroll.PayrollRepository,
	employeeRepository employee.EmployeeRepository,
	overtimeRepository overtime.OvertimeRequestRepository,
	notificationService notification.Service,
	cfg config.PayrollConfig,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                  db,
		PayrollRepository:   payrollRepository,
		EmployeeRepository:  employeeRepository,
		overtimeRepository:  overtimeRepository,
		notificationService: notificationService,
		cfg:                 cfg,
	}
}

// CreateCycle implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreateCycle(ctx context.Context, req payroll.CreateCycleRequest) (payroll.CycleResponse, error) {
	start, end, err := req.Validate()
	if err != nil {
		return payroll.CycleResponse{}, err
	}

	var cycle payroll.PayrollCycle

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		overlaps, err := s.PayrollRepository.HasOverlappingCycle(txCtx, start, end)
		if err != nil {
			return err
		}
		if overlaps {
			return payroll.ErrCycleOverlap
		}

		cycle, err = s.PayrollRepository.CreateCycle(txCtx, payroll.PayrollCycle{
			StartDate: start,
			EndDate:   end,
		})
		return err
	})
	if err != nil {
		return payroll.CycleResponse{}, err
	}

	return toCycleResponse(cycle), nil
}

// ProcessCycle implements payroll.PayrollService.
func (s *PayrollServiceImpl) ProcessCycle(ctx context.Context, cycleID string) (payroll.CycleResponse, error) {
	var cycle payroll.PayrollCycle

	err := postgresql.WithSnapshotTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		cycle, err = s.PayrollRepository.GetCycleByIDForUpdate(txCtx, cycleID)
		if err != nil {
			return err
		}

		switch cycle.State {
		case payroll.CycleStateOpen, payroll.CycleStateClosed:
			// Processing from closed recomputes; the upsert replaces the
			// previous figures.
		case payroll.CycleStateConfirmed:
			return payroll.ErrCycleLocked
		default:
			return payroll.ErrInvalidCycleState
		}

		if err := s.PayrollRepository.SetCycleState(txCtx, cycle.ID, payroll.CycleStateProcessing); err != nil {
			return err
		}

		if err := s.computeCycle(txCtx, cycle); err != nil {
			return err
		}

		if err := s.PayrollRepository.SetCycleState(txCtx, cycle.ID, payroll.CycleStateClosed); err != nil {
			return err
		}

		cycle.State = payroll.CycleStateClosed
		return nil
	})
	if err != nil {
		return payroll.CycleResponse{}, err
	}

	return toCycleResponse(cycle), nil
}

func (s *PayrollServiceImpl) computeCycle(ctx context.Context, cycle payroll.PayrollCycle) error {
	totals, err := s.PayrollRepository.GetAttendanceTotals(ctx, cycle.StartDate, cycle.EndDate)
	if err != nil {
		return err
	}

	approvedOvertime, err := s.overtimeRepository.SumApprovedHoursInRange(ctx, cycle.StartDate, cycle.EndDate)
	if err != nil {
		return err
	}

	for _, t := range totals {
		emp, err := s.EmployeeRepository.GetByID(ctx, t.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to load employee %s for wage computation: %w", t.EmployeeID, err)
		}

		in := deriveOvertime(t.DayHours, t.NightHours, approvedOvertime[t.EmployeeID], emp.WeeklyHoursCap)
		amount := computeAmount(emp, in, s.cfg)

		if _, err := s.PayrollRepository.UpsertWageComputation(ctx, payroll.WageComputation{
			CycleID:        cycle.ID,
			EmployeeID:     t.EmployeeID,
			DayHours:       in.DayHours,
			NightHours:     in.NightHours,
			OvertimeHours:  in.OvertimeHours,
			ComputedAmount: amount,
		}); err != nil {
			return err
		}
	}

	return nil
}

// CloseCycle implements payroll.PayrollService.
func (s *PayrollServiceImpl) CloseCycle(ctx context.Context, cycleID string) (payroll.CycleResponse, error) {
	return s.ProcessCycle(ctx, cycleID)
}

// ConfirmCycle implements payroll.PayrollService.
func (s *PayrollServiceImpl) ConfirmCycle(ctx context.Context, cycleID string) (payroll.CycleResponse, error) {
	var cycle payroll.PayrollCycle
	var recipients []string

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		cycle, err = s.PayrollRepository.GetCycleByIDForUpdate(txCtx, cycleID)
		if err != nil {
			return err
		}

		if cycle.State != payroll.CycleStateClosed {
			if cycle.State == payroll.CycleStateConfirmed {
				return payroll.ErrCycleLocked
			}
			return payroll.ErrInvalidCycleState
		}

		if err := s.PayrollRepository.SetCycleState(txCtx, cycle.ID, payroll.CycleStateConfirmed); err != nil {
			return err
		}

		comps, err := s.PayrollRepository.ListWageComputationsByCycle(txCtx, cycle.ID)
		if err != nil {
			return err
		}
		for _, c := range comps {
			recipients = append(recipients, c.EmployeeID)
		}

		cycle.State = payroll.CycleStateConfirmed
		return nil
	})
	if err != nil {
		return payroll.CycleResponse{}, err
	}

	for _, recipientID := range recipients {
		_ = s.notificationService.Queue(ctx, notification.CreateNotificationRequest{
			RecipientID: recipientID,
			Type:        notification.TypePayrollProcessed,
			Title:       "Payroll confirmed",
			Message:     fmt.Sprintf("Your wages for %s to %s have been confirmed.", cycle.StartDate.Format("2006-01-02"), cycle.EndDate.Format("2006-01-02")),
			Data:        map[string]interface{}{"cycle_id": cycle.ID},
		})
	}

	return toCycleResponse(cycle), nil
}

// GetCycle implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetCycle(ctx context.Context, cycleID string) (payroll.CycleResponse, error) {
	cycle, err := s.PayrollRepository.GetCycleByID(ctx, cycleID)
	if err != nil {
		return payroll.CycleResponse{}, err
	}
	return toCycleResponse(cycle), nil
}

// ListCycles implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListCycles(ctx context.Context, filter payroll.CycleFilter) (payroll.ListCycleResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	cycles, total, err := s.PayrollRepository.ListCycles(ctx, filter)
	if err != nil {
		return payroll.ListCycleResponse{}, err
	}

	responses := make([]payroll.CycleResponse, 0, len(cycles))
	for _, c := range cycles {
		responses = append(responses, toCycleResponse(c))
	}

	return payroll.ListCycleResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Cycles:     responses,
	}, nil
}

// ListComputations implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListComputations(ctx context.Context, cycleID string) ([]payroll.WageComputationResponse, error) {
	if _, err := s.PayrollRepository.GetCycleByID(ctx, cycleID); err != nil {
		return nil, err
	}

	comps, err := s.PayrollRepository.ListWageComputationsByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.WageComputationResponse, 0, len(comps))
	for _, c := range comps {
		responses = append(responses, toWageComputationResponse(c))
	}

	return responses, nil
}

// GetWageSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetWageSummary(ctx context.Context, employeeID string, start, end time.Time) (payroll.WageSummaryResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return payroll.WageSummaryResponse{}, err
	}

	comps, err := s.PayrollRepository.ListWageComputationsForEmployee(ctx, employeeID, start, end)
	if err != nil {
		return payroll.WageSummaryResponse{}, err
	}

	summary := payroll.WageSummaryResponse{
		EmployeeID: employeeID,
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
	}

	total := decimal.Zero
	for _, c := range comps {
		total = total.Add(c.ComputedAmount)
		summary.DayHours += c.DayHours
		summary.NightHours += c.NightHours
		summary.OvertimeHours += c.OvertimeHours
		summary.Computations = append(summary.Computations, toWageComputationResponse(c))
	}
	summary.TotalAmount = total.StringFixed(2)

	return summary, nil
}

// ProcessDueCycles implements payroll.PayrollService.
func (s *PayrollServiceImpl) ProcessDueCycles(ctx context.Context) error {
	due, err := s.PayrollRepository.ListDueCycles(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, cycle := range due {
		if _, err := s.ProcessCycle(ctx, cycle.ID); err != nil {
			slog.Error("failed to process due payroll cycle",
				"cycle_id", cycle.ID,
				"error", err,
			)
			continue
		}
		slog.Info("processed due payroll cycle",
			"cycle_id", cycle.ID,
			"start_date", cycle.StartDate.Format("2006-01-02"),
			"end_date", cycle.EndDate.Format("2006-01-02"),
		)
	}

	return nil
}

func toCycleResponse(c payroll.PayrollCycle) payroll.CycleResponse {
	return payroll.CycleResponse{
		ID:        c.ID,
		StartDate: c.StartDate.Format("2006-01-02"),
		EndDate:   c.EndDate.Format("2006-01-02"),
		State:     string(c.State),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func toWageComputationResponse(c payroll.WageComputation) payroll.WageComputationResponse {
	resp := payroll.WageComputationResponse{
		ID:             c.ID,
		CycleID:        c.CycleID,
		EmployeeID:     c.EmployeeID,
		DayHours:       c.DayHours,
		NightHours:     c.NightHours,
		OvertimeHours:  c.OvertimeHours,
		ComputedAmount: c.ComputedAmount.StringFixed(2),
	}
	if c.EmployeeName != nil {
		resp.EmployeeName = *c.EmployeeName
	}
	return resp
}
