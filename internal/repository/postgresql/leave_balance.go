package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/shiftwise/workforce-backend-go/internal/domain/leave"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepository{db: db}
}

const leaveBalanceColumns = `
	id, employee_id, leave_type, year, allocated, used, remaining,
	created_at, updated_at
`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.LeaveType, &b.Year, &b.Allocated, &b.Used,
		&b.Remaining, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// GetByKey implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepository) GetByKey(ctx context.Context, employeeID, leaveType string, year int) (leave.LeaveBalance, error) {
	return r.getByKey(ctx, employeeID, leaveType, year, false)
}

// GetByKeyForUpdate implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepository) GetByKeyForUpdate(ctx context.Context, employeeID, leaveType string, year int) (leave.LeaveBalance, error) {
	return r.getByKey(ctx, employeeID, leaveType, year, true)
}

func (r *leaveBalanceRepository) getByKey(ctx context.Context, employeeID, leaveType string, year int, forUpdate bool) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	balance, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, leaveType, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return balance, nil
}

// Create implements leave.LeaveBalanceRepository. A conflict on the
// (employee, type, year) key returns ErrBalanceExists instead of raising
// a unique violation, so callers inside a transaction can read back the
// winner without aborting the transaction.
func (r *leaveBalanceRepository) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type, year, allocated, used)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, leave_type, year) DO NOTHING
		RETURNING ` + leaveBalanceColumns

	created, err := scanLeaveBalance(q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveType, balance.Year, balance.Allocated, balance.Used,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceExists
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	return created, nil
}

// SetUsed implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepository) SetUsed(ctx context.Context, id string, used float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, used)
	if err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}

// ListByEmployeeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepository) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		b, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}
