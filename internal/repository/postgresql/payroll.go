package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/domain/payroll"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollCycleColumns = `
	id, start_date, end_date, state, created_at, updated_at
`

func scanPayrollCycle(row pgx.Row) (payroll.PayrollCycle, error) {
	var c payroll.PayrollCycle
	err := row.Scan(&c.ID, &c.StartDate, &c.EndDate, &c.State, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateCycle implements payroll.PayrollRepository.
func (r *payrollRepository) CreateCycle(ctx context.Context, cycle payroll.PayrollCycle) (payroll.PayrollCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_cycles (start_date, end_date)
		VALUES ($1, $2)
		RETURNING ` + payrollCycleColumns

	created, err := scanPayrollCycle(q.QueryRow(ctx, query, cycle.StartDate, cycle.EndDate))
	if err != nil {
		return payroll.PayrollCycle{}, fmt.Errorf("failed to create payroll cycle: %w", err)
	}

	return created, nil
}

// GetCycleByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetCycleByID(ctx context.Context, id string) (payroll.PayrollCycle, error) {
	return r.getCycleByID(ctx, id, false)
}

// GetCycleByIDForUpdate implements payroll.PayrollRepository.
func (r *payrollRepository) GetCycleByIDForUpdate(ctx context.Context, id string) (payroll.PayrollCycle, error) {
	return r.getCycleByID(ctx, id, true)
}

func (r *payrollRepository) getCycleByID(ctx context.Context, id string, forUpdate bool) (payroll.PayrollCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollCycleColumns + `
		FROM payroll_cycles
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	cycle, err := scanPayrollCycle(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollCycle{}, payroll.ErrCycleNotFound
		}
		return payroll.PayrollCycle{}, fmt.Errorf("failed to get payroll cycle: %w", err)
	}

	return cycle, nil
}

// SetCycleState implements payroll.PayrollRepository.
func (r *payrollRepository) SetCycleState(ctx context.Context, id string, state payroll.CycleState) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_cycles
		SET state = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, state)
	if err != nil {
		return fmt.Errorf("failed to update payroll cycle state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrCycleNotFound
	}

	return nil
}

// ListCycles implements payroll.PayrollRepository.
func (r *payrollRepository) ListCycles(ctx context.Context, filter payroll.CycleFilter) ([]payroll.PayrollCycle, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := make([]any, 0, 3)
	argPos := 1

	if filter.State != "" {
		where += fmt.Sprintf(" AND state = $%d", argPos)
		args = append(args, filter.State)
		argPos++
	}

	countQuery := "SELECT COUNT(*) FROM payroll_cycles" + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll cycles: %w", err)
	}

	query := `
		SELECT ` + payrollCycleColumns + `
		FROM payroll_cycles
	` + where + fmt.Sprintf(" ORDER BY start_date DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll cycles: %w", err)
	}
	defer rows.Close()

	cycles := make([]payroll.PayrollCycle, 0)
	for rows.Next() {
		c, err := scanPayrollCycle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll cycle: %w", err)
		}
		cycles = append(cycles, c)
	}

	return cycles, total, rows.Err()
}

// ListDueCycles implements payroll.PayrollRepository.
func (r *payrollRepository) ListDueCycles(ctx context.Context, asOf time.Time) ([]payroll.PayrollCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollCycleColumns + `
		FROM payroll_cycles
		WHERE state = 'open' AND end_date < $1
		ORDER BY end_date
	`

	rows, err := q.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list due payroll cycles: %w", err)
	}
	defer rows.Close()

	cycles := make([]payroll.PayrollCycle, 0)
	for rows.Next() {
		c, err := scanPayrollCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll cycle: %w", err)
		}
		cycles = append(cycles, c)
	}

	return cycles, rows.Err()
}

// HasOverlappingCycle implements payroll.PayrollRepository.
func (r *payrollRepository) HasOverlappingCycle(ctx context.Context, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_cycles
			WHERE start_date <= $2 AND end_date >= $1
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check cycle overlap: %w", err)
	}

	return exists, nil
}

// GetAttendanceTotals implements payroll.PayrollRepository.
func (r *payrollRepository) GetAttendanceTotals(ctx context.Context, start, end time.Time) ([]payroll.AttendanceTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, COALESCE(SUM(day_hours), 0), COALESCE(SUM(night_hours), 0)
		FROM attendances
		WHERE check_out IS NOT NULL AND date BETWEEN $1 AND $2
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attendance totals: %w", err)
	}
	defer rows.Close()

	totals := make([]payroll.AttendanceTotals, 0)
	for rows.Next() {
		var t payroll.AttendanceTotals
		if err := rows.Scan(&t.EmployeeID, &t.DayHours, &t.NightHours); err != nil {
			return nil, fmt.Errorf("failed to scan attendance totals: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

// UpsertWageComputation implements payroll.PayrollRepository.
func (r *payrollRepository) UpsertWageComputation(ctx context.Context, comp payroll.WageComputation) (payroll.WageComputation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wage_computations (cycle_id, employee_id, day_hours, night_hours, overtime_hours, computed_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (cycle_id, employee_id) DO UPDATE SET
			day_hours = EXCLUDED.day_hours,
			night_hours = EXCLUDED.night_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			computed_amount = EXCLUDED.computed_amount,
			updated_at = NOW()
		RETURNING id, cycle_id, employee_id, day_hours, night_hours, overtime_hours,
			computed_amount, created_at, updated_at
	`

	var out payroll.WageComputation
	err := q.QueryRow(ctx, query,
		comp.CycleID, comp.EmployeeID, comp.DayHours, comp.NightHours,
		comp.OvertimeHours, comp.ComputedAmount,
	).Scan(
		&out.ID, &out.CycleID, &out.EmployeeID, &out.DayHours, &out.NightHours,
		&out.OvertimeHours, &out.ComputedAmount, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return payroll.WageComputation{}, fmt.Errorf("failed to upsert wage computation: %w", err)
	}

	return out, nil
}

// ListWageComputationsByCycle implements payroll.PayrollRepository.
func (r *payrollRepository) ListWageComputationsByCycle(ctx context.Context, cycleID string) ([]payroll.WageComputation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT wc.id, wc.cycle_id, wc.employee_id, wc.day_hours, wc.night_hours,
			wc.overtime_hours, wc.computed_amount, wc.created_at, wc.updated_at,
			e.full_name
		FROM wage_computations wc
		JOIN employees e ON e.id = wc.employee_id
		WHERE wc.cycle_id = $1
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wage computations: %w", err)
	}
	defer rows.Close()

	return collectWageComputations(rows)
}

// ListWageComputationsForEmployee implements payroll.PayrollRepository.
func (r *payrollRepository) ListWageComputationsForEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]payroll.WageComputation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT wc.id, wc.cycle_id, wc.employee_id, wc.day_hours, wc.night_hours,
			wc.overtime_hours, wc.computed_amount, wc.created_at, wc.updated_at,
			e.full_name
		FROM wage_computations wc
		JOIN employees e ON e.id = wc.employee_id
		JOIN payroll_cycles pc ON pc.id = wc.cycle_id
		WHERE wc.employee_id = $1 AND pc.start_date <= $3 AND pc.end_date >= $2
		ORDER BY pc.start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list wage computations: %w", err)
	}
	defer rows.Close()

	return collectWageComputations(rows)
}

func collectWageComputations(rows pgx.Rows) ([]payroll.WageComputation, error) {
	comps := make([]payroll.WageComputation, 0)
	for rows.Next() {
		var wc payroll.WageComputation
		err := rows.Scan(
			&wc.ID, &wc.CycleID, &wc.EmployeeID, &wc.DayHours, &wc.NightHours,
			&wc.OvertimeHours, &wc.ComputedAmount, &wc.CreatedAt, &wc.UpdatedAt,
			&wc.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wage computation: %w", err)
		}
		comps = append(comps, wc)
	}
	return comps, rows.Err()
}
