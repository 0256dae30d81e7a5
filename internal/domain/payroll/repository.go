package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	CreateCycle(ctx context.Context, cycle PayrollCycle) (PayrollCycle, error)

	GetCycleByID(ctx context.Context, id string) (PayrollCycle, error)

	// GetCycleByIDForUpdate locks the cycle row for the enclosing
	// transaction, serializing state transitions.
	GetCycleByIDForUpdate(ctx context.Context, id string) (PayrollCycle, error)

	SetCycleState(ctx context.Context, id string, state CycleState) error

	ListCycles(ctx context.Context, filter CycleFilter) ([]PayrollCycle, int64, error)

	// ListDueCycles returns open cycles whose end date has passed, for
	// the periodic processing job.
	ListDueCycles(ctx context.Context, asOf time.Time) ([]PayrollCycle, error)

	// HasOverlappingCycle reports whether any cycle intersects the range.
	HasOverlappingCycle(ctx context.Context, start, end time.Time) (bool, error)

	// GetAttendanceTotals aggregates classified hours per employee over
	// [start, end] from finalized attendance records.
	GetAttendanceTotals(ctx context.Context, start, end time.Time) ([]AttendanceTotals, error)

	// UpsertWageComputation writes the per-employee result; recomputation
	// replaces the previous figures for the same (cycle, employee).
	UpsertWageComputation(ctx context.Context, comp WageComputation) (WageComputation, error)

	ListWageComputationsByCycle(ctx context.Context, cycleID string) ([]WageComputation, error)

	// ListWageComputationsForEmployee returns computations whose owning
	// cycle intersects [start, end], newest first.
	ListWageComputationsForEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]WageComputation, error)
}
