package payroll

import (
	"context"
	"time"
)

// PayrollService owns the payroll cycle lifecycle and wage computations.
type PayrollService interface {
	CreateCycle(ctx context.Context, req CreateCycleRequest) (CycleResponse, error)

	// ProcessCycle aggregates attendance for the cycle's range into one
	// wage computation per employee and moves the cycle to closed.
	// Permitted from open and closed (recomputation); fails with
	// ErrCycleLocked on a confirmed cycle. Recomputation is idempotent.
	ProcessCycle(ctx context.Context, cycleID string) (CycleResponse, error)

	// CloseCycle processes the cycle if needed and leaves it closed; the
	// operator-facing alias for the processing phase.
	CloseCycle(ctx context.Context, cycleID string) (CycleResponse, error)

	// ConfirmCycle moves closed -> confirmed, after which every wage
	// computation under the cycle is immutable.
	ConfirmCycle(ctx context.Context, cycleID string) (CycleResponse, error)

	GetCycle(ctx context.Context, cycleID string) (CycleResponse, error)
	ListCycles(ctx context.Context, filter CycleFilter) (ListCycleResponse, error)
	ListComputations(ctx context.Context, cycleID string) ([]WageComputationResponse, error)

	// GetWageSummary is the read-only projection behind getWageSummary.
	GetWageSummary(ctx context.Context, employeeID string, start, end time.Time) (WageSummaryResponse, error)

	// ProcessDueCycles processes every open cycle whose end date has
	// passed; invoked by the periodic job.
	ProcessDueCycles(ctx context.Context) error
}
