package overtime

import (
	"context"
	"time"
)

type OvertimeRequestRepository interface {
	Create(ctx context.Context, request OvertimeRequest) (OvertimeRequest, error)

	GetByID(ctx context.Context, id string) (OvertimeRequest, error)

	// GetByIDForUpdate locks the request row; only valid inside a
	// transaction.
	GetByIDForUpdate(ctx context.Context, id string) (OvertimeRequest, error)

	SetStatus(ctx context.Context, id string, status RequestStatus, reviewedBy string, reviewedAt time.Time, notes *string) error

	List(ctx context.Context, filter RequestFilter) ([]OvertimeRequest, int64, error)

	// SumApprovedHoursInRange aggregates approved overtime hours per
	// employee over [start, end], for the payroll engine.
	SumApprovedHoursInRange(ctx context.Context, start, end time.Time) (map[string]float64, error)
}
