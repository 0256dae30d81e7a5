package leave

import (
	"context"
	"time"
)

type LeaveTypeRepository interface {
	GetByCode(ctx context.Context, code string) (LeaveType, error)
	GetActive(ctx context.Context) ([]LeaveType, error)
}

type LeaveBalanceRepository interface {
	// GetByKey returns the balance row, or ErrBalanceNotFound.
	GetByKey(ctx context.Context, employeeID, leaveType string, year int) (LeaveBalance, error)

	// GetByKeyForUpdate locks the row for the duration of the enclosing
	// transaction. Callers outside a transaction must not use it.
	GetByKeyForUpdate(ctx context.Context, employeeID, leaveType string, year int) (LeaveBalance, error)

	// Create inserts a balance with the given allocation and zero usage.
	// When the key already exists it returns ErrBalanceExists without
	// raising a constraint violation, so a caller losing the creation
	// race can read back the winner even mid-transaction.
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)

	// SetUsed writes the new used figure for a locked row.
	SetUsed(ctx context.Context, id string, used float64) error

	// ListByEmployeeYear lists all balances an employee holds for a year.
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// GetByIDForUpdate locks the request row so that two concurrent
	// reviews serialize; only valid inside a transaction.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)

	// SetStatus records the terminal transition and review metadata.
	SetStatus(ctx context.Context, id string, status RequestStatus, reviewedBy string, reviewedAt time.Time, notes *string) error

	List(ctx context.Context, filter RequestFilter) ([]LeaveRequest, int64, error)
}
