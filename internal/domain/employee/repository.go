package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetActive lists all active employees.
	GetActive(ctx context.Context) ([]Employee, error)

	// UpdateWageConfig updates the only employee fields this engine owns.
	UpdateWageConfig(ctx context.Context, id string, cfg WageConfig) error
}
