package schedule

import (
	"context"
	"time"
)

type ShiftScheduleRepository interface {
	// GetByEmployeeAndDate returns the shift assigned to the employee for
	// the given work day, or ErrShiftNotFound.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (ShiftSchedule, error)
}
