package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetOpen returns the employee's open record (checked in, not checked
	// out), or ErrNoOpenCheckIn.
	GetOpen(ctx context.Context, employeeID string) (Attendance, error)

	// GetByEmployeeAndDate retrieves attendance for a specific employee on
	// a specific work day; nil when absent.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, attendance Attendance) error

	// MarkLeaveTaken flips records already marked absent inside the range
	// to on_leave. Returns the number of records updated.
	MarkLeaveTaken(ctx context.Context, employeeID string, start, end time.Time) (int64, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
}
