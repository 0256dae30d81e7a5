package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens the employee's attendance record for the day.
	// Fails with ErrAlreadyCheckedIn when an open record exists.
	CheckIn(ctx context.Context, employeeID string, ts time.Time, location string) (AttendanceResponse, error)

	// CheckOut closes the open record and classifies the worked hours.
	// Fails with ErrNoOpenCheckIn when none exists.
	CheckOut(ctx context.Context, employeeID string, ts time.Time, notes string) (AttendanceResponse, error)

	// GetMyAttendance retrieves records for one employee.
	GetMyAttendance(ctx context.Context, employeeID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves records with filters (admin/manager).
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
