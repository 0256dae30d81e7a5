package attendance

import (
	"time"
)

// Attendance is one record per (employee, date). Created on check-in,
// finalized on check-out or by leave reconciliation, never deleted.
type Attendance struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	ShiftScheduleID *string
	CheckIn         *time.Time
	CheckOut        *time.Time
	DayHours        *float64
	NightHours      *float64
	Punctuality     *string
	Status          Status
	Location        *string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined
	EmployeeName *string
}

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusOnLeave Status = "on_leave"
)
