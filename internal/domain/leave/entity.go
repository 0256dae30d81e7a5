package leave

import (
	"time"
)

// LeaveType is a configured category of leave. Whether a type consumes
// the paid allocation is policy data, not code: only paid_leave deducts
// by default, the rest are tracked for reporting.
type LeaveType struct {
	Code           string
	Name           string
	DeductsBalance bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const TypePaidLeave = "paid_leave"

// LeaveBalance is the per-(employee, type, year) ledger record.
// Remaining = Allocated - Used and never goes negative; the ledger is
// the only writer.
type LeaveBalance struct {
	ID         string
	EmployeeID string
	LeaveType  string
	Year       int
	Allocated  float64
	Used       float64
	Remaining  float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// LeaveRequest transitions pending -> approved or pending -> rejected,
// both terminal.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveType   string
	StartDate   time.Time
	EndDate     time.Time
	HalfDay     bool
	Reason      string
	Status      RequestStatus
	ReviewedBy  *string
	ReviewedAt  *time.Time
	ReviewNotes *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined
	EmployeeName *string
}

// DayCount returns the number of leave days the request consumes:
// calendar days inclusive, or 0.5 for a half-day request regardless of
// span.
func (r LeaveRequest) DayCount() float64 {
	if r.HalfDay {
		return 0.5
	}
	return float64(int(r.EndDate.Sub(r.StartDate).Hours()/24)) + 1
}
