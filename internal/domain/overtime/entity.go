package overtime

import (
	"time"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// OvertimeRequest follows the same terminal two-state machine as leave
// requests but never touches the leave ledger. Approved hours become
// billable overtime for the payroll cycle covering the date.
type OvertimeRequest struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	Hours       float64
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
