package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveApproved    NotificationType = "leave_approved"
	TypeLeaveRejected    NotificationType = "leave_rejected"
	TypeOvertimeApproved NotificationType = "overtime_approved"
	TypeOvertimeRejected NotificationType = "overtime_rejected"
	TypeLowLeaveBalance  NotificationType = "low_leave_balance"
	TypePayrollProcessed NotificationType = "payroll_processed"
)

// Notification rows are created by this engine; ownership transfers to
// the messaging collaborator once written. Delivery failures are its
// concern, never fatal to the transaction that created the row.
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
