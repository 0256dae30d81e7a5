package response

import (
	"errors"
	"net/http"

	"github.com/shiftwise/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise/workforce-backend-go/internal/domain/leave"
	"github.com/shiftwise/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise/workforce-backend-go/internal/domain/overtime"
	"github.com/shiftwise/workforce-backend-go/internal/domain/payroll"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/timeclass"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "An open attendance record already exists")
	case errors.Is(err, attendance.ErrNoOpenCheckIn):
		Conflict(w, "No open check-in found")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, "Attendance already recorded for this date")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, timeclass.ErrInvalidInterval):
		BadRequest(w, "Check-out must be after check-in", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		Conflict(w, "Insufficient leave balance")
	case errors.Is(err, leave.ErrRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Overtime domain errors
	case errors.Is(err, overtime.ErrOvertimeRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrRequestAlreadyProcessed):
		Conflict(w, "Overtime request already processed")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrCycleNotFound):
		NotFound(w, "Payroll cycle not found")
	case errors.Is(err, payroll.ErrCycleLocked):
		Conflict(w, "Payroll cycle is confirmed and locked")
	case errors.Is(err, payroll.ErrInvalidCycleState):
		Conflict(w, "Operation not permitted in the cycle's current state")
	case errors.Is(err, payroll.ErrCycleOverlap):
		Conflict(w, "Payroll cycle overlaps an existing cycle")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
