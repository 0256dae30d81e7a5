package attendance

import (
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Location string `json:"location"`
	// Timestamp overrides the server clock when a kiosk forwards a
	// buffered event. RFC 3339; empty means "now".
	Timestamp string `json:"timestamp,omitempty"`
}

func (r CheckInRequest) Validate() (time.Time, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Location) {
		errs = append(errs, validator.ValidationError{Field: "location", Message: "location is required"})
	}

	var ts time.Time
	if r.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "must be RFC 3339"})
		}
		ts = parsed
	}

	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return ts, nil
}

type CheckOutRequest struct {
	Notes     string `json:"notes,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (r CheckOutRequest) Validate() (time.Time, error) {
	var ts time.Time
	if r.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			return time.Time{}, validator.ValidationErrors{
				{Field: "timestamp", Message: "must be RFC 3339"},
			}
		}
		ts = parsed
	}
	return ts, nil
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name,omitempty"`
	Date         string   `json:"date"`
	CheckInTime  *string  `json:"check_in_time"`
	CheckOutTime *string  `json:"check_out_time"`
	DayHours     *float64 `json:"day_hours"`
	NightHours   *float64 `json:"night_hours"`
	Punctuality  *string  `json:"punctuality"`
	Status       string   `json:"status"`
	Location     *string  `json:"location,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

type AttendanceFilter struct {
	EmployeeID string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     string
	Page       int
	Limit      int
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Attendances []AttendanceResponse `json:"attendances"`
}
