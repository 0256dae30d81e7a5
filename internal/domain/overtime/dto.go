package overtime

import (
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/pkg/validator"
)

type CreateOvertimeRequestRequest struct {
	Date   string  `json:"date"`
	Hours  float64 `json:"hours"`
	Reason string  `json:"reason"`
}

func (r CreateOvertimeRequestRequest) Validate() (time.Time, error) {
	var errs validator.ValidationErrors

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if r.Hours <= 0 || r.Hours > 24 {
		errs = append(errs, validator.ValidationError{Field: "hours", Message: "hours must be between 0 and 24"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return date, nil
}

type ReviewRequest struct {
	Notes string `json:"notes,omitempty"`
}

type OvertimeRequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ReviewedBy   *string `json:"reviewed_by"`
	ReviewedAt   *string `json:"reviewed_at"`
	ReviewNotes  *string `json:"review_notes"`
	CreatedAt    string  `json:"created_at"`
}

type RequestFilter struct {
	EmployeeID string
	Status     string
	Page       int
	Limit      int
}

type ListOvertimeRequestResponse struct {
	TotalCount int64                     `json:"total_count"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	Requests   []OvertimeRequestResponse `json:"requests"`
}
