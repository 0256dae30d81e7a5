package payroll

import (
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/pkg/validator"
)

type CreateCycleRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r CreateCycleRequest) Validate() (start, end time.Time, err error) {
	start, end, ok := validator.IsValidDateRange(r.StartDate, r.EndDate)
	if !ok {
		return time.Time{}, time.Time{}, validator.ValidationErrors{
			{Field: "start_date", Message: "dates must be YYYY-MM-DD and end must not precede start"},
		}
	}
	return start, end, nil
}

type CycleResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
}

type WageComputationResponse struct {
	ID             string  `json:"id"`
	CycleID        string  `json:"cycle_id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	DayHours       float64 `json:"day_hours"`
	NightHours     float64 `json:"night_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	ComputedAmount string  `json:"computed_amount"`
}

// WageSummaryResponse is a read-only projection over wage computations
// for one employee across a date range.
type WageSummaryResponse struct {
	EmployeeID    string                    `json:"employee_id"`
	StartDate     string                    `json:"start_date"`
	EndDate       string                    `json:"end_date"`
	TotalAmount   string                    `json:"total_amount"`
	DayHours      float64                   `json:"day_hours"`
	NightHours    float64                   `json:"night_hours"`
	OvertimeHours float64                   `json:"overtime_hours"`
	Computations  []WageComputationResponse `json:"computations"`
}

type CycleFilter struct {
	State string
	Page  int
	Limit int
}

type ListCycleResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Cycles     []CycleResponse `json:"cycles"`
}
