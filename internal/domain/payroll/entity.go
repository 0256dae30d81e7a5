package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type CycleState string

// Cycle state is monotonic: open -> processing -> closed -> confirmed.
const (
	CycleStateOpen       CycleState = "open"
	CycleStateProcessing CycleState = "processing"
	CycleStateClosed     CycleState = "closed"
	CycleStateConfirmed  CycleState = "confirmed"
)

type PayrollCycle struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	State     CycleState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WageComputation is the per-(cycle, employee) result. Immutable once
// the owning cycle is confirmed.
type WageComputation struct {
	ID             string
	CycleID        string
	EmployeeID     string
	DayHours       float64
	NightHours     float64
	OvertimeHours  float64
	ComputedAmount decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined
	EmployeeName *string
}

// AttendanceTotals is the aggregate the engine pulls per employee for a
// cycle's date range.
type AttendanceTotals struct {
	EmployeeID string
	DayHours   float64
	NightHours float64
}
