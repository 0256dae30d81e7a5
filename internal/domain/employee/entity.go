package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee identity and department are owned by the identity collaborator;
// this engine treats them as read-only. Wage configuration is the one
// exception: payroll administration edits it here.
type Employee struct {
	ID             string
	FullName       string
	Department     string
	WeeklyHoursCap float64
	DailyMaxHours  float64

	// Wage configuration
	HourlyRate         decimal.Decimal
	NightMultiplier    decimal.Decimal
	OvertimeMultiplier decimal.Decimal

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)
