package payroll

import (
	"github.com/shiftwise/workforce-backend-go/internal/config"
	"github.com/shiftwise/workforce-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// wageInput is one employee's classified hours over a cycle, after
// overtime derivation.
type wageInput struct {
	DayHours      float64
	NightHours    float64
	OvertimeHours float64
}

// deriveOvertime splits the cycle totals into base and overtime hours.
// Hours beyond the employee's cap count as overtime, on top of
// separately approved overtime hours. The split comes out of day hours
// first since night hours already carry their own premium.
func deriveOvertime(dayHours, nightHours, approvedOvertime, weeklyCap float64) wageInput {
	capOvertime := dayHours + nightHours - weeklyCap
	if weeklyCap <= 0 || capOvertime < 0 {
		capOvertime = 0
	}

	if capOvertime > dayHours {
		nightHours -= capOvertime - dayHours
		dayHours = 0
	} else {
		dayHours -= capOvertime
	}

	return wageInput{
		DayHours:      dayHours,
		NightHours:    nightHours,
		OvertimeHours: capOvertime + approvedOvertime,
	}
}

// computeAmount prices the classified hours with the employee's wage
// configuration, falling back to the configured default multipliers when
// the employee has none.
func computeAmount(emp employee.Employee, in wageInput, defaults config.PayrollConfig) decimal.Decimal {
	nightMult := emp.NightMultiplier
	if nightMult.IsZero() {
		nightMult = decimal.NewFromFloat(defaults.DefaultNightMultiplier)
	}
	overtimeMult := emp.OvertimeMultiplier
	if overtimeMult.IsZero() {
		overtimeMult = decimal.NewFromFloat(defaults.DefaultOvertimeMultiplier)
	}

	day := decimal.NewFromFloat(in.DayHours).Mul(emp.HourlyRate)
	night := decimal.NewFromFloat(in.NightHours).Mul(emp.HourlyRate).Mul(nightMult)
	overtime := decimal.NewFromFloat(in.OvertimeHours).Mul(emp.HourlyRate).Mul(overtimeMult)

	return day.Add(night).Add(overtime).Round(2)
}
