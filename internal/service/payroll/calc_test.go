package payroll

import (
	"testing"

	"github.com/shiftwise/workforce-backend-go/internal/config"
	"github.com/shiftwise/workforce-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testPayrollConfig() config.PayrollConfig {
	return config.PayrollConfig{
		DefaultNightMultiplier:    1.25,
		DefaultOvertimeMultiplier: 1.5,
	}
}

func TestDeriveOvertime_UnderCap(t *testing.T) {
	in := deriveOvertime(35, 5, 0, 40)

	assert.Equal(t, 35.0, in.DayHours)
	assert.Equal(t, 5.0, in.NightHours)
	assert.Equal(t, 0.0, in.OvertimeHours)
}

func TestDeriveOvertime_OverCap(t *testing.T) {
	in := deriveOvertime(40, 8, 0, 40)

	assert.Equal(t, 32.0, in.DayHours)
	assert.Equal(t, 8.0, in.NightHours)
	assert.Equal(t, 8.0, in.OvertimeHours)
}

func TestDeriveOvertime_OverCapEatsIntoNight(t *testing.T) {
	// 10 day + 45 night over a 40h cap: 15h overtime, day exhausted first.
	in := deriveOvertime(10, 45, 0, 40)

	assert.Equal(t, 0.0, in.DayHours)
	assert.Equal(t, 40.0, in.NightHours)
	assert.Equal(t, 15.0, in.OvertimeHours)
}

func TestDeriveOvertime_ApprovedHoursAdded(t *testing.T) {
	in := deriveOvertime(38, 0, 4, 40)

	assert.Equal(t, 38.0, in.DayHours)
	assert.Equal(t, 4.0, in.OvertimeHours)
}

func TestDeriveOvertime_NoCapConfigured(t *testing.T) {
	in := deriveOvertime(60, 10, 0, 0)

	assert.Equal(t, 60.0, in.DayHours)
	assert.Equal(t, 10.0, in.NightHours)
	assert.Equal(t, 0.0, in.OvertimeHours)
}

func TestComputeAmount(t *testing.T) {
	emp := employee.Employee{
		HourlyRate:         decimal.NewFromInt(10),
		NightMultiplier:    decimal.NewFromFloat(1.25),
		OvertimeMultiplier: decimal.NewFromFloat(1.5),
	}

	// 30 day + 8 night + 2 overtime at rate 10:
	// 300 + 8*10*1.25 + 2*10*1.5 = 300 + 100 + 30 = 430
	amount := computeAmount(emp, wageInput{DayHours: 30, NightHours: 8, OvertimeHours: 2}, testPayrollConfig())

	assert.True(t, amount.Equal(decimal.NewFromInt(430)), "got %s", amount)
}

func TestComputeAmount_DefaultMultipliers(t *testing.T) {
	emp := employee.Employee{
		HourlyRate: decimal.NewFromInt(20),
	}

	// Night and overtime multipliers fall back to config defaults.
	// 10*20 + 4*20*1.25 + 2*20*1.5 = 200 + 100 + 60 = 360
	amount := computeAmount(emp, wageInput{DayHours: 10, NightHours: 4, OvertimeHours: 2}, testPayrollConfig())

	assert.True(t, amount.Equal(decimal.NewFromInt(360)), "got %s", amount)
}

func TestComputeAmount_ZeroHours(t *testing.T) {
	emp := employee.Employee{
		HourlyRate:         decimal.NewFromInt(15),
		NightMultiplier:    decimal.NewFromFloat(1.25),
		OvertimeMultiplier: decimal.NewFromFloat(1.5),
	}

	amount := computeAmount(emp, wageInput{}, testPayrollConfig())

	assert.True(t, amount.IsZero())
}
