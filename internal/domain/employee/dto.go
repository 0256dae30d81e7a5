package employee

import (
	"github.com/shiftwise/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// WageConfig is the writable slice of an employee record.
type WageConfig struct {
	HourlyRate         decimal.Decimal
	NightMultiplier    decimal.Decimal
	OvertimeMultiplier decimal.Decimal
}

type UpdateWageConfigRequest struct {
	HourlyRate         string `json:"hourly_rate"`
	NightMultiplier    string `json:"night_multiplier"`
	OvertimeMultiplier string `json:"overtime_multiplier"`
}

func (r UpdateWageConfigRequest) Validate() (WageConfig, error) {
	var errs validator.ValidationErrors
	var cfg WageConfig

	rate, err := decimal.NewFromString(r.HourlyRate)
	if err != nil || rate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be a non-negative decimal"})
	}
	cfg.HourlyRate = rate

	night, err := decimal.NewFromString(r.NightMultiplier)
	if err != nil || night.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, validator.ValidationError{Field: "night_multiplier", Message: "must be a decimal of at least 1"})
	}
	cfg.NightMultiplier = night

	overtime, err := decimal.NewFromString(r.OvertimeMultiplier)
	if err != nil || overtime.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, validator.ValidationError{Field: "overtime_multiplier", Message: "must be a decimal of at least 1"})
	}
	cfg.OvertimeMultiplier = overtime

	if len(errs) > 0 {
		return WageConfig{}, errs
	}
	return cfg, nil
}

type WageConfigResponse struct {
	EmployeeID         string `json:"employee_id"`
	FullName           string `json:"full_name"`
	HourlyRate         string `json:"hourly_rate"`
	NightMultiplier    string `json:"night_multiplier"`
	OvertimeMultiplier string `json:"overtime_multiplier"`
}
