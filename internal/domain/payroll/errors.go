package payroll

import "errors"

var (
	ErrCycleNotFound     = errors.New("payroll cycle not found")
	ErrCycleLocked       = errors.New("payroll cycle is confirmed and locked")
	ErrInvalidCycleState = errors.New("operation not permitted in the cycle's current state")
	ErrCycleOverlap      = errors.New("payroll cycle overlaps an existing cycle")
)
