package schedule

import "errors"

var (
	ErrShiftNotFound = errors.New("no shift schedule found for this date")
)
