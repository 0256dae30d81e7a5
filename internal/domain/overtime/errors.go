package overtime

import "errors"

var (
	ErrOvertimeRequestNotFound = errors.New("overtime request not found")
	ErrRequestAlreadyProcessed = errors.New("request has already been approved or rejected")
)
