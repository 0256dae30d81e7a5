package leave

import "errors"

var (
	ErrLeaveRequestNotFound    = errors.New("leave request not found")
	ErrLeaveTypeNotFound       = errors.New("leave type not found")
	ErrBalanceNotFound         = errors.New("leave balance not found")
	ErrBalanceExists           = errors.New("leave balance already exists")
	ErrInsufficientBalance     = errors.New("insufficient leave balance")
	ErrRequestAlreadyProcessed = errors.New("request has already been approved or rejected")
)
