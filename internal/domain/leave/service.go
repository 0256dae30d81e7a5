package leave

import "context"

// LedgerService owns all mutation of leave balances. Debit and Credit
// serialize per (employee, type, year) key via row locking and perform
// no mutation when validation fails.
type LedgerService interface {
	// GetOrCreate returns the balance, creating it with the configured
	// default allocation when absent.
	GetOrCreate(ctx context.Context, employeeID, leaveType string, year int) (LeaveBalance, error)

	// Debit consumes days from the balance. Fails with
	// ErrInsufficientBalance when remaining < days, leaving the balance
	// untouched. Returns the balance after the debit.
	Debit(ctx context.Context, employeeID, leaveType string, year int, days float64) (LeaveBalance, error)

	// Credit refunds days, the inverse of Debit; used for reversal paths.
	Credit(ctx context.Context, employeeID, leaveType string, year int, days float64) (LeaveBalance, error)

	// GetBalances is the read-only projection behind getLeaveBalance.
	GetBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
}

// RequestService is the approval orchestrator for leave requests.
type RequestService interface {
	Create(ctx context.Context, employeeID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)

	// Approve debits the ledger (when the type deducts balance), marks
	// the request approved, reconciles absent attendance to on_leave and
	// records a notification, all in one transaction. A request already
	// processed fails with ErrRequestAlreadyProcessed; an insufficient
	// balance fails with ErrInsufficientBalance and leaves the request
	// pending.
	Approve(ctx context.Context, requestID, reviewerID, notes string) (LeaveRequestResponse, error)

	// Reject marks the request rejected and records a notification. The
	// ledger is never touched.
	Reject(ctx context.Context, requestID, reviewerID, notes string) (LeaveRequestResponse, error)

	Get(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	List(ctx context.Context, filter RequestFilter) (ListLeaveRequestResponse, error)
}
