package overtime

import "context"

// OvertimeService orchestrates overtime request approval. Approval marks
// the hours billable; it has no ledger side effects.
type OvertimeService interface {
	Create(ctx context.Context, employeeID string, req CreateOvertimeRequestRequest) (OvertimeRequestResponse, error)
	Approve(ctx context.Context, requestID, reviewerID, notes string) (OvertimeRequestResponse, error)
	Reject(ctx context.Context, requestID, reviewerID, notes string) (OvertimeRequestResponse, error)
	Get(ctx context.Context, requestID string) (OvertimeRequestResponse, error)
	List(ctx context.Context, filter RequestFilter) (ListOvertimeRequestResponse, error)
}
