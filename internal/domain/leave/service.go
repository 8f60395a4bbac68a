package leave

import "context"

// Workflow is the leave request lifecycle plus the balance ledger it
// keeps consistent. Every transition and its ledger movement commit
// atomically.
type Workflow interface {
	// Submit validates the range, counts working days, reserves them as
	// pending and creates the request.
	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)

	// Decide approves or rejects a pending request. The caller must
	// present the version it read; a stale version fails with
	// ErrVersionMismatch and changes nothing.
	Decide(ctx context.Context, req DecideRequest) (RequestResponse, error)

	// Cancel cancels a pending request, or an approved one whose start
	// date has not arrived, releasing the reserved or consumed days.
	Cancel(ctx context.Context, req CancelRequest) (RequestResponse, error)

	// Balance returns every ledger entry for one employee, with entries
	// materialized from policy for types never requested.
	Balance(ctx context.Context, employeeID string) (BalanceResponse, error)

	// Get returns one request.
	Get(ctx context.Context, requestID string) (RequestResponse, error)

	// List returns requests matching the filter.
	List(ctx context.Context, filter RequestFilter) (ListResponse, error)
}
