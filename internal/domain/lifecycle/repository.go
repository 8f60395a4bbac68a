package lifecycle

import "context"

// TxManager serializes and groups state changes. RunInKey executes fn
// atomically with respect to every other RunInKey call sharing the same
// key: either everything fn wrote commits, or none of it does.
//
// Keys name the contended resource, e.g. "attendance:EMP001:2026-03-15"
// or "leave:req-42".
type TxManager interface {
	RunInKey(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// IdempotencyRepository stores response snapshots keyed by
// (idempotency key, actor). Save happens inside the same transaction as
// the operation it records.
type IdempotencyRepository interface {
	// Get returns the stored record. Returns ErrIdempotencyNotFound when
	// the key has not been seen for this actor.
	Get(ctx context.Context, key, actorID string) (IdempotencyRecord, error)

	// Save stores a new record.
	Save(ctx context.Context, rec IdempotencyRecord) error
}
