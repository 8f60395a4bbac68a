package lifecycle

import "errors"

// Lifecycle gateway errors
var (
	ErrIdempotencyNotFound = errors.New("idempotency record not found")
	ErrIdempotencyMismatch = errors.New("idempotency key was already used with a different request")
)
