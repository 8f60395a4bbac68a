package lifecycle

import "time"

// IdempotencyRecord is the stored outcome of one idempotent mutation.
// A replay with the same key and fingerprint gets the saved response
// back instead of re-running the operation.
type IdempotencyRecord struct {
	Key          string
	ActorID      string
	Operation    string
	RequestHash  string
	StatusCode   int
	ResponseBody []byte
	CreatedAt    time.Time
}
