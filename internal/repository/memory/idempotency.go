package memory

import (
	"context"
	"time"

	"github.com/peoplecore/hr-portal-go/internal/domain/lifecycle"
)

type idempotencyRepository struct {
	store *Store
}

func NewIdempotencyRepository(store *Store) lifecycle.IdempotencyRepository {
	return &idempotencyRepository{store: store}
}

// Get implements lifecycle.IdempotencyRepository.
func (i *idempotencyRepository) Get(ctx context.Context, key, actorID string) (lifecycle.IdempotencyRecord, error) {
	i.store.mu.RLock()
	defer i.store.mu.RUnlock()

	rec, ok := i.store.idempotency[compositeKey(key, actorID)]
	if !ok {
		return lifecycle.IdempotencyRecord{}, lifecycle.ErrIdempotencyNotFound
	}
	return rec, nil
}

// Save implements lifecycle.IdempotencyRepository.
func (i *idempotencyRepository) Save(ctx context.Context, rec lifecycle.IdempotencyRecord) error {
	i.store.mu.Lock()
	defer i.store.mu.Unlock()

	rec.CreatedAt = time.Now().UTC()
	i.store.idempotency[compositeKey(rec.Key, rec.ActorID)] = rec
	return nil
}
