package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/peoplecore/hr-portal-go/internal/domain/lifecycle"
	"github.com/peoplecore/hr-portal-go/internal/pkg/database"
)

type idempotencyRepository struct {
	db *database.DB
}

func NewIdempotencyRepository(db *database.DB) lifecycle.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

// Get implements lifecycle.IdempotencyRepository.
func (i *idempotencyRepository) Get(ctx context.Context, key, actorID string) (lifecycle.IdempotencyRecord, error) {
	q := GetQuerier(ctx, i.db)

	query := `
		SELECT key, actor_id, operation, request_hash, status_code, response_body, created_at
		FROM idempotency_records
		WHERE key = $1
		  AND actor_id = $2
	`

	var rec lifecycle.IdempotencyRecord
	err := q.QueryRow(ctx, query, key, actorID).Scan(
		&rec.Key, &rec.ActorID, &rec.Operation, &rec.RequestHash,
		&rec.StatusCode, &rec.ResponseBody, &rec.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return lifecycle.IdempotencyRecord{}, lifecycle.ErrIdempotencyNotFound
		}
		return lifecycle.IdempotencyRecord{}, fmt.Errorf("failed to get idempotency record: %w", err)
	}

	return rec, nil
}

// Save implements lifecycle.IdempotencyRepository.
func (i *idempotencyRepository) Save(ctx context.Context, rec lifecycle.IdempotencyRecord) error {
	q := GetQuerier(ctx, i.db)

	query := `
		INSERT INTO idempotency_records (
			key, actor_id, operation, request_hash, status_code, response_body
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := q.Exec(ctx, query,
		rec.Key, rec.ActorID, rec.Operation, rec.RequestHash,
		rec.StatusCode, rec.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("failed to save idempotency record: %w", err)
	}

	return nil
}
