package repository

import (
	"context"
	"time"

	"parkhub/internal/infra"

	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	db infra.DBTX
}

func NewIdempotencyRepository(db infra.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx infra.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx,
		`INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
		 VALUES ($1, $2, $3, $4, 'processing', $5)
		 ON CONFLICT (key, user_id) DO NOTHING`,
		key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to register idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx infra.DBTX, key, userID uuid.UUID, resultHash string, reservationID uuid.UUID) error {
	tag, err := tx.Exec(ctx,
		`UPDATE idempotency_keys
		 SET status = 'completed', response_body_hash = $3, result_reservation_id = $4, updated_at = now()
		 WHERE key = $1 AND user_id = $2`,
		key, userID, resultHash, reservationID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}
