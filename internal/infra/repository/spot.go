package repository

import (
	"context"

	"parkhub/internal/domain/spot"
	"parkhub/internal/infra"
	"parkhub/internal/pkg/pgconv"
	"parkhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpotRepository struct {
	db infra.DBTX
}

func NewSpotRepository(db infra.DBTX) *SpotRepository {
	return &SpotRepository{db: db}
}

// The inner SELECT picks the first free spot in deterministic label order and
// SKIP LOCKED keeps concurrent claimers from queueing on the same row; each
// transaction either flips a distinct spot or sees none left. The exclusion
// lets a retry step past a spot whose claim just conflicted (uuid.Nil excludes
// nothing).
const claimFirstAvailableSQL = `
UPDATE spots
SET status = 'occupied', updated_at = now()
WHERE id = (
    SELECT id FROM spots
    WHERE lot_id = $1 AND status = 'available' AND id <> $2
    ORDER BY label, id
    LIMIT 1
    FOR UPDATE SKIP LOCKED
)
RETURNING id, lot_id, label`

func (r *SpotRepository) ClaimFirstAvailable(ctx context.Context, tx infra.DBTX, lotID, excludeSpotID uuid.UUID) (*shared.ClaimedSpot, error) {
	var claimed shared.ClaimedSpot
	err := tx.QueryRow(ctx, claimFirstAvailableSQL, lotID, excludeSpotID).Scan(&claimed.ID, &claimed.LotID, &claimed.Label)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no available spot in lot", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to claim spot", err)
	}
	return &claimed, nil
}

func (r *SpotRepository) Release(ctx context.Context, tx infra.DBTX, spotID uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE spots SET status = 'available', updated_at = now() WHERE id = $1 AND status = 'occupied'`,
		spotID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to release spot", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SpotRepository) Create(ctx context.Context, tx infra.DBTX, s *spot.Spot) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx,
		`INSERT INTO spots (id, lot_id, label, status) VALUES ($1, $2, $3, $4) RETURNING id`,
		s.ID(), s.LotID(), s.Label(), s.Status().String()).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create spot", err)
	}
	return id, nil
}

func (r *SpotRepository) Delete(ctx context.Context, tx infra.DBTX, spotID uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx,
		`DELETE FROM spots WHERE id = $1 AND status = 'available'`,
		spotID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete spot", err)
	}
	return tag.RowsAffected() > 0, nil
}
