package repository

import (
	"context"

	"parkhub/internal/domain/lot"
	"parkhub/internal/infra"

	"github.com/google/uuid"
)

type LotRepository struct {
	db infra.DBTX
}

func NewLotRepository(db infra.DBTX) *LotRepository {
	return &LotRepository{db: db}
}

func (r *LotRepository) Create(ctx context.Context, tx infra.DBTX, l *lot.Lot) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx,
		`INSERT INTO lots (id, name, address, postal_code, hourly_rate_cents, capacity)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		l.ID(), l.Name(), l.Address(), l.PostalCode(), l.HourlyRateCents(), l.Capacity()).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create lot", err)
	}
	return id, nil
}

func (r *LotRepository) Update(ctx context.Context, tx infra.DBTX, id uuid.UUID, name, address, postalCode string, hourlyRateCents int64) error {
	tag, err := tx.Exec(ctx,
		`UPDATE lots
		 SET name = $2, address = $3, postal_code = $4, hourly_rate_cents = $5, updated_at = now()
		 WHERE id = $1`,
		id, name, address, postalCode, hourlyRateCents)
	if err != nil {
		return infra.WrapRepoErr("failed to update lot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("lot not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *LotRepository) Delete(ctx context.Context, tx infra.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM lots WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete lot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("lot not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *LotRepository) UpdateCapacity(ctx context.Context, tx infra.DBTX, id uuid.UUID, capacity int32) error {
	tag, err := tx.Exec(ctx,
		`UPDATE lots SET capacity = $2, updated_at = now() WHERE id = $1`,
		id, capacity)
	if err != nil {
		return infra.WrapRepoErr("failed to update lot capacity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("lot not found", nil, infra.KindNotFound)
	}
	return nil
}
