package repository

import (
	"context"
	"time"

	"parkhub/internal/domain/reservation"
	"parkhub/internal/infra"
	"parkhub/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db infra.DBTX
}

func NewReservationRepository(db infra.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// The partial unique index on open entries turns a double claim of the same
// spot into a DUPLICATE_KEY error here, whatever the spot row said.
func (r *ReservationRepository) Open(ctx context.Context, tx infra.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	var vehicle *string
	if !res.VehicleNumber().IsEmpty() {
		v := res.VehicleNumber().String()
		vehicle = &v
	}

	var id uuid.UUID
	err := tx.QueryRow(ctx,
		`INSERT INTO reservations (id, spot_id, user_id, vehicle_number, opened_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		res.ID(), res.SpotID(), res.UserID(), pgconv.StringPtrToPgtype(vehicle), res.OpenedAt()).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to open reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) Close(ctx context.Context, tx infra.DBTX, id uuid.UUID, closedAt time.Time, costCents int64) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE reservations
		 SET closed_at = $2, cost_cents = $3, updated_at = now()
		 WHERE id = $1 AND closed_at IS NULL`,
		id, closedAt, costCents)
	if err != nil {
		return false, infra.WrapRepoErr("failed to close reservation", err)
	}
	return tag.RowsAffected() > 0, nil
}
