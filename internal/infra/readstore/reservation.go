package readstore

import (
	"context"

	"parkhub/internal/infra"
	"parkhub/internal/pkg/pgconv"
	"parkhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db infra.DBTX
}

func NewReservationReadStore(db infra.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

// The spot and lot joins are LEFT because the ledger outlives its spot:
// deleting a spot detaches closed entries instead of erasing them.
const reservationViewSQL = `
SELECT r.id, r.spot_id, s.label, s.lot_id, l.name, r.user_id, u.email,
       r.vehicle_number, r.opened_at, r.closed_at, r.cost_cents,
       r.created_at, r.updated_at
FROM reservations r
LEFT JOIN spots s ON s.id = r.spot_id
LEFT JOIN lots l ON l.id = s.lot_id
JOIN users u ON u.id = r.user_id`

func scanReservationView(row interface{ Scan(dest ...any) error }) (*queries.ReservationView, error) {
	var (
		view      queries.ReservationView
		spotID    pgtype.UUID
		spotLabel pgtype.Text
		lotID     pgtype.UUID
		lotName   pgtype.Text
		vehicle   pgtype.Text
		closedAt  pgtype.Timestamptz
		costCents pgtype.Int8
	)
	err := row.Scan(
		&view.ID, &spotID, &spotLabel, &lotID, &lotName,
		&view.UserID, &view.UserEmail, &vehicle, &view.OpenedAt, &closedAt,
		&costCents, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	applySpotColumns(&view.SpotID, &view.SpotLabel, spotID, spotLabel)
	applySpotColumns(&view.LotID, &view.LotName, lotID, lotName)
	view.VehicleNumber = pgconv.StringPtrFromPgtype(vehicle)
	view.ClosedAt = pgconv.TimePtrFromPgtype(closedAt)
	view.CostCents = pgconv.Int64PtrFromPgtype(costCents)
	return &view, nil
}

// applySpotColumns maps the nullable columns of a detached entry to zero
// values instead of failing the scan.
func applySpotColumns(idDst *uuid.UUID, textDst *string, id pgtype.UUID, text pgtype.Text) {
	if p := pgconv.UUIDPtrFromPgtype(id); p != nil {
		*idDst = *p
	}
	if p := pgconv.StringPtrFromPgtype(text); p != nil {
		*textDst = *p
	}
}

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := s.db.QueryRow(ctx, reservationViewSQL+` WHERE r.id = $1`, id)
	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return view, nil
}

// FindByUserID returns the user's full ledger, oldest first.
func (s *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationListItem, error) {
	rows, err := s.db.Query(ctx,
		`SELECT r.id, r.spot_id, s.label, l.name, r.opened_at, r.closed_at, r.cost_cents, r.created_at
		 FROM reservations r
		 LEFT JOIN spots s ON s.id = r.spot_id
		 LEFT JOIN lots l ON l.id = s.lot_id
		 WHERE r.user_id = $1
		 ORDER BY r.created_at, r.id`,
		userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	items := make([]*queries.ReservationListItem, 0)
	for rows.Next() {
		var (
			item      queries.ReservationListItem
			spotID    pgtype.UUID
			spotLabel pgtype.Text
			lotName   pgtype.Text
			closedAt  pgtype.Timestamptz
			costCents pgtype.Int8
		)
		if err := rows.Scan(&item.ID, &spotID, &spotLabel, &lotName,
			&item.OpenedAt, &closedAt, &costCents, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		applySpotColumns(&item.SpotID, &item.SpotLabel, spotID, spotLabel)
		if p := pgconv.StringPtrFromPgtype(lotName); p != nil {
			item.LotName = *p
		}
		item.ClosedAt = pgconv.TimePtrFromPgtype(closedAt)
		item.CostCents = pgconv.Int64PtrFromPgtype(costCents)
		items = append(items, &item)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", rows.Err())
	}
	return items, nil
}

func (s *ReservationReadStore) FindActiveBySpot(ctx context.Context, spotID uuid.UUID) (*queries.ReservationView, int64, error) {
	row := s.db.QueryRow(ctx,
		`SELECT r.id, r.spot_id, s.label, s.lot_id, l.name, r.user_id, u.email,
		        r.vehicle_number, r.opened_at, r.closed_at, r.cost_cents,
		        r.created_at, r.updated_at, l.hourly_rate_cents
		 FROM reservations r
		 JOIN spots s ON s.id = r.spot_id
		 JOIN lots l ON l.id = s.lot_id
		 JOIN users u ON u.id = r.user_id
		 WHERE r.spot_id = $1 AND r.closed_at IS NULL`,
		spotID)

	var (
		view      queries.ReservationView
		vehicle   pgtype.Text
		closedAt  pgtype.Timestamptz
		costCents pgtype.Int8
		rateCents int64
	)
	err := row.Scan(
		&view.ID, &view.SpotID, &view.SpotLabel, &view.LotID, &view.LotName,
		&view.UserID, &view.UserEmail, &vehicle, &view.OpenedAt, &closedAt,
		&costCents, &view.CreatedAt, &view.UpdatedAt, &rateCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, 0, infra.WrapRepoErr("no active reservation for spot", err, infra.KindNotFound)
		}
		return nil, 0, infra.WrapRepoErr("failed to find active reservation", err)
	}
	view.VehicleNumber = pgconv.StringPtrFromPgtype(vehicle)
	view.ClosedAt = pgconv.TimePtrFromPgtype(closedAt)
	view.CostCents = pgconv.Int64PtrFromPgtype(costCents)
	return &view, rateCents, nil
}
