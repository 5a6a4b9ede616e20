package readstore

import (
	"context"

	"parkhub/internal/infra"
	"parkhub/internal/pkg/pgconv"
	"parkhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type LotReadStore struct {
	db infra.DBTX
}

func NewLotReadStore(db infra.DBTX) *LotReadStore {
	return &LotReadStore{db: db}
}

const lotViewSQL = `
SELECT l.id, l.name, l.address, l.postal_code, l.hourly_rate_cents, l.capacity,
       COUNT(s.id) FILTER (WHERE s.status = 'available') AS available_spots,
       COUNT(s.id) FILTER (WHERE s.status = 'occupied') AS occupied_spots,
       l.created_at, l.updated_at
FROM lots l
LEFT JOIN spots s ON s.lot_id = l.id`

func (s *LotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LotView, error) {
	row := s.db.QueryRow(ctx, lotViewSQL+` WHERE l.id = $1 GROUP BY l.id`, id)

	var view queries.LotView
	err := row.Scan(&view.ID, &view.Name, &view.Address, &view.PostalCode,
		&view.HourlyRateCents, &view.Capacity, &view.AvailableSpots,
		&view.OccupiedSpots, &view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find lot", err)
	}
	return &view, nil
}

func (s *LotReadStore) FindAll(ctx context.Context) ([]*queries.LotView, error) {
	rows, err := s.db.Query(ctx, lotViewSQL+` GROUP BY l.id ORDER BY l.name, l.id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list lots", err)
	}
	defer rows.Close()
	return scanLotViews(rows)
}

func (s *LotReadStore) SearchByNameOrPostalCode(ctx context.Context, query string) ([]*queries.LotView, error) {
	rows, err := s.db.Query(ctx,
		lotViewSQL+` WHERE l.name ILIKE '%' || $1 || '%' OR l.postal_code ILIKE '%' || $1 || '%'
		 GROUP BY l.id ORDER BY l.name, l.id`,
		query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search lots", err)
	}
	defer rows.Close()
	return scanLotViews(rows)
}

func scanLotViews(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*queries.LotView, error) {
	views := make([]*queries.LotView, 0)
	for rows.Next() {
		var view queries.LotView
		if err := rows.Scan(&view.ID, &view.Name, &view.Address, &view.PostalCode,
			&view.HourlyRateCents, &view.Capacity, &view.AvailableSpots,
			&view.OccupiedSpots, &view.CreatedAt, &view.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan lot", err)
		}
		views = append(views, &view)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to read lots", rows.Err())
	}
	return views, nil
}

func (s *LotReadStore) FindSpotsByLot(ctx context.Context, lotID uuid.UUID) ([]*queries.SpotView, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, lot_id, label, status, created_at, updated_at
		 FROM spots
		 WHERE lot_id = $1
		 ORDER BY label, id`,
		lotID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list spots", err)
	}
	defer rows.Close()

	views := make([]*queries.SpotView, 0)
	for rows.Next() {
		var view queries.SpotView
		if err := rows.Scan(&view.ID, &view.LotID, &view.Label, &view.Status,
			&view.CreatedAt, &view.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan spot", err)
		}
		views = append(views, &view)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to read spots", rows.Err())
	}
	return views, nil
}

// Summarize reports per-lot occupancy, total reservations, and realized
// revenue. Revenue counts closed entries only; open entries have no cost yet.
func (s *LotReadStore) Summarize(ctx context.Context) ([]*queries.LotSummaryView, error) {
	rows, err := s.db.Query(ctx,
		`SELECT l.id, l.name, l.capacity,
		        COUNT(DISTINCT s.id) FILTER (WHERE s.status = 'available') AS available_spots,
		        COUNT(DISTINCT s.id) FILTER (WHERE s.status = 'occupied') AS occupied_spots,
		        COUNT(r.id) AS reservation_count,
		        COALESCE(SUM(r.cost_cents), 0) AS revenue_cents
		 FROM lots l
		 LEFT JOIN spots s ON s.lot_id = l.id
		 LEFT JOIN reservations r ON r.spot_id = s.id
		 GROUP BY l.id
		 ORDER BY l.name, l.id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to summarize lots", err)
	}
	defer rows.Close()

	views := make([]*queries.LotSummaryView, 0)
	for rows.Next() {
		var view queries.LotSummaryView
		if err := rows.Scan(&view.LotID, &view.Name, &view.Capacity,
			&view.AvailableSpots, &view.OccupiedSpots,
			&view.ReservationCount, &view.RevenueCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan lot summary", err)
		}
		views = append(views, &view)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to read lot summaries", rows.Err())
	}
	return views, nil
}
