package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID            uuid.UUID  `json:"id"`
	SpotID        uuid.UUID  `json:"spot_id"`
	SpotLabel     string     `json:"spot_label"`
	LotID         uuid.UUID  `json:"lot_id"`
	LotName       string     `json:"lot_name"`
	UserID        uuid.UUID  `json:"user_id"`
	UserEmail     string     `json:"user_email"`
	VehicleNumber *string    `json:"vehicle_number,omitempty"`
	OpenedAt      time.Time  `json:"opened_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	CostCents     *int64     `json:"cost_cents,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID        uuid.UUID  `json:"id"`
	SpotID    uuid.UUID  `json:"spot_id"`
	SpotLabel string     `json:"spot_label"`
	LotName   string     `json:"lot_name"`
	OpenedAt  time.Time  `json:"opened_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	CostCents *int64     `json:"cost_cents,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ActiveReservationView adds a projected cost to an open ledger entry. The
// estimate is computed from the clock at query time and is never persisted.
type ActiveReservationView struct {
	Reservation        ReservationView `json:"reservation"`
	EstimatedCostCents int64           `json:"estimated_cost_cents"`
	EstimatedAt        time.Time       `json:"estimated_at"`
}

type LotView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	PostalCode      string    `json:"postal_code"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	Capacity        int32     `json:"capacity"`
	AvailableSpots  int64     `json:"available_spots"`
	OccupiedSpots   int64     `json:"occupied_spots"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SpotView struct {
	ID        uuid.UUID `json:"id"`
	LotID     uuid.UUID `json:"lot_id"`
	Label     string    `json:"label"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LotSummaryView struct {
	LotID            uuid.UUID `json:"lot_id"`
	Name             string    `json:"name"`
	Capacity         int32     `json:"capacity"`
	AvailableSpots   int64     `json:"available_spots"`
	OccupiedSpots    int64     `json:"occupied_spots"`
	ReservationCount int64     `json:"reservation_count"`
	RevenueCents     int64     `json:"revenue_cents"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
