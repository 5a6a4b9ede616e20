package shared

import (
	"time"

	"github.com/google/uuid"
)

type LotSnapshot struct {
	ID              uuid.UUID
	Name            string
	Address         string
	PostalCode      string
	HourlyRateCents int64
	Capacity        int32
}

type LotOccupancy struct {
	Available int64
	Occupied  int64
}

type SpotSnapshot struct {
	ID        uuid.UUID
	LotID     uuid.UUID
	Label     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ClaimedSpot struct {
	ID    uuid.UUID
	LotID uuid.UUID
	Label string
}

// Snapshot for command read operations, complete enough to rehydrate the
// domain entity. HourlyRateCents is read through spot and lot so Release can
// price the stay in one round trip; it is zero when the spot was deleted,
// which only happens for closed entries.
type ReservationSnapshot struct {
	ID              uuid.UUID
	SpotID          uuid.UUID
	LotID           uuid.UUID
	UserID          uuid.UUID
	VehicleNumber   *string
	OpenedAt        time.Time
	ClosedAt        *time.Time
	CostCents       *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	HourlyRateCents int64
}

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Status              string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}
