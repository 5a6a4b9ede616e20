package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyClosed = errors.New("reservation is already closed")
	ErrMissingSpot   = errors.New("reservation requires a spot")
	ErrMissingUser   = errors.New("reservation requires a user")
	ErrZeroOpenedAt  = errors.New("reservation requires an opening time")
)

// Reservation is one ledger entry: a spot held by a user from openedAt until
// it is closed. A closed entry carries the final cost and never changes again.
type Reservation struct {
	id            uuid.UUID
	spotID        uuid.UUID
	userID        uuid.UUID
	vehicleNumber VehicleNumber
	openedAt      time.Time
	closedAt      *time.Time
	cost          *Money
	createdAt     time.Time
	updatedAt     time.Time
}

func Open(spotID, userID uuid.UUID, vehicleNumber VehicleNumber, openedAt time.Time) (*Reservation, error) {
	if spotID == uuid.Nil {
		return nil, ErrMissingSpot
	}
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	if openedAt.IsZero() {
		return nil, ErrZeroOpenedAt
	}

	return &Reservation{
		id:            uuid.New(),
		spotID:        spotID,
		userID:        userID,
		vehicleNumber: vehicleNumber,
		openedAt:      openedAt,
	}, nil
}

func ReconstructReservation(
	id, spotID, userID uuid.UUID,
	vehicleNumber VehicleNumber,
	openedAt time.Time,
	closedAt *time.Time,
	costCents *int64,
	createdAt, updatedAt time.Time,
) *Reservation {
	var cost *Money
	if costCents != nil {
		m := NewMoney(*costCents)
		cost = &m
	}
	return &Reservation{
		id:            id,
		spotID:        spotID,
		userID:        userID,
		vehicleNumber: vehicleNumber,
		openedAt:      openedAt,
		closedAt:      closedAt,
		cost:          cost,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Close finalizes the entry exactly once, computing the cost from the actual
// interval. Closing an already closed entry is an error, as is an interval
// that is zero or runs backwards.
func (r *Reservation) Close(closedAt time.Time, hourlyRateCents int64) error {
	if r.closedAt != nil {
		return ErrAlreadyClosed
	}

	cost, err := ComputeCost(r.openedAt, closedAt, hourlyRateCents)
	if err != nil {
		return err
	}

	r.closedAt = &closedAt
	r.cost = &cost
	return nil
}

func (r *Reservation) IsOpen() bool {
	return r.closedAt == nil
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) SpotID() uuid.UUID            { return r.spotID }
func (r *Reservation) UserID() uuid.UUID            { return r.userID }
func (r *Reservation) VehicleNumber() VehicleNumber { return r.vehicleNumber }
func (r *Reservation) OpenedAt() time.Time          { return r.openedAt }
func (r *Reservation) ClosedAt() *time.Time         { return r.closedAt }
func (r *Reservation) Cost() *Money                 { return r.cost }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }
