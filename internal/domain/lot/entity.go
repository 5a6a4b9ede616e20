package lot

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errors.New("lot name cannot be empty")
	ErrNameTooLong       = errors.New("lot name is too long")
	ErrInvalidHourlyRate = errors.New("hourly rate must be positive")
	ErrInvalidCapacity   = errors.New("capacity must be at least one spot")
)

const MaxNameLength = 128

type Lot struct {
	id              uuid.UUID
	name            string
	address         string
	postalCode      string
	hourlyRateCents int64
	capacity        int32
	createdAt       time.Time
	updatedAt       time.Time
}

func NewLot(name, address, postalCode string, hourlyRateCents int64, capacity int32) (*Lot, error) {
	name = strings.TrimSpace(name)
	if err := Validate(name, hourlyRateCents, capacity); err != nil {
		return nil, err
	}

	return &Lot{
		id:              uuid.New(),
		name:            name,
		address:         address,
		postalCode:      postalCode,
		hourlyRateCents: hourlyRateCents,
		capacity:        capacity,
	}, nil
}

// Validate checks the invariants shared by creation and partial updates.
func Validate(name string, hourlyRateCents int64, capacity int32) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	if hourlyRateCents <= 0 {
		return ErrInvalidHourlyRate
	}
	if capacity < 1 {
		return ErrInvalidCapacity
	}
	return nil
}

func (l *Lot) ID() uuid.UUID          { return l.id }
func (l *Lot) Name() string           { return l.name }
func (l *Lot) Address() string        { return l.address }
func (l *Lot) PostalCode() string     { return l.postalCode }
func (l *Lot) HourlyRateCents() int64 { return l.hourlyRateCents }
func (l *Lot) Capacity() int32        { return l.capacity }
func (l *Lot) CreatedAt() time.Time   { return l.createdAt }
func (l *Lot) UpdatedAt() time.Time   { return l.updatedAt }
