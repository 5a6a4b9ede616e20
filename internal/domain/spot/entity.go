package spot

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errors.New("invalid spot status")
	ErrEmptyLabel    = errors.New("spot label cannot be empty")
	ErrSpotOccupied  = errors.New("spot is occupied")
)

type Spot struct {
	id        uuid.UUID
	lotID     uuid.UUID
	label     string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// New spots always start out available.
func NewSpot(lotID uuid.UUID, label string) (*Spot, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrEmptyLabel
	}

	return &Spot{
		id:     uuid.New(),
		lotID:  lotID,
		label:  label,
		status: StatusAvailable,
	}, nil
}

func ReconstructSpot(
	id, lotID uuid.UUID,
	label string,
	status Status,
	createdAt, updatedAt time.Time,
) *Spot {
	return &Spot{
		id:        id,
		lotID:     lotID,
		label:     label,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Spot) IsAvailable() bool {
	return s.status == StatusAvailable
}

// Only idle spots may be removed from a lot.
func (s *Spot) CanDelete() error {
	if s.status != StatusAvailable {
		return ErrSpotOccupied
	}
	return nil
}

func (s *Spot) ID() uuid.UUID        { return s.id }
func (s *Spot) LotID() uuid.UUID     { return s.lotID }
func (s *Spot) Label() string        { return s.label }
func (s *Spot) Status() Status       { return s.status }
func (s *Spot) CreatedAt() time.Time { return s.createdAt }
func (s *Spot) UpdatedAt() time.Time { return s.updatedAt }
