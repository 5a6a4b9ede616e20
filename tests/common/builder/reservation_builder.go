//go:build unit || e2e

package builder

import (
	"time"

	domreservation "parkhub/internal/domain/reservation"
	reqdto "parkhub/internal/handler/dto/request"
	"parkhub/internal/usecase/queries"
	"parkhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	SpotID          uuid.UUID
	SpotLabel       string
	LotID           uuid.UUID
	LotName         string
	UserID          uuid.UUID
	UserEmail       string
	VehicleNumber   string
	HourlyRateCents int64
	OpenedAt        time.Time
	ClosedAt        *time.Time
	CostCents       *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC()
	return &ReservationBuilder{
		SpotID:          uuid.New(),
		SpotLabel:       "S-001",
		LotID:           uuid.New(),
		LotName:         "Lakeview Garage",
		UserID:          uuid.New(),
		UserEmail:       "driver@example.com",
		VehicleNumber:   "ABC-1234",
		HourlyRateCents: 1000,
		OpenedAt:        now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	vehicle, err := domreservation.NewVehicleNumber(r.VehicleNumber)
	if err != nil {
		return nil, err
	}
	return domreservation.Open(r.SpotID, r.UserID, vehicle, r.OpenedAt)
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	vehicle := r.VehicleNumber
	return reqdto.CreateReservationRequest{
		LotID:         r.LotID,
		VehicleNumber: &vehicle,
	}
}

func (r *ReservationBuilder) BuildViewQuery() *queries.ReservationView {
	var vehicle *string
	if r.VehicleNumber != "" {
		vehicle = &r.VehicleNumber
	}
	return &queries.ReservationView{
		ID:            uuid.New(),
		SpotID:        r.SpotID,
		SpotLabel:     r.SpotLabel,
		LotID:         r.LotID,
		LotName:       r.LotName,
		UserID:        r.UserID,
		UserEmail:     r.UserEmail,
		VehicleNumber: vehicle,
		OpenedAt:      r.OpenedAt,
		ClosedAt:      r.ClosedAt,
		CostCents:     r.CostCents,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:        uuid.New(),
		SpotID:    r.SpotID,
		SpotLabel: r.SpotLabel,
		LotName:   r.LotName,
		OpenedAt:  r.OpenedAt,
		ClosedAt:  r.ClosedAt,
		CostCents: r.CostCents,
		CreatedAt: r.CreatedAt,
	}
}

func (r *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:              uuid.New(),
		SpotID:          r.SpotID,
		LotID:           r.LotID,
		UserID:          r.UserID,
		OpenedAt:        r.OpenedAt,
		ClosedAt:        r.ClosedAt,
		HourlyRateCents: r.HourlyRateCents,
	}
}

func (r *ReservationBuilder) WithSpotID(spotID uuid.UUID) *ReservationBuilder {
	r.SpotID = spotID
	return r
}

func (r *ReservationBuilder) WithUserID(userID uuid.UUID) *ReservationBuilder {
	r.UserID = userID
	return r
}

func (r *ReservationBuilder) WithVehicleNumber(vehicleNumber string) *ReservationBuilder {
	r.VehicleNumber = vehicleNumber
	return r
}

func (r *ReservationBuilder) WithOpenedAt(openedAt time.Time) *ReservationBuilder {
	r.OpenedAt = openedAt
	return r
}

func (r *ReservationBuilder) AsClosed(closedAt time.Time, costCents int64) *ReservationBuilder {
	r.ClosedAt = &closedAt
	r.CostCents = &costCents
	return r
}
