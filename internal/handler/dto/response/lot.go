package response

import (
	"time"

	"parkhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type LotResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	PostalCode      string    `json:"postalCode"`
	HourlyRateCents int64     `json:"hourlyRateCents"`
	Capacity        int32     `json:"capacity"`
	AvailableSpots  int64     `json:"availableSpots"`
	OccupiedSpots   int64     `json:"occupiedSpots"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type SpotResponse struct {
	ID        uuid.UUID `json:"id"`
	LotID     uuid.UUID `json:"lotId"`
	Label     string    `json:"label"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LotSummaryResponse struct {
	LotID            uuid.UUID `json:"lotId"`
	Name             string    `json:"name"`
	Capacity         int32     `json:"capacity"`
	AvailableSpots   int64     `json:"availableSpots"`
	OccupiedSpots    int64     `json:"occupiedSpots"`
	ReservationCount int64     `json:"reservationCount"`
	RevenueCents     int64     `json:"revenueCents"`
}

func FromLotView(rm *queries.LotView) *LotResponse {
	return &LotResponse{
		ID:              rm.ID,
		Name:            rm.Name,
		Address:         rm.Address,
		PostalCode:      rm.PostalCode,
		HourlyRateCents: rm.HourlyRateCents,
		Capacity:        rm.Capacity,
		AvailableSpots:  rm.AvailableSpots,
		OccupiedSpots:   rm.OccupiedSpots,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromSpotView(rm *queries.SpotView) *SpotResponse {
	return &SpotResponse{
		ID:        rm.ID,
		LotID:     rm.LotID,
		Label:     rm.Label,
		Status:    rm.Status,
		CreatedAt: rm.CreatedAt,
		UpdatedAt: rm.UpdatedAt,
	}
}

func FromLotSummaryView(rm *queries.LotSummaryView) *LotSummaryResponse {
	return &LotSummaryResponse{
		LotID:            rm.LotID,
		Name:             rm.Name,
		Capacity:         rm.Capacity,
		AvailableSpots:   rm.AvailableSpots,
		OccupiedSpots:    rm.OccupiedSpots,
		ReservationCount: rm.ReservationCount,
		RevenueCents:     rm.RevenueCents,
	}
}
