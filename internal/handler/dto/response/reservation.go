package response

import (
	"time"

	"parkhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID  `json:"id"`
	SpotID        uuid.UUID  `json:"spotId"`
	SpotLabel     string     `json:"spotLabel"`
	LotID         uuid.UUID  `json:"lotId"`
	LotName       string     `json:"lotName"`
	UserID        uuid.UUID  `json:"userId"`
	UserEmail     string     `json:"userEmail"`
	VehicleNumber *string    `json:"vehicleNumber,omitempty"`
	OpenedAt      time.Time  `json:"openedAt"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`
	CostCents     *int64     `json:"costCents,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID        uuid.UUID  `json:"id"`
	SpotID    uuid.UUID  `json:"spotId"`
	SpotLabel string     `json:"spotLabel"`
	LotName   string     `json:"lotName"`
	OpenedAt  time.Time  `json:"openedAt"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
	CostCents *int64     `json:"costCents,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type ActiveReservationResponse struct {
	Reservation        *ReservationResponse `json:"reservation"`
	EstimatedCostCents int64                `json:"estimatedCostCents"`
	EstimatedAt        time.Time            `json:"estimatedAt"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:            rm.ID,
		SpotID:        rm.SpotID,
		SpotLabel:     rm.SpotLabel,
		LotID:         rm.LotID,
		LotName:       rm.LotName,
		UserID:        rm.UserID,
		UserEmail:     rm.UserEmail,
		VehicleNumber: rm.VehicleNumber,
		OpenedAt:      rm.OpenedAt,
		ClosedAt:      rm.ClosedAt,
		CostCents:     rm.CostCents,
		CreatedAt:     rm.CreatedAt,
		UpdatedAt:     rm.UpdatedAt,
	}
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:        rm.ID,
		SpotID:    rm.SpotID,
		SpotLabel: rm.SpotLabel,
		LotName:   rm.LotName,
		OpenedAt:  rm.OpenedAt,
		ClosedAt:  rm.ClosedAt,
		CostCents: rm.CostCents,
		CreatedAt: rm.CreatedAt,
	}
}

func FromActiveReservationView(rm *queries.ActiveReservationView) *ActiveReservationResponse {
	return &ActiveReservationResponse{
		Reservation:        FromReservationView(&rm.Reservation),
		EstimatedCostCents: rm.EstimatedCostCents,
		EstimatedAt:        rm.EstimatedAt,
	}
}
