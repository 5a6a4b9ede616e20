package request

import "github.com/google/uuid"

type CreateReservationRequest struct {
	LotID         uuid.UUID `json:"lot_id" binding:"required"`
	VehicleNumber *string   `json:"vehicle_number" binding:"omitempty,max=32"`
}

func (r CreateReservationRequest) GetVehicleNumber() string {
	if r.VehicleNumber == nil {
		return ""
	}
	return *r.VehicleNumber
}
