package request

type CreateLotRequest struct {
	Name            string `json:"name" binding:"required,max=128"`
	Address         string `json:"address" binding:"omitempty,max=256"`
	PostalCode      string `json:"postal_code" binding:"omitempty,max=16"`
	HourlyRateCents int64  `json:"hourly_rate_cents" binding:"required,gt=0"`
	Capacity        int32  `json:"capacity" binding:"required,gte=1"`
}

type UpdateLotRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=128"`
	Address         *string `json:"address" binding:"omitempty,max=256"`
	PostalCode      *string `json:"postal_code" binding:"omitempty,max=16"`
	HourlyRateCents *int64  `json:"hourly_rate_cents" binding:"omitempty,gt=0"`
}
