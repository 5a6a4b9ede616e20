//go:build unit || e2e

package builder

import (
	"time"

	domlot "parkhub/internal/domain/lot"
	reqdto "parkhub/internal/handler/dto/request"
	"parkhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type LotBuilder struct {
	Name            string
	Address         string
	PostalCode      string
	HourlyRateCents int64
	Capacity        int32
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewLotBuilder() *LotBuilder {
	now := time.Now().UTC()
	return &LotBuilder{
		Name:            "Lakeview Garage",
		Address:         "12 Lakeview Drive",
		PostalCode:      "98101",
		HourlyRateCents: 1000,
		Capacity:        3,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (l *LotBuilder) With(mutate func(*LotBuilder)) *LotBuilder {
	mutate(l)
	return l
}

func (l *LotBuilder) BuildDomain() (*domlot.Lot, error) {
	return domlot.NewLot(l.Name, l.Address, l.PostalCode, l.HourlyRateCents, l.Capacity)
}

func (l *LotBuilder) BuildCreateRequestDTO() reqdto.CreateLotRequest {
	return reqdto.CreateLotRequest{
		Name:            l.Name,
		Address:         l.Address,
		PostalCode:      l.PostalCode,
		HourlyRateCents: l.HourlyRateCents,
		Capacity:        l.Capacity,
	}
}

func (l *LotBuilder) BuildViewQuery() *queries.LotView {
	return &queries.LotView{
		ID:              uuid.New(),
		Name:            l.Name,
		Address:         l.Address,
		PostalCode:      l.PostalCode,
		HourlyRateCents: l.HourlyRateCents,
		Capacity:        l.Capacity,
		AvailableSpots:  int64(l.Capacity),
		OccupiedSpots:   0,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func (l *LotBuilder) WithName(name string) *LotBuilder {
	l.Name = name
	return l
}

func (l *LotBuilder) WithHourlyRateCents(rate int64) *LotBuilder {
	l.HourlyRateCents = rate
	return l
}

func (l *LotBuilder) WithCapacity(capacity int32) *LotBuilder {
	l.Capacity = capacity
	return l
}
