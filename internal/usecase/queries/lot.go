package queries

import (
	"context"

	"parkhub/internal/infra"
	"parkhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrLotNotFound = errs.New("lot not found")

type LotQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*LotView, error)
	List(ctx context.Context) ([]*LotView, error)
	// Search matches lot name or postal code, case-insensitively.
	Search(ctx context.Context, query string) ([]*LotView, error)
	ListSpots(ctx context.Context, lotID uuid.UUID) ([]*SpotView, error)
	// Summary is the admin report: occupancy and realized revenue per lot.
	Summary(ctx context.Context) ([]*LotSummaryView, error)
}

type LotViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LotView, error)
	FindAll(ctx context.Context) ([]*LotView, error)
	SearchByNameOrPostalCode(ctx context.Context, query string) ([]*LotView, error)
	FindSpotsByLot(ctx context.Context, lotID uuid.UUID) ([]*SpotView, error)
	Summarize(ctx context.Context) ([]*LotSummaryView, error)
}

type lotQueriesImpl struct {
	repo LotViewRepo
}

func NewLotQueries(repo LotViewRepo) LotQueries {
	return &lotQueriesImpl{repo: repo}
}

func (q *lotQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*LotView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *lotQueriesImpl) List(ctx context.Context) ([]*LotView, error) {
	return q.repo.FindAll(ctx)
}

func (q *lotQueriesImpl) Search(ctx context.Context, query string) ([]*LotView, error) {
	if query == "" {
		return q.repo.FindAll(ctx)
	}
	return q.repo.SearchByNameOrPostalCode(ctx, query)
}

func (q *lotQueriesImpl) ListSpots(ctx context.Context, lotID uuid.UUID) ([]*SpotView, error) {
	if _, err := q.GetByID(ctx, lotID); err != nil {
		return nil, err
	}
	return q.repo.FindSpotsByLot(ctx, lotID)
}

func (q *lotQueriesImpl) Summary(ctx context.Context) ([]*LotSummaryView, error) {
	return q.repo.Summarize(ctx)
}
