package queries

import (
	"context"

	"parkhub/internal/domain/reservation"
	"parkhub/internal/domain/user"
	"parkhub/internal/infra"
	"parkhub/internal/pkg/clock"
	"parkhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrNoActiveReservation = errs.New("no active reservation for spot")
)

type ReservationQueries interface {
	// GetByID hides entries the actor does not own unless the actor is an
	// admin, so a foreign id probes as not found.
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem bypasses ownership checks for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// ListByUser is the user's complete history, open and closed entries
	// alike, in creation order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
	// ActiveForSpot returns the open entry holding the spot together with a
	// cost estimate as of now.
	ActiveForSpot(ctx context.Context, spotID uuid.UUID) (*ActiveReservationView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
	// FindActiveBySpot also returns the lot's hourly rate for estimation.
	FindActiveBySpot(ctx context.Context, spotID uuid.UUID) (*ReservationView, int64, error)
}

type reservationQueriesImpl struct {
	repo  ReservationViewRepo
	clock clock.Clock
}

func NewReservationQueries(repo ReservationViewRepo, clock clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{repo: repo, clock: clock}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	if view.UserID != actorID && actorRole != user.RoleAdmin {
		return nil, ErrReservationNotFound
	}

	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error) {
	return q.repo.FindByUserID(ctx, userID)
}

func (q *reservationQueriesImpl) ActiveForSpot(ctx context.Context, spotID uuid.UUID) (*ActiveReservationView, error) {
	view, hourlyRateCents, err := q.repo.FindActiveBySpot(ctx, spotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNoActiveReservation
		}
		return nil, err
	}

	now := q.clock.Now()
	estimate, err := reservation.EstimateCost(view.OpenedAt, now, hourlyRateCents)
	if err != nil {
		// Clock skew can put now before openedAt; report a zero estimate
		// rather than failing the read.
		estimate = reservation.NewMoney(0)
	}

	return &ActiveReservationView{
		Reservation:        *view,
		EstimatedCostCents: estimate.Cents(),
		EstimatedAt:        now,
	}, nil
}
