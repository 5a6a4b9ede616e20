package commands

import (
	"context"
	"fmt"

	"parkhub/internal/domain/lot"
	"parkhub/internal/domain/spot"
	reqdto "parkhub/internal/handler/dto/request"
	"parkhub/internal/infra"
	"parkhub/internal/pkg/errs"
	"parkhub/internal/pkg/patch"
	"parkhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrLotOccupied      = errs.New("lot has occupied spots")
	ErrSpotNotFound     = errs.New("spot not found")
	ErrSpotOccupied     = errs.New("spot is occupied")
	ErrLotHasNoCapacity = errs.New("lot capacity exhausted")
)

type LotCommands interface {
	CreateLot(ctx context.Context, req reqdto.CreateLotRequest) (uuid.UUID, error)
	UpdateLot(ctx context.Context, id uuid.UUID, req reqdto.UpdateLotRequest) error
	// DeleteLot removes the lot and its spots, but only while every spot is
	// available.
	DeleteLot(ctx context.Context, id uuid.UUID) error
	AddSpot(ctx context.Context, lotID uuid.UUID) (uuid.UUID, error)
	// DeleteSpot removes a spot only while it is available.
	DeleteSpot(ctx context.Context, spotID uuid.UUID) error
}

type lotCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewLotCommands(uow shared.UnitOfWork) LotCommands {
	return &lotCommandsImpl{uow: uow}
}

// CreateLot persists the lot and seeds capacity spots in the same
// transaction, so a half-created lot is never visible.
func (l *lotCommandsImpl) CreateLot(ctx context.Context, req reqdto.CreateLotRequest) (uuid.UUID, error) {
	entity, err := lot.NewLot(req.Name, req.Address, req.PostalCode, req.HourlyRateCents, req.Capacity)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var lotID uuid.UUID
	err = l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err := tx.Lots().Create(ctx, tx.DB(), entity)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		lotID = id

		for i := int32(1); i <= entity.Capacity(); i++ {
			s, err := spot.NewSpot(lotID, spotLabel(i))
			if err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
			if _, err := tx.Spots().Create(ctx, tx.DB(), s); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return lotID, nil
}

func (l *lotCommandsImpl) UpdateLot(ctx context.Context, id uuid.UUID, req reqdto.UpdateLotRequest) error {
	return l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Reads().LotByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		name := patch.Coalesce(req.Name, current.Name)
		address := patch.Coalesce(req.Address, current.Address)
		postalCode := patch.Coalesce(req.PostalCode, current.PostalCode)
		rate := patch.Coalesce(req.HourlyRateCents, current.HourlyRateCents)
		if err := lot.Validate(name, rate, current.Capacity); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Lots().Update(ctx, tx.DB(), id, name, address, postalCode, rate); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (l *lotCommandsImpl) DeleteLot(ctx context.Context, id uuid.UUID) error {
	return l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().LotByID(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		occ, err := tx.Reads().LotOccupancy(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if occ.Occupied > 0 {
			return ErrLotOccupied
		}

		if err := tx.Lots().Delete(ctx, tx.DB(), id); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (l *lotCommandsImpl) AddSpot(ctx context.Context, lotID uuid.UUID) (uuid.UUID, error) {
	var spotID uuid.UUID
	err := l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		lotSnap, err := tx.Reads().LotByID(ctx, lotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// Deleting a middle spot leaves holes, so the count is not a safe
		// label source; the highest suffix in use is.
		maxNumber, err := tx.Reads().MaxSpotNumber(ctx, lotID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		s, err := spot.NewSpot(lotID, spotLabel(maxNumber+1))
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		id, err := tx.Spots().Create(ctx, tx.DB(), s)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		spotID = id

		return tx.Lots().UpdateCapacity(ctx, tx.DB(), lotID, lotSnap.Capacity+1)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return spotID, nil
}

func (l *lotCommandsImpl) DeleteSpot(ctx context.Context, spotID uuid.UUID) error {
	return l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().SpotByID(ctx, spotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSpotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		status, err := spot.NewStatus(snap.Status)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		entity := spot.ReconstructSpot(snap.ID, snap.LotID, snap.Label, status, snap.CreatedAt, snap.UpdatedAt)
		if err := entity.CanDelete(); err != nil {
			return ErrSpotOccupied
		}

		// The conditional delete re-checks the status; the snapshot may have
		// gone stale under a concurrent claim.
		deleted, err := tx.Spots().Delete(ctx, tx.DB(), spotID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !deleted {
			return ErrSpotOccupied
		}

		lotSnap, err := tx.Reads().LotByID(ctx, snap.LotID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if lotSnap.Capacity <= 1 {
			return ErrLotHasNoCapacity
		}
		return tx.Lots().UpdateCapacity(ctx, tx.DB(), snap.LotID, lotSnap.Capacity-1)
	})
}

func spotLabel(n int32) string {
	return fmt.Sprintf("S-%03d", n)
}
