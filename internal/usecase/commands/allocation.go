package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"parkhub/internal/domain/reservation"
	reqdto "parkhub/internal/handler/dto/request"
	"parkhub/internal/infra"
	"parkhub/internal/pkg/clock"
	"parkhub/internal/pkg/errs"
	"parkhub/internal/usecase/queries"
	"parkhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrLotNotFound              = errs.New("lot not found")
	ErrNoSpotAvailable          = errs.New("no spot available")
	ErrSpotClaimConflict        = errs.New("spot claim conflict")
	ErrReservationNotFound      = errs.New("reservation not found")
	ErrNotReservationOwner      = errs.New("not the reservation owner")
	ErrReservationAlreadyClosed = errs.New("reservation already closed")
	ErrInvalidReleaseInterval   = errs.New("invalid release interval")
	ErrDomainValidation         = errs.New("domain validation error")
	ErrIdempotencyInProgress    = errs.New("idempotency in progress")
	ErrDuplicateRequest         = errs.New("duplicate request with different parameters")
	ErrIdempotencyCheckFailed   = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed  = errs.New("database operation failed")
)

const reserveEndpoint = "POST /reservations"

type ReserveResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type AllocationCommands interface {
	// Reserve claims the first available spot of the lot and opens a ledger
	// entry for it, all in one transaction.
	Reserve(ctx context.Context, req reqdto.CreateReservationRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*ReserveResult, error)
	// Release closes the caller's entry, prices the stay and frees the spot,
	// all in one transaction.
	Release(ctx context.Context, reservationID, userID uuid.UUID) (*queries.ReservationView, error)
}

type allocationCommandsImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewAllocationCommands(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	clock clock.Clock,
) AllocationCommands {
	return &allocationCommandsImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		clock:              clock,
	}
}

func (a *allocationCommandsImpl) Reserve(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*ReserveResult, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := a.clock.Now().Add(24 * time.Hour)

	replayed, err := a.handleIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &ReserveResult{Reservation: replayed, IsReplayed: true}, nil
	}

	reservationID, conflictedSpot, err := a.allocate(ctx, req, userID, idempotencyKey, uuid.Nil)
	if errors.Is(err, ErrSpotClaimConflict) {
		// A spot marked available while an open entry still holds it (state
		// drift the unique index catches) would be re-picked forever, so the
		// retry excludes it. A second conflict is surfaced.
		slog.Warn("retrying spot claim after conflict",
			"lot_id", req.LotID, "spot_id", conflictedSpot)
		reservationID, _, err = a.allocate(ctx, req, userID, idempotencyKey, conflictedSpot)
	}
	if err != nil {
		return nil, err
	}

	view, err := a.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &ReserveResult{Reservation: view, IsReplayed: false}, nil
}

// handleIdempotency registers the key and reports a prior outcome, if any.
// The key row is committed on its own so a failed reservation attempt still
// leaves a record to diagnose.
func (a *allocationCommandsImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.ReservationView, error) {
	var (
		inserted bool
		record   *shared.IdempotencyRecord
	)

	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		won, err := tx.Idempotency().TryInsert(ctx, tx.DB(), idempotencyKey, userID, reserveEndpoint, requestHash, expiresAt)
		if err != nil {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		inserted = won
		if won {
			return nil
		}
		existing, err := tx.Reads().IdempotencyByKey(ctx, idempotencyKey, userID)
		if err != nil {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		record = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	if record.RequestHash != requestHash {
		return nil, ErrDuplicateRequest
	}

	switch record.Status {
	case "completed":
		if record.ResultReservationID == nil {
			return nil, errs.New("completed request missing result reservation ID")
		}
		// Use system-level access for idempotency replay
		return a.reservationQueries.GetByIDSystem(ctx, *record.ResultReservationID)

	case "processing":
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

// allocate also reports which spot a DUPLICATE_KEY conflict happened on, so
// the caller can exclude it from a retry.
func (a *allocationCommandsImpl) allocate(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	userID, idempotencyKey uuid.UUID,
	excludeSpotID uuid.UUID,
) (uuid.UUID, uuid.UUID, error) {
	vehicle, err := reservation.NewVehicleNumber(req.GetVehicleNumber())
	if err != nil {
		return uuid.Nil, uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var reservationID, conflictedSpot uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().LotByID(ctx, req.LotID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		claimed, err := tx.Spots().ClaimFirstAvailable(ctx, tx.DB(), req.LotID, excludeSpotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrNoSpotAvailable
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entry, err := reservation.Open(claimed.ID, userID, vehicle, a.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		id, err := tx.Reservations().Open(ctx, tx.DB(), entry)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				conflictedSpot = claimed.ID
				return ErrSpotClaimConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		reservationID = id

		if err := createReservationJob(ctx, tx, "reservation_opened", id, a.clock.Now()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		resultHash := calculateIDHash(id)
		if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, userID, resultHash, id); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, conflictedSpot, err
	}
	return reservationID, uuid.Nil, nil
}

func (a *allocationCommandsImpl) Release(ctx context.Context, reservationID, userID uuid.UUID) (*queries.ReservationView, error) {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entry, err := reservationFromSnapshot(snap)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if !entry.IsOwnedBy(userID) {
			return ErrNotReservationOwner
		}

		if err := entry.Close(a.clock.Now(), snap.HourlyRateCents); err != nil {
			if errors.Is(err, reservation.ErrAlreadyClosed) {
				return ErrReservationAlreadyClosed
			}
			return errs.Mark(err, ErrInvalidReleaseInterval)
		}

		closed, err := tx.Reservations().Close(ctx, tx.DB(), reservationID, *entry.ClosedAt(), entry.Cost().Cents())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !closed {
			// Lost a race with a concurrent release of the same entry.
			return ErrReservationAlreadyClosed
		}

		released, err := tx.Spots().Release(ctx, tx.DB(), snap.SpotID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !released {
			slog.Warn("released reservation for a spot that was not occupied",
				"reservation_id", reservationID, "spot_id", snap.SpotID)
		}

		return createReservationJob(ctx, tx, "reservation_closed", reservationID, *entry.ClosedAt())
	})
	if err != nil {
		return nil, err
	}

	view, err := a.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func reservationFromSnapshot(snap *shared.ReservationSnapshot) (*reservation.Reservation, error) {
	var vehicleStr string
	if snap.VehicleNumber != nil {
		vehicleStr = *snap.VehicleNumber
	}
	vehicle, err := reservation.NewVehicleNumber(vehicleStr)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		snap.ID, snap.SpotID, snap.UserID, vehicle,
		snap.OpenedAt, snap.ClosedAt, snap.CostCents,
		snap.CreatedAt, snap.UpdatedAt,
	), nil
}

func createReservationJob(ctx context.Context, tx shared.Tx, topic string, reservationID uuid.UUID, runAt time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": reservationID,
		"type":           topic,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), "amqp", topic, payload, runAt)
}

func calculateRequestHash(req reqdto.CreateReservationRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
