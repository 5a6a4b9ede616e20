package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"parkhub/internal/infra"
	"parkhub/internal/infra/repository"
	"parkhub/internal/pkg/errs"
	"parkhub/internal/pkg/pgconv"
	"parkhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db infra.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db infra.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, db infra.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx infra.DBTX

	// Lazy-initialized repositories
	spotRepo         shared.SpotRepository
	reservationRepo  shared.ReservationRepository
	lotRepo          shared.LotRepository
	userRepo         shared.UserRepository
	idempotencyRepo  shared.IdempotencyRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() infra.DBTX {
	return t.dbtx
}

func (t *pgTx) Spots() shared.SpotRepository {
	if t.spotRepo == nil {
		t.spotRepo = repository.NewSpotRepository(t.dbtx)
	}
	return t.spotRepo
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Lots() shared.LotRepository {
	if t.lotRepo == nil {
		t.lotRepo = repository.NewLotRepository(t.dbtx)
	}
	return t.lotRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.dbtx)
	}
	return t.userRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.dbtx)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

// commandReads answers the snapshot lookups commands need before writing.
// Inside Within it runs on the transaction, so snapshots see uncommitted
// writes of the same command.
type commandReads struct {
	dbtx infra.DBTX
}

func (r *commandReads) LotByID(ctx context.Context, id uuid.UUID) (*shared.LotSnapshot, error) {
	var snap shared.LotSnapshot
	err := r.dbtx.QueryRow(ctx,
		`SELECT id, name, address, postal_code, hourly_rate_cents, capacity
		 FROM lots WHERE id = $1`,
		id).Scan(&snap.ID, &snap.Name, &snap.Address, &snap.PostalCode,
		&snap.HourlyRateCents, &snap.Capacity)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read lot", err)
	}
	return &snap, nil
}

func (r *commandReads) LotOccupancy(ctx context.Context, lotID uuid.UUID) (*shared.LotOccupancy, error) {
	var occ shared.LotOccupancy
	err := r.dbtx.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE status = 'available'),
		        COUNT(*) FILTER (WHERE status = 'occupied')
		 FROM spots WHERE lot_id = $1`,
		lotID).Scan(&occ.Available, &occ.Occupied)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read lot occupancy", err)
	}
	return &occ, nil
}

func (r *commandReads) SpotByID(ctx context.Context, id uuid.UUID) (*shared.SpotSnapshot, error) {
	var snap shared.SpotSnapshot
	err := r.dbtx.QueryRow(ctx,
		`SELECT id, lot_id, label, status, created_at, updated_at FROM spots WHERE id = $1`,
		id).Scan(&snap.ID, &snap.LotID, &snap.Label, &snap.Status,
		&snap.CreatedAt, &snap.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("spot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read spot", err)
	}
	return &snap, nil
}

// Labels are generated as S-<number>, so the next free label comes from the
// highest suffix still in use, not from the spot count. Counting breaks once
// a spot in the middle has been deleted.
func (r *commandReads) MaxSpotNumber(ctx context.Context, lotID uuid.UUID) (int32, error) {
	var max int32
	err := r.dbtx.QueryRow(ctx,
		`SELECT COALESCE(MAX(NULLIF(regexp_replace(label, '\D', '', 'g'), '')::int), 0)
		 FROM spots WHERE lot_id = $1`,
		lotID).Scan(&max)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to read max spot number", err)
	}
	return max, nil
}

// The spot and lot joins are LEFT: a closed entry survives its spot, and the
// rate is only needed while the entry is still open.
func (r *commandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	var (
		snap      shared.ReservationSnapshot
		spotID    pgtype.UUID
		lotID     pgtype.UUID
		vehicle   pgtype.Text
		closedAt  pgtype.Timestamptz
		costCents pgtype.Int8
		rateCents pgtype.Int8
	)
	err := r.dbtx.QueryRow(ctx,
		`SELECT r.id, r.spot_id, s.lot_id, r.user_id, r.vehicle_number,
		        r.opened_at, r.closed_at, r.cost_cents, r.created_at, r.updated_at,
		        l.hourly_rate_cents
		 FROM reservations r
		 LEFT JOIN spots s ON s.id = r.spot_id
		 LEFT JOIN lots l ON l.id = s.lot_id
		 WHERE r.id = $1`,
		id).Scan(&snap.ID, &spotID, &lotID, &snap.UserID, &vehicle,
		&snap.OpenedAt, &closedAt, &costCents, &snap.CreatedAt, &snap.UpdatedAt,
		&rateCents)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read reservation", err)
	}
	if p := pgconv.UUIDPtrFromPgtype(spotID); p != nil {
		snap.SpotID = *p
	}
	if p := pgconv.UUIDPtrFromPgtype(lotID); p != nil {
		snap.LotID = *p
	}
	snap.VehicleNumber = pgconv.StringPtrFromPgtype(vehicle)
	snap.ClosedAt = pgconv.TimePtrFromPgtype(closedAt)
	snap.CostCents = pgconv.Int64PtrFromPgtype(costCents)
	if p := pgconv.Int64PtrFromPgtype(rateCents); p != nil {
		snap.HourlyRateCents = *p
	}
	return &snap, nil
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		record   shared.IdempotencyRecord
		resultID pgtype.UUID
	)
	err := r.dbtx.QueryRow(ctx,
		`SELECT key, user_id, status, request_hash, result_reservation_id, expires_at
		 FROM idempotency_keys
		 WHERE key = $1 AND user_id = $2`,
		key, userID).Scan(&record.Key, &record.UserID, &record.Status,
		&record.RequestHash, &resultID, &record.ExpiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read idempotency key", err)
	}
	record.ResultReservationID = pgconv.UUIDPtrFromPgtype(resultID)
	return &record, nil
}
