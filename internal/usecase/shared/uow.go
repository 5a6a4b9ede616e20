package shared

import (
	"context"
	"time"

	"parkhub/internal/domain/lot"
	"parkhub/internal/domain/reservation"
	"parkhub/internal/domain/spot"
	"parkhub/internal/domain/user"
	"parkhub/internal/infra"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db infra.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db infra.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Spots() SpotRepository
	Reservations() ReservationRepository
	Lots() LotRepository
	Users() UserRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() infra.DBTX
}

type CommandReads interface {
	LotByID(ctx context.Context, id uuid.UUID) (*LotSnapshot, error)
	LotOccupancy(ctx context.Context, lotID uuid.UUID) (*LotOccupancy, error)
	SpotByID(ctx context.Context, id uuid.UUID) (*SpotSnapshot, error)
	// MaxSpotNumber is the highest numeric suffix among the lot's spot
	// labels, zero for an empty lot.
	MaxSpotNumber(ctx context.Context, lotID uuid.UUID) (int32, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type SpotRepository interface {
	// ClaimFirstAvailable atomically flips the first free spot of the lot to
	// occupied and returns it. NOT_FOUND means the lot is full. A non-nil
	// excludeSpotID skips that spot, so a retry after a claim conflict does
	// not pick the same row again.
	ClaimFirstAvailable(ctx context.Context, tx infra.DBTX, lotID, excludeSpotID uuid.UUID) (*ClaimedSpot, error)
	// Release flips the spot back to available. Returns false when the spot
	// was not occupied.
	Release(ctx context.Context, tx infra.DBTX, spotID uuid.UUID) (bool, error)
	Create(ctx context.Context, tx infra.DBTX, s *spot.Spot) (uuid.UUID, error)
	// Delete removes the spot only while it is available. Returns false when
	// the spot exists but is occupied.
	Delete(ctx context.Context, tx infra.DBTX, spotID uuid.UUID) (bool, error)
}

type ReservationRepository interface {
	// Open inserts a new ledger entry. DUPLICATE_KEY means another open entry
	// already holds the spot.
	Open(ctx context.Context, tx infra.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	// Close finalizes the entry once. Returns false when it was already closed.
	Close(ctx context.Context, tx infra.DBTX, id uuid.UUID, closedAt time.Time, costCents int64) (bool, error)
}

type LotRepository interface {
	Create(ctx context.Context, tx infra.DBTX, l *lot.Lot) (uuid.UUID, error)
	Update(ctx context.Context, tx infra.DBTX, id uuid.UUID, name, address, postalCode string, hourlyRateCents int64) error
	Delete(ctx context.Context, tx infra.DBTX, id uuid.UUID) error
	UpdateCapacity(ctx context.Context, tx infra.DBTX, id uuid.UUID, capacity int32) error
}

type UserRepository interface {
	Create(ctx context.Context, tx infra.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx infra.DBTX, userID uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert registers the key if it is new and reports whether this
	// request won the registration.
	TryInsert(ctx context.Context, tx infra.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx infra.DBTX, key, userID uuid.UUID, resultHash string, reservationID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx infra.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
