//go:build unit

package reservation_test

import (
	"strings"
	"testing"
	"time"

	"parkhub/internal/domain/reservation"
	"parkhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ReservationBuilder)
	errIs  error
}

func TestReservation(t *testing.T) {
	t.Run("basic open case", func(t *testing.T) {
		actual, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.IsOpen())
		assert.Nil(t, actual.ClosedAt())
		assert.Nil(t, actual.Cost())
		assert.Equal(t, "ABC-1234", actual.VehicleNumber().String())
	})

	t.Run("open validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing spot",
				mutate: func(b *builder.ReservationBuilder) { b.WithSpotID(uuid.Nil) },
				errIs:  reservation.ErrMissingSpot,
			},
			{
				name:   "missing user",
				mutate: func(b *builder.ReservationBuilder) { b.WithUserID(uuid.Nil) },
				errIs:  reservation.ErrMissingUser,
			},
			{
				name:   "zero opening time",
				mutate: func(b *builder.ReservationBuilder) { b.WithOpenedAt(time.Time{}) },
				errIs:  reservation.ErrZeroOpenedAt,
			},
			{
				name:   "empty vehicle number allowed",
				mutate: func(b *builder.ReservationBuilder) { b.WithVehicleNumber("") },
			},
			{
				name: "vehicle number too long",
				mutate: func(b *builder.ReservationBuilder) {
					b.WithVehicleNumber(strings.Repeat("X", reservation.MaxVehicleNumberLength+1))
				},
				errIs: reservation.ErrVehicleNumberTooLong,
			},
		})
	})

	t.Run("close computes the cost once", func(t *testing.T) {
		entry, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		closedAt := entry.OpenedAt().Add(90 * time.Minute)
		require.NoError(t, entry.Close(closedAt, 1000))

		assert.False(t, entry.IsOpen())
		require.NotNil(t, entry.Cost())
		assert.Equal(t, int64(1500), entry.Cost().Cents())
		require.NotNil(t, entry.ClosedAt())
		assert.Equal(t, closedAt, *entry.ClosedAt())
	})

	t.Run("double close rejected", func(t *testing.T) {
		entry, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		closedAt := entry.OpenedAt().Add(time.Hour)
		require.NoError(t, entry.Close(closedAt, 1000))

		err = entry.Close(closedAt.Add(time.Hour), 1000)
		require.ErrorIs(t, err, reservation.ErrAlreadyClosed)

		// First close result is untouched.
		assert.Equal(t, int64(1000), entry.Cost().Cents())
	})

	t.Run("close with zero interval rejected", func(t *testing.T) {
		entry, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		err = entry.Close(entry.OpenedAt(), 1000)
		require.ErrorIs(t, err, reservation.ErrInvalidInterval)
		assert.True(t, entry.IsOpen())
	})

	t.Run("reconstructed entry keeps its lifecycle guards", func(t *testing.T) {
		opened := time.Now().UTC().Add(-time.Hour)
		closed := opened.Add(30 * time.Minute)
		cost := int64(500)
		owner := uuid.New()

		entry := reservation.ReconstructReservation(
			uuid.New(), uuid.New(), owner, reservation.VehicleNumber{},
			opened, &closed, &cost, opened, closed,
		)

		assert.False(t, entry.IsOpen())
		assert.True(t, entry.IsOwnedBy(owner))
		require.NotNil(t, entry.Cost())
		assert.Equal(t, cost, entry.Cost().Cents())

		// A row loaded as closed can never close again.
		err := entry.Close(closed.Add(time.Hour), 1000)
		require.ErrorIs(t, err, reservation.ErrAlreadyClosed)
	})

	t.Run("vehicle number trimming", func(t *testing.T) {
		vehicle, err := reservation.NewVehicleNumber("  AB 123  ")
		require.NoError(t, err)
		assert.Equal(t, "AB 123", vehicle.String())
	})

	t.Run("ownership", func(t *testing.T) {
		owner := uuid.New()
		entry, err := builder.NewReservationBuilder().WithUserID(owner).BuildDomain()
		require.NoError(t, err)

		assert.True(t, entry.IsOwnedBy(owner))
		assert.False(t, entry.IsOwnedBy(uuid.New()))
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewReservationBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
