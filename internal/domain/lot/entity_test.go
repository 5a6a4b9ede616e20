//go:build unit

package lot_test

import (
	"strings"
	"testing"

	"parkhub/internal/domain/lot"
	"parkhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.LotBuilder)
	errIs  error
}

func TestLot(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewLotBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Lakeview Garage", actual.Name())
		assert.Equal(t, int64(1000), actual.HourlyRateCents())
		assert.Equal(t, int32(3), actual.Capacity())
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty name",
				mutate: func(b *builder.LotBuilder) { b.WithName("") },
				errIs:  lot.ErrEmptyName,
			},
			{
				name:   "whitespace only name",
				mutate: func(b *builder.LotBuilder) { b.WithName("   ") },
				errIs:  lot.ErrEmptyName,
			},
			{
				name:   "maximum length name",
				mutate: func(b *builder.LotBuilder) { b.WithName(strings.Repeat("a", lot.MaxNameLength)) },
			},
			{
				name:   "name exceeds maximum length",
				mutate: func(b *builder.LotBuilder) { b.WithName(strings.Repeat("a", lot.MaxNameLength+1)) },
				errIs:  lot.ErrNameTooLong,
			},
			{
				name:   "zero hourly rate",
				mutate: func(b *builder.LotBuilder) { b.WithHourlyRateCents(0) },
				errIs:  lot.ErrInvalidHourlyRate,
			},
			{
				name:   "negative hourly rate",
				mutate: func(b *builder.LotBuilder) { b.WithHourlyRateCents(-500) },
				errIs:  lot.ErrInvalidHourlyRate,
			},
			{
				name:   "zero capacity",
				mutate: func(b *builder.LotBuilder) { b.WithCapacity(0) },
				errIs:  lot.ErrInvalidCapacity,
			},
			{
				name:   "single spot capacity",
				mutate: func(b *builder.LotBuilder) { b.WithCapacity(1) },
			},
		})
	})

	t.Run("name trimming", func(t *testing.T) {
		actual, err := builder.NewLotBuilder().WithName("  Central Lot  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Central Lot", actual.Name())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewLotBuilder().With(c.mutate).BuildDomain()

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
