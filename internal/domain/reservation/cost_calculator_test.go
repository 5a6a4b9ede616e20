//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"parkhub/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCost(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name            string
		duration        time.Duration
		hourlyRateCents int64
		wantCents       int64
		errIs           error
	}{
		{
			name:            "one and a half hours at ten dollars",
			duration:        90 * time.Minute,
			hourlyRateCents: 1000,
			wantCents:       1500,
		},
		{
			name:            "exactly one hour",
			duration:        time.Hour,
			hourlyRateCents: 1000,
			wantCents:       1000,
		},
		{
			name:            "one minute rounds to whole cents",
			duration:        time.Minute,
			hourlyRateCents: 1000,
			wantCents:       17, // 16.66... rounds half-up
		},
		{
			name:            "one second at low rate rounds down",
			duration:        time.Second,
			hourlyRateCents: 100,
			wantCents:       0, // 0.027... cents
		},
		{
			name:            "half cent rounds up",
			duration:        30 * time.Minute,
			hourlyRateCents: 1,
			wantCents:       1, // 0.5 cents
		},
		{
			name:            "multi-day stay",
			duration:        49 * time.Hour,
			hourlyRateCents: 250,
			wantCents:       12250,
		},
		{
			name:            "zero duration rejected",
			duration:        0,
			hourlyRateCents: 1000,
			errIs:           reservation.ErrInvalidInterval,
		},
		{
			name:            "negative duration rejected",
			duration:        -time.Hour,
			hourlyRateCents: 1000,
			errIs:           reservation.ErrInvalidInterval,
		},
		{
			name:            "zero rate rejected",
			duration:        time.Hour,
			hourlyRateCents: 0,
			errIs:           reservation.ErrInvalidRate,
		},
		{
			name:            "negative rate rejected",
			duration:        time.Hour,
			hourlyRateCents: -100,
			errIs:           reservation.ErrInvalidRate,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := reservation.ComputeCost(base, base.Add(c.duration), c.hourlyRateCents)

			if c.errIs != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.wantCents, got.Cents())
		})
	}
}

func TestEstimateCost(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("matches compute for the same interval", func(t *testing.T) {
		now := base.Add(2 * time.Hour)
		estimate, err := reservation.EstimateCost(base, now, 500)
		require.NoError(t, err)

		final, err := reservation.ComputeCost(base, now, 500)
		require.NoError(t, err)

		assert.Equal(t, final.Cents(), estimate.Cents())
	})

	t.Run("clock before opening rejected", func(t *testing.T) {
		_, err := reservation.EstimateCost(base, base.Add(-time.Minute), 500)
		require.ErrorIs(t, err, reservation.ErrInvalidInterval)
	})
}
