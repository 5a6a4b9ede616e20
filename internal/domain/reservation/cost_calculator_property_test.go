//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"parkhub/internal/domain/reservation"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestComputeCostProperties(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("cost is never negative and bounded by ceiling hours", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			seconds := rapid.Int64Range(1, 365*24*3600).Draw(t, "seconds")
			rate := rapid.Int64Range(1, 1_000_000).Draw(t, "rate")

			cost, err := reservation.ComputeCost(base, base.Add(time.Duration(seconds)*time.Second), rate)
			require.NoError(t, err)

			require.GreaterOrEqual(t, cost.Cents(), int64(0))

			ceilingHours := (seconds + 3599) / 3600
			require.LessOrEqual(t, cost.Cents(), ceilingHours*rate+1)
		})
	})

	t.Run("cost is monotone in duration", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			shorter := rapid.Int64Range(1, 30*24*3600).Draw(t, "shorter")
			extra := rapid.Int64Range(0, 24*3600).Draw(t, "extra")
			rate := rapid.Int64Range(1, 100_000).Draw(t, "rate")

			a, err := reservation.ComputeCost(base, base.Add(time.Duration(shorter)*time.Second), rate)
			require.NoError(t, err)
			b, err := reservation.ComputeCost(base, base.Add(time.Duration(shorter+extra)*time.Second), rate)
			require.NoError(t, err)

			require.LessOrEqual(t, a.Cents(), b.Cents())
		})
	})

	t.Run("whole hours are exact", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			hours := rapid.Int64Range(1, 1000).Draw(t, "hours")
			rate := rapid.Int64Range(1, 100_000).Draw(t, "rate")

			cost, err := reservation.ComputeCost(base, base.Add(time.Duration(hours)*time.Hour), rate)
			require.NoError(t, err)
			require.Equal(t, hours*rate, cost.Cents())
		})
	})
}
