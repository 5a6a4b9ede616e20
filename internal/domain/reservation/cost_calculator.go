package reservation

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidInterval = errors.New("invalid reservation interval")
	ErrInvalidRate     = errors.New("hourly rate must be positive")
)

// ComputeCost prices a completed stay: duration in hours times the lot's
// hourly rate, rounded half-up to whole cents. Intervals of zero or negative
// length are rejected rather than billed as free.
func ComputeCost(openedAt, closedAt time.Time, hourlyRateCents int64) (Money, error) {
	if hourlyRateCents <= 0 {
		return Money{}, ErrInvalidRate
	}
	if !closedAt.After(openedAt) {
		return Money{}, ErrInvalidInterval
	}

	seconds := closedAt.Sub(openedAt).Seconds()
	raw := seconds * float64(hourlyRateCents) / 3600.0
	return NewMoney(int64(math.Floor(raw + 0.5))), nil
}

// EstimateCost prices an in-progress stay as if it ended now. The result is
// informational only and must never be written back to the ledger; the final
// cost is computed from the actual release time.
func EstimateCost(openedAt, now time.Time, hourlyRateCents int64) (Money, error) {
	return ComputeCost(openedAt, now, hourlyRateCents)
}
