// Package duration computes elapsed time for closed time entries.
package duration

import (
	"fmt"
	"time"

	"timekeeper/internal/errors"
)

// Minutes returns the elapsed wall-clock time between start and end as a
// whole number of minutes, rounded to the nearest minute with halves rounding
// up. It fails when either instant is the zero time or when end is not
// strictly after start.
func Minutes(start, end time.Time) (int64, error) {
	if start.IsZero() || end.IsZero() {
		return 0, errors.NewValidationError("invalid interval: start and end must be valid timestamps", nil)
	}
	if !end.After(start) {
		return 0, errors.NewValidationError(
			fmt.Sprintf("invalid interval: end (%s) must be after start (%s)",
				end.Format(time.RFC3339), start.Format(time.RFC3339)), nil)
	}
	// Adding half a minute before truncating rounds half up.
	return int64((end.Sub(start) + 30*time.Second) / time.Minute), nil
}

// ElapsedSeconds returns the whole seconds elapsed since start, for live
// display of a running timer. Never negative.
func ElapsedSeconds(start, now time.Time) int64 {
	if now.Before(start) {
		return 0
	}
	return int64(now.Sub(start) / time.Second)
}

// FormatMinutes formats a minute count as a human-readable duration string.
func FormatMinutes(minutes int64) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
