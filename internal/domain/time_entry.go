package domain

import (
	"time"
)

// TimeEntry represents a tracked block of time in the domain model.
// This is a pure domain model without database-specific concerns.
//
// An entry is either open (no end time, no duration) or closed (both set and
// mutually consistent). At most one entry per user may be open at any instant.
type TimeEntry struct {
	ID              int64
	UserID          int64
	TaskID          *int64
	ProjectID       *int64
	Description     *string
	SessionID       *string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes *int64
	Billable        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOpen returns true if the entry represents a currently running timer.
func (te TimeEntry) IsOpen() bool {
	return te.EndTime == nil
}

// IsClosed returns true if the entry has been stopped.
func (te TimeEntry) IsClosed() bool {
	return te.EndTime != nil
}

// IsValid checks the open/closed invariant: an open entry carries neither end
// time nor duration, a closed entry carries both with a non-negative duration
// and an end after the start.
func (te TimeEntry) IsValid() bool {
	if te.UserID <= 0 {
		return false
	}
	if te.StartTime.IsZero() {
		return false
	}
	if te.EndTime == nil {
		return te.DurationMinutes == nil
	}
	if te.DurationMinutes == nil || *te.DurationMinutes < 0 {
		return false
	}
	return te.EndTime.After(te.StartTime)
}
