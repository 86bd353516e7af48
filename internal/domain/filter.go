package domain

import (
	"time"
)

// SortKey selects the column used to order entry listings
type SortKey string

const (
	SortByStartTime SortKey = "start_time"
	SortByCreatedAt SortKey = "created_at"
)

// SortDirection selects the ordering direction
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Filter enumerates every supported way to narrow an entry listing.
// All fields are optional; nil means "do not filter on this dimension".
// Filters are explicit named fields, never caller-assembled key/value maps.
type Filter struct {
	UserID    *int64
	TaskID    *int64
	ProjectID *int64
	// DateFrom and DateTo bound the entry's start time, inclusive.
	DateFrom *time.Time
	DateTo   *time.Time
	Billable *bool
	// Text matches case-insensitively against the entry description, the
	// task name, and the project name.
	Text *string
	// ClosedOnly excludes open entries when set.
	ClosedOnly bool

	SortKey       SortKey
	SortDirection SortDirection
	Offset        int
	Limit         int
}

// UpdateFields is an explicit partial update for a time entry. A nil field is
// left untouched; the Clear flags reset the corresponding nullable column.
type UpdateFields struct {
	TaskID      *int64
	ProjectID   *int64
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Billable    *bool

	ClearTask        bool
	ClearProject     bool
	ClearDescription bool
}

// IsEmpty returns true when the update would change nothing.
func (f UpdateFields) IsEmpty() bool {
	return f.TaskID == nil &&
		f.ProjectID == nil &&
		f.Description == nil &&
		f.StartTime == nil &&
		f.EndTime == nil &&
		f.Billable == nil &&
		!f.ClearTask &&
		!f.ClearProject &&
		!f.ClearDescription
}

// TouchesInterval returns true when the update changes start or end time and
// therefore requires interval re-validation and duration recomputation.
func (f UpdateFields) TouchesInterval() bool {
	return f.StartTime != nil || f.EndTime != nil
}
