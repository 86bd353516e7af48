package sqlite

import "time"

// TimeEntry is the database representation of a tracked block of time.
// Pointer fields map to NULLable columns. An open entry has NULL end_time and
// NULL duration_minutes; a closed entry has both set.
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

// Task is a label row for entries referencing a task
type Task struct {
	ID   int64
	Name string
}

// Project is a label row for entries referencing a project
type Project struct {
	ID   int64
	Name string
}

// EntryTotals carries the scalar aggregation for a search
type EntryTotals struct {
	TotalMinutes    int64
	BillableMinutes int64
	EntryCount      int64
}
