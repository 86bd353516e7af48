package domain

// GroupBy selects the reporting dimension for aggregation
type GroupBy string

const (
	GroupByDate    GroupBy = "date"
	GroupByUser    GroupBy = "user"
	GroupByProject GroupBy = "project"
	GroupByTask    GroupBy = "task"
)

// IsValid reports whether the grouping dimension is one of the supported set.
func (g GroupBy) IsValid() bool {
	switch g {
	case GroupByDate, GroupByUser, GroupByProject, GroupByTask:
		return true
	}
	return false
}

// Bucket is one grouped row produced by the reporter. Date grouping buckets
// by the composite of calendar date, user, project, and task; the identifying
// fields of each composite are carried so callers can roll up further.
// Label groupings (user/project/task) fill only the matching key fields.
type Bucket struct {
	// Date is the calendar date ("2006-01-02") in the reporting timezone.
	// Empty unless grouping by date.
	Date        string
	UserID      *int64
	ProjectID   *int64
	TaskID      *int64
	ProjectName string
	TaskName    string
	// Label is the display name of the grouped dimension: the date, the
	// user id, the project name, or the task name.
	Label string

	TotalMinutes int64
	EntryCount   int64
}

// Totals is the scalar summary for a filter, used for headline statistics.
type Totals struct {
	TotalMinutes    int64
	BillableMinutes int64
	EntryCount      int64
}
