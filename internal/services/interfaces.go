package services

import (
	"context"
	"time"

	"timekeeper/internal/domain"
)

// StartOptions contains the inputs for starting a timer. Task, project,
// description, and billable are optional; a nil Billable takes the configured
// deployment default.
type StartOptions struct {
	UserID      int64
	TaskID      *int64
	ProjectID   *int64
	Description *string
	Billable    *bool
}

// ManualEntryOptions contains the inputs for logging a closed entry directly,
// without going through start/stop.
type ManualEntryOptions struct {
	UserID      int64
	TaskID      *int64
	ProjectID   *int64
	Description *string
	Billable    *bool
	StartTime   time.Time
	EndTime     time.Time
}

// ActiveTimer is a running entry together with its live elapsed time,
// computed for display and never persisted.
type ActiveTimer struct {
	Entry          *domain.TimeEntry `json:"entry"`
	ElapsedSeconds int64             `json:"elapsed_seconds"`
}

// TimerService orchestrates the per-user timer lifecycle: Idle -> Running ->
// Idle. Pause and resume are stop/start pairs sharing a session tag; the
// persisted model only knows open and closed entries.
type TimerService interface {
	// Start begins a timer for a user. Fails with a conflict error naming
	// the running entry when one is already open.
	Start(ctx context.Context, opts StartOptions) (*domain.TimeEntry, error)

	// Stop closes the entry identified by entryID, or the user's open entry
	// when entryID is nil. Exactly one of two concurrent stops succeeds.
	Stop(ctx context.Context, userID int64, entryID *int64) (*domain.TimeEntry, error)

	// Pause stops the user's open entry, keeping its session tag so Resume
	// can continue it.
	Pause(ctx context.Context, userID int64) (*domain.TimeEntry, error)

	// Resume starts a new entry continuing the user's most recently closed
	// one: same task, project, description, and session tag.
	Resume(ctx context.Context, userID int64) (*domain.TimeEntry, error)

	// Active returns the user's running timer with live elapsed seconds,
	// or nil when idle.
	Active(ctx context.Context, userID int64) (*ActiveTimer, error)

	// LogManual records a closed entry directly from both instants.
	LogManual(ctx context.Context, opts ManualEntryOptions) (*domain.TimeEntry, error)
}

// EntryService handles retrieval and maintenance of persisted time entries
type EntryService interface {
	Get(ctx context.Context, id int64) (*domain.TimeEntry, error)
	List(ctx context.Context, filter domain.Filter) ([]*domain.TimeEntry, error)
	Count(ctx context.Context, filter domain.Filter) (int64, error)

	// Update applies only the supplied fields, recomputing duration when
	// start or end changes.
	Update(ctx context.Context, id int64, fields domain.UpdateFields) (*domain.TimeEntry, error)

	// Delete returns false when the id did not exist; that is not an error.
	Delete(ctx context.Context, id int64) (bool, error)
}

// ReportingService produces grouped totals and headline statistics
type ReportingService interface {
	// Aggregate groups the closed entries matching the filter by the given
	// dimension and computes per-bucket totals.
	Aggregate(ctx context.Context, filter domain.Filter, groupBy domain.GroupBy) ([]*domain.Bucket, error)

	// Totals computes the scalar summary for a filter.
	Totals(ctx context.Context, filter domain.Filter) (*domain.Totals, error)

	// FormatMinutes renders a minute total for display, e.g. "3h 30m".
	FormatMinutes(minutes int64) string
}

// LabelService maintains the task and project labels reports resolve names
// through. Lifecycle ownership stays with the project-management
// collaborator; this is bookkeeping for reporting and search.
type LabelService interface {
	CreateTask(ctx context.Context, name string) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	CreateProject(ctx context.Context, name string) (*domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
}

// ServiceContainer bundles all services with their shared dependencies
type ServiceContainer struct {
	Timer     TimerService
	Entries   EntryService
	Reporting ReportingService
	Labels    LabelService
}
