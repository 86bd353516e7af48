package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"timekeeper/internal/errors"
	"timekeeper/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// SearchOptions contains all possible search parameters for time entries
type SearchOptions struct {
	UserID    *int64
	TaskID    *int64
	ProjectID *int64
	// StartFrom and StartTo bound the entry start time, inclusive
	StartFrom *time.Time
	StartTo   *time.Time
	Billable  *bool
	// Text matches against entry description, task name, and project name
	Text *string
	// ClosedOnly restricts results to entries with an end time
	ClosedOnly bool

	SortKey  string // "start_time" (default) or "created_at"
	SortDesc bool
	Offset   int
	Limit    int
}

// Repository defines the interface for database operations
type Repository interface {
	// Time entry operations
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	CreateOpenEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error)
	FindOpenEntry(ctx context.Context, userID int64) (*TimeEntry, error)
	FindLastClosedEntry(ctx context.Context, userID int64) (*TimeEntry, error)
	SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error)
	CountTimeEntries(ctx context.Context, opts SearchOptions) (int64, error)
	SumTimeEntries(ctx context.Context, opts SearchOptions) (*EntryTotals, error)
	UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error
	CloseTimeEntry(ctx context.Context, id, userID int64, endTime time.Time, durationMinutes int64, updatedAt time.Time) (bool, error)
	DeleteTimeEntry(ctx context.Context, id int64) (bool, error)

	// Label operations
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id int64) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)

	// Utility
	Close() error
}

// entryColumns lists the time_entries columns in scan order
const entryColumns = `te.id, te.user_id, te.task_id, te.project_id, te.description, te.session_id,
	te.start_time, te.end_time, te.duration_minutes, te.billable, te.created_at, te.updated_at`

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Each pooled connection to :memory: would get its own database
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTimeEntry inserts a time entry as-is, open or closed. Used for
// manually logged entries and test fixtures; timer starts go through
// CreateOpenEntry for the exclusivity guard.
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	INSERT INTO time_entries (user_id, task_id, project_id, description, session_id, start_time, end_time, duration_minutes, billable, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		entry.UserID, entry.TaskID, entry.ProjectID, entry.Description, entry.SessionID,
		FormatTimeForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime), entry.DurationMinutes,
		entry.Billable, FormatTimeForDB(entry.CreatedAt), FormatTimeForDB(entry.UpdatedAt))
	if err != nil {
		if isUniqueConstraintError(err) {
			return r.openEntryConflict(ctx, entry.UserID)
		}
		return err
	}

	entry.ID = id
	return nil
}

// CreateOpenEntry starts a timer: it inserts a new open entry only if the
// user has no open entry already. The check and the insert are a single
// statement, so two concurrent starts for the same user cannot both succeed;
// the partial unique index on (user_id) WHERE end_time IS NULL backstops the
// guard.
func (r *SQLiteRepository) CreateOpenEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	INSERT INTO time_entries (user_id, task_id, project_id, description, session_id, start_time, end_time, duration_minutes, billable, created_at, updated_at)
	SELECT ?, ?, ?, ?, ?, ?, NULL, NULL, ?, ?, ?
	WHERE NOT EXISTS (SELECT 1 FROM time_entries WHERE user_id = ? AND end_time IS NULL)`

	result, err := r.db.ExecContext(ctx, query,
		entry.UserID, entry.TaskID, entry.ProjectID, entry.Description, entry.SessionID,
		FormatTimeForDB(entry.StartTime), entry.Billable,
		FormatTimeForDB(entry.CreatedAt), FormatTimeForDB(entry.UpdatedAt),
		entry.UserID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return r.openEntryConflict(ctx, entry.UserID)
		}
		return HandleDatabaseError("create open entry", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return r.openEntryConflict(ctx, entry.UserID)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return HandleDatabaseError("get last insert ID", err)
	}
	entry.ID = id
	return nil
}

// openEntryConflict builds the conflict error naming the running entry
func (r *SQLiteRepository) openEntryConflict(ctx context.Context, userID int64) error {
	existing, err := r.FindOpenEntry(ctx, userID)
	if err != nil {
		return err
	}
	var existingID int64
	if existing != nil {
		existingID = existing.ID
	}
	return errors.NewTimerRunningError(userID, existingID)
}

// GetTimeEntry retrieves a time entry by ID
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	query := fmt.Sprintf(`
	SELECT %s
	FROM time_entries te
	WHERE te.id = ?`, entryColumns)

	return QuerySingle(ctx, r.db, query, ScanTimeEntry, "time entry", fmt.Sprintf("%d", id), id)
}

// FindOpenEntry returns the single open entry for a user, or nil when the
// user has no running timer. Finding more than one open row means the
// storage-level invariant was broken and is surfaced as a fatal consistency
// error, never silently resolved to one of the rows.
func (r *SQLiteRepository) FindOpenEntry(ctx context.Context, userID int64) (*TimeEntry, error) {
	query := fmt.Sprintf(`
	SELECT %s
	FROM time_entries te
	WHERE te.user_id = ? AND te.end_time IS NULL
	LIMIT 2`, entryColumns)

	entries, err := QueryMultiple(ctx, r.db, query, ScanTimeEntries, "open entry", userID)
	if err != nil {
		return nil, err
	}

	switch len(entries) {
	case 0:
		return nil, nil
	case 1:
		return entries[0], nil
	default:
		return nil, errors.NewConsistencyError(
			fmt.Sprintf("multiple open time entries found for user %d", userID))
	}
}

// FindLastClosedEntry returns the most recently closed entry for a user, or
// nil when the user has never closed one. Used by resume to continue the
// previous session.
func (r *SQLiteRepository) FindLastClosedEntry(ctx context.Context, userID int64) (*TimeEntry, error) {
	query := fmt.Sprintf(`
	SELECT %s
	FROM time_entries te
	WHERE te.user_id = ? AND te.end_time IS NOT NULL
	ORDER BY te.end_time DESC, te.id DESC
	LIMIT 1`, entryColumns)

	entries, err := QueryMultiple(ctx, r.db, query, ScanTimeEntries, "closed entry", userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

// buildEntryConditions translates search options into WHERE conditions
func buildEntryConditions(opts SearchOptions) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if opts.UserID != nil {
		conditions = append(conditions, "te.user_id = ?")
		args = append(args, *opts.UserID)
	}
	if opts.TaskID != nil {
		conditions = append(conditions, "te.task_id = ?")
		args = append(args, *opts.TaskID)
	}
	if opts.ProjectID != nil {
		conditions = append(conditions, "te.project_id = ?")
		args = append(args, *opts.ProjectID)
	}
	if opts.StartFrom != nil {
		conditions = append(conditions, "te.start_time >= ?")
		args = append(args, FormatTimeForDB(*opts.StartFrom))
	}
	if opts.StartTo != nil {
		conditions = append(conditions, "te.start_time <= ?")
		args = append(args, FormatTimeForDB(*opts.StartTo))
	}
	if opts.Billable != nil {
		conditions = append(conditions, "te.billable = ?")
		args = append(args, *opts.Billable)
	}
	if opts.Text != nil && *opts.Text != "" {
		conditions = append(conditions, "(te.description LIKE ? OR tasks.name LIKE ? OR projects.name LIKE ?)")
		pattern := "%" + *opts.Text + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if opts.ClosedOnly {
		conditions = append(conditions, "te.end_time IS NOT NULL")
	}

	return conditions, args
}

// buildEntryOrder translates sort options into an ORDER BY clause
func buildEntryOrder(opts SearchOptions) string {
	column := "te.start_time"
	if opts.SortKey == "created_at" {
		column = "te.created_at"
	}
	direction := "ASC"
	if opts.SortDesc {
		direction = "DESC"
	}
	// Secondary id ordering keeps pagination stable across equal timestamps
	return fmt.Sprintf(" ORDER BY %s %s, te.id %s", column, direction, direction)
}

// entrySearchBase is the FROM clause shared by search, count, and sum.
// Label tables are always LEFT JOINed so orphaned task/project references
// stay queryable.
const entrySearchBase = `
	FROM time_entries te
	LEFT JOIN tasks ON te.task_id = tasks.id
	LEFT JOIN projects ON te.project_id = projects.id`

// SearchTimeEntries returns entries matching the provided options
func (r *SQLiteRepository) SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error) {
	conditions, args := buildEntryConditions(opts)

	query := fmt.Sprintf("SELECT %s%s", entryColumns, entrySearchBase)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += buildEntryOrder(opts)
	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}

	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries", args...)
}

// CountTimeEntries returns the cardinality of a search without materializing rows
func (r *SQLiteRepository) CountTimeEntries(ctx context.Context, opts SearchOptions) (int64, error) {
	conditions, args := buildEntryConditions(opts)

	query := "SELECT COUNT(*)" + entrySearchBase
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, HandleDatabaseError("count time entries", err)
	}
	return count, nil
}

// SumTimeEntries returns total, billable, and entry counts for a search.
// Open entries carry no duration and are always excluded.
func (r *SQLiteRepository) SumTimeEntries(ctx context.Context, opts SearchOptions) (*EntryTotals, error) {
	opts.ClosedOnly = true
	conditions, args := buildEntryConditions(opts)

	query := `SELECT
		COALESCE(SUM(te.duration_minutes), 0),
		COALESCE(SUM(CASE WHEN te.billable <> 0 THEN te.duration_minutes ELSE 0 END), 0),
		COUNT(*)` + entrySearchBase
	query += " WHERE " + strings.Join(conditions, " AND ")

	totals := &EntryTotals{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&totals.TotalMinutes, &totals.BillableMinutes, &totals.EntryCount)
	if err != nil {
		return nil, HandleDatabaseError("sum time entries", err)
	}
	return totals, nil
}

// UpdateTimeEntry writes every mutable column of an existing entry
func (r *SQLiteRepository) UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	UPDATE time_entries
	SET user_id = ?, task_id = ?, project_id = ?, description = ?, session_id = ?,
	    start_time = ?, end_time = ?, duration_minutes = ?, billable = ?, updated_at = ?
	WHERE id = ?`

	err := ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", entry.ID),
		entry.UserID, entry.TaskID, entry.ProjectID, entry.Description, entry.SessionID,
		FormatTimeForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime), entry.DurationMinutes,
		entry.Billable, FormatTimeForDB(entry.UpdatedAt), entry.ID)
	if err != nil && isUniqueConstraintError(err) {
		return r.openEntryConflict(ctx, entry.UserID)
	}
	return err
}

// CloseTimeEntry atomically closes an open entry. The end_time IS NULL guard
// makes concurrent stops of the same entry resolve to exactly one winner:
// the statement reports zero affected rows for every loser.
func (r *SQLiteRepository) CloseTimeEntry(ctx context.Context, id, userID int64, endTime time.Time, durationMinutes int64, updatedAt time.Time) (bool, error) {
	query := `
	UPDATE time_entries
	SET end_time = ?, duration_minutes = ?, updated_at = ?
	WHERE id = ? AND user_id = ? AND end_time IS NULL`

	result, err := r.db.ExecContext(ctx, query,
		FormatTimeForDB(endTime), durationMinutes, FormatTimeForDB(updatedAt), id, userID)
	if err != nil {
		return false, HandleDatabaseError("close time entry", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, HandleDatabaseError("get rows affected", err)
	}
	return rows > 0, nil
}

// DeleteTimeEntry deletes a time entry by ID. Returns false when no row
// existed, which is not an error.
func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return false, HandleDatabaseError("delete time entry", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, HandleDatabaseError("get rows affected", err)
	}
	return rows > 0, nil
}

// CreateTask creates a new task label
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	id, err := ExecuteWithLastInsertID(ctx, r.db, `INSERT INTO tasks (name) VALUES (?)`, task.Name)
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	query := `SELECT id, name FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// ListTasks retrieves all tasks ordered by name
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	query := `SELECT id, name FROM tasks ORDER BY name ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// CreateProject creates a new project label
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *Project) error {
	id, err := ExecuteWithLastInsertID(ctx, r.db, `INSERT INTO projects (name) VALUES (?)`, project.Name)
	if err != nil {
		return err
	}
	project.ID = id
	return nil
}

// GetProject retrieves a project by ID
func (r *SQLiteRepository) GetProject(ctx context.Context, id int64) (*Project, error) {
	query := `SELECT id, name FROM projects WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanProject, "project", fmt.Sprintf("%d", id), id)
}

// ListProjects retrieves all projects ordered by name
func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*Project, error) {
	query := `SELECT id, name FROM projects ORDER BY name ASC`
	return QueryMultiple(ctx, r.db, query, ScanProjects, "projects")
}

// isUniqueConstraintError detects violations of the one-open-entry-per-user
// partial unique index
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
