package services

import (
	"context"

	"timekeeper/internal/config"
	"timekeeper/internal/domain"
	"timekeeper/internal/duration"
	"timekeeper/internal/errors"
	"timekeeper/internal/logging"
	"timekeeper/internal/repository/sqlite"
	"timekeeper/internal/validation"

	"github.com/google/uuid"
)

// timerServiceImpl implements the TimerService interface
type timerServiceImpl struct {
	repo      sqlite.Repository
	config    *config.Config
	clock     Clock
	mapper    *domain.Mapper
	validator *validation.TimeEntryValidator
}

// NewTimerService creates a new TimerService instance
func NewTimerService(repo sqlite.Repository, cfg *config.Config, clock Clock) TimerService {
	if clock == nil {
		clock = SystemClock()
	}
	return &timerServiceImpl{
		repo:      repo,
		config:    cfg,
		clock:     clock,
		mapper:    domain.NewMapper(),
		validator: validation.NewTimeEntryValidatorWithConfig(cfg),
	}
}

// Start begins a timer for a user. The open-entry check and the insert are a
// single conditional statement in the repository, so two concurrent starts
// for the same user cannot both succeed.
func (t *timerServiceImpl) Start(ctx context.Context, opts StartOptions) (*domain.TimeEntry, error) {
	if err := t.validator.ValidateStart(opts.UserID, opts.TaskID, opts.ProjectID, opts.Description); err != nil {
		return nil, err
	}

	now := t.clock.Now()
	sessionID := uuid.NewString()

	dbEntry := &sqlite.TimeEntry{
		UserID:      opts.UserID,
		TaskID:      opts.TaskID,
		ProjectID:   opts.ProjectID,
		Description: opts.Description,
		SessionID:   &sessionID,
		StartTime:   now,
		Billable:    t.billableOrDefault(opts.Billable),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := t.repo.CreateOpenEntry(ctx, dbEntry); err != nil {
		return nil, err
	}

	logging.Debugf("started timer: user=%d entry=%d session=%s\n", opts.UserID, dbEntry.ID, sessionID)
	entry := t.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

// Stop closes a running entry. With an explicit entryID the entry must exist,
// belong to the user, and still be open; without one the user's open entry is
// resolved first.
func (t *timerServiceImpl) Stop(ctx context.Context, userID int64, entryID *int64) (*domain.TimeEntry, error) {
	if err := t.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}

	if entryID == nil {
		open, err := t.repo.FindOpenEntry(ctx, userID)
		if err != nil {
			return nil, err
		}
		if open == nil {
			return nil, errors.NewNoActiveTimerError(userID)
		}
		return t.closeEntry(ctx, open)
	}

	if err := t.validator.ValidateEntryID(*entryID); err != nil {
		return nil, err
	}

	dbEntry, err := t.repo.GetTimeEntry(ctx, *entryID)
	if err != nil {
		return nil, err
	}
	// Ownership mismatch reads the same as a missing entry so callers never
	// learn about other users' entries.
	if dbEntry.UserID != userID {
		return nil, errors.NewNotFoundError("time entry", formatID(*entryID))
	}
	if dbEntry.EndTime != nil {
		return nil, errors.NewAlreadyStoppedError(dbEntry.ID)
	}
	return t.closeEntry(ctx, dbEntry)
}

// closeEntry performs the atomic read-modify-write that closes an open entry.
// The repository update refuses rows that are no longer open, so a stop that
// loses a race reports AlreadyStopped rather than overwriting.
func (t *timerServiceImpl) closeEntry(ctx context.Context, dbEntry *sqlite.TimeEntry) (*domain.TimeEntry, error) {
	now := t.clock.Now()
	minutes, err := duration.Minutes(dbEntry.StartTime, now)
	if err != nil {
		return nil, err
	}

	closed, err := t.repo.CloseTimeEntry(ctx, dbEntry.ID, dbEntry.UserID, now, minutes, now)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, errors.NewAlreadyStoppedError(dbEntry.ID)
	}

	logging.Debugf("stopped timer: user=%d entry=%d minutes=%d\n", dbEntry.UserID, dbEntry.ID, minutes)

	updated, err := t.repo.GetTimeEntry(ctx, dbEntry.ID)
	if err != nil {
		return nil, err
	}
	entry := t.mapper.TimeEntry.FromDatabase(*updated)
	return &entry, nil
}

// Pause stops the user's open entry. The closed entry keeps its session tag
// so the pause gap never lives inside a single entry; total session time is
// the sum of its closed entries.
func (t *timerServiceImpl) Pause(ctx context.Context, userID int64) (*domain.TimeEntry, error) {
	return t.Stop(ctx, userID, nil)
}

// Resume continues the user's most recently closed entry as a fresh open
// entry with the same task, project, description, and session tag.
func (t *timerServiceImpl) Resume(ctx context.Context, userID int64) (*domain.TimeEntry, error) {
	if err := t.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}

	open, err := t.repo.FindOpenEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, errors.NewTimerRunningError(userID, open.ID)
	}

	last, err := t.repo.FindLastClosedEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, errors.NewValidationError("nothing to resume: user has no closed entries", nil)
	}

	sessionID := last.SessionID
	if sessionID == nil {
		// Manually logged entries carry no session; minting one here lets
		// the resumed sequence be summed as a session from now on.
		fresh := uuid.NewString()
		sessionID = &fresh
	}

	now := t.clock.Now()
	dbEntry := &sqlite.TimeEntry{
		UserID:      userID,
		TaskID:      last.TaskID,
		ProjectID:   last.ProjectID,
		Description: last.Description,
		SessionID:   sessionID,
		StartTime:   now,
		Billable:    last.Billable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := t.repo.CreateOpenEntry(ctx, dbEntry); err != nil {
		return nil, err
	}

	logging.Debugf("resumed timer: user=%d entry=%d session=%s\n", userID, dbEntry.ID, *sessionID)
	entry := t.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

// Active returns the user's running timer with its live elapsed seconds,
// or nil when no timer is running.
func (t *timerServiceImpl) Active(ctx context.Context, userID int64) (*ActiveTimer, error) {
	if err := t.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}

	open, err := t.repo.FindOpenEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, nil
	}

	entry := t.mapper.TimeEntry.FromDatabase(*open)
	return &ActiveTimer{
		Entry:          &entry,
		ElapsedSeconds: duration.ElapsedSeconds(open.StartTime, t.clock.Now()),
	}, nil
}

// LogManual records an entry that was never run as a timer: both instants
// are supplied up front and the duration is computed immediately.
func (t *timerServiceImpl) LogManual(ctx context.Context, opts ManualEntryOptions) (*domain.TimeEntry, error) {
	if err := t.validator.ValidateManualEntry(opts.UserID, opts.TaskID, opts.ProjectID, opts.Description, opts.StartTime, opts.EndTime); err != nil {
		return nil, err
	}

	minutes, err := duration.Minutes(opts.StartTime, opts.EndTime)
	if err != nil {
		return nil, err
	}

	now := t.clock.Now()
	end := opts.EndTime
	dbEntry := &sqlite.TimeEntry{
		UserID:          opts.UserID,
		TaskID:          opts.TaskID,
		ProjectID:       opts.ProjectID,
		Description:     opts.Description,
		StartTime:       opts.StartTime,
		EndTime:         &end,
		DurationMinutes: &minutes,
		Billable:        t.billableOrDefault(opts.Billable),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := t.repo.CreateTimeEntry(ctx, dbEntry); err != nil {
		return nil, err
	}

	entry := t.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

func (t *timerServiceImpl) billableOrDefault(billable *bool) bool {
	if billable != nil {
		return *billable
	}
	if t.config != nil {
		return t.config.Entries.BillableDefault
	}
	return true
}
