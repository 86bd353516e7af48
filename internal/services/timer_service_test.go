package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeeper/internal/config"
	"timekeeper/internal/errors"
	"timekeeper/internal/repository/sqlite"
	"timekeeper/internal/validation"
)

// fakeClock is a settable clock for deterministic duration tests
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func setupTimerTest(t *testing.T) (TimerService, sqlite.Repository, *fakeClock) {
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "tk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clock := &fakeClock{now: time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)}
	return NewTimerService(repo, config.NewConfig(), clock), repo, clock
}

func TestStart(t *testing.T) {
	svc, _, clock := setupTimerTest(t)
	ctx := context.Background()

	desc := "morning standup notes"
	entry, err := svc.Start(ctx, StartOptions{UserID: 1, Description: &desc})
	require.NoError(t, err)

	assert.Greater(t, entry.ID, int64(0))
	assert.Equal(t, int64(1), entry.UserID)
	assert.Equal(t, clock.now.Unix(), entry.StartTime.Unix())
	assert.Nil(t, entry.EndTime)
	assert.Nil(t, entry.DurationMinutes)
	require.NotNil(t, entry.Description)
	assert.Equal(t, desc, *entry.Description)
	require.NotNil(t, entry.SessionID)
	assert.NotEmpty(t, *entry.SessionID)
	// Config default applies when billable is not stated
	assert.True(t, entry.Billable)
}

func TestStartExplicitBillable(t *testing.T) {
	svc, _, _ := setupTimerTest(t)

	billable := false
	entry, err := svc.Start(context.Background(), StartOptions{UserID: 1, Billable: &billable})
	require.NoError(t, err)
	assert.False(t, entry.Billable)
}

func TestStartConflict(t *testing.T) {
	svc, _, _ := setupTimerTest(t)
	ctx := context.Background()

	first, err := svc.Start(ctx, StartOptions{UserID: 1})
	require.NoError(t, err)

	_, err = svc.Start(ctx, StartOptions{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
	assert.Equal(t, first.ID, errors.ExistingEntryID(err))

	// Another user can still start
	_, err = svc.Start(ctx, StartOptions{UserID: 2})
	require.NoError(t, err)
}

func TestStartInvalidUser(t *testing.T) {
	svc, _, _ := setupTimerTest(t)

	_, err := svc.Start(context.Background(), StartOptions{UserID: 0})
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
}

func TestStopRoundsHalfUp(t *testing.T) {
	svc, _, clock := setupTimerTest(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, StartOptions{UserID: 1})
	require.NoError(t, err)

	// 90 seconds is halfway between 1 and 2 minutes and rounds up
	clock.Advance(90 * time.Second)
	stopped, err := svc.Stop(ctx, 1, nil)
	require.NoError(t, err)

	require.NotNil(t, stopped.EndTime)
	assert.Equal(t, clock.now.Unix(), stopped.EndTime.Unix())
	require.NotNil(t, stopped.DurationMinutes)
	assert.Equal(t, int64(2), *stopped.DurationMinutes)
}

func TestStopRoundsDown(t *testing.T) {
	svc, _, clock := setupTimerTest(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, StartOptions{UserID: 1})
	require.NoError(t, err)

	clock.Advance(89 * time.Second)
	stopped, err := svc.Stop(ctx, 1, nil)
	require.NoError(t, err)
	require.NotNil(t, stopped.DurationMinutes)
	assert.Equal(t, int64(1), *stopped.DurationMinutes)
}

func TestStopWithoutActiveTimer(t *testing.T) {
	svc, _, _ := setupTimerTest(t)

	_, err := svc.Stop(context.Background(), 1, nil)
	require.Error(t, err)
	assert.Equal(t, "NO_ACTIVE_TIMER", errors.GetErrorCode(err))
}

func TestStopExplicitEntry(t *testing.T) {
	svc, _, clock := setupTimerTest(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, StartOptions{UserID: 1})
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)
	stopped, err := svc.Stop(ctx, 1, &started.ID)
	require.NoError(t, err)
	assert.Equal(t, started.ID, stopped.ID)
	require.NotNil(t, stopped.DurationMinutes)
	assert.Equal(t, int64(30), *stopped.DurationMinutes)
}

func TestStopAlreadyStopped(t *testing.T) {
	svc, _, clock := setupTimerTest(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, StartOptions{UserID: 1})
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)
	_, err = svc.Stop(ctx, 1, nil)
	require.NoError(t, err)

	_, err = svc.Stop(ctx, 1, &started.ID)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeAlreadyStopped))
}

func TestStopOtherUsersEntry(t *testing.T) {
	svc, _, clock := setupTimerTest(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, StartOptions{UserID: 1})
	require.NoError(t, err)
	clock.Advance(5 * time.Minute)

	// Another user's entry reads as not found, never as forbidden
	_, err = svc.Stop(ctx, 2, &started.ID)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	// The rejection must not have touched the entry; the owner can still stop it
	stopped, err := svc.Stop(ctx, 1, &started.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), *stopped.DurationMinutes)
}

func TestStopMissingEntry(t *testing.T) {
	svc, _, _ := setupTimerTest(t)

	missing := int64(999)
	_, err := svc.Stop(context.Background(), 1, &missing)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestPauseResume(t *testing.T) {
	svc, _, clock := setupTimerTest(t)
	ctx := context.Background()

	desc := "writing the quarterly report"
	started, err := svc.Start(ctx, StartOptions{UserID: 1, Description: &desc})
	require.NoError(t, err)

	clock.Advance(25 * time.Minute)
	paused, err := svc.Pause(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, started.ID, paused.ID)
	require.NotNil(t, paused.DurationMinutes)
	assert.Equal(t, int64(25), *paused.DurationMinutes)

	// The pause gap is not tracked
	clock.Advance(15 * time.Minute)
	resumed, err := svc.Resume(ctx, 1)
	require.NoError(t, err)

	assert.NotEqual(t, paused.ID, resumed.ID)
	assert.Nil(t, resumed.EndTime)
	require.NotNil(t, resumed.Description)
	assert.Equal(t, desc, *resumed.Description)
	require.NotNil(t, resumed.SessionID)
	require.NotNil(t, paused.SessionID)
	assert.Equal(t, *paused.SessionID, *resumed.SessionID)

	clock.Advance(20 * time.Minute)
	final, err := svc.Stop(ctx, 1, nil)
	require.NoError(t, err)
	require.NotNil(t, final.DurationMinutes)
	assert.Equal(t, int64(20), *final.DurationMinutes)
}

func TestPauseWithoutActiveTimer(t *testing.T) {
	svc, _, _ := setupTimerTest(t)

	_, err := svc.Pause(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "NO_ACTIVE_TIMER", errors.GetErrorCode(err))
}

func TestResumeWhileRunning(t *testing.T) {
	svc, _, _ := setupTimerTest(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, StartOptions{UserID: 1})
	require.NoError(t, err)

	_, err = svc.Resume(ctx, 1)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
	assert.Equal(t, started.ID, errors.ExistingEntryID(err))
}

func TestResumeNothingToResume(t *testing.T) {
	svc, _, _ := setupTimerTest(t)

	_, err := svc.Resume(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestResumeManualEntryMintsSession(t *testing.T) {
	svc, _, clock := setupTimerTest(t)
	ctx := context.Background()

	logged, err := svc.LogManual(ctx, ManualEntryOptions{
		UserID:    1,
		StartTime: clock.now.Add(-2 * time.Hour),
		EndTime:   clock.now.Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.Nil(t, logged.SessionID)

	resumed, err := svc.Resume(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, resumed.SessionID)
	assert.NotEmpty(t, *resumed.SessionID)
}

func TestActive(t *testing.T) {
	svc, _, clock := setupTimerTest(t)
	ctx := context.Background()

	active, err := svc.Active(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, active)

	started, err := svc.Start(ctx, StartOptions{UserID: 1})
	require.NoError(t, err)

	clock.Advance(95 * time.Second)
	active, err = svc.Active(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, started.ID, active.Entry.ID)
	assert.Equal(t, int64(95), active.ElapsedSeconds)

	_, err = svc.Stop(ctx, 1, nil)
	require.NoError(t, err)

	active, err = svc.Active(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestLogManual(t *testing.T) {
	svc, _, clock := setupTimerTest(t)

	start := clock.now.Add(-3 * time.Hour)
	end := start.Add(150 * time.Minute)
	entry, err := svc.LogManual(context.Background(), ManualEntryOptions{
		UserID:    1,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)

	require.NotNil(t, entry.EndTime)
	require.NotNil(t, entry.DurationMinutes)
	assert.Equal(t, int64(150), *entry.DurationMinutes)
	assert.True(t, entry.Billable)
}

func TestLogManualInvalidInterval(t *testing.T) {
	svc, _, clock := setupTimerTest(t)

	// End before start
	_, err := svc.LogManual(context.Background(), ManualEntryOptions{
		UserID:    1,
		StartTime: clock.now,
		EndTime:   clock.now.Add(-time.Hour),
	})
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))

	// Zero-length interval is rejected too
	_, err = svc.LogManual(context.Background(), ManualEntryOptions{
		UserID:    1,
		StartTime: clock.now,
		EndTime:   clock.now,
	})
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
}

func TestLogManualDoesNotBlockTimer(t *testing.T) {
	svc, _, clock := setupTimerTest(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, StartOptions{UserID: 1})
	require.NoError(t, err)

	// A running timer never blocks manual logging
	_, err = svc.LogManual(ctx, ManualEntryOptions{
		UserID:    1,
		StartTime: clock.now.Add(-2 * time.Hour),
		EndTime:   clock.now.Add(-time.Hour),
	})
	require.NoError(t, err)
}
