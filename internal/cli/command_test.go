package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeeper/internal/api"
	"timekeeper/internal/config"
	"timekeeper/internal/repository/sqlite"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func setupCommandTest(t *testing.T) (*App, *bytes.Buffer, *testClock) {
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "tk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clock := &testClock{now: time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)}
	cfg := config.NewConfig()
	cfg.Reporting.Timezone = "UTC"

	app := NewApp(api.New(repo, cfg, clock), cfg)
	out := &bytes.Buffer{}
	app.SetOutput(out)
	return app, out, clock
}

func TestStartCommand(t *testing.T) {
	app, out, _ := setupCommandTest(t)

	err := NewStartCommand(app).Execute(context.Background(), StartFlags{
		User:        1,
		Description: "writing docs",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Started timer #1")
}

func TestStartCommandNoUser(t *testing.T) {
	app, _, _ := setupCommandTest(t)

	t.Setenv("TK_USER_ID", "")
	err := NewStartCommand(app).Execute(context.Background(), StartFlags{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TK_USER_ID")
}

func TestStartCommandUserFromEnv(t *testing.T) {
	app, out, _ := setupCommandTest(t)

	t.Setenv("TK_USER_ID", "7")
	err := NewStartCommand(app).Execute(context.Background(), StartFlags{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Started timer")
}

func TestStartCommandConflictMessage(t *testing.T) {
	app, _, _ := setupCommandTest(t)
	ctx := context.Background()

	require.NoError(t, NewStartCommand(app).Execute(ctx, StartFlags{User: 1}))

	err := NewStartCommand(app).Execute(ctx, StartFlags{User: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running (entry #1)")
}

func TestStopCommand(t *testing.T) {
	app, out, clock := setupCommandTest(t)
	ctx := context.Background()

	require.NoError(t, NewStartCommand(app).Execute(ctx, StartFlags{User: 1}))

	clock.now = clock.now.Add(45 * time.Minute)
	err := NewStopCommand(app).Execute(ctx, StopFlags{User: 1})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "tracked 45m")
}

func TestStopCommandNoTimer(t *testing.T) {
	app, _, _ := setupCommandTest(t)

	err := NewStopCommand(app).Execute(context.Background(), StopFlags{User: 1})
	require.Error(t, err)
}

func TestPauseResumeCommands(t *testing.T) {
	app, out, clock := setupCommandTest(t)
	ctx := context.Background()

	require.NoError(t, NewStartCommand(app).Execute(ctx, StartFlags{User: 1, Description: "design work"}))

	clock.now = clock.now.Add(30 * time.Minute)
	require.NoError(t, NewPauseCommand(app).Execute(ctx, 1))
	assert.Contains(t, out.String(), "Paused timer")
	assert.Contains(t, out.String(), "30m")

	out.Reset()
	clock.now = clock.now.Add(10 * time.Minute)
	require.NoError(t, NewResumeCommand(app).Execute(ctx, 1))
	assert.Contains(t, out.String(), "Resumed as timer")
	assert.Contains(t, out.String(), "design work")
}

func TestStatusCommand(t *testing.T) {
	app, out, clock := setupCommandTest(t)
	ctx := context.Background()

	require.NoError(t, NewStatusCommand(app).Execute(ctx, 1))
	assert.Contains(t, out.String(), "No timer running")

	out.Reset()
	require.NoError(t, NewStartCommand(app).Execute(ctx, StartFlags{User: 1}))
	out.Reset()

	clock.now = clock.now.Add(95 * time.Second)
	require.NoError(t, NewStatusCommand(app).Execute(ctx, 1))
	assert.Contains(t, out.String(), "running for 1m 35s")
}

func TestLogCommand(t *testing.T) {
	app, out, _ := setupCommandTest(t)

	err := NewLogCommand(app).Execute(context.Background(), LogFlags{
		User:  1,
		Start: "2026-08-10 09:00",
		End:   "2026-08-10 11:30",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "2h 30m")
}

func TestLogCommandMissingTimes(t *testing.T) {
	app, _, _ := setupCommandTest(t)

	err := NewLogCommand(app).Execute(context.Background(), LogFlags{User: 1, Start: "2026-08-10 09:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--start and --end")
}

func TestListCommand(t *testing.T) {
	app, out, _ := setupCommandTest(t)
	ctx := context.Background()

	require.NoError(t, NewListCommand(app).Execute(ctx, FilterFlags{User: 1}))
	assert.Contains(t, out.String(), "No entries found")

	out.Reset()
	require.NoError(t, NewLogCommand(app).Execute(ctx, LogFlags{
		User:        1,
		Description: "sprint planning",
		Start:       "2026-08-10 09:00",
		End:         "2026-08-10 10:00",
	}))
	out.Reset()

	require.NoError(t, NewListCommand(app).Execute(ctx, FilterFlags{User: 1}))
	assert.Contains(t, out.String(), "sprint planning")
	assert.Contains(t, out.String(), "1h 0m")
}

func TestEditCommand(t *testing.T) {
	app, out, _ := setupCommandTest(t)
	ctx := context.Background()

	require.NoError(t, NewLogCommand(app).Execute(ctx, LogFlags{
		User:  1,
		Start: "2026-08-10 09:00",
		End:   "2026-08-10 10:00",
	}))
	out.Reset()

	err := NewEditCommand(app).Execute(ctx, []string{"1"}, EditFlags{Description: "retro notes"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Updated entry #1")
	assert.Contains(t, out.String(), "retro notes")
}

func TestEditCommandBadID(t *testing.T) {
	app, _, _ := setupCommandTest(t)

	err := NewEditCommand(app).Execute(context.Background(), []string{"abc"}, EditFlags{})
	require.Error(t, err)
}

func TestDeleteCommand(t *testing.T) {
	app, out, _ := setupCommandTest(t)
	ctx := context.Background()

	require.NoError(t, NewLogCommand(app).Execute(ctx, LogFlags{
		User:  1,
		Start: "2026-08-10 09:00",
		End:   "2026-08-10 10:00",
	}))
	out.Reset()

	require.NoError(t, NewDeleteCommand(app).Execute(ctx, []string{"1"}))
	assert.Contains(t, out.String(), "Deleted entry #1")

	out.Reset()
	require.NoError(t, NewDeleteCommand(app).Execute(ctx, []string{"1"}))
	assert.Contains(t, out.String(), "not found")
}

func TestReportCommand(t *testing.T) {
	app, out, _ := setupCommandTest(t)
	ctx := context.Background()

	require.NoError(t, NewProjectCommand(app).Add(ctx, []string{"Website"}))
	out.Reset()

	require.NoError(t, NewLogCommand(app).Execute(ctx, LogFlags{
		User:      1,
		ProjectID: 1,
		Start:     "2026-08-10 09:00",
		End:       "2026-08-10 10:15",
	}))
	out.Reset()

	require.NoError(t, NewReportCommand(app).Execute(ctx, FilterFlags{User: 1}, "project"))
	assert.Contains(t, out.String(), "Website")
	assert.Contains(t, out.String(), "1h 15m")
}

func TestReportCommandInvalidGroup(t *testing.T) {
	app, _, _ := setupCommandTest(t)

	err := NewReportCommand(app).Execute(context.Background(), FilterFlags{User: 1}, "week")
	require.Error(t, err)
}

func TestSummaryCommand(t *testing.T) {
	app, out, _ := setupCommandTest(t)
	ctx := context.Background()

	require.NoError(t, NewLogCommand(app).Execute(ctx, LogFlags{
		User:  1,
		Start: "2026-08-10 09:00",
		End:   "2026-08-10 10:00",
	}))
	billable := false
	require.NoError(t, NewLogCommand(app).Execute(ctx, LogFlags{
		User:     1,
		Billable: &billable,
		Start:    "2026-08-10 11:00",
		End:      "2026-08-10 11:30",
	}))
	out.Reset()

	require.NoError(t, NewSummaryCommand(app).Execute(ctx, FilterFlags{User: 1}))
	assert.Contains(t, out.String(), "1h 30m across 2 entries")
	assert.Contains(t, out.String(), "Billable: 1h 0m")
}

func TestLabelCommands(t *testing.T) {
	app, out, _ := setupCommandTest(t)
	ctx := context.Background()

	require.NoError(t, NewTaskCommand(app).Add(ctx, []string{"Code", "review"}))
	assert.Contains(t, out.String(), "Created task #1: Code review")

	out.Reset()
	require.NoError(t, NewTaskCommand(app).List(ctx))
	assert.Contains(t, out.String(), "#1  Code review")

	out.Reset()
	require.NoError(t, NewProjectCommand(app).List(ctx))
	assert.Contains(t, out.String(), "No projects")
}
