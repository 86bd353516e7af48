package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeeper/internal/config"
	"timekeeper/internal/domain"
	"timekeeper/internal/errors"
	"timekeeper/internal/repository/sqlite"
)

func setupReportingTest(t *testing.T) (ReportingService, sqlite.Repository) {
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "tk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.NewConfig()
	// Pin the bucketing timezone so date assertions hold everywhere
	cfg.Reporting.Timezone = "UTC"
	return NewReportingService(repo, cfg), repo
}

func TestAggregateByDate(t *testing.T) {
	svc, repo := setupReportingTest(t)
	ctx := context.Background()

	project := &sqlite.Project{Name: "Website"}
	require.NoError(t, repo.CreateProject(ctx, project))

	day1 := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC)

	// Two entries on the same day for the same project land in one bucket
	first := seedClosedEntry(t, repo, 1, day1, 30)
	first.ProjectID = &project.ID
	require.NoError(t, repo.UpdateTimeEntry(ctx, first))

	second := seedClosedEntry(t, repo, 1, day1.Add(3*time.Hour), 45)
	second.ProjectID = &project.ID
	require.NoError(t, repo.UpdateTimeEntry(ctx, second))

	seedClosedEntry(t, repo, 1, day2, 60)

	buckets, err := svc.Aggregate(ctx, domain.Filter{}, domain.GroupByDate)
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	// Newest date first
	assert.Equal(t, "2026-08-11", buckets[0].Date)
	assert.Equal(t, int64(60), buckets[0].TotalMinutes)
	assert.Equal(t, int64(1), buckets[0].EntryCount)
	assert.Equal(t, "(no project)", buckets[0].ProjectName)

	assert.Equal(t, "2026-08-10", buckets[1].Date)
	assert.Equal(t, int64(75), buckets[1].TotalMinutes)
	assert.Equal(t, int64(2), buckets[1].EntryCount)
	assert.Equal(t, "Website", buckets[1].ProjectName)
}

func TestAggregateByDateSplitsUsers(t *testing.T) {
	svc, repo := setupReportingTest(t)
	ctx := context.Background()

	day := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	seedClosedEntry(t, repo, 1, day, 30)
	seedClosedEntry(t, repo, 2, day.Add(time.Hour), 45)

	buckets, err := svc.Aggregate(ctx, domain.Filter{}, domain.GroupByDate)
	require.NoError(t, err)
	// Same date, different users: two buckets
	require.Len(t, buckets, 2)
	assert.Equal(t, buckets[0].Date, buckets[1].Date)
}

func TestAggregateByUser(t *testing.T) {
	svc, repo := setupReportingTest(t)
	ctx := context.Background()

	day := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	seedClosedEntry(t, repo, 2, day, 45)
	seedClosedEntry(t, repo, 1, day.Add(time.Hour), 30)
	seedClosedEntry(t, repo, 1, day.Add(3*time.Hour), 15)

	buckets, err := svc.Aggregate(ctx, domain.Filter{}, domain.GroupByUser)
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	require.NotNil(t, buckets[0].UserID)
	assert.Equal(t, int64(1), *buckets[0].UserID)
	assert.Equal(t, int64(45), buckets[0].TotalMinutes)
	assert.Equal(t, int64(2), buckets[0].EntryCount)

	require.NotNil(t, buckets[1].UserID)
	assert.Equal(t, int64(2), *buckets[1].UserID)
	assert.Equal(t, int64(45), buckets[1].TotalMinutes)
}

func TestAggregateByProject(t *testing.T) {
	svc, repo := setupReportingTest(t)
	ctx := context.Background()

	website := &sqlite.Project{Name: "Website"}
	require.NoError(t, repo.CreateProject(ctx, website))
	app := &sqlite.Project{Name: "App"}
	require.NoError(t, repo.CreateProject(ctx, app))

	day := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	one := seedClosedEntry(t, repo, 1, day, 30)
	one.ProjectID = &website.ID
	require.NoError(t, repo.UpdateTimeEntry(ctx, one))

	two := seedClosedEntry(t, repo, 1, day.Add(time.Hour), 45)
	two.ProjectID = &app.ID
	require.NoError(t, repo.UpdateTimeEntry(ctx, two))

	seedClosedEntry(t, repo, 1, day.Add(3*time.Hour), 15)

	buckets, err := svc.Aggregate(ctx, domain.Filter{}, domain.GroupByProject)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	// Alphabetical by label
	assert.Equal(t, "(no project)", buckets[0].Label)
	assert.Equal(t, int64(15), buckets[0].TotalMinutes)
	assert.Equal(t, "App", buckets[1].Label)
	assert.Equal(t, int64(45), buckets[1].TotalMinutes)
	assert.Equal(t, "Website", buckets[2].Label)
	assert.Equal(t, int64(30), buckets[2].TotalMinutes)
}

func TestAggregateByTask(t *testing.T) {
	svc, repo := setupReportingTest(t)
	ctx := context.Background()

	task := &sqlite.Task{Name: "Review"}
	require.NoError(t, repo.CreateTask(ctx, task))

	day := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	entry := seedClosedEntry(t, repo, 1, day, 30)
	entry.TaskID = &task.ID
	require.NoError(t, repo.UpdateTimeEntry(ctx, entry))

	buckets, err := svc.Aggregate(ctx, domain.Filter{}, domain.GroupByTask)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "Review", buckets[0].Label)
	require.NotNil(t, buckets[0].TaskID)
	assert.Equal(t, task.ID, *buckets[0].TaskID)
}

func TestAggregateExcludesOpenEntries(t *testing.T) {
	svc, repo := setupReportingTest(t)
	ctx := context.Background()

	day := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	seedClosedEntry(t, repo, 1, day, 30)

	open := &sqlite.TimeEntry{UserID: 1, StartTime: day.Add(6 * time.Hour), CreatedAt: day, UpdatedAt: day}
	require.NoError(t, repo.CreateOpenEntry(ctx, open))

	buckets, err := svc.Aggregate(ctx, domain.Filter{}, domain.GroupByDate)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, int64(30), buckets[0].TotalMinutes)
	assert.Equal(t, int64(1), buckets[0].EntryCount)
}

func TestAggregateOrphanedProjectKeepsBucket(t *testing.T) {
	svc, repo := setupReportingTest(t)
	ctx := context.Background()

	day := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	missing := int64(42)
	entry := seedClosedEntry(t, repo, 1, day, 30)
	entry.ProjectID = &missing
	require.NoError(t, repo.UpdateTimeEntry(ctx, entry))

	buckets, err := svc.Aggregate(ctx, domain.Filter{}, domain.GroupByProject)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "project 42", buckets[0].Label)
}

func TestAggregateInvalidGroupBy(t *testing.T) {
	svc, _ := setupReportingTest(t)

	_, err := svc.Aggregate(context.Background(), domain.Filter{}, domain.GroupBy("week"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestTotals(t *testing.T) {
	svc, repo := setupReportingTest(t)
	ctx := context.Background()

	day := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	seedClosedEntry(t, repo, 1, day, 60)

	unbillable := seedClosedEntry(t, repo, 1, day.Add(2*time.Hour), 30)
	unbillable.Billable = false
	require.NoError(t, repo.UpdateTimeEntry(ctx, unbillable))

	open := &sqlite.TimeEntry{UserID: 1, StartTime: day.Add(6 * time.Hour), CreatedAt: day, UpdatedAt: day}
	require.NoError(t, repo.CreateOpenEntry(ctx, open))

	totals, err := svc.Totals(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(90), totals.TotalMinutes)
	assert.Equal(t, int64(60), totals.BillableMinutes)
	assert.Equal(t, int64(2), totals.EntryCount)
}

func TestTotalsMatchBucketSum(t *testing.T) {
	svc, repo := setupReportingTest(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		seedClosedEntry(t, repo, 1, base.Add(time.Duration(i)*24*time.Hour), int64(10+i*5))
	}

	buckets, err := svc.Aggregate(ctx, domain.Filter{}, domain.GroupByDate)
	require.NoError(t, err)

	var bucketSum int64
	for _, b := range buckets {
		bucketSum += b.TotalMinutes
	}

	totals, err := svc.Totals(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, totals.TotalMinutes, bucketSum)
}

func TestTotalsWithFilter(t *testing.T) {
	svc, repo := setupReportingTest(t)
	ctx := context.Background()

	day := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	seedClosedEntry(t, repo, 1, day, 60)
	seedClosedEntry(t, repo, 2, day, 45)

	userID := int64(1)
	totals, err := svc.Totals(ctx, domain.Filter{UserID: &userID})
	require.NoError(t, err)
	assert.Equal(t, int64(60), totals.TotalMinutes)
	assert.Equal(t, int64(1), totals.EntryCount)
}

func TestFormatMinutes(t *testing.T) {
	svc, _ := setupReportingTest(t)

	assert.Equal(t, "2h 30m", svc.FormatMinutes(150))
	assert.Equal(t, "45m", svc.FormatMinutes(45))
	assert.Equal(t, "0m", svc.FormatMinutes(0))
}
