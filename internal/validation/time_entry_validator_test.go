package validation

import (
	"strings"
	"testing"
	"time"

	"timekeeper/internal/config"
	"timekeeper/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64        { return &v }
func stringPtr(s string) *string     { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestValidateStart(t *testing.T) {
	tev := NewTimeEntryValidator()

	tests := []struct {
		name        string
		userID      int64
		taskID      *int64
		projectID   *int64
		description *string
		wantField   string
	}{
		{
			name:   "valid start with task only",
			userID: 1,
			taskID: int64Ptr(7),
		},
		{
			name:        "valid start with everything",
			userID:      1,
			taskID:      int64Ptr(7),
			projectID:   int64Ptr(3),
			description: stringPtr("pairing on release"),
		},
		{
			name:      "zero user id rejected",
			userID:    0,
			wantField: "user_id",
		},
		{
			name:      "negative task id rejected",
			userID:    1,
			taskID:    int64Ptr(-2),
			wantField: "task_id",
		},
		{
			name:      "negative project id rejected",
			userID:    1,
			projectID: int64Ptr(-1),
			wantField: "project_id",
		},
		{
			name:        "oversized description rejected",
			userID:      1,
			description: stringPtr(strings.Repeat("x", 501)),
			wantField:   "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tev.ValidateStart(tt.userID, tt.taskID, tt.projectID, tt.description)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ve, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.NotEmpty(t, ve.GetFieldErrors(tt.wantField))
		})
	}
}

func TestValidateManualEntry(t *testing.T) {
	tev := NewTimeEntryValidator()
	start := time.Now().Add(-2 * time.Hour)

	t.Run("valid interval passes", func(t *testing.T) {
		err := tev.ValidateManualEntry(1, int64Ptr(7), nil, stringPtr("retro prep"), start, start.Add(time.Hour))
		assert.NoError(t, err)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		err := tev.ValidateManualEntry(1, nil, nil, nil, start, start.Add(-time.Minute))
		require.Error(t, err)
		ve := err.(*ValidationError)
		assert.NotEmpty(t, ve.GetFieldErrors("time_range"))
	})

	t.Run("end equal to start rejected", func(t *testing.T) {
		err := tev.ValidateManualEntry(1, nil, nil, nil, start, start)
		require.Error(t, err)
	})

	t.Run("zero start rejected", func(t *testing.T) {
		err := tev.ValidateManualEntry(1, nil, nil, nil, time.Time{}, start)
		require.Error(t, err)
		ve := err.(*ValidationError)
		assert.NotEmpty(t, ve.GetFieldErrors("start_time"))
	})

	t.Run("duration above configured max rejected", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Validation.MaxDuration = time.Hour
		bounded := NewTimeEntryValidatorWithConfig(cfg)

		err := bounded.ValidateManualEntry(1, nil, nil, nil, start, start.Add(90*time.Minute))
		require.Error(t, err)
		ve := err.(*ValidationError)
		assert.NotEmpty(t, ve.GetFieldErrors("duration"))
	})
}

func TestValidateUpdate(t *testing.T) {
	tev := NewTimeEntryValidator()
	now := time.Now()

	t.Run("empty patch rejected", func(t *testing.T) {
		err := tev.ValidateUpdate(1, domain.UpdateFields{})
		require.Error(t, err)
		ve := err.(*ValidationError)
		assert.NotEmpty(t, ve.GetFieldErrors("fields"))
	})

	t.Run("description-only patch passes", func(t *testing.T) {
		err := tev.ValidateUpdate(1, domain.UpdateFields{Description: stringPtr("amended")})
		assert.NoError(t, err)
	})

	t.Run("clear flags count as changes", func(t *testing.T) {
		err := tev.ValidateUpdate(1, domain.UpdateFields{ClearProject: true})
		assert.NoError(t, err)
	})

	t.Run("invalid entry id rejected", func(t *testing.T) {
		err := tev.ValidateUpdate(0, domain.UpdateFields{StartTime: timePtr(now)})
		require.Error(t, err)
	})

	t.Run("unreasonable start rejected", func(t *testing.T) {
		err := tev.ValidateUpdate(1, domain.UpdateFields{StartTime: timePtr(now.AddDate(-20, 0, 0))})
		require.Error(t, err)
		ve := err.(*ValidationError)
		assert.NotEmpty(t, ve.GetFieldErrors("start_time"))
	})
}

func TestValidateFilter(t *testing.T) {
	tev := NewTimeEntryValidator()
	from := time.Now().Add(-24 * time.Hour)
	to := time.Now()

	t.Run("valid filter passes", func(t *testing.T) {
		err := tev.ValidateFilter(domain.Filter{
			UserID:   int64Ptr(1),
			DateFrom: &from,
			DateTo:   &to,
			SortKey:  domain.SortByStartTime,
			Limit:    50,
		})
		assert.NoError(t, err)
	})

	t.Run("inverted date range rejected", func(t *testing.T) {
		err := tev.ValidateFilter(domain.Filter{DateFrom: &to, DateTo: &from})
		require.Error(t, err)
		ve := err.(*ValidationError)
		assert.NotEmpty(t, ve.GetFieldErrors("date_range"))
	})

	t.Run("blank text rejected", func(t *testing.T) {
		err := tev.ValidateFilter(domain.Filter{Text: stringPtr("   ")})
		require.Error(t, err)
	})

	t.Run("unknown sort key rejected", func(t *testing.T) {
		err := tev.ValidateFilter(domain.Filter{SortKey: domain.SortKey("duration")})
		require.Error(t, err)
	})

	t.Run("negative pagination rejected", func(t *testing.T) {
		err := tev.ValidateFilter(domain.Filter{Offset: -1})
		require.Error(t, err)
		err = tev.ValidateFilter(domain.Filter{Limit: -1})
		require.Error(t, err)
	})
}
