package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"timekeeper/internal/config"
	"timekeeper/internal/domain"
	"timekeeper/internal/duration"
	"timekeeper/internal/errors"
	"timekeeper/internal/repository/sqlite"
	"timekeeper/internal/validation"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo      sqlite.Repository
	config    *config.Config
	mapper    *domain.Mapper
	validator *validation.TimeEntryValidator
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlite.Repository, cfg *config.Config) ReportingService {
	return &reportingServiceImpl{
		repo:      repo,
		config:    cfg,
		mapper:    domain.NewMapper(),
		validator: validation.NewTimeEntryValidatorWithConfig(cfg),
	}
}

// compositeKey identifies one date-grouping bucket. Date grouping is by the
// composite of date, user, project, and task; callers roll up further by
// selecting the fields they need. Zero stands in for an absent task/project.
type compositeKey struct {
	date      string
	userID    int64
	projectID int64
	taskID    int64
}

// Aggregate groups closed entries matching the filter and sums their
// durations. Open entries carry no duration and are excluded until closed.
func (r *reportingServiceImpl) Aggregate(ctx context.Context, filter domain.Filter, groupBy domain.GroupBy) ([]*domain.Bucket, error) {
	if !groupBy.IsValid() {
		return nil, errors.NewInvalidInputError("group_by", string(groupBy), "must be one of date, user, project, task")
	}
	if err := r.validator.ValidateFilter(filter); err != nil {
		return nil, err
	}

	entries, err := r.closedEntries(ctx, filter)
	if err != nil {
		return nil, err
	}

	taskNames, projectNames, err := r.labelNames(ctx)
	if err != nil {
		return nil, err
	}

	switch groupBy {
	case domain.GroupByDate:
		return r.aggregateByDate(entries, taskNames, projectNames), nil
	case domain.GroupByUser:
		return r.aggregateByUser(entries), nil
	case domain.GroupByProject:
		return r.aggregateByLabel(entries, projectNames, true), nil
	default:
		return r.aggregateByLabel(entries, taskNames, false), nil
	}
}

// Totals computes the scalar summary for a filter, used for headline
// statistics such as "today: 3h 30m".
func (r *reportingServiceImpl) Totals(ctx context.Context, filter domain.Filter) (*domain.Totals, error) {
	if err := r.validator.ValidateFilter(filter); err != nil {
		return nil, err
	}

	sums, err := r.repo.SumTimeEntries(ctx, r.mapper.Filter.ToDatabase(filter))
	if err != nil {
		return nil, err
	}
	return &domain.Totals{
		TotalMinutes:    sums.TotalMinutes,
		BillableMinutes: sums.BillableMinutes,
		EntryCount:      sums.EntryCount,
	}, nil
}

// FormatMinutes renders a minute total for display
func (r *reportingServiceImpl) FormatMinutes(minutes int64) string {
	return duration.FormatMinutes(minutes)
}

// closedEntries fetches every closed entry matching the filter, without
// pagination; aggregation needs the full result set.
func (r *reportingServiceImpl) closedEntries(ctx context.Context, filter domain.Filter) ([]*sqlite.TimeEntry, error) {
	filter.ClosedOnly = true
	filter.Offset = 0
	filter.Limit = 0
	return r.repo.SearchTimeEntries(ctx, r.mapper.Filter.ToDatabase(filter))
}

// labelNames loads task and project display names for bucket labels
func (r *reportingServiceImpl) labelNames(ctx context.Context) (map[int64]string, map[int64]string, error) {
	tasks, err := r.repo.ListTasks(ctx)
	if err != nil {
		return nil, nil, err
	}
	projects, err := r.repo.ListProjects(ctx)
	if err != nil {
		return nil, nil, err
	}

	taskNames := make(map[int64]string, len(tasks))
	for _, task := range tasks {
		taskNames[task.ID] = task.Name
	}
	projectNames := make(map[int64]string, len(projects))
	for _, project := range projects {
		projectNames[project.ID] = project.Name
	}
	return taskNames, projectNames, nil
}

func (r *reportingServiceImpl) aggregateByDate(entries []*sqlite.TimeEntry, taskNames, projectNames map[int64]string) []*domain.Bucket {
	loc := r.reportingLocation()
	buckets := make(map[compositeKey]*domain.Bucket)

	for _, entry := range entries {
		if entry.DurationMinutes == nil {
			continue
		}

		key := compositeKey{
			date:      entry.StartTime.In(loc).Format("2006-01-02"),
			userID:    entry.UserID,
			projectID: derefOrZero(entry.ProjectID),
			taskID:    derefOrZero(entry.TaskID),
		}

		bucket, ok := buckets[key]
		if !ok {
			userID := entry.UserID
			bucket = &domain.Bucket{
				Date:        key.date,
				Label:       key.date,
				UserID:      &userID,
				ProjectID:   entry.ProjectID,
				TaskID:      entry.TaskID,
				ProjectName: labelFor(entry.ProjectID, projectNames, "project"),
				TaskName:    labelFor(entry.TaskID, taskNames, "task"),
			}
			buckets[key] = bucket
		}
		bucket.TotalMinutes += *entry.DurationMinutes
		bucket.EntryCount++
	}

	result := bucketSlice(buckets)
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date // newest first
		}
		if result[i].ProjectName != result[j].ProjectName {
			return result[i].ProjectName < result[j].ProjectName
		}
		if result[i].TaskName != result[j].TaskName {
			return result[i].TaskName < result[j].TaskName
		}
		return derefOrZero(result[i].UserID) < derefOrZero(result[j].UserID)
	})
	return result
}

func (r *reportingServiceImpl) aggregateByUser(entries []*sqlite.TimeEntry) []*domain.Bucket {
	buckets := make(map[int64]*domain.Bucket)

	for _, entry := range entries {
		if entry.DurationMinutes == nil {
			continue
		}
		bucket, ok := buckets[entry.UserID]
		if !ok {
			userID := entry.UserID
			bucket = &domain.Bucket{
				UserID: &userID,
				Label:  fmt.Sprintf("user %d", entry.UserID),
			}
			buckets[entry.UserID] = bucket
		}
		bucket.TotalMinutes += *entry.DurationMinutes
		bucket.EntryCount++
	}

	result := bucketSlice(buckets)
	// User labels are synthetic, so order by id rather than lexically
	sort.Slice(result, func(i, j int) bool {
		return derefOrZero(result[i].UserID) < derefOrZero(result[j].UserID)
	})
	return result
}

// aggregateByLabel groups by project or task and orders alphabetically by
// the grouped label.
func (r *reportingServiceImpl) aggregateByLabel(entries []*sqlite.TimeEntry, names map[int64]string, byProject bool) []*domain.Bucket {
	buckets := make(map[int64]*domain.Bucket)

	for _, entry := range entries {
		var id *int64
		if byProject {
			id = entry.ProjectID
		} else {
			id = entry.TaskID
		}

		key := derefOrZero(id)
		bucket, ok := buckets[key]
		if !ok {
			kind := "task"
			if byProject {
				kind = "project"
			}
			bucket = &domain.Bucket{Label: labelFor(id, names, kind)}
			if byProject {
				bucket.ProjectID = id
				bucket.ProjectName = bucket.Label
			} else {
				bucket.TaskID = id
				bucket.TaskName = bucket.Label
			}
			buckets[key] = bucket
		}
		if entry.DurationMinutes != nil {
			bucket.TotalMinutes += *entry.DurationMinutes
			bucket.EntryCount++
		}
	}

	result := bucketSlice(buckets)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Label < result[j].Label
	})
	return result
}

func (r *reportingServiceImpl) reportingLocation() *time.Location {
	if r.config != nil {
		return r.config.ReportingLocation()
	}
	return time.Local
}

// labelFor resolves the display label for an optional task/project id.
// Orphaned references (the label row was deleted) keep a synthetic label so
// they stay reportable.
func labelFor(id *int64, names map[int64]string, kind string) string {
	if id == nil {
		return fmt.Sprintf("(no %s)", kind)
	}
	if name, ok := names[*id]; ok {
		return name
	}
	return fmt.Sprintf("%s %d", kind, *id)
}

func bucketSlice[K comparable](buckets map[K]*domain.Bucket) []*domain.Bucket {
	result := make([]*domain.Bucket, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, bucket)
	}
	return result
}

func derefOrZero(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
