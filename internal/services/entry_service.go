package services

import (
	"context"
	"fmt"

	"timekeeper/internal/config"
	"timekeeper/internal/domain"
	"timekeeper/internal/duration"
	"timekeeper/internal/repository/sqlite"
	"timekeeper/internal/validation"
)

// entryServiceImpl implements the EntryService interface
type entryServiceImpl struct {
	repo      sqlite.Repository
	config    *config.Config
	clock     Clock
	mapper    *domain.Mapper
	validator *validation.TimeEntryValidator
}

// NewEntryService creates a new EntryService instance
func NewEntryService(repo sqlite.Repository, cfg *config.Config, clock Clock) EntryService {
	if clock == nil {
		clock = SystemClock()
	}
	return &entryServiceImpl{
		repo:      repo,
		config:    cfg,
		clock:     clock,
		mapper:    domain.NewMapper(),
		validator: validation.NewTimeEntryValidatorWithConfig(cfg),
	}
}

// Get retrieves a single time entry by id
func (s *entryServiceImpl) Get(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateEntryID(id); err != nil {
		return nil, err
	}

	dbEntry, err := s.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := s.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

// List returns the entries matching a filter, applying the configured
// pagination bounds.
func (s *entryServiceImpl) List(ctx context.Context, filter domain.Filter) ([]*domain.TimeEntry, error) {
	if err := s.validator.ValidateFilter(filter); err != nil {
		return nil, err
	}
	filter = s.applyListDefaults(filter)

	dbEntries, err := s.repo.SearchTimeEntries(ctx, s.mapper.Filter.ToDatabase(filter))
	if err != nil {
		return nil, err
	}
	return s.mapper.TimeEntry.FromDatabaseSlice(dbEntries), nil
}

// Count returns the cardinality of a filter without materializing rows
func (s *entryServiceImpl) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	if err := s.validator.ValidateFilter(filter); err != nil {
		return 0, err
	}
	return s.repo.CountTimeEntries(ctx, s.mapper.Filter.ToDatabase(filter))
}

// Update applies a partial update. Duration is recomputed whenever start or
// end changes, re-validating the interval first.
func (s *entryServiceImpl) Update(ctx context.Context, id int64, fields domain.UpdateFields) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateUpdate(id, fields); err != nil {
		return nil, err
	}

	dbEntry, err := s.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.TaskID != nil {
		dbEntry.TaskID = fields.TaskID
	}
	if fields.ClearTask {
		dbEntry.TaskID = nil
	}
	if fields.ProjectID != nil {
		dbEntry.ProjectID = fields.ProjectID
	}
	if fields.ClearProject {
		dbEntry.ProjectID = nil
	}
	if fields.Description != nil {
		dbEntry.Description = fields.Description
	}
	if fields.ClearDescription {
		dbEntry.Description = nil
	}
	if fields.Billable != nil {
		dbEntry.Billable = *fields.Billable
	}
	if fields.StartTime != nil {
		dbEntry.StartTime = *fields.StartTime
	}
	if fields.EndTime != nil {
		end := *fields.EndTime
		dbEntry.EndTime = &end
	}

	if fields.TouchesInterval() && dbEntry.EndTime != nil {
		minutes, err := duration.Minutes(dbEntry.StartTime, *dbEntry.EndTime)
		if err != nil {
			return nil, err
		}
		dbEntry.DurationMinutes = &minutes
	}

	dbEntry.UpdatedAt = s.clock.Now()

	if err := s.repo.UpdateTimeEntry(ctx, dbEntry); err != nil {
		return nil, err
	}

	entry := s.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

// Delete removes an entry, reporting false when it did not exist
func (s *entryServiceImpl) Delete(ctx context.Context, id int64) (bool, error) {
	if err := s.validator.ValidateEntryID(id); err != nil {
		return false, err
	}
	return s.repo.DeleteTimeEntry(ctx, id)
}

// applyListDefaults normalizes sort and pagination before hitting the store
func (s *entryServiceImpl) applyListDefaults(filter domain.Filter) domain.Filter {
	if filter.SortKey == "" {
		filter.SortKey = domain.SortByStartTime
	}
	if filter.SortDirection == "" {
		filter.SortDirection = domain.SortDescending
	}

	defaultLimit, maxLimit := 50, 500
	if s.config != nil {
		defaultLimit = s.config.Entries.DefaultPageSize
		maxLimit = s.config.Entries.MaxPageSize
	}
	if filter.Limit == 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	return filter
}

func formatID(id int64) string {
	return fmt.Sprintf("%d", id)
}
