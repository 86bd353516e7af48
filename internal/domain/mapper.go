package domain

import (
	"timekeeper/internal/repository/sqlite"
)

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct{}

// NewTimeEntryMapper creates a new TimeEntryMapper instance.
func NewTimeEntryMapper() *TimeEntryMapper {
	return &TimeEntryMapper{}
}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(entry TimeEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:              entry.ID,
		UserID:          entry.UserID,
		TaskID:          entry.TaskID,
		ProjectID:       entry.ProjectID,
		Description:     entry.Description,
		SessionID:       entry.SessionID,
		StartTime:       entry.StartTime,
		EndTime:         entry.EndTime,
		DurationMinutes: entry.DurationMinutes,
		Billable:        entry.Billable,
		CreatedAt:       entry.CreatedAt,
		UpdatedAt:       entry.UpdatedAt,
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(entry sqlite.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:              entry.ID,
		UserID:          entry.UserID,
		TaskID:          entry.TaskID,
		ProjectID:       entry.ProjectID,
		Description:     entry.Description,
		SessionID:       entry.SessionID,
		StartTime:       entry.StartTime,
		EndTime:         entry.EndTime,
		DurationMinutes: entry.DurationMinutes,
		Billable:        entry.Billable,
		CreatedAt:       entry.CreatedAt,
		UpdatedAt:       entry.UpdatedAt,
	}
}

// FromDatabaseSlice converts a slice of database TimeEntries to domain TimeEntries.
func (m *TimeEntryMapper) FromDatabaseSlice(dbEntries []*sqlite.TimeEntry) []*TimeEntry {
	entries := make([]*TimeEntry, len(dbEntries))
	for i, dbEntry := range dbEntries {
		entry := m.FromDatabase(*dbEntry)
		entries[i] = &entry
	}
	return entries
}

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(task Task) sqlite.Task {
	return sqlite.Task{ID: task.ID, Name: task.Name}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(task sqlite.Task) Task {
	return Task{ID: task.ID, Name: task.Name}
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []*Task {
	tasks := make([]*Task, len(dbTasks))
	for i, dbTask := range dbTasks {
		task := m.FromDatabase(*dbTask)
		tasks[i] = &task
	}
	return tasks
}

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

// ToDatabase converts a domain Project to a database Project.
func (m *ProjectMapper) ToDatabase(project Project) sqlite.Project {
	return sqlite.Project{ID: project.ID, Name: project.Name}
}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(project sqlite.Project) Project {
	return Project{ID: project.ID, Name: project.Name}
}

// FromDatabaseSlice converts a slice of database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(dbProjects []*sqlite.Project) []*Project {
	projects := make([]*Project, len(dbProjects))
	for i, dbProject := range dbProjects {
		project := m.FromDatabase(*dbProject)
		projects[i] = &project
	}
	return projects
}

// FilterMapper converts domain filters to database search options.
type FilterMapper struct{}

// NewFilterMapper creates a new FilterMapper instance.
func NewFilterMapper() *FilterMapper {
	return &FilterMapper{}
}

// ToDatabase converts a domain Filter to database SearchOptions.
func (m *FilterMapper) ToDatabase(filter Filter) sqlite.SearchOptions {
	return sqlite.SearchOptions{
		UserID:     filter.UserID,
		TaskID:     filter.TaskID,
		ProjectID:  filter.ProjectID,
		StartFrom:  filter.DateFrom,
		StartTo:    filter.DateTo,
		Billable:   filter.Billable,
		Text:       filter.Text,
		ClosedOnly: filter.ClosedOnly,
		SortKey:    string(filter.SortKey),
		SortDesc:   filter.SortDirection == SortDescending,
		Offset:     filter.Offset,
		Limit:      filter.Limit,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	TimeEntry *TimeEntryMapper
	Task      *TaskMapper
	Project   *ProjectMapper
	Filter    *FilterMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		TimeEntry: NewTimeEntryMapper(),
		Task:      NewTaskMapper(),
		Project:   NewProjectMapper(),
		Filter:    NewFilterMapper(),
	}
}
