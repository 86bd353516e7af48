package api

import (
	"context"

	"timekeeper/internal/config"
	"timekeeper/internal/domain"
	"timekeeper/internal/repository/sqlite"
	"timekeeper/internal/services"
)

// API is the single surface consumers program against. It bundles the timer
// lifecycle, entry maintenance, reporting, and label operations.
type API interface {
	// Timer lifecycle
	StartTimer(ctx context.Context, opts services.StartOptions) (*domain.TimeEntry, error)
	StopTimer(ctx context.Context, userID int64, entryID *int64) (*domain.TimeEntry, error)
	PauseTimer(ctx context.Context, userID int64) (*domain.TimeEntry, error)
	ResumeTimer(ctx context.Context, userID int64) (*domain.TimeEntry, error)
	ActiveTimer(ctx context.Context, userID int64) (*services.ActiveTimer, error)
	LogEntry(ctx context.Context, opts services.ManualEntryOptions) (*domain.TimeEntry, error)

	// Entry maintenance
	GetEntry(ctx context.Context, id int64) (*domain.TimeEntry, error)
	ListEntries(ctx context.Context, filter domain.Filter) ([]*domain.TimeEntry, error)
	CountEntries(ctx context.Context, filter domain.Filter) (int64, error)
	UpdateEntry(ctx context.Context, id int64, fields domain.UpdateFields) (*domain.TimeEntry, error)
	DeleteEntry(ctx context.Context, id int64) (bool, error)

	// Reporting
	Aggregate(ctx context.Context, filter domain.Filter, groupBy domain.GroupBy) ([]*domain.Bucket, error)
	Totals(ctx context.Context, filter domain.Filter) (*domain.Totals, error)
	FormatMinutes(minutes int64) string

	// Labels
	CreateTask(ctx context.Context, name string) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	CreateProject(ctx context.Context, name string) (*domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
}

type apiImpl struct {
	services *services.ServiceContainer
}

// New creates an API over an existing repository
func New(repo sqlite.Repository, cfg *config.Config, clock services.Clock) API {
	return &apiImpl{services: services.NewServiceContainer(repo, cfg, clock)}
}

// NewWithServices creates an API over a pre-built service container
func NewWithServices(container *services.ServiceContainer) API {
	return &apiImpl{services: container}
}

func (a *apiImpl) StartTimer(ctx context.Context, opts services.StartOptions) (*domain.TimeEntry, error) {
	return a.services.Timer.Start(ctx, opts)
}

func (a *apiImpl) StopTimer(ctx context.Context, userID int64, entryID *int64) (*domain.TimeEntry, error) {
	return a.services.Timer.Stop(ctx, userID, entryID)
}

func (a *apiImpl) PauseTimer(ctx context.Context, userID int64) (*domain.TimeEntry, error) {
	return a.services.Timer.Pause(ctx, userID)
}

func (a *apiImpl) ResumeTimer(ctx context.Context, userID int64) (*domain.TimeEntry, error) {
	return a.services.Timer.Resume(ctx, userID)
}

func (a *apiImpl) ActiveTimer(ctx context.Context, userID int64) (*services.ActiveTimer, error) {
	return a.services.Timer.Active(ctx, userID)
}

func (a *apiImpl) LogEntry(ctx context.Context, opts services.ManualEntryOptions) (*domain.TimeEntry, error) {
	return a.services.Timer.LogManual(ctx, opts)
}

func (a *apiImpl) GetEntry(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	return a.services.Entries.Get(ctx, id)
}

func (a *apiImpl) ListEntries(ctx context.Context, filter domain.Filter) ([]*domain.TimeEntry, error) {
	return a.services.Entries.List(ctx, filter)
}

func (a *apiImpl) CountEntries(ctx context.Context, filter domain.Filter) (int64, error) {
	return a.services.Entries.Count(ctx, filter)
}

func (a *apiImpl) UpdateEntry(ctx context.Context, id int64, fields domain.UpdateFields) (*domain.TimeEntry, error) {
	return a.services.Entries.Update(ctx, id, fields)
}

func (a *apiImpl) DeleteEntry(ctx context.Context, id int64) (bool, error) {
	return a.services.Entries.Delete(ctx, id)
}

func (a *apiImpl) Aggregate(ctx context.Context, filter domain.Filter, groupBy domain.GroupBy) ([]*domain.Bucket, error) {
	return a.services.Reporting.Aggregate(ctx, filter, groupBy)
}

func (a *apiImpl) Totals(ctx context.Context, filter domain.Filter) (*domain.Totals, error) {
	return a.services.Reporting.Totals(ctx, filter)
}

func (a *apiImpl) FormatMinutes(minutes int64) string {
	return a.services.Reporting.FormatMinutes(minutes)
}

func (a *apiImpl) CreateTask(ctx context.Context, name string) (*domain.Task, error) {
	return a.services.Labels.CreateTask(ctx, name)
}

func (a *apiImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return a.services.Labels.GetTask(ctx, id)
}

func (a *apiImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return a.services.Labels.ListTasks(ctx)
}

func (a *apiImpl) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	return a.services.Labels.CreateProject(ctx, name)
}

func (a *apiImpl) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	return a.services.Labels.GetProject(ctx, id)
}

func (a *apiImpl) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return a.services.Labels.ListProjects(ctx)
}
