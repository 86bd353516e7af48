package services

import (
	"context"

	"timekeeper/internal/config"
	"timekeeper/internal/domain"
	"timekeeper/internal/errors"
	"timekeeper/internal/repository/sqlite"
	"timekeeper/internal/validation"
)

// labelServiceImpl implements the LabelService interface
type labelServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.Validator
}

// NewLabelService creates a new LabelService instance
func NewLabelService(repo sqlite.Repository, cfg *config.Config) LabelService {
	return &labelServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewValidatorWithConfig(cfg),
	}
}

// CreateTask creates a new task with the given name
func (l *labelServiceImpl) CreateTask(ctx context.Context, name string) (*domain.Task, error) {
	name = l.validator.TrimString(name)
	if !l.validator.IsNonEmptyString(name) {
		return nil, errors.NewInvalidInputError("name", name, "task name cannot be empty")
	}

	dbTask := &sqlite.Task{Name: name}
	if err := l.repo.CreateTask(ctx, dbTask); err != nil {
		return nil, err
	}
	task := l.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// GetTask retrieves a task by its ID
func (l *labelServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if !l.validator.IsValidID(id) {
		return nil, errors.NewInvalidInputError("id", id, "task ID must be positive")
	}

	dbTask, err := l.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	task := l.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// ListTasks returns all tasks ordered by name
func (l *labelServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := l.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return l.mapper.Task.FromDatabaseSlice(tasks), nil
}

// CreateProject creates a new project with the given name
func (l *labelServiceImpl) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	name = l.validator.TrimString(name)
	if !l.validator.IsNonEmptyString(name) {
		return nil, errors.NewInvalidInputError("name", name, "project name cannot be empty")
	}

	dbProject := &sqlite.Project{Name: name}
	if err := l.repo.CreateProject(ctx, dbProject); err != nil {
		return nil, err
	}
	project := l.mapper.Project.FromDatabase(*dbProject)
	return &project, nil
}

// GetProject retrieves a project by its ID
func (l *labelServiceImpl) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	if !l.validator.IsValidID(id) {
		return nil, errors.NewInvalidInputError("id", id, "project ID must be positive")
	}

	dbProject, err := l.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project := l.mapper.Project.FromDatabase(*dbProject)
	return &project, nil
}

// ListProjects returns all projects ordered by name
func (l *labelServiceImpl) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	projects, err := l.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	return l.mapper.Project.FromDatabaseSlice(projects), nil
}
