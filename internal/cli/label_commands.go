package cli

import (
	"context"
	"fmt"
	"strings"

	"timekeeper/internal/errors"
)

// TaskCommand handles task label maintenance
type TaskCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskCommand creates a new task command handler
func NewTaskCommand(app *App) *TaskCommand {
	return &TaskCommand{app: app, errorHandler: NewErrorHandler()}
}

// Add creates a task label
func (c *TaskCommand) Add(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if strings.TrimSpace(name) == "" {
		return c.errorHandler.HandleSimple(
			errors.NewInvalidInputError("name", name, "a task name is required"))
	}

	task, err := c.app.api.CreateTask(ctx, name)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}
	fmt.Fprintf(c.app.out, "Created task #%d: %s\n", task.ID, task.Name)
	return nil
}

// List prints all task labels
func (c *TaskCommand) List(ctx context.Context) error {
	tasks, err := c.app.api.ListTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(c.app.out, "No tasks")
		return nil
	}
	for _, task := range tasks {
		fmt.Fprintf(c.app.out, "#%d  %s\n", task.ID, task.Name)
	}
	return nil
}

// ProjectCommand handles project label maintenance
type ProjectCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProjectCommand creates a new project command handler
func NewProjectCommand(app *App) *ProjectCommand {
	return &ProjectCommand{app: app, errorHandler: NewErrorHandler()}
}

// Add creates a project label
func (c *ProjectCommand) Add(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if strings.TrimSpace(name) == "" {
		return c.errorHandler.HandleSimple(
			errors.NewInvalidInputError("name", name, "a project name is required"))
	}

	project, err := c.app.api.CreateProject(ctx, name)
	if err != nil {
		return c.errorHandler.Handle("add project", err)
	}
	fmt.Fprintf(c.app.out, "Created project #%d: %s\n", project.ID, project.Name)
	return nil
}

// List prints all project labels
func (c *ProjectCommand) List(ctx context.Context) error {
	projects, err := c.app.api.ListProjects(ctx)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}

	if len(projects) == 0 {
		fmt.Fprintln(c.app.out, "No projects")
		return nil
	}
	for _, project := range projects {
		fmt.Fprintf(c.app.out, "#%d  %s\n", project.ID, project.Name)
	}
	return nil
}
