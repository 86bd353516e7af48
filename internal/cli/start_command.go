package cli

import (
	"context"
	"fmt"

	"timekeeper/internal/services"
)

// StartFlags carries the parsed flags of the start command
type StartFlags struct {
	User        int64
	TaskID      int64
	ProjectID   int64
	Description string
	Billable    *bool
}

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context, flags StartFlags) error {
	userID, err := resolveUserID(flags.User)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	opts := services.StartOptions{
		UserID:   userID,
		Billable: flags.Billable,
	}
	if flags.TaskID > 0 {
		opts.TaskID = &flags.TaskID
	}
	if flags.ProjectID > 0 {
		opts.ProjectID = &flags.ProjectID
	}
	if flags.Description != "" {
		opts.Description = &flags.Description
	}

	entry, err := c.app.api.StartTimer(ctx, opts)
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	fmt.Fprintf(c.app.out, "Started timer #%d at %s\n",
		entry.ID, entry.StartTime.Local().Format(c.app.displayFormat()))
	return nil
}
