package cli

import (
	"context"
	"fmt"

	"timekeeper/internal/errors"
	"timekeeper/internal/services"
)

// LogFlags carries the parsed flags of the log command
type LogFlags struct {
	User        int64
	TaskID      int64
	ProjectID   int64
	Description string
	Billable    *bool
	Start       string
	End         string
}

// LogCommand handles manual entry logging
type LogCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLogCommand creates a new log command handler
func NewLogCommand(app *App) *LogCommand {
	return &LogCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the log command
func (c *LogCommand) Execute(ctx context.Context, flags LogFlags) error {
	userID, err := resolveUserID(flags.User)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if flags.Start == "" || flags.End == "" {
		return c.errorHandler.HandleSimple(
			errors.NewInvalidInputError("log", nil, "both --start and --end are required"))
	}

	start, err := parseTimeArg(flags.Start)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	end, err := parseTimeArg(flags.End)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	opts := services.ManualEntryOptions{
		UserID:    userID,
		StartTime: start,
		EndTime:   end,
		Billable:  flags.Billable,
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

	entry, err := c.app.api.LogEntry(ctx, opts)
	if err != nil {
		return c.errorHandler.Handle("log entry", err)
	}

	fmt.Fprintf(c.app.out, "Logged entry #%d: %s\n",
		entry.ID, c.app.api.FormatMinutes(*entry.DurationMinutes))
	return nil
}
