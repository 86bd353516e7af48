package cli

import (
	"context"
	"fmt"
	"strconv"

	"timekeeper/internal/domain"
	"timekeeper/internal/errors"
)

// EditFlags carries the parsed flags of the edit command
type EditFlags struct {
	TaskID      int64
	ProjectID   int64
	Description string
	Start       string
	End         string
	Billable    *bool
	ClearTask   bool
	ClearProj   bool
	ClearDesc   bool
}

// EditCommand handles partial updates to existing entries
type EditCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string, flags EditFlags) error {
	id, err := parseEntryID(args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	fields := domain.UpdateFields{
		Billable:         flags.Billable,
		ClearTask:        flags.ClearTask,
		ClearProject:     flags.ClearProj,
		ClearDescription: flags.ClearDesc,
	}
	if flags.TaskID > 0 {
		fields.TaskID = &flags.TaskID
	}
	if flags.ProjectID > 0 {
		fields.ProjectID = &flags.ProjectID
	}
	if flags.Description != "" {
		fields.Description = &flags.Description
	}
	if flags.Start != "" {
		start, err := parseTimeArg(flags.Start)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		fields.StartTime = &start
	}
	if flags.End != "" {
		end, err := parseTimeArg(flags.End)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		fields.EndTime = &end
	}

	entry, err := c.app.api.UpdateEntry(ctx, id, fields)
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}

	fmt.Fprintf(c.app.out, "Updated entry #%d\n", entry.ID)
	fmt.Fprintln(c.app.out, c.app.formatEntryLine(entry))
	return nil
}

// parseEntryID extracts the entry id argument
func parseEntryID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.NewInvalidInputError("entry_id", args, "exactly one entry id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("entry_id", args[0], "must be a positive integer")
	}
	return id, nil
}
