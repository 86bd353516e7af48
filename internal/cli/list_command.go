package cli

import (
	"context"
	"fmt"
)

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, flags FilterFlags) error {
	filter, err := flags.toFilter(true)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	entries, err := c.app.api.ListEntries(ctx, filter)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(c.app.out, "No entries found")
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintln(c.app.out, c.app.formatEntryLine(entry))
	}

	total, err := c.app.api.CountEntries(ctx, filter)
	if err != nil {
		return c.errorHandler.Handle("count entries", err)
	}
	if total > int64(len(entries)) {
		fmt.Fprintf(c.app.out, "Showing %d of %d entries\n", len(entries), total)
	}
	return nil
}
