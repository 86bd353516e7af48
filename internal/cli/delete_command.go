package cli

import (
	"context"
	"fmt"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseEntryID(args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	deleted, err := c.app.api.DeleteEntry(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}

	if !deleted {
		fmt.Fprintf(c.app.out, "Entry #%d not found\n", id)
		return nil
	}
	fmt.Fprintf(c.app.out, "Deleted entry #%d\n", id)
	return nil
}
