package cli

import (
	"context"
	"fmt"
)

// StopFlags carries the parsed flags of the stop command
type StopFlags struct {
	User    int64
	EntryID int64
}

// StopCommand handles the stop command
type StopCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the stop command
func (c *StopCommand) Execute(ctx context.Context, flags StopFlags) error {
	userID, err := resolveUserID(flags.User)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	var entryID *int64
	if flags.EntryID > 0 {
		entryID = &flags.EntryID
	}

	entry, err := c.app.api.StopTimer(ctx, userID, entryID)
	if err != nil {
		return c.errorHandler.Handle("stop timer", err)
	}

	fmt.Fprintf(c.app.out, "Stopped timer #%d, tracked %s\n",
		entry.ID, c.app.api.FormatMinutes(*entry.DurationMinutes))
	return nil
}
