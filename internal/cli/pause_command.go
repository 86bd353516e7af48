package cli

import (
	"context"
	"fmt"
)

// PauseCommand handles the pause command
type PauseCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewPauseCommand creates a new pause command handler
func NewPauseCommand(app *App) *PauseCommand {
	return &PauseCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the pause command
func (c *PauseCommand) Execute(ctx context.Context, user int64) error {
	userID, err := resolveUserID(user)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	entry, err := c.app.api.PauseTimer(ctx, userID)
	if err != nil {
		return c.errorHandler.Handle("pause timer", err)
	}

	fmt.Fprintf(c.app.out, "Paused timer #%d after %s; run 'tk resume' to continue\n",
		entry.ID, c.app.api.FormatMinutes(*entry.DurationMinutes))
	return nil
}
