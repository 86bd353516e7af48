package cli

import (
	"context"
	"fmt"
)

// ResumeCommand handles the resume command
type ResumeCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewResumeCommand creates a new resume command handler
func NewResumeCommand(app *App) *ResumeCommand {
	return &ResumeCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the resume command
func (c *ResumeCommand) Execute(ctx context.Context, user int64) error {
	userID, err := resolveUserID(user)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	entry, err := c.app.api.ResumeTimer(ctx, userID)
	if err != nil {
		return c.errorHandler.Handle("resume timer", err)
	}

	fmt.Fprintf(c.app.out, "Resumed as timer #%d", entry.ID)
	if entry.Description != nil && *entry.Description != "" {
		fmt.Fprintf(c.app.out, ": %s", *entry.Description)
	}
	fmt.Fprintln(c.app.out)
	return nil
}
