package cli

import (
	"context"
	"fmt"
)

// StatusCommand handles the status command
type StatusCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, user int64) error {
	userID, err := resolveUserID(user)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	active, err := c.app.api.ActiveTimer(ctx, userID)
	if err != nil {
		return c.errorHandler.Handle("get timer status", err)
	}

	if active == nil {
		fmt.Fprintln(c.app.out, "No timer running")
		return nil
	}

	elapsed := active.ElapsedSeconds
	fmt.Fprintf(c.app.out, "Timer #%d running for %s (since %s)\n",
		active.Entry.ID,
		formatElapsed(elapsed),
		active.Entry.StartTime.Local().Format(c.app.displayFormat()))
	if active.Entry.Description != nil && *active.Entry.Description != "" {
		fmt.Fprintf(c.app.out, "  %s\n", *active.Entry.Description)
	}
	return nil
}

// formatElapsed renders live elapsed seconds as h/m/s
func formatElapsed(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, secs)
	}
	return fmt.Sprintf("%ds", secs)
}
