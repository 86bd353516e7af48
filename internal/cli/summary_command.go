package cli

import (
	"context"
	"fmt"
)

// SummaryCommand prints headline totals for a filter
type SummaryCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the summary command
func (c *SummaryCommand) Execute(ctx context.Context, flags FilterFlags) error {
	filter, err := flags.toFilter(true)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	totals, err := c.app.api.Totals(ctx, filter)
	if err != nil {
		return c.errorHandler.Handle("build summary", err)
	}

	fmt.Fprintf(c.app.out, "Total:    %s across %d entries\n",
		c.app.api.FormatMinutes(totals.TotalMinutes), totals.EntryCount)
	fmt.Fprintf(c.app.out, "Billable: %s\n",
		c.app.api.FormatMinutes(totals.BillableMinutes))
	return nil
}
