package cli

import (
	"context"
	"fmt"

	"timekeeper/internal/domain"
)

// ReportCommand handles grouped aggregation reports
type ReportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context, flags FilterFlags, groupBy string) error {
	// Reports span all users unless --user narrows them
	filter, err := flags.toFilter(false)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	buckets, err := c.app.api.Aggregate(ctx, filter, domain.GroupBy(groupBy))
	if err != nil {
		return c.errorHandler.Handle("build report", err)
	}

	if len(buckets) == 0 {
		fmt.Fprintln(c.app.out, "No closed entries to report")
		return nil
	}

	for _, bucket := range buckets {
		c.printBucket(bucket, domain.GroupBy(groupBy))
	}
	return nil
}

func (c *ReportCommand) printBucket(bucket *domain.Bucket, groupBy domain.GroupBy) {
	total := c.app.api.FormatMinutes(bucket.TotalMinutes)

	if groupBy == domain.GroupByDate {
		fmt.Fprintf(c.app.out, "%s  user %d  %s / %s  %s (%d entries)\n",
			bucket.Date, derefInt64(bucket.UserID), bucket.ProjectName, bucket.TaskName,
			total, bucket.EntryCount)
		return
	}
	fmt.Fprintf(c.app.out, "%-30s %10s (%d entries)\n", bucket.Label, total, bucket.EntryCount)
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
