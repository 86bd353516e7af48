package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"timekeeper/internal/api"
	"timekeeper/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(apiInstance api.API, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		app:    NewApp(apiInstance, cfg),
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "tk",
		Short: "A command-line time tracker with per-user timers and reports",
		Long: `Timekeeper (tk) tracks time entries per user: start and stop timers,
pause and resume work sessions, log entries after the fact, and report
aggregated totals by date, user, project, or task.

EXAMPLES:
  tk start --desc "reviewing PRs"          # Start a timer
  tk status                                # Show the running timer
  tk pause                                 # Pause; tk resume continues it
  tk stop                                  # Stop and record the duration
  tk log --start "2026-08-10 09:00" --end "2026-08-10 11:30"
  tk list --since 1w                       # Entries from the last week
  tk report --group project --since 1mo    # Minutes per project
  tk summary --since 1d                    # Today's headline totals

CONFIGURATION:
  The acting user comes from --user or TK_USER_ID.

  TK_DB_DIR                 Database directory (default: ~/.timekeeper)
  TK_DB_FILENAME            Database filename (default: timekeeper.db)
  TK_REPORT_TIMEZONE        Timezone for date bucketing (default: Local)
  TK_BILLABLE_DEFAULT       Default billability of new entries (default: true)
  TK_ENTRIES_PAGE_SIZE      Default list page size (default: 50)
  TK_APP_TIMEOUT            Command timeout (default: 60s)

TIME FORMATS:
  Absolute:  2026-08-10, 2026-08-10 09:00, RFC3339
  Relative:  30m, 2h, 1d, 2w, 3mo, 1y (for --since)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Command exposes the underlying cobra command, used in tests
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// App exposes the shared command dependencies, used in tests
func (r *RootCommand) App() *App {
	return r.app
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()
	flags.Int64("user", 0, "Acting user id (overrides TK_USER_ID)")
	flags.Duration("app-timeout", 0, "Command timeout (overrides TK_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TK_APP_VERBOSE)")
}

// commandContext builds the bounded context every handler runs under
func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	timeout := 60 * time.Second
	if r.config != nil && r.config.Application.Timeout > 0 {
		timeout = r.config.Application.Timeout
	}
	if flagTimeout, err := r.cmd.PersistentFlags().GetDuration("app-timeout"); err == nil && flagTimeout > 0 {
		timeout = flagTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// globalUser reads the persistent --user flag
func (r *RootCommand) globalUser() int64 {
	user, _ := r.cmd.PersistentFlags().GetInt64("user")
	return user
}

// billableFlag turns the tri-state billable flag into a *bool: nil when the
// flag was not given, so the configured default applies.
func billableFlag(cmd *cobra.Command) *bool {
	if !cmd.Flags().Changed("billable") {
		return nil
	}
	value, _ := cmd.Flags().GetBool("billable")
	return &value
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("task", 0, "Filter by task id")
	cmd.Flags().Int64("project", 0, "Filter by project id")
	cmd.Flags().String("since", "", "Relative range, e.g. 1d, 2w")
	cmd.Flags().String("from", "", "Entries starting at or after this time")
	cmd.Flags().String("to", "", "Entries starting at or before this time")
	cmd.Flags().String("text", "", "Match description, task, or project name")
	cmd.Flags().Bool("billable", false, "Filter by billability")
	cmd.Flags().Bool("closed", false, "Closed entries only")
}

func filterFlagsFrom(cmd *cobra.Command, user int64) FilterFlags {
	taskID, _ := cmd.Flags().GetInt64("task")
	projectID, _ := cmd.Flags().GetInt64("project")
	since, _ := cmd.Flags().GetString("since")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	text, _ := cmd.Flags().GetString("text")
	closed, _ := cmd.Flags().GetBool("closed")

	return FilterFlags{
		User:      user,
		TaskID:    taskID,
		ProjectID: projectID,
		Since:     since,
		From:      from,
		To:        to,
		Text:      text,
		Billable:  billableFlag(cmd),
		Closed:    closed,
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a timer",
		Long:  "Start a timer for the acting user. Fails if the user already has one running.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			taskID, _ := cmd.Flags().GetInt64("task")
			projectID, _ := cmd.Flags().GetInt64("project")
			desc, _ := cmd.Flags().GetString("desc")

			return NewStartCommand(r.app).Execute(ctx, StartFlags{
				User:        r.globalUser(),
				TaskID:      taskID,
				ProjectID:   projectID,
				Description: desc,
				Billable:    billableFlag(cmd),
			})
		},
	}
	startCmd.Flags().Int64("task", 0, "Task to bill the time against")
	startCmd.Flags().Int64("project", 0, "Project to bill the time against")
	startCmd.Flags().String("desc", "", "Free-text description")
	startCmd.Flags().Bool("billable", false, "Mark the entry billable or not")

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		Long:  "Stop the acting user's running timer, or a specific entry via --entry.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			entryID, _ := cmd.Flags().GetInt64("entry")
			return NewStopCommand(r.app).Execute(ctx, StopFlags{
				User:    r.globalUser(),
				EntryID: entryID,
			})
		},
	}
	stopCmd.Flags().Int64("entry", 0, "Stop this entry instead of the open one")

	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause the running timer",
		Long:  "Stop the running timer while keeping its session, so 'tk resume' continues it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewPauseCommand(r.app).Execute(ctx, r.globalUser())
		},
	}

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume the last stopped timer",
		Long:  "Start a new timer continuing the most recently closed entry: same task, project, description, and session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewResumeCommand(r.app).Execute(ctx, r.globalUser())
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewStatusCommand(r.app).Execute(ctx, r.globalUser())
		},
	}

	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log a completed entry",
		Long:  "Record a closed entry directly from a start and end time, without running a timer.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			taskID, _ := cmd.Flags().GetInt64("task")
			projectID, _ := cmd.Flags().GetInt64("project")
			desc, _ := cmd.Flags().GetString("desc")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")

			return NewLogCommand(r.app).Execute(ctx, LogFlags{
				User:        r.globalUser(),
				TaskID:      taskID,
				ProjectID:   projectID,
				Description: desc,
				Billable:    billableFlag(cmd),
				Start:       start,
				End:         end,
			})
		},
	}
	logCmd.Flags().Int64("task", 0, "Task to bill the time against")
	logCmd.Flags().Int64("project", 0, "Project to bill the time against")
	logCmd.Flags().String("desc", "", "Free-text description")
	logCmd.Flags().Bool("billable", false, "Mark the entry billable or not")
	logCmd.Flags().String("start", "", "Start time (required)")
	logCmd.Flags().String("end", "", "End time (required)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
		Long: `List the acting user's time entries with optional filtering.

Examples:
  tk list                      # Most recent entries
  tk list --since 1d           # Last 24 hours
  tk list --project 3 --closed # Closed entries for project 3
  tk list --text "review"      # Entries mentioning "review"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			flags := filterFlagsFrom(cmd, r.globalUser())
			flags.Sort, _ = cmd.Flags().GetString("sort")
			flags.Ascending, _ = cmd.Flags().GetBool("asc")
			flags.Limit, _ = cmd.Flags().GetInt("limit")
			flags.Offset, _ = cmd.Flags().GetInt("offset")

			return NewListCommand(r.app).Execute(ctx, flags)
		},
	}
	addFilterFlags(listCmd)
	listCmd.Flags().String("sort", "", "Sort key: start_time or created_at")
	listCmd.Flags().Bool("asc", false, "Sort ascending instead of descending")
	listCmd.Flags().Int("limit", 0, "Page size")
	listCmd.Flags().Int("offset", 0, "Page offset")

	editCmd := &cobra.Command{
		Use:   "edit [entry id]",
		Short: "Edit an entry",
		Long:  "Apply a partial update to an entry. Only the given flags change; duration is recomputed when start or end moves.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			taskID, _ := cmd.Flags().GetInt64("task")
			projectID, _ := cmd.Flags().GetInt64("project")
			desc, _ := cmd.Flags().GetString("desc")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			clearTask, _ := cmd.Flags().GetBool("clear-task")
			clearProj, _ := cmd.Flags().GetBool("clear-project")
			clearDesc, _ := cmd.Flags().GetBool("clear-desc")

			return NewEditCommand(r.app).Execute(ctx, args, EditFlags{
				TaskID:      taskID,
				ProjectID:   projectID,
				Description: desc,
				Start:       start,
				End:         end,
				Billable:    billableFlag(cmd),
				ClearTask:   clearTask,
				ClearProj:   clearProj,
				ClearDesc:   clearDesc,
			})
		},
	}
	editCmd.Flags().Int64("task", 0, "New task id")
	editCmd.Flags().Int64("project", 0, "New project id")
	editCmd.Flags().String("desc", "", "New description")
	editCmd.Flags().String("start", "", "New start time")
	editCmd.Flags().String("end", "", "New end time")
	editCmd.Flags().Bool("billable", false, "New billability")
	editCmd.Flags().Bool("clear-task", false, "Remove the task reference")
	editCmd.Flags().Bool("clear-project", false, "Remove the project reference")
	editCmd.Flags().Bool("clear-desc", false, "Remove the description")

	deleteCmd := &cobra.Command{
		Use:   "delete [entry id]",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewDeleteCommand(r.app).Execute(ctx, args)
		},
	}

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate closed entries",
		Long: `Group closed entries and report per-bucket totals.

Examples:
  tk report --group date --since 1w     # Daily breakdown for the last week
  tk report --group project             # Minutes per project, all time
  tk report --group user --since 1mo    # Minutes per user this month`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			groupBy, _ := cmd.Flags().GetString("group")
			return NewReportCommand(r.app).Execute(ctx, filterFlagsFrom(cmd, r.globalUser()), groupBy)
		},
	}
	addFilterFlags(reportCmd)
	reportCmd.Flags().String("group", "date", "Grouping dimension: date, user, project, or task")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show headline totals",
		Long:  "Print total, billable, and entry counts for the acting user's closed entries.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewSummaryCommand(r.app).Execute(ctx, filterFlagsFrom(cmd, r.globalUser()))
		},
	}
	addFilterFlags(summaryCmd)

	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Maintain task labels",
	}
	taskCmd.AddCommand(
		&cobra.Command{
			Use:   "add [name]",
			Short: "Create a task label",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := r.commandContext()
				defer cancel()
				return NewTaskCommand(r.app).Add(ctx, args)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List task labels",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := r.commandContext()
				defer cancel()
				return NewTaskCommand(r.app).List(ctx)
			},
		},
	)

	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Maintain project labels",
	}
	projectCmd.AddCommand(
		&cobra.Command{
			Use:   "add [name]",
			Short: "Create a project label",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := r.commandContext()
				defer cancel()
				return NewProjectCommand(r.app).Add(ctx, args)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List project labels",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := r.commandContext()
				defer cancel()
				return NewProjectCommand(r.app).List(ctx)
			},
		},
	)

	r.cmd.AddCommand(
		startCmd,
		stopCmd,
		pauseCmd,
		resumeCmd,
		statusCmd,
		logCmd,
		listCmd,
		editCmd,
		deleteCmd,
		reportCmd,
		summaryCmd,
		taskCmd,
		projectCmd,
	)
}
