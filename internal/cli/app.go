package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"timekeeper/internal/api"
	"timekeeper/internal/config"
	"timekeeper/internal/domain"
	"timekeeper/internal/errors"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App holds the dependencies shared by all command handlers
type App struct {
	api    api.API
	config *config.Config
	out    io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, cfg *config.Config) *App {
	return &App{
		api:    apiInstance,
		config: cfg,
		out:    os.Stdout,
	}
}

// SetOutput redirects command output, used in tests
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// resolveUserID returns the acting user: the --user flag when given,
// otherwise the TK_USER_ID environment variable.
func resolveUserID(flagValue int64) (int64, error) {
	if flagValue > 0 {
		return flagValue, nil
	}
	if env := os.Getenv("TK_USER_ID"); env != "" {
		id, err := strconv.ParseInt(env, 10, 64)
		if err != nil || id <= 0 {
			return 0, errors.NewInvalidInputError("TK_USER_ID", env, "must be a positive integer")
		}
		return id, nil
	}
	return 0, errors.NewInvalidInputError("user", nil, "no user given: pass --user or set TK_USER_ID")
}

// timeLayouts are the accepted formats for time arguments, tried in order
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTimeArg parses a user-supplied timestamp in the local timezone
func parseTimeArg(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewInvalidInputError("time", value,
		"use RFC3339 or YYYY-MM-DD [HH:MM[:SS]]")
}

// parseTimeShorthand parses relative ranges like "30m", "2h", "1d", "2w"
func parseTimeShorthand(shorthand string) (time.Duration, error) {
	re := regexp.MustCompile(`^(\d+)(m|h|d|w|mo|y)$`)
	matches := re.FindStringSubmatch(shorthand)
	if matches == nil {
		return 0, errors.NewInvalidInputError("since", shorthand, "use formats like 30m, 2h, 1d, 2w, 3mo, 1y")
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, errors.NewInvalidInputError("since", shorthand, "invalid number")
	}

	switch matches[2] {
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	case "w":
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case "mo":
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return time.Duration(value) * 365 * 24 * time.Hour, nil
	}
}

// displayFormat returns the configured timestamp display format
func (a *App) displayFormat() string {
	if a.config != nil && a.config.Reporting.DisplayFormat != "" {
		return a.config.Reporting.DisplayFormat
	}
	return "2006-01-02 15:04:05"
}

// formatEntryLine renders one entry for list output
func (a *App) formatEntryLine(entry *domain.TimeEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "#%d  %s", entry.ID, entry.StartTime.Local().Format(a.displayFormat()))
	if entry.EndTime != nil {
		fmt.Fprintf(&b, " - %s", entry.EndTime.Local().Format(a.displayFormat()))
	} else {
		b.WriteString(" - running")
	}
	if entry.DurationMinutes != nil {
		fmt.Fprintf(&b, "  [%s]", a.api.FormatMinutes(*entry.DurationMinutes))
	}
	if entry.Description != nil && *entry.Description != "" {
		fmt.Fprintf(&b, "  %s", *entry.Description)
	}
	if !entry.Billable {
		b.WriteString("  (non-billable)")
	}
	return b.String()
}
