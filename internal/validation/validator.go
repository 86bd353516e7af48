package validation

import (
	"strings"
	"time"

	"timekeeper/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance using defaults
func NewValidator() *Validator {
	return &Validator{config: nil}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsValidID checks if an identifier is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidDescriptionLength checks a description against the configured cap
func (v *Validator) IsValidDescriptionLength(s string) bool {
	return len(s) <= v.DescriptionMaxLength()
}

// IsValidTimeRange checks if start time is before end time
func (v *Validator) IsValidTimeRange(startTime time.Time, endTime *time.Time) bool {
	if endTime == nil {
		return true // Open entry, no end time yet
	}
	return startTime.Before(*endTime)
}

// IsValidDuration checks if a duration is within reasonable bounds
func (v *Validator) IsValidDuration(d time.Duration) bool {
	return d > 0 && d <= v.maxDuration()
}

// IsReasonableDate checks if a date is within reasonable bounds
func (v *Validator) IsReasonableDate(t time.Time) bool {
	now := time.Now()
	// Allow dates from 10 years ago to 1 year in the future
	tenYearsAgo := now.AddDate(-10, 0, 0)
	oneYearFromNow := now.AddDate(1, 0, 0)

	return t.After(tenYearsAgo) && t.Before(oneYearFromNow)
}

// IsValidDateRange checks if a date range is logical
func (v *Validator) IsValidDateRange(startTime, endTime *time.Time) bool {
	if startTime == nil || endTime == nil {
		return true // Open-ended ranges are valid
	}
	return !startTime.After(*endTime)
}

// TrimString trims surrounding whitespace from a string
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}

// DescriptionMaxLength returns the configured description cap or default
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMaxLength
	}
	return 500
}

func (v *Validator) maxDuration() time.Duration {
	if v.config != nil {
		return v.config.Validation.MaxDuration
	}
	return 24 * time.Hour
}
