package validation

import (
	"time"

	"timekeeper/internal/config"
	"timekeeper/internal/domain"
)

// TimeEntryValidator provides validation for time-entry-related operations
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator with defaults
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidator()}
}

// NewTimeEntryValidatorWithConfig creates a new time entry validator with configuration
func NewTimeEntryValidatorWithConfig(cfg *config.Config) *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateUserID validates the acting user id
func (tev *TimeEntryValidator) ValidateUserID(userID int64) error {
	if !tev.validator.IsValidID(userID) {
		ve := NewValidationError()
		ve.AddInvalidValueError("user_id", userID, "must be a positive integer")
		return ve
	}
	return nil
}

// ValidateEntryID validates a time entry id
func (tev *TimeEntryValidator) ValidateEntryID(id int64) error {
	if !tev.validator.IsValidID(id) {
		ve := NewValidationError()
		ve.AddInvalidValueError("entry_id", id, "must be a positive integer")
		return ve
	}
	return nil
}

// ValidateStart validates the inputs of a timer start
func (tev *TimeEntryValidator) ValidateStart(userID int64, taskID, projectID *int64, description *string) error {
	ve := NewValidationError()

	if !tev.validator.IsValidID(userID) {
		ve.AddInvalidValueError("user_id", userID, "must be a positive integer")
	}
	if taskID != nil && !tev.validator.IsValidID(*taskID) {
		ve.AddInvalidValueError("task_id", *taskID, "must be a positive integer")
	}
	if projectID != nil && !tev.validator.IsValidID(*projectID) {
		ve.AddInvalidValueError("project_id", *projectID, "must be a positive integer")
	}
	tev.validateDescription(ve, description)

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateManualEntry validates a manually logged entry with both instants
// supplied up front
func (tev *TimeEntryValidator) ValidateManualEntry(userID int64, taskID, projectID *int64, description *string, start time.Time, end time.Time) error {
	ve := NewValidationError()

	if !tev.validator.IsValidID(userID) {
		ve.AddInvalidValueError("user_id", userID, "must be a positive integer")
	}
	if taskID != nil && !tev.validator.IsValidID(*taskID) {
		ve.AddInvalidValueError("task_id", *taskID, "must be a positive integer")
	}
	if projectID != nil && !tev.validator.IsValidID(*projectID) {
		ve.AddInvalidValueError("project_id", *projectID, "must be a positive integer")
	}
	tev.validateDescription(ve, description)
	tev.validateInterval(ve, start, &end)

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateUpdate validates a partial update before it is applied
func (tev *TimeEntryValidator) ValidateUpdate(id int64, fields domain.UpdateFields) error {
	ve := NewValidationError()

	if !tev.validator.IsValidID(id) {
		ve.AddInvalidValueError("entry_id", id, "must be a positive integer")
	}
	if fields.IsEmpty() {
		ve.AddInvalidValueError("fields", nil, "no fields to update")
	}
	if fields.TaskID != nil && !tev.validator.IsValidID(*fields.TaskID) {
		ve.AddInvalidValueError("task_id", *fields.TaskID, "must be a positive integer")
	}
	if fields.ProjectID != nil && !tev.validator.IsValidID(*fields.ProjectID) {
		ve.AddInvalidValueError("project_id", *fields.ProjectID, "must be a positive integer")
	}
	tev.validateDescription(ve, fields.Description)
	if fields.StartTime != nil && !tev.validator.IsReasonableDate(*fields.StartTime) {
		ve.AddInvalidValueError("start_time", *fields.StartTime, "must be within reasonable date range")
	}
	if fields.EndTime != nil && !tev.validator.IsReasonableDate(*fields.EndTime) {
		ve.AddInvalidValueError("end_time", *fields.EndTime, "must be within reasonable date range")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateFilter validates search filters at the boundary
func (tev *TimeEntryValidator) ValidateFilter(filter domain.Filter) error {
	ve := NewValidationError()

	if filter.UserID != nil && !tev.validator.IsValidID(*filter.UserID) {
		ve.AddInvalidValueError("user_id", *filter.UserID, "must be a positive integer")
	}
	if filter.TaskID != nil && !tev.validator.IsValidID(*filter.TaskID) {
		ve.AddInvalidValueError("task_id", *filter.TaskID, "must be a positive integer")
	}
	if filter.ProjectID != nil && !tev.validator.IsValidID(*filter.ProjectID) {
		ve.AddInvalidValueError("project_id", *filter.ProjectID, "must be a positive integer")
	}
	if !tev.validator.IsValidDateRange(filter.DateFrom, filter.DateTo) {
		ve.AddInvalidRangeError("date_range", map[string]interface{}{
			"from": filter.DateFrom,
			"to":   filter.DateTo,
		}, "date_to must be after or equal to date_from")
	}
	if filter.Text != nil && !tev.validator.IsNonEmptyString(*filter.Text) {
		ve.AddInvalidValueError("text", *filter.Text, "must not be empty")
	}
	if filter.SortKey != "" && filter.SortKey != domain.SortByStartTime && filter.SortKey != domain.SortByCreatedAt {
		ve.AddInvalidValueError("sort_key", filter.SortKey, "must be start_time or created_at")
	}
	if filter.Offset < 0 {
		ve.AddInvalidValueError("offset", filter.Offset, "must not be negative")
	}
	if filter.Limit < 0 {
		ve.AddInvalidValueError("limit", filter.Limit, "must not be negative")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

func (tev *TimeEntryValidator) validateDescription(ve *ValidationError, description *string) {
	if description == nil {
		return
	}
	if !tev.validator.IsValidDescriptionLength(*description) {
		ve.AddInvalidLengthError("description", *description, tev.validator.DescriptionMaxLength())
	}
}

func (tev *TimeEntryValidator) validateInterval(ve *ValidationError, start time.Time, end *time.Time) {
	if start.IsZero() {
		ve.AddRequiredError("start_time")
		return
	}
	if !tev.validator.IsReasonableDate(start) {
		ve.AddInvalidValueError("start_time", start, "must be within reasonable date range")
	}
	if end == nil {
		return
	}
	if !tev.validator.IsReasonableDate(*end) {
		ve.AddInvalidValueError("end_time", *end, "must be within reasonable date range")
	}
	if !tev.validator.IsValidTimeRange(start, end) {
		ve.AddInvalidRangeError("time_range", map[string]time.Time{
			"start": start,
			"end":   *end,
		}, "end time must be after start time")
		return
	}
	if !tev.validator.IsValidDuration(end.Sub(start)) {
		ve.AddInvalidValueError("duration", end.Sub(start), "must be positive and within the configured maximum")
	}
}
