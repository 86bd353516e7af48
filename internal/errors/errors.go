package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error.
// The same error covers both "does not exist" and "belongs to another user"
// so callers never learn about entries they do not own.
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewTimerRunningError creates a conflict error for a user who already has a
// running timer. The existing entry id is carried so the caller can offer to
// stop it first.
func NewTimerRunningError(userID int64, existingEntryID int64) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: fmt.Sprintf("timer already running for user %d (entry %d)", userID, existingEntryID),
		Code:    "TIMER_ALREADY_RUNNING",
		Context: map[string]interface{}{
			"user_id":           userID,
			"existing_entry_id": existingEntryID,
		},
	}
}

// NewAlreadyStoppedError creates an error for stopping an entry that is
// already closed. Distinct from a not-found so callers can tell "stopped just
// now" from "was already stopped".
func NewAlreadyStoppedError(entryID int64) *AppError {
	return &AppError{
		Type:    ErrorTypeAlreadyStopped,
		Message: fmt.Sprintf("time entry %d is already stopped", entryID),
		Code:    "ALREADY_STOPPED",
		Context: map[string]interface{}{
			"entry_id": entryID,
		},
	}
}

// NewNoActiveTimerError creates an error for stop/pause with nothing running
func NewNoActiveTimerError(userID int64) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("no active timer for user %d", userID),
		Code:    "NO_ACTIVE_TIMER",
		Context: map[string]interface{}{
			"user_id": userID,
		},
	}
}

// NewConsistencyError creates a fatal consistency error. It signals that the
// storage invariant (at most one open entry per user) has been broken and must
// never be silently resolved.
func NewConsistencyError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConsistency,
		Message: message,
		Code:    "CONSISTENCY_VIOLATION",
		Context: make(map[string]interface{}),
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// ExistingEntryID extracts the running entry id from a timer conflict error.
// Returns 0 when the error carries no entry id.
func ExistingEntryID(err error) int64 {
	appErr, ok := AsAppError(err)
	if !ok || !appErr.IsType(ErrorTypeConflict) {
		return 0
	}
	if v, ok := appErr.GetContext("existing_entry_id"); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeConflict:
			return "A timer is already running. Stop it before starting another."
		case ErrorTypeAlreadyStopped:
			return "That timer has already been stopped."
		case ErrorTypeConsistency:
			return "An internal consistency error occurred. Please contact support."
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeConflict, ErrorTypeAlreadyStopped:
			return false // These are caller errors, not system errors
		case ErrorTypeDatabase, ErrorTypeTimeout, ErrorTypeConsistency:
			return true // These are system errors that should be logged
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
