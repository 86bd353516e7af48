package cli

import (
	"fmt"

	"timekeeper/internal/errors"
	"timekeeper/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if appErr, ok := errors.AsAppError(err); ok {
		switch {
		case appErr.IsType(errors.ErrorTypeConflict):
			if id := errors.ExistingEntryID(err); id > 0 {
				return fmt.Errorf("failed to %s: a timer is already running (entry #%d); stop it first", operation, id)
			}
			return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
		case appErr.IsType(errors.ErrorTypeAlreadyStopped):
			return fmt.Errorf("failed to %s: that entry is already stopped", operation)
		default:
			return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
		}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("%s", validationErr.GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	return err
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsConflictError checks if an error is a timer conflict
func (eh *ErrorHandler) IsConflictError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeConflict)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
