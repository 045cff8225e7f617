package cli

import (
	stderrors "errors"
	"fmt"

	"billable-timer/internal/errors"
	"billable-timer/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors.
// The result still wraps err so callers can test its type.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &handledError{message: fmt.Sprintf("failed to %s: %s", operation, eh.message(err)), cause: err}
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	var handled *handledError
	if stderrors.As(err, &handled) {
		return handled
	}
	return &handledError{message: eh.message(err), cause: err}
}

// field errors are more precise than the AppError wrapping them
func (eh *ErrorHandler) message(err error) string {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}
	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err)
	}
	return err.Error()
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsInvalidInputError checks if an error rejects a rate, floor or command argument
func (eh *ErrorHandler) IsInvalidInputError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeInvalidInput)
}

// IsTransitionError checks if an error is a rejected timer transition
func (eh *ErrorHandler) IsTransitionError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeInvalidTransition)
}

// IsPersistenceError checks if an error is a failed project or ledger write
func (eh *ErrorHandler) IsPersistenceError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypePersistence)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

type handledError struct {
	message string
	cause   error
}

func (e *handledError) Error() string { return e.message }

func (e *handledError) Unwrap() error { return e.cause }
