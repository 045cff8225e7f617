package cli

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"billable-timer/internal/errors"
	"billable-timer/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	projectErr := validation.NewValidationError()
	projectErr.AddRequiredError("project_name")

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Transition error",
			operation: "pause session",
			err:       errors.NewInvalidTransitionError("pause", "idle"),
			expected:  "failed to pause session: cannot pause while idle",
		},
		{
			name:      "Invalid input",
			operation: "start session",
			err:       errors.NewInvalidInputError("rate", "x", "must be a number"),
			expected:  "failed to start session: invalid input for rate: must be a number",
		},
		{
			name:      "Field errors inside an AppError",
			operation: "start session",
			err:       errors.NewValidationError("invalid session details", projectErr),
			expected:  "failed to start session: project_name is required",
		},
		{
			name:      "Persistence error",
			operation: "stop session",
			err:       errors.NewPersistenceError("append session", stderrors.New("disk full")),
			expected:  "failed to stop session: The session could not be saved (disk full). It is kept in memory; flush to retry.",
		},
		{
			name:      "Database error",
			operation: "list sessions",
			err:       errors.NewDatabaseError("query", stderrors.New("locked")),
			expected:  "failed to list sessions: A database error occurred. Please try again.",
		},
		{
			name:      "Regular error",
			operation: "load projects",
			err:       stderrors.New("permission denied"),
			expected:  "failed to load projects: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			assert.Equal(t, tt.expected, result.Error())
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestErrorHandler_HandleNil(t *testing.T) {
	eh := NewErrorHandler()

	assert.NoError(t, eh.Handle("anything", nil))
	assert.NoError(t, eh.HandleSimple(nil))
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	t.Run("app error", func(t *testing.T) {
		err := eh.HandleSimple(errors.NewInvalidTransitionError("resume", "running"))
		assert.Equal(t, "cannot resume while running", err.Error())
	})

	t.Run("already handled error keeps its operation", func(t *testing.T) {
		handled := eh.Handle("stop session", errors.NewInvalidTransitionError("stop", "idle"))
		wrapped := fmt.Errorf("line 3: %w", handled)

		assert.Equal(t, "failed to stop session: cannot stop while idle", eh.HandleSimple(wrapped).Error())
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, "boom", eh.HandleSimple(stderrors.New("boom")).Error())
	})
}

func TestErrorHandler_TypeChecks(t *testing.T) {
	eh := NewErrorHandler()

	transition := eh.Handle("pause session", errors.NewInvalidTransitionError("pause", "idle"))
	persistence := errors.NewPersistenceError("append session", nil)
	input := errors.NewInvalidInputError("rate", "-1", "must not be negative")
	validationErr := validation.NewValidationError()
	validationErr.AddRequiredError("project_name")

	assert.True(t, eh.IsTransitionError(transition))
	assert.False(t, eh.IsTransitionError(persistence))

	assert.True(t, eh.IsPersistenceError(persistence))
	assert.False(t, eh.IsPersistenceError(input))

	assert.True(t, eh.IsInvalidInputError(input))
	assert.False(t, eh.IsInvalidInputError(transition))

	assert.True(t, eh.IsValidationError(validationErr))
	assert.True(t, eh.IsValidationError(errors.NewValidationError("bad", nil)))
	assert.False(t, eh.IsValidationError(input))

	assert.True(t, eh.IsDatabaseError(errors.NewDatabaseError("insert", nil)))

	assert.Equal(t, "INVALID_TRANSITION", eh.GetErrorCode(transition))
	assert.Equal(t, "UNKNOWN_ERROR", eh.GetErrorCode(stderrors.New("plain")))
}
