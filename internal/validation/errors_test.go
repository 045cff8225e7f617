package validation

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		errors   []FieldError
		contains string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "project_name", Message: "is required"}}, "validation error for field 'project_name': is required"},
		{"Multiple errors", []FieldError{
			{Field: "project_name", Message: "is required"},
			{Field: "description", Message: "too long"},
		}, "multiple validation errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			if result := ve.Error(); !strings.Contains(result, tt.contains) {
				t.Errorf("ValidationError.Error() = %v, expected to contain %v", result, tt.contains)
			}
		})
	}
}

func TestValidationError_AddHelpers(t *testing.T) {
	ve := NewValidationError()
	if ve.HasErrors() {
		t.Fatal("new ValidationError should be empty")
	}

	ve.AddRequiredError("project_name")
	ve.AddInvalidLengthError("description", "xxxx", 3)
	ve.AddInvalidCharacterError("description", "a\nb")
	ve.AddInvalidValueError("rate", "-1", "must not be negative")

	if len(ve.Errors) != 4 {
		t.Fatalf("expected 4 errors, got %d", len(ve.Errors))
	}
	if ve.Errors[0].Type != ErrorTypeRequired || ve.Errors[0].Message != "project_name is required" {
		t.Errorf("unexpected required error: %+v", ve.Errors[0])
	}
	if ve.Errors[1].Message != "description must be at most 3 characters long" {
		t.Errorf("unexpected length message: %q", ve.Errors[1].Message)
	}
	if got := len(ve.GetFieldErrors("description")); got != 2 {
		t.Errorf("GetFieldErrors(description) = %d, expected 2", got)
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	if msg := ve.GetUserFriendlyMessage(); msg != "Input validation failed" {
		t.Errorf("empty message = %q", msg)
	}

	ve.AddRequiredError("project_name")
	if msg := ve.GetUserFriendlyMessage(); msg != "project_name is required" {
		t.Errorf("single message = %q", msg)
	}

	ve.AddInvalidCharacterError("description", "\t")
	msg := ve.GetUserFriendlyMessage()
	if !strings.HasPrefix(msg, "Multiple validation errors occurred:") || !strings.Contains(msg, "- description contains invalid characters") {
		t.Errorf("multi message = %q", msg)
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	if !IsValidationError(ve) {
		t.Error("IsValidationError should be true for *ValidationError")
	}
	if !IsValidationError(fmt.Errorf("start: %w", ve)) {
		t.Error("IsValidationError should see through wrapping")
	}
	if IsValidationError(fmt.Errorf("plain")) {
		t.Error("IsValidationError should be false for other errors")
	}
}
