package validation

// SessionValidator checks the details a user supplies when starting a session
type SessionValidator struct {
	validator *Validator
}

// NewSessionValidator creates a session validator with built-in limits
func NewSessionValidator() *SessionValidator {
	return &SessionValidator{validator: NewValidator()}
}

// NewSessionValidatorWith creates a session validator backed by v
func NewSessionValidatorWith(v *Validator) *SessionValidator {
	return &SessionValidator{validator: v}
}

// ValidateProjectName validates a project name before a session starts
func (sv *SessionValidator) ValidateProjectName(name string) error {
	validationError := NewValidationError()
	sv.checkProjectName(validationError, name)
	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateSessionDetails validates the project name and the optional description together
func (sv *SessionValidator) ValidateSessionDetails(projectName, description string) error {
	validationError := NewValidationError()

	sv.checkProjectName(validationError, projectName)

	trimmed := sv.validator.TrimAndValidateString(description)
	if !sv.validator.IsWithinLength(trimmed, sv.validator.DescriptionMaxLength()) {
		validationError.AddInvalidLengthError("description", trimmed, sv.validator.DescriptionMaxLength())
	}
	if !sv.validator.HasNoControlCharacters(trimmed) {
		validationError.AddInvalidCharacterError("description", trimmed)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// GetValidProjectName returns the cleaned project name if valid
func (sv *SessionValidator) GetValidProjectName(name string) (string, error) {
	if err := sv.ValidateProjectName(name); err != nil {
		return "", err
	}
	return sv.validator.TrimAndValidateString(name), nil
}

func (sv *SessionValidator) checkProjectName(ve *ValidationError, name string) {
	trimmed := sv.validator.TrimAndValidateString(name)
	if !sv.validator.IsNonEmptyString(trimmed) {
		ve.AddRequiredError("project_name")
		return
	}

	max := sv.validator.ProjectNameMaxLength()
	if !sv.validator.IsWithinLength(trimmed, max) {
		ve.AddInvalidLengthError("project_name", trimmed, max)
	}
	if !sv.validator.HasNoControlCharacters(trimmed) {
		ve.AddInvalidCharacterError("project_name", trimmed)
	}
}
