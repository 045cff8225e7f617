package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"billable-timer/internal/config"
)

const (
	defaultProjectNameMaxLength = 100
	defaultDescriptionMaxLength = 500
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a validator using built-in limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a validator using the configured limits
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength checks that the trimmed string has at most max characters
func (v *Validator) IsWithinLength(s string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

// HasNoControlCharacters rejects newlines, tabs and other control characters.
// The CSV ledger stays one record per line only if names never contain them.
func (v *Validator) HasNoControlCharacters(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// ProjectNameMaxLength returns the configured maximum project name length or the default
func (v *Validator) ProjectNameMaxLength() int {
	if v.config != nil && v.config.Validation.ProjectNameMaxLength > 0 {
		return v.config.Validation.ProjectNameMaxLength
	}
	return defaultProjectNameMaxLength
}

// DescriptionMaxLength returns the maximum description length
func (v *Validator) DescriptionMaxLength() int {
	return defaultDescriptionMaxLength
}
