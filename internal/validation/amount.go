package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"billable-timer/internal/errors"
)

// ParseRate converts a user-supplied hourly rate to a decimal.
// Empty, non-numeric and negative values are invalid input.
func ParseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.NewInvalidInputError("rate", s, "is required")
	}
	return parseNonNegative("rate", s)
}

// ParseMinimumMinutes converts a user-supplied minimum billable minutes value.
// An empty value means no floor and yields zero.
func ParseMinimumMinutes(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return parseNonNegative("minimum_billable_minutes", s)
}

func parseNonNegative(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.NewInvalidInputError(field, s, "must be a number")
	}
	if d.IsNegative() {
		return decimal.Zero, errors.NewInvalidInputError(field, s, "must not be negative")
	}
	return d, nil
}
