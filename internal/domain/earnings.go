package domain

import (
	"github.com/shopspring/decimal"

	"billable-timer/internal/errors"
)

// CurrencyPlaces is the number of decimal places money is rounded to.
const CurrencyPlaces = 2

var (
	secondsPerMinute = decimal.NewFromInt(60)
	minutesPerHour   = decimal.NewFromInt(60)
	secondsPerHour   = decimal.NewFromInt(3600)
)

// BillingResult is the billing outcome of a finalized session.
type BillingResult struct {
	TotalMinutes    decimal.Decimal
	PausedMinutes   decimal.Decimal
	BillableMinutes decimal.Decimal
	Rate            decimal.Decimal
	Earned          decimal.Decimal
}

// ComputeEarnings derives billable minutes and earnings from a finalized
// session. rateHourly is currency per hour; a positive minimumBillableMinutes
// raises short sessions to that floor, zero means no floor.
//
// Negative inputs are rejected with an invalid input error rather than
// treated as zero.
func ComputeEarnings(session FinalizedSession, rateHourly, minimumBillableMinutes decimal.Decimal) (BillingResult, error) {
	if rateHourly.IsNegative() {
		return BillingResult{}, errors.NewInvalidInputError("rate", rateHourly.String(), "must not be negative")
	}
	if minimumBillableMinutes.IsNegative() {
		return BillingResult{}, errors.NewInvalidInputError("minimum_billable_minutes", minimumBillableMinutes.String(), "must not be negative")
	}
	if session.TotalActiveSeconds < 0 || session.TotalPausedSeconds < 0 {
		return BillingResult{}, errors.NewInvalidInputError("session", session.ID.String(), "accumulated seconds must not be negative")
	}

	activeSeconds := decimal.NewFromInt(session.TotalActiveSeconds)
	totalMinutes := activeSeconds.Div(secondsPerMinute)
	pausedMinutes := decimal.NewFromInt(session.TotalPausedSeconds).Div(secondsPerMinute)

	// earned is divided once from an exact numerator; the minute figures
	// above may carry a truncated 1/60 expansion.
	billableMinutes := totalMinutes
	earned := roundMoney(rateHourly.Mul(activeSeconds), secondsPerHour)
	if minimumBillableMinutes.IsPositive() && minimumBillableMinutes.Mul(secondsPerMinute).GreaterThan(activeSeconds) {
		billableMinutes = minimumBillableMinutes
		earned = roundMoney(rateHourly.Mul(minimumBillableMinutes), minutesPerHour)
	}

	return BillingResult{
		TotalMinutes:    totalMinutes,
		PausedMinutes:   pausedMinutes,
		BillableMinutes: billableMinutes,
		Rate:            rateHourly,
		Earned:          earned,
	}, nil
}

// roundMoney returns num/den rounded half away from zero to CurrencyPlaces.
// Both operands are non-negative.
func roundMoney(num, den decimal.Decimal) decimal.Decimal {
	quotient, remainder := num.QuoRem(den, CurrencyPlaces)
	cent := den.Shift(-CurrencyPlaces)
	if remainder.Mul(decimal.NewFromInt(2)).GreaterThanOrEqual(cent) {
		quotient = quotient.Add(decimal.New(1, -CurrencyPlaces))
	}
	return quotient
}
