package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRecord is one row of the session ledger.
type LedgerRecord struct {
	SequenceID      int64
	SessionID       string
	ProjectName     string
	Description     string
	StartedAt       time.Time
	StoppedAt       time.Time
	TotalMinutes    decimal.Decimal
	PausedMinutes   decimal.Decimal
	BillableMinutes decimal.Decimal
	Rate            decimal.Decimal
	Earned          decimal.Decimal
}

// NewLedgerRecord builds an unsequenced ledger row. The ledger assigns the
// sequence ID when the row is appended.
func NewLedgerRecord(session FinalizedSession, billing BillingResult) LedgerRecord {
	return LedgerRecord{
		SessionID:       session.ID.String(),
		ProjectName:     session.ProjectName,
		Description:     session.Description,
		StartedAt:       session.StartedAt,
		StoppedAt:       session.StoppedAt,
		TotalMinutes:    billing.TotalMinutes,
		PausedMinutes:   billing.PausedMinutes,
		BillableMinutes: billing.BillableMinutes,
		Rate:            billing.Rate,
		Earned:          billing.Earned,
	}
}
