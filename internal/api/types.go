package api

import (
	"time"

	"github.com/shopspring/decimal"

	"billable-timer/internal/domain"
)

// SessionInput is what a user supplies to start a session. Rate and
// MinimumMinutes are raw strings; an empty MinimumMinutes means no floor.
type SessionInput struct {
	ProjectName    string
	Description    string
	Rate           string
	MinimumMinutes string
}

// StartResult describes a started session. Warning is set when the session
// started but the project name could not be saved.
type StartResult struct {
	ProjectName    string
	StartedAt      time.Time
	Rate           decimal.Decimal
	MinimumMinutes decimal.Decimal
	Warning        error
}

// StopOutcome is everything produced by stopping a session. Persisted is
// false while the record waits in the pending queue.
type StopOutcome struct {
	Session   domain.FinalizedSession
	Billing   domain.BillingResult
	Record    domain.LedgerRecord
	Persisted bool
}

// SessionStatus is a read-only view for periodic display refresh
type SessionStatus struct {
	State          domain.TimerState
	ProjectName    string
	Description    string
	StartedAt      time.Time
	ElapsedSeconds int64
	PausedSeconds  int64
	PendingCount   int
}

// FlushResult reports a FlushPending run
type FlushResult struct {
	Flushed   []domain.LedgerRecord
	Remaining int
}
