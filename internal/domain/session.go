package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionDetails is the opaque metadata a user attaches to a session.
type SessionDetails struct {
	ProjectName string
	Description string
}

// FinalizedSession is the immutable record of one stopped session.
type FinalizedSession struct {
	ID                 uuid.UUID
	ProjectName        string
	Description        string
	StartedAt          time.Time
	StoppedAt          time.Time
	TotalActiveSeconds int64
	TotalPausedSeconds int64
}

// NewFinalizedSession combines the timer's totals with the session details and
// assigns a fresh session ID.
func NewFinalizedSession(totals FinalizedTotals, details SessionDetails) FinalizedSession {
	return FinalizedSession{
		ID:                 uuid.New(),
		ProjectName:        strings.TrimSpace(details.ProjectName),
		Description:        strings.TrimSpace(details.Description),
		StartedAt:          totals.StartedAt,
		StoppedAt:          totals.StoppedAt,
		TotalActiveSeconds: totals.ActiveSeconds,
		TotalPausedSeconds: totals.PausedSeconds,
	}
}

// WallClock returns the time between start and stop.
func (s FinalizedSession) WallClock() time.Duration {
	return s.StoppedAt.Sub(s.StartedAt)
}

// IsValid checks if the session has valid data.
func (s FinalizedSession) IsValid() bool {
	if s.ProjectName == "" {
		return false
	}
	if s.StartedAt.IsZero() || s.StoppedAt.Before(s.StartedAt) {
		return false
	}
	return s.TotalActiveSeconds >= 0 && s.TotalPausedSeconds >= 0
}
