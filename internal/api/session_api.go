package api

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"billable-timer/internal/config"
	"billable-timer/internal/domain"
	"billable-timer/internal/errors"
	"billable-timer/internal/services"
	"billable-timer/internal/validation"
)

// SessionAPI drives one billable session at a time.
type SessionAPI interface {
	Start(ctx context.Context, input SessionInput) (*StartResult, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Stop(ctx context.Context) (*StopOutcome, error)
	FlushPending(ctx context.Context) (*FlushResult, error)
	Status() SessionStatus

	Projects(ctx context.Context) ([]string, error)
	Sessions(ctx context.Context) ([]domain.LedgerRecord, error)
}

// Dependencies wires a SessionAPI. Config and Clock may be nil.
type Dependencies struct {
	Projects services.ProjectStore
	Ledger   services.Ledger
	Logger   zerolog.Logger
	Config   *config.Config
	Clock    domain.Clock
}

// activeSession is the billing context of the current or last session.
type activeSession struct {
	details        domain.SessionDetails
	rate           decimal.Decimal
	minimumMinutes decimal.Decimal
}

type sessionAPIImpl struct {
	projects         services.ProjectStore
	ledger           services.Ledger
	logger           zerolog.Logger
	sessionValidator *validation.SessionValidator

	// mu guards timer, current and pending. No I/O happens while it is held.
	mu      sync.RWMutex
	timer   *domain.SessionTimer
	current activeSession
	pending []domain.LedgerRecord
}

// New creates a new SessionAPI instance.
func New(deps Dependencies) SessionAPI {
	validator := validation.NewValidator()
	if deps.Config != nil {
		validator = validation.NewValidatorWithConfig(deps.Config)
	}

	return &sessionAPIImpl{
		projects:         deps.Projects,
		ledger:           deps.Ledger,
		logger:           deps.Logger.With().Str("component", "session").Logger(),
		sessionValidator: validation.NewSessionValidatorWith(validator),
		timer:            domain.NewSessionTimer(deps.Clock),
	}
}

func (a *sessionAPIImpl) Start(ctx context.Context, input SessionInput) (*StartResult, error) {
	if err := a.sessionValidator.ValidateSessionDetails(input.ProjectName, input.Description); err != nil {
		return nil, errors.NewValidationError("invalid session details", err)
	}
	rate, err := validation.ParseRate(input.Rate)
	if err != nil {
		return nil, err
	}
	minimum, err := validation.ParseMinimumMinutes(input.MinimumMinutes)
	if err != nil {
		return nil, err
	}
	projectName, _ := a.sessionValidator.GetValidProjectName(input.ProjectName)

	// Fail fast so an invalid start does not touch the project store.
	a.mu.RLock()
	state := a.timer.State()
	a.mu.RUnlock()
	if state != domain.StateIdle && state != domain.StateStopped {
		return nil, errors.NewInvalidTransitionError("start", state.String())
	}

	result := &StartResult{ProjectName: projectName, Rate: rate, MinimumMinutes: minimum}
	if err := a.projects.SaveProjectName(ctx, projectName); err != nil {
		result.Warning = errors.NewPersistenceError("save project name", err)
		a.logger.Warn().Err(err).Str("project", projectName).Msg("project name not saved")
	}

	a.mu.Lock()
	if err := a.timer.Start(); err != nil {
		a.mu.Unlock()
		return nil, err
	}
	a.current = activeSession{
		details:        domain.SessionDetails{ProjectName: projectName, Description: input.Description},
		rate:           rate,
		minimumMinutes: minimum,
	}
	result.StartedAt = a.timer.Snapshot().StartedAt
	a.mu.Unlock()

	a.logger.Info().
		Str("project", projectName).
		Str("rate", rate.String()).
		Str("minimum_minutes", minimum.String()).
		Msg("session started")
	return result, nil
}

func (a *sessionAPIImpl) Pause(ctx context.Context) error {
	return a.transition("pause", a.timer.Pause)
}

func (a *sessionAPIImpl) Resume(ctx context.Context) error {
	return a.transition("resume", a.timer.Resume)
}

func (a *sessionAPIImpl) transition(name string, apply func() error) error {
	a.mu.Lock()
	err := apply()
	snap := a.timer.Snapshot()
	project := a.current.details.ProjectName
	a.mu.Unlock()

	if err != nil {
		a.logger.Debug().Err(err).Str("operation", name).Msg("transition rejected")
		return err
	}
	a.logger.Info().
		Str("project", project).
		Str("state", snap.State.String()).
		Int64("active_seconds", snap.ActiveSeconds).
		Int64("paused_seconds", snap.PausedSeconds).
		Msg("session " + name + "d")
	return nil
}

// Stop finalizes the session and appends it to the ledger. When the append
// fails the outcome is still returned, together with a persistence error,
// and the record is kept for FlushPending.
func (a *sessionAPIImpl) Stop(ctx context.Context) (*StopOutcome, error) {
	a.mu.Lock()
	totals, err := a.timer.Stop()
	if err != nil {
		a.mu.Unlock()
		return nil, err
	}
	session := domain.NewFinalizedSession(totals, a.current.details)
	if !session.IsValid() {
		a.mu.Unlock()
		return nil, errors.NewValidationError("finalized session is incomplete", nil).
			WithContext("session_id", session.ID.String())
	}
	billing, err := domain.ComputeEarnings(session, a.current.rate, a.current.minimumMinutes)
	if err != nil {
		a.mu.Unlock()
		return nil, err
	}
	// The outcome owns the totals now; the display returns to zero.
	a.timer.Reset()
	a.current = activeSession{}
	a.mu.Unlock()

	outcome := &StopOutcome{
		Session: session,
		Billing: billing,
		Record:  domain.NewLedgerRecord(session, billing),
	}

	logEvent := a.logger.Info().
		Str("project", session.ProjectName).
		Str("session_id", session.ID.String()).
		Int64("active_seconds", session.TotalActiveSeconds).
		Int64("paused_seconds", session.TotalPausedSeconds).
		Dur("wall_clock", session.WallClock()).
		Str("billable_minutes", billing.BillableMinutes.String()).
		Str("earned", billing.Earned.StringFixed(domain.CurrencyPlaces))

	stored, err := a.ledger.AppendSession(ctx, outcome.Record)
	if err != nil {
		a.mu.Lock()
		a.pending = append(a.pending, outcome.Record)
		a.mu.Unlock()

		logEvent.Msg("session stopped")
		a.logger.Error().Err(err).Str("session_id", session.ID.String()).Msg("session held for retry")
		return outcome, errors.NewPersistenceError("append session", err)
	}

	outcome.Record = stored
	outcome.Persisted = true
	logEvent.Int64("sequence_id", stored.SequenceID).Msg("session stopped")
	return outcome, nil
}

// FlushPending retries every held record in stop order. Records that append
// successfully leave the queue; the first failure stops the run.
func (a *sessionAPIImpl) FlushPending(ctx context.Context) (*FlushResult, error) {
	a.mu.RLock()
	queue := make([]domain.LedgerRecord, len(a.pending))
	copy(queue, a.pending)
	a.mu.RUnlock()

	result := &FlushResult{}
	var flushErr error
	for _, record := range queue {
		stored, err := a.ledger.AppendSession(ctx, record)
		if err != nil {
			flushErr = errors.NewPersistenceError("flush pending session", err)
			break
		}
		result.Flushed = append(result.Flushed, stored)
	}

	a.mu.Lock()
	a.pending = removeFlushed(a.pending, result.Flushed)
	result.Remaining = len(a.pending)
	a.mu.Unlock()

	if len(result.Flushed) > 0 {
		a.logger.Info().Int("flushed", len(result.Flushed)).Int("remaining", result.Remaining).Msg("pending sessions flushed")
	}
	if flushErr != nil {
		a.logger.Error().Err(flushErr).Int("remaining", result.Remaining).Msg("flush failed")
	}
	return result, flushErr
}

func removeFlushed(pending, flushed []domain.LedgerRecord) []domain.LedgerRecord {
	if len(flushed) == 0 {
		return pending
	}
	done := make(map[string]bool, len(flushed))
	for _, r := range flushed {
		done[r.SessionID] = true
	}
	kept := pending[:0]
	for _, r := range pending {
		if !done[r.SessionID] {
			kept = append(kept, r)
		}
	}
	return kept
}

func (a *sessionAPIImpl) Status() SessionStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snap := a.timer.Snapshot()
	return SessionStatus{
		State:          snap.State,
		ProjectName:    a.current.details.ProjectName,
		Description:    a.current.details.Description,
		StartedAt:      snap.StartedAt,
		ElapsedSeconds: snap.ActiveSeconds,
		PausedSeconds:  snap.PausedSeconds,
		PendingCount:   len(a.pending),
	}
}

func (a *sessionAPIImpl) Projects(ctx context.Context) ([]string, error) {
	return a.projects.LoadProjectNames(ctx)
}

func (a *sessionAPIImpl) Sessions(ctx context.Context) ([]domain.LedgerRecord, error) {
	return a.ledger.ListSessions(ctx)
}
