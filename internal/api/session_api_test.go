package api

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billable-timer/internal/config"
	"billable-timer/internal/domain"
	"billable-timer/internal/errors"
)

type testHarness struct {
	api      SessionAPI
	projects *fakeProjectStore
	ledger   *fakeLedger
	clock    *fakeClock
}

func setupTestAPI(t *testing.T) *testHarness {
	t.Helper()
	h := &testHarness{
		projects: &fakeProjectStore{},
		ledger:   &fakeLedger{},
		clock:    newFakeClock(),
	}
	h.api = New(Dependencies{
		Projects: h.projects,
		Ledger:   h.ledger,
		Logger:   zerolog.Nop(),
		Config:   config.NewConfig(),
		Clock:    h.clock.Now,
	})
	return h
}

func acmeInput() SessionInput {
	return SessionInput{ProjectName: "Acme", Description: "API work", Rate: "60", MinimumMinutes: "15"}
}

func TestSessionAPI_FullSession(t *testing.T) {
	h := setupTestAPI(t)
	ctx := context.Background()

	started, err := h.api.Start(ctx, acmeInput())
	require.NoError(t, err)
	assert.NoError(t, started.Warning)
	assert.Equal(t, "Acme", started.ProjectName)

	h.clock.Advance(4 * time.Minute)
	require.NoError(t, h.api.Pause(ctx))
	h.clock.Advance(2 * time.Minute)
	require.NoError(t, h.api.Resume(ctx))
	h.clock.Advance(6 * time.Minute)

	outcome, err := h.api.Stop(ctx)
	require.NoError(t, err)

	assert.True(t, outcome.Persisted)
	assert.Equal(t, int64(600), outcome.Session.TotalActiveSeconds)
	assert.Equal(t, int64(120), outcome.Session.TotalPausedSeconds)
	assert.Equal(t, "15", outcome.Billing.BillableMinutes.String())
	assert.Equal(t, "15.00", outcome.Billing.Earned.StringFixed(2))
	assert.Equal(t, int64(1), outcome.Record.SequenceID)

	names, err := h.api.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme"}, names)

	sessions, err := h.api.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, outcome.Session.ID.String(), sessions[0].SessionID)

	status := h.api.Status()
	assert.Equal(t, domain.StateIdle, status.State)
	assert.Zero(t, status.ElapsedSeconds)
	assert.Zero(t, status.PausedSeconds)
	assert.Empty(t, status.ProjectName)
}

func TestSessionAPI_StartRejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		input     SessionInput
		errorType errors.ErrorType
	}{
		{"empty project", SessionInput{ProjectName: "  ", Rate: "60"}, errors.ErrorTypeValidation},
		{"non numeric rate", SessionInput{ProjectName: "Acme", Rate: "abc"}, errors.ErrorTypeInvalidInput},
		{"negative rate", SessionInput{ProjectName: "Acme", Rate: "-5"}, errors.ErrorTypeInvalidInput},
		{"missing rate", SessionInput{ProjectName: "Acme"}, errors.ErrorTypeInvalidInput},
		{"non numeric floor", SessionInput{ProjectName: "Acme", Rate: "60", MinimumMinutes: "ten"}, errors.ErrorTypeInvalidInput},
		{"negative floor", SessionInput{ProjectName: "Acme", Rate: "60", MinimumMinutes: "-1"}, errors.ErrorTypeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupTestAPI(t)

			_, err := h.api.Start(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, tt.errorType), "got %v", err)
			assert.Equal(t, domain.StateIdle, h.api.Status().State)
			assert.Empty(t, h.projects.names)
		})
	}
}

func TestSessionAPI_EmptyFloorMeansNoFloor(t *testing.T) {
	h := setupTestAPI(t)
	ctx := context.Background()

	_, err := h.api.Start(ctx, SessionInput{ProjectName: "Acme", Rate: "40"})
	require.NoError(t, err)
	h.clock.Advance(37*time.Minute + 30*time.Second)

	outcome, err := h.api.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "37.5", outcome.Billing.BillableMinutes.String())
	assert.Equal(t, "25.00", outcome.Billing.Earned.StringFixed(2))
}

func TestSessionAPI_InvalidTransitions(t *testing.T) {
	h := setupTestAPI(t)
	ctx := context.Background()

	err := h.api.Pause(ctx)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidTransition))
	err = h.api.Resume(ctx)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidTransition))
	_, err = h.api.Stop(ctx)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidTransition))
	assert.Equal(t, domain.StateIdle, h.api.Status().State)

	_, err = h.api.Start(ctx, acmeInput())
	require.NoError(t, err)
	_, err = h.api.Start(ctx, acmeInput())
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidTransition))
	assert.Equal(t, domain.StateRunning, h.api.Status().State)
	assert.Equal(t, 0, h.ledger.calls)
}

func TestSessionAPI_ProjectSaveFailureIsAWarning(t *testing.T) {
	h := setupTestAPI(t)
	h.projects.saveErr = errDiskFull

	started, err := h.api.Start(context.Background(), acmeInput())
	require.NoError(t, err)
	require.Error(t, started.Warning)
	assert.True(t, errors.IsErrorType(started.Warning, errors.ErrorTypePersistence))
	assert.Equal(t, domain.StateRunning, h.api.Status().State)
}

func TestSessionAPI_LedgerFailureHoldsOutcome(t *testing.T) {
	h := setupTestAPI(t)
	ctx := context.Background()
	h.ledger.setAppendErr(errDiskFull)

	_, err := h.api.Start(ctx, acmeInput())
	require.NoError(t, err)
	h.clock.Advance(20 * time.Minute)

	outcome, err := h.api.Stop(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypePersistence))
	require.NotNil(t, outcome)
	assert.False(t, outcome.Persisted)
	assert.Equal(t, int64(1200), outcome.Session.TotalActiveSeconds)
	assert.Equal(t, "20.00", outcome.Billing.Earned.StringFixed(2))

	status := h.api.Status()
	assert.Equal(t, domain.StateIdle, status.State)
	assert.Zero(t, status.ElapsedSeconds)
	assert.Equal(t, 1, status.PendingCount)

	// Stopping again must not re-finalize the session.
	_, err = h.api.Stop(ctx)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidTransition))

	// Still failing: nothing flushed, outcome kept.
	result, err := h.api.FlushPending(ctx)
	require.Error(t, err)
	assert.Empty(t, result.Flushed)
	assert.Equal(t, 1, result.Remaining)

	h.ledger.setAppendErr(nil)
	result, err = h.api.FlushPending(ctx)
	require.NoError(t, err)
	require.Len(t, result.Flushed, 1)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, outcome.Session.ID.String(), result.Flushed[0].SessionID)
	assert.Equal(t, int64(1), result.Flushed[0].SequenceID)
	assert.Equal(t, 0, h.api.Status().PendingCount)

	// A second flush is a no-op.
	result, err = h.api.FlushPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Flushed)
	assert.Len(t, h.ledger.records, 1)
}

func TestSessionAPI_PendingSurvivesRestart(t *testing.T) {
	h := setupTestAPI(t)
	ctx := context.Background()
	h.ledger.setAppendErr(errDiskFull)

	_, err := h.api.Start(ctx, acmeInput())
	require.NoError(t, err)
	h.clock.Advance(time.Minute)
	_, err = h.api.Stop(ctx)
	require.Error(t, err)

	h.ledger.setAppendErr(nil)
	_, err = h.api.Start(ctx, SessionInput{ProjectName: "Beta", Rate: "50"})
	require.NoError(t, err)
	assert.Equal(t, 1, h.api.Status().PendingCount)

	h.clock.Advance(time.Minute)
	second, err := h.api.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Beta", second.Record.ProjectName)

	result, err := h.api.FlushPending(ctx)
	require.NoError(t, err)
	require.Len(t, result.Flushed, 1)
	assert.Equal(t, "Acme", result.Flushed[0].ProjectName)
	assert.Equal(t, int64(2), result.Flushed[0].SequenceID)
}

func TestSessionAPI_StatusIsLive(t *testing.T) {
	h := setupTestAPI(t)
	ctx := context.Background()

	_, err := h.api.Start(ctx, acmeInput())
	require.NoError(t, err)
	h.clock.Advance(90 * time.Second)

	status := h.api.Status()
	assert.Equal(t, domain.StateRunning, status.State)
	assert.Equal(t, "Acme", status.ProjectName)
	assert.Equal(t, int64(90), status.ElapsedSeconds)

	require.NoError(t, h.api.Pause(ctx))
	h.clock.Advance(30 * time.Second)
	status = h.api.Status()
	assert.Equal(t, int64(90), status.ElapsedSeconds)
	assert.Equal(t, int64(30), status.PausedSeconds)
}

func TestSessionAPI_ConcurrentStatusAndTransitions(t *testing.T) {
	h := setupTestAPI(t)
	ctx := context.Background()
	_, err := h.api.Start(ctx, acmeInput())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = h.api.Status()
				h.clock.Advance(time.Second)
			}
		}()
	}
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			_ = h.api.Pause(ctx)
		} else {
			_ = h.api.Resume(ctx)
		}
	}
	wg.Wait()

	outcome, err := h.api.Stop(ctx)
	require.NoError(t, err)
	wall := int64(outcome.Session.StoppedAt.Sub(outcome.Session.StartedAt) / time.Second)
	assert.Equal(t, wall, outcome.Session.TotalActiveSeconds+outcome.Session.TotalPausedSeconds)
}
