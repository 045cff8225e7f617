package domain

import (
	"time"

	"billable-timer/internal/errors"
)

// TimerState is the lifecycle state of a SessionTimer.
type TimerState int

const (
	StateIdle TimerState = iota
	StateRunning
	StatePaused
	StateStopped
)

// String returns the lower-case name of the state.
func (s TimerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Clock returns the current wall-clock time.
type Clock func() time.Time

// FinalizedTotals is what the timer itself knows at the moment it stops.
type FinalizedTotals struct {
	StartedAt     time.Time
	StoppedAt     time.Time
	ActiveSeconds int64
	PausedSeconds int64
}

// TimerSnapshot is a read-only view of the timer taken at a single instant.
type TimerSnapshot struct {
	State         TimerState
	StartedAt     time.Time
	ActiveSeconds int64
	PausedSeconds int64
}

// SessionTimer accumulates active and paused whole seconds across any number
// of pause/resume cycles.
//
// Exactly one interval is open while Running or Paused and none otherwise.
// When an interval closes only whole seconds are counted and the next interval
// starts where the counted seconds end, so the sub-second remainder carries
// over instead of being dropped. At stop, active+paused equals the whole
// seconds between start and stop.
//
// SessionTimer is not safe for concurrent use; callers serialize access.
type SessionTimer struct {
	clock Clock

	state         TimerState
	startedAt     time.Time
	activeSeconds int64
	pausedSeconds int64

	intervalStart time.Time
	intervalOpen  bool
}

// NewSessionTimer creates an idle timer. A nil clock uses time.Now.
func NewSessionTimer(clock Clock) *SessionTimer {
	if clock == nil {
		clock = time.Now
	}
	return &SessionTimer{clock: clock, state: StateIdle}
}

// State returns the current state.
func (t *SessionTimer) State() TimerState {
	return t.state
}

// Start begins a fresh session from Idle or Stopped, zeroing both accumulators.
func (t *SessionTimer) Start() error {
	if t.state != StateIdle && t.state != StateStopped {
		return errors.NewInvalidTransitionError("start", t.state.String())
	}

	now := t.clock()
	t.activeSeconds = 0
	t.pausedSeconds = 0
	t.startedAt = now
	t.openInterval(now)
	t.state = StateRunning
	return nil
}

// Pause closes the running interval into the active total.
func (t *SessionTimer) Pause() error {
	if t.state != StateRunning {
		return errors.NewInvalidTransitionError("pause", t.state.String())
	}

	t.activeSeconds += t.closeInterval(t.clock())
	t.state = StatePaused
	return nil
}

// Resume closes the paused interval into the paused total.
func (t *SessionTimer) Resume() error {
	if t.state != StatePaused {
		return errors.NewInvalidTransitionError("resume", t.state.String())
	}

	t.pausedSeconds += t.closeInterval(t.clock())
	t.state = StateRunning
	return nil
}

// Stop flushes whichever interval is open and finalizes the totals.
func (t *SessionTimer) Stop() (FinalizedTotals, error) {
	now := t.clock()

	switch t.state {
	case StateRunning:
		t.activeSeconds += t.closeInterval(now)
	case StatePaused:
		t.pausedSeconds += t.closeInterval(now)
	default:
		return FinalizedTotals{}, errors.NewInvalidTransitionError("stop", t.state.String())
	}

	t.intervalOpen = false
	t.intervalStart = time.Time{}
	t.state = StateStopped

	return FinalizedTotals{
		StartedAt:     t.startedAt,
		StoppedAt:     now,
		ActiveSeconds: t.activeSeconds,
		PausedSeconds: t.pausedSeconds,
	}, nil
}

// Reset returns the timer to Idle with all counters cleared.
func (t *SessionTimer) Reset() {
	*t = SessionTimer{clock: t.clock, state: StateIdle}
}

// LiveElapsedSeconds returns active seconds including the open running interval.
func (t *SessionTimer) LiveElapsedSeconds() int64 {
	return t.snapshotAt(t.clock()).ActiveSeconds
}

// LivePausedSeconds returns paused seconds including the open paused interval.
func (t *SessionTimer) LivePausedSeconds() int64 {
	return t.snapshotAt(t.clock()).PausedSeconds
}

// Snapshot returns both live totals computed from a single clock reading.
func (t *SessionTimer) Snapshot() TimerSnapshot {
	return t.snapshotAt(t.clock())
}

func (t *SessionTimer) snapshotAt(now time.Time) TimerSnapshot {
	snap := TimerSnapshot{
		State:         t.state,
		StartedAt:     t.startedAt,
		ActiveSeconds: t.activeSeconds,
		PausedSeconds: t.pausedSeconds,
	}

	switch t.state {
	case StateRunning:
		snap.ActiveSeconds += t.openSeconds(now)
	case StatePaused:
		snap.PausedSeconds += t.openSeconds(now)
	}
	return snap
}

func (t *SessionTimer) openInterval(now time.Time) {
	t.intervalStart = now
	t.intervalOpen = true
}

// openSeconds is the whole seconds elapsed in the open interval. A clock that
// moved backwards counts as zero.
func (t *SessionTimer) openSeconds(now time.Time) int64 {
	if !t.intervalOpen {
		return 0
	}
	elapsed := int64(now.Sub(t.intervalStart) / time.Second)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// closeInterval counts the open interval and opens the next one right after
// the counted seconds.
func (t *SessionTimer) closeInterval(now time.Time) int64 {
	elapsed := t.openSeconds(now)
	t.openInterval(t.intervalStart.Add(time.Duration(elapsed) * time.Second))
	return elapsed
}
