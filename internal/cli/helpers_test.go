package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"billable-timer/internal/api"
	"billable-timer/internal/config"
	"billable-timer/internal/domain"
)

var errReadOnly = stderrors.New("read-only file system")

type memProjects struct {
	mu    sync.Mutex
	names []string
}

func (m *memProjects) LoadProjectNames(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.names...), nil
}

func (m *memProjects) SaveProjectName(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.names {
		if n == name {
			return nil
		}
	}
	m.names = append(m.names, name)
	return nil
}

type memLedger struct {
	mu        sync.Mutex
	records   []domain.LedgerRecord
	appendErr error
}

func (m *memLedger) AppendSession(ctx context.Context, record domain.LedgerRecord) (domain.LedgerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return domain.LedgerRecord{}, m.appendErr
	}
	record.SequenceID = int64(len(m.records) + 1)
	m.records = append(m.records, record)
	return record, nil
}

func (m *memLedger) ListSessions(ctx context.Context) ([]domain.LedgerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.LedgerRecord(nil), m.records...), nil
}

func (m *memLedger) failWith(err error) {
	m.mu.Lock()
	m.appendErr = err
	m.mu.Unlock()
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	app      *App
	out      *bytes.Buffer
	clock    *testClock
	projects *memProjects
	ledger   *memLedger
}

func setupTestApp(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		out:      &bytes.Buffer{},
		clock:    &testClock{now: time.Date(2025, 3, 4, 9, 0, 0, 0, time.Local)},
		projects: &memProjects{},
		ledger:   &memLedger{},
	}
	cfg := config.NewConfig()
	sessionAPI := api.New(api.Dependencies{
		Projects: env.projects,
		Ledger:   env.ledger,
		Logger:   zerolog.Nop(),
		Config:   cfg,
		Clock:    env.clock.Now,
	})
	env.app = NewApp(sessionAPI, cfg, env.out)
	return env
}

// run executes one command line and returns what it printed
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	e.out.Reset()
	err := e.app.Run(context.Background(), args)
	return e.out.String(), err
}

func apiInput(project, description, rate, minimum string) api.SessionInput {
	return api.SessionInput{ProjectName: project, Description: description, Rate: rate, MinimumMinutes: minimum}
}
