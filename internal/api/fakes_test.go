package api

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"billable-timer/internal/domain"
)

var errDiskFull = stderrors.New("disk full")

type fakeProjectStore struct {
	mu      sync.Mutex
	names   []string
	saveErr error
}

func (f *fakeProjectStore) LoadProjectNames(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.names...), nil
}

func (f *fakeProjectStore) SaveProjectName(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	for _, n := range f.names {
		if n == name {
			return nil
		}
	}
	f.names = append(f.names, name)
	return nil
}

type fakeLedger struct {
	mu        sync.Mutex
	records   []domain.LedgerRecord
	appendErr error
	calls     int
}

func (f *fakeLedger) AppendSession(ctx context.Context, record domain.LedgerRecord) (domain.LedgerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.appendErr != nil {
		return domain.LedgerRecord{}, f.appendErr
	}
	for _, r := range f.records {
		if r.SessionID == record.SessionID {
			return r, nil
		}
	}
	record.SequenceID = int64(len(f.records) + 1)
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeLedger) ListSessions(ctx context.Context) ([]domain.LedgerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.LedgerRecord(nil), f.records...), nil
}

func (f *fakeLedger) setAppendErr(err error) {
	f.mu.Lock()
	f.appendErr = err
	f.mu.Unlock()
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 4, 9, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
