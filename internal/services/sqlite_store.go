package services

import (
	"context"

	"github.com/rs/zerolog"

	"billable-timer/internal/domain"
	"billable-timer/internal/repository/sqlite"
)

// SQLiteStore adapts the SQLite repository to ProjectStore and Ledger.
type SQLiteStore struct {
	repo   sqlite.Repository
	mapper *domain.LedgerRecordMapper
	logger zerolog.Logger
}

// NewSQLiteStore wraps repo. The store does not own repo; callers close it.
func NewSQLiteStore(repo sqlite.Repository, logger zerolog.Logger) *SQLiteStore {
	return &SQLiteStore{
		repo:   repo,
		mapper: domain.NewLedgerRecordMapper(),
		logger: logger.With().Str("backend", "sqlite").Logger(),
	}
}

func (s *SQLiteStore) LoadProjectNames(ctx context.Context) ([]string, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return names, nil
}

func (s *SQLiteStore) SaveProjectName(ctx context.Context, name string) error {
	return s.repo.CreateProject(ctx, &sqlite.Project{Name: name})
}

func (s *SQLiteStore) AppendSession(ctx context.Context, record domain.LedgerRecord) (domain.LedgerRecord, error) {
	row := s.mapper.ToDatabase(record)
	row.ID = 0
	if err := s.repo.CreateSession(ctx, &row); err != nil {
		return domain.LedgerRecord{}, err
	}

	stored, err := s.mapper.FromDatabase(row)
	if err != nil {
		return domain.LedgerRecord{}, err
	}

	s.logger.Debug().
		Int64("sequence_id", stored.SequenceID).
		Str("session_id", stored.SessionID).
		Msg("session appended")
	return stored, nil
}

func (s *SQLiteStore) ListSessions(ctx context.Context) ([]domain.LedgerRecord, error) {
	rows, err := s.repo.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.FromDatabaseSlice(rows)
}
