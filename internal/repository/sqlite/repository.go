package sqlite

import (
	"context"
	"database/sql"
	"time"

	"billable-timer/internal/errors"
	"billable-timer/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Projects
	CreateProject(ctx context.Context, project *Project) error
	ListProjects(ctx context.Context) ([]*Project, error)

	// Sessions
	CreateSession(ctx context.Context, session *Session) error
	GetSessionByUUID(ctx context.Context, sessionUUID string) (*Session, error)
	ListSessions(ctx context.Context) ([]*Session, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// One connection: a single writer, and ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateProject inserts a project if its name is not already present. On
// return project.ID refers to the stored row either way.
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *Project) error {
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}

	query := `INSERT OR IGNORE INTO projects (name, created_at) VALUES (?, ?)`
	if _, err := RowsAffected(ctx, r.db, query, project.Name, FormatTimeForDB(project.CreatedAt)); err != nil {
		return err
	}

	stored, err := QuerySingle(ctx, r.db, `SELECT id, name, created_at FROM projects WHERE name = ?`, ScanProject, "project", project.Name, project.Name)
	if err != nil {
		return err
	}
	*project = *stored
	return nil
}

// ListProjects returns projects in the order they were first saved
func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*Project, error) {
	query := `SELECT id, name, created_at FROM projects ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanProjects, "projects")
}

// CreateSession appends a session row. The row ID is the ledger sequence ID.
// A session whose UUID is already stored is not inserted again; session is
// filled from the existing row instead.
func (r *SQLiteRepository) CreateSession(ctx context.Context, session *Session) error {
	existing, err := r.GetSessionByUUID(ctx, session.SessionUUID)
	if err == nil {
		*session = *existing
		return nil
	}
	if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return err
	}

	query := `
	INSERT INTO sessions (
		session_uuid, project_name, description, start_time, stop_time,
		total_minutes, paused_minutes, billable_minutes, rate, earned
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		session.SessionUUID,
		session.ProjectName,
		session.Description,
		FormatTimeForDB(session.StartTime),
		FormatTimeForDB(session.StopTime),
		session.TotalMinutes,
		session.PausedMinutes,
		session.BillableMinutes,
		session.Rate,
		session.Earned,
	)
	if err != nil {
		return err
	}

	session.ID = id
	return nil
}

const sessionColumns = `id, session_uuid, project_name, description, start_time, stop_time,
	total_minutes, paused_minutes, billable_minutes, rate, earned`

// GetSessionByUUID retrieves a session by its UUID
func (r *SQLiteRepository) GetSessionByUUID(ctx context.Context, sessionUUID string) (*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE session_uuid = ?`
	return QuerySingle(ctx, r.db, query, ScanSession, "session", sessionUUID, sessionUUID)
}

// ListSessions returns all sessions in sequence order
func (r *SQLiteRepository) ListSessions(ctx context.Context) ([]*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanSessions, "sessions")
}
