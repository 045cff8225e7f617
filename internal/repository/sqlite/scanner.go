package sqlite

import "fmt"

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanSession scans a single session from a database row
func ScanSession(scanner Scanner) (*Session, error) {
	session := &Session{}
	var startTime, stopTime string

	err := scanner.Scan(
		&session.ID,
		&session.SessionUUID,
		&session.ProjectName,
		&session.Description,
		&startTime,
		&stopTime,
		&session.TotalMinutes,
		&session.PausedMinutes,
		&session.BillableMinutes,
		&session.Rate,
		&session.Earned,
	)
	if err != nil {
		return nil, err
	}

	if session.StartTime, err = ParseTimeFromDB(startTime); err != nil {
		return nil, fmt.Errorf("session %d start_time: %w", session.ID, err)
	}
	if session.StopTime, err = ParseTimeFromDB(stopTime); err != nil {
		return nil, fmt.Errorf("session %d stop_time: %w", session.ID, err)
	}

	return session, nil
}

// ScanSessions scans multiple sessions from database rows
func ScanSessions(rows Rows) ([]*Session, error) {
	return scanAll(rows, ScanSession)
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	var createdAt string
	if err := scanner.Scan(&project.ID, &project.Name, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if project.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("project %d created_at: %w", project.ID, err)
	}
	return project, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*Project, error) {
	return scanAll(rows, ScanProject)
}

func scanAll[T any](rows Rows, scanOne func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
