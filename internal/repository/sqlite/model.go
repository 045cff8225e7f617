package sqlite

import "time"

// Project is a row of the projects table
type Project struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Session is a row of the sessions table. Money and minute columns are kept
// as decimal strings so values round-trip exactly.
type Session struct {
	ID              int64
	SessionUUID     string
	ProjectName     string
	Description     string
	StartTime       time.Time
	StopTime        time.Time
	TotalMinutes    string
	PausedMinutes   string
	BillableMinutes string
	Rate            string
	Earned          string
}
