package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"billable-timer/internal/domain"
)

// ProjectStore persists the list of known project names.
type ProjectStore interface {
	// LoadProjectNames returns saved names in the order they were first saved.
	LoadProjectNames(ctx context.Context) ([]string, error)
	// SaveProjectName appends name if it is not already present.
	SaveProjectName(ctx context.Context, name string) error
}

// Ledger is the append-only record of finished sessions.
type Ledger interface {
	// AppendSession writes record and returns it with its sequence ID set.
	// Appending a SessionID that is already stored returns the stored record.
	AppendSession(ctx context.Context, record domain.LedgerRecord) (domain.LedgerRecord, error)
	ListSessions(ctx context.Context) ([]domain.LedgerRecord, error)
}

// ProjectTotals aggregates the ledger rows of one project
type ProjectTotals struct {
	ProjectName     string          `json:"project_name"`
	SessionCount    int             `json:"session_count"`
	TotalMinutes    decimal.Decimal `json:"total_minutes"`
	PausedMinutes   decimal.Decimal `json:"paused_minutes"`
	BillableMinutes decimal.Decimal `json:"billable_minutes"`
	Earned          decimal.Decimal `json:"earned"`
	FirstStart      time.Time       `json:"first_start"`
	LastStop        time.Time       `json:"last_stop"`
}

// Report is the per-project summary of a ledger plus grand totals
type Report struct {
	Projects []*ProjectTotals `json:"projects"`
	Total    ProjectTotals    `json:"total"`
}

// TimeService formats durations and amounts for display
type TimeService interface {
	// FormatClock renders whole seconds as HH:MM:SS
	FormatClock(seconds int64) string
	// FormatDuration renders a duration as "1h 5m" or "5m"
	FormatDuration(duration time.Duration) string
	// FormatMinutes renders minutes with two decimal places
	FormatMinutes(minutes decimal.Decimal) string
	// FormatMoney renders an amount with two decimal places and a currency code
	FormatMoney(amount decimal.Decimal, currency string) string
}

// ReportingService handles analytics over ledger rows
type ReportingService interface {
	Summarize(records []domain.LedgerRecord) *Report
	FilterByProject(records []domain.LedgerRecord, projectName string) []domain.LedgerRecord
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService      TimeService
	ReportingService ReportingService
}

// NewServiceContainer creates the stateless display and reporting services
func NewServiceContainer() *ServiceContainer {
	return &ServiceContainer{
		TimeService:      NewTimeService(),
		ReportingService: NewReportingService(),
	}
}
