package services

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"billable-timer/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct{}

// NewReportingService creates a new ReportingService instance
func NewReportingService() ReportingService {
	return &reportingServiceImpl{}
}

// Summarize groups ledger rows by project name. Projects are sorted by name,
// case-insensitively.
func (r *reportingServiceImpl) Summarize(records []domain.LedgerRecord) *Report {
	byProject := make(map[string]*ProjectTotals)
	report := &Report{Projects: []*ProjectTotals{}, Total: newTotals("")}

	for _, rec := range records {
		totals, ok := byProject[rec.ProjectName]
		if !ok {
			t := newTotals(rec.ProjectName)
			totals = &t
			byProject[rec.ProjectName] = totals
			report.Projects = append(report.Projects, totals)
		}
		accumulate(totals, rec)
		accumulate(&report.Total, rec)
	}

	sort.SliceStable(report.Projects, func(i, j int) bool {
		return strings.ToLower(report.Projects[i].ProjectName) < strings.ToLower(report.Projects[j].ProjectName)
	})

	return report
}

// FilterByProject returns the records for one project, keeping ledger order
func (r *reportingServiceImpl) FilterByProject(records []domain.LedgerRecord, projectName string) []domain.LedgerRecord {
	filtered := make([]domain.LedgerRecord, 0, len(records))
	for _, rec := range records {
		if strings.EqualFold(rec.ProjectName, projectName) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func newTotals(name string) ProjectTotals {
	return ProjectTotals{
		ProjectName:     name,
		TotalMinutes:    decimal.Zero,
		PausedMinutes:   decimal.Zero,
		BillableMinutes: decimal.Zero,
		Earned:          decimal.Zero,
	}
}

func accumulate(t *ProjectTotals, rec domain.LedgerRecord) {
	t.SessionCount++
	t.TotalMinutes = t.TotalMinutes.Add(rec.TotalMinutes)
	t.PausedMinutes = t.PausedMinutes.Add(rec.PausedMinutes)
	t.BillableMinutes = t.BillableMinutes.Add(rec.BillableMinutes)
	t.Earned = t.Earned.Add(rec.Earned)

	if t.FirstStart.IsZero() || rec.StartedAt.Before(t.FirstStart) {
		t.FirstStart = rec.StartedAt
	}
	if rec.StoppedAt.After(t.LastStop) {
		t.LastStop = rec.StoppedAt
	}
}
