package cli

import (
	"context"
	"strings"

	"billable-timer/internal/domain"
	"billable-timer/internal/errors"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	app *App
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{app: app}
}

// Execute prints per-project totals over the whole ledger
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "summary", "usage: summary")
	}

	records, err := c.app.api.Sessions(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("summarize sessions", err)
	}
	if len(records) == 0 {
		c.app.printf("No sessions found\n")
		return nil
	}

	c.app.printSummary(records)
	return nil
}

func (a *App) printSummary(records []domain.LedgerRecord) {
	ts := a.services.TimeService
	report := a.services.ReportingService.Summarize(records)

	a.printf("%-30s %-10s %-12s %-12s %s\n", "Project", "Sessions", "Minutes", "Billable", "Earned")
	a.printf("%s\n", strings.Repeat("=", 80))

	for _, p := range report.Projects {
		a.printf("%-30s %-10d %-12s %-12s %s\n",
			p.ProjectName,
			p.SessionCount,
			ts.FormatMinutes(p.TotalMinutes),
			ts.FormatMinutes(p.BillableMinutes),
			ts.FormatMoney(p.Earned, a.currency()),
		)
	}

	a.printf("%s\n", strings.Repeat("-", 80))
	a.printf("%-30s %-10d %-12s %-12s %s\n",
		"Total",
		report.Total.SessionCount,
		ts.FormatMinutes(report.Total.TotalMinutes),
		ts.FormatMinutes(report.Total.BillableMinutes),
		ts.FormatMoney(report.Total.Earned, a.currency()),
	)
}
