package cli

import (
	"context"
	"fmt"
	"strings"

	"billable-timer/internal/domain"
)

// SessionsCommand handles the sessions command
type SessionsCommand struct {
	app *App
}

// NewSessionsCommand creates a new sessions command handler
func NewSessionsCommand(app *App) *SessionsCommand {
	return &SessionsCommand{app: app}
}

// Execute lists ledger rows in ledger order, optionally for one project, then
// prints the per-project totals.
func (c *SessionsCommand) Execute(ctx context.Context, args []string) error {
	records, err := c.app.api.Sessions(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list sessions", err)
	}

	if len(args) > 0 {
		records = c.app.services.ReportingService.FilterByProject(records, strings.Join(args, " "))
	}
	if len(records) == 0 {
		c.app.printf("No sessions found\n")
		return nil
	}

	c.app.printSessions(records)
	c.app.printf("\n")
	c.app.printSummary(records)
	return nil
}

func (a *App) printSessions(records []domain.LedgerRecord) {
	ts := a.services.TimeService
	timeFormat := a.config.Display.TimeFormat

	a.printf("%-5s %-20s %-20s %-10s %-10s %-12s %s\n", "#", "Start Time", "Stop Time", "Billable", "Rate", "Earned", "Project")
	a.printf("%s\n", strings.Repeat("-", 100))

	for _, rec := range records {
		project := rec.ProjectName
		if rec.Description != "" {
			project += ": " + rec.Description
		}
		a.printf("%-5s %-20s %-20s %-10s %-10s %-12s %s\n",
			fmt.Sprintf("%d", rec.SequenceID),
			rec.StartedAt.Format(timeFormat),
			rec.StoppedAt.Format(timeFormat),
			ts.FormatMinutes(rec.BillableMinutes),
			rec.Rate.String(),
			ts.FormatMoney(rec.Earned, a.currency()),
			project,
		)
	}
}
