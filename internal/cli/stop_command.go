package cli

import (
	"context"
	"fmt"

	"billable-timer/internal/api"
	"billable-timer/internal/errors"
)

// StopCommand handles the stop command
type StopCommand struct {
	app *App
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{app: app}
}

// Execute stops the running or paused session and prints its earnings.
// A session that could not be appended to the ledger is still reported,
// followed by the save error; it stays pending until flushed.
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "stop", "usage: stop")
	}

	outcome, err := c.app.api.Stop(ctx)
	if outcome == nil {
		return c.app.errorHandler.Handle("stop session", err)
	}

	c.app.printf("%s\n", c.app.formatOutcome(outcome))
	return c.app.errorHandler.Handle("save session", err)
}

func (a *App) formatOutcome(outcome *api.StopOutcome) string {
	ts := a.services.TimeService
	billing := outcome.Billing

	line := fmt.Sprintf("stopped %s: active %s, paused %s, billable %s min, earned %s",
		outcome.Session.ProjectName,
		ts.FormatClock(outcome.Session.TotalActiveSeconds),
		ts.FormatClock(outcome.Session.TotalPausedSeconds),
		ts.FormatMinutes(billing.BillableMinutes),
		ts.FormatMoney(billing.Earned, a.currency()),
	)
	if !outcome.Persisted {
		return line + " (not saved; flush to retry)"
	}
	return fmt.Sprintf("%s [#%d]", line, outcome.Record.SequenceID)
}
