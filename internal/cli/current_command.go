package cli

import (
	"context"
	"fmt"

	"billable-timer/internal/api"
	"billable-timer/internal/domain"
	"billable-timer/internal/errors"
)

// StatusCommand handles the status command
type StatusCommand struct {
	app *App
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app}
}

// Execute prints the current session state with live totals
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "status", "usage: status")
	}
	c.app.printf("%s\n", c.app.formatStatus(c.app.api.Status()))
	return nil
}

func (a *App) formatStatus(status api.SessionStatus) string {
	ts := a.services.TimeService

	var line string
	if status.State == domain.StateIdle {
		line = "idle"
	} else {
		line = fmt.Sprintf("%s %s: active %s, paused %s",
			status.State,
			status.ProjectName,
			ts.FormatClock(status.ElapsedSeconds),
			ts.FormatClock(status.PausedSeconds),
		)
	}

	if status.PendingCount > 0 {
		line += fmt.Sprintf(" (%d pending)", status.PendingCount)
	}
	return line
}

// FlushCommand handles the flush command
type FlushCommand struct {
	app *App
}

// NewFlushCommand creates a new flush command handler
func NewFlushCommand(app *App) *FlushCommand {
	return &FlushCommand{app: app}
}

// Execute retries every session that failed to reach the ledger
func (c *FlushCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "flush", "usage: flush")
	}

	result, err := c.app.api.FlushPending(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("flush pending sessions", err)
	}
	c.app.printf("%s\n", formatFlush(result))
	return nil
}

func formatFlush(result *api.FlushResult) string {
	return fmt.Sprintf("flushed %d session(s), %d pending", len(result.Flushed), result.Remaining)
}
