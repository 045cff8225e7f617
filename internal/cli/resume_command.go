package cli

import (
	"context"

	"billable-timer/internal/errors"
)

// PauseCommand handles the pause command
type PauseCommand struct {
	app *App
}

// NewPauseCommand creates a new pause command handler
func NewPauseCommand(app *App) *PauseCommand {
	return &PauseCommand{app: app}
}

// Execute pauses the running session
func (c *PauseCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "pause", "usage: pause")
	}
	if err := c.app.api.Pause(ctx); err != nil {
		return c.app.errorHandler.Handle("pause session", err)
	}

	status := c.app.api.Status()
	c.app.printf("paused %s at %s active\n", status.ProjectName, c.app.services.TimeService.FormatClock(status.ElapsedSeconds))
	return nil
}

// ResumeCommand handles the resume command
type ResumeCommand struct {
	app *App
}

// NewResumeCommand creates a new resume command handler
func NewResumeCommand(app *App) *ResumeCommand {
	return &ResumeCommand{app: app}
}

// Execute resumes the paused session
func (c *ResumeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "resume", "usage: resume")
	}
	if err := c.app.api.Resume(ctx); err != nil {
		return c.app.errorHandler.Handle("resume session", err)
	}

	status := c.app.api.Status()
	c.app.printf("resumed %s after %s paused\n", status.ProjectName, c.app.services.TimeService.FormatClock(status.PausedSeconds))
	return nil
}
