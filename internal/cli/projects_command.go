package cli

import (
	"context"

	"billable-timer/internal/errors"
)

// ProjectsCommand handles the projects command
type ProjectsCommand struct {
	app *App
}

// NewProjectsCommand creates a new projects command handler
func NewProjectsCommand(app *App) *ProjectsCommand {
	return &ProjectsCommand{app: app}
}

// Execute prints saved project names in the order they were first used
func (c *ProjectsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "projects", "usage: projects")
	}

	names, err := c.app.api.Projects(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("load projects", err)
	}
	if len(names) == 0 {
		c.app.printf("No projects saved\n")
		return nil
	}
	for _, name := range names {
		c.app.printf("%s\n", name)
	}
	return nil
}
