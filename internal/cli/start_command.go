package cli

import (
	"context"
	"strings"

	"billable-timer/internal/api"
)

// StartCommand handles the start command
type StartCommand struct {
	app *App
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{app: app}
}

// Execute starts a session. Plain words form the project name; rate=, min=
// and desc= set the rest. desc= consumes every word after it.
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	input := parseStartArgs(args, c.app.defaults)

	result, err := c.app.api.Start(ctx, input)
	if err != nil {
		return c.app.errorHandler.Handle("start session", err)
	}

	line := "started " + result.ProjectName + " at " + result.StartedAt.Format(c.app.config.Display.TimeFormat) +
		" (rate " + result.Rate.String() + "/h"
	if result.MinimumMinutes.IsPositive() {
		line += ", minimum " + result.MinimumMinutes.String() + " min"
	}
	line += ")"
	if result.Warning != nil {
		line += "; project list not updated"
	}
	c.app.printf("%s\n", line)
	return nil
}

func parseStartArgs(args []string, defaults api.SessionInput) api.SessionInput {
	input := defaults
	var project []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		key, value, found := strings.Cut(arg, "=")
		if !found {
			project = append(project, arg)
			continue
		}

		switch strings.ToLower(key) {
		case "rate":
			input.Rate = value
		case "min", "minimum":
			input.MinimumMinutes = value
		case "desc", "description":
			input.Description = strings.Join(append([]string{value}, args[i+1:]...), " ")
			i = len(args)
		default:
			project = append(project, arg)
		}
	}

	if len(project) > 0 {
		input.ProjectName = strings.Join(project, " ")
	}
	return input
}
