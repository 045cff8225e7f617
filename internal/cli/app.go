package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"billable-timer/internal/api"
	"billable-timer/internal/config"
	"billable-timer/internal/errors"
	"billable-timer/internal/services"
)

// App represents the main CLI application
type App struct {
	api          api.SessionAPI
	config       *config.Config
	services     *services.ServiceContainer
	registry     *CommandRegistry
	errorHandler *ErrorHandler
	out          io.Writer

	// defaults fill in whatever a start command leaves out
	defaults api.SessionInput
}

// NewApp creates a new CLI application instance with dependency injection.
// A nil config uses NewConfig defaults and a nil out writes to stdout.
func NewApp(sessionAPI api.SessionAPI, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}

	app := &App{
		api:          sessionAPI,
		config:       cfg,
		services:     services.NewServiceContainer(),
		errorHandler: NewErrorHandler(),
		out:          out,
		defaults: api.SessionInput{
			Rate:           cfg.Billing.DefaultRate,
			MinimumMinutes: cfg.Billing.DefaultMinimumMinutes,
		},
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// SetSessionDefaults overrides the start defaults with every non-empty field
// of input.
func (a *App) SetSessionDefaults(input api.SessionInput) {
	if input.ProjectName != "" {
		a.defaults.ProjectName = input.ProjectName
	}
	if input.Description != "" {
		a.defaults.Description = input.Description
	}
	if input.Rate != "" {
		a.defaults.Rate = input.Rate
	}
	if input.MinimumMinutes != "" {
		a.defaults.MinimumMinutes = input.MinimumMinutes
	}
}

// SessionDefaults returns the input a bare start command would use
func (a *App) SessionDefaults() api.SessionInput {
	return a.defaults
}

// Run executes a single session command with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}

	commandName := strings.ToLower(args[0])
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) currency() string {
	return a.config.Billing.Currency
}
