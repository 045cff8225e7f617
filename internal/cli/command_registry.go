package cli

import (
	"context"
	"sort"

	"billable-timer/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a registry holding the session commands
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("start", NewStartCommand(app))
	registry.Register("pause", NewPauseCommand(app))
	registry.Register("resume", NewResumeCommand(app))
	registry.Register("stop", NewStopCommand(app))
	registry.Register("status", NewStatusCommand(app))
	registry.Register("flush", NewFlushCommand(app))
	registry.Register("projects", NewProjectsCommand(app))
	registry.Register("sessions", NewSessionsCommand(app))
	registry.Register("summary", NewSummaryCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Names returns the registered command names in sorted order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetUsage returns the usage string for the session commands
func (r *CommandRegistry) GetUsage() string {
	return "usage: start [project] [rate=R] [min=M] [desc=text] | pause | resume | stop | status | flush | projects | sessions [project] | summary | quit"
}
