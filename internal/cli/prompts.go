package cli

import (
	"context"

	"github.com/charmbracelet/huh"

	"billable-timer/internal/api"
	"billable-timer/internal/validation"
)

// PromptSessionInput asks for the project and billing terms when no project
// was given. Fields already known are shown prefilled.
func (a *App) PromptSessionInput(ctx context.Context) error {
	if a.defaults.ProjectName != "" {
		return nil
	}

	// suggestions are a convenience; an unreadable project list leaves them empty
	suggestions, _ := a.api.Projects(ctx)

	input := a.defaults
	form := a.sessionForm(&input, suggestions)
	if err := form.RunWithContext(ctx); err != nil {
		return err
	}

	a.SetSessionDefaults(input)
	return nil
}

func (a *App) sessionForm(input *api.SessionInput, suggestions []string) *huh.Form {
	validator := validation.NewSessionValidatorWith(validation.NewValidatorWithConfig(a.config))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project").
				Placeholder("Client or project name").
				Suggestions(suggestions).
				Value(&input.ProjectName).
				Validate(func(s string) error { return userFacing(validator.ValidateProjectName(s)) }),
			huh.NewInput().
				Title("Description (optional)").
				Value(&input.Description),
			huh.NewInput().
				Title("Hourly rate").
				Placeholder("0").
				Value(&input.Rate).
				Validate(validateRate),
			huh.NewInput().
				Title("Minimum billable minutes (blank for none)").
				Placeholder("15").
				Value(&input.MinimumMinutes).
				Validate(validateMinimumMinutes),
		),
	).WithShowHelp(false)
}

func validateRate(s string) error {
	_, err := validation.ParseRate(s)
	return userFacing(err)
}

func validateMinimumMinutes(s string) error {
	_, err := validation.ParseMinimumMinutes(s)
	return userFacing(err)
}

// userFacing drops the error type prefix so the form shows only the reason
func userFacing(err error) error {
	if err == nil {
		return nil
	}
	return NewErrorHandler().HandleSimple(err)
}
