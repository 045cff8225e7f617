package cli

import (
	"github.com/charmbracelet/lipgloss"

	"billable-timer/internal/domain"
)

const (
	colorAccent = lipgloss.Color("#7AA2F7")
	colorGreen  = lipgloss.Color("#9ECE6A")
	colorYellow = lipgloss.Color("#E0AF68")
	colorRed    = lipgloss.Color("#F7768E")
	colorDim    = lipgloss.Color("#565F89")
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	clockStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	frameStyle   = lipgloss.NewStyle().Padding(1, 2)
)

// stateBadge renders the timer state as a fixed-width colored label
func stateBadge(state domain.TimerState) string {
	style := lipgloss.NewStyle().Bold(true).Width(9)
	switch state {
	case domain.StateRunning:
		style = style.Foreground(colorGreen)
	case domain.StatePaused:
		style = style.Foreground(colorYellow)
	case domain.StateStopped:
		style = style.Foreground(colorAccent)
	default:
		style = style.Foreground(colorDim)
	}
	return style.Render(stateLabel(state))
}

func stateLabel(state domain.TimerState) string {
	switch state {
	case domain.StateRunning:
		return "RUNNING"
	case domain.StatePaused:
		return "PAUSED"
	case domain.StateStopped:
		return "STOPPED"
	default:
		return "IDLE"
	}
}
