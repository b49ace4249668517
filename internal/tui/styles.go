// Package tui is the interactive terminal interface for generating and
// exporting tag draws.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("240")
	colorError   = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
	colorInfo    = lipgloss.Color("#2196F3")
)

// Styles collects every lipgloss style the view uses.
type Styles struct {
	Title        lipgloss.Style
	RunID        lipgloss.Style
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	ModeOn       lipgloss.Style
	ModeOff      lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style
	Error        lipgloss.Style
	Info         lipgloss.Style
	PaneTitle    lipgloss.Style
	Pane         lipgloss.Style
	Help         lipgloss.Style
	Prompt       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent),
		RunID: lipgloss.NewStyle().
			Foreground(colorMuted),
		Label: lipgloss.NewStyle().
			Foreground(colorMuted),
		LabelFocused: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent),
		ModeOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent),
		ModeOff: lipgloss.NewStyle().
			Foreground(colorMuted),
		Success: lipgloss.NewStyle().
			Foreground(colorAccent),
		Warning: lipgloss.NewStyle().
			Foreground(colorWarning),
		Error: lipgloss.NewStyle().
			Foreground(colorError),
		Info: lipgloss.NewStyle().
			Foreground(colorInfo),
		PaneTitle: lipgloss.NewStyle().
			Bold(true),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(colorMuted),
		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning),
	}
}
