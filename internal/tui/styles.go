// Package tui provides the terminal user interface for writestack.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette the styles derive from.
type Theme struct {
	Bg          string
	BgHighlight string
	Fg          string
	FgMuted     string
	Accent      string
	Scheduled   string
	PastDue     string
	Drift       string
	Success     string
	Warning     string
}

// DarkTheme is the default palette.
var DarkTheme = Theme{
	Bg:          "#1a1b26",
	BgHighlight: "#292e42",
	Fg:          "#c0caf5",
	FgMuted:     "#565f89",
	Accent:      "#7aa2f7",
	Scheduled:   "#7dcfff",
	PastDue:     "#f7768e",
	Drift:       "#e0af68",
	Success:     "#9ece6a",
	Warning:     "#ff9e64",
}

// LightTheme is the light palette.
var LightTheme = Theme{
	Bg:          "#e1e2e7",
	BgHighlight: "#c4c8da",
	Fg:          "#3760bf",
	FgMuted:     "#848cb5",
	Accent:      "#2e7de9",
	Scheduled:   "#007197",
	PastDue:     "#f52a65",
	Drift:       "#8c6c3e",
	Success:     "#587539",
	Warning:     "#b15c00",
}

// ThemeByName resolves a configured theme name, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme
	}
	return DarkTheme
}

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	Title          lipgloss.Style
	DayHeader      lipgloss.Style
	DayHeaderToday lipgloss.Style

	EmptySlot     lipgloss.Style
	Scheduled     lipgloss.Style
	PastDue       lipgloss.Style
	Drift         lipgloss.Style
	Cursor        lipgloss.Style
	MoveSource    lipgloss.Style
	MoveTarget    lipgloss.Style
	InFlight      lipgloss.Style
	EdgeIndicator lipgloss.Style

	Prompt        lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	Help          lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(t Theme) *Styles {
	accent := lipgloss.Color(t.Accent)
	muted := lipgloss.Color(t.FgMuted)
	fg := lipgloss.Color(t.Fg)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(0, 1),
		DayHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		DayHeaderToday: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Success)),

		EmptySlot: lipgloss.NewStyle().
			Foreground(muted),
		Scheduled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Scheduled)),
		PastDue: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.PastDue)),
		Drift: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Drift)),
		Cursor: lipgloss.NewStyle().
			Foreground(fg).
			Background(lipgloss.Color(t.BgHighlight)),
		MoveSource: lipgloss.NewStyle().
			Faint(true).
			Foreground(muted),
		MoveTarget: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Bg)).
			Background(accent),
		InFlight: lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color(t.Warning)),
		EdgeIndicator: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Warning)),

		Prompt: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		StatusInfo: lipgloss.NewStyle().
			Foreground(fg),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),
		StatusError: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.PastDue)),
		Help: lipgloss.NewStyle().
			Faint(true).
			Foreground(muted),
	}
}
