package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Scheduled notes: cyan for the queue proper
	colorScheduled = color.New(color.FgCyan)

	// Empty slots: dim/grey placeholders
	colorEmpty = color.New(color.FgWhite, color.Faint)

	// Past-due markers: red to demand attention
	colorPastDue = color.New(color.FgRed, color.Bold)

	// Off-schedule markers: yellow for drifted notes
	colorDrift = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Success output: green
	colorSuccess = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatScheduled(s string) string {
	return colorScheduled.Sprint(s)
}

func formatEmpty(s string) string {
	return colorEmpty.Sprint(s)
}

func formatPastDue(s string) string {
	return colorPastDue.Sprint(s)
}

func formatDrift(s string) string {
	return colorDrift.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatSuccess(s string) string {
	return colorSuccess.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
