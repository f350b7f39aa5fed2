package ui

import (
	"fmt"
	"time"

	"github.com/writestack/writestack/internal/note"
	"github.com/writestack/writestack/internal/timeline"
)

// defaultPreviewWidth is used when the terminal width cannot help.
const defaultPreviewWidth = 60

// statusSymbol returns a one-character indicator for a note status.
func statusSymbol(s note.Status) string {
	switch s {
	case note.StatusDraft:
		return "·"
	case note.StatusScheduled:
		return "○"
	case note.StatusPublished:
		return "✓"
	case note.StatusInspiration:
		return "☆"
	case note.StatusChatGenerated:
		return "¤"
	case note.StatusArchived:
		return "✗"
	default:
		return "?"
	}
}

// previewWidth picks a body preview width from the terminal size.
func previewWidth() int {
	// Row overhead: "  ○ 12:30pm  " plus markers, roughly 24 columns.
	w := termWidth() - 24
	if w < 20 {
		return 20
	}
	if w > 100 {
		return 100
	}
	return w
}

// printTimelineRow prints one merged timeline slot.
func printTimelineRow(s timeline.Slot, offSchedule map[string]bool, width int) {
	if s.Kind == timeline.KindEmpty {
		fmt.Printf("  %s\n", formatEmpty(fmt.Sprintf("· %-8s (open slot)", s.Clock())))
		return
	}

	n := s.Note
	markers := ""
	if s.PastDue {
		markers += " " + formatPastDue("[past due]")
	}
	if offSchedule[n.ID] {
		markers += " " + formatDrift("[off schedule]")
	}

	fmt.Printf("  %s %-8s %s%s\n",
		statusSymbol(n.Status),
		s.Clock(),
		formatScheduled(n.Preview(width)),
		markers,
	)
}

// printNoteRow prints a note outside the timeline context.
func printNoteRow(n *note.Note, width int) {
	when := formatMuted("unscheduled")
	if n.ScheduledTo != nil {
		when = formatMuted(n.ScheduledTo.Format("2006-01-02 3:04pm"))
	}
	fmt.Printf("  %s %s  %s\n      %s\n",
		statusSymbol(n.Status),
		n.Preview(width),
		when,
		formatMuted(n.ID),
	)
}

// formatDay renders a day header, marking today.
func formatDay(day, now time.Time) string {
	label := day.Format("Monday, January 2")
	if day.Year() == now.Year() && day.YearDay() == now.YearDay() {
		label += " (today)"
	}
	return formatHeader(fmt.Sprintf("=== %s ===", label))
}
