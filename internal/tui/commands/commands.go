// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/writestack/writestack/internal/dateutil"
	"github.com/writestack/writestack/internal/note"
)

// EdgeTickInterval is how often the edge dwell is polled while a dragged
// note hovers a month-edge zone.
const EdgeTickInterval = 100 * time.Millisecond

// MonthLoadedMsg is sent when a month's notes and the slot grid are loaded.
type MonthLoadedMsg struct {
	Month time.Time // first of the loaded month
	Notes []*note.Note
	Slots []*note.RecurringSlot
}

// NotePublishedMsg is sent when a send-now action is persisted.
type NotePublishedMsg struct {
	NoteID string
}

// NoteArchivedMsg is sent when an archive action is persisted.
type NoteArchivedMsg struct {
	NoteID string
}

// NoteCreatedMsg is sent when a quick draft is persisted.
type NoteCreatedMsg struct {
	Note *note.Note
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// EdgeTickMsg drives edge-dwell polling while a drag hovers a month edge.
type EdgeTickMsg struct {
	Time time.Time
}

// LoadMonth loads every scheduled note of the month plus the recurring
// slot grid.
func LoadMonth(repo note.Repository, month time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		start := dateutil.MonthStart(month)
		end := dateutil.AddMonths(start, 1)

		notes, err := repo.ListNotesByDateRange(ctx, start, end)
		if err != nil {
			return ErrMsg{Err: err}
		}

		slots, err := repo.ListSlots(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}

		return MonthLoadedMsg{Month: start, Notes: notes, Slots: slots}
	}
}

// Publish marks a note as sent.
func Publish(repo note.Repository, noteID string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.MarkPublished(context.Background(), noteID); err != nil {
			return ErrMsg{Err: err}
		}
		return NotePublishedMsg{NoteID: noteID}
	}
}

// Archive soft-deletes a note.
func Archive(repo note.Repository, noteID string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.ArchiveNote(context.Background(), noteID); err != nil {
			return ErrMsg{Err: err}
		}
		return NoteArchivedMsg{NoteID: noteID}
	}
}

// CreateDraft persists a quick draft typed into the prompt.
func CreateDraft(repo note.Repository, body string) tea.Cmd {
	return func() tea.Msg {
		n, err := note.NewDraft(body)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := repo.CreateNote(context.Background(), n); err != nil {
			return ErrMsg{Err: err}
		}
		return NoteCreatedMsg{Note: n}
	}
}

// EdgeTick schedules the next edge-dwell poll.
func EdgeTick() tea.Cmd {
	return tea.Tick(EdgeTickInterval, func(t time.Time) tea.Msg {
		return EdgeTickMsg{Time: t}
	})
}
