package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/writestack/writestack/internal/dateutil"
	"github.com/writestack/writestack/internal/note"
	"github.com/writestack/writestack/internal/queue"
	"github.com/writestack/writestack/internal/timeline"
	"github.com/writestack/writestack/internal/tui/commands"
)

// handleNormalKeys handles keys in normal browsing mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "h", "left":
		m.jumpDay(-1)
		return m, nil

	case "l", "right":
		m.jumpDay(1)
		return m, nil

	case "g":
		m.cursor = 0
		return m, nil

	case "G":
		m.cursor = len(m.rows) - 1
		m.clampCursor()
		return m, nil

	case "H", "pgup":
		m.month = dateutil.AddMonths(m.month, -1)
		m.cursor = 0
		m.loading = true
		return m, commands.LoadMonth(m.repo, m.month)

	case "L", "pgdown":
		m.month = dateutil.AddMonths(m.month, 1)
		m.cursor = 0
		m.loading = true
		return m, commands.LoadMonth(m.repo, m.month)

	case "t":
		m.month = dateutil.MonthStart(m.now())
		m.cursor = 0
		m.loading = true
		return m, commands.LoadMonth(m.repo, m.month)

	case "r":
		m.loading = true
		return m, commands.LoadMonth(m.repo, m.month)

	case "m", "enter":
		return m.startMove()

	case "s":
		return m.sendNow()

	case "u":
		return m.unschedule()

	case "a":
		return m.archive()

	case "c":
		return m.copyBody()

	case "o":
		m.mode = ModePrompt
		m.prompt.SetValue("")
		LogModeChange(ModeNormal, ModePrompt, "open quick draft")
		return m, m.prompt.Focus()
	}

	return m, nil
}

// handleMoveKeys handles keys while a note is held. Cursor movement
// retargets the gesture; crossing the month boundary hovers an edge zone
// and starts the dwell tick loop.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.rec.Cancel()
		m.mode = ModeNormal
		m.edgeProgress = 0
		LogModeChange(ModeMove, ModeNormal, "cancel")
		return m, m.setStatus("Move cancelled", false)

	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.hoverCursor()
			m.edgeProgress = 0
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.hoverCursor()
			m.edgeProgress = 0
		}
		return m, nil

	case "h", "left":
		if r, ok := m.currentRow(); ok && r.dayIdx == 0 {
			return m.hoverEdge(queue.EdgeLeft)
		}
		m.jumpDay(-1)
		m.hoverCursor()
		m.edgeProgress = 0
		return m, nil

	case "l", "right":
		if r, ok := m.currentRow(); ok && r.dayIdx == len(m.days)-1 {
			return m.hoverEdge(queue.EdgeRight)
		}
		m.jumpDay(1)
		m.hoverCursor()
		m.edgeProgress = 0
		return m, nil

	case "H", "pgup":
		return m.hoverEdge(queue.EdgeLeft)

	case "L", "pgdown":
		return m.hoverEdge(queue.EdgeRight)

	case "enter":
		return m.drop()
	}

	return m, nil
}

// handlePromptKeys handles keys while the quick-draft prompt is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.prompt.Blur()
		LogModeChange(ModePrompt, ModeNormal, "cancel prompt")
		return m, nil

	case "enter":
		body := strings.TrimSpace(m.prompt.Value())
		m.mode = ModeNormal
		m.prompt.Blur()
		LogModeChange(ModePrompt, ModeNormal, "submit prompt")
		if body == "" {
			return m, nil
		}
		return m, commands.CreateDraft(m.repo, body)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// jumpDay moves the cursor to the first row of the adjacent day that has
// rows, scanning in the given direction.
func (m *Model) jumpDay(dir int) {
	r, ok := m.currentRow()
	if !ok {
		return
	}
	want := r.dayIdx + dir
	for ; want >= 0 && want < len(m.days); want += dir {
		for i, row := range m.rows {
			if row.dayIdx == want {
				m.cursor = i
				return
			}
		}
	}
}

// startMove begins a drag gesture on the note under the cursor.
func (m Model) startMove() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok || r.slot.Kind != timeline.KindOccupied {
		return m, nil
	}
	n := r.slot.Note
	if n.Status == note.StatusPublished {
		return m, m.setStatus("Published notes cannot be moved", true)
	}
	if m.committer.InFlight(n.ID) {
		return m, m.setStatus("A change for this note is still saving", true)
	}
	if err := m.rec.Start(n.ID); err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.mode = ModeMove
	m.hoverCursor()
	LogModeChange(ModeNormal, ModeMove, "pick up note")
	return m, nil
}

// hoverEdge points the gesture at a month-edge zone and starts dwell
// polling.
func (m Model) hoverEdge(edge queue.Edge) (tea.Model, tea.Cmd) {
	already := false
	if tx := m.rec.Transaction(); tx != nil {
		already = tx.Target.Kind == queue.TargetEdge && tx.Target.Edge == edge
	}
	if err := m.rec.HoverEdge(edge); err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	if already {
		// Tick loop is running for this edge.
		return m, nil
	}
	m.edgeProgress = 0
	return m, commands.EdgeTick()
}

// drop completes the gesture. The append-only engine resolves the intent;
// the commit applies optimistically and reverts if persistence fails.
func (m Model) drop() (tea.Model, tea.Cmd) {
	intent, err := m.rec.Drop()
	m.mode = ModeNormal
	m.edgeProgress = 0
	LogModeChange(ModeMove, ModeNormal, "drop")
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	if intent == nil {
		m.rebuildRows()
		return m, m.setStatus("Move cancelled", false)
	}

	err = m.committer.Commit(context.Background(), intent.NoteID, intent.At,
		func(ctx context.Context) error {
			return m.repo.RescheduleNote(ctx, intent.NoteID, intent.At)
		})
	m.rebuildRows()
	m.moveCursorTo(intent.NoteID)
	if cmd := m.takeNotification(); cmd != nil {
		return m, cmd
	}
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	return m, nil
}

// sendNow publishes the note under the cursor immediately.
func (m Model) sendNow() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok || r.slot.Kind != timeline.KindOccupied {
		return m, nil
	}
	n := r.slot.Note
	if n.Status != note.StatusScheduled {
		return m, m.setStatus("Only scheduled notes can be sent", true)
	}
	return m, commands.Publish(m.repo, n.ID)
}

// unschedule returns the note under the cursor to the drafts pool.
func (m Model) unschedule() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok || r.slot.Kind != timeline.KindOccupied {
		return m, nil
	}
	n := r.slot.Note
	if m.committer.InFlight(n.ID) {
		return m, m.setStatus("A change for this note is still saving", true)
	}

	err := m.committer.CommitUnschedule(context.Background(), n.ID,
		func(ctx context.Context) error {
			return m.repo.UnscheduleNote(ctx, n.ID)
		})
	m.rebuildRows()
	if cmd := m.takeNotification(); cmd != nil {
		return m, cmd
	}
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	return m, nil
}

// archive soft-deletes the note under the cursor.
func (m Model) archive() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok || r.slot.Kind != timeline.KindOccupied {
		return m, nil
	}
	return m, commands.Archive(m.repo, r.slot.Note.ID)
}

// copyBody copies the note body under the cursor to the clipboard.
func (m Model) copyBody() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok || r.slot.Kind != timeline.KindOccupied {
		return m, nil
	}
	if err := clipboard.WriteAll(r.slot.Note.Body); err != nil {
		return m, m.setStatus("Clipboard unavailable: "+err.Error(), true)
	}
	return m, m.setStatus("Copied to clipboard", false)
}

// moveCursorTo points the cursor at the given note if it is visible.
func (m *Model) moveCursorTo(noteID string) {
	for i, r := range m.rows {
		if r.slot.Kind == timeline.KindOccupied && r.slot.Note.ID == noteID {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}
