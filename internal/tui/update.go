package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/writestack/writestack/internal/dateutil"
	"github.com/writestack/writestack/internal/queue"
	"github.com/writestack/writestack/internal/tui/commands"
)

// Update handles all TUI messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		LogKeyPress(msg)
		switch m.mode {
		case ModeMove:
			return m.handleMoveKeys(msg)
		case ModePrompt:
			return m.handlePromptKeys(msg)
		default:
			return m.handleNormalKeys(msg)
		}

	case commands.MonthLoadedMsg:
		return m.handleMonthLoaded(msg)

	case commands.NotePublishedMsg:
		cmd := m.setStatus("Note sent", false)
		return m, tea.Batch(cmd, commands.LoadMonth(m.repo, m.month))

	case commands.NoteArchivedMsg:
		cmd := m.setStatus("Note archived", false)
		return m, tea.Batch(cmd, commands.LoadMonth(m.repo, m.month))

	case commands.NoteCreatedMsg:
		cmd := m.setStatus("Draft saved", false)
		return m, tea.Batch(cmd, commands.LoadMonth(m.repo, m.month))

	case commands.EdgeTickMsg:
		return m.handleEdgeTick()

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case commands.ErrMsg:
		m.loading = false
		m.err = msg.Err
		return m, m.setStatus(msg.Err.Error(), true)
	}

	return m, nil
}

// handleMonthLoaded installs a fetched month into the view state. When a
// drag is in progress the held note is carried across the fetch so a drop
// in the newly visible month still resolves.
func (m Model) handleMonthLoaded(msg commands.MonthLoadedMsg) (tea.Model, tea.Cmd) {
	notes := msg.Notes
	if tx := m.rec.Transaction(); tx != nil {
		if held, ok := m.state.Note(tx.NoteID); ok {
			found := false
			for _, n := range notes {
				if n.ID == tx.NoteID {
					found = true
					break
				}
			}
			if !found {
				notes = append(notes, held)
			}
		}
	}

	m.month = msg.Month
	m.state.SetNotes(notes)
	m.state.SetSlots(msg.Slots)
	m.rebuildRows()
	m.loading = false
	m.err = nil
	return m, nil
}

// handleEdgeTick polls the edge dwell while a drag hovers a month edge.
// Earned pages move the visible month; the tick loop keeps running until
// the hover leaves the edge or the gesture ends.
func (m Model) handleEdgeTick() (tea.Model, tea.Cmd) {
	tx := m.rec.Transaction()
	if m.mode != ModeMove || tx == nil || tx.Target.Kind != queue.TargetEdge {
		m.edgeProgress = 0
		return m, nil
	}

	pages, progress := m.rec.PollEdge()
	m.edgeProgress = progress
	if pages != 0 {
		m.month = dateutil.AddMonths(m.month, pages)
		m.loading = true
		return m, tea.Batch(commands.LoadMonth(m.repo, m.month), commands.EdgeTick())
	}
	return m, commands.EdgeTick()
}
