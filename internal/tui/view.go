package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/writestack/writestack/internal/dateutil"
	"github.com/writestack/writestack/internal/queue"
	"github.com/writestack/writestack/internal/timeline"
)

const edgeBarWidth = 10

// View renders the month timeline.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	body := m.renderRows()
	b.WriteString(body)

	if m.mode == ModePrompt {
		b.WriteString("\n")
		b.WriteString(m.styles.Prompt.Render(m.prompt.View()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderTitle() string {
	title := "WriteStack " + m.month.Format("January 2006")
	if m.loading {
		title += "  loading..."
	}
	return m.styles.Title.Render(title)
}

// visibleHeight is how many timeline lines fit between the chrome.
func (m Model) visibleHeight() int {
	h := m.height - 5
	if m.mode == ModePrompt {
		h -= 3
	}
	if h < 4 {
		h = 4
	}
	return h
}

// renderRows renders the day-grouped timeline, keeping the cursor inside
// the scroll window.
func (m Model) renderRows() string {
	if len(m.rows) == 0 {
		return m.styles.EmptySlot.Render(
			"  No posts or slots this month. Press 'o' to draft, 'r' to reload.")
	}

	lines := make([]string, 0, len(m.rows)*2)
	cursorLine := 0
	lastDay := -1
	for i, r := range m.rows {
		if r.dayIdx != lastDay {
			lines = append(lines, m.renderDayHeader(r.dayIdx))
			lastDay = r.dayIdx
		}
		if i == m.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, m.renderRow(r, i == m.cursor))
	}

	// Scroll so the cursor line stays visible.
	height := m.visibleHeight()
	start := 0
	if cursorLine >= height {
		start = cursorLine - height + 1
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderDayHeader(dayIdx int) string {
	day := m.days[dayIdx]
	label := day.Format("Mon Jan 2")
	if dateutil.SameDay(day, m.now()) {
		return m.styles.DayHeaderToday.Render(label + " (today)")
	}
	return m.styles.DayHeader.Render(label)
}

func (m Model) renderRow(r row, selected bool) string {
	tx := m.rec.Transaction()

	line := fmt.Sprintf("  %7s  %s", r.slot.Clock(), m.rowLabel(r))
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	line = ansi.Truncate(line, width, "…")

	style := m.rowStyle(r, tx)
	if selected {
		if m.mode == ModeMove && tx != nil {
			style = m.styles.MoveTarget
		} else {
			style = m.styles.Cursor
		}
	}
	return style.Render(line)
}

// rowLabel is the text content of a row, markers included.
func (m Model) rowLabel(r row) string {
	if r.slot.Kind == timeline.KindEmpty {
		return "(open slot)"
	}

	n := r.slot.Note
	label := n.Preview(60)
	if r.slot.PastDue {
		label += "  [past due]"
	}
	if m.offSchedule[n.ID] {
		label += "  [off schedule]"
	}
	if m.committer.InFlight(n.ID) {
		label += "  [saving]"
	}
	return label
}

func (m Model) rowStyle(r row, tx *queue.Transaction) lipgloss.Style {
	if r.slot.Kind == timeline.KindEmpty {
		return m.styles.EmptySlot
	}
	n := r.slot.Note
	if tx != nil && tx.NoteID == n.ID {
		return m.styles.MoveSource
	}
	if m.committer.InFlight(n.ID) {
		return m.styles.InFlight
	}
	if r.slot.PastDue {
		return m.styles.PastDue
	}
	if m.offSchedule[n.ID] {
		return m.styles.Drift
	}
	return m.styles.Scheduled
}

func (m Model) renderStatus() string {
	if tx := m.rec.Transaction(); tx != nil && tx.Target.Kind == queue.TargetEdge {
		return m.styles.EdgeIndicator.Render(m.renderEdgeBar(tx.Target.Edge))
	}
	if m.statusMsg == "" {
		if m.err != nil {
			return m.styles.StatusError.Render(m.err.Error())
		}
		return ""
	}
	if m.statusErr {
		return m.styles.StatusError.Render(m.statusMsg)
	}
	return m.styles.StatusSuccess.Render(m.statusMsg)
}

// renderEdgeBar shows the dwell progress toward the next month page.
func (m Model) renderEdgeBar(edge queue.Edge) string {
	filled := int(m.edgeProgress * edgeBarWidth)
	if filled > edgeBarWidth {
		filled = edgeBarWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", edgeBarWidth-filled)
	if edge == queue.EdgeLeft {
		return "◀ previous month " + bar
	}
	return "next month " + bar + " ▶"
}

func (m Model) renderHelp() string {
	switch m.mode {
	case ModeMove:
		return m.styles.Help.Render(
			"j/k retarget · h/l day · H/L hold for month · enter drop · esc cancel")
	case ModePrompt:
		return m.styles.Help.Render("enter save draft · esc cancel")
	default:
		return m.styles.Help.Render(
			"j/k move · h/l day · H/L month · m move · s send · u unschedule · a archive · c copy · o draft · q quit")
	}
}
