package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/writestack/writestack/internal/config"
	"github.com/writestack/writestack/internal/dateutil"
	"github.com/writestack/writestack/internal/note"
	"github.com/writestack/writestack/internal/queue"
	"github.com/writestack/writestack/internal/timeline"
	"github.com/writestack/writestack/internal/tui/commands"
)

// Mode is the TUI interaction mode.
type Mode int

const (
	// ModeNormal is the default browsing mode.
	ModeNormal Mode = iota
	// ModeMove means a note is held and hover targets are tracked.
	ModeMove
	// ModePrompt means the quick-draft prompt is open.
	ModePrompt
)

func modeString(m Mode) string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeMove:
		return "move"
	case ModePrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// row is one cursor-addressable line of the month timeline.
type row struct {
	dayIdx int // index into Model.days
	slot   timeline.Slot
}

// statusNotifier receives committer notifications. It is held by pointer
// so notifications survive bubbletea's value copies of the model.
type statusNotifier struct {
	msg   string
	isErr bool
	set   bool
}

func (n *statusNotifier) Success(msg string) {
	n.msg, n.isErr, n.set = msg, false, true
}

func (n *statusNotifier) Error(msg string) {
	n.msg, n.isErr, n.set = msg, true, true
}

// take returns and clears the pending notification.
func (n *statusNotifier) take() (string, bool, bool) {
	msg, isErr, set := n.msg, n.isErr, n.set
	n.msg, n.isErr, n.set = "", false, false
	return msg, isErr, set
}

// Model is the bubbletea model for the schedule queue.
type Model struct {
	repo   note.Repository
	config *config.Config
	styles *Styles
	now    func() time.Time

	state     *queue.State
	rec       *queue.Reconciler
	committer *queue.Committer
	notify    *statusNotifier

	mode        Mode
	month       time.Time // first day of the visible month
	days        []time.Time
	rows        []row
	offSchedule map[string]bool

	cursor int

	prompt       textinput.Model
	edgeProgress float64

	width  int
	height int

	statusMsg string
	statusErr bool
	loading   bool
	err       error
}

// New creates the TUI model.
func New(repo note.Repository, cfg *config.Config) Model {
	state := queue.NewState()
	notify := &statusNotifier{}

	prompt := textinput.New()
	prompt.Placeholder = "What do you want to post?"
	prompt.CharLimit = 1000
	prompt.Width = 60

	return Model{
		repo:      repo,
		config:    cfg,
		styles:    NewStyles(ThemeByName(cfg.UI.Theme)),
		now:       time.Now,
		state:     state,
		rec:       queue.NewReconciler(state, nil),
		committer: queue.NewCommitter(state, notify),
		notify:    notify,
		month:     dateutil.MonthStart(time.Now()),
		prompt:    prompt,
		loading:   true,
		width:     80,
		height:    24,
	}
}

// Init loads the initial month.
func (m Model) Init() tea.Cmd {
	return commands.LoadMonth(m.repo, m.month)
}

// rebuildRows recomputes the flattened timeline from the view state.
func (m *Model) rebuildRows() {
	now := m.now()
	m.days = dateutil.DaysOfMonth(m.month)
	merged := timeline.Merge(m.days, m.state.Notes(), m.state.Slots(), now)
	m.offSchedule = timeline.Discrepancies(m.state.Notes(), m.state.Slots())

	m.rows = m.rows[:0]
	for i, day := range m.days {
		for _, slot := range merged[dateutil.DayKey(day)] {
			m.rows = append(m.rows, row{dayIdx: i, slot: slot})
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// currentRow returns the row under the cursor, or false when the timeline
// is empty.
func (m *Model) currentRow() (row, bool) {
	if len(m.rows) == 0 {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// hoverCursor reports the cursor's row to the reconciler as the current
// drop target.
func (m *Model) hoverCursor() {
	r, ok := m.currentRow()
	if !ok {
		return
	}
	if r.slot.Kind == timeline.KindOccupied {
		_ = m.rec.HoverNote(r.slot.Note.ID)
		return
	}
	_ = m.rec.HoverSlot(r.slot.Day, r.slot.Minute)
}

// setStatus sets the status toast and schedules its clear.
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = isErr
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// takeNotification drains the committer notifier into the status toast.
func (m *Model) takeNotification() tea.Cmd {
	msg, isErr, ok := m.notify.take()
	if !ok {
		return nil
	}
	return m.setStatus(msg, isErr)
}

// Run starts the TUI.
func Run(repo note.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo note.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return fmt.Errorf("initializing debug logger: %w", err)
	}
	defer CloseDebugLogger()

	p := tea.NewProgram(New(repo, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
