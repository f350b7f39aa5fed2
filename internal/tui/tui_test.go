package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/writestack/writestack/internal/config"
	"github.com/writestack/writestack/internal/note"
	"github.com/writestack/writestack/internal/queue"
	"github.com/writestack/writestack/internal/timeline"
	"github.com/writestack/writestack/internal/tui/commands"
)

// fakeRepo is an in-memory note.Repository for TUI tests. Unused methods
// panic through the embedded nil interface.
type fakeRepo struct {
	note.Repository

	notes []*note.Note
	slots []*note.RecurringSlot

	rescheduleErr error
	rescheduled   map[string]time.Time
	unscheduled   []string
	published     []string
	archived      []string
	created       []*note.Note
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rescheduled: make(map[string]time.Time)}
}

func (f *fakeRepo) ListNotesByDateRange(_ context.Context, start, end time.Time) ([]*note.Note, error) {
	var out []*note.Note
	for _, n := range f.notes {
		if n.ScheduledTo == nil {
			continue
		}
		if !n.ScheduledTo.Before(start) && n.ScheduledTo.Before(end) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListSlots(context.Context) ([]*note.RecurringSlot, error) {
	return f.slots, nil
}

func (f *fakeRepo) RescheduleNote(_ context.Context, id string, at time.Time) error {
	if f.rescheduleErr != nil {
		return f.rescheduleErr
	}
	f.rescheduled[id] = at
	return nil
}

func (f *fakeRepo) UnscheduleNote(_ context.Context, id string) error {
	f.unscheduled = append(f.unscheduled, id)
	return nil
}

func (f *fakeRepo) MarkPublished(_ context.Context, id string) error {
	f.published = append(f.published, id)
	return nil
}

func (f *fakeRepo) ArchiveNote(_ context.Context, id string) error {
	f.archived = append(f.archived, id)
	return nil
}

func (f *fakeRepo) CreateNote(_ context.Context, n *note.Note) error {
	f.created = append(f.created, n)
	return nil
}

// base is a fixed reference time: Tuesday March 10 2026, 8am local.
var base = time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)

func scheduledNote(id, body string, at time.Time) *note.Note {
	return &note.Note{
		ID:          id,
		Body:        body,
		Status:      note.StatusScheduled,
		ScheduledTo: &at,
		CreatedAt:   base.Add(-24 * time.Hour),
		UpdatedAt:   base.Add(-24 * time.Hour),
	}
}

// newTestModel builds a model over the fake repo with the month of base
// loaded and a frozen clock.
func newTestModel(t *testing.T, repo *fakeRepo) Model {
	t.Helper()

	m := New(repo, config.Default())
	m.now = func() time.Time { return base }
	m.rec = queue.NewReconciler(m.state, m.now)
	m.month = time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)

	msg := commands.LoadMonth(repo, m.month)()
	loaded, ok := msg.(commands.MonthLoadedMsg)
	if !ok {
		t.Fatalf("LoadMonth returned %T, want MonthLoadedMsg", msg)
	}
	updated, _ := m.Update(loaded)
	return updated.(Model)
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// cursorOn moves the cursor onto the given note.
func cursorOn(t *testing.T, m *Model, noteID string) {
	t.Helper()
	for i, r := range m.rows {
		if r.slot.Kind == timeline.KindOccupied && r.slot.Note.ID == noteID {
			m.cursor = i
			return
		}
	}
	t.Fatalf("note %s not visible in timeline", noteID)
}

// cursorOnEmpty moves the cursor onto the first empty slot.
func cursorOnEmpty(t *testing.T, m *Model) timeline.Slot {
	t.Helper()
	for i, r := range m.rows {
		if r.slot.Kind == timeline.KindEmpty {
			m.cursor = i
			return r.slot
		}
	}
	t.Fatal("no empty slot visible in timeline")
	return timeline.Slot{}
}

func TestMonthLoaded_BuildsTimeline(t *testing.T) {
	repo := newFakeRepo()
	repo.notes = []*note.Note{
		scheduledNote("n1", "first post", base.Add(26*time.Hour)),
		scheduledNote("n2", "second post", base.Add(50*time.Hour)),
	}
	slot, err := note.NewSlot(9, 0, note.MeridiemAM, []time.Weekday{time.Friday})
	if err != nil {
		t.Fatal(err)
	}
	repo.slots = []*note.RecurringSlot{slot}

	m := newTestModel(t, repo)

	if len(m.rows) == 0 {
		t.Fatal("expected timeline rows")
	}
	occupied, empty := 0, 0
	for _, r := range m.rows {
		switch r.slot.Kind {
		case timeline.KindOccupied:
			occupied++
		case timeline.KindEmpty:
			empty++
		}
	}
	if occupied != 2 {
		t.Errorf("occupied rows = %d, want 2", occupied)
	}
	// Fridays remaining in March 2026 after the frozen clock: 13, 20, 27.
	if empty != 3 {
		t.Errorf("empty slot rows = %d, want 3", empty)
	}
}

func TestNormalKeys_Navigation(t *testing.T) {
	repo := newFakeRepo()
	repo.notes = []*note.Note{
		scheduledNote("n1", "first", base.Add(26*time.Hour)),
		scheduledNote("n2", "second", base.Add(50*time.Hour)),
	}
	m := newTestModel(t, repo)

	updated, _ := m.Update(key("j"))
	m = updated.(Model)
	if m.cursor != 1 {
		t.Errorf("cursor after j = %d, want 1", m.cursor)
	}

	updated, _ = m.Update(key("k"))
	m = updated.(Model)
	if m.cursor != 0 {
		t.Errorf("cursor after k = %d, want 0", m.cursor)
	}

	updated, _ = m.Update(key("k"))
	m = updated.(Model)
	if m.cursor != 0 {
		t.Errorf("cursor clamps at top, got %d", m.cursor)
	}
}

func TestMonthPaging(t *testing.T) {
	repo := newFakeRepo()
	m := newTestModel(t, repo)

	updated, cmd := m.Update(key("L"))
	m = updated.(Model)
	want := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)
	if !m.month.Equal(want) {
		t.Errorf("month after L = %v, want %v", m.month, want)
	}
	if cmd == nil {
		t.Error("expected a reload command")
	}

	updated, _ = m.Update(key("H"))
	m = updated.(Model)
	if !m.month.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("month after H = %v, want March", m.month)
	}
}

func TestMoveToEmptySlot(t *testing.T) {
	repo := newFakeRepo()
	repo.notes = []*note.Note{
		scheduledNote("n1", "movable", base.Add(26*time.Hour)),
	}
	slot, err := note.NewSlot(4, 30, note.MeridiemPM, []time.Weekday{time.Friday})
	if err != nil {
		t.Fatal(err)
	}
	repo.slots = []*note.RecurringSlot{slot}

	m := newTestModel(t, repo)
	cursorOn(t, &m, "n1")

	updated, _ := m.Update(key("m"))
	m = updated.(Model)
	if m.mode != ModeMove {
		t.Fatalf("mode = %v, want ModeMove", m.mode)
	}

	target := cursorOnEmpty(t, &m)
	m.hoverCursor()

	updated, _ = m.Update(key("enter"))
	m = updated.(Model)

	if m.mode != ModeNormal {
		t.Errorf("mode after drop = %v, want ModeNormal", m.mode)
	}
	at, ok := repo.rescheduled["n1"]
	if !ok {
		t.Fatal("expected RescheduleNote to be called")
	}
	if !at.Equal(target.At()) {
		t.Errorf("rescheduled to %v, want %v", at, target.At())
	}
	n, _ := m.state.Note("n1")
	if n.ScheduledTo == nil || !n.ScheduledTo.Equal(target.At()) {
		t.Error("view state not updated optimistically")
	}
}

func TestMoveOntoNote_AdoptsTargetTime(t *testing.T) {
	t1 := base.Add(26 * time.Hour)
	t2 := base.Add(50 * time.Hour)
	repo := newFakeRepo()
	repo.notes = []*note.Note{
		scheduledNote("n1", "dragged", t1),
		scheduledNote("n2", "target", t2),
	}

	m := newTestModel(t, repo)
	cursorOn(t, &m, "n1")
	updated, _ := m.Update(key("m"))
	m = updated.(Model)

	cursorOn(t, &m, "n2")
	m.hoverCursor()
	updated, _ = m.Update(key("enter"))
	m = updated.(Model)

	if at := repo.rescheduled["n1"]; !at.Equal(t2) {
		t.Errorf("dragged note moved to %v, want %v", at, t2)
	}
	if _, moved := repo.rescheduled["n2"]; moved {
		t.Error("target note must not move")
	}
	n2, _ := m.state.Note("n2")
	if n2.ScheduledTo == nil || !n2.ScheduledTo.Equal(t2) {
		t.Error("target note time changed in view state")
	}
}

func TestMoveCancel(t *testing.T) {
	at := base.Add(26 * time.Hour)
	repo := newFakeRepo()
	repo.notes = []*note.Note{scheduledNote("n1", "held", at)}

	m := newTestModel(t, repo)
	cursorOn(t, &m, "n1")
	updated, _ := m.Update(key("m"))
	m = updated.(Model)

	updated, _ = m.Update(key("esc"))
	m = updated.(Model)

	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want ModeNormal", m.mode)
	}
	if len(repo.rescheduled) != 0 {
		t.Error("cancel must not persist anything")
	}
	n, _ := m.state.Note("n1")
	if !n.ScheduledTo.Equal(at) {
		t.Error("note time changed on cancel")
	}
}

func TestMoveRevertsWhenPersistFails(t *testing.T) {
	at := base.Add(26 * time.Hour)
	repo := newFakeRepo()
	repo.notes = []*note.Note{scheduledNote("n1", "held", at)}
	slot, err := note.NewSlot(4, 30, note.MeridiemPM, []time.Weekday{time.Friday})
	if err != nil {
		t.Fatal(err)
	}
	repo.slots = []*note.RecurringSlot{slot}
	repo.rescheduleErr = errors.New("db locked")

	m := newTestModel(t, repo)
	cursorOn(t, &m, "n1")
	updated, _ := m.Update(key("m"))
	m = updated.(Model)

	cursorOnEmpty(t, &m)
	m.hoverCursor()
	updated, _ = m.Update(key("enter"))
	m = updated.(Model)

	n, _ := m.state.Note("n1")
	if !n.ScheduledTo.Equal(at) {
		t.Errorf("note time = %v, want reverted to %v", n.ScheduledTo, at)
	}
	if !m.statusErr {
		t.Error("expected an error status toast")
	}
}

func TestEdgeHoverPagesMonth(t *testing.T) {
	at := base.Add(26 * time.Hour)
	repo := newFakeRepo()
	repo.notes = []*note.Note{scheduledNote("n1", "held", at)}

	clock := base
	m := newTestModel(t, repo)
	m.now = func() time.Time { return clock }
	m.rec = queue.NewReconciler(m.state, m.now)

	cursorOn(t, &m, "n1")
	updated, _ := m.Update(key("m"))
	m = updated.(Model)

	updated, cmd := m.Update(key("L"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("edge hover must start the tick loop")
	}

	// Before the dwell elapses a tick must not page.
	clock = clock.Add(queue.EdgeDwell / 2)
	updated, _ = m.Update(commands.EdgeTickMsg{Time: clock})
	m = updated.(Model)
	if !m.month.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("month paged early: %v", m.month)
	}

	clock = clock.Add(queue.EdgeDwell)
	updated, _ = m.Update(commands.EdgeTickMsg{Time: clock})
	m = updated.(Model)
	want := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)
	if !m.month.Equal(want) {
		t.Errorf("month = %v, want %v", m.month, want)
	}
	if !m.rec.Dragging() {
		t.Error("gesture must survive the page")
	}
}

func TestDraggedNoteSurvivesMonthReload(t *testing.T) {
	at := base.Add(26 * time.Hour)
	repo := newFakeRepo()
	repo.notes = []*note.Note{scheduledNote("n1", "held", at)}

	m := newTestModel(t, repo)
	cursorOn(t, &m, "n1")
	updated, _ := m.Update(key("m"))
	m = updated.(Model)

	// April has no notes of its own; the held note must be carried over.
	april := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)
	updated, _ = m.Update(commands.MonthLoadedMsg{Month: april})
	m = updated.(Model)

	if _, ok := m.state.Note("n1"); !ok {
		t.Error("held note dropped from view state by month reload")
	}
}

func TestUnschedule(t *testing.T) {
	at := base.Add(26 * time.Hour)
	repo := newFakeRepo()
	repo.notes = []*note.Note{scheduledNote("n1", "scheduled", at)}

	m := newTestModel(t, repo)
	cursorOn(t, &m, "n1")
	updated, _ := m.Update(key("u"))
	m = updated.(Model)

	if len(repo.unscheduled) != 1 || repo.unscheduled[0] != "n1" {
		t.Fatalf("unscheduled = %v, want [n1]", repo.unscheduled)
	}
	n, _ := m.state.Note("n1")
	if n.ScheduledTo != nil {
		t.Error("view state still has a send time")
	}
	if n.Status != note.StatusDraft {
		t.Errorf("status = %q, want draft", n.Status)
	}
}

func TestSendNow(t *testing.T) {
	repo := newFakeRepo()
	repo.notes = []*note.Note{
		scheduledNote("n1", "due", base.Add(-2*time.Hour)),
	}

	m := newTestModel(t, repo)
	cursorOn(t, &m, "n1")
	_, cmd := m.Update(key("s"))
	if cmd == nil {
		t.Fatal("expected a publish command")
	}
	if msg, ok := cmd().(commands.NotePublishedMsg); !ok || msg.NoteID != "n1" {
		t.Fatalf("cmd produced %T, want NotePublishedMsg for n1", cmd())
	}
	if len(repo.published) != 1 || repo.published[0] != "n1" {
		t.Errorf("published = %v, want [n1]", repo.published)
	}
}

func TestArchive(t *testing.T) {
	repo := newFakeRepo()
	repo.notes = []*note.Note{
		scheduledNote("n1", "stale idea", base.Add(26*time.Hour)),
	}

	m := newTestModel(t, repo)
	cursorOn(t, &m, "n1")
	_, cmd := m.Update(key("a"))
	if cmd == nil {
		t.Fatal("expected an archive command")
	}
	if _, ok := cmd().(commands.NoteArchivedMsg); !ok {
		t.Fatal("expected NoteArchivedMsg")
	}
	if len(repo.archived) != 1 || repo.archived[0] != "n1" {
		t.Errorf("archived = %v, want [n1]", repo.archived)
	}
}

func TestPromptCreatesDraft(t *testing.T) {
	repo := newFakeRepo()
	m := newTestModel(t, repo)

	updated, _ := m.Update(key("o"))
	m = updated.(Model)
	if m.mode != ModePrompt {
		t.Fatalf("mode = %v, want ModePrompt", m.mode)
	}

	for _, r := range "ship it" {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	updated, cmd := m.Update(key("enter"))
	m = updated.(Model)
	if m.mode != ModeNormal {
		t.Errorf("mode after submit = %v, want ModeNormal", m.mode)
	}
	if cmd == nil {
		t.Fatal("expected a create command")
	}
	if _, ok := cmd().(commands.NoteCreatedMsg); !ok {
		t.Fatal("expected NoteCreatedMsg")
	}
	if len(repo.created) != 1 || repo.created[0].Body != "ship it" {
		t.Fatalf("created = %+v, want one draft with body 'ship it'", repo.created)
	}
}

func TestView_RendersMarkers(t *testing.T) {
	repo := newFakeRepo()
	repo.notes = []*note.Note{
		scheduledNote("n1", "overdue post", base.Add(-3*time.Hour)),
	}
	m := newTestModel(t, repo)

	out := m.View()
	if !strings.Contains(out, "[past due]") {
		t.Error("past-due marker missing from view")
	}
	if !strings.Contains(out, "March 2026") {
		t.Error("month title missing from view")
	}
}
