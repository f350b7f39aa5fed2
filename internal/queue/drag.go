package queue

import (
	"errors"
	"time"

	"github.com/writestack/writestack/internal/dateutil"
	"github.com/writestack/writestack/internal/note"
)

// Reconciler errors.
var (
	ErrAlreadyDragging = errors.New("already dragging a note")
	ErrNotDragging     = errors.New("no drag in progress")
)

// EdgeDwell is how long the pointer must dwell on a month-edge zone before
// the visible month pages by one. The window restarts after each page.
const EdgeDwell = 600 * time.Millisecond

// Phase is the reconciler's position in a drag gesture.
type Phase int

const (
	// PhaseIdle means no gesture is in progress.
	PhaseIdle Phase = iota
	// PhaseDragging means a note is held and hover targets are tracked.
	PhaseDragging
	// PhaseCommitting means a drop resolved to a reschedule intent that
	// has been handed to the committer.
	PhaseCommitting
	// PhaseMonthNavigated means the last edge poll paged the visible
	// month; the next hover update returns to PhaseDragging.
	PhaseMonthNavigated
)

// TargetKind identifies what the pointer is currently over.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetEmptySlot
	TargetNote
	TargetEdge
)

// Edge identifies a month-navigation zone at the calendar margin.
type Edge int

const (
	EdgeLeft  Edge = -1
	EdgeRight Edge = 1
)

// Target is the current drop target. Hover updates are last-write-wins;
// only the most recent target matters at drop time.
type Target struct {
	Kind   TargetKind
	Day    time.Time // empty-slot target
	Minute int       // empty-slot target, minutes since midnight
	NoteID string    // note target
	Edge   Edge      // edge target
}

// Reschedule is the single intent a completed gesture resolves to.
type Reschedule struct {
	NoteID string
	At     time.Time
}

// Transaction is a snapshot of the in-flight gesture for rendering the
// ghost card and drop highlights.
type Transaction struct {
	NoteID   string
	Original *time.Time // send time at gesture start, for display rollback
	Target   Target
}

// Reconciler interprets a single drag gesture over the view state. It is
// synchronous and never suspends mid-gesture; time enters only through the
// injected clock, which drives the edge-dwell windows.
type Reconciler struct {
	state *State
	now   func() time.Time

	phase     Phase
	noteID    string
	original  *time.Time
	target    Target
	edgeStart time.Time // start of the current dwell window
}

// NewReconciler creates a reconciler over the given state. now may be nil,
// in which case time.Now is used.
func NewReconciler(state *State, now func() time.Time) *Reconciler {
	if now == nil {
		now = time.Now
	}
	return &Reconciler{state: state, now: now}
}

// Phase returns the current gesture phase.
func (r *Reconciler) Phase() Phase {
	return r.phase
}

// Dragging returns true while a gesture is in progress.
func (r *Reconciler) Dragging() bool {
	return r.phase == PhaseDragging || r.phase == PhaseMonthNavigated
}

// Transaction returns a snapshot of the in-flight gesture, or nil when
// idle.
func (r *Reconciler) Transaction() *Transaction {
	if !r.Dragging() {
		return nil
	}
	return &Transaction{NoteID: r.noteID, Original: r.original, Target: r.target}
}

// Start begins a gesture on the given note. Returns ErrAlreadyDragging if
// a gesture is in progress and note.ErrNoteNotFound if the note is not in
// the view state.
func (r *Reconciler) Start(noteID string) error {
	if r.Dragging() {
		return ErrAlreadyDragging
	}
	n, ok := r.state.Note(noteID)
	if !ok {
		return note.ErrNoteNotFound
	}

	r.phase = PhaseDragging
	r.noteID = noteID
	r.target = Target{}
	if n.ScheduledTo != nil {
		t := *n.ScheduledTo
		r.original = &t
	} else {
		r.original = nil
	}
	return nil
}

// HoverSlot retargets the gesture onto an empty slot. Re-entrant: each
// call replaces the previous target with no side effects.
func (r *Reconciler) HoverSlot(day time.Time, minute int) error {
	if !r.Dragging() {
		return ErrNotDragging
	}
	r.phase = PhaseDragging
	r.target = Target{Kind: TargetEmptySlot, Day: dateutil.TruncateToDay(day), Minute: minute}
	return nil
}

// HoverNote retargets the gesture onto another note.
func (r *Reconciler) HoverNote(noteID string) error {
	if !r.Dragging() {
		return ErrNotDragging
	}
	r.phase = PhaseDragging
	r.target = Target{Kind: TargetNote, NoteID: noteID}
	return nil
}

// HoverEdge retargets the gesture onto a month-edge zone and starts the
// dwell window. Re-hovering the same edge keeps the running window;
// switching edges restarts it.
func (r *Reconciler) HoverEdge(edge Edge) error {
	if !r.Dragging() {
		return ErrNotDragging
	}
	if r.target.Kind == TargetEdge && r.target.Edge == edge {
		r.phase = PhaseDragging
		return nil
	}
	r.phase = PhaseDragging
	r.target = Target{Kind: TargetEdge, Edge: edge}
	r.edgeStart = r.now()
	return nil
}

// PollEdge reports how many month pages the current dwell has earned since
// the last poll (negative for the left edge) and the progress fraction
// [0,1) of the window now running. Each earned page restarts the window,
// so sustained hovering keeps paging every EdgeDwell. When at least one
// page is earned the phase becomes PhaseMonthNavigated.
func (r *Reconciler) PollEdge() (pages int, progress float64) {
	if !r.Dragging() || r.target.Kind != TargetEdge {
		return 0, 0
	}

	elapsed := r.now().Sub(r.edgeStart)
	pages = int(elapsed / EdgeDwell)
	if pages > 0 {
		r.edgeStart = r.edgeStart.Add(time.Duration(pages) * EdgeDwell)
		r.phase = PhaseMonthNavigated
	}
	progress = float64(elapsed%EdgeDwell) / float64(EdgeDwell)
	if pages != 0 && r.target.Edge == EdgeLeft {
		pages = -pages
	}
	return pages, progress
}

// Drop completes the gesture. It returns the single reschedule intent the
// gesture resolves to, or nil when the gesture ends without one: dropping
// on no target or an edge zone cancels, and a target that vanished from
// the view state (stale fetch) aborts silently. Either way the reconciler
// returns to Idle, so at most one intent can come out of a gesture.
func (r *Reconciler) Drop() (*Reschedule, error) {
	if !r.Dragging() {
		return nil, ErrNotDragging
	}

	intent := r.resolve()
	if intent != nil {
		r.phase = PhaseCommitting
	}
	r.reset()
	return intent, nil
}

// resolve translates the final hover target into a reschedule intent.
func (r *Reconciler) resolve() *Reschedule {
	if _, ok := r.state.Note(r.noteID); !ok {
		// Dragged note vanished mid-gesture; nothing to commit.
		return nil
	}

	switch r.target.Kind {
	case TargetEmptySlot:
		return &Reschedule{NoteID: r.noteID, At: dateutil.At(r.target.Day, r.target.Minute)}
	case TargetNote:
		target, ok := r.state.Note(r.target.NoteID)
		if !ok || target.ScheduledTo == nil {
			return nil
		}
		// The dragged note adopts the target's time. The target stays
		// where it is: no swap.
		return &Reschedule{NoteID: r.noteID, At: *target.ScheduledTo}
	default:
		return nil
	}
}

// Cancel aborts the gesture with no commit; the note's displayed time
// stays at its pre-gesture value since no command was applied.
func (r *Reconciler) Cancel() {
	r.reset()
}

// reset returns the reconciler to Idle and clears all gesture state,
// including the dwell window.
func (r *Reconciler) reset() {
	r.phase = PhaseIdle
	r.noteID = ""
	r.original = nil
	r.target = Target{}
	r.edgeStart = time.Time{}
}
