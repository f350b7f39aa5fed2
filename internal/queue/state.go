// Package queue implements the schedule reconciliation engine: the owned
// view state for fetched notes and slots, the drag-gesture state machine
// for rescheduling, and the optimistic committer that applies changes
// locally before persistence confirms them.
package queue

import (
	"sort"
	"time"

	"github.com/writestack/writestack/internal/note"
)

// State is the in-memory view of fetched notes and recurring slots. It is
// owned by a single event loop: reads hand out snapshots, writes go through
// Command pairs so every mutation can be reverted.
type State struct {
	notes map[string]*note.Note
	slots []*note.RecurringSlot
}

// NewState creates an empty view state.
func NewState() *State {
	return &State{notes: make(map[string]*note.Note)}
}

// SetNotes replaces the note collection after a fetch.
func (s *State) SetNotes(notes []*note.Note) {
	s.notes = make(map[string]*note.Note, len(notes))
	for _, n := range notes {
		if n != nil {
			s.notes[n.ID] = n
		}
	}
}

// SetSlots replaces the recurring slot collection after a fetch.
func (s *State) SetSlots(slots []*note.RecurringSlot) {
	s.slots = slots
}

// Note returns the note with the given ID, or false if it is not present
// (e.g. removed by a concurrent fetch refresh).
func (s *State) Note(id string) (*note.Note, bool) {
	n, ok := s.notes[id]
	return n, ok
}

// Notes returns a snapshot of all notes, ordered by send time (unscheduled
// notes last), ties broken by ID for a stable order.
func (s *State) Notes() []*note.Note {
	result := make([]*note.Note, 0, len(s.notes))
	for _, n := range s.notes {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch {
		case a.ScheduledTo == nil && b.ScheduledTo == nil:
			return a.ID < b.ID
		case a.ScheduledTo == nil:
			return false
		case b.ScheduledTo == nil:
			return true
		case a.ScheduledTo.Equal(*b.ScheduledTo):
			return a.ID < b.ID
		default:
			return a.ScheduledTo.Before(*b.ScheduledTo)
		}
	})
	return result
}

// Slots returns the current recurring slot collection.
func (s *State) Slots() []*note.RecurringSlot {
	return s.slots
}

// Len returns the number of notes in the state.
func (s *State) Len() int {
	return len(s.notes)
}

// Command is a reversible mutation of the view state. Apply performs the
// forward change; Revert restores the captured prior value.
type Command struct {
	apply  func()
	revert func()
}

// Apply performs the forward mutation.
func (c Command) Apply() { c.apply() }

// Revert restores the state captured when the command was built.
func (c Command) Revert() { c.revert() }

// RescheduleCommand builds the forward/revert pair that moves a note to a
// new send time. The revert closure captures the note's current send time
// and status. Returns note.ErrNoteNotFound if the note is not in the state.
func (s *State) RescheduleCommand(id string, at time.Time) (Command, error) {
	n, ok := s.notes[id]
	if !ok {
		return Command{}, note.ErrNoteNotFound
	}

	prevStatus := n.Status
	var prevTime *time.Time
	if n.ScheduledTo != nil {
		t := *n.ScheduledTo
		prevTime = &t
	}

	return Command{
		apply: func() {
			t := at
			n.ScheduledTo = &t
			n.Status = note.StatusScheduled
		},
		revert: func() {
			n.ScheduledTo = prevTime
			n.Status = prevStatus
		},
	}, nil
}

// UnscheduleCommand builds the forward/revert pair that clears a note's
// send time and returns it to draft.
func (s *State) UnscheduleCommand(id string) (Command, error) {
	n, ok := s.notes[id]
	if !ok {
		return Command{}, note.ErrNoteNotFound
	}

	prevStatus := n.Status
	var prevTime *time.Time
	if n.ScheduledTo != nil {
		t := *n.ScheduledTo
		prevTime = &t
	}

	return Command{
		apply: func() {
			n.ScheduledTo = nil
			n.Status = note.StatusDraft
		},
		revert: func() {
			n.ScheduledTo = prevTime
			n.Status = prevStatus
		},
	}, nil
}
