// Package timeline reconciles recurring posting slots with scheduled notes
// into an ordered per-day view.
package timeline

import (
	"sort"
	"time"

	"github.com/writestack/writestack/internal/dateutil"
	"github.com/writestack/writestack/internal/note"
)

// MatchTolerance is how far apart a note's send time and a recurring slot's
// time may be while still counting as the same slot.
const MatchTolerance = 5 * time.Minute

const toleranceMinutes = int(MatchTolerance / time.Minute)

// Kind distinguishes the two timeline slot variants.
type Kind int

const (
	// KindEmpty is a recurring slot with no note assigned yet.
	KindEmpty Kind = iota
	// KindOccupied is a slot backed by a real scheduled note.
	KindOccupied
)

// Slot is one entry in a day's merged timeline. Occupied slots carry the
// note; empty slots carry the recurring definition they came from.
type Slot struct {
	Day       time.Time // midnight of the slot's day
	Minute    int       // minutes since midnight
	Kind      Kind
	Note      *note.Note          // set when Kind == KindOccupied
	Recurring *note.RecurringSlot // set when Kind == KindEmpty
	PastDue   bool                // occupied slot whose send time already elapsed
}

// Clock returns the slot's time of day as a display string.
func (s Slot) Clock() string {
	return note.FormatMinute(s.Minute)
}

// At returns the slot's absolute timestamp.
func (s Slot) At() time.Time {
	return dateutil.At(s.Day, s.Minute)
}

// Merge combines recurring slot definitions with scheduled notes for the
// given days, producing an ordered, deduplicated timeline per day, keyed by
// dateutil.DayKey. Rules:
//
//   - Every note scheduled on a day is emitted as occupied.
//   - A recurring slot active on the day's weekday is emitted as empty
//     unless an occupied note sits within MatchTolerance of it.
//   - Empty slots whose time has already passed now are dropped; occupied
//     slots stay visible and are flagged past-due instead.
//   - Recurring slots with out-of-range clock fields are skipped.
//
// The result is sorted ascending by time of day, ties stable by input
// order. Merge does not mutate its inputs and is idempotent.
func Merge(days []time.Time, notes []*note.Note, slots []*note.RecurringSlot, now time.Time) map[string][]Slot {
	notesByDay := make(map[string][]*note.Note)
	for _, n := range notes {
		if n == nil || n.ScheduledTo == nil || n.IsArchived() {
			continue
		}
		key := dateutil.DayKey(*n.ScheduledTo)
		notesByDay[key] = append(notesByDay[key], n)
	}

	result := make(map[string][]Slot, len(days))
	for _, day := range days {
		day = dateutil.TruncateToDay(day)
		key := dateutil.DayKey(day)
		result[key] = mergeDay(day, notesByDay[key], slots, now)
	}
	return result
}

// mergeDay builds the ordered slot list for a single day.
func mergeDay(day time.Time, notes []*note.Note, slots []*note.RecurringSlot, now time.Time) []Slot {
	var merged []Slot

	occupied := make([]int, 0, len(notes))
	for _, n := range notes {
		minute := n.MinuteOfDay()
		occupied = append(occupied, minute)
		merged = append(merged, Slot{
			Day:     day,
			Minute:  minute,
			Kind:    KindOccupied,
			Note:    n,
			PastDue: n.IsPastDue(now),
		})
	}

	weekday := day.Weekday()
	for _, s := range slots {
		if s == nil || s.Validate() != nil {
			// Out-of-range clock fields are untrusted input, not an error.
			continue
		}
		if !s.ActiveOn(weekday) {
			continue
		}
		minute := s.MinuteOfDay()
		if taken(occupied, minute) {
			continue
		}
		// An empty slot in the past is no longer a posting opportunity.
		if !dateutil.At(day, minute).After(now) {
			continue
		}
		merged = append(merged, Slot{
			Day:       day,
			Minute:    minute,
			Kind:      KindEmpty,
			Recurring: s,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Minute < merged[j].Minute
	})
	return merged
}

// taken returns true if any occupied minute is within tolerance of m.
func taken(occupied []int, m int) bool {
	for _, o := range occupied {
		if note.MinuteDistance(o, m) <= toleranceMinutes {
			return true
		}
	}
	return false
}
