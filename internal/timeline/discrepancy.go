package timeline

import (
	"github.com/writestack/writestack/internal/note"
)

// Discrepancies returns the IDs of scheduled notes whose send time no
// longer matches any recurring slot active on that weekday, within
// MatchTolerance. The check is a pure comparison; it never mutates notes.
func Discrepancies(notes []*note.Note, slots []*note.RecurringSlot) map[string]bool {
	flagged := make(map[string]bool)
	for _, n := range notes {
		if n == nil || !n.IsScheduled() || n.ScheduledTo == nil {
			continue
		}
		if !matchesAnySlot(n, slots) {
			flagged[n.ID] = true
		}
	}
	return flagged
}

// matchesAnySlot returns true if some valid recurring slot is active on the
// note's weekday and within tolerance of its send time.
func matchesAnySlot(n *note.Note, slots []*note.RecurringSlot) bool {
	weekday := n.ScheduledTo.Weekday()
	minute := n.MinuteOfDay()
	for _, s := range slots {
		if s == nil || s.Validate() != nil {
			continue
		}
		if !s.ActiveOn(weekday) {
			continue
		}
		if note.MinuteDistance(s.MinuteOfDay(), minute) <= toleranceMinutes {
			return true
		}
	}
	return false
}
