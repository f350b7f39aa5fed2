// Package note defines the core domain types for writestack.
package note

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a note.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusScheduled     Status = "scheduled"
	StatusPublished     Status = "published"
	StatusInspiration   Status = "inspiration"
	StatusChatGenerated Status = "chat_generated"
	StatusArchived      Status = "archived"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPublished,
		StatusInspiration, StatusChatGenerated, StatusArchived:
		return true
	default:
		return false
	}
}

// Note represents a short-form post draft with an optional send time.
type Note struct {
	ID          string
	Body        string
	Status      Status
	ScheduledTo *time.Time // nil unless the note has an assigned send time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewDraft creates a new draft note with validation.
func NewDraft(body string) (*Note, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}

	now := time.Now()
	return &Note{
		ID:        uuid.NewString(),
		Body:      body,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsDraft returns true if the note is an unscheduled draft.
func (n *Note) IsDraft() bool {
	return n.Status == StatusDraft
}

// IsScheduled returns true if the note has scheduled status.
func (n *Note) IsScheduled() bool {
	return n.Status == StatusScheduled
}

// IsArchived returns true if the note has been soft-deleted.
func (n *Note) IsArchived() bool {
	return n.Status == StatusArchived
}

// IsPastDue returns true if the note is scheduled and its send time has
// already elapsed without the note being published.
func (n *Note) IsPastDue(now time.Time) bool {
	if !n.IsScheduled() || n.ScheduledTo == nil {
		return false
	}
	return now.After(*n.ScheduledTo)
}

// ScheduledOn returns true if the note's send time falls on the given day.
func (n *Note) ScheduledOn(day time.Time) bool {
	if n.ScheduledTo == nil {
		return false
	}
	y1, m1, d1 := n.ScheduledTo.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// MinuteOfDay returns the note's send time as minutes since midnight.
// Returns -1 if the note has no send time.
func (n *Note) MinuteOfDay() int {
	if n.ScheduledTo == nil {
		return -1
	}
	return n.ScheduledTo.Hour()*60 + n.ScheduledTo.Minute()
}

// Schedule assigns a send time and moves the note to scheduled status.
// Only drafts and generated notes can be scheduled.
func (n *Note) Schedule(at time.Time) error {
	switch n.Status {
	case StatusDraft, StatusInspiration, StatusChatGenerated, StatusScheduled:
	default:
		return ErrNotSchedulable
	}
	t := at
	n.ScheduledTo = &t
	n.Status = StatusScheduled
	n.UpdatedAt = time.Now()
	return nil
}

// Unschedule clears the send time and returns the note to draft status.
func (n *Note) Unschedule() error {
	if !n.IsScheduled() {
		return ErrNotScheduled
	}
	n.ScheduledTo = nil
	n.Status = StatusDraft
	n.UpdatedAt = time.Now()
	return nil
}

// Preview returns the first line of the body, truncated to max runes.
func (n *Note) Preview(max int) string {
	line := n.Body
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	runes := []rune(line)
	if len(runes) <= max {
		return line
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
