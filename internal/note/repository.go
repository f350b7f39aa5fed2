package note

import (
	"context"
	"time"
)

// Repository defines the storage interface for notes and recurring slots.
type Repository interface {
	// CreateNote adds a new note to the repository.
	CreateNote(ctx context.Context, n *Note) error

	// GetNote retrieves a note by ID.
	// Returns ErrNoteNotFound if no note exists with that ID.
	GetNote(ctx context.Context, id string) (*Note, error)

	// ListNotesByDateRange returns scheduled notes whose send time falls
	// within [start, end), ordered by send time. Archived notes are excluded.
	ListNotesByDateRange(ctx context.Context, start, end time.Time) ([]*Note, error)

	// ListNotesByStatus returns all notes with the given status,
	// newest first.
	ListNotesByStatus(ctx context.Context, status Status) ([]*Note, error)

	// RescheduleNote sets a note's send time and moves it to scheduled
	// status. Returns ErrNoteNotFound if the note does not exist.
	RescheduleNote(ctx context.Context, id string, at time.Time) error

	// UnscheduleNote clears a note's send time and returns it to draft.
	UnscheduleNote(ctx context.Context, id string) error

	// MarkPublished records that a note was sent.
	MarkPublished(ctx context.Context, id string) error

	// ArchiveNote soft-deletes a note.
	ArchiveNote(ctx context.Context, id string) error

	// CreateSlot adds a recurring slot.
	// Returns ErrDuplicateSlot if a slot with the same clock time exists.
	CreateSlot(ctx context.Context, s *RecurringSlot) error

	// ListSlots returns all recurring slots ordered by time of day.
	ListSlots(ctx context.Context) ([]*RecurringSlot, error)

	// UpdateSlot replaces a slot's time and day flags.
	// Returns ErrSlotNotFound if the slot does not exist and
	// ErrDuplicateSlot if the new time collides with another slot.
	UpdateSlot(ctx context.Context, s *RecurringSlot) error

	// DeleteSlot removes a recurring slot.
	DeleteSlot(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}
