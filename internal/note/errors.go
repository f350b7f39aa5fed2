package note

import "errors"

// Validation errors.
var (
	ErrEmptyBody       = errors.New("note body cannot be empty")
	ErrInvalidHour     = errors.New("hour must be between 1 and 12")
	ErrInvalidMinute   = errors.New("minute must be between 0 and 59")
	ErrInvalidMeridiem = errors.New("meridiem must be 'am' or 'pm'")
	ErrNoActiveDays    = errors.New("slot must be active on at least one day")
)

// Domain errors.
var (
	ErrDuplicateSlot  = errors.New("a slot with this time already exists")
	ErrNoteNotFound   = errors.New("note not found")
	ErrSlotNotFound   = errors.New("recurring slot not found")
	ErrNotScheduled   = errors.New("note is not scheduled")
	ErrNotSchedulable = errors.New("note cannot be scheduled in its current status")
)
