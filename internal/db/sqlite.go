// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/writestack/writestack/internal/note"
)

// SQLite implements note.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateNote adds a new note to the repository.
func (s *SQLite) CreateNote(ctx context.Context, n *note.Note) error {
	query := `
		INSERT INTO notes (id, body, status, scheduled_to, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	// Timestamps are stored in UTC so the range queries can compare
	// them lexicographically.
	var scheduledTo any
	if n.ScheduledTo != nil {
		scheduledTo = n.ScheduledTo.UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, query,
		n.ID,
		n.Body,
		n.Status,
		scheduledTo,
		n.CreatedAt.UTC().Format(time.RFC3339),
		n.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}

	return nil
}

// GetNote retrieves a note by ID.
func (s *SQLite) GetNote(ctx context.Context, id string) (*note.Note, error) {
	query := `
		SELECT id, body, status, scheduled_to, created_at, updated_at
		FROM notes
		WHERE id = ?
	`

	n, err := scanNote(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, note.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying note: %w", err)
	}

	return n, nil
}

// ListNotesByDateRange returns scheduled notes whose send time falls
// within [start, end), ordered by send time. Archived notes are excluded.
func (s *SQLite) ListNotesByDateRange(ctx context.Context, start, end time.Time) ([]*note.Note, error) {
	query := `
		SELECT id, body, status, scheduled_to, created_at, updated_at
		FROM notes
		WHERE scheduled_to IS NOT NULL
		  AND scheduled_to >= ?
		  AND scheduled_to < ?
		  AND status != ?
		ORDER BY scheduled_to, id
	`

	rows, err := s.db.QueryContext(ctx, query,
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
		note.StatusArchived,
	)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectNotes(rows)
}

// ListNotesByStatus returns all notes with the given status, newest first.
func (s *SQLite) ListNotesByStatus(ctx context.Context, status note.Status) ([]*note.Note, error) {
	query := `
		SELECT id, body, status, scheduled_to, created_at, updated_at
		FROM notes
		WHERE status = ?
		ORDER BY created_at DESC, id
	`

	rows, err := s.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectNotes(rows)
}

// RescheduleNote sets a note's send time and moves it to scheduled status.
func (s *SQLite) RescheduleNote(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE notes SET scheduled_to = ?, status = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		at.UTC().Format(time.RFC3339),
		note.StatusScheduled,
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("rescheduling note: %w", err)
	}

	return requireRow(result)
}

// UnscheduleNote clears a note's send time and returns it to draft.
func (s *SQLite) UnscheduleNote(ctx context.Context, id string) error {
	query := `UPDATE notes SET scheduled_to = NULL, status = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		note.StatusDraft,
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("unscheduling note: %w", err)
	}

	return requireRow(result)
}

// MarkPublished records that a note was sent.
func (s *SQLite) MarkPublished(ctx context.Context, id string) error {
	query := `UPDATE notes SET status = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		note.StatusPublished,
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("marking note published: %w", err)
	}

	return requireRow(result)
}

// ArchiveNote soft-deletes a note.
func (s *SQLite) ArchiveNote(ctx context.Context, id string) error {
	query := `UPDATE notes SET status = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		note.StatusArchived,
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("archiving note: %w", err)
	}

	return requireRow(result)
}

// CreateSlot adds a recurring slot.
// Returns note.ErrDuplicateSlot if a slot with the same clock time exists.
func (s *SQLite) CreateSlot(ctx context.Context, slot *note.RecurringSlot) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	if err := s.checkDuplicateSlot(ctx, slot, ""); err != nil {
		return err
	}

	query := `
		INSERT INTO recurring_slots (id, hour, minute, meridiem, days, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		slot.ID,
		slot.Hour,
		slot.Minute,
		slot.Meridiem,
		encodeDays(slot.Days),
		slot.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting slot: %w", err)
	}

	return nil
}

// ListSlots returns all recurring slots ordered by time of day.
func (s *SQLite) ListSlots(ctx context.Context) ([]*note.RecurringSlot, error) {
	query := `
		SELECT id, hour, minute, meridiem, days, created_at
		FROM recurring_slots
		ORDER BY ((hour % 12) + CASE meridiem WHEN 'pm' THEN 12 ELSE 0 END) * 60 + minute, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var slots []*note.RecurringSlot
	for rows.Next() {
		var (
			slot      note.RecurringSlot
			days      string
			createdAt string
		)
		if err := rows.Scan(&slot.ID, &slot.Hour, &slot.Minute, &slot.Meridiem, &days, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		slot.Days = decodeDays(days)
		slot.CreatedAt, err = parseTimestamp(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}

	return slots, nil
}

// UpdateSlot replaces a slot's time and day flags.
func (s *SQLite) UpdateSlot(ctx context.Context, slot *note.RecurringSlot) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	if err := s.checkDuplicateSlot(ctx, slot, slot.ID); err != nil {
		return err
	}

	query := `UPDATE recurring_slots SET hour = ?, minute = ?, meridiem = ?, days = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		slot.Hour,
		slot.Minute,
		slot.Meridiem,
		encodeDays(slot.Days),
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("updating slot: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return note.ErrSlotNotFound
	}

	return nil
}

// DeleteSlot removes a recurring slot.
func (s *SQLite) DeleteSlot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM recurring_slots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting slot: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return note.ErrSlotNotFound
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// checkDuplicateSlot rejects a slot whose clock time collides with an
// existing one, excluding excludeID for updates.
func (s *SQLite) checkDuplicateSlot(ctx context.Context, slot *note.RecurringSlot, excludeID string) error {
	query := `
		SELECT id FROM recurring_slots
		WHERE hour = ? AND minute = ? AND meridiem = ? AND id != ?
		LIMIT 1
	`

	var id string
	err := s.db.QueryRowContext(ctx, query, slot.Hour, slot.Minute, slot.Meridiem, excludeID).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking duplicate slot: %w", err)
	}

	return fmt.Errorf("%w: %s", note.ErrDuplicateSlot, slot.Clock())
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanNote.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanNote reads one note row.
func scanNote(row rowScanner) (*note.Note, error) {
	var (
		n           note.Note
		scheduledTo sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := row.Scan(&n.ID, &n.Body, &n.Status, &scheduledTo, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if scheduledTo.Valid {
		t, err := parseTimestamp(scheduledTo.String)
		if err != nil {
			return nil, fmt.Errorf("parsing scheduled to: %w", err)
		}
		local := t.Local()
		n.ScheduledTo = &local
	}

	n.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	n.UpdatedAt, err = parseTimestamp(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}

	return &n, nil
}

// collectNotes drains a note result set.
func collectNotes(rows *sql.Rows) ([]*note.Note, error) {
	var notes []*note.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}

	return notes, nil
}

// parseTimestamp parses a timestamp in the formats SQLite might return.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}

// encodeDays serializes weekday flags as a comma-separated list of
// weekday numbers, e.g. "1,3,5" for Monday, Wednesday, Friday.
func encodeDays(days [7]bool) string {
	var parts []string
	for i, active := range days {
		if active {
			parts = append(parts, strconv.Itoa(i))
		}
	}
	return strings.Join(parts, ",")
}

// decodeDays parses the serialized weekday list; unknown values are
// ignored.
func decodeDays(s string) [7]bool {
	var days [7]bool
	for _, part := range strings.Split(s, ",") {
		if i, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && i >= 0 && i < 7 {
			days[i] = true
		}
	}
	return days
}

// requireRow converts a zero-row update into ErrNoteNotFound.
func requireRow(result sql.Result) error {
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return note.ErrNoteNotFound
	}
	return nil
}
