package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS notes (
			id           TEXT PRIMARY KEY,
			body         TEXT NOT NULL,
			status       TEXT NOT NULL DEFAULT 'draft'
			             CHECK(status IN ('draft', 'scheduled', 'published', 'inspiration', 'chat_generated', 'archived')),
			scheduled_to DATETIME,
			created_at   DATETIME NOT NULL,
			updated_at   DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS recurring_slots (
			id         TEXT PRIMARY KEY,
			hour       INTEGER NOT NULL CHECK(hour BETWEEN 1 AND 12),
			minute     INTEGER NOT NULL CHECK(minute BETWEEN 0 AND 59),
			meridiem   TEXT NOT NULL CHECK(meridiem IN ('am', 'pm')),
			days       TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_notes_scheduled ON notes(scheduled_to);
		CREATE INDEX IF NOT EXISTS idx_notes_status ON notes(status);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
