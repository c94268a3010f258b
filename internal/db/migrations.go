package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS conversions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			clock_time  TEXT NOT NULL,
			display     TEXT NOT NULL,
			source      TEXT NOT NULL CHECK(source IN ('convert', 'now')),
			created_day TEXT NOT NULL,
			created_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_conversions_day ON conversions(created_day);
		CREATE INDEX IF NOT EXISTS idx_conversions_created ON conversions(created_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating conversions table: %w", err)
	}

	return nil
}
