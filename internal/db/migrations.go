package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS lectures (
			partition   TEXT NOT NULL CHECK(partition IN ('majors', 'liberal-arts')),
			position    INTEGER NOT NULL,
			id          TEXT NOT NULL,
			title       TEXT NOT NULL,
			credits     TEXT NOT NULL DEFAULT '',
			major       TEXT NOT NULL DEFAULT '',
			schedule    TEXT NOT NULL DEFAULT '',
			grade       INTEGER NOT NULL DEFAULT 0,
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (partition, id)
		);

		CREATE INDEX IF NOT EXISTS idx_lectures_position ON lectures(partition, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating lectures table: %w", err)
	}

	return nil
}
