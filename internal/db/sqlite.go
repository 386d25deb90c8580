// Package db provides the SQLite lecture catalog.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/lecture"
)

// ErrNotImported is returned when a partition has never been imported.
var ErrNotImported = errors.New("partition not imported")

// SQLite stores imported catalog partitions and serves them as a
// catalog.Source.
type SQLite struct {
	db *sql.DB
}

// New opens (creating if needed) the database at path and runs migrations.
func New(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

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

// ImportLectures replaces the contents of a partition with lectures, keeping
// their order. A lecture id repeated within the batch keeps its last values
// at its first position. Returns the number of stored lectures.
func (s *SQLite) ImportLectures(ctx context.Context, p catalog.Partition, lectures []lecture.Lecture) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lectures WHERE partition = ?`, string(p)); err != nil {
		return 0, fmt.Errorf("clearing partition %s: %w", p, err)
	}

	query := `
		INSERT INTO lectures (partition, position, id, title, credits, major, schedule, grade)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(partition, id) DO UPDATE SET
			title = excluded.title,
			credits = excluded.credits,
			major = excluded.major,
			schedule = excluded.schedule,
			grade = excluded.grade
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, l := range lectures {
		if l.ID == "" {
			return 0, fmt.Errorf("lecture at position %d has no id", i)
		}
		if _, err := stmt.ExecContext(ctx,
			string(p),
			i,
			l.ID,
			l.Title,
			l.Credits,
			l.Major,
			l.Schedule,
			l.Grade,
		); err != nil {
			return 0, fmt.Errorf("inserting lecture %q: %w", l.ID, err)
		}
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM lectures WHERE partition = ?`, string(p)).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting lectures: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return count, nil
}

// Fetch implements catalog.Source. Lectures come back in import order.
func (s *SQLite) Fetch(ctx context.Context, p catalog.Partition) ([]lecture.Lecture, error) {
	query := `
		SELECT id, title, credits, major, schedule, grade
		FROM lectures
		WHERE partition = ?
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, string(p))
	if err != nil {
		return nil, fmt.Errorf("%w: querying lectures: %w", catalog.ErrFetchFailed, err)
	}
	defer func() { _ = rows.Close() }()

	var lectures []lecture.Lecture
	for rows.Next() {
		var l lecture.Lecture
		if err := rows.Scan(&l.ID, &l.Title, &l.Credits, &l.Major, &l.Schedule, &l.Grade); err != nil {
			return nil, fmt.Errorf("%w: scanning lecture: %w", catalog.ErrFetchFailed, err)
		}
		lectures = append(lectures, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating lectures: %w", catalog.ErrFetchFailed, err)
	}

	if len(lectures) == 0 {
		return nil, fmt.Errorf("%w: %s: %w", catalog.ErrFetchFailed, p, ErrNotImported)
	}

	return lectures, nil
}

// Counts returns the number of stored lectures per partition. Partitions
// that were never imported report zero.
func (s *SQLite) Counts(ctx context.Context) (map[catalog.Partition]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT partition, COUNT(*) FROM lectures GROUP BY partition`)
	if err != nil {
		return nil, fmt.Errorf("querying counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[catalog.Partition]int, len(catalog.Partitions))
	for _, p := range catalog.Partitions {
		counts[p] = 0
	}
	for rows.Next() {
		var (
			p string
			n int
		)
		if err := rows.Scan(&p, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[catalog.Partition(p)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}

	return counts, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}
