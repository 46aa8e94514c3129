package verse

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// sqliteStore reads a prebuilt verse module: a SQLite file with a verses
// table (chapter, verse, primary_text, secondary_text) and an optional
// meta table whose title becomes the citation label.
type sqliteStore struct {
	db    *sql.DB
	label string
}

func openSQLite(path string) (*sqliteStore, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open verse store: %w", err)
	}

	var n int
	row := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='verses'`)
	if err := row.Scan(&n); err != nil {
		db.Close()
		return nil, fmt.Errorf("open verse store %q: %w", path, err)
	}
	if n == 0 {
		db.Close()
		return nil, fmt.Errorf("open verse store: %q has no verses table", path)
	}

	s := &sqliteStore{db: db, label: DefaultLabel}
	var title sql.NullString
	if err := db.QueryRow(`SELECT title FROM meta LIMIT 1`).Scan(&title); err == nil && title.Valid && title.String != "" {
		s.label = title.String
	}
	return s, nil
}

func (s *sqliteStore) Chapter(ctx context.Context, chapter int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT chapter, verse, COALESCE(primary_text, ''), COALESCE(secondary_text, '')
		FROM verses
		WHERE chapter = ?
		ORDER BY verse`, chapter)
	if err != nil {
		return nil, fmt.Errorf("chapter %d: %w", chapter, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Chapter, &rec.Verse, &rec.Primary, &rec.Secondary); err != nil {
			return nil, fmt.Errorf("chapter %d: %w", chapter, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chapter %d: %w", chapter, err)
	}
	if len(records) == 0 {
		return nil, &ChapterNotFoundError{Chapter: chapter}
	}
	return records, nil
}

func (s *sqliteStore) Label() string { return s.label }

func (s *sqliteStore) Close() error { return s.db.Close() }
