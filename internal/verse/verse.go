// Package verse loads per-chapter verse records from a local store. Two
// backends exist: a directory of JSON chapter files (optionally
// xz-compressed) and a prebuilt SQLite module.
package verse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLabel is the citation label used when the store carries no
// metadata of its own.
const DefaultLabel = "அல்குர்ஆன்"

// Sentinel errors for errors.Is checks.
var (
	ErrChapterNotFound = errors.New("chapter not found")
	ErrVerseNotFound   = errors.New("verse not found")
)

// ChapterNotFoundError reports a chapter the store has no data for.
type ChapterNotFoundError struct {
	Chapter int
}

func (e *ChapterNotFoundError) Error() string {
	return fmt.Sprintf("no data for chapter %d", e.Chapter)
}

func (e *ChapterNotFoundError) Unwrap() error { return ErrChapterNotFound }

// VerseNotFoundError identifies a single missing verse within a chapter
// that exists. The composer reports the first one it encounters.
type VerseNotFoundError struct {
	Chapter int
	Verse   int
}

func (e *VerseNotFoundError) Error() string {
	return fmt.Sprintf("verse %d:%d not found", e.Chapter, e.Verse)
}

func (e *VerseNotFoundError) Unwrap() error { return ErrVerseNotFound }

// Record is one verse of one chapter. Immutable once loaded.
type Record struct {
	Chapter   int
	Verse     int
	Primary   string // source-language script
	Secondary string // target-language translation
}

// Store hands out the ordered verse records of a chapter.
type Store interface {
	// Chapter returns the records of one chapter in ascending verse order,
	// or *ChapterNotFoundError when the store has no data for it. A present
	// chapter may legitimately hold zero records.
	Chapter(ctx context.Context, chapter int) ([]Record, error)

	// Label is the citation label composed output is attributed to.
	Label() string

	Close() error
}

// Open selects a store backend from the shape of path: a directory is a
// per-chapter JSON store, a .db/.sqlite/.sqlite3 file is a SQLite module.
func Open(path string) (Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open verse store: %w", err)
	}
	if info.IsDir() {
		return openDir(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return openSQLite(path)
	}
	return nil, fmt.Errorf("open verse store: unsupported store %q", path)
}
