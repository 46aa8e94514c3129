package verse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/ulikunitz/xz"
)

// chapterRecord is the on-disk JSON shape of one verse.
type chapterRecord struct {
	Chapter   int    `json:"chapter"`
	Verse     int    `json:"verse"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// dirMeta is the optional dataset descriptor next to the chapter files.
type dirMeta struct {
	Title    string `json:"title"`
	Language string `json:"language"`
}

// dirStore reads one JSON file per chapter, "<n>.json" or the
// xz-compressed "<n>.json.xz", from a flat directory. Chapters are cached
// after the first load; records never change once loaded.
type dirStore struct {
	dir   string
	label string

	mu    sync.Mutex
	cache map[int][]Record
}

func openDir(dir string) (*dirStore, error) {
	s := &dirStore{dir: dir, label: DefaultLabel, cache: make(map[int][]Record)}
	if raw, err := os.ReadFile(filepath.Join(dir, "meta.json")); err == nil {
		var meta dirMeta
		if err := json.Unmarshal(raw, &meta); err == nil && meta.Title != "" {
			s.label = meta.Title
		}
	}
	return s, nil
}

func (s *dirStore) Chapter(ctx context.Context, chapter int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	cached, ok := s.cache[chapter]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	raw, err := s.readChapterFile(chapter)
	if err != nil {
		return nil, err
	}

	var rows []chapterRecord
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("chapter %d: %w", chapter, err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := Record{Chapter: row.Chapter, Verse: row.Verse, Primary: row.Primary, Secondary: row.Secondary}
		if rec.Chapter == 0 {
			rec.Chapter = chapter
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Verse < records[j].Verse })

	s.mu.Lock()
	s.cache[chapter] = records
	s.mu.Unlock()
	return records, nil
}

// readChapterFile loads "<n>.json", falling back to the xz variant. A
// chapter with neither file is absent.
func (s *dirStore) readChapterFile(chapter int) ([]byte, error) {
	base := filepath.Join(s.dir, strconv.Itoa(chapter))

	raw, err := os.ReadFile(base + ".json")
	if err == nil {
		return raw, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("chapter %d: %w", chapter, err)
	}

	f, err := os.Open(base + ".json.xz")
	if os.IsNotExist(err) {
		return nil, &ChapterNotFoundError{Chapter: chapter}
	}
	if err != nil {
		return nil, fmt.Errorf("chapter %d: %w", chapter, err)
	}
	defer f.Close()

	xzr, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("chapter %d: xz reader: %w", chapter, err)
	}
	raw, err = io.ReadAll(xzr)
	if err != nil {
		return nil, fmt.Errorf("chapter %d: %w", chapter, err)
	}
	return raw, nil
}

func (s *dirStore) Label() string { return s.label }

func (s *dirStore) Close() error { return nil }
