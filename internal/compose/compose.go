// Package compose builds the final paste text for a parsed reference.
package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/sraja/versedrop/internal/ref"
	"github.com/sraja/versedrop/internal/verse"
)

// Options selects which text fields a composition includes. At least one
// must be true; callers enforce that before composing.
type Options struct {
	IncludePrimary   bool
	IncludeSecondary bool
}

// Compose builds the paste text for reference r: the included, non-empty
// text fields of each verse joined by single line breaks, verse groups
// joined by blank lines, and the citation suffix appended last. The suffix
// is appended even when every group turned out empty, so a successful
// composition never returns the empty string.
//
// The chapter is fetched once for the whole range. A verse missing
// anywhere in the range fails the composition with
// *verse.VerseNotFoundError naming the first missing verse; partial output
// is never returned.
func Compose(ctx context.Context, store verse.Store, r ref.Reference, opts Options) (string, error) {
	records, err := store.Chapter(ctx, r.Chapter)
	if err != nil {
		return "", err
	}

	byVerse := make(map[int]verse.Record, len(records))
	for _, rec := range records {
		byVerse[rec.Verse] = rec
	}

	groups := make([]string, 0, r.Count())
	for v := r.StartVerse; v <= r.EndVerse; v++ {
		rec, ok := byVerse[v]
		if !ok {
			return "", &verse.VerseNotFoundError{Chapter: r.Chapter, Verse: v}
		}
		if group := verseGroup(rec, opts); group != "" {
			groups = append(groups, group)
		}
	}

	body := strings.TrimSpace(strings.Join(groups, "\n\n"))
	return body + suffix(store.Label(), r), nil
}

// verseGroup joins the included, non-empty text fields of one verse.
// Fields that are empty after trimming are left out entirely.
func verseGroup(rec verse.Record, opts Options) string {
	lines := make([]string, 0, 2)
	if opts.IncludePrimary {
		if text := strings.TrimSpace(rec.Primary); text != "" {
			lines = append(lines, text)
		}
	}
	if opts.IncludeSecondary {
		if text := strings.TrimSpace(rec.Secondary); text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n")
}

// suffix renders the trailing citation, " (<label>: c:v)" for a single
// verse and " (<label>: c:v1-v2)" for a range.
func suffix(label string, r ref.Reference) string {
	return fmt.Sprintf(" (%s: %s)", label, r.String())
}
