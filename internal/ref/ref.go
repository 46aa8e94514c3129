// Package ref parses free-form scripture references like "2:255" or
// "5:6-10" into validated chapter/verse ranges.
package ref

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Sentinel errors for errors.Is checks. The concrete values returned by
// Parse are *FormatError and *RangeError, which unwrap to these.
var (
	ErrFormat = errors.New("malformed reference")
	ErrRange  = errors.New("invalid verse range")
)

// FormatError reports input that does not match the reference grammar.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot read %q: enter chapter:verse like 2:255 or 5.6-10", e.Input)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// RangeError reports a reference that parses but violates range invariants.
type RangeError struct {
	Input  string
	Reason string
}

func (e *RangeError) Error() string { return fmt.Sprintf("%s: %q", e.Reason, e.Input) }

func (e *RangeError) Unwrap() error { return ErrRange }

// Reference is a validated chapter-and-verse locator. A single verse is the
// degenerate range with StartVerse == EndVerse; no component downstream
// special-cases singles except for the citation form.
type Reference struct {
	Chapter    int
	StartVerse int
	EndVerse   int
}

// refGrammar is the participle grammar for a normalized reference. The
// number after the dash is ambiguous ("5:6-10" vs "5:6-5:10"); it lands in
// EndChapter and Parse reinterprets it as the end verse when no EndVerse
// follows.
//
//nolint:govet // grammar capture tags are not conventional struct tags
type refGrammar struct {
	Chapter    int  `parser:"@Int"`
	StartVerse int  `parser:"':' @Int"`
	EndChapter *int `parser:"( '-' @Int"`
	EndVerse   *int `parser:"  ( ':' @Int )? )?"`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// Parse converts a free-form reference string into a Reference.
// Accepted forms, after discarding whitespace and treating '.' like ':':
//
//	2:255      single verse
//	5:6-10     verse range within one chapter
//	5:6-5:10   verse range with an explicit right-hand chapter
//
// Malformed input fails with *FormatError. Input that parses but inverts
// the range or crosses chapters fails with *RangeError.
func Parse(raw string) (Reference, error) {
	normalized := normalize(raw)
	if normalized == "" {
		return Reference{}, &FormatError{Input: raw}
	}

	g, err := refParser.ParseString("", normalized)
	if err != nil {
		return Reference{}, &FormatError{Input: raw}
	}

	endChapter := g.Chapter
	endVerse := g.StartVerse
	switch {
	case g.EndChapter == nil:
		// single verse
	case g.EndVerse == nil:
		// "c:v-w": the number after the dash is a verse, not a chapter
		endVerse = *g.EndChapter
	default:
		endChapter = *g.EndChapter
		endVerse = *g.EndVerse
	}

	if g.Chapter < 1 || g.StartVerse < 1 || endVerse < 1 {
		return Reference{}, &FormatError{Input: raw}
	}
	if endChapter != g.Chapter {
		return Reference{}, &RangeError{Input: raw, Reason: "cross-chapter ranges are not supported"}
	}
	if endVerse < g.StartVerse {
		return Reference{}, &RangeError{Input: raw, Reason: "range end must be greater than or equal to its start"}
	}

	return Reference{Chapter: g.Chapter, StartVerse: g.StartVerse, EndVerse: endVerse}, nil
}

// normalize discards whitespace and rewrites the alternate '.' separator to
// ':' so "5 . 6" and "5:6" tokenize identically.
func normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsSpace(r):
		case r == '.':
			b.WriteByte(':')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// String renders the canonical "c:v" or "c:v1-v2" form.
func (r Reference) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(r.Chapter))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(r.StartVerse))
	if r.IsRange() {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(r.EndVerse))
	}
	return b.String()
}

// IsRange reports whether the reference spans more than one verse.
func (r Reference) IsRange() bool {
	return r.EndVerse > r.StartVerse
}

// Count returns the number of verses the reference covers.
func (r Reference) Count() int {
	return r.EndVerse - r.StartVerse + 1
}
