package tuitest

import (
	"regexp"
	"strings"
)

// Frame is one full render of the child's screen. Raw keeps the escape
// sequences, Text is the render stripped down to what a reader would see.
type Frame struct {
	Index int
	Raw   string
	Text  string
}

var (
	eraseSeq = regexp.MustCompile(`\x1b\[[0-9;]*J`)
	csiSeq   = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
	oscSeq   = regexp.MustCompile(`\x1b\][^\x07]*(\x07|\x1b\\)`)
)

// splitFrames cuts the byte stream at erase-display sequences, which is
// where a full repaint starts. A stream with no repaints becomes a single
// frame.
func splitFrames(raw []byte) []Frame {
	stream := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, part := range eraseSeq.Split(stream, -1) {
		part = strings.Trim(part, "\x00")
		part = strings.TrimPrefix(part, "\x1b[H")
		if part == "" {
			continue
		}
		text := tidyLines(stripANSI(part))
		if text == "" {
			continue
		}
		frames = append(frames, Frame{Index: len(frames), Raw: part, Text: text})
	}
	if len(frames) == 0 && stream != "" {
		frames = append(frames, Frame{Raw: stream, Text: tidyLines(stripANSI(stream))})
	}
	return frames
}

// Final returns the last frame of the run. The second return value is false
// when nothing was captured.
func (t *Transcript) Final() (Frame, bool) {
	if t == nil || len(t.Frames) == 0 {
		return Frame{}, false
	}
	return t.Frames[len(t.Frames)-1], true
}

// Plain returns the whole captured stream with escape sequences stripped.
// Substring assertions against it do not depend on how repaints were split.
func (t *Transcript) Plain() string {
	if t == nil {
		return ""
	}
	return stripANSI(strings.ReplaceAll(string(t.Raw), "\r", ""))
}

func stripANSI(s string) string {
	s = oscSeq.ReplaceAllString(s, "")
	s = csiSeq.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		switch r {
		case '\x00', '\x0e', '\x0f':
			return -1
		}
		return r
	}, s)
}

// tidyLines trims trailing spaces per line and drops blank lines at both
// ends, so padding and cursor parking do not leak into assertions.
func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}
	end := len(lines)
	for end > start && lines[end-1] == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
