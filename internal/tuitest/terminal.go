package tuitest

import (
	"bytes"
	"io"
)

// termProbes pairs the terminal queries termenv-based programs send at
// startup with canned replies. Without an answer the child sits waiting
// for a terminal that is not there.
var termProbes = []struct {
	query, reply []byte
}{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

// queryAnswerer watches the child's output stream for terminal probes and
// writes the canned reply back into the pty.
type queryAnswerer struct {
	pt  io.Writer
	buf []byte
}

func newQueryAnswerer(w io.Writer) *queryAnswerer {
	return &queryAnswerer{pt: w, buf: make([]byte, 0, 128)}
}

func (qa *queryAnswerer) feed(chunk []byte) {
	qa.buf = append(qa.buf, chunk...)
	for qa.answerNext() {
	}
	// Keep a short tail for probes that straddle two reads.
	if len(qa.buf) > 256 {
		qa.buf = qa.buf[len(qa.buf)-64:]
	}
}

func (qa *queryAnswerer) answerNext() bool {
	for _, probe := range termProbes {
		idx := bytes.Index(qa.buf, probe.query)
		if idx < 0 {
			continue
		}
		qa.buf = qa.buf[idx+len(probe.query):]
		_, _ = qa.pt.Write(probe.reply)
		return true
	}
	return false
}
