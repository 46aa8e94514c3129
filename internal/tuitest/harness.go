// Package tuitest drives a compiled binary inside a pseudo terminal,
// replays scripted keystrokes against it, and records everything it draws.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/creack/pty"
)

const (
	defaultCols    = 100
	defaultRows    = 32
	defaultTimeout = 10 * time.Second
)

// Step is one scripted interaction: wait, then send bytes to the child's
// terminal. Either part may be zero.
type Step struct {
	Wait time.Duration
	Send []byte
}

// Pause returns a step that only waits.
func Pause(d time.Duration) Step { return Step{Wait: d} }

// Type returns a step that sends s as keyboard input.
func Type(s string) Step { return Step{Send: []byte(s)} }

// Press returns a step that sends a control key such as KeyEnter.
func Press(key []byte) Step { return Step{Send: key} }

// Config describes the child program and the script to replay against it.
type Config struct {
	// Command is the argv of the program under test. Required.
	Command []string
	// Dir is the child's working directory. Empty inherits the caller's.
	Dir string
	// Env entries are appended to the parent environment. An entry here
	// overrides an inherited value because os/exec keeps the last
	// occurrence of a duplicate key.
	Env []string

	Cols int
	Rows int

	Steps   []Step
	Timeout time.Duration

	// OKExitCodes lists exit codes besides zero that count as success.
	OKExitCodes []int
	// AllowInterrupt accepts death by SIGINT, for scripts ending in ctrl+c.
	AllowInterrupt bool
}

// Transcript is everything the child wrote to its terminal during a run.
type Transcript struct {
	Raw     []byte
	Frames  []Frame
	Elapsed time.Duration
}

// Run starts the command on a pseudo terminal, replays the scripted steps,
// waits for the program to exit, and returns the captured output.
func Run(ctx context.Context, cfg Config) (*Transcript, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: empty command")
	}
	cols, rows := cfg.Cols, cfg.Rows
	if cols <= 0 {
		cols = defaultCols
	}
	if rows <= 0 {
		rows = defaultRows
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = childEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start %s: %w", cfg.Command[0], err)
	}
	defer func() { _ = ptmx.Close() }()

	var captured bytes.Buffer
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		answerer := newQueryAnswerer(ptmx)
		buf := make([]byte, 4096)
		for {
			n, readErr := ptmx.Read(buf)
			if n > 0 {
				answerer.feed(buf[:n])
				_, _ = captured.Write(buf[:n])
			}
			if readErr != nil {
				// Linux reports EIO rather than EOF once the child side
				// of the pty closes. Any read error ends the capture.
				return
			}
		}
	}()

	began := time.Now()
	for _, step := range cfg.Steps {
		if step.Wait > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("tuitest: script cut short: %w", ctx.Err())
			case <-time.After(step.Wait):
			}
		}
		if len(step.Send) > 0 {
			if _, err := ptmx.Write(step.Send); err != nil {
				return nil, fmt.Errorf("tuitest: send input: %w", err)
			}
		}
	}

	waited := make(chan error, 1)
	go func() { waited <- cmd.Wait() }()

	select {
	case err := <-waited:
		if err != nil && !exitAccepted(err, cfg) {
			return nil, fmt.Errorf("tuitest: program failed: %w", err)
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("tuitest: program still running: %w", ctx.Err())
	}

	// Closing our side lets the reader goroutine finish draining.
	_ = ptmx.Close()
	<-drained

	raw := captured.Bytes()
	return &Transcript{Raw: raw, Frames: splitFrames(raw), Elapsed: time.Since(began)}, nil
}

func exitAccepted(err error, cfg Config) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && slices.Contains(cfg.OKExitCodes, exitErr.ExitCode()) {
		return true
	}
	return cfg.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt")
}

func childEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

var (
	// KeyEnter submits the focused input.
	KeyEnter = []byte{'\r'}
	// KeyEsc backs out of the current stage.
	KeyEsc = []byte{27}
	// KeyCtrlC asks the program to quit.
	KeyCtrlC = []byte{3}
	// KeyCtrlU clears the focused input back to its start.
	KeyCtrlU = []byte{21}
)
