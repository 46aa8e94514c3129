// Package handoff owns the paste-pending state machine: the clipboard
// write, the focus-loss gate, and the single injected paste that follows.
package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Delays between the externally observable steps of a delivery. Both are
// scheduled as event-loop callbacks, never as blocking sleeps.
const (
	// SettleDelay lets the newly focused application finish receiving
	// input focus before the keystroke is injected. A measured tradeoff
	// against flaky delivery to foreign windows, not a guarantee.
	SettleDelay = 150 * time.Millisecond

	// ExitDelay lets the injected paste event be processed before the
	// process exits.
	ExitDelay = 50 * time.Millisecond
)

// Sentinel errors for errors.Is checks.
var (
	ErrClipboard = errors.New("clipboard write failed")
	ErrInjection = errors.New("paste injection failed")
)

// ClipboardError reports a failed clipboard write while arming.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard write failed: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error { return ErrClipboard }

// InjectionError reports a failed paste injection. The clipboard still
// holds the payload, so a manual paste remains possible.
type InjectionError struct {
	Err error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("paste injection failed: %v", e.Err)
}

func (e *InjectionError) Unwrap() error { return ErrInjection }

// Clipboard is the system clipboard capability the session depends on.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// Injector simulates the platform paste shortcut into whatever window
// currently holds focus.
type Injector interface {
	Paste(ctx context.Context) error
}

// State of the handoff machine.
type State int

const (
	Idle State = iota
	Armed
	Delivering
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Delivering:
		return "delivering"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is the live paste session. Exactly one exists at a time;
// re-arming overwrites the previous payload rather than queueing. All
// methods must be called from the event loop; the session carries no
// locking of its own.
type Session struct {
	clip    Clipboard
	inj     Injector
	state   State
	pending bool
	payload string
}

func New(clip Clipboard, inj Injector) *Session {
	return &Session{clip: clip, inj: inj}
}

// Arm stages payload for delivery. The clipboard write comes first and
// must succeed before the session flips to pending; on write failure the
// session is left exactly as it was. Arming while already armed replaces
// the payload and stays in Armed.
func (s *Session) Arm(payload string) error {
	if err := s.clip.Write(payload); err != nil {
		return &ClipboardError{Err: err}
	}
	s.payload = payload
	s.pending = true
	s.state = Armed
	return nil
}

// FocusLost reports whether a focus-loss notification starts a delivery.
// It returns true exactly once per armed payload; notifications that
// arrive while nothing is pending are no-ops. The caller waits
// SettleDelay before calling Deliver.
func (s *Session) FocusLost() bool {
	if !s.pending || s.state != Armed {
		return false
	}
	s.state = Delivering
	return true
}

// Deliver injects the paste exactly once. Pending is cleared on success
// and failure alike: a failed automated paste is never retried, the
// clipboard still holds the payload for a manual one. On failure the
// session returns to Idle so the tool can stay open and report it.
func (s *Session) Deliver(ctx context.Context) error {
	if s.state != Delivering {
		return fmt.Errorf("deliver called in state %s", s.state)
	}
	s.pending = false
	if err := s.inj.Paste(ctx); err != nil {
		s.state = Idle
		return &InjectionError{Err: err}
	}
	s.state = Done
	return nil
}

// Disarm cancels a staged delivery and returns to Idle. The clipboard is
// left as written.
func (s *Session) Disarm() {
	s.pending = false
	s.payload = ""
	s.state = Idle
}

func (s *Session) State() State { return s.state }

func (s *Session) Pending() bool { return s.pending }

func (s *Session) Payload() string { return s.payload }
