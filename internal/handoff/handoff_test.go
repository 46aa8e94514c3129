package handoff

import (
	"context"
	"errors"
	"testing"
)

type fakeClipboard struct {
	text     string
	writes   int
	writeErr error
}

func (c *fakeClipboard) Read() (string, error) { return c.text, nil }

func (c *fakeClipboard) Write(text string) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.text = text
	c.writes++
	return nil
}

type fakeInjector struct {
	pastes   int
	pasteErr error
}

func (i *fakeInjector) Paste(context.Context) error {
	i.pastes++
	return i.pasteErr
}

func TestArmWritesClipboardBeforePending(t *testing.T) {
	t.Parallel()

	clip := &fakeClipboard{}
	s := New(clip, &fakeInjector{})

	if err := s.Arm("payload text"); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if clip.text != "payload text" {
		t.Fatalf("clipboard = %q, want %q", clip.text, "payload text")
	}
	if !s.Pending() {
		t.Fatal("expected pending after arm")
	}
	if s.State() != Armed {
		t.Fatalf("state = %v, want %v", s.State(), Armed)
	}
}

func TestArmClipboardFailureLeavesSessionUntouched(t *testing.T) {
	t.Parallel()

	clip := &fakeClipboard{writeErr: errors.New("no display")}
	s := New(clip, &fakeInjector{})

	err := s.Arm("payload")
	if !errors.Is(err, ErrClipboard) {
		t.Fatalf("Arm error = %v, want ErrClipboard", err)
	}
	var cerr *ClipboardError
	if !errors.As(err, &cerr) {
		t.Fatalf("Arm error type = %T, want *ClipboardError", err)
	}
	if s.Pending() {
		t.Fatal("pending set despite failed clipboard write")
	}
	if s.State() != Idle {
		t.Fatalf("state = %v, want %v", s.State(), Idle)
	}
	if s.FocusLost() {
		t.Fatal("focus loss started a delivery with nothing armed")
	}
}

func TestRearmOverwritesPayload(t *testing.T) {
	t.Parallel()

	clip := &fakeClipboard{}
	s := New(clip, &fakeInjector{})

	if err := s.Arm("first"); err != nil {
		t.Fatalf("Arm first: %v", err)
	}
	if err := s.Arm("second"); err != nil {
		t.Fatalf("Arm second: %v", err)
	}
	if s.Payload() != "second" {
		t.Fatalf("payload = %q, want %q", s.Payload(), "second")
	}
	if clip.text != "second" {
		t.Fatalf("clipboard = %q, want %q", clip.text, "second")
	}
	if clip.writes != 2 {
		t.Fatalf("clipboard writes = %d, want 2", clip.writes)
	}
	if s.State() != Armed {
		t.Fatalf("state = %v, want %v", s.State(), Armed)
	}
}

func TestFocusLostFiresExactlyOncePerArm(t *testing.T) {
	t.Parallel()

	s := New(&fakeClipboard{}, &fakeInjector{})

	if s.FocusLost() {
		t.Fatal("focus loss triggered delivery before arming")
	}
	if err := s.Arm("payload"); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if !s.FocusLost() {
		t.Fatal("first focus loss after arm should start delivery")
	}
	if s.FocusLost() {
		t.Fatal("second focus loss started another delivery")
	}
	if s.State() != Delivering {
		t.Fatalf("state = %v, want %v", s.State(), Delivering)
	}
}

func TestDeliverPastesExactlyOnce(t *testing.T) {
	t.Parallel()

	inj := &fakeInjector{}
	s := New(&fakeClipboard{}, inj)

	if err := s.Arm("payload"); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if !s.FocusLost() {
		t.Fatal("focus loss should start delivery")
	}
	if err := s.Deliver(context.Background()); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if inj.pastes != 1 {
		t.Fatalf("pastes = %d, want 1", inj.pastes)
	}
	if s.Pending() {
		t.Fatal("pending still set after delivery")
	}
	if s.State() != Done {
		t.Fatalf("state = %v, want %v", s.State(), Done)
	}

	if err := s.Deliver(context.Background()); err == nil {
		t.Fatal("second deliver should be rejected")
	}
	if inj.pastes != 1 {
		t.Fatalf("pastes after rejected deliver = %d, want 1", inj.pastes)
	}
}

func TestDeliverFailureClearsPendingAndKeepsClipboard(t *testing.T) {
	t.Parallel()

	clip := &fakeClipboard{}
	inj := &fakeInjector{pasteErr: errors.New("xdotool missing")}
	s := New(clip, inj)

	if err := s.Arm("payload"); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if !s.FocusLost() {
		t.Fatal("focus loss should start delivery")
	}
	err := s.Deliver(context.Background())
	if !errors.Is(err, ErrInjection) {
		t.Fatalf("Deliver error = %v, want ErrInjection", err)
	}
	var ierr *InjectionError
	if !errors.As(err, &ierr) {
		t.Fatalf("Deliver error type = %T, want *InjectionError", err)
	}
	if s.Pending() {
		t.Fatal("pending still set after failed delivery")
	}
	if s.State() != Idle {
		t.Fatalf("state = %v, want %v", s.State(), Idle)
	}
	if clip.text != "payload" {
		t.Fatalf("clipboard = %q, want payload preserved", clip.text)
	}
	if s.FocusLost() {
		t.Fatal("failed delivery must not be retried on the next focus loss")
	}
}

func TestDisarmResetsToIdle(t *testing.T) {
	t.Parallel()

	clip := &fakeClipboard{}
	s := New(clip, &fakeInjector{})

	if err := s.Arm("payload"); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	s.Disarm()

	if s.Pending() {
		t.Fatal("pending still set after disarm")
	}
	if s.State() != Idle {
		t.Fatalf("state = %v, want %v", s.State(), Idle)
	}
	if s.Payload() != "" {
		t.Fatalf("payload = %q, want empty", s.Payload())
	}
	if s.FocusLost() {
		t.Fatal("focus loss after disarm started a delivery")
	}
	if clip.text != "payload" {
		t.Fatalf("clipboard = %q, disarm should leave it as written", clip.text)
	}
}

func TestFocusLostAfterDoneIsNoOp(t *testing.T) {
	t.Parallel()

	s := New(&fakeClipboard{}, &fakeInjector{})

	if err := s.Arm("payload"); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if !s.FocusLost() {
		t.Fatal("focus loss should start delivery")
	}
	if err := s.Deliver(context.Background()); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if s.FocusLost() {
		t.Fatal("focus loss after done started a delivery")
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		state State
		want  string
	}{
		{Idle, "idle"},
		{Armed, "armed"},
		{Delivering, "delivering"},
		{Done, "done"},
		{State(42), "state(42)"},
	}
	for _, tc := range cases {
		if got := tc.state.String(); got != tc.want {
			t.Fatalf("State(%d).String() = %q, want %q", int(tc.state), got, tc.want)
		}
	}
}
