package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sraja/versedrop/internal/logging"
)

type jobKind string

const (
	jobKindPrefill jobKind = "prefill"
	jobKindCompose jobKind = "compose"
	jobKindHide    jobKind = "hide"
	jobKindDeliver jobKind = "deliver"
)

type jobSnapshot struct {
	ID       string
	Kind     jobKind
	Err      string
	Duration time.Duration
}

type jobSignalMsg struct {
	ID   string
	Kind jobKind
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

// jobBus runs blocking work off the event loop and routes the result
// back in as a message. The signal message lands first so the UI can
// show progress before the runner finishes.
type jobBus struct {
	counter int64
}

func newJobBus() *jobBus {
	return &jobBus{}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()

	startCmd := func() tea.Msg {
		return jobSignalMsg{ID: id, Kind: kind}
	}

	runCmd := func() tea.Msg {
		payload, err := runner(context.Background())
		snapshot := jobSnapshot{
			ID:       id,
			Kind:     kind,
			Duration: time.Since(started),
		}
		if err != nil {
			snapshot.Err = err.Error()
			logging.L().Warn("job.failed", "id", id, "kind", string(kind), "duration", snapshot.Duration, "err", err)
		} else {
			logging.L().Debug("job.done", "id", id, "kind", string(kind), "duration", snapshot.Duration)
		}
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}
