package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sraja/versedrop/internal/compose"
	"github.com/sraja/versedrop/internal/handoff"
	"github.com/sraja/versedrop/internal/logging"
	"github.com/sraja/versedrop/internal/ref"
	"github.com/sraja/versedrop/internal/verse"
)

func composeJob(store verse.Store, raw string, opts compose.Options) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 5*time.Second)
		defer cancel()
		r, err := ref.Parse(raw)
		if err != nil {
			return composeResultMsg{err: err}, err
		}
		payload, err := compose.Compose(ctx, store, r, opts)
		if err != nil {
			return composeResultMsg{err: err}, err
		}
		return composeResultMsg{ref: r, payload: payload}, nil
	}
}

func deliverJob(session *handoff.Session) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 3*time.Second)
		defer cancel()
		err := session.Deliver(ctx)
		return deliverResultMsg{err: err}, err
	}
}

func hideJob(hide func(context.Context) error) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 2*time.Second)
		defer cancel()
		if err := hide(ctx); err != nil {
			return hideResultMsg{err: err}, err
		}
		return hideResultMsg{}, nil
	}
}

// prefillJob inspects the clipboard at startup: when it already holds
// something that reads as a reference, the input starts out filled in.
// Everything else, including a missing clipboard, stays silent.
func prefillJob(clipboard handoff.Clipboard) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		text, err := clipboard.Read()
		if err != nil {
			logging.L().Debug("prefill.clipboard_unreadable", "err", err)
			return prefillMsg{}, nil
		}
		trimmed := strings.TrimSpace(text)
		if _, err := ref.Parse(trimmed); err != nil {
			return prefillMsg{}, nil
		}
		return prefillMsg{text: trimmed}, nil
	}
}
