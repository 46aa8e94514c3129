// Package tui drives the single-window flow: type a reference, arm the
// clipboard, lose focus, paste, exit.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sraja/versedrop/internal/compose"
	"github.com/sraja/versedrop/internal/handoff"
	"github.com/sraja/versedrop/internal/logging"
	"github.com/sraja/versedrop/internal/ref"
	"github.com/sraja/versedrop/internal/settings"
	"github.com/sraja/versedrop/internal/theme"
	"github.com/sraja/versedrop/internal/verse"
)

// Config wires runtime dependencies into the TUI program.
type Config struct {
	Store     verse.Store
	Session   *handoff.Session
	Clipboard handoff.Clipboard

	// Hide minimizes the window after arming; nil skips the attempt.
	Hide func(context.Context) error

	Settings       settings.Settings
	Theme          theme.Theme
	PasteAvailable bool
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	refInput := textinput.New()
	refInput.Placeholder = refPlaceholder
	refInput.Focus()
	refInput.CharLimit = 32
	refInput.Width = 24

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &model{
		config:      config,
		stage:       stageInput,
		refInput:    refInput,
		spinner:     spin,
		jobs:        newJobBus(),
		layout:      newPageLayout(),
		styles:      newStyles(config.Theme),
		settings:    config.Settings,
		focused:     true,
		infoMessage: "Type a verse reference and press Enter.",
	}
}

// FinalSettings extracts the live settings from the model a finished
// program returns, so the caller can persist toggles made during the
// session.
func FinalSettings(m tea.Model) (settings.Settings, bool) {
	mm, ok := m.(*model)
	if !ok {
		return settings.Settings{}, false
	}
	return mm.settings, true
}

type model struct {
	config Config
	stage  stage

	refInput textinput.Model
	spinner  spinner.Model

	jobs   *jobBus
	layout pageLayout
	styles styles

	settings  settings.Settings
	payload   string
	reference ref.Reference

	composing    bool
	focused      bool
	helpVisible  bool
	infoMessage  string
	errorMessage string
}

type composeResultMsg struct {
	ref     ref.Reference
	payload string
	err     error
}

type deliverResultMsg struct {
	err error
}

type hideResultMsg struct {
	err error
}

type prefillMsg struct {
	text string
}

type settleTickMsg struct{}

type exitTickMsg struct{}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tea.SetWindowTitle("versedrop")}
	if m.config.Clipboard != nil {
		cmds = append(cmds, m.jobs.Start(jobKindPrefill, prefillJob(m.config.Clipboard)))
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.composing || m.stage == stageDelivering {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			switch m.stage {
			case stageArmed:
				m.config.Session.Disarm()
				m.stage = stageInput
				m.infoMessage = "Disarmed. The clipboard still holds the last copy."
				m.errorMessage = ""
				return m, nil
			case stageInput:
				return m, tea.Quit
			default:
				// Delivery is already committed; exiting follows on its own.
				return m, nil
			}
		}
		return m.handleKey(msg)
	case tea.BlurMsg:
		m.focused = false
		if m.stage == stageArmed && m.config.Session.FocusLost() {
			m.stage = stageDelivering
			logging.L().Info("handoff.focus_lost", "reference", m.reference.String())
			return m, tea.Batch(m.spinner.Tick, tea.Tick(handoff.SettleDelay, func(time.Time) tea.Msg {
				return settleTickMsg{}
			}))
		}
		return m, nil
	case tea.FocusMsg:
		m.focused = true
		return m, nil
	case settleTickMsg:
		// A disarm during the settle window leaves the session out of
		// the delivering state; the stale tick is dropped.
		if m.config.Session.State() != handoff.Delivering {
			return m, nil
		}
		return m, m.jobs.Start(jobKindDeliver, deliverJob(m.config.Session))
	case jobSignalMsg:
		return m, nil
	case jobResultEnvelope:
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case prefillMsg:
		if msg.text != "" && m.stage == stageInput && strings.TrimSpace(m.refInput.Value()) == "" {
			m.refInput.SetValue(msg.text)
			m.refInput.CursorEnd()
		}
		return m, nil
	case composeResultMsg:
		return m.handleComposeResult(msg)
	case hideResultMsg:
		if msg.err != nil {
			logging.L().Debug("hide.unavailable", "err", msg.err)
		}
		return m, nil
	case deliverResultMsg:
		return m.handleDeliverResult(msg)
	case exitTickMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageInput, stageArmed:
		switch key.String() {
		case "ctrl+p":
			m.settings.IncludePrimary = !m.settings.IncludePrimary
			m.infoMessage = toggleMessage("Primary text", m.settings.IncludePrimary)
			return m, nil
		case "ctrl+t":
			m.settings.IncludeSecondary = !m.settings.IncludeSecondary
			m.infoMessage = toggleMessage("Translation", m.settings.IncludeSecondary)
			return m, nil
		case "?":
			m.helpVisible = !m.helpVisible
			return m, nil
		}
		var cmd tea.Cmd
		m.refInput, cmd = m.refInput.Update(key)
		if key.Type == tea.KeyEnter {
			return m, tea.Batch(cmd, m.startCompose())
		}
		return m, cmd
	default:
		return m, nil
	}
}

func (m *model) startCompose() tea.Cmd {
	raw := strings.TrimSpace(m.refInput.Value())
	if raw == "" {
		m.errorMessage = "Type a reference such as 2:255."
		m.infoMessage = ""
		return nil
	}
	if !m.settings.IncludePrimary && !m.settings.IncludeSecondary {
		m.errorMessage = "Both text options are off. Enable one with ctrl+p or ctrl+t."
		m.infoMessage = ""
		return nil
	}
	if m.composing {
		return nil
	}
	m.composing = true
	m.errorMessage = ""
	m.infoMessage = "Composing…"
	opts := compose.Options{
		IncludePrimary:   m.settings.IncludePrimary,
		IncludeSecondary: m.settings.IncludeSecondary,
	}
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindCompose, composeJob(m.config.Store, raw, opts)))
}

func (m *model) handleComposeResult(msg composeResultMsg) (tea.Model, tea.Cmd) {
	m.composing = false
	// A delivery for the previous payload may already be in flight;
	// late compose results must not re-arm underneath it.
	if m.stage == stageDelivering || m.stage == stageDone {
		logging.L().Debug("compose.result_dropped", "stage", int(m.stage))
		return m, nil
	}
	if msg.err != nil {
		m.errorMessage = msg.err.Error()
		m.infoMessage = ""
		return m, nil
	}
	if err := m.config.Session.Arm(msg.payload); err != nil {
		m.errorMessage = err.Error()
		m.infoMessage = ""
		return m, nil
	}
	m.payload = msg.payload
	m.reference = msg.ref
	m.stage = stageArmed
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Copied %s. Focus the target window to paste.", msg.ref.String())
	logging.L().Info("handoff.armed", "reference", msg.ref.String(), "bytes", len(msg.payload))
	if m.config.Hide != nil {
		return m, m.jobs.Start(jobKindHide, hideJob(m.config.Hide))
	}
	return m, nil
}

func (m *model) handleDeliverResult(msg deliverResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.stage = stageInput
		m.errorMessage = msg.err.Error()
		m.infoMessage = "The text is still on the clipboard. Paste it manually with ctrl+v."
		logging.L().Warn("handoff.inject_failed", "err", msg.err)
		return m, nil
	}
	m.stage = stageDone
	m.infoMessage = "Pasted."
	logging.L().Info("handoff.delivered", "reference", m.reference.String())
	return m, tea.Tick(handoff.ExitDelay, func(time.Time) tea.Msg {
		return exitTickMsg{}
	})
}

func toggleMessage(what string, on bool) string {
	if on {
		return what + " included."
	}
	return what + " excluded."
}
