package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/sraja/versedrop/internal/theme"
)

type styles struct {
	title   lipgloss.Style
	tagline lipgloss.Style
	header  lipgloss.Style
	helper  lipgloss.Style
	err     lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	banner  lipgloss.Style
	box     lipgloss.Style
	key     lipgloss.Style
	keyDesc lipgloss.Style
}

func newStyles(th theme.Theme) styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(th.Accent),
		tagline: lipgloss.NewStyle().Italic(true).Foreground(th.Muted),
		header:  lipgloss.NewStyle().Bold(true).Foreground(th.Accent),
		helper:  lipgloss.NewStyle().Foreground(th.Muted),
		err:     lipgloss.NewStyle().Foreground(th.Error),
		success: lipgloss.NewStyle().Foreground(th.Success),
		warning: lipgloss.NewStyle().Foreground(th.Warning),
		banner:  lipgloss.NewStyle().Bold(true).Foreground(th.Success),
		box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(th.Border).Padding(0, 1),
		key:     lipgloss.NewStyle().Bold(true).Foreground(th.Text),
		keyDesc: lipgloss.NewStyle().Foreground(th.Muted),
	}
}

func (m *model) View() string {
	switch m.stage {
	case stageInput:
		return m.viewInput()
	case stageArmed:
		return m.viewArmed()
	case stageDelivering:
		return m.viewDelivering()
	case stageDone:
		return m.viewDone()
	default:
		return ""
	}
}

func (m *model) viewInput() string {
	var form strings.Builder
	form.WriteString(m.styles.header.Render("Reference"))
	form.WriteRune('\n')
	form.WriteString(m.refInput.View())
	form.WriteRune('\n')
	form.WriteString(m.optionsLine())

	parts := []string{m.heroView(), form.String()}
	if !m.config.PasteAvailable {
		parts = append(parts, m.styles.warning.Render("No paste tool found; text will be copied but not auto-pasted."))
	}
	parts = append(parts, m.statusLines(), m.footerView())
	return joinNonEmpty(parts)
}

func (m *model) viewArmed() string {
	var armed strings.Builder
	armed.WriteString(m.styles.banner.Render("Armed: clipboard loaded"))
	armed.WriteRune('\n')
	armed.WriteString(m.styles.helper.Render("Switch to the target window; the text pastes there on focus loss."))
	armed.WriteRune('\n')
	preview := wordwrap.String(previewText(m.payload, payloadPreviewLimit), m.layout.wrapWidth(4))
	armed.WriteString(m.styles.box.Render(preview))

	var form strings.Builder
	form.WriteString(m.styles.header.Render("Reference"))
	form.WriteRune('\n')
	form.WriteString(m.refInput.View())
	form.WriteRune('\n')
	form.WriteString(m.optionsLine())

	parts := []string{m.heroView(), armed.String(), form.String(), m.statusLines(), m.footerView()}
	return joinNonEmpty(parts)
}

func (m *model) viewDelivering() string {
	body := fmt.Sprintf("%s Pasting %s…", m.spinner.View(), m.reference.String())
	parts := []string{m.heroView(), body}
	if m.focused {
		parts = append(parts, m.styles.warning.Render("This window took focus back; the paste lands wherever focus is."))
	}
	return joinNonEmpty(parts)
}

func (m *model) viewDone() string {
	return joinNonEmpty([]string{
		m.heroView(),
		m.styles.success.Render(fmt.Sprintf("Pasted %s.", m.reference.String())),
	})
}

func (m *model) heroView() string {
	title := m.styles.title.Render("versedrop")
	head := title
	if m.config.Store != nil {
		head = lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", m.styles.helper.Render(m.config.Store.Label()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, m.styles.tagline.Render(heroTagline))
}

func (m *model) optionsLine() string {
	return m.styles.helper.Render(fmt.Sprintf(
		"[%s] primary   [%s] translation",
		checkbox(m.settings.IncludePrimary),
		checkbox(m.settings.IncludeSecondary),
	))
}

func checkbox(on bool) string {
	if on {
		return "x"
	}
	return " "
}

func (m *model) statusLines() string {
	var lines []string
	if m.errorMessage != "" {
		lines = append(lines, m.styles.err.Render(m.errorMessage))
	}
	switch {
	case m.composing:
		lines = append(lines, m.styles.helper.Render(fmt.Sprintf("%s Composing…", m.spinner.View())))
	case m.infoMessage != "":
		lines = append(lines, m.styles.helper.Render(m.infoMessage))
	}
	return strings.Join(lines, "\n")
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) footerView() string {
	hints := []keyHint{
		{"enter", "copy & arm"},
		{"ctrl+p", "primary"},
		{"ctrl+t", "translation"},
		{"esc", "disarm / quit"},
		{"?", "help"},
	}
	cells := make([]string, 0, len(hints))
	for _, hint := range hints {
		cells = append(cells, m.styles.key.Render(hint.Key)+m.styles.keyDesc.Render(" "+hint.Description))
	}
	footer := strings.Join(cells, "   ")
	if m.helpVisible {
		return footer + "\n\n" + m.helpView()
	}
	return footer
}

func (m *model) helpView() string {
	body := strings.Join([]string{
		"Enter copies the composed verse text to the clipboard and arms the paste.",
		"Switching to any other window pastes once, then versedrop exits.",
		"Esc disarms without clearing the clipboard. References look like 2:255 or 5.6-10.",
	}, "\n")
	return m.styles.header.Render("How it works") + "\n" + m.styles.helper.Render(indentMultiline(body, "  "))
}
