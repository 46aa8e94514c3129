// Package theme holds the color palettes for the terminal UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is one named palette.
type Theme struct {
	Name string

	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color
}

var (
	Azure = Theme{
		Name:    "Azure",
		Accent:  lipgloss.Color("#3b82f6"),
		Text:    lipgloss.Color("#e5e7eb"),
		Muted:   lipgloss.Color("#6b7280"),
		Success: lipgloss.Color("#22c55e"),
		Warning: lipgloss.Color("#eab308"),
		Error:   lipgloss.Color("#ef4444"),
		Border:  lipgloss.Color("#374151"),
	}

	Mocha = Theme{
		Name:    "Mocha",
		Accent:  lipgloss.Color("#89b4fa"),
		Text:    lipgloss.Color("#cdd6f4"),
		Muted:   lipgloss.Color("#6c7086"),
		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Border:  lipgloss.Color("#45475a"),
	}
)

// Names lists the selectable theme names.
func Names() []string {
	return []string{"azure", "mocha"}
}

// Get returns the theme for name, falling back to Azure.
func Get(name string) Theme {
	switch name {
	case "mocha":
		return Mocha
	default:
		return Azure
	}
}
