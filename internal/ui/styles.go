// Package ui provides the terminal frontend: the recipe catalog with
// infinite scrolling, the menu calendar with its four slots and recipe
// picker, the ingredient editor, and the grocery list view.
package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles shared by all pages.
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Checked   lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
	Overlay   lipgloss.Style
	StatusBar lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BC34A")).
			MarginBottom(1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2196F3")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#141d2b")).
			Background(lipgloss.Color("#8BC34A")),
		Checked: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BC34A")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7a89")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e53935")),
		Highlight: lipgloss.NewStyle().
			Background(lipgloss.Color("#2a3850")),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8BC34A")).
			Padding(1, 2),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f2f2f2")).
			Background(lipgloss.Color("#1e2a3d")),
	}
}
