// Package ui renders the portal screens as a bubbletea program. It reads
// snapshots from the record store and turns key presses into navigator
// intents.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Brand palette.
var (
	Primary   = lipgloss.Color("#003B2A")
	Secondary = lipgloss.Color("#004532")
	Accent    = lipgloss.Color("#C5A059")
	Text      = lipgloss.Color("#111827")
	TextLight = lipgloss.Color("#6B7280")
	Border    = lipgloss.Color("#E5E7EB")
	Danger    = lipgloss.Color("#DC2626")
)

// Styles groups the lipgloss styles used by every screen.
type Styles struct {
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Title     lipgloss.Style
	Section   lipgloss.Style
	Label     lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Badge     lipgloss.Style
	Points    lipgloss.Style
	Selected  lipgloss.Style
	Card      lipgloss.Style
	Modal     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Footer    lipgloss.Style
	Divider   lipgloss.Style
}

// DefaultStyles returns the portal styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(Primary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 2).
			Bold(true),
		Tab: lipgloss.NewStyle().
			Foreground(TextLight).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(Primary).
			Background(Accent).
			Padding(0, 1).
			Bold(true),
		Title: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1),
		Section: lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(TextLight),
		Body: lipgloss.NewStyle().
			Foreground(Text),
		Muted: lipgloss.NewStyle().
			Foreground(TextLight).
			Italic(true),
		Badge: lipgloss.NewStyle().
			Background(Secondary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),
		Points: lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Danger).
			Padding(1, 2),
		Error: lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(TextLight).
			Padding(0, 2),
		Divider: lipgloss.NewStyle().
			Foreground(Border),
	}
}

// RenderDivider returns a horizontal rule of the given width.
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		width = 40
	}
	return s.Divider.Render(strings.Repeat("─", width))
}

func truncate(s string, l int) string {
	r := []rune(s)
	if l <= 3 || len(r) <= l {
		return s
	}
	return string(r[:l-3]) + "..."
}
