// Package themes holds the lipgloss styles used by the form application.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	FieldLabel    lipgloss.Style
	FieldFocused  lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
	Info          lipgloss.Color
}

// Default is the default theme: neon pink on dark grey.
var Default = Theme{
	Primary:    lipgloss.Color("#ff4fa3"),
	Secondary:  lipgloss.Color("#a78bfa"),
	Success:    lipgloss.Color("#10b981"),
	Warning:    lipgloss.Color("#f59e0b"),
	Error:      lipgloss.Color("#ef4444"),
	Info:       lipgloss.Color("#3b82f6"),
	Foreground: lipgloss.Color("#fafafa"),
	Border:     lipgloss.Color("#404040"),
	Muted:      lipgloss.Color("#737373"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff4fa3")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#ff4fa3")).
		Foreground(lipgloss.Color("#1a1a1a")).
		Bold(true),

	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1a1a1a")).
		Background(lipgloss.Color("#ff4fa3")).
		Padding(0, 2),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		Padding(0, 2),

	FieldLabel: lipgloss.NewStyle().
		Width(10).
		Foreground(lipgloss.Color("#a3a3a3")),
	FieldFocused: lipgloss.NewStyle().
		Width(10).
		Bold(true).
		Foreground(lipgloss.Color("#ff4fa3")),

	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),

	StatusSuccess: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")).
		Bold(true),
	StatusWarning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")).
		Bold(true),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")),
}
