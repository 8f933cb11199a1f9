package cli

import "github.com/charmbracelet/lipgloss"

// Styles holds the terminal styles used by the menu
type Styles struct {
	Title   lipgloss.Style
	Menu    lipgloss.Style
	Prompt  lipgloss.Style
	Heading lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Income  lipgloss.Style
	Spent   lipgloss.Style
	Box     lipgloss.Style
}

// DefaultStyles returns the default color scheme. Colors are dropped
// automatically when the output is not a terminal.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa")),
		Menu:    lipgloss.NewStyle().PaddingLeft(1),
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("#cba6f7")),
		Heading: lipgloss.NewStyle().Bold(true).Underline(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")),
		Income:  lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		Spent:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		Box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}
