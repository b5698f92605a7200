package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	model    lipgloss.Style
	detail   lipgloss.Style
	meta     lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	closed   lipgloss.Style
	running  lipgloss.Style
	errLabel lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		model:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		closed:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		running:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		errLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
