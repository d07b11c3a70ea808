package views

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("12")
	ColorMuted   = lipgloss.Color("241")
	ColorError   = lipgloss.Color("9")
	ColorOK      = lipgloss.Color("10")

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	StatusDefaultStyle = lipgloss.NewStyle().Padding(0, 1)

	StatusLoadingStyle = StatusDefaultStyle.Foreground(ColorPrimary)

	StatusErrorStyle = StatusDefaultStyle.Foreground(ColorError)

	StatusDoneStyle = StatusDefaultStyle.Foreground(ColorOK)

	HelpStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)

	EmptyStyle = lipgloss.NewStyle().Foreground(ColorMuted).Padding(1, 2)
)
