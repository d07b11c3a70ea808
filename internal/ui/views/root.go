package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/shellfs/internal/ui/state"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s state.State) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderHeader(s),
		RenderListing(s),
		RenderStatus(s),
		RenderHelp(),
	)
}
