package views

import (
	"fmt"

	"github.com/Cyclone1070/shellfs/internal/ui/state"
)

const helpText = "enter/l: open  backspace/h: up  r: refresh  q: quit"

// RenderStatus renders the status bar
func RenderStatus(s state.State) string {
	switch {
	case s.Loading:
		return StatusLoadingStyle.Render(fmt.Sprintf("%s Listing %s", s.Spinner.View(), s.Target))
	case s.Err != nil:
		return StatusErrorStyle.Render(fmt.Sprintf("✗ %v", s.Err))
	case s.StatusMessage != "":
		return StatusDefaultStyle.Render(s.StatusMessage)
	case s.Path != "":
		return StatusDoneStyle.Render(fmt.Sprintf("✔ %d entries", len(s.Entries)))
	default:
		return StatusDefaultStyle.Render("Ready")
	}
}

// RenderHelp renders the key bindings line
func RenderHelp() string {
	return HelpStyle.Render(helpText)
}
