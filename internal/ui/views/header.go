package views

import (
	"github.com/Cyclone1070/shellfs/internal/ui/state"
)

// RenderHeader renders the current directory line
func RenderHeader(s state.State) string {
	path := s.Path
	if path == "" {
		path = s.Target
	}
	return HeaderStyle.Render(path)
}
