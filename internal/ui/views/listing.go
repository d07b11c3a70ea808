package views

import (
	"fmt"

	"github.com/Cyclone1070/shellfs/internal/ui/state"
)

// RenderListing renders the directory table, or a placeholder before the
// first listing arrives.
func RenderListing(s state.State) string {
	if s.Path == "" {
		if s.Loading {
			return EmptyStyle.Render(fmt.Sprintf("%s Listing %s", s.Spinner.View(), s.Target))
		}
		return EmptyStyle.Render("Nothing loaded.")
	}
	if len(s.Entries) == 0 {
		return EmptyStyle.Render("Empty directory.")
	}
	return s.Table.View()
}
