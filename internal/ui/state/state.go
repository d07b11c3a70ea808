package state

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"

	"github.com/Cyclone1070/shellfs/internal/models"
)

// State is everything the browser views render from.
type State struct {
	// Path is the directory currently shown; Target is the one being loaded.
	Path    string
	Target  string
	Loading bool

	Entries []models.PathEntry
	Table   table.Model
	Spinner spinner.Model

	// Focus names the entry to select once the next listing arrives.
	Focus string

	Err           error
	StatusMessage string

	Width  int
	Height int
}
