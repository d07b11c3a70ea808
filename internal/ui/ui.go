package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Browser is an interactive directory browser over a shell filesystem.
type Browser struct {
	program *tea.Program
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// DefaultSpinner is the spinner shown while a listing runs.
func DefaultSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
}

// NewBrowser creates a browser starting at start. Extra program options are
// passed through to Bubble Tea (input/output redirection in tests).
func NewBrowser(ctx context.Context, fs browsable, start string, spinnerFactory SpinnerFactory, opts ...tea.ProgramOption) *Browser {
	if fs == nil {
		panic("fs is required")
	}
	if spinnerFactory == nil {
		spinnerFactory = DefaultSpinner
	}

	model := newBubbleTeaModel(ctx, fs, start, spinnerFactory)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)

	return &Browser{program: tea.NewProgram(model, opts...)}
}

// Start runs the browser until the user quits.
func (b *Browser) Start() error {
	_, err := b.program.Run()
	return err
}
