package ui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/shellfs/internal/adapter"
	"github.com/Cyclone1070/shellfs/internal/models"
	"github.com/Cyclone1070/shellfs/internal/ui/state"
	"github.com/Cyclone1070/shellfs/internal/ui/views"
)

const (
	typeColumnWidth = 10
	sizeColumnWidth = 12
	// Header, status and help lines plus the table's own header and border.
	reservedLines = 6
)

var spinnerStyle = lipgloss.NewStyle().Foreground(views.ColorPrimary)

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state state.State

	ctx context.Context
	fs  browsable
}

func newBubbleTeaModel(ctx context.Context, fs browsable, start string, spinnerFactory SpinnerFactory) BubbleTeaModel {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(views.ColorPrimary)
	t.SetStyles(styles)

	if start == "" {
		start = "."
	}

	return BubbleTeaModel{
		state: state.State{
			Target:  start,
			Loading: true,
			Table:   t,
			Spinner: spinnerFactory(),
		},
		ctx: ctx,
		fs:  fs,
	}
}

// Internal messages
type entriesMsg struct {
	path    string
	entries []models.PathEntry
}

type errMsg struct {
	path string
	err  error
}

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	return tea.Batch(
		m.state.Spinner.Tick,
		loadDir(m.ctx, m.fs, m.state.Target),
	)
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Table.SetColumns(columns(msg.Width))
		m.state.Table.SetHeight(max(msg.Height-reservedLines, 3))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case entriesMsg:
		if !m.state.Loading || msg.path != m.state.Target {
			return m, nil
		}
		m.state.Loading = false
		m.state.Err = nil
		m.state.StatusMessage = ""
		m.state.Path = msg.path
		m.state.Entries = msg.entries
		m.state.Table.SetRows(m.rows(msg.entries))
		m.state.Table.SetCursor(m.focusIndex())
		m.state.Focus = ""
		return m, nil

	case errMsg:
		if !m.state.Loading || msg.path != m.state.Target {
			return m, nil
		}
		m.state.Loading = false
		m.state.Err = msg.err
		m.state.Focus = ""
		if m.state.Path != "" {
			m.state.Target = m.state.Path
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.state.Table, cmd = m.state.Table.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	if m.state.Loading {
		return m, nil
	}

	switch msg.String() {
	case "enter", "l":
		entry, ok := m.selected()
		if !ok {
			return m, nil
		}
		if !entry.IsDir() && !entry.IsSymlink() {
			m.state.Err = nil
			m.state.StatusMessage = entry.Name + " is a " + entry.Type.String()
			return m, nil
		}
		return m.navigate(entry.Name, "")

	case "backspace", "h":
		if m.state.Path == "" {
			return m, nil
		}
		parent := m.fs.Dialect().Parent(m.state.Path)
		if parent == m.state.Path {
			return m, nil
		}
		return m.navigate(parent, m.state.Path)

	case "r":
		if m.state.Path == "" {
			return m.navigate(m.state.Target, "")
		}
		focus := ""
		if entry, ok := m.selected(); ok {
			focus = entry.Name
		}
		return m.navigate(m.state.Path, focus)
	}

	var cmd tea.Cmd
	m.state.Table, cmd = m.state.Table.Update(msg)
	return m, cmd
}

func (m BubbleTeaModel) navigate(path, focus string) (tea.Model, tea.Cmd) {
	m.state.Target = path
	m.state.Focus = focus
	m.state.Loading = true
	m.state.Err = nil
	m.state.StatusMessage = ""
	return m, tea.Batch(m.state.Spinner.Tick, loadDir(m.ctx, m.fs, path))
}

func (m BubbleTeaModel) selected() (models.PathEntry, bool) {
	i := m.state.Table.Cursor()
	if i < 0 || i >= len(m.state.Entries) {
		return models.PathEntry{}, false
	}
	return m.state.Entries[i], true
}

func (m BubbleTeaModel) focusIndex() int {
	for i, e := range m.state.Entries {
		if e.Name == m.state.Focus {
			return i
		}
	}
	return 0
}

func (m BubbleTeaModel) rows(entries []models.PathEntry) []table.Row {
	d := m.fs.Dialect()
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		name := d.Base(e.Name)
		switch {
		case e.IsLink:
			name += "@"
		case e.IsDir():
			name += d.Separator()
		}
		rows = append(rows, table.Row{name, e.Type.String(), strconv.FormatInt(e.Size, 10)})
	}
	return rows
}

func columns(width int) []table.Column {
	nameWidth := max(width-typeColumnWidth-sizeColumnWidth-6, 10)
	return []table.Column{
		{Title: "Name", Width: nameWidth},
		{Title: "Type", Width: typeColumnWidth},
		{Title: "Size", Width: sizeColumnWidth},
	}
}

// loadDir lists path, refusing anything that is not a directory.
func loadDir(ctx context.Context, fs browsable, path string) tea.Cmd {
	return func() tea.Msg {
		info, err := fs.Info(ctx, path)
		if err != nil {
			return errMsg{path: path, err: err}
		}
		if !info.IsDir() {
			return errMsg{path: path, err: &adapter.NotDirectoryError{Path: path}}
		}
		entries, err := fs.Ls(ctx, path)
		if err != nil {
			return errMsg{path: path, err: err}
		}
		return entriesMsg{path: path, entries: entries}
	}
}
