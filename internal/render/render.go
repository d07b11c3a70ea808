package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/Cyclone1070/shellfs/internal/adapter"
	"github.com/Cyclone1070/shellfs/internal/models"
)

// Format names an output rendering for path entries.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatNames    Format = "names"
)

var formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatMarkdown, FormatNames}

// Formats returns every supported format in display order.
func Formats() []Format {
	return append([]Format(nil), formats...)
}

// ParseFormat converts a case-insensitive name into a Format.
func ParseFormat(s string) (Format, error) {
	name := Format(strings.ToLower(strings.TrimSpace(s)))
	if name == "md" {
		return FormatMarkdown, nil
	}
	for _, f := range formats {
		if f == name {
			return f, nil
		}
	}
	return "", &UnknownFormatError{Name: s}
}

const defaultMarkdownStyle = "notty"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dirStyle    = cellStyle.Foreground(lipgloss.Color("12"))
	linkStyle   = cellStyle.Foreground(lipgloss.Color("14"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func toRecords(entries []models.PathEntry) []adapter.Record {
	records := make([]adapter.Record, len(entries))
	for i, e := range entries {
		records[i] = adapter.ToRecord(e)
	}
	return records
}

// Renderer writes path entries in one Format.
type Renderer struct {
	format        Format
	width         int
	markdownStyle string
}

// New creates a Renderer. A width of zero leaves wrapping to each format's default.
func New(format Format, width int) *Renderer {
	return &Renderer{format: format, width: width, markdownStyle: defaultMarkdownStyle}
}

// WithMarkdownStyle selects the glamour style used by the markdown format
// ("notty", "dark", "light", "auto", ...).
func (r *Renderer) WithMarkdownStyle(style string) *Renderer {
	r.markdownStyle = style
	return r
}

func (r *Renderer) Format() Format {
	return r.format
}

// Render writes entries to w.
func (r *Renderer) Render(w io.Writer, entries []models.PathEntry) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toRecords(entries))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toRecords(entries)); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown:
		return r.renderMarkdown(w, entries)
	case FormatNames:
		for _, e := range entries {
			if _, err := fmt.Fprintln(w, e.Name); err != nil {
				return err
			}
		}
		return nil
	case FormatTable:
		_, err := fmt.Fprintln(w, r.table(entries).Render())
		return err
	default:
		return &UnknownFormatError{Name: string(r.format)}
	}
}

func (r *Renderer) table(entries []models.PathEntry) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("NAME", "TYPE", "SIZE", "LINK")

	for _, e := range entries {
		t.Row(e.Name, e.Type.String(), strconv.FormatInt(e.Size, 10), linkMark(e.IsLink))
	}

	t.StyleFunc(func(rowIdx, col int) lipgloss.Style {
		if rowIdx == table.HeaderRow {
			return headerStyle
		}
		if rowIdx < 0 || rowIdx >= len(entries) || col != 0 {
			return cellStyle
		}
		switch {
		case entries[rowIdx].IsLink:
			return linkStyle
		case entries[rowIdx].IsDir():
			return dirStyle
		}
		return cellStyle
	})

	if r.width > 0 {
		t.Width(r.width)
	}
	return t
}

func (r *Renderer) renderMarkdown(w io.Writer, entries []models.PathEntry) error {
	opts := []glamour.TermRendererOption{glamour.WithEmoji()}
	if r.markdownStyle == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.markdownStyle))
	}
	if r.width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.width))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := tr.Render(MarkdownTable(entries))
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// MarkdownTable returns the raw markdown table for entries.
func MarkdownTable(entries []models.PathEntry) string {
	var sb strings.Builder
	sb.WriteString("| Name | Type | Size | Link |\n")
	sb.WriteString("|------|------|-----:|:----:|\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "| %s | %s | %d | %s |\n", escapeCell(e.Name), e.Type, e.Size, linkMark(e.IsLink))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.NewReplacer(`\`, `\\`, "|", `\|`).Replace(s)
}

func linkMark(isLink bool) string {
	if isLink {
		return "yes"
	}
	return ""
}
