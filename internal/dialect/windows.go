package dialect

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/Cyclone1070/shellfs/internal/content"
	"github.com/Cyclone1070/shellfs/internal/models"
)

var windowsNotFoundMarkers = []string{
	"File Not Found",
	"The system cannot find the file specified",
	"The system cannot find the path specified",
}

const windowsDirectoryHeader = "Directory of "

// 10/27/2024  11:30 AM    <DIR>          some dir
// 27.10.2024  11:30           4001 report.txt
var windowsLine = mustCompile(`^(\d{1,4}[./-]\d{1,2}[./-]\d{1,4})\s+` +
	`(\d{1,2}:\d{2}(?::\d{2})?(?:\s*[AaPp][Mm])?)\s+` +
	`(<DIR>|<SYMLINKD>|<SYMLINK>|<JUNCTION>|\d[\d,.]*)\s+(\S.*)$`)

var (
	windowsOnce    sync.Once
	windowsDialect *Dialect
)

// Windows returns the cmd.exe dialect built on dir, mkdir, del, rmdir and copy.
func Windows() *Dialect {
	windowsOnce.Do(func() {
		info := func(path, output string) []models.PathEntry {
			return []models.PathEntry{ParseWindowsInfo(path, output)}
		}
		windowsDialect = newDialect("windows", []string{"cmd", "/C"}, `\`, quoteWindows, map[Operation]Command{
			OpInfo:       {Template: "dir /a /-c {path}", Parse: info},
			OpListDir:    {Template: "dir /a /-c {path}", Parse: ParseWindowsListDir},
			OpMkdir:      {Template: "mkdir {path}", Parse: discardOutput},
			OpMakeDirs:   {Template: "if not exist {path} mkdir {path}", Parse: discardOutput},
			OpTouch:      {Template: "type nul >> {path}", Parse: discardOutput},
			OpRemoveTree: {Template: "rmdir /s /q {path}", Parse: discardOutput},
			OpRemove:     {Template: "del /f /q {path}", Parse: discardOutput},
			OpCopy:       {Template: "copy /y {path} {dest}", Parse: discardOutput},
		})
	})
	return windowsDialect
}

// ParseWindowsListDir parses "dir" output into entries, keeping the "." and
// ".." rows. Volume, summary and header lines are skipped.
func ParseWindowsListDir(_ string, output string) []models.PathEntry {
	entries := []models.PathEntry{}
	if windowsNotFound(output) {
		return entries
	}
	for _, line := range content.NonBlankLines(output) {
		if entry, ok := parseWindowsLine(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// ParseWindowsInfo derives the entry for path from "dir" output. A listing
// containing "." means path itself is a directory, as does a "Directory of"
// header with no row named after path (drive roots print no "." row).
func ParseWindowsInfo(path, output string) models.PathEntry {
	entries := ParseWindowsListDir(path, output)
	if len(entries) == 0 {
		return models.NotFoundEntry(path)
	}

	for _, e := range entries {
		if e.Name == "." && e.Type == models.Directory {
			return models.PathEntry{Name: path, Type: models.Directory}
		}
	}

	base := Windows().Base(path)
	for _, e := range entries {
		if strings.EqualFold(e.Name, base) {
			return e
		}
	}
	if strings.Contains(output, windowsDirectoryHeader) {
		return models.PathEntry{Name: path, Type: models.Directory}
	}
	return models.NotFoundEntry(path)
}

func windowsNotFound(output string) bool {
	for _, marker := range windowsNotFoundMarkers {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}

func parseWindowsLine(line string) (models.PathEntry, bool) {
	m := windowsLine.FindStringSubmatch(line)
	if m == nil {
		return models.PathEntry{}, false
	}

	name := strings.TrimSpace(m[4])
	entry := models.PathEntry{Name: name}

	switch m[3] {
	case "<DIR>":
		entry.Type = models.Directory
	case "<SYMLINKD>", "<JUNCTION>":
		entry.Type = models.Directory
		entry.IsLink = true
	case "<SYMLINK>":
		entry.Type = models.Symlink
		entry.IsLink = true
	default:
		digits := strings.NewReplacer(",", "", ".", "").Replace(m[3])
		size, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return models.PathEntry{}, false
		}
		entry.Type = models.File
		entry.Size = size
	}

	if entry.IsLink {
		if i := strings.LastIndex(name, " ["); i > 0 && strings.HasSuffix(name, "]") {
			entry.Name = name[:i]
		}
	}
	return entry, entry.Name != ""
}

func mustCompile(expr string) *regexp.Regexp {
	return regexp.MustCompile(expr)
}
