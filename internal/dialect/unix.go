package dialect

import (
	"strconv"
	"strings"
	"sync"

	"github.com/Cyclone1070/shellfs/internal/content"
	"github.com/Cyclone1070/shellfs/internal/models"
)

const unixNotFoundMarker = "No such file or directory"

// <mode> <links> <owner> <group> [<major>,] <size>
const unixHead = `^(\S+)\s+(\d+)\s+(\S+)\s+(\S+)\s+(?:(\d+),\s*)?(\d+)\s+`

// Timestamp shapes printed by common ls implementations: epoch seconds,
// ISO variants (--time-style), "Oct 27 11:30" and "27 Oct 2024".
const unixTimestamp = `\d{9,}` +
	`|\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?(?:\s*(?:[+-]\d{2}:?\d{2}|Z))?)?` +
	`|[A-Za-z]{3}\s+\d{1,2}\s+(?:\d{1,2}:\d{2}|\d{4})` +
	`|\d{1,2}\s+[A-Za-z]{3}\s+(?:\d{1,2}:\d{2}|\d{4})`

var (
	unixKnownTimestampLine  = mustCompile(unixHead + `(` + unixTimestamp + `)\s+(\S.*)$`)
	unixOpaqueTimestampLine = mustCompile(unixHead + `(.+?)\s+(\S+)$`)
)

var (
	unixOnce    sync.Once
	unixDialect *Dialect
)

// Unix returns the POSIX dialect built on ls, mkdir, touch, rm and cp.
func Unix() *Dialect {
	unixOnce.Do(func() {
		info := func(path, output string) []models.PathEntry {
			return []models.PathEntry{ParseUnixInfo(path, output)}
		}
		unixDialect = newDialect("unix", []string{"sh", "-c"}, "/", quoteUnix, map[Operation]Command{
			OpInfo:       {Template: "ls -ladL {path}", Parse: info},
			OpListDir:    {Template: "ls -laF {path}", Parse: ParseUnixListDir},
			OpMkdir:      {Template: "mkdir {path}", Parse: discardOutput},
			OpMakeDirs:   {Template: "mkdir -p {path}", Parse: discardOutput},
			OpTouch:      {Template: "touch {path}", Parse: discardOutput},
			OpRemoveTree: {Template: "rm -rf {path}", Parse: discardOutput},
			OpRemove:     {Template: "rm -f {path}", Parse: discardOutput},
			OpCopy:       {Template: "cp {path} {dest}", Parse: discardOutput},
		})
	})
	return unixDialect
}

// FileTypeFromMode classifies an ls mode token by its first character.
// Block and character devices, pipes, sockets, whiteouts and door files all
// classify as File.
func FileTypeFromMode(mode string) models.PathType {
	if mode == "" {
		return models.NotFound
	}
	switch mode[0] {
	case 'd':
		return models.Directory
	case 'l':
		return models.Symlink
	default:
		return models.File
	}
}

// ParseUnixInfo parses a single "ls -l" style line. Output containing the
// not-found marker, or output matching no known layout, yields the NotFound
// sentinel named after path.
func ParseUnixInfo(path, output string) models.PathEntry {
	text := strings.TrimSpace(output)
	if strings.Contains(text, unixNotFoundMarker) {
		return models.NotFoundEntry(path)
	}
	entry, _, ok := parseUnixLine(text)
	if !ok {
		return models.NotFoundEntry(path)
	}
	return entry
}

// ParseUnixListDir parses "ls -laF" output. Header lines such as "total 16"
// and lines that do not parse are skipped; order is preserved.
func ParseUnixListDir(_ string, output string) []models.PathEntry {
	entries := []models.PathEntry{}
	for _, text := range content.NonBlankLines(output) {
		if strings.Contains(text, unixNotFoundMarker) {
			continue
		}
		entry, mode, ok := parseUnixLine(text)
		if !ok || !entry.Exists() {
			continue
		}
		entry.Name = stripClassifySuffix(entry.Name, mode)
		entries = append(entries, entry)
	}
	return entries
}

func parseUnixLine(line string) (models.PathEntry, string, bool) {
	if line == "" || strings.ContainsAny(line, "\r\n") {
		return models.PathEntry{}, "", false
	}

	// Any leading word is a mode; the numeric link and size columns are
	// what rule out headers such as "total 16".
	mode := line
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		mode = line[:i]
	}
	if mode == "" {
		return models.PathEntry{}, "", false
	}
	if mode[0] == 'l' {
		if i := strings.Index(line, " -> "); i >= 0 {
			line = strings.TrimRight(line[:i], " \t")
		}
	}

	m := unixKnownTimestampLine.FindStringSubmatch(line)
	if m == nil {
		m = unixOpaqueTimestampLine.FindStringSubmatch(line)
	}
	if m == nil {
		return models.PathEntry{}, "", false
	}

	var size int64
	if m[5] == "" {
		n, err := strconv.ParseInt(m[6], 10, 64)
		if err != nil {
			return models.PathEntry{}, "", false
		}
		size = n
	}

	name := strings.TrimSpace(m[8])
	if name == "" {
		return models.PathEntry{}, "", false
	}

	return models.PathEntry{
		Name:   name,
		Type:   FileTypeFromMode(mode),
		Size:   size,
		IsLink: mode[0] == 'l',
	}, mode, true
}

// stripClassifySuffix removes the indicator appended by "ls -F" when it
// agrees with the entry's mode.
func stripClassifySuffix(name, mode string) string {
	if len(name) < 2 || mode == "" {
		return name
	}
	last := name[len(name)-1]
	strip := false
	switch mode[0] {
	case 'd':
		strip = last == '/'
	case 'l':
		strip = last == '@'
	case 'p':
		strip = last == '|'
	case 's':
		strip = last == '='
	case 'w':
		strip = last == '%'
	case '-':
		strip = last == '*' && strings.ContainsAny(mode[1:], "xst")
	}
	if strip {
		return name[:len(name)-1]
	}
	return name
}
