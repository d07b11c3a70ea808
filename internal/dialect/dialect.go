// Package dialect maps abstract filesystem operations to shell command
// strings and parses the resulting text output into path entries.
//
// Parsing is total: output that does not match a dialect's grammar yields a
// NotFound entry instead of an error. A missing path and an unrecognised
// output format are therefore indistinguishable to callers; this is an
// accepted limitation of scraping shell output.
package dialect

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Cyclone1070/shellfs/internal/models"
)

// ParseFunc turns raw command output for path into entries. Info parsers
// return exactly one entry (possibly the NotFound sentinel); listing parsers
// return the existing entries in output order; mutating operations return nil.
type ParseFunc func(path, output string) []models.PathEntry

// Command pairs a command template with the parser for its output.
// Templates reference {path} and operation-specific parameters such as {dest}.
type Command struct {
	Template string
	Parse    ParseFunc
}

// Params carries operation-specific template values.
type Params map[string]string

// Dialect is an immutable operation table for one shell family.
type Dialect struct {
	name        string
	interpreter []string
	separator   string
	quote       func(string) string
	commands    map[Operation]Command
}

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

func newDialect(name string, interpreter []string, separator string, quote func(string) string, commands map[Operation]Command) *Dialect {
	table := make(map[Operation]Command, len(commands))
	for op, cmd := range commands {
		table[op] = cmd
	}
	return &Dialect{
		name:        name,
		interpreter: append([]string(nil), interpreter...),
		separator:   separator,
		quote:       quote,
		commands:    table,
	}
}

// Definition describes a dialect built outside this package, for instance
// a platform that only supports a subset of operations.
type Definition struct {
	Name        string
	Interpreter []string
	Separator   string
	// Quote defaults to POSIX shell quoting.
	Quote    func(string) string
	Commands map[Operation]Command
}

// NewDialect builds a dialect from def. Operations missing from
// def.Commands fail at lookup time with an UnknownOperationError.
func NewDialect(def Definition) (*Dialect, error) {
	switch {
	case def.Name == "":
		return nil, &InvalidDefinitionError{Reason: "name is required"}
	case len(def.Interpreter) == 0:
		return nil, &InvalidDefinitionError{Name: def.Name, Reason: "interpreter is required"}
	}
	for op, cmd := range def.Commands {
		if op == OpUnknown || cmd.Template == "" {
			return nil, &InvalidDefinitionError{Name: def.Name, Reason: "empty template for " + op.String()}
		}
	}
	separator := def.Separator
	if separator == "" {
		separator = "/"
	}
	quote := def.Quote
	if quote == nil {
		quote = quoteUnix
	}
	return newDialect(def.Name, def.Interpreter, separator, quote, def.Commands), nil
}

// Name returns the dialect name ("unix" or "windows").
func (d *Dialect) Name() string {
	return d.name
}

// Interpreter returns the argv prefix that runs a command string,
// e.g. ["sh", "-c"].
func (d *Dialect) Interpreter() []string {
	return append([]string(nil), d.interpreter...)
}

// Separator returns the path separator used by Join and Parent.
func (d *Dialect) Separator() string {
	return d.separator
}

// Quote quotes a single argument for this dialect's shell.
func (d *Dialect) Quote(arg string) string {
	return d.quote(arg)
}

// Lookup returns the command registered for op.
func (d *Dialect) Lookup(op Operation) (Command, error) {
	cmd, ok := d.commands[op]
	if !ok || op == OpUnknown {
		return Command{}, &UnknownOperationError{Dialect: d.name, Operation: op}
	}
	return cmd, nil
}

// Validate checks that every operation resolves to a template and parser.
func (d *Dialect) Validate() error {
	var errs []error
	for _, op := range Operations() {
		cmd, err := d.Lookup(op)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if cmd.Template == "" || cmd.Parse == nil {
			errs = append(errs, &UnknownOperationError{Dialect: d.name, Operation: op})
		}
	}
	return errors.Join(errs...)
}

// MakeCommand substitutes path and params into the template for op.
// Every substituted value is quoted for the dialect's shell.
func (d *Dialect) MakeCommand(op Operation, path string, params Params) (string, error) {
	cmd, err := d.Lookup(op)
	if err != nil {
		return "", err
	}

	var missing string
	command := placeholderPattern.ReplaceAllStringFunc(cmd.Template, func(placeholder string) string {
		key := placeholder[1 : len(placeholder)-1]
		if key == "path" {
			return d.quote(path)
		}
		value, ok := params[key]
		if !ok {
			if missing == "" {
				missing = key
			}
			return placeholder
		}
		return d.quote(value)
	})
	if missing != "" {
		return "", &MissingParamError{Operation: op, Param: missing}
	}
	return command, nil
}

// ParseInfo parses the output of the info command for path.
// It never fails: unrecognised output yields the NotFound sentinel.
func (d *Dialect) ParseInfo(path, output string) models.PathEntry {
	cmd, err := d.Lookup(OpInfo)
	if err != nil || cmd.Parse == nil {
		return models.NotFoundEntry(path)
	}
	entries := cmd.Parse(path, output)
	if len(entries) == 0 {
		return models.NotFoundEntry(path)
	}
	return entries[0]
}

// ParseListDir parses the output of the listing command for path.
func (d *Dialect) ParseListDir(path, output string) []models.PathEntry {
	cmd, err := d.Lookup(OpListDir)
	if err != nil || cmd.Parse == nil {
		return []models.PathEntry{}
	}
	entries := cmd.Parse(path, output)
	if entries == nil {
		return []models.PathEntry{}
	}
	return entries
}

// Join appends name to dir using the dialect's separator.
func (d *Dialect) Join(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	if strings.HasSuffix(dir, d.separator) || strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + d.separator + name
}

// Parent returns the lexical parent of path. The parent of a root is the root.
func (d *Dialect) Parent(path string) string {
	seps := d.separator
	if seps != "/" {
		seps += "/"
	}

	trimmed := strings.TrimRight(path, seps)
	if trimmed == "" {
		if path == "" {
			return "."
		}
		return path[:1]
	}
	if strings.HasSuffix(trimmed, ":") {
		return trimmed + d.separator
	}

	i := strings.LastIndexAny(trimmed, seps)
	switch {
	case i < 0:
		return "."
	case i == 0:
		return trimmed[:1]
	case trimmed[i-1] == ':':
		return trimmed[:i+1]
	default:
		return trimmed[:i]
	}
}

// Base returns the last element of path.
func (d *Dialect) Base(path string) string {
	seps := d.separator
	if seps != "/" {
		seps += "/"
	}
	trimmed := strings.TrimRight(path, seps)
	if trimmed == "" {
		return path
	}
	if i := strings.LastIndexAny(trimmed, seps); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// ByName returns the built-in dialect with the given name.
func ByName(name string) (*Dialect, error) {
	switch strings.ToLower(name) {
	case "", "unix", "posix", "sh":
		return Unix(), nil
	case "windows", "cmd":
		return Windows(), nil
	default:
		return nil, &UnknownDialectError{Name: name}
	}
}

func discardOutput(string, string) []models.PathEntry {
	return nil
}
