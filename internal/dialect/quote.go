package dialect

import (
	"regexp"
	"strings"
)

var unixSafeArg = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./~-]+$`)

// quoteUnix quotes arg for a POSIX shell. Arguments made only of safe
// characters are left as they are so tilde expansion keeps working.
func quoteUnix(arg string) string {
	if arg == "" {
		return "''"
	}
	if strings.HasPrefix(arg, "-") {
		arg = "./" + arg
	}
	if unixSafeArg.MatchString(arg) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'"'"'`) + "'"
}

// quoteWindows quotes arg for cmd.exe. Double quotes cannot be escaped
// inside a quoted cmd argument and are dropped.
func quoteWindows(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsAny(arg, " \t&|<>^()%!,;=\"") {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, "") + `"`
}
