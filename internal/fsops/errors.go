package fsops

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/shellfs/internal/dialect"
)

// CommandFailedError is returned when a mutating command exits non-zero.
type CommandFailedError struct {
	Op       dialect.Operation
	Path     string
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandFailedError) Error() string {
	msg := fmt.Sprintf("%s %s failed with exit code %d", e.Op, e.Path, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// OutputTruncatedError is returned by queries whose output reached the
// configured size cap. The entries parsed from complete lines are returned
// alongside it; a line cut short by the cap is never parsed.
type OutputTruncatedError struct {
	Op    dialect.Operation
	Path  string
	Limit int64
}

func (e *OutputTruncatedError) Error() string {
	return fmt.Sprintf("%s %s: output exceeded %d bytes and was truncated", e.Op, e.Path, e.Limit)
}

func (e *OutputTruncatedError) IOError() bool {
	return true
}
