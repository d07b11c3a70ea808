package executor

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
)

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = errors.New("command timeout")

// TimeoutError is returned when a command exceeds its timeout. The partial
// Result collected before the deadline is returned alongside it.
type TimeoutError struct {
	Command  string
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %q timed out after %v", e.Command, e.Duration)
}

func (e *TimeoutError) Timeout() bool {
	return true
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// PermissionError is returned when the executing identity may not run the
// command: the process could not be started, the remote rejected our
// credentials, or the shell reported exit status 126.
type PermissionError struct {
	Command string
	Cause   error
}

func (e *PermissionError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("permission denied running %q", e.Command)
	}
	return fmt.Sprintf("permission denied running %q: %v", e.Command, e.Cause)
}

func (e *PermissionError) Unwrap() error { return e.Cause }

func (e *PermissionError) Is(target error) bool {
	return target == fs.ErrPermission
}

func (e *PermissionError) PermissionDenied() bool {
	return true
}

// ExitError is returned in strict mode when a command exits non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// CommandError represents generic command execution failures (start, session, execution).
type CommandError struct {
	Cmd   string
	Cause error
	Stage string // "start", "connect", "session", "execution"
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed at %s: %v", e.Cmd, e.Stage, e.Cause)
}

func (e *CommandError) Unwrap() error { return e.Cause }

// EmptyCommandError is returned when a blank command is submitted.
type EmptyCommandError struct{}

func (e *EmptyCommandError) Error() string {
	return "command cannot be empty"
}

func (e *EmptyCommandError) InvalidInput() bool {
	return true
}

// EnvFileError is returned when a .env file cannot be read or parsed.
type EnvFileError struct {
	Path  string
	Cause error
}

func (e *EnvFileError) Error() string {
	return fmt.Sprintf("failed to load env file %s: %v", e.Path, e.Cause)
}

func (e *EnvFileError) Unwrap() error { return e.Cause }

func (e *EnvFileError) IOError() bool {
	return true
}

// SSHConfigError is returned when SSH settings cannot produce a client config.
type SSHConfigError struct {
	Field  string
	Reason string
	Cause  error
}

func (e *SSHConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ssh.%s: %s: %v", e.Field, e.Reason, e.Cause)
	}
	return fmt.Sprintf("ssh.%s: %s", e.Field, e.Reason)
}

func (e *SSHConfigError) Unwrap() error { return e.Cause }

func (e *SSHConfigError) InvalidInput() bool {
	return true
}

// DockerNotReadyError is returned when a container never reports running.
type DockerNotReadyError struct {
	Container string
	Attempts  int
	Cause     error
}

func (e *DockerNotReadyError) Error() string {
	msg := fmt.Sprintf("container %s not running after %d attempts", e.Container, e.Attempts)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DockerNotReadyError) Unwrap() error { return e.Cause }
