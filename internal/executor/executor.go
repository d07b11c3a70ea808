// Package executor runs shell command strings locally, over SSH or inside
// a Docker container, and returns their captured output.
package executor

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/Cyclone1070/shellfs/internal/config"
)

// Result represents the outcome of a command execution.
// A non-zero ExitCode is not an error unless strict mode is enabled.
// Truncated streams hold whole lines only; Withheld counts the bytes of
// cut-off lines that were dropped.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool

	StdoutTruncated bool
	StderrTruncated bool
	Withheld        int
}

const outputWaitDelay = time.Second

// exitPermissionDenied is the POSIX shell status for "found but not executable".
const exitPermissionDenied = 126

// settings are the execution limits shared by every executor.
type settings struct {
	defaultTimeout time.Duration
	gracePeriod    time.Duration
	maxOutput      int64
	strict         bool
}

func settingsFrom(cfg *config.Config) settings {
	return settings{
		defaultTimeout: time.Duration(cfg.Shell.DefaultTimeoutSeconds) * time.Second,
		gracePeriod:    time.Duration(cfg.Shell.GracefulShutdownMs) * time.Millisecond,
		maxOutput:      cfg.Shell.MaxCommandOutputSize,
		strict:         cfg.Shell.Strict,
	}
}

func (s settings) timeout(requested time.Duration) time.Duration {
	if requested > 0 {
		return requested
	}
	return s.defaultTimeout
}

// finish applies the exit status policy to a completed command.
func (s settings) finish(command string, res *Result) (*Result, error) {
	if res.ExitCode == exitPermissionDenied {
		return res, &PermissionError{Command: command}
	}
	if s.strict && res.ExitCode != 0 {
		return res, &ExitError{Command: command, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res, nil
}

// LocalExecutor runs commands through a local interpreter using os/exec.
type LocalExecutor struct {
	settings
	interpreter []string
	env         []string
	dir         string
}

// NewLocalExecutor creates a LocalExecutor. interpreter is the argv prefix
// that receives the command string, e.g. ["sh", "-c"]. A nil env inherits
// the current process environment.
func NewLocalExecutor(cfg *config.Config, interpreter []string, env []string) *LocalExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	if len(interpreter) == 0 {
		panic("interpreter is required")
	}
	return &LocalExecutor{
		settings:    settingsFrom(cfg),
		interpreter: append([]string(nil), interpreter...),
		env:         env,
	}
}

// WithDir returns a copy of the executor that runs commands in dir.
func (e *LocalExecutor) WithDir(dir string) *LocalExecutor {
	clone := *e
	clone.dir = dir
	return &clone
}

// Run executes command through the interpreter. A zero timeout uses the
// configured default.
func (e *LocalExecutor) Run(ctx context.Context, command string, timeout time.Duration) (*Result, error) {
	if strings.TrimSpace(command) == "" {
		return nil, &EmptyCommandError{}
	}
	argv := append(append([]string(nil), e.interpreter...), command)
	return e.run(ctx, argv, command, timeout)
}

// RunArgv executes argv directly without an interpreter.
func (e *LocalExecutor) RunArgv(ctx context.Context, argv []string, timeout time.Duration) (*Result, error) {
	if len(argv) == 0 {
		return nil, &EmptyCommandError{}
	}
	return e.run(ctx, argv, strings.Join(argv, " "), timeout)
}

func (e *LocalExecutor) run(ctx context.Context, argv []string, display string, timeout time.Duration) (*Result, error) {
	timeout = e.timeout(timeout)

	out := newOutputs(e.maxOutput)

	// Not CommandContext: timeouts get an interrupt and a grace period first.
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = e.dir
	cmd.Env = e.env
	cmd.Stdin = nil
	cmd.Stdout = out.stdout
	cmd.Stderr = out.stderr
	// Orphaned children may hold the pipes open after the shell exits.
	cmd.WaitDelay = outputWaitDelay

	if err := cmd.Start(); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, &PermissionError{Command: display, Cause: err}
		}
		return nil, &CommandError{Cmd: argv[0], Cause: err, Stage: "start"}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var waitErr, execErr error
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		execErr = ctx.Err()
	case <-timer.C:
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-done:
		case <-time.After(e.gracePeriod):
			_ = cmd.Process.Kill()
			<-done
		}
		execErr = &TimeoutError{Command: display, Duration: timeout}
	}

	code := -1
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	}
	res := out.result(code)
	if execErr != nil {
		res.ExitCode = -1
		return res, execErr
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) && !errors.Is(waitErr, exec.ErrWaitDelay) {
		return res, &CommandError{Cmd: argv[0], Cause: waitErr, Stage: "execution"}
	}
	return e.finish(display, res)
}
