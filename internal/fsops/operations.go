// Package fsops answers filesystem questions and performs filesystem changes
// by running dialect commands through a shell and parsing their output.
package fsops

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Cyclone1070/shellfs/internal/config"
	"github.com/Cyclone1070/shellfs/internal/dialect"
	"github.com/Cyclone1070/shellfs/internal/executor"
	"github.com/Cyclone1070/shellfs/internal/models"
)

// Operations is the filesystem facade over one shell. It holds no state
// between calls and is safe for concurrent use if the shell is.
type Operations struct {
	runner    commandRunner
	timeout   time.Duration
	maxOutput int64
	logger    *zap.Logger
}

// New creates Operations over runner using the configured per-call timeout.
func New(runner commandRunner, cfg *config.Config, logger *zap.Logger) *Operations {
	if runner == nil {
		panic("runner is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Operations{
		runner:  runner,
		timeout:   time.Duration(cfg.Shell.DefaultTimeoutSeconds) * time.Second,
		maxOutput: cfg.Shell.MaxCommandOutputSize,
		logger:    logger.Named("fsops"),
	}
}

// Dialect returns the dialect of the underlying shell.
func (o *Operations) Dialect() *dialect.Dialect {
	return o.runner.Dialect()
}

// Info returns the entry for path. A missing path is not an error: it
// yields an entry of type NotFound. Truncated output is an
// *OutputTruncatedError.
func (o *Operations) Info(ctx context.Context, path string) (models.PathEntry, error) {
	output, err := o.query(ctx, dialect.OpInfo, path)
	if err != nil {
		return models.PathEntry{}, err
	}
	entry := o.runner.Dialect().ParseInfo(path, output)
	if entry.IsNotFound() && strings.TrimSpace(output) != "" {
		o.logger.Debug("no entry recognised", zap.String("path", path), zap.String("output", firstLine(output)))
	}
	return entry, nil
}

// ListDir returns the entries listed for path in output order. A missing
// path or unusable output yields an empty slice. When the listing hit the
// output cap, the entries from its complete lines come back together with
// an *OutputTruncatedError.
func (o *Operations) ListDir(ctx context.Context, path string) ([]models.PathEntry, error) {
	output, err := o.query(ctx, dialect.OpListDir, path)
	var truncated *OutputTruncatedError
	if err != nil && !errors.As(err, &truncated) {
		return nil, err
	}
	return o.runner.Dialect().ParseListDir(path, output), err
}

func (o *Operations) Exists(ctx context.Context, path string) (bool, error) {
	entry, err := o.Info(ctx, path)
	return entry.Exists(), err
}

func (o *Operations) IsFile(ctx context.Context, path string) (bool, error) {
	entry, err := o.Info(ctx, path)
	return entry.IsFile(), err
}

func (o *Operations) IsDir(ctx context.Context, path string) (bool, error) {
	entry, err := o.Info(ctx, path)
	return entry.IsDir(), err
}

// Mkdir creates a single directory.
func (o *Operations) Mkdir(ctx context.Context, path string) error {
	return o.mutate(ctx, dialect.OpMkdir, path, nil)
}

// MakeDirs creates a directory and any missing parents.
func (o *Operations) MakeDirs(ctx context.Context, path string) error {
	return o.mutate(ctx, dialect.OpMakeDirs, path, nil)
}

// Touch creates an empty file or updates the timestamp of an existing one.
func (o *Operations) Touch(ctx context.Context, path string) error {
	return o.mutate(ctx, dialect.OpTouch, path, nil)
}

// Remove deletes a file.
func (o *Operations) Remove(ctx context.Context, path string) error {
	return o.mutate(ctx, dialect.OpRemove, path, nil)
}

// RemoveTree deletes a directory and everything below it.
func (o *Operations) RemoveTree(ctx context.Context, path string) error {
	return o.mutate(ctx, dialect.OpRemoveTree, path, nil)
}

// CopyFile copies src to dst.
func (o *Operations) CopyFile(ctx context.Context, src, dst string) error {
	return o.mutate(ctx, dialect.OpCopy, src, dialect.Params{"dest": dst})
}

// query runs a read-only command and returns the text to parse. Non-zero
// exit statuses are data here: stdout is preferred and stderr is used when
// stdout is blank, since GNU ls reports missing paths on stderr. If the
// chosen stream was cut by the output cap, its whole lines are returned
// with an *OutputTruncatedError.
func (o *Operations) query(ctx context.Context, op dialect.Operation, path string) (string, error) {
	command, err := o.runner.Dialect().MakeCommand(op, path, nil)
	if err != nil {
		return "", err
	}

	res, err := o.runner.Run(ctx, command, o.timeout)
	var exitErr *executor.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return "", err
	}
	if res == nil {
		if exitErr != nil {
			return exitErr.Stderr, nil
		}
		return "", nil
	}

	output, truncated := res.Stdout, res.StdoutTruncated
	if strings.TrimSpace(output) == "" && !truncated {
		output, truncated = res.Stderr, res.StderrTruncated
	}
	if truncated {
		o.logger.Warn("output truncated",
			zap.Stringer("op", op),
			zap.String("path", path),
			zap.Int64("limit", o.maxOutput),
			zap.Int("withheld_bytes", res.Withheld))
		return output, &OutputTruncatedError{Op: op, Path: path, Limit: o.maxOutput}
	}
	return output, nil
}

func (o *Operations) mutate(ctx context.Context, op dialect.Operation, path string, params dialect.Params) error {
	command, err := o.runner.Dialect().MakeCommand(op, path, params)
	if err != nil {
		return err
	}

	res, err := o.runner.Run(ctx, command, o.timeout)
	var exitErr *executor.ExitError
	switch {
	case errors.As(err, &exitErr):
		return &CommandFailedError{Op: op, Path: path, Command: command, ExitCode: exitErr.ExitCode, Stderr: exitErr.Stderr}
	case err != nil:
		return err
	case res.ExitCode != 0:
		return &CommandFailedError{Op: op, Path: path, Command: command, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	o.logger.Info("filesystem changed", zap.Stringer("op", op), zap.String("path", path))
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
