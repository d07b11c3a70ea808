// Package shell binds a command executor to a command dialect and keeps
// the registry of local platform shells.
package shell

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Cyclone1070/shellfs/internal/dialect"
	"github.com/Cyclone1070/shellfs/internal/executor"
)

// Shell runs commands for one dialect. Executor errors propagate unchanged.
type Shell struct {
	executor commandExecutor
	dialect  *dialect.Dialect
	logger   *zap.Logger
}

// New creates a Shell. A nil logger discards command logs.
func New(exec commandExecutor, d *dialect.Dialect, logger *zap.Logger) *Shell {
	if exec == nil {
		panic("executor is required")
	}
	if d == nil {
		panic("dialect is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{executor: exec, dialect: d, logger: logger.Named("shell")}
}

// Dialect returns the dialect commands must be written in.
func (s *Shell) Dialect() *dialect.Dialect {
	return s.dialect
}

// Run executes command and returns its captured output.
func (s *Shell) Run(ctx context.Context, command string, timeout time.Duration) (*executor.Result, error) {
	start := time.Now()
	res, err := s.executor.Run(ctx, command, timeout)

	fields := []zap.Field{
		zap.String("dialect", s.dialect.Name()),
		zap.String("command", command),
		zap.Duration("elapsed", time.Since(start)),
	}
	if res != nil {
		fields = append(fields, zap.Int("exit_code", res.ExitCode), zap.Bool("truncated", res.Truncated))
	}
	if err != nil {
		s.logger.Debug("command failed", append(fields, zap.Error(err))...)
		return res, err
	}
	s.logger.Debug("command finished", fields...)
	return res, nil
}

// Close releases executor resources such as an SSH connection.
func (s *Shell) Close() error {
	if c, ok := s.executor.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
