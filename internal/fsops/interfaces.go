package fsops

import (
	"context"
	"time"

	"github.com/Cyclone1070/shellfs/internal/dialect"
	"github.com/Cyclone1070/shellfs/internal/executor"
)

// commandRunner runs commands written in its own dialect.
type commandRunner interface {
	Run(ctx context.Context, command string, timeout time.Duration) (*executor.Result, error)
	Dialect() *dialect.Dialect
}
