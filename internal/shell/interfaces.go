package shell

import (
	"context"
	"time"

	"github.com/Cyclone1070/shellfs/internal/executor"
)

// commandExecutor runs a command string and collects its output.
type commandExecutor interface {
	Run(ctx context.Context, command string, timeout time.Duration) (*executor.Result, error)
}
