package executor

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Cyclone1070/shellfs/internal/config"
)

// argvRunner is the subset of LocalExecutor the Docker executor drives.
type argvRunner interface {
	RunArgv(ctx context.Context, argv []string, timeout time.Duration) (*Result, error)
}

// DockerExecutor runs commands inside a running container with
// "docker exec <container> <interpreter> <command>".
type DockerExecutor struct {
	settings
	runner      argvRunner
	binary      string
	container   string
	interpreter []string
	env         map[string]string

	retryAttempts int
	retryInterval time.Duration
	autoStart     bool
	startCommand  []string

	mu    sync.Mutex
	ready bool
}

// NewDockerExecutor creates a DockerExecutor that drives the docker CLI
// through runner. env is passed to every exec with -e.
func NewDockerExecutor(cfg *config.Config, runner argvRunner, interpreter []string, env map[string]string) *DockerExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	if runner == nil {
		panic("runner is required")
	}
	if len(interpreter) == 0 {
		panic("interpreter is required")
	}
	return &DockerExecutor{
		settings:      settingsFrom(cfg),
		runner:        runner,
		binary:        cfg.Docker.Binary,
		container:     cfg.Docker.Container,
		interpreter:   append([]string(nil), interpreter...),
		env:           env,
		retryAttempts: cfg.Docker.RetryAttempts,
		retryInterval: time.Duration(cfg.Docker.RetryIntervalMs) * time.Millisecond,
		autoStart:     cfg.Docker.AutoStart,
		startCommand:  cfg.Docker.StartCommand,
	}
}

// Run executes command inside the container, checking readiness first.
func (d *DockerExecutor) Run(ctx context.Context, command string, timeout time.Duration) (*Result, error) {
	if strings.TrimSpace(command) == "" {
		return nil, &EmptyCommandError{}
	}
	if err := d.EnsureReady(ctx); err != nil {
		return nil, err
	}

	argv := []string{d.binary, "exec"}
	for _, key := range sortedKeys(d.env) {
		argv = append(argv, "-e", key+"="+d.env[key])
	}
	argv = append(argv, d.container)
	argv = append(argv, d.interpreter...)
	argv = append(argv, command)

	res, err := d.runner.RunArgv(ctx, argv, d.timeout(timeout))
	if err != nil {
		return res, err
	}
	return d.finish(command, res)
}

// EnsureReady checks that the container is running. With auto-start enabled
// it starts the container and polls up to the configured retry count.
// A successful check is remembered for the executor's lifetime.
func (d *DockerExecutor) EnsureReady(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ready {
		return nil
	}

	running, checkErr := d.running(ctx)
	if running {
		d.ready = true
		return nil
	}
	if !d.autoStart {
		return &DockerNotReadyError{Container: d.container, Attempts: 1, Cause: checkErr}
	}

	start := d.startCommand
	if len(start) == 0 {
		start = []string{d.binary, "start", d.container}
	}
	if _, err := d.runner.RunArgv(ctx, start, d.defaultTimeout); err != nil {
		return err
	}

	ticker := time.NewTicker(d.retryInterval)
	defer ticker.Stop()

	for range d.retryAttempts {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if running, checkErr = d.running(ctx); running {
				d.ready = true
				return nil
			}
		}
	}
	return &DockerNotReadyError{Container: d.container, Attempts: d.retryAttempts + 1, Cause: checkErr}
}

func (d *DockerExecutor) running(ctx context.Context) (bool, error) {
	argv := []string{d.binary, "inspect", "-f", "{{.State.Running}}", d.container}
	res, err := d.runner.RunArgv(ctx, argv, d.defaultTimeout)
	if err != nil {
		return false, err
	}
	return res.ExitCode == 0 && strings.TrimSpace(res.Stdout) == "true", nil
}
