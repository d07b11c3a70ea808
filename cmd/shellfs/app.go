package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cyclone1070/shellfs/internal/adapter"
	"github.com/Cyclone1070/shellfs/internal/config"
	"github.com/Cyclone1070/shellfs/internal/fsops"
	"github.com/Cyclone1070/shellfs/internal/logging"
	"github.com/Cyclone1070/shellfs/internal/render"
	"github.com/Cyclone1070/shellfs/internal/shell"
)

const (
	exitOK    = 0
	exitError = 1
	exitFalse = 2
)

// errAnsweredFalse marks a predicate command whose answer was false.
var errAnsweredFalse = errors.New("answered false")

type configLoader interface {
	Load() (*config.Config, error)
	LoadFile(path string) (*config.Config, error)
}

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Registry *shell.Registry
	Loader   configLoader
	Stdout   io.Writer
	Stderr   io.Writer
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	backend    string
	platform   string
	dialect    string
	host       string
	user       string
	container  string
	workDir    string
	timeout    time.Duration
	output     string
	verbose    bool
}

// app is the state built once per invocation by the root command.
type app struct {
	deps Dependencies
	opts globalOptions

	cfg      *config.Config
	logger   *zap.Logger
	sh       *shell.Shell
	fs       *adapter.ShellFileSystem
	renderer *render.Renderer
}

func run(ctx context.Context, args []string, deps Dependencies) int {
	a := &app{deps: deps}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(deps.Stdout)
	root.SetErr(deps.Stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	return exitCode(err, deps.Stderr)
}

func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errAnsweredFalse):
		return exitFalse
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}

// resolveConfig loads the dotfile (or --config), then applies flags that
// were set explicitly.
func (a *app) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.opts.configPath != "" {
		cfg, err = a.deps.Loader.LoadFile(a.opts.configPath)
	} else {
		cfg, err = a.deps.Loader.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Shell.Backend = a.opts.backend
	}
	if flags.Changed("platform") {
		cfg.Shell.Platform = a.opts.platform
	}
	if flags.Changed("dialect") {
		cfg.Shell.Dialect = a.opts.dialect
	}
	if flags.Changed("host") {
		cfg.SSH.Host = a.opts.host
	}
	if flags.Changed("user") {
		cfg.SSH.User = a.opts.user
	}
	if flags.Changed("container") {
		cfg.Docker.Container = a.opts.container
	}
	if flags.Changed("workdir") {
		cfg.Shell.WorkDir = a.opts.workDir
	}
	if flags.Changed("timeout") {
		cfg.Shell.DefaultTimeoutSeconds = int(math.Ceil(a.opts.timeout.Seconds()))
	}
	if a.opts.verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup prepares config, logging and output. Commands annotated with
// needsShell also get a connected filesystem.
func (a *app) setup(cmd *cobra.Command) error {
	format, err := render.ParseFormat(a.opts.output)
	if err != nil {
		return err
	}
	a.renderer = render.New(format, 0)

	cfg, err := a.resolveConfig(cmd)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger

	if !needsShell(cmd) {
		return nil
	}

	sh, err := shell.Open(cmd.Context(), cfg, a.deps.Registry, logger)
	if err != nil {
		return err
	}
	a.sh = sh
	a.fs = adapter.New(fsops.New(sh, cfg, logger), cfg, logger)
	a.logger.Debug("shell opened",
		zap.String("backend", cfg.Shell.Backend),
		zap.String("dialect", sh.Dialect().Name()))
	return nil
}

func needsShell(cmd *cobra.Command) bool {
	if cmd.Name() == "help" {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoShell] == "true" {
			return false
		}
	}
	return true
}

func (a *app) close() {
	if a.sh != nil {
		if err := a.sh.Close(); err != nil && a.logger != nil {
			a.logger.Warn("failed to close shell", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
