package shell

import (
	"context"

	"go.uber.org/zap"

	"github.com/Cyclone1070/shellfs/internal/config"
	"github.com/Cyclone1070/shellfs/internal/dialect"
	"github.com/Cyclone1070/shellfs/internal/executor"
)

// Open builds the Shell selected by cfg.Shell.Backend. Local shells come
// from registry; SSH and Docker shells use cfg.Shell.Dialect.
// Callers should Close the returned Shell.
func Open(ctx context.Context, cfg *config.Config, registry *Registry, logger *zap.Logger) (*Shell, error) {
	switch cfg.Shell.Backend {
	case "", "local":
		return registry.ConstructDefault(cfg, logger)
	case "ssh":
		d, env, err := remoteSetup(cfg)
		if err != nil {
			return nil, err
		}
		exec, err := executor.DialSSH(ctx, cfg, env)
		if err != nil {
			return nil, err
		}
		return New(exec, d, logger), nil
	case "docker":
		d, env, err := remoteSetup(cfg)
		if err != nil {
			return nil, err
		}
		// The docker CLI itself runs on this machine.
		host := executor.NewLocalExecutor(cfg, dialect.Unix().Interpreter(), nil)
		return New(executor.NewDockerExecutor(cfg, host, d.Interpreter(), env), d, logger), nil
	default:
		return nil, &UnknownBackendError{Backend: cfg.Shell.Backend}
	}
}

func remoteSetup(cfg *config.Config) (*dialect.Dialect, map[string]string, error) {
	d, err := dialect.ByName(cfg.Shell.Dialect)
	if err != nil {
		return nil, nil, err
	}
	env, err := executor.LoadEnvFiles(cfg.Shell.EnvFiles, cfg.Shell.Env)
	if err != nil {
		return nil, nil, err
	}
	return d, env, nil
}
