package shell

import (
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Cyclone1070/shellfs/internal/config"
	"github.com/Cyclone1070/shellfs/internal/dialect"
	"github.com/Cyclone1070/shellfs/internal/executor"
)

// Constructor builds a Shell for one platform.
type Constructor func(cfg *config.Config, logger *zap.Logger) (*Shell, error)

// unixPlatforms are the GOOS values (plus historical aliases) served by the
// POSIX dialect.
var unixPlatforms = []string{
	"darwin", "linux", "aix", "cygwin", "freebsd", "netbsd",
	"openbsd", "dragonfly", "solaris", "illumos",
}

var windowsPlatforms = []string{"windows", "win32"}

// Registry maps platform identifiers to shell constructors.
// It is populated once at startup and read concurrently afterwards.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// DefaultRegistry returns a registry with local shells for every supported platform.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range unixPlatforms {
		r.Register(p, LocalUnix)
	}
	for _, p := range windowsPlatforms {
		r.Register(p, LocalWindows)
	}
	return r
}

// Register associates platform with c, replacing any earlier entry.
func (r *Registry) Register(platform string, c Constructor) {
	if c == nil {
		panic("constructor is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[normalizePlatform(platform)] = c
}

// Resolve returns the constructor registered for platform.
func (r *Registry) Resolve(platform string) (Constructor, error) {
	r.mu.RLock()
	c, ok := r.constructors[normalizePlatform(platform)]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownPlatformError{Platform: platform, Known: r.Platforms()}
	}
	return c, nil
}

// Construct builds the shell registered for platform.
func (r *Registry) Construct(platform string, cfg *config.Config, logger *zap.Logger) (*Shell, error) {
	c, err := r.Resolve(platform)
	if err != nil {
		return nil, err
	}
	return c(cfg, logger)
}

// ConstructDefault builds the shell for cfg.Shell.Platform, or for the
// running OS when no platform is configured.
func (r *Registry) ConstructDefault(cfg *config.Config, logger *zap.Logger) (*Shell, error) {
	platform := cfg.Shell.Platform
	if platform == "" {
		platform = runtime.GOOS
	}
	return r.Construct(platform, cfg, logger)
}

// Platforms returns the registered platform identifiers in sorted order.
func (r *Registry) Platforms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	platforms := make([]string, 0, len(r.constructors))
	for p := range r.constructors {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}

// LocalUnix builds a Shell running "sh -c" on this machine.
func LocalUnix(cfg *config.Config, logger *zap.Logger) (*Shell, error) {
	return local(cfg, dialect.Unix(), logger)
}

// LocalWindows builds a Shell running "cmd /C" on this machine.
func LocalWindows(cfg *config.Config, logger *zap.Logger) (*Shell, error) {
	return local(cfg, dialect.Windows(), logger)
}

func local(cfg *config.Config, d *dialect.Dialect, logger *zap.Logger) (*Shell, error) {
	env, err := executor.BuildEnv(os.Environ(), cfg.Shell.EnvFiles, cfg.Shell.Env)
	if err != nil {
		return nil, err
	}
	runner := executor.NewLocalExecutor(cfg, d.Interpreter(), env)
	if cfg.Shell.WorkDir != "" {
		runner = runner.WithDir(cfg.Shell.WorkDir)
	}
	return New(runner, d, logger), nil
}

func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}
