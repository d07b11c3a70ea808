package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Backends lists the accepted values of shell.backend.
var Backends = []string{"local", "ssh", "docker"}

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Shell validation
	if !contains(Backends, c.Shell.Backend) {
		errs = append(errs, fmt.Sprintf("shell.backend must be one of %s", strings.Join(Backends, ", ")))
	}
	switch strings.ToLower(c.Shell.Dialect) {
	case "", "unix", "posix", "sh", "windows", "cmd":
	default:
		errs = append(errs, "shell.dialect must be unix or windows")
	}
	if c.Shell.DefaultTimeoutSeconds < 1 {
		errs = append(errs, "shell.default_timeout_seconds must be >= 1")
	}
	if c.Shell.MaxCommandOutputSize < 1 {
		errs = append(errs, "shell.max_command_output_size must be >= 1")
	}
	if c.Shell.GracefulShutdownMs < 0 {
		errs = append(errs, "shell.graceful_shutdown_ms must be >= 0")
	}

	// SSH validation
	if c.SSH.Port < 1 || c.SSH.Port > 65535 {
		errs = append(errs, "ssh.port must be between 1 and 65535")
	}
	if c.SSH.DialTimeoutSeconds < 1 {
		errs = append(errs, "ssh.dial_timeout_seconds must be >= 1")
	}
	if c.Shell.Backend == "ssh" {
		if c.SSH.Host == "" {
			errs = append(errs, "ssh.host is required for the ssh backend")
		}
		if c.SSH.User == "" {
			errs = append(errs, "ssh.user is required for the ssh backend")
		}
	}

	// Docker validation
	if c.Docker.RetryAttempts < 1 {
		errs = append(errs, "docker.retry_attempts must be >= 1")
	}
	if c.Docker.RetryIntervalMs < 1 {
		errs = append(errs, "docker.retry_interval_ms must be >= 1")
	}
	if c.Docker.Binary == "" {
		errs = append(errs, "docker.binary must not be empty")
	}
	if c.Shell.Backend == "docker" && c.Docker.Container == "" {
		errs = append(errs, "docker.container is required for the docker backend")
	}

	// Listing validation
	if c.Listing.MaxWalkResults < 1 {
		errs = append(errs, "listing.max_walk_results must be >= 1")
	}
	if c.Listing.DefaultWalkDepth < 0 {
		errs = append(errs, "listing.default_walk_depth must be >= 0")
	}

	// Logging validation
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Sprintf("logging.level %q is not a valid level", c.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
