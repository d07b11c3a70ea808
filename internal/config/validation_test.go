package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AllDefaults_Pass(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_Shell(t *testing.T) {
	t.Run("Unknown Backend Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Shell.Backend = "rsh"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "shell.backend")
	})

	t.Run("Unknown Dialect Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Shell.Dialect = "fish"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "shell.dialect")
	})

	t.Run("Zero Output Size Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Shell.MaxCommandOutputSize = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "max_command_output_size")
	})

	t.Run("Negative Graceful Shutdown Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Shell.GracefulShutdownMs = -1
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "graceful_shutdown_ms")
	})
}

func TestValidate_SSH(t *testing.T) {
	t.Run("SSH Backend Requires Host And User", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Shell.Backend = "ssh"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ssh.host")
		assert.Contains(t, err.Error(), "ssh.user")
	})

	t.Run("SSH Backend With Host Passes", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Shell.Backend = "ssh"
		cfg.SSH.Host = "build01"
		cfg.SSH.User = "ci"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Port Out Of Range Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SSH.Port = 70000
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ssh.port")
	})
}

func TestValidate_Docker(t *testing.T) {
	t.Run("Docker Backend Requires Container", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Shell.Backend = "docker"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "docker.container")
	})

	t.Run("Zero Docker Retry Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Docker.RetryAttempts = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "docker.retry_attempts")
	})
}

func TestValidate_Listing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Listing.MaxWalkResults = 0
	cfg.Listing.DefaultWalkDepth = -1
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_walk_results")
	assert.Contains(t, err.Error(), "default_walk_depth")
}

func TestValidate_Logging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "chatty"
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}
