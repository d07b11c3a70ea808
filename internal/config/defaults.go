package config

// Config holds all shellfs configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile,
// then SHELLFS_* environment variables, then command-line flags.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Shell   ShellConfig   `json:"shell"`
	SSH     SSHConfig     `json:"ssh"`
	Docker  DockerConfig  `json:"docker"`
	Listing ListingConfig `json:"listing"`
	Logging LoggingConfig `json:"logging"`
}

type ShellConfig struct {
	// Backend selects where commands run: "local", "ssh" or "docker".
	Backend string `json:"backend"` // Default: "local"
	// Platform picks the local registry entry; empty means the host OS.
	Platform string `json:"platform"`
	// Dialect is the command dialect for remote backends: "unix" or "windows".
	Dialect string `json:"dialect"` // Default: "unix"

	DefaultTimeoutSeconds int   `json:"default_timeout_seconds" split_words:"true"` // Default: 30
	MaxCommandOutputSize  int64 `json:"max_command_output_size" split_words:"true"` // Default: 10 * 1024 * 1024 (10MB)
	GracefulShutdownMs    int   `json:"graceful_shutdown_ms" split_words:"true"`    // Default: 2000

	// Strict turns non-zero exit statuses into errors at the executor level.
	Strict bool `json:"strict"`
	// WorkDir is the working directory of local commands; relative paths
	// resolve against it. Empty means the process's own directory.
	WorkDir string `json:"work_dir" split_words:"true"`

	Env      map[string]string `json:"env"`
	EnvFiles []string          `json:"env_files" split_words:"true"`
}

type SSHConfig struct {
	Host                  string `json:"host"`
	Port                  int    `json:"port"` // Default: 22
	User                  string `json:"user"`
	KeyFile               string `json:"key_file" split_words:"true"`
	PasswordEnv           string `json:"password_env" split_words:"true"` // Default: "SHELLFS_SSH_PASSWORD"
	KnownHostsFile        string `json:"known_hosts_file" split_words:"true"`
	InsecureIgnoreHostKey bool   `json:"insecure_ignore_host_key" split_words:"true"`
	DialTimeoutSeconds    int    `json:"dial_timeout_seconds" split_words:"true"` // Default: 10
}

type DockerConfig struct {
	Container       string   `json:"container"`
	Binary          string   `json:"binary"`                                  // Default: "docker"
	RetryAttempts   int      `json:"retry_attempts" split_words:"true"`       // Default: 10
	RetryIntervalMs int      `json:"retry_interval_ms" split_words:"true"`    // Default: 1000
	AutoStart       bool     `json:"auto_start" split_words:"true"`
	StartCommand    []string `json:"start_command" split_words:"true"`
}

type ListingConfig struct {
	MaxWalkResults   int `json:"max_walk_results" split_words:"true"`   // Default: 50000
	DefaultWalkDepth int `json:"default_walk_depth" split_words:"true"` // Default: 0 (unlimited)
}

type LoggingConfig struct {
	Level       string `json:"level"` // Default: "info"
	Development bool   `json:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Shell: ShellConfig{
			Backend:               "local",
			Dialect:               "unix",
			DefaultTimeoutSeconds: 30,
			MaxCommandOutputSize:  10 * 1024 * 1024,
			GracefulShutdownMs:    2000,
		},
		SSH: SSHConfig{
			Port:               22,
			PasswordEnv:        "SHELLFS_SSH_PASSWORD",
			DialTimeoutSeconds: 10,
		},
		Docker: DockerConfig{
			Binary:          "docker",
			RetryAttempts:   10,
			RetryIntervalMs: 1000,
		},
		Listing: ListingConfig{
			MaxWalkResults: 50000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
