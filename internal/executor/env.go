package executor

import (
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFiles reads .env files in order and merges them with overrides.
// Later files win over earlier ones and overrides win over every file.
func LoadEnvFiles(envFiles []string, overrides map[string]string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, path := range envFiles {
		vars, err := godotenv.Read(path)
		if err != nil {
			return nil, &EnvFileError{Path: path, Cause: err}
		}
		for k, v := range vars {
			merged[k] = v
		}
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged, nil
}

// BuildEnv returns the KEY=VALUE environment for a local command: base
// (typically os.Environ()) overlaid with envFiles and overrides. It returns
// nil when there is nothing to add, so the command inherits base unchanged.
func BuildEnv(base []string, envFiles []string, overrides map[string]string) ([]string, error) {
	extra, err := LoadEnvFiles(envFiles, overrides)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return nil, nil
	}

	env := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		key, _, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if _, replaced := extra[key]; replaced {
			continue
		}
		env = append(env, kv)
	}
	for _, key := range sortedKeys(extra) {
		env = append(env, key+"="+extra[key])
	}
	return env, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
