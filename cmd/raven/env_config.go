package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const envPrefix = "RAVEN_"

// envConfig holds configuration from environment variables.
// Precedence: CLI flags > env vars > config file > defaults.
type envConfig struct {
	ConfigPath string // RAVEN_CONFIG: config file path
	Workers    int    // RAVEN_WORKERS: concurrency bound, 0 = unset
	LogFormat  string // RAVEN_LOG_FORMAT: "text" or "json"
	NoColor    bool   // RAVEN_NO_COLOR or NO_COLOR: disable colors
}

// knownEnvVars lists valid RAVEN_* environment variables.
var knownEnvVars = map[string]bool{
	"RAVEN_CONFIG":     true,
	"RAVEN_WORKERS":    true,
	"RAVEN_LOG_FORMAT": true,
	"RAVEN_NO_COLOR":   true,
}

// loadEnvConfig reads configuration from environment variables. Malformed
// numeric values are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("RAVEN_CONFIG"),
		LogFormat:  strings.ToLower(getenv("RAVEN_LOG_FORMAT")),
		NoColor:    getenv("RAVEN_NO_COLOR") != "" || getenv("NO_COLOR") != "",
	}

	if workers := getenv("RAVEN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized RAVEN_* variables.
// Helps catch typos like RAVEN_WORKER instead of RAVEN_WORKERS.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}
