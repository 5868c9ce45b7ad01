package raven

import "github.com/alnah/go-raven/internal/config"

// Config is the project configuration, usually read from raven.yaml.
type Config = config.Config

// Configuration sections, re-exported for programmatic setup.
type (
	DefaultsConfig   = config.DefaultsConfig
	GenerationConfig = config.GenerationConfig
	ProcessConfig    = config.ProcessConfig
	MetaConfig       = config.MetaConfig
	SiteMeta         = config.SiteMeta
)

// ConfigFileName is the configuration file looked up in a project directory.
const ConfigFileName = config.DefaultFileName

// DefaultConfig returns the configuration raven init writes.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig reads and validates the configuration at path.
func LoadConfig(path string) (*Config, error) {
	return config.LoadConfig(path)
}
