package config

import (
	"fmt"
	"os"
	"path/filepath"

	"crucible/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/crucible"
	configFileName = "config.yaml"
)

// configPathEnv overrides the default configuration file location.
const configPathEnv = "CRUCIBLE_CONFIG"

// osUserHomeDir is a package-level indirection so tests can mock the home
// directory.
var osUserHomeDir = os.UserHomeDir

// DefaultConfigPath returns the configuration file path: the CRUCIBLE_CONFIG
// environment variable when set, otherwise config.yaml under the user config
// directory.
func DefaultConfigPath() (string, error) {
	if path := os.Getenv(configPathEnv); path != "" {
		return path, nil
	}
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// LoadFile reads and parses the configuration file at path. Parsing is lax:
// schema conformance is checked separately by Validate so all violations can
// be reported in one pass.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration from %s: %w", path, err)
	}
	cfg, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration from %s: %w", path, err)
	}
	logging.Info("Config", "Loaded configuration from %s", path)
	return cfg, nil
}

// LoadBytes parses raw configuration bytes.
func LoadBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
