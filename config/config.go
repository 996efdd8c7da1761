// Package config loads the application configuration from YAML files.
// A global config in the XDG config directory is merged with an
// optional .gitcher.yaml in the working directory, with local values
// taking precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied when no config file sets a value.
const (
	DefaultFormat     = "table"
	DefaultListenAddr = ":8080"
)

// Config represents the application configuration
type Config struct {
	DefaultFormat string `yaml:"default_format,omitempty"`
	ListenAddr    string `yaml:"listen_addr,omitempty"`
	UpstreamURL   string `yaml:"upstream_url,omitempty"`
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".gitcher"
	}
	return filepath.Join(configDir, "gitcher")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".gitcher.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from XDG config directory, then merges
// any local .gitcher.yaml config on top (local values take precedence).
func Load() (*Config, error) {
	cfg := &Config{
		DefaultFormat: DefaultFormat,
		ListenAddr:    DefaultListenAddr,
	}

	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}

		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}

		cfg = mergeConfig(cfg, &localCfg)
	}

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = DefaultFormat
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}

	return cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{
		DefaultFormat: global.DefaultFormat,
		ListenAddr:    global.ListenAddr,
		UpstreamURL:   global.UpstreamURL,
	}

	if local.DefaultFormat != "" {
		result.DefaultFormat = local.DefaultFormat
	}
	if local.ListenAddr != "" {
		result.ListenAddr = local.ListenAddr
	}
	if local.UpstreamURL != "" {
		result.UpstreamURL = local.UpstreamURL
	}

	return result
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configDir := DefaultConfigDir()

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment variable.
// Following 12-factor app best practices, tokens are only read from the environment.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}
