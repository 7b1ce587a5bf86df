// Package config loads the small set of engine tunables the spec
// leaves open to the host application: prefix key, notification
// cooldown, max scrollback, and shell override. Everything else
// (layout, theming, key bindings beyond the prefix) is out of scope.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds climux's engine tunables.
type Config struct {
	PrefixKey            string        `yaml:"prefix_key"`
	NotificationCooldown time.Duration `yaml:"notification_cooldown"`
	MaxScrollbackLines   int           `yaml:"max_scrollback_lines"`
	Shell                string        `yaml:"shell"`
}

// Default returns the zero-config defaults: Ctrl+t prefix, 1s
// cooldown, 10000 scrollback lines, $SHELL or /bin/sh.
func Default() *Config {
	return &Config{
		PrefixKey:            "ctrl+t",
		NotificationCooldown: time.Second,
		MaxScrollbackLines:   10000,
		Shell:                shellFromEnv(),
	}
}

func shellFromEnv() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// ConfigDir returns ~/.config/climux, creating nothing.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "climux"), nil
}

// Load reads config.yaml from ConfigDir, falling back to Default on
// os.IsNotExist (same graceful-default behavior as dcosson-h2's
// config loader).
func Load() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(filepath.Join(dir, "config.yaml"))
}

// LoadFrom reads and decodes the config file at path, returning
// Default (not an error) if the file does not exist.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
