// Package config reads the tool's own configuration file
// (~/.config/profile-inherit/config.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Config represents config.yaml. The three booleans default to true when
// absent, hence the pointer fields; use the *Enabled accessors.
type Config struct {
	Parents            []string                 `yaml:"parents,omitempty"`
	Profiles           map[string]ProfileConfig `yaml:"profiles,omitempty"`
	RunOnStartup       *bool                    `yaml:"run_on_startup,omitempty"`
	RunOnProfileChange *bool                    `yaml:"run_on_profile_change,omitempty"`
	ShowMessages       *bool                    `yaml:"show_messages,omitempty"`
}

// ProfileConfig overrides settings for a single profile.
type ProfileConfig struct {
	Parents []string `yaml:"parents,omitempty"`
}

// Default returns a configuration with no parents and everything enabled.
func Default() Config {
	return Config{}
}

// Parse parses config.yaml bytes into a Config.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Load reads and parses the config file at path. A missing file yields the
// default configuration, not an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Save writes the config file at path, creating its directory if needed.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ParentsFor returns the parent list declared for the named profile, falling
// back to the global list.
func (c Config) ParentsFor(profile string) []string {
	if pc, ok := c.Profiles[profile]; ok && len(pc.Parents) > 0 {
		return pc.Parents
	}
	return c.Parents
}

// SetParentsFor records a per-profile parent list.
func (c *Config) SetParentsFor(profile string, parents []string) {
	if c.Profiles == nil {
		c.Profiles = make(map[string]ProfileConfig)
	}
	c.Profiles[profile] = ProfileConfig{Parents: parents}
}

// StartupEnabled reports whether inheritance runs when the watcher starts.
func (c Config) StartupEnabled() bool {
	return c.RunOnStartup == nil || *c.RunOnStartup
}

// ProfileChangeEnabled reports whether inheritance re-runs on profile switch.
func (c Config) ProfileChangeEnabled() bool {
	return c.RunOnProfileChange == nil || *c.RunOnProfileChange
}

// MessagesEnabled reports whether success/failure messages are printed.
func (c Config) MessagesEnabled() bool {
	return c.ShowMessages == nil || *c.ShowMessages
}
