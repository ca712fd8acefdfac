package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/claudeware/plugctl/internal/errors"
)

// Config holds user preferences loaded from config.toml
type Config struct {
	// Target is the default installation directory. Empty means ~/.claude.
	Target string `toml:"target"`
	// Format is the default report format: console, plain, or json
	Format string `toml:"format"`
	// Color controls styled console output. Defaults to true.
	Color *bool `toml:"color"`
	// SkipExisting skips conflicting files by default instead of prompting
	SkipExisting bool `toml:"skip_existing"`
}

// Default returns a Config with the built-in defaults
func Default() *Config {
	return &Config{
		Format: "console",
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	switch c.Format {
	case "", "console", "plain", "json":
	default:
		return fmt.Errorf("invalid format %q (expected console, plain, or json)", c.Format)
	}
	return nil
}

// UseColor reports whether styled output is enabled
func (c *Config) UseColor() bool {
	if c.Color == nil {
		return true
	}
	return *c.Color
}

// TargetDir returns the configured install target, falling back to ~/.claude
func (c *Config) TargetDir() (string, error) {
	if c.Target != "" {
		return expandHome(c.Target)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.SystemError("resolving home directory", err)
	}
	return filepath.Join(home, ".claude"), nil
}

func expandHome(path string) (string, error) {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.SystemError("resolving home directory", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// Path returns the location of the user configuration file
func Path() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.SystemError("resolving home directory", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "plugctl", "config.toml"), nil
}

// Load reads the user configuration, returning defaults when no file exists
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from a specific file
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.ConfigError(fmt.Sprintf("reading %s", path), err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("parsing %s", path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError(path, err)
	}
	return cfg, nil
}

// Save writes the configuration to the user config file
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ConfigError("creating config directory", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.ConfigError(fmt.Sprintf("writing %s", path), err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return errors.ConfigError(fmt.Sprintf("encoding %s", path), err)
	}
	return nil
}
