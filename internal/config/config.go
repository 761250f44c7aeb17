// Package config loads the optional YAML config file and resolves which
// database the CLI should open.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/alpha/internal/constants"
)

// Config mirrors ~/.config/alpha/config.yaml.
type Config struct {
	Database struct {
		Path string `yaml:"path"`
		DSN  string `yaml:"dsn,omitempty"`
		// Keyring reads the PostgreSQL connection string from the OS keyring.
		Keyring bool `yaml:"keyring,omitempty"`
	} `yaml:"database"`

	User     string `yaml:"user"`
	Timezone string `yaml:"timezone,omitempty"`

	Logging struct {
		Debug bool `yaml:"debug"`
	} `yaml:"logging"`

	Backup struct {
		Keep int `yaml:"keep"`
	} `yaml:"backup"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = constants.DefaultConfigPath
	}
	if c.User == "" {
		c.User = constants.DefaultUser
	}
	if c.Backup.Keep <= 0 {
		c.Backup.Keep = constants.MaxBackups
	}
}

// Load reads the file at path. A missing file is not an error.
func Load(path string) (*Config, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(cfg *Config, path string) error {
	path, err := ExpandHome(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// IsPostgres reports whether s looks like a PostgreSQL connection string.
func IsPostgres(s string) bool {
	return strings.HasPrefix(s, "postgres://") ||
		strings.HasPrefix(s, "postgresql://") ||
		strings.Contains(s, "host=")
}

// Driver names the backend a Target points at.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Source records where a Target came from. Only connection strings from the
// flag or the config file are checked for embedded credentials.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceFile    Source = "config"
	SourceDefault Source = "default"
)

// Target is the resolved database location.
type Target struct {
	Driver Driver
	// Location is a file path for SQLite and a connection string for PostgreSQL.
	Location string
	Source   Source
}

// Secure reports whether credentials embedded in Location are acceptable.
func (t Target) Secure() bool {
	return t.Source == SourceEnv || t.Source == SourceKeyring
}

// Resolver looks up the inputs that can override the config file.
type Resolver struct {
	// Flag is the --config value; empty when the flag was not given.
	Flag    string
	Getenv  func(string) string
	Keyring func() (string, error)
}

// Resolve picks the database in order: flag, environment, keyring (when
// enabled), config dsn, config path.
func (c *Config) Resolve(r Resolver) (Target, error) {
	if r.Flag != "" {
		return target(r.Flag, SourceFlag)
	}
	if r.Getenv != nil {
		if conn := strings.TrimSpace(r.Getenv(constants.ConnectionEnvVar)); conn != "" {
			return Target{Driver: DriverPostgres, Location: conn, Source: SourceEnv}, nil
		}
	}
	if c.Database.Keyring {
		if r.Keyring == nil {
			return Target{}, errors.New("keyring lookup is not available")
		}
		conn, err := r.Keyring()
		if err != nil {
			return Target{}, fmt.Errorf("failed to read connection string from keyring: %w", err)
		}
		return Target{Driver: DriverPostgres, Location: conn, Source: SourceKeyring}, nil
	}
	if c.Database.DSN != "" {
		return Target{Driver: DriverPostgres, Location: c.Database.DSN, Source: SourceFile}, nil
	}

	src := SourceFile
	if c.Database.Path == constants.DefaultConfigPath {
		src = SourceDefault
	}
	return target(c.Database.Path, src)
}

func target(loc string, src Source) (Target, error) {
	if IsPostgres(loc) {
		return Target{Driver: DriverPostgres, Location: loc, Source: src}, nil
	}
	path, err := ExpandHome(loc)
	if err != nil {
		return Target{}, err
	}
	return Target{Driver: DriverSQLite, Location: path, Source: src}, nil
}
