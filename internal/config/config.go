// Package config loads the TOML configuration file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/logger"
	"github.com/julianstephens/microhabit/internal/points"
)

var validate = validator.New()

// Config is the full configuration file
type Config struct {
	Scoring points.Config `toml:"scoring"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects where data lives.
// Location is a SQLite path (default), a .json path or a PostgreSQL connection
// string without a password.
type StorageConfig struct {
	Location   string `toml:"location" validate:"required"`
	MaxBackups int    `toml:"max_backups" validate:"gte=1"`
	AutoBackup bool   `toml:"auto_backup"`
}

type LogConfig struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir" validate:"required"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Scoring: points.DefaultConfig(),
		Storage: StorageConfig{
			Location:   filepath.Join(constants.DefaultConfigDir, constants.DefaultDBFile),
			MaxBackups: constants.MaxBackups,
			AutoBackup: true,
		},
		Log: LogConfig{
			Dir: constants.DefaultConfigDir,
		},
	}
}

// DefaultPath returns ~/.config/microhabit/config.toml
func DefaultPath() string {
	return filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile)
}

func (c *Config) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return err
	}
	if err := validate.Struct(c.Storage); err != nil {
		return fmt.Errorf("invalid storage config: %w", err)
	}
	if err := validate.Struct(c.Log); err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}
	return nil
}

// Read decodes a Config from r on top of the defaults
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("Unknown config key", "key", key.String())
	}
	return cfg, nil
}

// Write encodes cfg to w
func Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Load reads and validates the file at path. A missing file yields the
// defaults. Paths in the result have ~ expanded.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(ExpandPath(path))
	switch {
	case err == nil:
		defer f.Close()
		cfg, err = Read(f)
		if err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
	case os.IsNotExist(err):
		logger.Debug("No config file, using defaults", "path", path)
	default:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Storage.Location = ExpandPath(cfg.Storage.Location)
	cfg.Log.Dir = ExpandPath(cfg.Log.Dir)
	return cfg, nil
}

// WriteDefault creates a config file with the defaults unless one exists.
// It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	path = ExpandPath(path)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return false, fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := Write(f, Default()); err != nil {
		return false, fmt.Errorf("writing config to %s: %w", path, err)
	}
	return true, nil
}

// ExpandPath replaces a leading ~ with the home directory. Connection
// strings and other values are returned unchanged.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
