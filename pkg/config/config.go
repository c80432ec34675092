package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

const (
	DefaultResultTTL = 6 * time.Hour
	DefaultListen    = "localhost:8080"
	DefaultPageSize  = 8
)

// Environment variables overriding config file values.
const (
	EnvSnapshotPath = "HOI_SNAPSHOT_PATH"
	EnvResultsDB    = "HOI_RESULTS_DB"
	EnvListen       = "HOI_LISTEN"
	EnvTimezone     = "HOI_TIMEZONE"
)

type Config struct {
	StorageDir   string       `toml:"storage_dir"`
	SnapshotPath string       `toml:"snapshot_path,omitempty"`
	ResultsDB    string       `toml:"results_db,omitempty"`
	ResultTTL    Duration     `toml:"result_ttl"`
	Timezone     string       `toml:"timezone"`
	Server       ServerConfig `toml:"server"`
	Index        IndexConfig  `toml:"index"`
}

type ServerConfig struct {
	Listen   string `toml:"listen"`
	PageSize int    `toml:"page_size"`
}

type IndexConfig struct {
	Root    string   `toml:"root"`
	Exclude []string `toml:"exclude"`
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func GetDefaultConfig() (*Config, error) {
	c := &Config{}
	if err := c.applyDefaults(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadConfig reads configPath, falling back to defaults when it does not
// exist, then applies overrides from a .env file next to it and from the
// process environment.
func LoadConfig(configPath string) (*Config, error) {
	var c Config

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := toml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("unmarshaling config: %w", err)
		}
	}

	envFile := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}
	c.applyEnv()

	if err := c.applyDefaults(); err != nil {
		return nil, err
	}
	if _, err := c.Location(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	for env, field := range map[string]*string{
		EnvSnapshotPath: &c.SnapshotPath,
		EnvResultsDB:    &c.ResultsDB,
		EnvListen:       &c.Server.Listen,
		EnvTimezone:     &c.Timezone,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*field = v
		}
	}
}

func (c *Config) applyDefaults() error {
	if c.StorageDir == "" {
		dir, err := GetDefaultStorageDir()
		if err != nil {
			return fmt.Errorf("getting default storage directory: %w", err)
		}
		c.StorageDir = dir
	}
	if c.SnapshotPath == "" {
		c.SnapshotPath = filepath.Join(c.StorageDir, "snapshot.json.zst")
	}
	if c.ResultsDB == "" {
		c.ResultsDB = filepath.Join(c.StorageDir, "results.db")
	}
	if c.ResultTTL.Duration <= 0 {
		c.ResultTTL = Duration{DefaultResultTTL}
	}
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
	if c.Server.PageSize <= 0 {
		c.Server.PageSize = DefaultPageSize
	}
	return nil
}

// Location returns the zone time phrases are resolved in.
func (c *Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	template, err := c.generateConfigTemplate()
	if err != nil {
		return fmt.Errorf("generating config template: %w", err)
	}
	return os.WriteFile(configPath, []byte(template), 0644)
}

func (c *Config) generateConfigTemplate() (string, error) {
	storageDir := c.StorageDir
	if storageDir == "" {
		var err error
		storageDir, err = GetDefaultStorageDir()
		if err != nil {
			return "", fmt.Errorf("getting default storage directory: %w", err)
		}
	}
	return strings.ReplaceAll(configTemplate, "/home/user/.local/share/hoi", storageDir), nil
}

func xdgDir(env string, fallback ...string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	dir := filepath.Join(base, "hoi")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return dir, nil
}

// GetDefaultStorageDir returns $XDG_DATA_HOME/hoi, creating it.
func GetDefaultStorageDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// GetConfigDir returns $XDG_CONFIG_HOME/hoi, creating it.
func GetConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
