package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// File mirrors Config for TOML, YAML and JSON config files. Unset keys
// leave the environment value in place.
type File struct {
	Port           string   `json:"port" yaml:"port" toml:"port"`
	TrustedProxies []string `json:"trusted_proxies" yaml:"trusted_proxies" toml:"trusted_proxies"`
	DataBackend    string   `json:"data_backend" yaml:"data_backend" toml:"data_backend"`
	SQLiteDBPath   string   `json:"sqlite_db_path" yaml:"sqlite_db_path" toml:"sqlite_db_path"`
	PostgresURL    string   `json:"postgres_url" yaml:"postgres_url" toml:"postgres_url"`
	SeedFile       string   `json:"seed_file" yaml:"seed_file" toml:"seed_file"`
	Currency       string   `json:"currency" yaml:"currency" toml:"currency"`
	DefaultScreen  string   `json:"default_screen" yaml:"default_screen" toml:"default_screen"`
	LogLevel       string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CacheSize      int      `json:"cache_size" yaml:"cache_size" toml:"cache_size"`
	CacheTTL       string   `json:"cache_ttl" yaml:"cache_ttl" toml:"cache_ttl"`
	RateLimit      int      `json:"rate_limit_per_minute" yaml:"rate_limit_per_minute" toml:"rate_limit_per_minute"`
}

// LoadFile parses a .toml, .yaml, .yml or .json config file.
func LoadFile(filePath string) (*File, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return &f, nil
}

// Apply overrides c with every key set in f.
func (c *Config) Apply(f *File) error {
	if f == nil {
		return nil
	}
	if f.Port != "" {
		c.Port = f.Port
	}
	if len(f.TrustedProxies) > 0 {
		c.TrustedProxies = append([]string(nil), f.TrustedProxies...)
	}
	if f.DataBackend != "" {
		c.DataBackend = f.DataBackend
	}
	if f.SQLiteDBPath != "" {
		c.SQLiteDBPath = f.SQLiteDBPath
	}
	if f.PostgresURL != "" {
		c.PostgresURL = f.PostgresURL
	}
	if f.SeedFile != "" {
		c.SeedFile = f.SeedFile
	}
	if f.Currency != "" {
		c.Currency = strings.ToUpper(f.Currency)
	}
	if f.DefaultScreen != "" {
		c.DefaultScreen = strings.ToLower(f.DefaultScreen)
	}
	if f.LogLevel != "" {
		c.LogLevel = strings.ToLower(f.LogLevel)
	}
	if f.CacheSize != 0 {
		c.CacheSize = f.CacheSize
	}
	if f.CacheTTL != "" {
		d, err := time.ParseDuration(f.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache_ttl '%s': %w", f.CacheTTL, err)
		}
		c.CacheTTL = d
	}
	if f.RateLimit != 0 {
		c.RateLimit = f.RateLimit
	}
	return nil
}

// LoadWithFile loads the environment config, then overrides it with the
// given config file when path is not empty.
func LoadWithFile(path string) (*Config, error) {
	cfg := Load()
	if path == "" {
		return cfg, nil
	}
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(f); err != nil {
		return nil, err
	}
	return cfg, nil
}
