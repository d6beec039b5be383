package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadFile_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "fintrack.toml",
			content: `port = "9000"
data_backend = "sqlite"
currency = "gbp"
cache_size = 8
cache_ttl = "30s"
default_screen = "Analytics"
trusted_proxies = ["10.1.0.0/16"]
`,
		},
		{
			name: "yaml",
			file: "fintrack.yaml",
			content: `port: "9000"
data_backend: sqlite
currency: gbp
cache_size: 8
cache_ttl: 30s
default_screen: Analytics
trusted_proxies:
  - 10.1.0.0/16
`,
		},
		{
			name:    "json",
			file:    "fintrack.json",
			content: `{"port": "9000", "data_backend": "sqlite", "currency": "gbp", "cache_size": 8, "cache_ttl": "30s", "default_screen": "Analytics", "trusted_proxies": ["10.1.0.0/16"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := LoadFile(writeConfigFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}

			cfg := validConfig()
			if err := cfg.Apply(f); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if cfg.Port != "9000" || cfg.DataBackend != "sqlite" || cfg.Currency != "GBP" {
				t.Errorf("Apply() = %+v", cfg)
			}
			if cfg.CacheSize != 8 || cfg.CacheTTL != 30*time.Second {
				t.Errorf("Apply() CacheSize/CacheTTL = %v/%v", cfg.CacheSize, cfg.CacheTTL)
			}
			if cfg.DefaultScreen != "analytics" || len(cfg.TrustedProxies) != 1 || cfg.TrustedProxies[0] != "10.1.0.0/16" {
				t.Errorf("Apply() DefaultScreen/TrustedProxies = %v/%v", cfg.DefaultScreen, cfg.TrustedProxies)
			}
			if cfg.LogLevel != "info" {
				t.Errorf("unset keys must keep their value, LogLevel = %v", cfg.LogLevel)
			}
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"missing", filepath.Join(dir, "missing.toml"), "error accessing config file"},
		{"directory", dir, "is a directory"},
		{"unsupported", writeConfigFile(t, "fintrack.ini", "port=1"), "unsupported config file format"},
		{"bad toml", writeConfigFile(t, "bad.toml", "port = "), "error parsing TOML file"},
		{"bad yaml", writeConfigFile(t, "bad.yaml", "port: [1"), "error parsing YAML file"},
		{"bad json", writeConfigFile(t, "bad.json", "{"), "error parsing JSON file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("LoadFile() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestApply_InvalidTTL(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Apply(&File{CacheTTL: "forever"}); err == nil {
		t.Fatal("expected error for invalid cache_ttl")
	}
}

func TestLoadWithFile(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadWithFile("")
	if err != nil {
		t.Fatalf("LoadWithFile(\"\") error = %v", err)
	}
	if cfg.Port != "7000" {
		t.Errorf("Port = %v, want 7000 from env", cfg.Port)
	}

	path := writeConfigFile(t, "fintrack.yml", "log_level: WARN\n")
	cfg, err = LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v", err)
	}
	if cfg.Port != "7000" || cfg.LogLevel != "warn" {
		t.Errorf("file should override only the keys it sets: %+v", cfg)
	}
}
