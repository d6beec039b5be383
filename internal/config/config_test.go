package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:          "8081",
		DataBackend:   "memory",
		SQLiteDBPath:  "./test.db",
		Currency:      "USD",
		DefaultScreen: "dashboard",
		LogLevel:      "info",
		CacheSize:     64,
		CacheTTL:      5 * time.Minute,
		RateLimit:     120,
	}
}

func TestConfig_Validate(t *testing.T) {
	seedDir := t.TempDir()
	seedJSON := filepath.Join(seedDir, "seed.json")
	seedTxt := filepath.Join(seedDir, "seed.txt")
	for _, p := range []string{seedJSON, seedTxt} {
		if err := os.WriteFile(p, []byte("{}"), 0644); err != nil {
			t.Fatalf("Failed to create test seed file: %v", err)
		}
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid memory backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid sqlite backend config",
			mutate:  func(c *Config) { c.DataBackend = "sqlite" },
			wantErr: false,
		},
		{
			name:    "valid memory backend with seed file",
			mutate:  func(c *Config) { c.SeedFile = seedJSON },
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory sqlite postgres]",
		},
		{
			name: "sqlite backend missing database path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name: "sqlite backend with seed file",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SeedFile = seedJSON
			},
			wantErr:     true,
			errorString: "SEED_FILE is only supported by the memory backend",
		},
		{
			name: "valid postgres backend config",
			mutate: func(c *Config) {
				c.DataBackend = "postgres"
				c.PostgresURL = "postgres://localhost/fintrack"
			},
			wantErr: false,
		},
		{
			name:        "postgres backend missing url",
			mutate:      func(c *Config) { c.DataBackend = "postgres" },
			wantErr:     true,
			errorString: "PostgreSQL URL cannot be empty when using postgres backend",
		},
		{
			name:        "missing seed file",
			mutate:      func(c *Config) { c.SeedFile = "/non/existent/seed.json" },
			wantErr:     true,
			errorString: "seed file does not exist",
		},
		{
			name:        "seed file with unsupported extension",
			mutate:      func(c *Config) { c.SeedFile = seedTxt },
			wantErr:     true,
			errorString: "must be .json, .yaml or .yml",
		},
		{
			name:        "invalid currency",
			mutate:      func(c *Config) { c.Currency = "EURO" },
			wantErr:     true,
			errorString: "invalid currency 'EURO'",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "invalid cache size - too small",
			mutate:      func(c *Config) { c.CacheSize = 0 },
			wantErr:     true,
			errorString: "invalid cache size 0: must be at least 1",
		},
		{
			name:        "invalid cache size - too large",
			mutate:      func(c *Config) { c.CacheSize = 20000 },
			wantErr:     true,
			errorString: "invalid cache size 20000: must be at most 10000",
		},
		{
			name:        "invalid cache TTL - too short",
			mutate:      func(c *Config) { c.CacheTTL = 500 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid cache TTL 500ms: must be at least 1 second",
		},
		{
			name:        "invalid cache TTL - too long",
			mutate:      func(c *Config) { c.CacheTTL = 25 * time.Hour },
			wantErr:     true,
			errorString: "invalid cache TTL 25h0m0s: must be at most 24 hours",
		},
		{
			name:    "valid trusted proxies",
			mutate:  func(c *Config) { c.TrustedProxies = []string{"10.0.0.0/8", "fd00::/8"} },
			wantErr: false,
		},
		{
			name:        "invalid trusted proxy",
			mutate:      func(c *Config) { c.TrustedProxies = []string{"10.0.0.1"} },
			wantErr:     true,
			errorString: "invalid trusted proxy '10.0.0.1': must be a CIDR",
		},
		{
			name:        "invalid default screen",
			mutate:      func(c *Config) { c.DefaultScreen = "reports" },
			wantErr:     true,
			errorString: "invalid default screen 'reports'",
		},
		{
			name:        "invalid rate limit",
			mutate:      func(c *Config) { c.RateLimit = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.CacheSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid port") || !strings.Contains(err.Error(), "invalid cache size") {
		t.Errorf("error should list every problem, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	keys := []string{"PORT", "DATA_BACKEND", "SQLITE_DB_PATH", "POSTGRES_URL", "SEED_FILE", "CURRENCY", "LOG_LEVEL", "CACHE_SIZE", "CACHE_TTL", "RATE_LIMIT_PER_MINUTE", "DEFAULT_SCREEN", "TRUSTED_PROXIES"}
	for _, k := range keys {
		t.Setenv(k, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.DataBackend != "memory" {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "./data/fintrack.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/fintrack.db", cfg.SQLiteDBPath)
		}
		if cfg.Currency != "USD" || cfg.LogLevel != "info" {
			t.Errorf("Load() Currency/LogLevel = %v/%v", cfg.Currency, cfg.LogLevel)
		}
		if cfg.CacheSize != 64 {
			t.Errorf("Load() CacheSize = %v, want 64", cfg.CacheSize)
		}
		if cfg.CacheTTL != 5*time.Minute {
			t.Errorf("Load() CacheTTL = %v, want 5m", cfg.CacheTTL)
		}
		if cfg.RateLimit != 120 {
			t.Errorf("Load() RateLimit = %v, want 120", cfg.RateLimit)
		}
		if cfg.DefaultScreen != "dashboard" || cfg.TrustedProxies != nil {
			t.Errorf("Load() DefaultScreen/TrustedProxies = %v/%v", cfg.DefaultScreen, cfg.TrustedProxies)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("defaults should validate: %v", err)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DATA_BACKEND", "sqlite")
		t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		t.Setenv("CURRENCY", "eur")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("CACHE_SIZE", "16")
		t.Setenv("CACHE_TTL", "1m")
		t.Setenv("DEFAULT_SCREEN", "Accounts")
		t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, ,192.168.1.0/24")

		cfg := Load()

		if cfg.Port != "9090" || cfg.DataBackend != "sqlite" || cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() = %+v", cfg)
		}
		if cfg.Currency != "EUR" || cfg.LogLevel != "debug" {
			t.Errorf("Load() Currency/LogLevel = %v/%v", cfg.Currency, cfg.LogLevel)
		}
		if cfg.CacheSize != 16 || cfg.CacheTTL != time.Minute {
			t.Errorf("Load() CacheSize/CacheTTL = %v/%v", cfg.CacheSize, cfg.CacheTTL)
		}
		if cfg.DefaultScreen != "accounts" {
			t.Errorf("Load() DefaultScreen = %v, want accounts", cfg.DefaultScreen)
		}
		if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[1] != "192.168.1.0/24" {
			t.Errorf("Load() TrustedProxies = %q", cfg.TrustedProxies)
		}
	})

	t.Run("invalid numbers fall back to defaults", func(t *testing.T) {
		t.Setenv("CACHE_SIZE", "many")
		t.Setenv("CACHE_TTL", "soon")

		cfg := Load()

		if cfg.CacheSize != 64 || cfg.CacheTTL != 5*time.Minute {
			t.Errorf("Load() CacheSize/CacheTTL = %v/%v", cfg.CacheSize, cfg.CacheTTL)
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseLogLevel("trace"); err == nil {
		t.Error("expected error for unknown level")
	}
}
