package backend

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fintrack/internal/config"
)

func TestCreateBackend_Memory(t *testing.T) {
	f := NewFactory(nil)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	res, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	defer res.Close()

	txs, err := res.Backend.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 4 || txs[0].Date.String() != "2025-03-10" {
		t.Fatalf("unexpected transactions: %+v", txs)
	}
	if res.Type != MemoryBackend {
		t.Errorf("Type = %s, want memory", res.Type)
	}
	if err := res.Ping(context.Background()); err != nil {
		t.Errorf("memory backend should always be healthy: %v", err)
	}
}

func TestCreateBackend_SQLite(t *testing.T) {
	f := NewFactory(nil)
	dbPath := filepath.Join(t.TempDir(), "fintrack.db")

	res, err := f.CreateBackend(context.Background(), Config{Type: SQLiteBackend, SQLiteDBPath: dbPath})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	defer res.Close()

	accts, err := res.Backend.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accts) != 4 {
		t.Fatalf("got %d accounts, want 4", len(accts))
	}
	if err := res.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestCreateBackend_Errors(t *testing.T) {
	f := NewFactory(nil)
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{"unknown type", Config{Type: "sheets"}, "invalid backend type"},
		{"sqlite without path", Config{Type: SQLiteBackend}, "database path is required"},
		{"sqlite with seed file", Config{Type: SQLiteBackend, SQLiteDBPath: "x.db", SeedFile: "seed.json"}, "only supported by the memory backend"},
		{"postgres without url", Config{Type: PostgresBackend}, "PostgreSQL URL is required"},
		{"postgres with seed file", Config{Type: PostgresBackend, PostgresURL: "postgres://localhost/x", SeedFile: "seed.json"}, "only supported by the memory backend"},
		{"missing seed file", Config{Type: MemoryBackend, SeedFile: filepath.Join(t.TempDir(), "none.json")}, "failed to initialize memory backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.CreateBackend(context.Background(), tt.config)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}

	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "./data/x.db"})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "./data/x.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	cfg, err = FromAppConfig(&config.Config{DataBackend: "postgres", PostgresURL: "postgres://localhost/fintrack"})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != PostgresBackend || cfg.PostgresURL != "postgres://localhost/fintrack" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	_, err = FromAppConfig(&config.Config{DataBackend: "sheets"})
	if err == nil || !strings.Contains(err.Error(), "want one of [memory sqlite postgres]") {
		t.Fatalf("expected error listing the backends, got %v", err)
	}
}

func TestGetBackendTypeStrings(t *testing.T) {
	got := GetBackendTypeStrings()
	if strings.Join(got, ",") != "memory,sqlite,postgres" {
		t.Fatalf("GetBackendTypeStrings = %v", got)
	}
}
