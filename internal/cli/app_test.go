package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	applog "fintrack/internal/log"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "SQLITE_DB_PATH", "POSTGRES_URL", "SEED_FILE", "CURRENCY", "CACHE_SIZE", "CACHE_TTL", "RATE_LIMIT_PER_MINUTE", "DEFAULT_SCREEN", "TRUSTED_PROXIES"} {
		t.Setenv(k, "")
	}
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(context.Background(), append([]string{"--no-color"}, args...))
	return out.String(), errOut.String(), err
}

func TestApp_Screens(t *testing.T) {
	setTestEnv(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"root shows banner and dashboard", nil, []string{"Personal Finance Tracker", "Dashboard", "$131,249.75"}},
		{"dashboard", []string{"dashboard"}, []string{"Recent Transactions", "Monthly Salary", "Emergency Fund"}},
		{"transactions filtered", []string{"transactions", "--type", "income"}, []string{"[Income]", "Freelance Project", "2 transaction(s)"}},
		{"transactions search", []string{"tx", "-s", "fuel"}, []string{"Fuel", "1 transaction(s)"}},
		{"analytics", []string{"analytics"}, []string{"Spending by Category", "Monthly Trend"}},
		{"accounts", []string{"accounts"}, []string{"Total Assets: $131,249.75", "4 accounts, 4 active"}},
		{"settings", []string{"settings"}, []string{"USD ($)", "memory", "Categories"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Run(%v): %v", tt.args, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestApp_DefaultScreen(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DEFAULT_SCREEN", "accounts")

	out, _, err := run(t)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "Personal Finance Tracker") || !strings.Contains(out, "Total Assets") {
		t.Errorf("root should show the banner and the accounts screen:\n%s", out)
	}
	if strings.Contains(out, "Recent Transactions") {
		t.Errorf("dashboard shown instead of accounts:\n%s", out)
	}
}

func TestApp_Errors(t *testing.T) {
	setTestEnv(t)

	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{"bad type filter", nil, []string{"transactions", "--type", "refund"}, "invalid transaction filter"},
		{"bad export format", nil, []string{"export", "--format", "xlsx"}, "unsupported export format"},
		{"invalid config", map[string]string{"CURRENCY": "EURO"}, []string{"dashboard"}, "configuration validation failed"},
		{"missing seed file", map[string]string{"SEED_FILE": "/does/not/exist.json"}, []string{"dashboard"}, "seed file does not exist"},
		{"missing config file", nil, []string{"-C", "/does/not/exist.toml", "settings"}, "exist.toml"},
		{"unexpected argument", nil, []string{"accounts", "extra"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, _, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Run(%v) error = %v, want %q", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestApp_Export(t *testing.T) {
	setTestEnv(t)
	dir := filepath.Join(t.TempDir(), "out")

	out, _, err := run(t, "export", "--format", "csv,json", "--dir", dir, "--name", "june", "--type", "expense")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.Count(out, "report saved to") != 2 {
		t.Errorf("output = %s", out)
	}

	for _, pattern := range []string{"june_*.csv", "june_*.json"} {
		matches, _ := filepath.Glob(filepath.Join(dir, pattern))
		if len(matches) != 1 {
			t.Fatalf("%s: found %v", pattern, matches)
		}
	}

	csvFiles, _ := filepath.Glob(filepath.Join(dir, "june_*.csv"))
	data, err := os.ReadFile(csvFiles[0])
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Monthly Salary") || !strings.Contains(string(data), "Grocery Shopping") {
		t.Errorf("csv should only hold expenses:\n%s", data)
	}
}

func TestApp_ConfigFileSelectsSQLite(t *testing.T) {
	setTestEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "fintrack.toml")
	content := `data_backend = "sqlite"
sqlite_db_path = "` + filepath.ToSlash(filepath.Join(dir, "fintrack.db")) + `"
currency = "eur"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "--config-file", cfgPath, "settings")
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	for _, w := range []string{"EUR (€)", "sqlite"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}

	out, _, err = run(t, "-C", cfgPath, "accounts")
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if !strings.Contains(out, "€131,249.75") {
		t.Errorf("accounts should come from the seeded database:\n%s", out)
	}
}

func TestApp_Version(t *testing.T) {
	out, _, err := run(t, "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.HasPrefix(out, "fintrack version: ") {
		t.Errorf("output = %q", out)
	}
}

func TestRunUntilSignal(t *testing.T) {
	logger := applog.New(applog.Config{Output: &bytes.Buffer{}})

	t.Run("context cancel triggers shutdown", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		stopped := make(chan struct{})
		run := func() error {
			<-stopped
			return nil
		}
		shutdown := func(context.Context) error {
			close(stopped)
			return nil
		}
		time.AfterFunc(10*time.Millisecond, cancel)

		if err := RunUntilSignal(ctx, logger, time.Second, run, shutdown); err != nil {
			t.Fatalf("RunUntilSignal: %v", err)
		}
	})

	t.Run("run error is returned", func(t *testing.T) {
		boom := errors.New("listen failed")
		err := RunUntilSignal(context.Background(), logger, time.Second,
			func() error { return boom },
			func(context.Context) error { t.Error("shutdown should not run"); return nil })
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want %v", err, boom)
		}
	})

	t.Run("shutdown error is wrapped", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		block := make(chan struct{})
		defer close(block)
		err := RunUntilSignal(ctx, logger, time.Second,
			func() error { <-block; return nil },
			func(context.Context) error { return context.DeadlineExceeded })
		if err == nil || !strings.Contains(err.Error(), "shutdown") {
			t.Fatalf("err = %v", err)
		}
	})
}
