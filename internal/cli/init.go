// Package cli wires configuration, logging and the data backend into the
// fintrack commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/backend"
	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/version"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadConfig reads the environment, overlays the config file when given
// and validates the result.
func LoadConfig(configFile string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadWithFile(configFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Load()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the application logger at the configured level and
// makes it the slog default.
func SetupLogger(cfg *config.Config, out io.Writer) (*applog.Logger, error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
		Output:    out,
	})
	applog.SetDefault(logger)
	return logger, nil
}

// InitFinance opens the configured backend and puts a FinanceService in
// front of it. The caller closes the returned backend.
func InitFinance(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*services.FinanceService, *backend.BackendResult, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	result, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Slog()).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize %s backend: %w", backendCfg.Type, err)
	}

	finance := services.NewFinanceService(result.Backend, services.Options{
		Currency:    cfg.Currency,
		Version:     version.Short(),
		DataBackend: result.Type.String(),
		CacheSize:   cfg.CacheSize,
		CacheTTL:    cfg.CacheTTL,
		Logger:      logger.WithComponent(applog.ComponentService).Slog(),
	})
	return finance, result, nil
}

// RunUntilSignal calls run and waits for it to return, for ctx to end or
// for SIGINT/SIGTERM. Any of the last two triggers shutdown, which gets
// timeout to finish.
func RunUntilSignal(ctx context.Context, logger *applog.Logger, timeout time.Duration, run func() error, shutdown func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := shutdown(shutdownCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("Shutdown timeout reached")
		}
		return fmt.Errorf("shutdown: %w", err)
	}

	if err := <-errCh; err != nil {
		return err
	}
	logger.Info("Shutdown complete")
	return nil
}

// Main runs the command line and returns the exit status.
func Main(args []string) int {
	LoadEnvFile()
	if err := NewApp(os.Stdout, os.Stderr).Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
