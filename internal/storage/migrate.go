package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	applog "fintrack/internal/log"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// RunSQLiteMigrations applies the schema and the sample seed to the SQLite
// file at dbPath, returning the resulting schema version. Re-running against
// an up-to-date database is a no-op.
func RunSQLiteMigrations(dbPath string) (uint, error) {
	// The migrator closes its connection; the repository opens its own.
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return 0, fmt.Errorf("create sqlite driver: %w", err)
	}
	return migrateUp(driver, dialectSQLite, "db_path", dbPath)
}

// RunPostgresMigrations is RunSQLiteMigrations for a PostgreSQL database.
func RunPostgresMigrations(dsn string) (uint, error) {
	migrateDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return 0, fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := postgres.WithInstance(migrateDB, &postgres.Config{})
	if err != nil {
		return 0, fmt.Errorf("create postgres driver: %w", err)
	}
	return migrateUp(driver, dialectPostgres)
}

func migrateUp(driver database.Driver, dialect string, logArgs ...any) (uint, error) {
	src, err := iofs.New(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return 0, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dialect, driver)
	if err != nil {
		return 0, fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("database left dirty at version %d", version)
	}

	slog.Info("Migrations applied", append([]any{
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpMigrate,
		"dialect", dialect,
		"version", version,
	}, logArgs...)...)
	return version, nil
}
