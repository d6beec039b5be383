package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"fintrack/internal/core"
	applog "fintrack/internal/log"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	dialectSQLite   = "sqlite"
	dialectPostgres = "postgres"
)

// Column lists are shared; only the insertion-order column differs.
const (
	selectAccounts = `SELECT id, name, type, balance_cents, currency, is_active
		FROM accounts ORDER BY %s`
	selectTransactions = `SELECT id, amount_cents, type, category, description, date,
		account_id, is_recurring, recurring_period, tags
		FROM transactions ORDER BY %s`
	selectBudgets = `SELECT id, name, amount_cents, spent_cents, period, categories,
		start_date, end_date
		FROM budgets ORDER BY %s`
	selectGoals = `SELECT id, name, target_cents, current_cents, deadline, category, is_completed
		FROM goals ORDER BY %s`
)

type queries struct {
	accounts, transactions, budgets, goals string
}

func newQueries(orderBy string) queries {
	return queries{
		accounts:     fmt.Sprintf(selectAccounts, orderBy),
		transactions: fmt.Sprintf(selectTransactions, orderBy),
		budgets:      fmt.Sprintf(selectBudgets, orderBy),
		goals:        fmt.Sprintf(selectGoals, orderBy),
	}
}

// Repository reads the seeded dataset from SQLite or PostgreSQL. The
// connection is opened read-only once migrations have run.
type Repository struct {
	db      *sql.DB
	dialect string
	version uint
	q       queries
}

func NewSQLiteRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	version, err := RunSQLiteMigrations(dbPath)
	if err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=query_only(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return newRepository(db, dialectSQLite, version, "rowid")
}

// NewPostgresRepository migrates the database behind dsn, then opens a
// session whose transactions default to read-only.
func NewPostgresRepository(dsn string) (*Repository, error) {
	version, err := RunPostgresMigrations(dsn)
	if err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("postgres", readOnlyDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	return newRepository(db, dialectPostgres, version, "seq")
}

func newRepository(db *sql.DB, dialect string, version uint, orderBy string) (*Repository, error) {
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Repository{db: db, dialect: dialect, version: version, q: newQueries(orderBy)}, nil
}

// readOnlyDSN adds default_transaction_read_only to a URL or key=value DSN.
func readOnlyDSN(dsn string) string {
	const param = "default_transaction_read_only"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		q := u.Query()
		q.Set(param, "on")
		u.RawQuery = q.Encode()
		return u.String()
	}
	return strings.TrimSpace(dsn + " " + param + "=on")
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Dialect is "sqlite" or "postgres".
func (r *Repository) Dialect() string {
	return r.dialect
}

// SchemaVersion is the migration version the database was brought to.
func (r *Repository) SchemaVersion() uint {
	return r.version
}

// Ping reports whether the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ListAccounts implements store.AccountReader
func (r *Repository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx, r.q.accounts)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var (
			a       core.Account
			typ     string
			balance int64
		)
		if err := rows.Scan(&a.ID, &a.Name, &typ, &balance, &a.Currency, &a.IsActive); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Type = core.AccountType(typ)
		a.Balance = core.Money{Cents: balance}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	slog.DebugContext(ctx, "Accounts loaded",
		"dialect", r.dialect,
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldResultCount, len(out),
		applog.FieldOperation, applog.OpList)
	return out, nil
}

// ListTransactions implements store.TransactionReader
func (r *Repository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, r.q.transactions)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t                   core.Transaction
			amount              int64
			typ, category, date string
			recurringPeriod     sql.NullString
			tags                string
		)
		if err := rows.Scan(&t.ID, &amount, &typ, &category, &t.Description, &date,
			&t.AccountID, &t.IsRecurring, &recurringPeriod, &tags); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Amount = core.Money{Cents: amount}
		t.Type = core.TransactionType(typ)
		t.Category = core.Category(category)
		t.RecurringPeriod = core.Period(recurringPeriod.String)
		if t.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
			return nil, fmt.Errorf("transaction %s tags: %w", t.ID, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	slog.DebugContext(ctx, "Transactions loaded",
		"dialect", r.dialect,
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldResultCount, len(out),
		applog.FieldOperation, applog.OpList)
	return out, nil
}

// ListBudgets implements store.BudgetReader
func (r *Repository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, r.q.budgets)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var (
			b                   core.Budget
			amount, spent       int64
			period, cats, start string
			end                 sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Name, &amount, &spent, &period, &cats, &start, &end); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Amount = core.Money{Cents: amount}
		b.Spent = core.Money{Cents: spent}
		b.Period = core.Period(period)
		if err := json.Unmarshal([]byte(cats), &b.Categories); err != nil {
			return nil, fmt.Errorf("budget %s categories: %w", b.ID, err)
		}
		if b.StartDate, err = core.ParseDate(start); err != nil {
			return nil, fmt.Errorf("budget %s: %w", b.ID, err)
		}
		if end.Valid && end.String != "" {
			if b.EndDate, err = core.ParseDate(end.String); err != nil {
				return nil, fmt.Errorf("budget %s: %w", b.ID, err)
			}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}

// ListGoals implements store.GoalReader
func (r *Repository) ListGoals(ctx context.Context) ([]core.FinancialGoal, error) {
	rows, err := r.db.QueryContext(ctx, r.q.goals)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var out []core.FinancialGoal
	for rows.Next() {
		var (
			g               core.FinancialGoal
			target, current int64
			deadline, cat   sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.Name, &target, &current, &deadline, &cat, &g.IsCompleted); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.TargetAmount = core.Money{Cents: target}
		g.CurrentAmount = core.Money{Cents: current}
		g.Category = core.Category(cat.String)
		if deadline.Valid && deadline.String != "" {
			if g.Deadline, err = core.ParseDate(deadline.String); err != nil {
				return nil, fmt.Errorf("goal %s: %w", g.ID, err)
			}
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return out, nil
}
