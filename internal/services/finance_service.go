// Package services wires a data backend to the screen builders.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/analytics"
	"fintrack/internal/backend"
	"fintrack/internal/cache"
	"fintrack/internal/export"
	applog "fintrack/internal/log"
	"fintrack/internal/screens"
)

// Options configures a FinanceService.
type Options struct {
	Currency    string
	Version     string
	DataBackend string
	CacheSize   int
	CacheTTL    time.Duration
	Logger      *slog.Logger
	Now         func() time.Time
}

// FinanceService loads the dataset once and serves screen views built from
// it. Views are cached per screen and filter.
type FinanceService struct {
	backend backend.Backend
	views   *cache.LRUCache[any]
	opts    Options
	logger  *slog.Logger

	mu       sync.Mutex
	snapshot *screens.Snapshot
}

func NewFinanceService(b backend.Backend, opts Options) *FinanceService {
	if opts.Logger == nil {
		opts.Logger = slog.Default().With(applog.FieldComponent, applog.ComponentService)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 64
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	return &FinanceService{
		backend: b,
		views:   cache.NewLRUCache[any](opts.CacheSize, opts.CacheTTL),
		opts:    opts,
		logger:  opts.Logger,
	}
}

// ViewCache exposes the screen cache so a cache.Manager can sweep it.
func (s *FinanceService) ViewCache() *cache.LRUCache[any] {
	return s.views
}

// Snapshot returns the dataset, loading all four collections in parallel on
// first use. A failed load is retried on the next call.
func (s *FinanceService) Snapshot(ctx context.Context) (screens.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil {
		return *s.snapshot, nil
	}

	start := time.Now()
	var snap screens.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		accounts, err := s.backend.ListAccounts(gctx)
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		snap.Accounts = accounts
		return nil
	})
	g.Go(func() error {
		txs, err := s.backend.ListTransactions(gctx)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		snap.Transactions = txs
		return nil
	})
	g.Go(func() error {
		budgets, err := s.backend.ListBudgets(gctx)
		if err != nil {
			return fmt.Errorf("list budgets: %w", err)
		}
		snap.Budgets = budgets
		return nil
	})
	g.Go(func() error {
		goals, err := s.backend.ListGoals(gctx)
		if err != nil {
			return fmt.Errorf("list goals: %w", err)
		}
		snap.Goals = goals
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to load dataset",
			applog.FieldError, err.Error(),
			applog.FieldOperation, applog.OpLoad)
		return screens.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	snap.LoadedAt = s.opts.Now()

	s.snapshot = &snap
	s.logger.InfoContext(ctx, "Dataset loaded",
		"accounts", len(snap.Accounts),
		"transactions", len(snap.Transactions),
		"budgets", len(snap.Budgets),
		"goals", len(snap.Goals),
		"duration", time.Since(start))
	return snap, nil
}

func (s *FinanceService) Dashboard(ctx context.Context) (screens.Dashboard, error) {
	return cachedView(ctx, s, string(screens.DashboardScreen), func(snap screens.Snapshot) screens.Dashboard {
		return screens.BuildDashboard(snap, s.opts.Currency)
	})
}

func (s *FinanceService) Transactions(ctx context.Context, f analytics.TransactionFilter) (screens.Transactions, error) {
	if f.Type == "" {
		f.Type = analytics.FilterAll
	}
	key := fmt.Sprintf("%s:%s:%s", screens.TransactionsScreen, f.Type, strings.ToLower(strings.TrimSpace(f.Query)))
	return cachedView(ctx, s, key, func(snap screens.Snapshot) screens.Transactions {
		return screens.BuildTransactions(snap, f, s.opts.Currency)
	})
}

func (s *FinanceService) Analytics(ctx context.Context) (screens.Analytics, error) {
	return cachedView(ctx, s, string(screens.AnalyticsScreen), func(snap screens.Snapshot) screens.Analytics {
		return screens.BuildAnalytics(snap, s.opts.Currency)
	})
}

func (s *FinanceService) Accounts(ctx context.Context) (screens.Accounts, error) {
	return cachedView(ctx, s, string(screens.AccountsScreen), func(snap screens.Snapshot) screens.Accounts {
		return screens.BuildAccounts(snap, s.opts.Currency)
	})
}

// Settings does not depend on the dataset.
func (s *FinanceService) Settings(_ context.Context) screens.Settings {
	return screens.BuildSettings(screens.AppInfo{
		Version:     s.opts.Version,
		DataBackend: s.opts.DataBackend,
	}, s.opts.Currency)
}

// Report gathers every exportable screen. Transactions are filtered by f.
func (s *FinanceService) Report(ctx context.Context, f analytics.TransactionFilter) (export.Report, error) {
	dash, err := s.Dashboard(ctx)
	if err != nil {
		return export.Report{}, err
	}
	txs, err := s.Transactions(ctx, f)
	if err != nil {
		return export.Report{}, err
	}
	an, err := s.Analytics(ctx)
	if err != nil {
		return export.Report{}, err
	}
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return export.Report{}, err
	}
	return export.Report{
		GeneratedAt:  s.opts.Now(),
		Currency:     s.opts.Currency,
		Dashboard:    dash,
		Transactions: txs,
		Analytics:    an,
		Accounts:     accounts,
	}, nil
}

// Ready reports whether the dataset is loaded and the backend, when it can
// be pinged, still answers.
func (s *FinanceService) Ready(ctx context.Context) error {
	if _, err := s.Snapshot(ctx); err != nil {
		return err
	}
	if p, ok := s.backend.(backend.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("ping backend: %w", err)
		}
	}
	return nil
}

func (s *FinanceService) CacheStats() cache.Stats {
	return s.views.Stats()
}

func cachedView[T any](ctx context.Context, s *FinanceService, key string, build func(screens.Snapshot) T) (T, error) {
	var zero T
	v, err := s.views.GetOrCompute(key, func() (any, error) {
		snap, err := s.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		s.logger.DebugContext(ctx, "Building screen view", "key", key)
		return build(snap), nil
	})
	if err != nil {
		return zero, err
	}
	view, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cached view %q has unexpected type %T", key, v)
	}
	return view, nil
}
