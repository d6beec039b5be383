package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/cache"
	"fintrack/internal/export"
	applog "fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/screens"
)

// FinanceReader is the read side the API serves.
type FinanceReader interface {
	Dashboard(ctx context.Context) (screens.Dashboard, error)
	Transactions(ctx context.Context, f analytics.TransactionFilter) (screens.Transactions, error)
	Analytics(ctx context.Context) (screens.Analytics, error)
	Accounts(ctx context.Context) (screens.Accounts, error)
	Settings(ctx context.Context) screens.Settings
	Report(ctx context.Context, f analytics.TransactionFilter) (export.Report, error)
	Ready(ctx context.Context) error
	CacheStats() cache.Stats
}

type Options struct {
	Logger    *applog.Logger
	RateLimit int
	// CIDRs added to the detector's trusted proxies
	TrustedProxies []string
	// Stopped on Shutdown when set
	Caches *cache.Manager
}

type Server struct {
	http.Server
	finance  FinanceReader
	logger   *applog.Logger
	tracer   *trace.Middleware
	detector *security.Detector
	limiter  *ratelimit.Limiter
	caches   *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, finance FinanceReader, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	detector := security.NewDetector()
	for _, cidr := range opts.TrustedProxies {
		if err := detector.AddTrustedProxy(cidr); err != nil {
			logger.Warn("Ignoring trusted proxy", applog.FieldError, err.Error())
		}
	}
	limiter := ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimit})
	limiter.Start()

	s := &Server{
		finance:  finance,
		logger:   logger,
		tracer:   trace.NewMiddleware(logger, detector.ExtractClientIP),
		detector: detector,
		limiter:  limiter,
		caches:   opts.Caches,
	}

	api := http.NewServeMux()
	api.HandleFunc("/api/dashboard", s.getOnly(s.handleDashboard))
	api.HandleFunc("/api/transactions", s.getOnly(s.handleTransactions))
	api.HandleFunc("/api/analytics", s.getOnly(s.handleAnalytics))
	api.HandleFunc("/api/accounts", s.getOnly(s.handleAccounts))
	api.HandleFunc("/api/settings", s.getOnly(s.handleSettings))
	api.HandleFunc("/api/export", s.getOnly(s.handleExport))
	api.HandleFunc("/api/stats", s.getOnly(s.handleStats))
	api.HandleFunc("/api/", s.handleNotFound)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.getOnly(handleHealth))
	mux.HandleFunc("/readyz", s.getOnly(s.handleReady))
	mux.Handle("/api/", limiter.Middleware(detector.ExtractClientIP, s.handleRateLimited)(api))
	mux.HandleFunc("/", s.handleNotFound)

	var handler http.Handler = mux
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = detector.Middleware(handler)
	handler = s.tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		if s.caches != nil {
			s.caches.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// Stats is the body of GET /api/stats.
type Stats struct {
	Cache      cache.Stats       `json:"cache"`
	Requests   trace.Metrics     `json:"requests"`
	RateLimit  ratelimit.Metrics `json:"rate_limit"`
	Suspicious int64             `json:"suspicious_requests"`
}

func (s *Server) Stats() Stats {
	return Stats{
		Cache:      s.finance.CacheStats(),
		Requests:   s.tracer.GetMetrics(),
		RateLimit:  s.limiter.GetMetrics(),
		Suspicious: s.detector.SuspiciousCount(),
	}
}
