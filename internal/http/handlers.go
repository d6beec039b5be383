package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"fintrack/internal/analytics"
	"fintrack/internal/export"
	applog "fintrack/internal/log"
	"fintrack/internal/screens"
)

const (
	maxSearchLength = 100
	readyTimeout    = 5 * time.Second
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.finance.Ready(ctx); err != nil {
		applog.FromContext(r.Context()).WithComponent(applog.ComponentHTTP).WarnContext(r.Context(),
			"Readiness check failed", applog.FieldError, err.Error())
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": "data backend not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := s.finance.Dashboard(r.Context())
	if err != nil {
		s.serverError(w, r, screens.DashboardScreen, err)
		return
	}
	s.served(r, screens.DashboardScreen, "", "", len(view.RecentTransactions))
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.finance.Transactions(r.Context(), filter)
	if err != nil {
		s.serverError(w, r, screens.TransactionsScreen, err)
		return
	}
	s.served(r, screens.TransactionsScreen, string(filter.Type), filter.Query, view.Count)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	view, err := s.finance.Analytics(r.Context())
	if err != nil {
		s.serverError(w, r, screens.AnalyticsScreen, err)
		return
	}
	s.served(r, screens.AnalyticsScreen, "", "", len(view.CategoryBreakdown))
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	view, err := s.finance.Accounts(r.Context())
	if err != nil {
		s.serverError(w, r, screens.AccountsScreen, err)
		return
	}
	s.served(r, screens.AccountsScreen, "", "", view.AccountCount)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	view := s.finance.Settings(r.Context())
	s.served(r, screens.SettingsScreen, "", "", len(view.Categories))
	writeJSON(w, http.StatusOK, view)
}

// handleExport streams a report download. ?format= defaults to csv; ?type=
// and ?q= filter the transaction list like /api/transactions.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := export.CSV
	if v := r.URL.Query().Get("format"); v != "" {
		f, err := export.ParseFormat(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}
	filter, err := parseTransactionFilter(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.finance.Report(r.Context(), filter)
	if err != nil {
		s.serverError(w, r, "export", err)
		return
	}

	// Encode fully before any header is written.
	var buf bytes.Buffer
	if err := export.Write(&buf, report, format); err != nil {
		s.serverError(w, r, "export", err)
		return
	}

	name := export.Filename("fintrack", report.GeneratedAt, format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())

	applog.NewStructuredLogger(applog.FromContext(r.Context())).
		LogExportWritten(r.Context(), string(format), name)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Stats())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found")
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WithComponent(applog.ComponentSecurity).WarnContext(r.Context(),
		"Rate limit exceeded", applog.FieldClientIP, s.detector.ExtractClientIP(r), applog.FieldPath, r.URL.Path)
	writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

// getOnly rejects every method but GET and HEAD.
func (s *Server) getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next(w, r)
	}
}

// parseTransactionFilter reads ?type= and ?q=. An empty type means all.
func parseTransactionFilter(r *http.Request) (analytics.TransactionFilter, error) {
	query := r.URL.Query()

	typ, err := analytics.ParseTypeFilter(query.Get("type"))
	if err != nil {
		return analytics.TransactionFilter{}, err
	}

	search := sanitizeInput(query.Get("q"))
	if utf8.RuneCountInString(search) > maxSearchLength {
		return analytics.TransactionFilter{}, errSearchTooLong
	}

	return analytics.TransactionFilter{Type: typ, Query: search}, nil
}

func (s *Server) served(r *http.Request, screen screens.Screen, filterType, search string, count int) {
	applog.NewStructuredLogger(applog.FromContext(r.Context())).
		LogScreenServed(r.Context(), string(screen), filterType, search, count)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, screen screens.Screen, err error) {
	fields := applog.NewFields().WithScreen(string(screen), "", "")
	applog.NewStructuredLogger(applog.FromContext(r.Context())).
		LogError(r.Context(), "Failed to build screen", err, applog.ComponentHTTP, applog.OpRender, fields)
	writeError(w, r, http.StatusInternalServerError, "failed to load "+string(screen))
}
