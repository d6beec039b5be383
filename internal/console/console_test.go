package console

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/screens"
	"fintrack/internal/sample"
)

var fixedNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	SetColor(false)
	os.Exit(m.Run())
}

func snapshot() screens.Snapshot {
	return screens.Snapshot{
		Accounts:     sample.Accounts(),
		Transactions: sample.Transactions(fixedNow),
		Budgets:      sample.Budgets(fixedNow),
		Goals:        sample.Goals(),
		LoadedAt:     fixedNow,
	}
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestRenderer_Dashboard(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(&buf).Dashboard(screens.BuildDashboard(snapshot(), "USD")); err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	assertContains(t, buf.String(),
		"Dashboard", "$131,249.75", "Recent Transactions", "Monthly Salary",
		"Food & Dining", "Emergency Fund", " 50%")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("color disabled but escape codes written")
	}
}

func TestRenderer_DashboardEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(&buf).Dashboard(screens.BuildDashboard(screens.Snapshot{LoadedAt: fixedNow}, "USD")); err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	assertContains(t, buf.String(), "No transactions yet", "No budgets", "No goals")
}

func TestRenderer_Transactions(t *testing.T) {
	tests := []struct {
		name    string
		filter  analytics.TransactionFilter
		want    []string
		notWant []string
	}{
		{
			name:    "income only",
			filter:  analytics.TransactionFilter{Type: analytics.FilterIncome},
			want:    []string{"[Income]", "Monthly Salary", "Freelance Project", "2 transaction(s)"},
			notWant: []string{"Fuel"},
		},
		{
			name:   "search",
			filter: analytics.TransactionFilter{Type: analytics.FilterAll, Query: "grocery"},
			want:   []string{"[All]", `Search: "grocery"`, "Grocery Shopping", "1 transaction(s)"},
		},
		{
			name:   "nothing matches",
			filter: analytics.TransactionFilter{Type: analytics.FilterTransfer},
			want:   []string{"No transactions match", "Income $6,200.00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewRenderer(&buf).Transactions(screens.BuildTransactions(snapshot(), tt.filter, "USD")); err != nil {
				t.Fatalf("Transactions: %v", err)
			}
			assertContains(t, buf.String(), tt.want...)
			for _, nw := range tt.notWant {
				if strings.Contains(buf.String(), nw) {
					t.Errorf("output should not contain %q", nw)
				}
			}
		})
	}
}

func TestRenderer_Analytics(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(&buf).Analytics(screens.BuildAnalytics(snapshot(), "USD")); err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	assertContains(t, buf.String(),
		"Analytics", "Savings Rate", "Spending by Category", "Food & Dining",
		"Monthly Trend (history)", "Jan", "Jun")
}

func TestRenderer_AnalyticsNoExpenses(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(&buf).Analytics(screens.BuildAnalytics(screens.Snapshot{}, "USD")); err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	assertContains(t, buf.String(), "No expenses recorded")
}

func TestRenderer_AccountsAndSettings(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	if err := r.Accounts(screens.BuildAccounts(snapshot(), "USD")); err != nil {
		t.Fatalf("Accounts: %v", err)
	}
	assertContains(t, buf.String(), "Total Assets: $131,249.75", "4 accounts, 4 active", "Credit Card", "-$1,250.75")

	buf.Reset()
	if err := r.Settings(screens.BuildSettings(screens.AppInfo{Version: "1.2.3", DataBackend: "sqlite"}, "EUR")); err != nil {
		t.Fatalf("Settings: %v", err)
	}
	assertContains(t, buf.String(), "EUR (€)", "sqlite", "1.2.3", "transactions", "Salary")
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		p      float64
		filled int
	}{
		{0, 0},
		{0.5, 15},
		{1, 30},
		{1.7, 30},
		{-1, 0},
	}
	for _, tt := range tests {
		bar := progressBar(tt.p)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("progressBar(%v) filled = %d, want %d", tt.p, got, tt.filled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != barWidth {
			t.Errorf("progressBar(%v) width = %d", tt.p, got)
		}
	}
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	Banner(&buf, "0.1.0")
	assertContains(t, buf.String(), "Personal Finance Tracker (v0.1.0)")
}
