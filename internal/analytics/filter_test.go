package analytics

import (
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/sample"
)

func ids(txs []core.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterTransactions(t *testing.T) {
	txs := sample.Transactions(time.Now())
	tests := []struct {
		name   string
		filter TransactionFilter
		want   []string
	}{
		{"all", TransactionFilter{Type: FilterAll}, []string{"1", "2", "3", "4"}},
		{"zero value is all", TransactionFilter{}, []string{"1", "2", "3", "4"}},
		{"income", TransactionFilter{Type: FilterIncome}, []string{"1", "4"}},
		{"expense", TransactionFilter{Type: FilterExpense}, []string{"2", "3"}},
		{"transfer", TransactionFilter{Type: FilterTransfer}, []string{}},
		{"search description", TransactionFilter{Query: "FUEL"}, []string{"3"}},
		{"search category name", TransactionFilter{Query: "dining"}, []string{"2"}},
		{"search and type", TransactionFilter{Type: FilterIncome, Query: "free"}, []string{"4"}},
		{"no match", TransactionFilter{Query: "yacht"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterTransactions(txs, tt.filter))
			if !equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTypeFilter(t *testing.T) {
	for in, want := range map[string]TypeFilter{"": FilterAll, "All": FilterAll, "EXPENSE": FilterExpense, " transfer ": FilterTransfer} {
		got, err := ParseTypeFilter(in)
		if err != nil || got != want {
			t.Errorf("ParseTypeFilter(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseTypeFilter("refunds"); err == nil {
		t.Errorf("expected error for unknown filter")
	}
}

func TestRecentTransactions(t *testing.T) {
	txs := []core.Transaction{
		tx("old", core.Expense, core.Food, 100, core.NewDate(2025, 1, 1)),
		tx("new", core.Expense, core.Food, 100, core.NewDate(2025, 3, 1)),
		tx("mid-a", core.Expense, core.Food, 100, core.NewDate(2025, 2, 1)),
		tx("mid-b", core.Expense, core.Food, 100, core.NewDate(2025, 2, 1)),
	}
	got := ids(RecentTransactions(txs, 3))
	if want := []string{"new", "mid-a", "mid-b"}; !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := RecentTransactions(txs, 10); len(got) != 4 {
		t.Fatalf("expected all 4, got %d", len(got))
	}
	if txs[0].ID != "old" {
		t.Fatalf("input was reordered")
	}
}

func TestActiveAccounts(t *testing.T) {
	accts := sample.Accounts()
	accts[1].IsActive = false
	got := ActiveAccounts(accts)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for _, a := range got {
		if a.ID == "2" {
			t.Fatalf("inactive account kept")
		}
	}
}
