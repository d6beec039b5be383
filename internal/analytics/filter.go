package analytics

import (
	"fmt"
	"sort"
	"strings"

	"fintrack/internal/core"
)

// TypeFilter selects transactions by type on the transactions screen.
type TypeFilter string

const (
	FilterAll      TypeFilter = "all"
	FilterIncome   TypeFilter = "income"
	FilterExpense  TypeFilter = "expense"
	FilterTransfer TypeFilter = "transfer"
)

// Filters lists the chips shown on the transactions screen, in order.
func Filters() []TypeFilter {
	return []TypeFilter{FilterAll, FilterIncome, FilterExpense, FilterTransfer}
}

// ParseTypeFilter is case-insensitive; the empty string means all.
func ParseTypeFilter(s string) (TypeFilter, error) {
	f := TypeFilter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterIncome, FilterExpense, FilterTransfer:
		return f, nil
	}
	return "", fmt.Errorf("invalid transaction filter %q", s)
}

func (f TypeFilter) matches(t core.TransactionType) bool {
	switch f {
	case FilterIncome:
		return t == core.Income
	case FilterExpense:
		return t == core.Expense
	case FilterTransfer:
		return t == core.Transfer
	}
	return true
}

// TransactionFilter combines the type chip and the search box.
type TransactionFilter struct {
	Type  TypeFilter `json:"type"`
	Query string     `json:"query"`
}

// FilterTransactions keeps the transactions matching the type and whose
// description or category display name contains the query, ignoring case.
// Order is preserved.
func FilterTransactions(transactions []core.Transaction, f TransactionFilter) []core.Transaction {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]core.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !f.Type.matches(tx.Type) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(tx.Description), q) &&
			!strings.Contains(strings.ToLower(tx.Category.DisplayName()), q) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// RecentTransactions returns up to n transactions, newest first. Equal dates
// keep their input order.
func RecentTransactions(transactions []core.Transaction, n int) []core.Transaction {
	out := append([]core.Transaction(nil), transactions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ActiveAccounts drops accounts flagged inactive.
func ActiveAccounts(accounts []core.Account) []core.Account {
	out := make([]core.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out
}
