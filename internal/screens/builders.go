package screens

import (
	"math"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/sample"
)

const (
	// RecentLimit is how many transactions the dashboard lists.
	RecentLimit = 3
	// UpcomingDays is the window of recurring transactions shown as upcoming.
	UpcomingDays = 30
)

// Totals is the income, expense and net of a set of transactions.
type Totals struct {
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
	Net     core.Money `json:"net"`
}

type Dashboard struct {
	Currency           string           `json:"currency"`
	TotalBalance       core.Money       `json:"total_balance"`
	BalanceDisplay     string           `json:"balance_display"`
	Totals             Totals           `json:"totals"`
	Accounts           []AccountRow     `json:"accounts"`
	RecentTransactions []TransactionRow `json:"recent_transactions"`
	Upcoming           []UpcomingRow    `json:"upcoming"`
	Budgets            []BudgetRow      `json:"budgets"`
	Goals              []GoalRow        `json:"goals"`
}

// UpcomingRow is the next repetition of a recurring transaction.
type UpcomingRow struct {
	TransactionRow
	Due core.Date `json:"due"`
}

type Transactions struct {
	Currency     string                      `json:"currency"`
	Filter       analytics.TransactionFilter `json:"filter"`
	Filters      []analytics.TypeFilter      `json:"filters"`
	Count        int                         `json:"count"`
	Transactions []TransactionRow            `json:"transactions"`
	Summary      Totals                      `json:"summary"`
}

// TrendSource tells whether the monthly trend was computed from the
// transactions or taken from the built-in history.
type TrendSource string

const (
	TrendFromTransactions TrendSource = "transactions"
	TrendFromHistory      TrendSource = "history"
)

type Analytics struct {
	Currency string `json:"currency"`
	core.Analytics
	TrendSource TrendSource `json:"trend_source"`
}

type Accounts struct {
	Currency     string       `json:"currency"`
	TotalAssets  core.Money   `json:"total_assets"`
	AssetDisplay string       `json:"asset_display"`
	AccountCount int          `json:"account_count"`
	ActiveCount  int          `json:"active_count"`
	Accounts     []AccountRow `json:"accounts"`
}

// ScreenInfo is one entry of the navigation bar.
type ScreenInfo struct {
	Key   Screen `json:"key"`
	Title string `json:"title"`
}

type CategoryInfo struct {
	Key  core.Category `json:"key"`
	Name string        `json:"name"`
}

// AppInfo is what the settings screen reports about the running process.
type AppInfo struct {
	Version     string
	DataBackend string
}

type Settings struct {
	Currency       string         `json:"currency"`
	CurrencySymbol string         `json:"currency_symbol"`
	DataBackend    string         `json:"data_backend"`
	Version        string         `json:"version"`
	Screens        []ScreenInfo   `json:"screens"`
	Categories     []CategoryInfo `json:"categories"`
}

// BuildDashboard uses the snapshot's load time as today.
func BuildDashboard(s Snapshot, currency string) Dashboard {
	balance := analytics.TotalBalance(s.Accounts)
	today := core.DateOf(s.LoadedAt)
	upcoming := []UpcomingRow{}
	for _, o := range analytics.UpcomingRecurring(s.Transactions, today, UpcomingDays) {
		row := transactionRows([]core.Transaction{o.Transaction}, currency)[0]
		upcoming = append(upcoming, UpcomingRow{TransactionRow: row, Due: o.Due})
	}
	return Dashboard{
		Currency:           currency,
		TotalBalance:       balance,
		BalanceDisplay:     balance.Format(currency),
		Totals:             totals(s.Transactions),
		Accounts:           accountRows(s.Accounts),
		RecentTransactions: transactionRows(analytics.RecentTransactions(s.Transactions, RecentLimit), currency),
		Upcoming:           upcoming,
		Budgets:            budgetRows(s.Budgets, currency),
		Goals:              goalRows(s.Goals, currency),
	}
}

// BuildTransactions lists the transactions matching f. The summary always
// covers the whole dataset.
func BuildTransactions(s Snapshot, f analytics.TransactionFilter, currency string) Transactions {
	if f.Type == "" {
		f.Type = analytics.FilterAll
	}
	matched := analytics.FilterTransactions(s.Transactions, f)
	return Transactions{
		Currency:     currency,
		Filter:       f,
		Filters:      analytics.Filters(),
		Count:        len(matched),
		Transactions: transactionRows(matched, currency),
		Summary:      totals(s.Transactions),
	}
}

// BuildAnalytics computes the overview. The monthly trend comes from the
// transactions when they span more than one month, otherwise from the
// built-in six-month history.
func BuildAnalytics(s Snapshot, currency string) Analytics {
	a := analytics.Summarize(s.Transactions)
	source := TrendFromTransactions
	if len(a.MonthlyTrend) < 2 {
		a.MonthlyTrend = sample.MonthlyHistory()
		source = TrendFromHistory
	}
	if a.CategoryBreakdown == nil {
		a.CategoryBreakdown = []core.CategoryAmount{}
	}
	return Analytics{Currency: currency, Analytics: a, TrendSource: source}
}

func BuildAccounts(s Snapshot, currency string) Accounts {
	total := analytics.TotalBalance(s.Accounts)
	return Accounts{
		Currency:     currency,
		TotalAssets:  total,
		AssetDisplay: total.Format(currency),
		AccountCount: len(s.Accounts),
		ActiveCount:  len(analytics.ActiveAccounts(s.Accounts)),
		Accounts:     accountRows(s.Accounts),
	}
}

func BuildSettings(info AppInfo, currency string) Settings {
	out := Settings{
		Currency:       currency,
		CurrencySymbol: core.CurrencySymbol(currency),
		DataBackend:    info.DataBackend,
		Version:        info.Version,
	}
	for _, sc := range Screens() {
		out.Screens = append(out.Screens, ScreenInfo{Key: sc, Title: sc.Title()})
	}
	for _, c := range core.Categories() {
		out.Categories = append(out.Categories, CategoryInfo{Key: c, Name: c.DisplayName()})
	}
	return out
}

func totals(txs []core.Transaction) Totals {
	return Totals{
		Income:  analytics.TotalIncome(txs),
		Expense: analytics.TotalExpense(txs),
		Net:     analytics.NetAmount(txs),
	}
}

// SignedDisplay renders income with a leading "+" and everything else
// with "-".
func SignedDisplay(t core.Transaction, currency string) string {
	if t.Type == core.Income {
		return "+" + t.Amount.Format(currency)
	}
	return "-" + t.Amount.Format(currency)
}

func transactionRows(txs []core.Transaction, currency string) []TransactionRow {
	out := make([]TransactionRow, len(txs))
	for i, t := range txs {
		out[i] = TransactionRow{
			ID:           t.ID,
			Description:  t.Description,
			Category:     t.Category,
			CategoryName: t.Category.DisplayName(),
			Type:         t.Type,
			Amount:       t.Amount,
			Display:      SignedDisplay(t, currency),
			Date:         t.Date,
			AccountID:    t.AccountID,
			IsRecurring:  t.IsRecurring,
			Tags:         append([]string{}, t.Tags...),
		}
	}
	return out
}

func accountRows(accounts []core.Account) []AccountRow {
	out := make([]AccountRow, len(accounts))
	for i, a := range accounts {
		out[i] = AccountRow{
			ID:       a.ID,
			Name:     a.Name,
			Type:     a.Type,
			TypeName: a.Type.DisplayName(),
			Balance:  a.Balance,
			Display:  a.Balance.Format(a.Currency),
			Currency: a.Currency,
			IsActive: a.IsActive,
		}
	}
	return out
}

func budgetRows(budgets []core.Budget, currency string) []BudgetRow {
	out := make([]BudgetRow, len(budgets))
	for i, b := range budgets {
		out[i] = BudgetRow{
			ID:         b.ID,
			Name:       b.Name,
			Period:     b.Period,
			Categories: append([]core.Category{}, b.Categories...),
			Spent:      b.Spent,
			Amount:     b.Amount,
			Remaining:  analytics.BudgetRemaining(b),
			Progress:   analytics.BudgetProgress(b),
			Display:    b.Spent.Format(currency) + " / " + b.Amount.Format(currency),
		}
	}
	return out
}

func goalRows(goals []core.FinancialGoal, currency string) []GoalRow {
	out := make([]GoalRow, len(goals))
	for i, g := range goals {
		p := analytics.GoalProgress(g)
		out[i] = GoalRow{
			ID:          g.ID,
			Name:        g.Name,
			Category:    g.Category,
			Current:     g.CurrentAmount,
			Target:      g.TargetAmount,
			Remaining:   analytics.GoalRemaining(g),
			Progress:    p,
			Percent:     int(math.Floor(p*100 + 1e-9)),
			Deadline:    g.Deadline,
			IsCompleted: g.IsCompleted,
			Display:     g.CurrentAmount.Format(currency) + " / " + g.TargetAmount.Format(currency),
		}
	}
	return out
}
