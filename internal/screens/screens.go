// Package screens turns a dataset snapshot into the view models of the
// tracker's five screens. Builders are pure and never modify the snapshot.
package screens

import (
	"fmt"
	"strings"
	"time"

	"fintrack/internal/core"
)

// Screen identifies one of the tracker's top-level views.
type Screen string

const (
	DashboardScreen    Screen = "dashboard"
	TransactionsScreen Screen = "transactions"
	AnalyticsScreen    Screen = "analytics"
	AccountsScreen     Screen = "accounts"
	SettingsScreen     Screen = "settings"
)

var screenTitles = map[Screen]string{
	DashboardScreen:    "Dashboard",
	TransactionsScreen: "Transactions",
	AnalyticsScreen:    "Analytics",
	AccountsScreen:     "Accounts",
	SettingsScreen:     "Settings",
}

// Screens lists the views in navigation order.
func Screens() []Screen {
	return []Screen{DashboardScreen, TransactionsScreen, AnalyticsScreen, AccountsScreen, SettingsScreen}
}

func ParseScreen(s string) (Screen, error) {
	sc := Screen(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := screenTitles[sc]; !ok {
		return "", fmt.Errorf("unknown screen %q", s)
	}
	return sc, nil
}

func (s Screen) Title() string {
	if t, ok := screenTitles[s]; ok {
		return t
	}
	return string(s)
}

// Snapshot is the immutable dataset every screen is built from.
type Snapshot struct {
	Accounts     []core.Account
	Transactions []core.Transaction
	Budgets      []core.Budget
	Goals        []core.FinancialGoal
	LoadedAt     time.Time
}

// TransactionRow is a transaction as listed on screen.
type TransactionRow struct {
	ID           string               `json:"id"`
	Description  string               `json:"description"`
	Category     core.Category        `json:"category"`
	CategoryName string               `json:"category_name"`
	Type         core.TransactionType `json:"type"`
	Amount       core.Money           `json:"amount"`
	Display      string               `json:"display"`
	Date         core.Date            `json:"date"`
	AccountID    string               `json:"account_id"`
	IsRecurring  bool                 `json:"is_recurring"`
	Tags         []string             `json:"tags"`
}

type AccountRow struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Type     core.AccountType `json:"type"`
	TypeName string           `json:"type_name"`
	Balance  core.Money       `json:"balance"`
	Display  string           `json:"display"`
	Currency string           `json:"currency"`
	IsActive bool             `json:"is_active"`
}

type BudgetRow struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Period     core.Period     `json:"period"`
	Categories []core.Category `json:"categories"`
	Spent      core.Money      `json:"spent"`
	Amount     core.Money      `json:"amount"`
	Remaining  core.Money      `json:"remaining"`
	Progress   float64         `json:"progress"` // 0-1
	Display    string          `json:"display"`
}

type GoalRow struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    core.Category `json:"category,omitempty"`
	Current     core.Money    `json:"current"`
	Target      core.Money    `json:"target"`
	Remaining   core.Money    `json:"remaining"`
	Progress    float64       `json:"progress"` // 0-1
	Percent     int           `json:"percent"`
	Deadline    core.Date     `json:"deadline"`
	IsCompleted bool          `json:"is_completed"`
	Display     string        `json:"display"`
}
