// Package sample holds the fixed dataset the tracker ships with. Every
// accessor returns a fresh copy so callers cannot alter the seed.
package sample

import (
	"time"

	"fintrack/internal/core"
)

func Accounts() []core.Account {
	return []core.Account{
		{ID: "1", Name: "Main Checking", Type: core.Checking, Balance: core.Money{Cents: 1250050}, Currency: core.DefaultCurrency, IsActive: true},
		{ID: "2", Name: "Savings", Type: core.Savings, Balance: core.Money{Cents: 4500000}, Currency: core.DefaultCurrency, IsActive: true},
		{ID: "3", Name: "Credit Card", Type: core.CreditCard, Balance: core.Money{Cents: -125075}, Currency: core.DefaultCurrency, IsActive: true},
		{ID: "4", Name: "Investment", Type: core.InvestmentAccount, Balance: core.Money{Cents: 7500000}, Currency: core.DefaultCurrency, IsActive: true},
	}
}

// Transactions dates every sample transaction on the day of now.
func Transactions(now time.Time) []core.Transaction {
	today := core.DateOf(now)
	return []core.Transaction{
		{ID: "1", Amount: core.Money{Cents: 500000}, Type: core.Income, Category: core.Salary, Description: "Monthly Salary", Date: today, AccountID: "1", Tags: []string{}},
		{ID: "2", Amount: core.Money{Cents: 8550}, Type: core.Expense, Category: core.Food, Description: "Grocery Shopping", Date: today, AccountID: "1", Tags: []string{}},
		{ID: "3", Amount: core.Money{Cents: 4500}, Type: core.Expense, Category: core.Transport, Description: "Fuel", Date: today, AccountID: "1", Tags: []string{}},
		{ID: "4", Amount: core.Money{Cents: 120000}, Type: core.Income, Category: core.Freelance, Description: "Freelance Project", Date: today, AccountID: "1", Tags: []string{}},
	}
}

// Budgets start on the day of now.
func Budgets(now time.Time) []core.Budget {
	start := core.DateOf(now)
	return []core.Budget{
		{ID: "1", Name: "Food & Dining", Amount: core.Money{Cents: 50000}, Spent: core.Money{Cents: 8550}, Period: core.Monthly, Categories: []core.Category{core.Food}, StartDate: start},
		{ID: "2", Name: "Transportation", Amount: core.Money{Cents: 20000}, Spent: core.Money{Cents: 4500}, Period: core.Monthly, Categories: []core.Category{core.Transport}, StartDate: start},
		{ID: "3", Name: "Entertainment", Amount: core.Money{Cents: 30000}, Spent: core.Money{}, Period: core.Monthly, Categories: []core.Category{core.Entertainment}, StartDate: start},
	}
}

func Goals() []core.FinancialGoal {
	return []core.FinancialGoal{
		{ID: "1", Name: "Emergency Fund", TargetAmount: core.Money{Cents: 1000000}, CurrentAmount: core.Money{Cents: 500000}},
		{ID: "2", Name: "Vacation Fund", TargetAmount: core.Money{Cents: 500000}, CurrentAmount: core.Money{Cents: 150000}},
		{ID: "3", Name: "New Car", TargetAmount: core.Money{Cents: 2500000}, CurrentAmount: core.Money{Cents: 800000}},
	}
}

// MonthlyHistory is the six-month trend displayed when the transactions
// alone do not span several months.
func MonthlyHistory() []core.MonthlyData {
	rows := []struct {
		label           string
		income, expense int64
	}{
		{"Jan", 500000, 320000},
		{"Feb", 520000, 310000},
		{"Mar", 480000, 340000},
		{"Apr", 550000, 290000},
		{"May", 530000, 330000},
		{"Jun", 580000, 280000},
	}
	out := make([]core.MonthlyData, len(rows))
	for i, r := range rows {
		out[i] = core.MonthlyData{
			Month:     i + 1,
			Label:     r.label,
			Income:    core.Money{Cents: r.income},
			Expense:   core.Money{Cents: r.expense},
			NetAmount: core.Money{Cents: r.income - r.expense},
		}
	}
	return out
}
