// Package analytics derives the summary values shown by the screens from
// accounts, transactions, budgets and goals.
//
// Every function is pure and total. Sums are done on cents; ratios are
// float64. A ratio whose denominator is zero is 0, never an error.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"fintrack/internal/core"
)

// TotalBalance sums the balance of every account. Negative balances count.
func TotalBalance(accounts []core.Account) core.Money {
	var total core.Money
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// TotalByType sums the amount of the transactions of type t.
func TotalByType(transactions []core.Transaction, t core.TransactionType) core.Money {
	var total core.Money
	for _, tx := range transactions {
		if tx.Type == t {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func TotalIncome(transactions []core.Transaction) core.Money {
	return TotalByType(transactions, core.Income)
}

func TotalExpense(transactions []core.Transaction) core.Money {
	return TotalByType(transactions, core.Expense)
}

// NetAmount is total income minus total expense. Transfers are ignored.
func NetAmount(transactions []core.Transaction) core.Money {
	return TotalIncome(transactions).Sub(TotalExpense(transactions))
}

// SavingsRate is the net amount as a percentage of total income, 0 when
// there is no income.
func SavingsRate(transactions []core.Transaction) float64 {
	income := TotalIncome(transactions)
	if income.Cents == 0 {
		return 0
	}
	return float64(NetAmount(transactions).Cents) / float64(income.Cents) * 100
}

// PercentageOfTotal returns amount/total*100, or 0 when total is not positive.
func PercentageOfTotal(amount, total core.Money) float64 {
	if total.Cents <= 0 {
		return 0
	}
	return float64(amount.Cents) / float64(total.Cents) * 100
}

// CategoryBreakdown groups expense transactions by category and returns the
// sums sorted descending. Equal sums keep first-encounter order.
func CategoryBreakdown(transactions []core.Transaction) []core.CategoryAmount {
	index := make(map[core.Category]int)
	var out []core.CategoryAmount
	var total core.Money
	for _, tx := range transactions {
		if tx.Type != core.Expense {
			continue
		}
		total = total.Add(tx.Amount)
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, core.CategoryAmount{
				Category: tx.Category,
				Name:     tx.Category.DisplayName(),
			})
		}
		out[i].Amount = out[i].Amount.Add(tx.Amount)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	for i := range out {
		out[i].Percentage = PercentageOfTotal(out[i].Amount, total)
	}
	return out
}

// BudgetProgress is spent/amount clamped to [0, 1].
func BudgetProgress(b core.Budget) float64 {
	return progress(b.Spent, b.Amount)
}

// BudgetRemaining is what is left of the cap, never below zero.
func BudgetRemaining(b core.Budget) core.Money {
	left := b.Amount.Sub(b.Spent)
	if left.Cents < 0 {
		return core.Money{}
	}
	return left
}

// GoalProgress is current/target clamped to [0, 1].
func GoalProgress(g core.FinancialGoal) float64 {
	return progress(g.CurrentAmount, g.TargetAmount)
}

// GoalRemaining is what is still needed to reach the target, never below zero.
func GoalRemaining(g core.FinancialGoal) core.Money {
	left := g.TargetAmount.Sub(g.CurrentAmount)
	if left.Cents < 0 {
		return core.Money{}
	}
	return left
}

func progress(part, whole core.Money) float64 {
	if whole.Cents <= 0 {
		return 0
	}
	return clamp(float64(part.Cents)/float64(whole.Cents), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MonthlyTrend returns income, expense and net per calendar month in
// chronological order. Months without transactions are not emitted.
func MonthlyTrend(transactions []core.Transaction) []core.MonthlyData {
	type key struct{ year, month int }
	index := make(map[key]int)
	var out []core.MonthlyData
	for _, tx := range transactions {
		if tx.Date.IsZero() {
			continue
		}
		k := key{tx.Date.Year(), tx.Date.Month()}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, core.MonthlyData{
				Year:  k.year,
				Month: k.month,
				Label: MonthLabel(k.year, k.month),
			})
		}
		switch tx.Type {
		case core.Income:
			out[i].Income = out[i].Income.Add(tx.Amount)
		case core.Expense:
			out[i].Expense = out[i].Expense.Add(tx.Amount)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	for i := range out {
		out[i].NetAmount = out[i].Income.Sub(out[i].Expense)
	}
	return out
}

// MonthLabel renders a short month name, e.g. "Jan 2025".
func MonthLabel(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String()[:3], year)
}

// Summarize builds the full analytics overview.
func Summarize(transactions []core.Transaction) core.Analytics {
	income := TotalIncome(transactions)
	expense := TotalExpense(transactions)
	return core.Analytics{
		TotalIncome:       income,
		TotalExpense:      expense,
		NetAmount:         income.Sub(expense),
		SavingsRate:       SavingsRate(transactions),
		CategoryBreakdown: CategoryBreakdown(transactions),
		MonthlyTrend:      MonthlyTrend(transactions),
	}
}
