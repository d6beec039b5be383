package store

import (
	"context"

	"fintrack/internal/core"
)

// Ports for outbound adapters. Every reader is read-only: the dataset is
// seeded once and never mutated for the lifetime of the process.
type (
	AccountReader interface {
		ListAccounts(ctx context.Context) ([]core.Account, error)
	}

	TransactionReader interface {
		// ListTransactions returns every transaction in seed order.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	BudgetReader interface {
		ListBudgets(ctx context.Context) ([]core.Budget, error)
	}

	GoalReader interface {
		ListGoals(ctx context.Context) ([]core.FinancialGoal, error)
	}
)
