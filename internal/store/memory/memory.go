package memory

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/sample"
)

// Dataset is the full content of a store.
type Dataset struct {
	Accounts     []core.Account
	Transactions []core.Transaction
	Budgets      []core.Budget
	Goals        []core.FinancialGoal
}

// Validate checks every record and rejects duplicate IDs within a collection.
func (d Dataset) Validate() error {
	seen := map[string]struct{}{}
	check := func(kind, id string, err error) error {
		if err != nil {
			return fmt.Errorf("%s %q: %w", kind, id, err)
		}
		key := kind + "/" + id
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%s %q: duplicate id", kind, id)
		}
		seen[key] = struct{}{}
		return nil
	}
	for _, a := range d.Accounts {
		if err := check("account", a.ID, a.Validate()); err != nil {
			return err
		}
	}
	for _, t := range d.Transactions {
		if err := check("transaction", t.ID, t.Validate()); err != nil {
			return err
		}
	}
	for _, b := range d.Budgets {
		if err := check("budget", b.ID, b.Validate()); err != nil {
			return err
		}
	}
	for _, g := range d.Goals {
		if err := check("goal", g.ID, g.Validate()); err != nil {
			return err
		}
	}
	return nil
}

// SampleDataset returns the built-in sample data dated relative to now.
func SampleDataset(now time.Time) Dataset {
	return Dataset{
		Accounts:     sample.Accounts(),
		Transactions: sample.Transactions(now),
		Budgets:      sample.Budgets(now),
		Goals:        sample.Goals(),
	}
}

// Store serves a dataset that is fixed at construction.
type Store struct {
	data Dataset
}

func New(d Dataset) *Store {
	return &Store{data: cloneDataset(d)}
}

// NewFromFile seeds the store from a JSON or YAML file. An empty path
// falls back to the sample dataset.
func NewFromFile(path string, now time.Time) (*Store, error) {
	if path == "" {
		return New(SampleDataset(now)), nil
	}
	d, err := LoadSeedFile(path)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("validate seed file %s: %w", path, err)
	}
	return New(d), nil
}

// ListAccounts implements store.AccountReader.
func (s *Store) ListAccounts(_ context.Context) ([]core.Account, error) {
	return append([]core.Account(nil), s.data.Accounts...), nil
}

// ListTransactions implements store.TransactionReader.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	return cloneTransactions(s.data.Transactions), nil
}

// ListBudgets implements store.BudgetReader.
func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	return cloneBudgets(s.data.Budgets), nil
}

// ListGoals implements store.GoalReader.
func (s *Store) ListGoals(_ context.Context) ([]core.FinancialGoal, error) {
	return append([]core.FinancialGoal(nil), s.data.Goals...), nil
}

func cloneDataset(d Dataset) Dataset {
	return Dataset{
		Accounts:     append([]core.Account(nil), d.Accounts...),
		Transactions: cloneTransactions(d.Transactions),
		Budgets:      cloneBudgets(d.Budgets),
		Goals:        append([]core.FinancialGoal(nil), d.Goals...),
	}
}

func cloneTransactions(in []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(in))
	for i, t := range in {
		t.Tags = append([]string{}, t.Tags...)
		out[i] = t
	}
	return out
}

func cloneBudgets(in []core.Budget) []core.Budget {
	out := make([]core.Budget, len(in))
	for i, b := range in {
		b.Categories = append([]core.Category{}, b.Categories...)
		out[i] = b
	}
	return out
}
