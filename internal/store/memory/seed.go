package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"fintrack/internal/core"
)

// amount is a decimal written either as a JSON number or a string.
type amount string

func (a *amount) UnmarshalJSON(b []byte) error {
	*a = amount(strings.Trim(string(b), `"`))
	return nil
}

type seedFile struct {
	Accounts     []seedAccount     `json:"accounts" yaml:"accounts"`
	Transactions []seedTransaction `json:"transactions" yaml:"transactions"`
	Budgets      []seedBudget      `json:"budgets" yaml:"budgets"`
	Goals        []seedGoal        `json:"goals" yaml:"goals"`
}

type seedAccount struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Balance  amount `json:"balance" yaml:"balance"`
	Currency string `json:"currency" yaml:"currency"`
	Active   *bool  `json:"active" yaml:"active"`
}

type seedTransaction struct {
	ID              string   `json:"id" yaml:"id"`
	Amount          amount   `json:"amount" yaml:"amount"`
	Type            string   `json:"type" yaml:"type"`
	Category        string   `json:"category" yaml:"category"`
	Description     string   `json:"description" yaml:"description"`
	Date            string   `json:"date" yaml:"date"`
	AccountID       string   `json:"account_id" yaml:"account_id"`
	Recurring       bool     `json:"recurring" yaml:"recurring"`
	RecurringPeriod string   `json:"recurring_period" yaml:"recurring_period"`
	Tags            []string `json:"tags" yaml:"tags"`
}

type seedBudget struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Amount     amount   `json:"amount" yaml:"amount"`
	Spent      amount   `json:"spent" yaml:"spent"`
	Period     string   `json:"period" yaml:"period"`
	Categories []string `json:"categories" yaml:"categories"`
	StartDate  string   `json:"start_date" yaml:"start_date"`
	EndDate    string   `json:"end_date" yaml:"end_date"`
}

type seedGoal struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Target    amount `json:"target" yaml:"target"`
	Current   amount `json:"current" yaml:"current"`
	Deadline  string `json:"deadline" yaml:"deadline"`
	Category  string `json:"category" yaml:"category"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// LoadSeedFile reads a dataset from a .json, .yaml or .yml file. Amounts
// are decimal strings ("85.50"); dates are YYYY-MM-DD.
func LoadSeedFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return Dataset{}, fmt.Errorf("parse JSON seed file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return Dataset{}, fmt.Errorf("parse YAML seed file: %w", err)
		}
	default:
		return Dataset{}, fmt.Errorf("unsupported seed file format: %s", ext)
	}
	return f.toDataset()
}

func (f seedFile) toDataset() (Dataset, error) {
	var d Dataset
	for _, a := range f.Accounts {
		acc, err := a.toCore()
		if err != nil {
			return Dataset{}, fmt.Errorf("account %q: %w", a.ID, err)
		}
		d.Accounts = append(d.Accounts, acc)
	}
	for _, t := range f.Transactions {
		tx, err := t.toCore()
		if err != nil {
			return Dataset{}, fmt.Errorf("transaction %q: %w", t.ID, err)
		}
		d.Transactions = append(d.Transactions, tx)
	}
	for _, b := range f.Budgets {
		budget, err := b.toCore()
		if err != nil {
			return Dataset{}, fmt.Errorf("budget %q: %w", b.ID, err)
		}
		d.Budgets = append(d.Budgets, budget)
	}
	for _, g := range f.Goals {
		goal, err := g.toCore()
		if err != nil {
			return Dataset{}, fmt.Errorf("goal %q: %w", g.ID, err)
		}
		d.Goals = append(d.Goals, goal)
	}
	return d, nil
}

func (a seedAccount) toCore() (core.Account, error) {
	typ, err := core.ParseAccountType(a.Type)
	if err != nil {
		return core.Account{}, err
	}
	balance, err := core.ParseMoney(string(a.Balance))
	if err != nil {
		return core.Account{}, fmt.Errorf("balance: %w", err)
	}
	currency := strings.ToUpper(strings.TrimSpace(a.Currency))
	if currency == "" {
		currency = core.DefaultCurrency
	}
	active := true
	if a.Active != nil {
		active = *a.Active
	}
	return core.Account{ID: a.ID, Name: a.Name, Type: typ, Balance: balance, Currency: currency, IsActive: active}, nil
}

func (t seedTransaction) toCore() (core.Transaction, error) {
	cents, err := core.ParseDecimalToCents(string(t.Amount))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount: %w", err)
	}
	typ, err := core.ParseTransactionType(t.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	cat, err := core.ParseCategory(t.Category)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(t.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	tx := core.Transaction{
		ID:          t.ID,
		Amount:      core.Money{Cents: cents},
		Type:        typ,
		Category:    cat,
		Description: t.Description,
		Date:        date,
		AccountID:   t.AccountID,
		IsRecurring: t.Recurring,
		Tags:        append([]string{}, t.Tags...),
	}
	if t.RecurringPeriod != "" {
		if tx.RecurringPeriod, err = core.ParsePeriod(t.RecurringPeriod); err != nil {
			return core.Transaction{}, err
		}
	}
	return tx, nil
}

func (b seedBudget) toCore() (core.Budget, error) {
	amt, err := core.ParseMoney(string(b.Amount))
	if err != nil {
		return core.Budget{}, fmt.Errorf("amount: %w", err)
	}
	spent := core.Money{}
	if b.Spent != "" {
		if spent, err = core.ParseMoney(string(b.Spent)); err != nil {
			return core.Budget{}, fmt.Errorf("spent: %w", err)
		}
	}
	period := core.Monthly
	if b.Period != "" {
		if period, err = core.ParsePeriod(b.Period); err != nil {
			return core.Budget{}, err
		}
	}
	budget := core.Budget{ID: b.ID, Name: b.Name, Amount: amt, Spent: spent, Period: period, Categories: []core.Category{}}
	for _, c := range b.Categories {
		cat, err := core.ParseCategory(c)
		if err != nil {
			return core.Budget{}, err
		}
		budget.Categories = append(budget.Categories, cat)
	}
	if b.StartDate != "" {
		if budget.StartDate, err = core.ParseDate(b.StartDate); err != nil {
			return core.Budget{}, err
		}
	}
	if b.EndDate != "" {
		if budget.EndDate, err = core.ParseDate(b.EndDate); err != nil {
			return core.Budget{}, err
		}
	}
	return budget, nil
}

func (g seedGoal) toCore() (core.FinancialGoal, error) {
	target, err := core.ParseMoney(string(g.Target))
	if err != nil {
		return core.FinancialGoal{}, fmt.Errorf("target: %w", err)
	}
	current := core.Money{}
	if g.Current != "" {
		if current, err = core.ParseMoney(string(g.Current)); err != nil {
			return core.FinancialGoal{}, fmt.Errorf("current: %w", err)
		}
	}
	goal := core.FinancialGoal{ID: g.ID, Name: g.Name, TargetAmount: target, CurrentAmount: current, IsCompleted: g.Completed}
	if g.Deadline != "" {
		if goal.Deadline, err = core.ParseDate(g.Deadline); err != nil {
			return core.FinancialGoal{}, err
		}
	}
	if g.Category != "" {
		if goal.Category, err = core.ParseCategory(g.Category); err != nil {
			return core.FinancialGoal{}, err
		}
	}
	return goal, nil
}
