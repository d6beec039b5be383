package core

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the closed set of transaction categories.
type Category string

const (
	Salary        Category = "salary"
	Freelance     Category = "freelance"
	Investment    Category = "investment"
	Food          Category = "food"
	Transport     Category = "transport"
	Shopping      Category = "shopping"
	Entertainment Category = "entertainment"
	Health        Category = "health"
	Education     Category = "education"
	Utilities     Category = "utilities"
	Rent          Category = "rent"
	Other         Category = "other"
)

// AccountType is the closed set of account kinds.
type AccountType string

const (
	Checking          AccountType = "checking"
	Savings           AccountType = "savings"
	CreditCard        AccountType = "credit_card"
	InvestmentAccount AccountType = "investment"
	Cash              AccountType = "cash"
	Crypto            AccountType = "crypto"
)

var (
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidAccountType = errors.New("invalid account type")
)

var categoryNames = map[Category]string{
	Salary:        "Salary",
	Freelance:     "Freelance",
	Investment:    "Investment",
	Food:          "Food & Dining",
	Transport:     "Transport",
	Shopping:      "Shopping",
	Entertainment: "Entertainment",
	Health:        "Healthcare",
	Education:     "Education",
	Utilities:     "Utilities",
	Rent:          "Rent",
	Other:         "Other",
}

var accountTypeNames = map[AccountType]string{
	Checking:          "Checking Account",
	Savings:           "Savings Account",
	CreditCard:        "Credit Card",
	InvestmentAccount: "Investment Account",
	Cash:              "Cash",
	Crypto:            "Cryptocurrency",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{
		Salary, Freelance, Investment, Food, Transport, Shopping,
		Entertainment, Health, Education, Utilities, Rent, Other,
	}
}

// ParseCategory accepts either the key ("food") or the display name
// ("Food & Dining"), case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	c := Category(strings.ToLower(s))
	if c.IsValid() {
		return c, nil
	}
	for k, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

func (c Category) IsValid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

func ParseAccountType(s string) (AccountType, error) {
	s = strings.TrimSpace(s)
	t := AccountType(strings.ToLower(s))
	if t.IsValid() {
		return t, nil
	}
	for k, name := range accountTypeNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, s)
}

func (t AccountType) IsValid() bool {
	_, ok := accountTypeNames[t]
	return ok
}

func (t AccountType) DisplayName() string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return string(t)
}
