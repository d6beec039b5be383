package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

type (
	TransactionType string

	// Period is the reset interval of a budget.
	Period string

	Date struct {
		time.Time
	}

	Transaction struct {
		ID              string          `json:"id"`
		Amount          Money           `json:"amount"`
		Type            TransactionType `json:"type"`
		Category        Category        `json:"category"`
		Description     string          `json:"description"`
		Date            Date            `json:"date"`
		AccountID       string          `json:"account_id"`
		IsRecurring     bool            `json:"is_recurring"`
		RecurringPeriod Period          `json:"recurring_period,omitempty"`
		Tags            []string        `json:"tags"`
	}

	Account struct {
		ID       string      `json:"id"`
		Name     string      `json:"name"`
		Type     AccountType `json:"type"`
		Balance  Money       `json:"balance"` // may be negative (credit cards)
		Currency string      `json:"currency"`
		IsActive bool        `json:"is_active"`
	}

	Budget struct {
		ID         string     `json:"id"`
		Name       string     `json:"name"`
		Amount     Money      `json:"amount"`
		Spent      Money      `json:"spent"` // supplied by the source, never derived
		Period     Period     `json:"period"`
		Categories []Category `json:"categories"`
		StartDate  Date       `json:"start_date"`
		EndDate    Date       `json:"end_date"`
	}

	FinancialGoal struct {
		ID            string   `json:"id"`
		Name          string   `json:"name"`
		TargetAmount  Money    `json:"target_amount"`
		CurrentAmount Money    `json:"current_amount"`
		Deadline      Date     `json:"deadline"`
		Category      Category `json:"category,omitempty"`
		IsCompleted   bool     `json:"is_completed"`
	}
)

const DefaultCurrency = "USD"

var (
	ErrInvalidDay             = errors.New("invalid day")
	ErrInvalidMonth           = errors.New("invalid month")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrEmptyID                = errors.New("empty id")
	ErrEmptyName              = errors.New("empty name")
	ErrEmptyDescription       = errors.New("empty description")
	ErrEmptyAccount           = errors.New("empty account id")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidPeriod          = errors.New("invalid period")
	ErrInvalidCurrency        = errors.New("invalid currency")
)

// ParseTransactionType accepts the lower-case key in any letter case.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
	}
	return t, nil
}

func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// DisplayName returns the label used by the screens ("Income", "Expense", "Transfer").
func (t TransactionType) DisplayName() string {
	switch t {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	case Transfer:
		return "Transfer"
	}
	return string(t)
}

func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return p, nil
}

func (p Period) IsValid() bool {
	switch p {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a date in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// IsEmpty returns true if the date is zero (optional dates)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return ErrInvalidTransactionType
	}
	if !t.Category.IsValid() {
		return ErrInvalidCategory
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.AccountID) == "" {
		return ErrEmptyAccount
	}
	if t.RecurringPeriod != "" && !t.RecurringPeriod.IsValid() {
		return ErrInvalidPeriod
	}
	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Type.IsValid() {
		return ErrInvalidAccountType
	}
	if len(a.Currency) != 3 {
		return ErrInvalidCurrency
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if b.Amount.Cents < 0 || b.Spent.Cents < 0 {
		return ErrInvalidAmount
	}
	if !b.Period.IsValid() {
		return ErrInvalidPeriod
	}
	for _, c := range b.Categories {
		if !c.IsValid() {
			return ErrInvalidCategory
		}
	}
	if !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate.Time) {
		return errors.New("end date must not be before start date")
	}
	return nil
}

func (g FinancialGoal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.TargetAmount.Cents < 0 || g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if g.Category != "" && !g.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}
