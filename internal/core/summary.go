package core

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category   Category `json:"category"`
	Name       string   `json:"name"`
	Amount     Money    `json:"amount"`
	Percentage float64  `json:"percentage"` // share of total expense, 0-100
}

// MonthlyData is income, expense and net for one calendar month.
type MonthlyData struct {
	Year      int    `json:"year,omitempty"`
	Month     int    `json:"month,omitempty"` // 1-12
	Label     string `json:"label"`
	Income    Money  `json:"income"`
	Expense   Money  `json:"expense"`
	NetAmount Money  `json:"net_amount"`
}

// Analytics is the overview shown by the analytics screen.
type Analytics struct {
	TotalIncome       Money            `json:"total_income"`
	TotalExpense      Money            `json:"total_expense"`
	NetAmount         Money            `json:"net_amount"`
	SavingsRate       float64          `json:"savings_rate"`
	CategoryBreakdown []CategoryAmount `json:"category_breakdown"`
	MonthlyTrend      []MonthlyData    `json:"monthly_trend"`
}
