// Package console renders screen views for a terminal.
package console

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"fintrack/internal/core"
	"fintrack/internal/screens"
)

const barWidth = 30

var (
	incomeColor  = color.New(color.FgGreen, color.Bold).SprintFunc()
	expenseColor = color.New(color.FgRed, color.Bold).SprintFunc()
	accentColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	mutedColor   = color.New(color.FgHiBlack).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// SetColor turns colored output on or off for both libraries.
func SetColor(enabled bool) {
	color.NoColor = !enabled
	if enabled {
		pterm.EnableStyling()
	} else {
		pterm.DisableStyling()
	}
}

// Renderer writes screens to an io.Writer.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) Info(format string, a ...any) {
	fmt.Fprint(r.out, pterm.Info.Sprintfln(format, a...))
}

func (r *Renderer) Success(format string, a ...any) {
	fmt.Fprint(r.out, pterm.Success.Sprintfln(format, a...))
}

func (r *Renderer) Warning(format string, a ...any) {
	fmt.Fprint(r.out, pterm.Warning.Sprintfln(format, a...))
}

func (r *Renderer) Error(format string, a ...any) {
	fmt.Fprint(r.out, pterm.Error.Sprintfln(format, a...))
}

func (r *Renderer) Dashboard(v screens.Dashboard) error {
	r.title(screens.DashboardScreen.Title())

	summary := pterm.TableData{
		{"Total Balance", "Income", "Expense", "Net"},
		{accentColor(v.BalanceDisplay), incomeColor(v.Totals.Income.Format(v.Currency)),
			expenseColor(v.Totals.Expense.Format(v.Currency)), signed(v.Totals.Net, v.Currency)},
	}
	if err := r.table(summary); err != nil {
		return err
	}

	r.section("Recent Transactions")
	if len(v.RecentTransactions) == 0 {
		r.line(mutedColor("No transactions yet"))
	} else if err := r.table(transactionTable(v.RecentTransactions)); err != nil {
		return err
	}

	if len(v.Upcoming) > 0 {
		r.section("Upcoming Recurring")
		data := pterm.TableData{{"Due", "Description", "Amount"}}
		for _, u := range v.Upcoming {
			data = append(data, []string{u.Due.String(), u.Description, amount(u.TransactionRow)})
		}
		if err := r.table(data); err != nil {
			return err
		}
	}

	r.section("Budgets")
	if len(v.Budgets) == 0 {
		r.line(mutedColor("No budgets"))
	}
	for _, b := range v.Budgets {
		r.line(fmt.Sprintf("%-20s %s %s", b.Name, progressBar(b.Progress), b.Display))
	}

	r.section("Goals")
	if len(v.Goals) == 0 {
		r.line(mutedColor("No goals"))
	}
	for _, g := range v.Goals {
		r.line(fmt.Sprintf("%-20s %s %3d%% %s", g.Name, progressBar(g.Progress), g.Percent, g.Display))
	}
	return nil
}

func (r *Renderer) Transactions(v screens.Transactions) error {
	r.title(screens.TransactionsScreen.Title())

	chips := make([]string, 0, len(v.Filters))
	for _, f := range v.Filters {
		label := strings.ToUpper(string(f[:1])) + string(f[1:])
		if f == v.Filter.Type {
			label = accentColor("[" + label + "]")
		}
		chips = append(chips, label)
	}
	r.line("Filter: " + strings.Join(chips, "  "))
	if v.Filter.Query != "" {
		r.line(fmt.Sprintf("Search: %q", v.Filter.Query))
	}

	if v.Count == 0 {
		r.line(mutedColor("No transactions match"))
	} else {
		if err := r.table(transactionTable(v.Transactions)); err != nil {
			return err
		}
		r.line(fmt.Sprintf("%d transaction(s)", v.Count))
	}

	r.line(fmt.Sprintf("Income %s  Expense %s  Net %s",
		incomeColor(v.Summary.Income.Format(v.Currency)),
		expenseColor(v.Summary.Expense.Format(v.Currency)),
		signed(v.Summary.Net, v.Currency)))
	return nil
}

func (r *Renderer) Analytics(v screens.Analytics) error {
	r.title(screens.AnalyticsScreen.Title())

	overview := pterm.TableData{
		{"Income", "Expense", "Net", "Savings Rate"},
		{incomeColor(v.TotalIncome.Format(v.Currency)), expenseColor(v.TotalExpense.Format(v.Currency)),
			signed(v.NetAmount, v.Currency), fmt.Sprintf("%.1f%%", v.SavingsRate)},
	}
	if err := r.table(overview); err != nil {
		return err
	}

	r.section("Spending by Category")
	if len(v.CategoryBreakdown) == 0 {
		r.line(mutedColor("No expenses recorded"))
	} else {
		bars := make(pterm.Bars, 0, len(v.CategoryBreakdown))
		data := pterm.TableData{{"Category", "Amount", "Share"}}
		for _, c := range v.CategoryBreakdown {
			bars = append(bars, pterm.Bar{Label: c.Name, Value: int(math.Round(c.Amount.Units()))})
			data = append(data, []string{c.Name, c.Amount.Format(v.Currency), fmt.Sprintf("%.1f%%", c.Percentage)})
		}
		chart, err := pterm.DefaultBarChart.WithBars(bars).WithHorizontal().WithShowValue().Srender()
		if err != nil {
			return fmt.Errorf("render category chart: %w", err)
		}
		r.line(chart)
		if err := r.table(data); err != nil {
			return err
		}
	}

	section := "Monthly Trend"
	if v.TrendSource == screens.TrendFromHistory {
		section += mutedColor(" (history)")
	}
	r.section(section)
	r.line(trendBars(v.MonthlyTrend, v.Currency))
	return nil
}

func (r *Renderer) Accounts(v screens.Accounts) error {
	r.title(screens.AccountsScreen.Title())
	r.line(fmt.Sprintf("Total Assets: %s", accentColor(v.AssetDisplay)))
	r.line(fmt.Sprintf("%d accounts, %d active", v.AccountCount, v.ActiveCount))

	if len(v.Accounts) == 0 {
		r.line(mutedColor("No accounts"))
		return nil
	}
	data := pterm.TableData{{"Name", "Type", "Balance", "Status"}}
	for _, a := range v.Accounts {
		status := incomeColor("active")
		if !a.IsActive {
			status = mutedColor("inactive")
		}
		bal := a.Display
		if a.Balance.IsNegative() {
			bal = expenseColor(bal)
		}
		data = append(data, []string{a.Name, a.TypeName, bal, status})
	}
	return r.table(data)
}

func (r *Renderer) Settings(v screens.Settings) error {
	r.title(screens.SettingsScreen.Title())

	info := pterm.TableData{
		{"Setting", "Value"},
		{"Currency", fmt.Sprintf("%s (%s)", v.Currency, v.CurrencySymbol)},
		{"Data backend", v.DataBackend},
		{"Version", v.Version},
	}
	if err := r.table(info); err != nil {
		return err
	}

	r.section("Screens")
	for _, s := range v.Screens {
		r.line(fmt.Sprintf("  %-14s %s", s.Key, s.Title))
	}

	r.section("Categories")
	names := make([]string, 0, len(v.Categories))
	for _, c := range v.Categories {
		names = append(names, c.Name)
	}
	r.line("  " + strings.Join(names, ", "))
	return nil
}

func (r *Renderer) title(s string) {
	r.line(pterm.DefaultBox.WithTitle("fintrack").Sprint(accentColor(s)))
}

func (r *Renderer) section(s string) {
	fmt.Fprintf(r.out, "\n%s\n", pterm.Bold.Sprint(s))
}

func (r *Renderer) line(s string) {
	fmt.Fprintln(r.out, s)
}

func (r *Renderer) table(data pterm.TableData) error {
	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	r.line(out)
	return nil
}

func transactionTable(rows []screens.TransactionRow) pterm.TableData {
	data := pterm.TableData{{"Date", "Description", "Category", "Amount"}}
	for _, t := range rows {
		desc := t.Description
		if t.IsRecurring {
			desc += mutedColor(" ↻")
		}
		data = append(data, []string{t.Date.String(), desc, t.CategoryName, amount(t)})
	}
	return data
}

func amount(t screens.TransactionRow) string {
	switch t.Type {
	case core.Income:
		return incomeColor(t.Display)
	case core.Expense:
		return expenseColor(t.Display)
	}
	return t.Display
}

func signed(m core.Money, currency string) string {
	if m.IsNegative() {
		return expenseColor(m.Format(currency))
	}
	return incomeColor(m.Format(currency))
}

// progressBar draws p (0-1) as a fixed-width bar, red once full.
func progressBar(p float64) string {
	p = math.Max(0, math.Min(1, p))
	filled := int(math.Round(p * barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	switch {
	case p >= 1:
		return expenseColor(bar)
	case p >= 0.8:
		return warnColor(bar)
	}
	return incomeColor(bar)
}

// trendBars draws income and expense per month against the largest value.
func trendBars(trend []core.MonthlyData, currency string) string {
	var peak int64
	for _, m := range trend {
		if m.Income.Cents > peak {
			peak = m.Income.Cents
		}
		if m.Expense.Cents > peak {
			peak = m.Expense.Cents
		}
	}
	if peak == 0 {
		return mutedColor("No activity")
	}

	var b strings.Builder
	for _, m := range trend {
		in := int(m.Income.Cents * barWidth / peak)
		ex := int(m.Expense.Cents * barWidth / peak)
		fmt.Fprintf(&b, "%-4s %s %s\n", m.Label, incomeColor(strings.Repeat("█", in)), m.Income.Format(currency))
		fmt.Fprintf(&b, "%-4s %s %s  net %s\n", "", expenseColor(strings.Repeat("█", ex)), m.Expense.Format(currency), signed(m.NetAmount, currency))
	}
	return strings.TrimRight(b.String(), "\n")
}
