package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"fintrack/internal/core"
)

var (
	headerColor     = [3]int{40, 40, 40}
	headerTextColor = [3]int{255, 255, 255}
	bodyTextColor   = [3]int{50, 50, 50}
	lineColor       = [3]int{200, 200, 200}
	incomeRGB       = [3]int{0, 128, 0}
	expenseRGB      = [3]int{192, 0, 0}
)

const pageWidth = 190.0

// WritePDF lays the report out on A4 pages: summary, accounts, budgets,
// goals, spending by category, then the transaction list.
func WritePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("fintrack report", true)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	cur := r.Currency

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Generated %s - page %d/{nb}",
			r.GeneratedAt.Format("2006-01-02 15:04"), pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	section := func(title string) {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+pageWidth, pdf.GetY())
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}

	table := func(widths []float64, header []string, rows [][]string) {
		pdf.SetFont("Arial", "B", 9)
		for i, h := range header {
			pdf.CellFormat(widths[i], 7, tr(h), "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		for _, row := range rows {
			for i, cell := range row {
				align := "L"
				if i == len(row)-1 {
					align = "R"
				}
				pdf.CellFormat(widths[i], 6, tr(cell), "", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, "  Personal Finance Report", "", 1, "L", true, 0, "")
	pdf.Ln(6)

	section("Summary")
	d := r.Dashboard
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(pageWidth/2, 10, tr("Balance "+d.BalanceDisplay), "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(pageWidth/2, 10, tr(fmt.Sprintf("Savings rate %.1f%%", r.Analytics.SavingsRate)), "", 1, "R", false, 0, "")
	amountLine := func(label string, m core.Money, rgb [3]int) {
		pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
		pdf.CellFormat(pageWidth/3, 7, tr(label+" "+m.Format(cur)), "", 0, "L", false, 0, "")
	}
	amountLine("Income", d.Totals.Income, incomeRGB)
	amountLine("Expense", d.Totals.Expense, expenseRGB)
	netRGB := incomeRGB
	if d.Totals.Net.IsNegative() {
		netRGB = expenseRGB
	}
	amountLine("Net", d.Totals.Net, netRGB)
	pdf.Ln(-1)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])

	section(fmt.Sprintf("Accounts (%d, %d active)", r.Accounts.AccountCount, r.Accounts.ActiveCount))
	var accRows [][]string
	for _, a := range r.Accounts.Accounts {
		status := "active"
		if !a.IsActive {
			status = "inactive"
		}
		accRows = append(accRows, []string{a.Name, a.TypeName, status, a.Display})
	}
	table([]float64{70, 50, 30, 40}, []string{"Name", "Type", "Status", "Balance"}, accRows)

	if len(d.Budgets) > 0 {
		section("Budgets")
		var rows [][]string
		for _, b := range d.Budgets {
			rows = append(rows, []string{b.Name, string(b.Period), fmt.Sprintf("%.0f%%", b.Progress*100), b.Display})
		}
		table([]float64{70, 40, 30, 50}, []string{"Budget", "Period", "Used", "Spent / Limit"}, rows)
	}

	if len(d.Goals) > 0 {
		section("Goals")
		var rows [][]string
		for _, g := range d.Goals {
			deadline := "-"
			if !g.Deadline.IsEmpty() {
				deadline = g.Deadline.String()
			}
			rows = append(rows, []string{g.Name, deadline, fmt.Sprintf("%d%%", g.Percent), g.Display})
		}
		table([]float64{70, 40, 30, 50}, []string{"Goal", "Deadline", "Progress", "Saved / Target"}, rows)
	}

	if len(r.Analytics.CategoryBreakdown) > 0 {
		section("Spending by Category")
		var rows [][]string
		for _, c := range r.Analytics.CategoryBreakdown {
			rows = append(rows, []string{c.Name, fmt.Sprintf("%.1f%%", c.Percentage), c.Amount.Format(cur)})
		}
		table([]float64{90, 50, 50}, []string{"Category", "Share", "Amount"}, rows)
	}

	section(fmt.Sprintf("Transactions (%d)", r.Transactions.Count))
	var txRows [][]string
	for _, t := range r.Transactions.Transactions {
		desc := t.Description
		if r := []rune(desc); len(r) > 45 {
			desc = string(r[:42]) + "..."
		}
		txRows = append(txRows, []string{t.Date.String(), desc, t.CategoryName, t.Display})
	}
	table([]float64{25, 85, 40, 40}, []string{"Date", "Description", "Category", "Amount"}, txRows)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("error writing PDF: %w", err)
	}
	return nil
}
