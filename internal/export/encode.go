package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var csvHeader = []string{
	"ID", "Date", "Description", "Category", "Type", "Amount", "Account", "Recurring", "Tags",
}

// WriteCSV writes the transactions of the report, one row each, in the
// order and filter they were captured with.
func WriteCSV(w io.Writer, r Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, t := range r.Transactions.Transactions {
		record := []string{
			t.ID,
			t.Date.String(),
			csvSafe(t.Description),
			t.CategoryName,
			string(t.Type),
			t.Amount.String(),
			t.AccountID,
			strconv.FormatBool(t.IsRecurring),
			csvSafe(strings.Join(t.Tags, ";")),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing CSV row %s: %w", t.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error flushing CSV: %w", err)
	}
	return nil
}

// csvSafe stops spreadsheet applications from evaluating free text as a
// formula.
func csvSafe(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

func WriteJSON(w io.Writer, r Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("error encoding JSON data: %w", err)
	}
	return nil
}
