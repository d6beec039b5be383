package sample

import (
	"testing"
	"time"
)

func TestSampleDataValidates(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	for _, a := range Accounts() {
		if err := a.Validate(); err != nil {
			t.Fatalf("account %s: %v", a.ID, err)
		}
	}
	for _, tx := range Transactions(now) {
		if err := tx.Validate(); err != nil {
			t.Fatalf("transaction %s: %v", tx.ID, err)
		}
		if tx.Date.String() != "2025-06-15" {
			t.Fatalf("transaction %s dated %s", tx.ID, tx.Date)
		}
	}
	for _, b := range Budgets(now) {
		if err := b.Validate(); err != nil {
			t.Fatalf("budget %s: %v", b.ID, err)
		}
	}
	for _, g := range Goals() {
		if err := g.Validate(); err != nil {
			t.Fatalf("goal %s: %v", g.ID, err)
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	a := Accounts()
	a[0].Name = "changed"
	if Accounts()[0].Name != "Main Checking" {
		t.Fatalf("Accounts shares state between calls")
	}
	b := Budgets(time.Now())
	b[0].Categories[0] = "other"
	if Budgets(time.Now())[0].Categories[0] != "food" {
		t.Fatalf("Budgets shares category slices between calls")
	}
}

func TestMonthlyHistoryNet(t *testing.T) {
	h := MonthlyHistory()
	if len(h) != 6 || h[0].Label != "Jan" || h[5].Label != "Jun" {
		t.Fatalf("unexpected history: %+v", h)
	}
	for _, m := range h {
		if m.NetAmount.Cents != m.Income.Cents-m.Expense.Cents {
			t.Fatalf("%s: net mismatch", m.Label)
		}
	}
	if h[5].NetAmount.Cents != 300000 {
		t.Fatalf("Jun net = %d", h[5].NetAmount.Cents)
	}
}
