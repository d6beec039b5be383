package analytics

import (
	"fmt"
	"sort"
	"time"

	"fintrack/internal/core"
)

// Recurrence computes the schedule of a recurring transaction. Each period
// has its own implementation.
type Recurrence interface {
	// OnOrAfter returns the first occurrence of the schedule anchored at
	// anchor that falls on or after from.
	OnOrAfter(anchor, from core.Date) core.Date
}

type WeeklyRecurrence struct{}

func (WeeklyRecurrence) OnOrAfter(anchor, from core.Date) core.Date {
	if !anchor.Before(from.Time) {
		return anchor
	}
	days := int(from.Sub(anchor.Time).Hours() / 24)
	weeks := (days + 6) / 7
	return core.Date{Time: anchor.AddDate(0, 0, 7*weeks)}
}

// MonthlyRecurrence keeps the anchor's day of month, falling back to the
// last day in shorter months.
type MonthlyRecurrence struct{}

func (MonthlyRecurrence) OnOrAfter(anchor, from core.Date) core.Date {
	if !anchor.Before(from.Time) {
		return anchor
	}
	d := clampedDate(from.Year(), from.Month(), anchor.Day())
	if d.Before(from.Time) {
		next := from.AddDate(0, 0, 1-from.Day()).AddDate(0, 1, 0)
		d = clampedDate(next.Year(), int(next.Month()), anchor.Day())
	}
	return d
}

// YearlyRecurrence keeps the anchor's month and day; Feb 29 falls back to
// Feb 28 outside leap years.
type YearlyRecurrence struct{}

func (YearlyRecurrence) OnOrAfter(anchor, from core.Date) core.Date {
	if !anchor.Before(from.Time) {
		return anchor
	}
	d := clampedDate(from.Year(), anchor.Month(), anchor.Day())
	if d.Before(from.Time) {
		d = clampedDate(from.Year()+1, anchor.Month(), anchor.Day())
	}
	return d
}

func clampedDate(year, month, day int) core.Date {
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return core.NewDate(year, month, day)
}

var recurrences = map[core.Period]Recurrence{
	core.Weekly:  WeeklyRecurrence{},
	core.Monthly: MonthlyRecurrence{},
	core.Yearly:  YearlyRecurrence{},
}

func GetRecurrence(p core.Period) (Recurrence, error) {
	r, ok := recurrences[p]
	if !ok {
		return nil, fmt.Errorf("no recurrence for period %q", p)
	}
	return r, nil
}

// NextOccurrence is the first repetition of a recurring transaction after
// its own date, on or after today. ok is false for one-off transactions.
func NextOccurrence(t core.Transaction, today core.Date) (core.Date, bool) {
	if !t.IsRecurring || t.Date.IsEmpty() {
		return core.Date{}, false
	}
	r, err := GetRecurrence(t.RecurringPeriod)
	if err != nil {
		return core.Date{}, false
	}
	from := core.Date{Time: t.Date.AddDate(0, 0, 1)}
	if today.After(from.Time) {
		from = today
	}
	return r.OnOrAfter(t.Date, from), true
}

// Occurrence is an upcoming repetition of a recurring transaction.
type Occurrence struct {
	Transaction core.Transaction `json:"transaction"`
	Due         core.Date        `json:"due"`
}

// UpcomingRecurring lists the next repetition of every recurring
// transaction due within days of today, soonest first. Equal due dates
// keep input order.
func UpcomingRecurring(transactions []core.Transaction, today core.Date, days int) []Occurrence {
	limit := today.AddDate(0, 0, days)
	var out []Occurrence
	for _, t := range transactions {
		due, ok := NextOccurrence(t, today)
		if !ok || due.After(limit) {
			continue
		}
		out = append(out, Occurrence{Transaction: t, Due: due})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Due.Before(out[j].Due.Time)
	})
	return out
}
