package service

import (
	"expense_tracker/internal/domain" // Domain models
	"time"                            // Date ranges
)

// SummaryFilter narrows the per-category breakdown. Zero values match all.
type SummaryFilter struct {
	Category string
	From     time.Time // inclusive, compared by calendar day
	To       time.Time // inclusive, compared by calendar day
}

// Summary is the dashboard aggregate of a user's ledger
type Summary struct {
	TotalIncome   float64            `json:"totalIncome"`
	TotalExpenses float64            `json:"totalExpenses"`
	Balance       float64            `json:"balance"`
	ByCategory    map[string]float64 `json:"byCategory"`
}

// Summarize totals income and spending over all expenses and breaks down
// spending by category over those matching filter. Spending is reported as a
// positive number.
func Summarize(expenses []domain.Expense, filter SummaryFilter) Summary {
	s := Summary{ByCategory: map[string]float64{}}
	for _, e := range expenses {
		if e.IsIncome() {
			s.TotalIncome += e.Amount
			continue
		}
		s.TotalExpenses += -e.Amount
		if filter.matches(e) {
			s.ByCategory[e.Category] += -e.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpenses
	return s
}

func (f SummaryFilter) matches(e domain.Expense) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	day := truncateDay(e.CreatedAt)
	if !f.From.IsZero() && day.Before(truncateDay(f.From)) {
		return false
	}
	if !f.To.IsZero() && day.After(truncateDay(f.To)) {
		return false
	}
	return true
}

// truncateDay returns midnight UTC of t's UTC calendar day
func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
