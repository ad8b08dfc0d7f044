package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/database/repository"
	"github.com/pocketledger/pocketledger/internal/daterange"
)

var hundred = decimal.NewFromInt(100)

// Line is the computed view of one budget over its current period.
// Remaining goes negative when over; Percentage is clamped to 100 so
// progress displays never overflow their track.
type Line struct {
	Budget       repository.Budget `json:"budget"`
	CategoryName string            `json:"category_name"`
	Spent        decimal.Decimal   `json:"spent"`
	Remaining    decimal.Decimal   `json:"remaining"`
	Percentage   decimal.Decimal   `json:"percentage"`
	Over         bool              `json:"over"`
}

// BudgetService answers read-only budget rollups against the ledger state.
type BudgetService struct {
	Ledger *LedgerService
}

// SpentInRange sums expense amounts for categoryID and its direct children
// inside r. One level of roll-up only: children aggregate into their
// parent, nothing deeper. Income and transfers never count.
func (s *BudgetService) SpentInRange(categoryID string, r daterange.Range) decimal.Decimal {
	categories := s.Ledger.Categories()
	include := map[string]bool{categoryID: true}
	for _, c := range categories {
		if c.ParentID == categoryID {
			include[c.ID] = true
		}
	}

	spent := decimal.Zero
	for _, tx := range s.Ledger.Transactions() {
		if tx.Type != repository.TypeExpense || !include[tx.CategoryID] {
			continue
		}
		if r.Contains(tx.Date) {
			spent = spent.Add(tx.Amount)
		}
	}
	return spent
}

// Lines computes every budget's line for the period containing ref.
// Monthly budgets resolve against the custom month window from settings;
// yearly budgets use the calendar year.
func (s *BudgetService) Lines(ref time.Time) []Line {
	settings := s.Ledger.Settings()
	categories := s.Ledger.Categories()
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	budgets := s.Ledger.Budgets()
	lines := make([]Line, 0, len(budgets))
	for _, b := range budgets {
		var r daterange.Range
		if b.Period == repository.PeriodYearly {
			start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
			r = daterange.Range{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}
		} else {
			r = daterange.MonthRange(ref, settings.MonthlyStartDay)
		}

		spent := s.SpentInRange(b.CategoryID, r)
		line := Line{
			Budget:       b,
			CategoryName: names[b.CategoryID],
			Spent:        spent,
			Remaining:    b.LimitAmount.Sub(spent),
			Over:         spent.GreaterThan(b.LimitAmount),
		}
		if b.LimitAmount.IsPositive() {
			pct := spent.Div(b.LimitAmount).Mul(hundred)
			if pct.GreaterThan(hundred) {
				pct = hundred
			}
			line.Percentage = pct
		}
		lines = append(lines, line)
	}
	return lines
}
