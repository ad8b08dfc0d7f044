package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger/pocketledger/internal/database/repository"
	"github.com/pocketledger/pocketledger/internal/daterange"
)

func TestSpentInRangeRollsUpDirectChildren(t *testing.T) {
	l := testLedger(t)
	ref := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	l.categories = []repository.Category{
		{ID: "cat_food", Name: "Food"},
		{ID: "cat_groceries", Name: "Groceries", ParentID: "cat_food"},
		{ID: "cat_snacks", Name: "Snacks", ParentID: "cat_groceries"},
	}
	l.transactions = []repository.Transaction{
		{ID: "t1", Type: repository.TypeExpense, Amount: dec("30"), CategoryID: "cat_food", AccountID: "acc_a", Date: ref},
		{ID: "t2", Type: repository.TypeExpense, Amount: dec("20"), CategoryID: "cat_groceries", AccountID: "acc_a", Date: ref},
		// Grandchildren do not roll up; one level only.
		{ID: "t3", Type: repository.TypeExpense, Amount: dec("99"), CategoryID: "cat_snacks", AccountID: "acc_a", Date: ref},
		// Income and transfers never count as spend.
		{ID: "t4", Type: repository.TypeIncome, Amount: dec("500"), CategoryID: "cat_food", AccountID: "acc_a", Date: ref},
		{ID: "t5", Type: repository.TypeTransfer, Amount: dec("40"), CategoryID: "cat_food", AccountID: "acc_a", ToAccountID: "acc_b", Date: ref},
		// Outside the window.
		{ID: "t6", Type: repository.TypeExpense, Amount: dec("15"), CategoryID: "cat_food", AccountID: "acc_a", Date: ref.AddDate(0, -2, 0)},
	}

	s := &BudgetService{Ledger: l}
	spent := s.SpentInRange("cat_food", daterange.MonthRange(ref, 1))
	assert.True(t, spent.Equal(dec("50")), "got %s", spent)
}

func TestBudgetLines(t *testing.T) {
	l := testLedger(t)
	ref := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	l.categories = []repository.Category{{ID: "cat_food", Name: "Food"}}
	l.budgets = []repository.Budget{{
		ID: "b1", CategoryID: "cat_food", LimitAmount: dec("100"), Period: repository.PeriodMonthly,
	}}
	l.transactions = []repository.Transaction{
		{ID: "t1", Type: repository.TypeExpense, Amount: dec("150"), CategoryID: "cat_food", AccountID: "acc_a", Date: ref},
	}

	s := &BudgetService{Ledger: l}
	lines := s.Lines(ref)
	require.Len(t, lines, 1)

	line := lines[0]
	assert.Equal(t, "Food", line.CategoryName)
	assert.True(t, line.Spent.Equal(dec("150")))
	assert.True(t, line.Remaining.Equal(dec("-50")), "remaining goes negative when over")
	assert.True(t, line.Percentage.Equal(dec("100")), "percentage clamps at 100")
	assert.True(t, line.Over)
}

func TestBudgetLinesYearlyPeriod(t *testing.T) {
	l := testLedger(t)
	ref := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	l.categories = []repository.Category{{ID: "cat_travel", Name: "Travel"}}
	l.budgets = []repository.Budget{{
		ID: "b1", CategoryID: "cat_travel", LimitAmount: dec("1000"), Period: repository.PeriodYearly,
	}}
	l.transactions = []repository.Transaction{
		{ID: "t1", Type: repository.TypeExpense, Amount: dec("200"), CategoryID: "cat_travel", AccountID: "acc_a",
			Date: time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "t2", Type: repository.TypeExpense, Amount: dec("300"), CategoryID: "cat_travel", AccountID: "acc_a",
			Date: time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)},
	}

	s := &BudgetService{Ledger: l}
	lines := s.Lines(ref)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Spent.Equal(dec("200")), "only the current calendar year counts")
	assert.False(t, lines[0].Over)
	assert.True(t, lines[0].Percentage.Equal(dec("20")))
}

func TestBudgetLinesHonorCustomMonthStart(t *testing.T) {
	l := testLedger(t)
	l.settings.MonthlyStartDay = 15
	ref := time.Date(2025, time.June, 20, 12, 0, 0, 0, time.UTC)
	l.categories = []repository.Category{{ID: "cat_food", Name: "Food"}}
	l.budgets = []repository.Budget{{
		ID: "b1", CategoryID: "cat_food", LimitAmount: dec("100"), Period: repository.PeriodMonthly,
	}}
	l.transactions = []repository.Transaction{
		// June 10 is in the previous custom month (May 15 - Jun 14).
		{ID: "t1", Type: repository.TypeExpense, Amount: dec("60"), CategoryID: "cat_food", AccountID: "acc_a",
			Date: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "t2", Type: repository.TypeExpense, Amount: dec("25"), CategoryID: "cat_food", AccountID: "acc_a",
			Date: time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)},
	}

	s := &BudgetService{Ledger: l}
	lines := s.Lines(ref)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Spent.Equal(dec("25")))
}
