package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger/pocketledger/internal/database/repository"
)

func expandRecurring(t *testing.T, l *LedgerService, now time.Time) int {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	n, err := l.expandRecurringLocked(context.Background(), now)
	require.NoError(t, err)
	return n
}

func TestExpandRecurringBackfillsMissedMonths(t *testing.T) {
	l := testLedger(t)
	now := time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC)
	l.accounts = []repository.Account{{ID: "acc_a", Name: "Checking", Type: repository.AccountBank}}
	l.transactions = []repository.Transaction{{
		ID: "tmpl", Amount: dec("1800"), Type: repository.TypeExpense,
		AccountID: "acc_a", CategoryID: "cat_4", Notes: "Rent",
		Date:        time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC),
		IsRecurring: true, Recurrence: repository.RecurMonthly,
	}}
	applyEffects(l.accounts, l.transactions, false)

	n := expandRecurring(t, l, now)
	assert.Equal(t, 3, n, "Jul, Aug and Sep occurrences were missed")

	txs := l.Transactions()
	require.Len(t, txs, 4)
	instances := 0
	for _, tx := range txs {
		if tx.ParentID == "tmpl" {
			instances++
			assert.False(t, tx.IsRecurring, "generated instances are plain transactions")
			assert.NotEqual(t, "tmpl", tx.ID)
			assert.Equal(t, 15, tx.Date.Day())
			assert.Equal(t, "Rent", tx.Notes)
		}
	}
	assert.Equal(t, 3, instances)

	// Template plus three instances, 1800 each.
	assert.True(t, l.Accounts()[0].CurrentBalance.Equal(dec("-7200")))
	requireBalanceInvariant(t, l)
}

func TestExpandRecurringIsIdempotent(t *testing.T) {
	l := testLedger(t)
	now := time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC)
	l.accounts = []repository.Account{{ID: "acc_a", Name: "Checking", Type: repository.AccountBank}}
	l.transactions = []repository.Transaction{{
		ID: "tmpl", Amount: dec("60"), Type: repository.TypeExpense,
		AccountID: "acc_a", CategoryID: "cat_6",
		Date:        time.Date(2025, time.August, 20, 9, 0, 0, 0, time.UTC),
		IsRecurring: true, Recurrence: repository.RecurWeekly,
	}}

	first := expandRecurring(t, l, now)
	require.Positive(t, first)
	balance := l.Accounts()[0].CurrentBalance

	second := expandRecurring(t, l, now)
	assert.Zero(t, second, "a second pass anchors on the generated instances")
	assert.True(t, l.Accounts()[0].CurrentBalance.Equal(balance))
}

func TestExpandRecurringSkipsFutureTemplates(t *testing.T) {
	l := testLedger(t)
	now := time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC)
	l.transactions = []repository.Transaction{{
		ID: "tmpl", Amount: dec("100"), Type: repository.TypeExpense,
		AccountID: "acc_a", CategoryID: "cat_1",
		Date:        now.AddDate(0, 0, 2),
		IsRecurring: true, Recurrence: repository.RecurDaily,
	}}

	assert.Zero(t, expandRecurring(t, l, now))
	assert.Len(t, l.Transactions(), 1)
}

func TestExpandRecurringCapsBacklog(t *testing.T) {
	l := testLedger(t)
	now := time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC)
	l.accounts = []repository.Account{{ID: "acc_a", Name: "Checking", Type: repository.AccountBank}}
	l.transactions = []repository.Transaction{{
		ID: "tmpl", Amount: dec("1"), Type: repository.TypeExpense,
		AccountID: "acc_a", CategoryID: "cat_1",
		Date:        now.AddDate(0, 0, -500),
		IsRecurring: true, Recurrence: repository.RecurDaily,
	}}

	n := expandRecurring(t, l, now)
	assert.Equal(t, maxGeneratedPerTemplate, n)
}

func TestExpandRecurringIgnoresPlainTransactions(t *testing.T) {
	l := testLedger(t)
	now := time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC)
	l.transactions = []repository.Transaction{
		{
			ID: "plain", Amount: dec("10"), Type: repository.TypeExpense,
			AccountID: "acc_a", CategoryID: "cat_1",
			Date: now.AddDate(0, -2, 0),
		},
		{
			ID: "noRule", Amount: dec("10"), Type: repository.TypeExpense,
			AccountID: "acc_a", CategoryID: "cat_1",
			Date: now.AddDate(0, -2, 0), IsRecurring: true,
		},
	}

	assert.Zero(t, expandRecurring(t, l, now))
}
