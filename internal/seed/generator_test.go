package seed

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger/pocketledger/internal/database/repository"
)

func TestGenerateShape(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	data := Generate(now)

	require.Len(t, data.Accounts, 4)
	require.Len(t, data.Budgets, 4)
	assert.Equal(t, repository.DefaultCategories(), data.Categories)

	// 3 opening + 2*4 cycle + 50 discretionary + 3 recent.
	assert.Len(t, data.Transactions, 64)

	for _, tx := range data.Transactions {
		assert.NotEmpty(t, tx.ID)
		assert.True(t, tx.Amount.IsPositive(), "%s has non-positive amount", tx.Notes)
		assert.Equal(t, "USD", tx.Currency)
		assert.False(t, tx.Date.After(now), "%s dated in the future", tx.Notes)
		if tx.Type == repository.TypeTransfer {
			assert.NotEmpty(t, tx.ToAccountID)
			assert.Equal(t, repository.TransferCategoryID, tx.CategoryID)
		}
	}
}

func TestGenerateBalancesMatchTransactions(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	data := Generate(now)

	for _, acc := range data.Accounts {
		sum := decimal.Zero
		for _, tx := range data.Transactions {
			switch tx.Type {
			case repository.TypeIncome:
				if tx.AccountID == acc.ID {
					sum = sum.Add(tx.Amount)
				}
			case repository.TypeExpense:
				if tx.AccountID == acc.ID {
					sum = sum.Sub(tx.Amount)
				}
			case repository.TypeTransfer:
				if tx.AccountID == acc.ID {
					sum = sum.Sub(tx.Amount)
				}
				if tx.ToAccountID == acc.ID {
					sum = sum.Add(tx.Amount)
				}
			}
		}
		assert.Truef(t, acc.CurrentBalance.Equal(sum),
			"account %s balance %s, transactions sum to %s", acc.Name, acc.CurrentBalance, sum)
	}
}

func TestGenerateSortedNewestFirst(t *testing.T) {
	data := Generate(time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))
	for i := 1; i < len(data.Transactions); i++ {
		assert.False(t, data.Transactions[i-1].Date.Before(data.Transactions[i].Date),
			"transactions must be sorted newest first")
	}
}

func TestGenerateUsesOnlyKnownReferences(t *testing.T) {
	data := Generate(time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	accountIDs := map[string]bool{}
	for _, acc := range data.Accounts {
		accountIDs[acc.ID] = true
	}
	categoryIDs := map[string]bool{}
	for _, c := range data.Categories {
		categoryIDs[c.ID] = true
	}

	for _, tx := range data.Transactions {
		assert.True(t, accountIDs[tx.AccountID], "unknown account %s", tx.AccountID)
		assert.True(t, categoryIDs[tx.CategoryID], "unknown category %s", tx.CategoryID)
		if tx.ToAccountID != "" {
			assert.True(t, accountIDs[tx.ToAccountID], "unknown destination %s", tx.ToAccountID)
		}
	}
	for _, b := range data.Budgets {
		assert.True(t, categoryIDs[b.CategoryID], "budget for unknown category %s", b.CategoryID)
	}
}
