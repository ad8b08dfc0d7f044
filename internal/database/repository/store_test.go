package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger/pocketledger/internal/database"
)

func testStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrationsPath, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrationsPath))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewStore(db), db
}

func TestEmptyStoreServesDefaults(t *testing.T) {
	ctx := context.Background()
	s, _ := testStore(t)

	txs, err := s.Transactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)

	accounts, err := s.Accounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultAccounts(), accounts)

	categories, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultCategories(), categories)

	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)

	streak, err := s.Streak(ctx)
	require.NoError(t, err)
	assert.Zero(t, streak.CurrentCount)
	assert.Empty(t, streak.LastLogDate)
}

func TestTransactionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := testStore(t)

	in := []Transaction{{
		ID:         "tx1",
		Type:       TypeExpense,
		Amount:     decimal.RequireFromString("12.50"),
		Currency:   "USD",
		Date:       time.Date(2025, time.June, 15, 12, 30, 0, 0, time.UTC),
		AccountID:  "acc_1",
		CategoryID: "cat_1",
		Notes:      "Chipotle",
		CreatedAt:  time.Date(2025, time.June, 15, 12, 31, 0, 0, time.UTC),
	}}
	require.NoError(t, s.SaveTransactions(ctx, in))

	out, err := s.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "tx1", out[0].ID)
	assert.True(t, out[0].Amount.Equal(in[0].Amount))
	assert.True(t, out[0].Date.Equal(in[0].Date))
	assert.Equal(t, "Chipotle", out[0].Notes)
}

func TestSaveOverwritesWholeCollection(t *testing.T) {
	ctx := context.Background()
	s, _ := testStore(t)

	require.NoError(t, s.SaveAccounts(ctx, []Account{{ID: "a1", Name: "One", Type: AccountBank}}))
	require.NoError(t, s.SaveAccounts(ctx, []Account{{ID: "a2", Name: "Two", Type: AccountCash}}))

	accounts, err := s.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "a2", accounts[0].ID)
}

func TestSaveNilNormalizesToEmptyList(t *testing.T) {
	ctx := context.Background()
	s, db := testStore(t)

	require.NoError(t, s.SaveTransactions(ctx, nil))

	var raw string
	require.NoError(t, db.QueryRow(`SELECT value FROM collections WHERE key = 'transactions'`).Scan(&raw))
	assert.Equal(t, "[]", raw)

	// An explicitly stored empty list no longer reads as "never saved".
	accounts := []Account{}
	require.NoError(t, s.SaveAccounts(ctx, accounts))
	got, err := s.Accounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSettingsMergeOverDefaults(t *testing.T) {
	ctx := context.Background()
	s, db := testStore(t)

	// A payload written before newer fields existed carries only some keys.
	_, err := db.Exec(
		`INSERT INTO collections(key, value, updated_at) VALUES ('settings', ?, CURRENT_TIMESTAMP)`,
		`{"userName":"Ada"}`,
	)
	require.NoError(t, err)

	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", settings.UserName)
	assert.Equal(t, DefaultSettings().CurrencySymbol, settings.CurrencySymbol)
	assert.Equal(t, DefaultSettings().MonthlyStartDay, settings.MonthlyStartDay)
}

func TestCorruptPayloadSurfacesError(t *testing.T) {
	ctx := context.Background()
	s, db := testStore(t)

	_, err := db.Exec(
		`INSERT INTO collections(key, value, updated_at) VALUES ('budgets', 'not json', CURRENT_TIMESTAMP)`,
	)
	require.NoError(t, err)

	_, err = s.Budgets(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding collection budgets")
}
