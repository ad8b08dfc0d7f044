package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection keys. One row per collection, full overwrite on save.
const (
	keyTransactions = "transactions"
	keyAccounts     = "accounts"
	keyCategories   = "categories"
	keyBudgets      = "budgets"
	keySettings     = "settings"
	keyStreak       = "streak"
)

// Store persists whole collections as JSON blobs, one per key. There are no
// partial writes and no cross-collection transactionality; callers that need
// several collections saved together do so sequentially.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading collection %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decoding collection %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) put(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding collection %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
	INSERT INTO collections(key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
	 value=excluded.value,
	 updated_at=CURRENT_TIMESTAMP;
	`, key, string(raw))
	if err != nil {
		return fmt.Errorf("writing collection %s: %w", key, err)
	}
	return nil
}

func (s *Store) Transactions(ctx context.Context) ([]Transaction, error) {
	var out []Transaction
	if _, err := s.get(ctx, keyTransactions, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SaveTransactions(ctx context.Context, txs []Transaction) error {
	if txs == nil {
		txs = []Transaction{}
	}
	return s.put(ctx, keyTransactions, txs)
}

func (s *Store) Accounts(ctx context.Context) ([]Account, error) {
	var out []Account
	ok, err := s.get(ctx, keyAccounts, &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return DefaultAccounts(), nil
	}
	return out, nil
}

func (s *Store) SaveAccounts(ctx context.Context, accounts []Account) error {
	if accounts == nil {
		accounts = []Account{}
	}
	return s.put(ctx, keyAccounts, accounts)
}

func (s *Store) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	ok, err := s.get(ctx, keyCategories, &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return DefaultCategories(), nil
	}
	return out, nil
}

func (s *Store) SaveCategories(ctx context.Context, categories []Category) error {
	if categories == nil {
		categories = []Category{}
	}
	return s.put(ctx, keyCategories, categories)
}

func (s *Store) Budgets(ctx context.Context) ([]Budget, error) {
	var out []Budget
	if _, err := s.get(ctx, keyBudgets, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SaveBudgets(ctx context.Context, budgets []Budget) error {
	if budgets == nil {
		budgets = []Budget{}
	}
	return s.put(ctx, keyBudgets, budgets)
}

// Settings merges the stored payload over the defaults so that payloads
// written by older versions, missing newer fields, still load complete.
func (s *Store) Settings(ctx context.Context) (Settings, error) {
	out := DefaultSettings()
	if _, err := s.get(ctx, keySettings, &out); err != nil {
		return Settings{}, err
	}
	return out, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings Settings) error {
	return s.put(ctx, keySettings, settings)
}

func (s *Store) Streak(ctx context.Context) (Streak, error) {
	out := DefaultStreak()
	if _, err := s.get(ctx, keyStreak, &out); err != nil {
		return Streak{}, err
	}
	return out, nil
}

func (s *Store) SaveStreak(ctx context.Context, streak Streak) error {
	return s.put(ctx, keyStreak, streak)
}
