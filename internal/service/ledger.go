package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/pocketledger/internal/database/repository"
	"github.com/pocketledger/pocketledger/internal/seed"
)

var (
	// ErrNonPositiveAmount rejects transactions with a zero or negative
	// amount; direction is carried by the type, never the sign.
	ErrNonPositiveAmount = errors.New("transaction amount must be positive")
	// ErrMissingTransferDest rejects transfers without a destination account.
	ErrMissingTransferDest = errors.New("transfer requires a destination account")
)

// LedgerService owns the in-memory collections and every mutation on them.
// All operations keep the balance invariant: each account's balance equals
// the summed balance effects of the live transaction set. State is applied
// in memory first and then written through the store, so memory stays
// authoritative if a write fails.
type LedgerService struct {
	mu    sync.Mutex
	store *repository.Store
	now   func() time.Time

	accounts     []repository.Account
	transactions []repository.Transaction
	categories   []repository.Category
	budgets      []repository.Budget
	settings     repository.Settings
	streak       repository.Streak
}

func NewLedger(store *repository.Store) *LedgerService {
	return &LedgerService{store: store, now: time.Now}
}

// Load pulls every collection from the store, seeds demo data when no
// transactions exist yet, verifies streak integrity, and materializes
// missed recurring transactions. Call once at boot.
func (l *LedgerService) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var err error
	if l.transactions, err = l.store.Transactions(ctx); err != nil {
		return err
	}
	if l.accounts, err = l.store.Accounts(ctx); err != nil {
		return err
	}
	if l.categories, err = l.store.Categories(ctx); err != nil {
		return err
	}
	if l.budgets, err = l.store.Budgets(ctx); err != nil {
		return err
	}
	if l.settings, err = l.store.Settings(ctx); err != nil {
		return err
	}
	if l.streak, err = l.store.Streak(ctx); err != nil {
		return err
	}

	if len(l.transactions) == 0 {
		if err := l.seedLocked(ctx, false); err != nil {
			return err
		}
	}

	if err := l.checkStreakIntegrityLocked(ctx); err != nil {
		return err
	}

	if _, err := l.expandRecurringLocked(ctx, l.now()); err != nil {
		return err
	}
	return nil
}

// AddTransaction validates and records tx, updates the streak when tx is
// dated today, applies the balance effect, and persists. It returns the
// stored transaction, with id and created_at filled when the caller left
// them empty, plus the one-time reward signal: true when this is the first
// transaction logged for the current calendar day.
func (l *LedgerService) AddTransaction(ctx context.Context, tx repository.Transaction) (repository.Transaction, bool, error) {
	if err := validateTransaction(tx); err != nil {
		return repository.Transaction{}, false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}

	reward, streakChanged := l.logStreakLocked(tx.Date, now)

	// Insertion at head, not a full re-sort; update re-sorts.
	l.transactions = append([]repository.Transaction{tx}, l.transactions...)
	applyEffects(l.accounts, []repository.Transaction{tx}, false)

	if err := l.store.SaveTransactions(ctx, l.transactions); err != nil {
		return tx, reward, err
	}
	if err := l.store.SaveAccounts(ctx, l.accounts); err != nil {
		return tx, reward, err
	}
	if streakChanged {
		if err := l.store.SaveStreak(ctx, l.streak); err != nil {
			return tx, reward, err
		}
	}
	return tx, reward, nil
}

// UpdateTransaction replaces the stored version of tx by id. The old
// version's effect is reversed and the new one applied in a single pass, so
// an account touched by both nets out correctly. Unknown ids are a no-op.
func (l *LedgerService) UpdateTransaction(ctx context.Context, tx repository.Transaction) error {
	if err := validateTransaction(tx); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, t := range l.transactions {
		if t.ID == tx.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	old := l.transactions[idx]

	_, streakChanged := l.logStreakLocked(tx.Date, l.now())

	for i := range l.accounts {
		delta := balanceEffect(tx, l.accounts[i].ID).Sub(balanceEffect(old, l.accounts[i].ID))
		if !delta.IsZero() {
			l.accounts[i].CurrentBalance = l.accounts[i].CurrentBalance.Add(delta)
		}
	}

	l.transactions[idx] = tx
	sortTransactions(l.transactions)

	if err := l.store.SaveTransactions(ctx, l.transactions); err != nil {
		return err
	}
	if err := l.store.SaveAccounts(ctx, l.accounts); err != nil {
		return err
	}
	if streakChanged {
		if err := l.store.SaveStreak(ctx, l.streak); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTransaction reverses the transaction's balance effect and removes
// it. The streak is deliberately untouched: a day once logged stays logged
// even if its only transaction is deleted. Unknown ids are a no-op.
func (l *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, t := range l.transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	applyEffects(l.accounts, []repository.Transaction{l.transactions[idx]}, true)
	l.transactions = append(l.transactions[:idx], l.transactions[idx+1:]...)

	if err := l.store.SaveTransactions(ctx, l.transactions); err != nil {
		return err
	}
	return l.store.SaveAccounts(ctx, l.accounts)
}

func (l *LedgerService) AddAccount(ctx context.Context, a repository.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	l.accounts = append(l.accounts, a)
	return l.store.SaveAccounts(ctx, l.accounts)
}

// UpdateAccount replaces the account by id. Balance edits are allowed at
// this level only because the caller-facing layers never pass one; the
// engine's own mutations are the source of balance changes.
func (l *LedgerService) UpdateAccount(ctx context.Context, a repository.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.accounts {
		if l.accounts[i].ID == a.ID {
			l.accounts[i] = a
			break
		}
	}
	return l.store.SaveAccounts(ctx, l.accounts)
}

// DeleteAccount removes the account only. Transactions referencing it are
// left in place and aggregate as a zero effect; mirroring the permissive
// behavior reads must tolerate.
func (l *LedgerService) DeleteAccount(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.accounts[:0]
	for _, a := range l.accounts {
		if a.ID != id {
			out = append(out, a)
		}
	}
	l.accounts = out
	return l.store.SaveAccounts(ctx, l.accounts)
}

// AddBudget appends b, or replaces in place when a budget already exists
// for the same category. At most one budget per category survives.
func (l *LedgerService) AddBudget(ctx context.Context, b repository.Budget) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	replaced := false
	for i := range l.budgets {
		if l.budgets[i].CategoryID == b.CategoryID {
			l.budgets[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		l.budgets = append(l.budgets, b)
	}
	return l.store.SaveBudgets(ctx, l.budgets)
}

func (l *LedgerService) AddCategory(ctx context.Context, c repository.Category) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	l.categories = append(l.categories, c)
	return l.store.SaveCategories(ctx, l.categories)
}

func (l *LedgerService) UpdateCategory(ctx context.Context, c repository.Category) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.categories {
		if l.categories[i].ID == c.ID {
			l.categories[i] = c
			break
		}
	}
	return l.store.SaveCategories(ctx, l.categories)
}

// DeleteCategory removes a single category. Children of a deleted parent
// and transactions referencing the id are left untouched; reads resolve the
// orphans as uncategorized.
func (l *LedgerService) DeleteCategory(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.removeCategoriesLocked(func(c repository.Category) bool { return c.ID == id })
	return l.store.SaveCategories(ctx, l.categories)
}

// DeleteCategoryCascade removes a category together with its direct
// children, the interactive-confirm path of the caller made explicit.
func (l *LedgerService) DeleteCategoryCascade(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.removeCategoriesLocked(func(c repository.Category) bool {
		return c.ID == id || c.ParentID == id
	})
	return l.store.SaveCategories(ctx, l.categories)
}

func (l *LedgerService) removeCategoriesLocked(drop func(repository.Category) bool) {
	out := l.categories[:0]
	for _, c := range l.categories {
		if !drop(c) {
			out = append(out, c)
		}
	}
	l.categories = out
}

// SettingsPatch carries optional settings fields; nil means unchanged.
type SettingsPatch struct {
	UserName        *string `json:"userName,omitempty"`
	UserAvatar      *string `json:"userAvatar,omitempty"`
	MonthlyStartDay *int    `json:"monthlyStartDate,omitempty"`
	WeeklyStartDay  *string `json:"weeklyStartDay,omitempty"`
	ThemeMode       *string `json:"themeMode,omitempty"`
	CurrencySymbol  *string `json:"currencySymbol,omitempty"`
}

func (l *LedgerService) UpdateSettings(ctx context.Context, patch SettingsPatch) (repository.Settings, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.settings
	if patch.UserName != nil {
		s.UserName = *patch.UserName
	}
	if patch.UserAvatar != nil {
		s.UserAvatar = *patch.UserAvatar
	}
	if patch.MonthlyStartDay != nil {
		if *patch.MonthlyStartDay < 1 || *patch.MonthlyStartDay > 28 {
			return l.settings, fmt.Errorf("monthly start day %d out of range 1-28", *patch.MonthlyStartDay)
		}
		s.MonthlyStartDay = *patch.MonthlyStartDay
	}
	if patch.WeeklyStartDay != nil {
		s.WeeklyStartDay = *patch.WeeklyStartDay
	}
	if patch.ThemeMode != nil {
		s.ThemeMode = *patch.ThemeMode
	}
	if patch.CurrencySymbol != nil {
		s.CurrencySymbol = *patch.CurrencySymbol
	}
	l.settings = s
	return s, l.store.SaveSettings(ctx, s)
}

// Reset discards all state and replaces it with freshly generated demo
// data. The streak is zeroed and the currency symbol forced to match the
// seed dataset.
func (l *LedgerService) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seedLocked(ctx, true)
}

func (l *LedgerService) seedLocked(ctx context.Context, reset bool) error {
	data := seed.Generate(l.now())
	l.accounts = data.Accounts
	l.transactions = data.Transactions
	l.budgets = data.Budgets
	if reset {
		l.categories = data.Categories
		l.streak = repository.DefaultStreak()
		l.settings.CurrencySymbol = seed.CurrencySymbol
	} else if l.settings.CurrencySymbol == repository.DefaultSettings().CurrencySymbol {
		// First-run seeding: the dataset is USD, keep the symbol coherent
		// unless the user already picked one.
		l.settings.CurrencySymbol = seed.CurrencySymbol
	}

	if err := l.store.SaveAccounts(ctx, l.accounts); err != nil {
		return err
	}
	if err := l.store.SaveTransactions(ctx, l.transactions); err != nil {
		return err
	}
	if err := l.store.SaveBudgets(ctx, l.budgets); err != nil {
		return err
	}
	if err := l.store.SaveSettings(ctx, l.settings); err != nil {
		return err
	}
	if reset {
		if err := l.store.SaveCategories(ctx, l.categories); err != nil {
			return err
		}
		if err := l.store.SaveStreak(ctx, l.streak); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot accessors return copies; callers never see the live slices.

func (l *LedgerService) Accounts() []repository.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]repository.Account(nil), l.accounts...)
}

func (l *LedgerService) Transactions() []repository.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]repository.Transaction(nil), l.transactions...)
}

func (l *LedgerService) Categories() []repository.Category {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]repository.Category(nil), l.categories...)
}

func (l *LedgerService) Budgets() []repository.Budget {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]repository.Budget(nil), l.budgets...)
}

func (l *LedgerService) Settings() repository.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

func (l *LedgerService) StreakState() repository.Streak {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.streak
}

func validateTransaction(tx repository.Transaction) error {
	if !tx.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if tx.Type == repository.TypeTransfer && tx.ToAccountID == "" {
		return ErrMissingTransferDest
	}
	return nil
}

func sortTransactions(txs []repository.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}
