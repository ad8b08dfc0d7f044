package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags a transaction's direction.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountCash    AccountType = "cash"
	AccountBank    AccountType = "bank"
	AccountCredit  AccountType = "credit"
	AccountSavings AccountType = "savings"
)

// RecurrenceRule is the repeat interval of a recurring template.
type RecurrenceRule string

const (
	RecurDaily   RecurrenceRule = "daily"
	RecurWeekly  RecurrenceRule = "weekly"
	RecurMonthly RecurrenceRule = "monthly"
)

// BudgetPeriod is the window a budget limit applies to.
type BudgetPeriod string

const (
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Account represents an account record. CurrentBalance is a derived cache:
// it always equals the sum of balance effects of all live transactions
// touching the account. For credit accounts a negative balance is debt owed.
type Account struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	Currency       string          `json:"currency"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Color          string          `json:"color"`
	CreditLimit    decimal.Decimal `json:"credit_limit,omitempty"`
}

// Category represents a category record. Categories form a two-level tree:
// parents and direct children only.
type Category struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     TransactionType `json:"type"`
	Icon     string          `json:"icon"`
	Color    string          `json:"color"`
	ParentID string          `json:"parent_category_id,omitempty"`
}

// Transaction represents a ledger entry. Amount is always non-negative;
// the sign of its balance effect is derived from Type. A recurring template
// has IsRecurring set; generated instances carry ParentID back to it.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
	AccountID   string          `json:"account_id"`
	ToAccountID string          `json:"to_account_id,omitempty"`
	CategoryID  string          `json:"category_id"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	IsRecurring bool            `json:"is_recurring,omitempty"`
	Recurrence  RecurrenceRule  `json:"recurrence_rule,omitempty"`
	ParentID    string          `json:"parent_id,omitempty"`
}

// Budget caps spending for one category. At most one budget exists per
// category; adding another replaces it.
type Budget struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	Period      BudgetPeriod    `json:"period"`
}

// Settings holds user display preferences.
type Settings struct {
	UserName        string `json:"userName"`
	UserAvatar      string `json:"userAvatar,omitempty"`
	MonthlyStartDay int    `json:"monthlyStartDate"`
	WeeklyStartDay  string `json:"weeklyStartDay"`
	ThemeMode       string `json:"themeMode"`
	CurrencySymbol  string `json:"currencySymbol"`
}

// Streak is the consecutive-day logging counter. LastLogDate is a
// yyyy-mm-dd string or empty when nothing was ever logged.
type Streak struct {
	CurrentCount int    `json:"currentCount"`
	LongestCount int    `json:"longestCount"`
	LastLogDate  string `json:"lastLogDate,omitempty"`
}
