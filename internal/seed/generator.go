// Package seed produces the demo dataset used on first run and on explicit
// reset: deterministic in shape, randomized in amounts.
package seed

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/database/repository"
)

// CurrencySymbol matches the generated dataset; reset forces settings to it.
const CurrencySymbol = "$"

const seedCurrency = "USD"

// Data bundles one generated dataset.
type Data struct {
	Accounts     []repository.Account
	Transactions []repository.Transaction
	Categories   []repository.Category
	Budgets      []repository.Budget
}

type archetype struct {
	categoryID string
	merchant   string
	min, max   int
	accountID  string
}

// Generate builds the demo dataset anchored at now. Account balances are
// recomputed from the generated transactions, never hand-set, so the
// balance invariant holds from the first frame.
func Generate(now time.Time) Data {
	categories := repository.DefaultCategories()

	accounts := []repository.Account{
		{ID: "acc_1", Name: "Chase Checking", Type: repository.AccountBank, Currency: seedCurrency, Color: "violet"},
		{ID: "acc_2", Name: "Amex Gold", Type: repository.AccountCredit, Currency: seedCurrency, Color: "amber", CreditLimit: decimal.NewFromInt(15000)},
		{ID: "acc_3", Name: "High Yield Savings", Type: repository.AccountSavings, Currency: seedCurrency, Color: "emerald"},
		{ID: "acc_4", Name: "Wallet Cash", Type: repository.AccountCash, Currency: seedCurrency, Color: "zinc"},
	}

	var txs []repository.Transaction
	add := func(daysAgo int, txType repository.TransactionType, amount decimal.Decimal, notes, categoryID, accountID, toAccountID string) {
		date := now.AddDate(0, 0, -daysAgo)
		txs = append(txs, repository.Transaction{
			ID:          uuid.NewString(),
			Type:        txType,
			Amount:      amount,
			Currency:    seedCurrency,
			Date:        date,
			AccountID:   accountID,
			ToAccountID: toAccountID,
			CategoryID:  categoryID,
			Notes:       notes,
			CreatedAt:   date,
		})
	}
	dollars := func(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

	// Opening balances, 60 days back.
	add(60, repository.TypeIncome, dollars(4500), "Opening Balance", "cat_5", "acc_1", "")
	add(60, repository.TypeIncome, dollars(10000), "Opening Balance", "cat_5", "acc_3", "")
	add(60, repository.TypeIncome, dollars(150), "Cash on hand", "cat_6", "acc_4", "")

	// Two monthly cycles: salary, rent, internet, savings transfer.
	for _, days := range []int{55, 25} {
		add(days, repository.TypeIncome, dollars(4200), "Salary Deposit", "cat_5", "acc_1", "")
		add(days-2, repository.TypeExpense, dollars(1800), "Monthly Rent", "cat_4", "acc_1", "")
		add(days-3, repository.TypeExpense, dollars(60), "Internet Bill", "cat_4", "acc_2", "")
		add(days-1, repository.TypeTransfer, dollars(500), "Monthly Savings", repository.TransferCategoryID, "acc_1", "acc_3")
	}

	// Discretionary spending drawn from weighted merchant archetypes.
	mix := []archetype{
		{"cat_1", "Whole Foods Market", 80, 200, "acc_2"},
		{"cat_1", "Starbucks", 6, 15, "acc_2"},
		{"cat_1", "Local Diner", 30, 60, "acc_1"},
		{"cat_2", "Uber Ride", 15, 40, "acc_2"},
		{"cat_2", "Shell Gas Station", 40, 70, "acc_2"},
		{"cat_7", "Netflix Subscription", 15, 15, "acc_2"},
		{"cat_7", "Cinema Tickets", 30, 50, "acc_2"},
		{"cat_3", "Amazon Purchase", 20, 150, "acc_2"},
		{"cat_3", "Target Run", 50, 120, "acc_1"},
	}
	for i := 0; i < 50; i++ {
		item := mix[rand.Intn(len(mix))]
		amount := dollars(rand.Intn(item.max-item.min+1) + item.min)
		add(rand.Intn(60), repository.TypeExpense, amount, item.merchant, item.categoryID, item.accountID, "")
	}

	// A few very recent transactions so the dashboard isn't stale.
	add(1, repository.TypeExpense, decimal.NewFromFloat(12.50), "Chipotle", "cat_1", "acc_2", "")
	add(2, repository.TypeExpense, decimal.NewFromInt(45), "Grocery Run", "cat_1", "acc_1", "")
	add(3, repository.TypeIncome, decimal.NewFromInt(150), "Freelance Gig", "cat_6", "acc_1", "")

	// Balances derived from the transaction list, same rule the engine uses.
	for i := range accounts {
		balance := decimal.Zero
		for _, tx := range txs {
			switch tx.Type {
			case repository.TypeIncome:
				if tx.AccountID == accounts[i].ID {
					balance = balance.Add(tx.Amount)
				}
			case repository.TypeExpense:
				if tx.AccountID == accounts[i].ID {
					balance = balance.Sub(tx.Amount)
				}
			case repository.TypeTransfer:
				if tx.AccountID == accounts[i].ID {
					balance = balance.Sub(tx.Amount)
				}
				if tx.ToAccountID == accounts[i].ID {
					balance = balance.Add(tx.Amount)
				}
			}
		}
		accounts[i].CurrentBalance = balance
	}

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })

	budgets := []repository.Budget{
		{ID: "bud_1", CategoryID: "cat_1", LimitAmount: dollars(800), Period: repository.PeriodMonthly},
		{ID: "bud_2", CategoryID: "cat_3", LimitAmount: dollars(400), Period: repository.PeriodMonthly},
		{ID: "bud_3", CategoryID: "cat_2", LimitAmount: dollars(300), Period: repository.PeriodMonthly},
		{ID: "bud_4", CategoryID: "cat_7", LimitAmount: dollars(200), Period: repository.PeriodMonthly},
	}

	return Data{Accounts: accounts, Transactions: txs, Categories: categories, Budgets: budgets}
}
