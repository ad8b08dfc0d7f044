package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/database/repository"
	"github.com/pocketledger/pocketledger/internal/daterange"
)

// AssistantService is the query/mutation surface the chat assistant drives.
// Every call is synchronous and atomic from the caller's perspective; the
// assistant's own network loop lives outside this module. Time ranges are
// addressed as month offsets: 0 is the current (custom) month, -1 the
// previous one, and so on.
type AssistantService struct {
	Ledger *LedgerService
}

// Summary is the answer to getFinancialSummary.
type Summary struct {
	Period           string          `json:"period"`
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int             `json:"transactionCount"`
}

// CategoryAmount is one line of a category breakdown.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Breakdown carries the top category totals for a period.
type Breakdown struct {
	Period    string           `json:"period"`
	Breakdown []CategoryAmount `json:"breakdown"`
}

// MerchantAmount is one line of a merchant breakdown. The merchant is the
// free-text notes field; transactions without notes group under
// "Unspecified".
type MerchantAmount struct {
	Merchant string          `json:"merchant"`
	Amount   decimal.Decimal `json:"amount"`
}

// MerchantBreakdown carries the top merchant totals for a period.
type MerchantBreakdownResult struct {
	Period    string           `json:"period"`
	Breakdown []MerchantAmount `json:"breakdown"`
}

// TrendPoint is one day of spending.
type TrendPoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Trend carries per-day expense totals across a period.
type Trend struct {
	Period string       `json:"period"`
	Trend  []TrendPoint `json:"trend"`
}

// SearchHit is a compact transaction view returned by search.
type SearchHit struct {
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Notes    string          `json:"notes,omitempty"`
}

// SearchResult caps at ten hits regardless of how many matched.
type SearchResult struct {
	Count        int         `json:"count"`
	Transactions []SearchHit `json:"transactions"`
}

const breakdownLimit = 5
const searchLimit = 10

func (a *AssistantService) monthContext(offset int) (daterange.Range, string) {
	settings := a.Ledger.Settings()
	now := a.Ledger.now()
	if offset > 0 {
		offset = -offset
	}
	target := now.AddDate(0, offset, 0)
	r := daterange.MonthRange(target, settings.MonthlyStartDay)
	if settings.MonthlyStartDay == 1 {
		return r, target.Format("January 2006")
	}
	return r, fmt.Sprintf("%s - %s", r.Start.Format("Jan 2"), r.End.Format("Jan 2"))
}

// FinancialSummary totals income and expense for the resolved month.
// Transfers into a credit account count as expense: paying a card down is
// spending from the dashboard's point of view.
func (a *AssistantService) FinancialSummary(monthOffset int) Summary {
	r, label := a.monthContext(monthOffset)
	accounts := a.Ledger.Accounts()
	creditIDs := make(map[string]bool)
	for _, acc := range accounts {
		if acc.Type == repository.AccountCredit {
			creditIDs[acc.ID] = true
		}
	}

	out := Summary{Period: label, Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range a.Ledger.Transactions() {
		if !r.Contains(tx.Date) {
			continue
		}
		out.TransactionCount++
		switch tx.Type {
		case repository.TypeIncome:
			out.Income = out.Income.Add(tx.Amount)
		case repository.TypeExpense:
			out.Expense = out.Expense.Add(tx.Amount)
		case repository.TypeTransfer:
			if creditIDs[tx.ToAccountID] {
				out.Expense = out.Expense.Add(tx.Amount)
			}
		}
	}
	out.Net = out.Income.Sub(out.Expense)
	return out
}

// CategoryBreakdown returns the top five category totals of the given type
// (default expense) for the resolved month. Orphaned category references
// aggregate as "Uncategorized".
func (a *AssistantService) CategoryBreakdown(monthOffset int, txType repository.TransactionType) Breakdown {
	if txType == "" {
		txType = repository.TypeExpense
	}
	r, label := a.monthContext(monthOffset)
	names := a.categoryNames()

	totals := map[string]decimal.Decimal{}
	for _, tx := range a.Ledger.Transactions() {
		if tx.Type != txType || !r.Contains(tx.Date) {
			continue
		}
		name, ok := names[tx.CategoryID]
		if !ok {
			name = "Uncategorized"
		}
		totals[name] = totals[name].Add(tx.Amount)
	}

	lines := make([]CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		lines = append(lines, CategoryAmount{Category: name, Amount: amount})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Amount.GreaterThan(lines[j].Amount) })
	if len(lines) > breakdownLimit {
		lines = lines[:breakdownLimit]
	}
	return Breakdown{Period: label, Breakdown: lines}
}

// MerchantBreakdown returns the top five merchants (notes field) by expense
// total for the resolved month.
func (a *AssistantService) MerchantBreakdown(monthOffset int) MerchantBreakdownResult {
	r, label := a.monthContext(monthOffset)

	totals := map[string]decimal.Decimal{}
	for _, tx := range a.Ledger.Transactions() {
		if tx.Type != repository.TypeExpense || !r.Contains(tx.Date) {
			continue
		}
		merchant := tx.Notes
		if merchant == "" {
			merchant = "Unspecified"
		}
		totals[merchant] = totals[merchant].Add(tx.Amount)
	}

	lines := make([]MerchantAmount, 0, len(totals))
	for merchant, amount := range totals {
		lines = append(lines, MerchantAmount{Merchant: merchant, Amount: amount})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Amount.GreaterThan(lines[j].Amount) })
	if len(lines) > breakdownLimit {
		lines = lines[:breakdownLimit]
	}
	return MerchantBreakdownResult{Period: label, Breakdown: lines}
}

// MonthlyTrend returns one expense total per day across the resolved month.
func (a *AssistantService) MonthlyTrend(monthOffset int) Trend {
	r, label := a.monthContext(monthOffset)
	txs := a.Ledger.Transactions()

	var points []TrendPoint
	for day := r.Start; !day.After(r.End); day = day.AddDate(0, 0, 1) {
		total := decimal.Zero
		for _, tx := range txs {
			if tx.Type == repository.TypeExpense && daterange.SameDay(tx.Date, day) {
				total = total.Add(tx.Amount)
			}
		}
		points = append(points, TrendPoint{Date: day.Format(dayFormat), Amount: total})
	}
	return Trend{Period: label, Trend: points}
}

// SearchArgs are the searchTransactions parameters. MonthOffset nil means
// all time.
type SearchArgs struct {
	Query       string           `json:"query"`
	MinAmount   *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount   *decimal.Decimal `json:"maxAmount,omitempty"`
	MonthOffset *int             `json:"monthOffset,omitempty"`
}

// SearchTransactions matches query case-insensitively against category name
// or notes, optionally bounded by amount and month, ten hits max.
func (a *AssistantService) SearchTransactions(args SearchArgs) SearchResult {
	query := strings.ToLower(args.Query)
	names := a.categoryNames()

	var r daterange.Range
	filterMonth := args.MonthOffset != nil
	if filterMonth {
		r, _ = a.monthContext(*args.MonthOffset)
	}

	var hits []SearchHit
	for _, tx := range a.Ledger.Transactions() {
		if filterMonth && !r.Contains(tx.Date) {
			continue
		}
		category := names[tx.CategoryID]
		if !strings.Contains(strings.ToLower(category), query) &&
			!strings.Contains(strings.ToLower(tx.Notes), query) {
			continue
		}
		if args.MinAmount != nil && tx.Amount.LessThan(*args.MinAmount) {
			continue
		}
		if args.MaxAmount != nil && tx.Amount.GreaterThan(*args.MaxAmount) {
			continue
		}
		hits = append(hits, SearchHit{
			Date:     tx.Date.Format(dayFormat),
			Amount:   tx.Amount,
			Type:     string(tx.Type),
			Category: category,
			Notes:    tx.Notes,
		})
		if len(hits) == searchLimit {
			break
		}
	}
	return SearchResult{Count: len(hits), Transactions: hits}
}

// AddArgs are the assistant-facing addTransaction parameters. Accounts and
// categories arrive as display names and are resolved fuzzily.
type AddArgs struct {
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryName  string          `json:"categoryName,omitempty"`
	AccountName   string          `json:"accountName,omitempty"`
	ToAccountName string          `json:"toAccountName,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Date          string          `json:"date,omitempty"`
}

// AddResult reports the outcome in a form the assistant can read back.
type AddResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AddTransaction resolves names to ids and delegates to the ledger.
// Unresolvable names degrade to the first category of the matching type and
// the first account rather than failing; the assistant's caller confirms
// the echoed result with the user.
func (a *AssistantService) AddTransaction(ctx context.Context, args AddArgs) (AddResult, error) {
	txType := repository.TransactionType(args.Type)
	if txType == "" {
		txType = repository.TypeExpense
	}

	account := a.resolveAccount(args.AccountName)
	if account == nil {
		return AddResult{}, fmt.Errorf("no accounts exist")
	}
	category := a.resolveCategory(args.CategoryName, txType)

	date := a.Ledger.now()
	if args.Date != "" {
		if parsed, err := time.ParseInLocation(dayFormat, args.Date, time.Local); err == nil {
			date = parsed
		}
	}

	tx := repository.Transaction{
		Type:       txType,
		Amount:     args.Amount,
		Currency:   account.Currency,
		Date:       date,
		AccountID:  account.ID,
		CategoryID: category.ID,
		Notes:      args.Notes,
	}
	if tx.Notes == "" {
		if txType == repository.TypeIncome {
			tx.Notes = "Income"
		} else {
			tx.Notes = "AI Entry"
		}
	}
	if txType == repository.TypeTransfer {
		if to := a.resolveAccount(args.ToAccountName); to != nil {
			tx.ToAccountID = to.ID
		}
		tx.CategoryID = repository.TransferCategoryID
	}

	if _, _, err := a.Ledger.AddTransaction(ctx, tx); err != nil {
		return AddResult{Status: "error", Message: err.Error()}, err
	}
	symbol := a.Ledger.Settings().CurrencySymbol
	return AddResult{
		Status:  "success",
		Message: fmt.Sprintf("Added %s%s to %s", symbol, args.Amount.String(), category.Name),
	}, nil
}

func (a *AssistantService) categoryNames() map[string]string {
	categories := a.Ledger.Categories()
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

// resolveAccount finds the account whose name contains the query, falling
// back to the closest levenshtein match and finally to the first account.
func (a *AssistantService) resolveAccount(name string) *repository.Account {
	accounts := a.Ledger.Accounts()
	if len(accounts) == 0 {
		return nil
	}
	if name != "" {
		query := strings.ToLower(name)
		for i := range accounts {
			if strings.Contains(strings.ToLower(accounts[i].Name), query) {
				return &accounts[i]
			}
		}
		if i := closestName(query, accountNames(accounts)); i >= 0 {
			return &accounts[i]
		}
	}
	return &accounts[0]
}

// resolveCategory mirrors resolveAccount, with a fallback to the first
// category of the transaction's type.
func (a *AssistantService) resolveCategory(name string, txType repository.TransactionType) *repository.Category {
	categories := a.Ledger.Categories()
	if len(categories) == 0 {
		return &repository.Category{ID: "", Name: "Uncategorized"}
	}
	if name != "" {
		query := strings.ToLower(name)
		for i := range categories {
			if strings.Contains(strings.ToLower(categories[i].Name), query) {
				return &categories[i]
			}
		}
		names := make([]string, len(categories))
		for i, c := range categories {
			names[i] = c.Name
		}
		if i := closestName(query, names); i >= 0 {
			return &categories[i]
		}
	}
	fallbackType := txType
	if fallbackType == repository.TypeTransfer {
		fallbackType = repository.TypeExpense
	}
	for i := range categories {
		if categories[i].Type == fallbackType {
			return &categories[i]
		}
	}
	return &categories[0]
}

// closestName returns the index of the candidate most similar to query, or
// -1 when nothing clears the similarity floor. Similarity is normalized
// levenshtein distance, the same measure the reconciliation matcher uses.
func closestName(query string, candidates []string) int {
	const minSimilarity = 0.5
	best, bestIdx := 0.0, -1
	for i, c := range candidates {
		lc := strings.ToLower(c)
		longest := len(lc)
		if len(query) > longest {
			longest = len(query)
		}
		if longest == 0 {
			continue
		}
		sim := 1 - float64(levenshtein.ComputeDistance(query, lc))/float64(longest)
		if sim > best {
			best, bestIdx = sim, i
		}
	}
	if best < minSimilarity {
		return -1
	}
	return bestIdx
}

func accountNames(accounts []repository.Account) []string {
	names := make([]string, len(accounts))
	for i, a := range accounts {
		names[i] = a.Name
	}
	return names
}
