package repository

// Reserved category id for inter-account transfers. Excluded from normal
// income/expense rollups.
const TransferCategoryID = "cat_transfer"

// DefaultSettings returns the out-of-box preferences.
func DefaultSettings() Settings {
	return Settings{
		UserName:        "User",
		MonthlyStartDay: 1,
		WeeklyStartDay:  "Sunday",
		ThemeMode:       "light",
		CurrencySymbol:  "₹",
	}
}

// DefaultStreak returns a zeroed streak counter.
func DefaultStreak() Streak {
	return Streak{}
}

// DefaultAccounts returns the starter accounts used before any data exists.
func DefaultAccounts() []Account {
	return []Account{
		{ID: "acc_1", Name: "Cash", Type: AccountCash, Currency: "INR", Color: "violet"},
		{ID: "acc_2", Name: "Primary Bank", Type: AccountBank, Currency: "INR", Color: "indigo"},
		{ID: "acc_3", Name: "Savings", Type: AccountSavings, Currency: "INR", Color: "zinc"},
	}
}

// DefaultCategories returns the starter category set, including the
// reserved transfer category.
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat_1", Name: "Food & Dining", Type: TypeExpense, Icon: "pizza", Color: "violet"},
		{ID: "cat_2", Name: "Transport", Type: TypeExpense, Icon: "car", Color: "violet"},
		{ID: "cat_3", Name: "Shopping", Type: TypeExpense, Icon: "shopping-bag", Color: "violet"},
		{ID: "cat_4", Name: "Housing", Type: TypeExpense, Icon: "home", Color: "violet"},
		{ID: "cat_5", Name: "Salary", Type: TypeIncome, Icon: "banknote", Color: "emerald"},
		{ID: "cat_6", Name: "Side Hustle", Type: TypeIncome, Icon: "laptop", Color: "emerald"},
		{ID: "cat_7", Name: "Entertainment", Type: TypeExpense, Icon: "film", Color: "violet"},
		{ID: "cat_8", Name: "Health", Type: TypeExpense, Icon: "activity", Color: "violet"},
		{ID: TransferCategoryID, Name: "Transfer", Type: TypeExpense, Icon: "arrow-right-left", Color: "zinc"},
	}
}
