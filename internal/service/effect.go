package service

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/database/repository"
)

// balanceEffect returns the signed amount tx contributes to accountID's
// running balance: income credits its account, expense debits it, a
// transfer debits the source and credits the destination. The transfer
// clauses accumulate, so a transfer from an account to itself nets to zero.
func balanceEffect(tx repository.Transaction, accountID string) decimal.Decimal {
	switch tx.Type {
	case repository.TypeIncome:
		if tx.AccountID == accountID {
			return tx.Amount
		}
	case repository.TypeExpense:
		if tx.AccountID == accountID {
			return tx.Amount.Neg()
		}
	case repository.TypeTransfer:
		effect := decimal.Zero
		if tx.AccountID == accountID {
			effect = effect.Sub(tx.Amount)
		}
		if tx.ToAccountID == accountID {
			effect = effect.Add(tx.Amount)
		}
		return effect
	}
	return decimal.Zero
}

// applyEffects adds each transaction's balance effect to the account set,
// in place. negate reverses the effects (used for delete and for undoing
// the old version on update).
func applyEffects(accounts []repository.Account, txs []repository.Transaction, negate bool) {
	for i := range accounts {
		delta := decimal.Zero
		for _, tx := range txs {
			delta = delta.Add(balanceEffect(tx, accounts[i].ID))
		}
		if negate {
			delta = delta.Neg()
		}
		if !delta.IsZero() {
			accounts[i].CurrentBalance = accounts[i].CurrentBalance.Add(delta)
		}
	}
}
