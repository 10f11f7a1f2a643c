package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Balances maps envelope IDs to their signed balance.
type Balances map[uuid.UUID]decimal.Decimal

// Of returns the balance for an envelope ID. Unknown IDs resolve to zero,
// historical entries stay inspectable after their envelope is deleted.
func (b Balances) Of(id uuid.UUID) decimal.Decimal {
	balance, ok := b[id]
	if !ok {
		return decimal.Zero
	}

	return balance
}

// ComputeBalances folds the full transaction history over the registry.
//
// The fold is commutative per envelope, the order of the transactions never
// changes the result. Balances are recomputed from scratch on every call:
// automatic-split incomes resolve with the weights the envelopes have now,
// so cached running totals would go stale when a weight is edited.
//
// Transactions referencing an envelope that is not in the registry
// contribute to no balance.
func ComputeBalances(envelopes []Envelope, transactions []Transaction) Balances {
	balances := make(Balances, len(envelopes))
	for _, envelope := range envelopes {
		balances[envelope.ID] = decimal.Zero
	}

	for _, t := range transactions {
		switch t.Kind {
		case TransactionIncome:
			if t.AutoSplit {
				for _, envelope := range envelopes {
					balances[envelope.ID] = balances[envelope.ID].Add(t.Amount.Mul(envelope.Weight))
				}
				continue
			}

			addBalance(balances, t.EnvelopeID, t.Amount)

		case TransactionExpense:
			addBalance(balances, t.EnvelopeID, t.Amount.Neg())

		case TransactionAdjustment:
			// Adjustments carry their sign in the amount
			addBalance(balances, t.EnvelopeID, t.Amount)
		}
	}

	return balances
}

// addBalance applies an amount to the balance of the referenced envelope.
// Dangling and missing references are skipped, not errors.
func addBalance(balances Balances, envelopeID *uuid.UUID, amount decimal.Decimal) {
	if envelopeID == nil {
		return
	}

	balance, ok := balances[*envelopeID]
	if !ok {
		return
	}

	balances[*envelopeID] = balance.Add(amount)
}

// CurrentBalances loads the registry and the full ledger and folds them.
func CurrentBalances(db *gorm.DB) (Balances, error) {
	var envelopes []Envelope
	err := db.Find(&envelopes).Error
	if err != nil {
		return nil, err
	}

	var transactions []Transaction
	err = db.Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return ComputeBalances(envelopes, transactions), nil
}

// BalanceOf returns the current balance of a single envelope.
func BalanceOf(db *gorm.DB, id uuid.UUID) (decimal.Decimal, error) {
	balances, err := CurrentBalances(db)
	if err != nil {
		return decimal.Zero, err
	}

	return balances.Of(id), nil
}

// SplitShare is the part of an automatic-split income one envelope receives.
type SplitShare struct {
	EnvelopeID uuid.UUID       `json:"envelopeId"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
}

// Split returns the per-envelope breakdown of an automatic-split income
// with the current envelope weights. It returns nil for all other
// transactions.
func (t Transaction) Split(envelopes []Envelope) []SplitShare {
	if t.Kind != TransactionIncome || !t.AutoSplit {
		return nil
	}

	shares := make([]SplitShare, 0, len(envelopes))
	for _, envelope := range envelopes {
		shares = append(shares, SplitShare{
			EnvelopeID: envelope.ID,
			Name:       envelope.Name,
			Amount:     t.Amount.Mul(envelope.Weight),
		})
	}

	return shares
}
