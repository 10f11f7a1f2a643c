package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind is the kind of a ledger entry.
type TransactionKind string

const (
	TransactionIncome     TransactionKind = "income"
	TransactionExpense    TransactionKind = "expense"
	TransactionAdjustment TransactionKind = "adjustment"
)

// DefaultNote is used when a transaction is saved without a note.
const DefaultNote = "No description"

// Transaction represents one entry of the ledger.
//
// Income and expense amounts are positive magnitudes, the kind carries the
// direction. Adjustments store the signed reconciliation diff directly.
//
// An automatic-split income has no envelope. It is distributed over all
// envelopes by weight when balances are computed, so changing a weight
// changes how all historical automatic-split incomes resolve.
type Transaction struct {
	DefaultModel
	Kind       TransactionKind
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note       string
	Date       time.Time // Time of day is only used for sorting
	EnvelopeID *uuid.UUID
	Envelope   Envelope
	AutoSplit  bool // Only meaningful for income
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	// Enforce dates to be in UTC
	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - defaults the note and the date
//   - enforces the kind, amount and envelope invariants
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Note = strings.TrimSpace(t.Note)
	if t.Note == "" {
		t.Note = DefaultNote
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	// Ensure that the Envelope ID is nil and not a pointer to a nil UUID
	// when it is not set
	if t.EnvelopeID != nil && *t.EnvelopeID == uuid.Nil {
		t.EnvelopeID = nil
	}

	if t.AutoSplit && t.Kind != TransactionIncome {
		return ErrAutoSplitKind
	}

	switch t.Kind {
	case TransactionIncome:
		if !t.Amount.IsPositive() {
			return ErrInvalidAmount
		}

		if t.AutoSplit {
			if t.EnvelopeID != nil {
				return ErrAutoSplitEnvelope
			}
		} else if t.EnvelopeID == nil {
			return ErrMissingEnvelope
		}

	case TransactionExpense:
		if !t.Amount.IsPositive() {
			return ErrInvalidAmount
		}

		if t.EnvelopeID == nil {
			return ErrMissingEnvelope
		}

	case TransactionAdjustment:
		if t.Amount.IsZero() {
			return ErrAdjustmentAmountZero
		}

		if t.EnvelopeID == nil {
			return ErrMissingEnvelope
		}

	default:
		return ErrInvalidTransactionKind
	}

	return nil
}

// Returns all transactions on this instance for export
func (Transaction) Export() (json.RawMessage, error) {
	var transactions []Transaction
	err := DB.Unscoped().Where(&Transaction{}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&transactions)
	if err != nil {
		return json.RawMessage{}, err
	}

	return json.RawMessage(j), nil
}
