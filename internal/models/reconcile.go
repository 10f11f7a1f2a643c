package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReconciliationNote is the audit note of adjustments created by Reconcile.
const ReconciliationNote = "Balance reconciliation"

// Reconcile compares the computed balance of an envelope with the balance
// the user asserts to really have and appends a corrective adjustment for
// the difference.
//
// When the computed balance already matches, nothing is appended and nil is
// returned for the transaction. Reconciling the same envelope twice with
// the same asserted balance therefore appends exactly one adjustment.
func Reconcile(db *gorm.DB, envelopeID uuid.UUID, assertedBalance decimal.Decimal) (*Transaction, error) {
	var envelope Envelope
	err := db.First(&envelope, envelopeID).Error
	if err != nil {
		return nil, err
	}

	computed, err := BalanceOf(db, envelopeID)
	if err != nil {
		return nil, err
	}

	diff := assertedBalance.Sub(computed)
	if diff.IsZero() {
		return nil, nil
	}

	transaction := Transaction{
		Kind:       TransactionAdjustment,
		Amount:     diff,
		Note:       ReconciliationNote,
		EnvelopeID: &envelope.ID,
	}

	err = db.Create(&transaction).Error
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}
