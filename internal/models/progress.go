package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wolf-negro/bolsas-backend/internal/types"
)

// Progress is the state of the goal for one month.
type Progress struct {
	Current decimal.Decimal `json:"current" example:"1300"`
	Target  decimal.Decimal `json:"target" example:"5000"`
	Percent decimal.Decimal `json:"percent" example:"26"` // Clamped to at most 100
}

var oneHundred = decimal.NewFromInt(100)

// Progress computes how far along the goal is in the given month.
//
// With the total-monthly-income basis the current value is the gross income
// of the month, automatic and manual income counted identically. With an
// envelope basis it is the point-in-time sum of the selected envelopes'
// balances, the month does not matter.
func (g Goal) Progress(db *gorm.DB, month types.Month) (Progress, error) {
	if !g.TargetAmount.IsPositive() {
		return Progress{}, ErrInvalidGoal
	}

	var current decimal.Decimal
	if g.BasisIsTotalIncome() {
		income, err := MonthIncome(db, month)
		if err != nil {
			return Progress{}, err
		}

		current = income
	} else {
		balances, err := CurrentBalances(db)
		if err != nil {
			return Progress{}, err
		}

		for _, envelope := range g.Envelopes {
			current = current.Add(balances.Of(envelope.ID))
		}
	}

	percent := current.Div(g.TargetAmount).Mul(oneHundred)
	if percent.GreaterThan(oneHundred) {
		percent = oneHundred
	}

	return Progress{
		Current: current,
		Target:  g.TargetAmount,
		Percent: percent,
	}, nil
}

// MonthIncome returns the sum of all income amounts in the month.
func MonthIncome(db *gorm.DB, month types.Month) (decimal.Decimal, error) {
	var incomes []Transaction
	err := db.Where(&Transaction{Kind: TransactionIncome}).Find(&incomes).Error
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, t := range incomes {
		if month.Contains(t.Date) {
			sum = sum.Add(t.Amount)
		}
	}

	return sum, nil
}
