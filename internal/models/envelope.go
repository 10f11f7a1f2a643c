package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Envelope represents a named bucket that money is allocated into.
//
// The weight is the fraction of an automatic-split income this envelope
// receives. Weights are independent user-set values, their sum over all
// envelopes is not required to be 1.
type Envelope struct {
	DefaultModel
	Name             string
	Weight           decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Fraction in [0,1] used for automatic distribution
	MinimumThreshold decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Balances at or below this are at risk
}

// RiskState is the derived warning state of an envelope balance
// relative to its minimum threshold.
type RiskState string

const (
	RiskStateOK       RiskState = "ok"
	RiskStateNearRisk RiskState = "near-risk" // balance within 10% above the threshold
	RiskStateAtRisk   RiskState = "at-risk"   // balance at or below the threshold
)

// nearRiskFactor is the band above the threshold that triggers the
// near-risk warning state.
var nearRiskFactor = decimal.NewFromFloat(1.1)

func (e *Envelope) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return ErrEnvelopeNameEmpty
	}

	if e.Weight.IsNegative() || e.Weight.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidWeight
	}

	if e.MinimumThreshold.IsNegative() {
		return ErrInvalidThreshold
	}

	return nil
}

// Risk returns the risk state for a balance of this envelope.
func (e Envelope) Risk(balance decimal.Decimal) RiskState {
	if balance.LessThanOrEqual(e.MinimumThreshold) {
		return RiskStateAtRisk
	}

	if balance.LessThanOrEqual(e.MinimumThreshold.Mul(nearRiskFactor)) {
		return RiskStateNearRisk
	}

	return RiskStateOK
}

// Returns all envelopes on this instance for export
func (Envelope) Export() (json.RawMessage, error) {
	var envelopes []Envelope
	err := DB.Unscoped().Where(&Envelope{}).Find(&envelopes).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&envelopes)
	if err != nil {
		return json.RawMessage{}, err
	}

	return json.RawMessage(j), nil
}
