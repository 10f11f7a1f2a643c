package models

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Goal is the savings/income goal of the instance.
//
// The goal is measured against a basis: when no envelopes are selected the
// basis is the total income of the current month, otherwise it is the sum
// of the selected envelopes' current balances. Representing the sentinel as
// the empty set means that deselecting the last envelope reverts the basis
// to total monthly income without a special case.
type Goal struct {
	DefaultModel
	TargetAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Envelopes    []Envelope      `gorm:"many2many:goal_envelopes"`
}

// defaultGoalTarget is the target amount a fresh instance starts with.
var defaultGoalTarget = decimal.NewFromInt(5000)

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	if !g.TargetAmount.IsPositive() {
		return ErrInvalidGoal
	}

	return nil
}

// BasisIsTotalIncome reports whether the goal is measured against the
// total income of a month instead of envelope balances.
func (g Goal) BasisIsTotalIncome() bool {
	return len(g.Envelopes) == 0
}

// CurrentGoal returns the goal of this instance, creating the default
// goal when none has been configured yet.
func CurrentGoal(db *gorm.DB) (Goal, error) {
	var goal Goal

	err := db.Preload("Envelopes").First(&goal).Error
	if err == nil {
		return goal, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return Goal{}, err
	}

	goal = Goal{TargetAmount: defaultGoalTarget}
	err = db.Create(&goal).Error
	if err != nil {
		return Goal{}, err
	}

	return goal, nil
}

// SetTarget updates the target amount of the goal.
func (g *Goal) SetTarget(db *gorm.DB, target decimal.Decimal) error {
	if !target.IsPositive() {
		return ErrInvalidGoal
	}

	g.TargetAmount = target
	return db.Omit(clause.Associations).Save(g).Error
}

// SetBasis replaces the set of envelopes the goal is measured against.
// An empty set selects the total-monthly-income basis. Selecting any
// envelope clears the total-monthly-income basis implicitly.
func (g *Goal) SetBasis(db *gorm.DB, envelopeIDs []uuid.UUID) error {
	envelopes := make([]Envelope, 0, len(envelopeIDs))
	for _, id := range envelopeIDs {
		var envelope Envelope
		err := db.First(&envelope, id).Error
		if err != nil {
			return err
		}

		envelopes = append(envelopes, envelope)
	}

	assoc := db.Model(g).Association("Envelopes")

	var err error
	if len(envelopes) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(envelopes)
	}
	if err != nil {
		return err
	}

	g.Envelopes = envelopes
	return nil
}

// Returns the goal of this instance for export
func (Goal) Export() (json.RawMessage, error) {
	var goals []Goal
	err := DB.Unscoped().Preload("Envelopes").Where(&Goal{}).Find(&goals).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&goals)
	if err != nil {
		return json.RawMessage{}, err
	}

	return json.RawMessage(j), nil
}
