package models_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wolf-negro/bolsas-backend/internal/models"
)

func (suite *TestSuiteStandard) TestEnvelopeBeforeSave() {
	tests := []struct {
		name     string
		envelope models.Envelope
		err      error
	}{
		{
			"valid",
			models.Envelope{Name: "Daily", Weight: decimal.NewFromFloat(0.5), MinimumThreshold: decimal.NewFromInt(100)},
			nil,
		},
		{
			"weight of exactly 1 is valid",
			models.Envelope{Name: "Everything", Weight: decimal.NewFromInt(1)},
			nil,
		},
		{
			"zero weight is valid",
			models.Envelope{Name: "Unweighted"},
			nil,
		},
		{
			"empty name",
			models.Envelope{Weight: decimal.NewFromFloat(0.5)},
			models.ErrEnvelopeNameEmpty,
		},
		{
			"whitespace name",
			models.Envelope{Name: "   \t"},
			models.ErrEnvelopeNameEmpty,
		},
		{
			"negative weight",
			models.Envelope{Name: "Broken", Weight: decimal.NewFromFloat(-0.1)},
			models.ErrInvalidWeight,
		},
		{
			"weight above 1",
			models.Envelope{Name: "Broken", Weight: decimal.NewFromFloat(1.01)},
			models.ErrInvalidWeight,
		},
		{
			"negative threshold",
			models.Envelope{Name: "Broken", MinimumThreshold: decimal.NewFromInt(-1)},
			models.ErrInvalidThreshold,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			envelope := tt.envelope
			err := envelope.BeforeSave(&gorm.DB{})
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestEnvelopeRejectedSaveLeavesRegistryUnchanged() {
	_ = suite.createTestEnvelope(models.Envelope{Name: "Savings", Weight: decimal.NewFromFloat(0.5)})

	err := models.DB.Create(&models.Envelope{Name: "Broken", Weight: decimal.NewFromInt(2)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrInvalidWeight)

	var count int64
	models.DB.Model(&models.Envelope{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestEnvelopeTrimWhitespace() {
	name := "  Daily expenses \t"

	envelope := suite.createTestEnvelope(models.Envelope{Name: name})
	assert.Equal(suite.T(), strings.TrimSpace(name), envelope.Name)
}

func (suite *TestSuiteStandard) TestEnvelopeRisk() {
	envelope := models.Envelope{
		Name:             "Daily",
		MinimumThreshold: decimal.NewFromInt(100),
	}

	tests := []struct {
		balance float64
		state   models.RiskState
	}{
		{100.00, models.RiskStateAtRisk},
		{99.99, models.RiskStateAtRisk},
		{-20, models.RiskStateAtRisk},
		{100.01, models.RiskStateNearRisk},
		{109.99, models.RiskStateNearRisk},
		{110, models.RiskStateNearRisk},
		{110.01, models.RiskStateOK},
		{500, models.RiskStateOK},
	}

	for _, tt := range tests {
		assert.Equal(suite.T(), tt.state, envelope.Risk(decimal.NewFromFloat(tt.balance)), "balance %v", tt.balance)
	}
}

func (suite *TestSuiteStandard) TestEnvelopeRiskZeroThreshold() {
	envelope := models.Envelope{Name: "No cushion"}

	assert.Equal(suite.T(), models.RiskStateAtRisk, envelope.Risk(decimal.Zero))
	assert.Equal(suite.T(), models.RiskStateAtRisk, envelope.Risk(decimal.NewFromInt(-5)))
	assert.Equal(suite.T(), models.RiskStateOK, envelope.Risk(decimal.NewFromFloat(0.01)))
}

func (suite *TestSuiteStandard) TestEnvelopeExport() {
	t := suite.T()

	for _, name := range []string{"Daily", "Savings"} {
		_ = suite.createTestEnvelope(models.Envelope{Name: name, Weight: decimal.NewFromFloat(0.5)})
	}

	raw, err := models.Envelope{}.Export()
	if err != nil {
		require.Fail(t, "envelope export failed", err)
	}

	var envelopes []models.Envelope
	err = json.Unmarshal(raw, &envelopes)
	if err != nil {
		require.Fail(t, "JSON could not be unmarshaled", err)
	}

	require.Len(t, envelopes, 2, "Number of envelopes in export is wrong")
}
