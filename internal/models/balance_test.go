package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolf-negro/bolsas-backend/internal/models"
)

func (suite *TestSuiteStandard) TestComputeBalancesScenario() {
	// The scenario from the original application: two envelopes with a
	// 50/50 split, one auto-split income, one expense, one reconciliation
	// adjustment.
	daily := suite.createTestEnvelope(models.Envelope{Name: "Daily", Weight: decimal.NewFromFloat(0.5), MinimumThreshold: decimal.NewFromInt(100)})
	savings := suite.createTestEnvelope(models.Envelope{Name: "Savings", Weight: decimal.NewFromFloat(0.5), MinimumThreshold: decimal.NewFromInt(500)})

	_ = suite.createTestTransaction(models.Transaction{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(1000), AutoSplit: true})

	balances, err := models.CurrentBalances(models.DB)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), balances.Of(daily.ID).Equal(decimal.NewFromInt(500)), "Daily balance is %s", balances.Of(daily.ID))
	assert.True(suite.T(), balances.Of(savings.ID).Equal(decimal.NewFromInt(500)), "Savings balance is %s", balances.Of(savings.ID))

	_ = suite.createTestTransaction(models.Transaction{Kind: models.TransactionExpense, Amount: decimal.NewFromInt(50), EnvelopeID: &daily.ID})

	balances, err = models.CurrentBalances(models.DB)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), balances.Of(daily.ID).Equal(decimal.NewFromInt(450)), "Daily balance is %s", balances.Of(daily.ID))
	assert.True(suite.T(), balances.Of(savings.ID).Equal(decimal.NewFromInt(500)), "Savings balance is %s", balances.Of(savings.ID))

	transaction, err := models.Reconcile(models.DB, daily.ID, decimal.NewFromInt(400))
	require.Nil(suite.T(), err)
	require.NotNil(suite.T(), transaction)
	assert.True(suite.T(), transaction.Amount.Equal(decimal.NewFromInt(-50)), "Adjustment amount is %s", transaction.Amount)

	balances, err = models.CurrentBalances(models.DB)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), balances.Of(daily.ID).Equal(decimal.NewFromInt(400)), "Daily balance is %s", balances.Of(daily.ID))
	assert.True(suite.T(), balances.Of(savings.ID).Equal(decimal.NewFromInt(500)), "Savings balance is %s", balances.Of(savings.ID))
}

func (suite *TestSuiteStandard) TestComputeBalancesOrderIndependence() {
	daily := models.Envelope{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Daily", Weight: decimal.NewFromFloat(0.3)}
	savings := models.Envelope{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Savings", Weight: decimal.NewFromFloat(0.7)}
	envelopes := []models.Envelope{daily, savings}

	transactions := []models.Transaction{
		{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(1000), AutoSplit: true},
		{Kind: models.TransactionExpense, Amount: decimal.NewFromInt(120), EnvelopeID: &daily.ID},
		{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(55), EnvelopeID: &savings.ID},
		{Kind: models.TransactionAdjustment, Amount: decimal.NewFromFloat(-12.5), EnvelopeID: &daily.ID},
	}

	reversed := make([]models.Transaction, 0, len(transactions))
	for i := len(transactions) - 1; i >= 0; i-- {
		reversed = append(reversed, transactions[i])
	}

	forward := models.ComputeBalances(envelopes, transactions)
	backward := models.ComputeBalances(envelopes, reversed)

	for _, envelope := range envelopes {
		assert.True(suite.T(), forward.Of(envelope.ID).Equal(backward.Of(envelope.ID)),
			"balance for %s differs: %s vs %s", envelope.Name, forward.Of(envelope.ID), backward.Of(envelope.ID))
	}
}

func (suite *TestSuiteStandard) TestComputeBalancesSplitCompleteness() {
	// Weights do not need to sum to 1. The unattributed remainder of an
	// automatic split simply does not show up in any envelope.
	daily := models.Envelope{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Daily", Weight: decimal.NewFromFloat(0.25)}
	savings := models.Envelope{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Savings", Weight: decimal.NewFromFloat(0.5)}

	balances := models.ComputeBalances(
		[]models.Envelope{daily, savings},
		[]models.Transaction{{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(1000), AutoSplit: true}},
	)

	assert.True(suite.T(), balances.Of(daily.ID).Equal(decimal.NewFromInt(250)))
	assert.True(suite.T(), balances.Of(savings.ID).Equal(decimal.NewFromInt(500)))
}

func (suite *TestSuiteStandard) TestComputeBalancesConservation() {
	// Without automatic splits and dangling references, the sum of all
	// balances equals income minus expenses plus signed adjustments.
	daily := models.Envelope{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Daily"}
	savings := models.Envelope{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Savings"}

	transactions := []models.Transaction{
		{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(800), EnvelopeID: &daily.ID},
		{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(200), EnvelopeID: &savings.ID},
		{Kind: models.TransactionExpense, Amount: decimal.NewFromInt(300), EnvelopeID: &daily.ID},
		{Kind: models.TransactionAdjustment, Amount: decimal.NewFromInt(-25), EnvelopeID: &savings.ID},
		{Kind: models.TransactionAdjustment, Amount: decimal.NewFromInt(10), EnvelopeID: &daily.ID},
	}

	balances := models.ComputeBalances([]models.Envelope{daily, savings}, transactions)

	total := decimal.Zero
	for _, envelope := range []models.Envelope{daily, savings} {
		total = total.Add(balances.Of(envelope.ID))
	}

	// 800 + 200 - 300 - 25 + 10
	assert.True(suite.T(), total.Equal(decimal.NewFromInt(685)), "total is %s", total)
}

func (suite *TestSuiteStandard) TestComputeBalancesDanglingReference() {
	envelope := suite.createTestEnvelope(models.Envelope{Name: "Daily", Weight: decimal.NewFromInt(1)})
	deleted := suite.createTestEnvelope(models.Envelope{Name: "Old", Weight: decimal.Zero})

	_ = suite.createTestTransaction(models.Transaction{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(100), EnvelopeID: &envelope.ID})
	_ = suite.createTestTransaction(models.Transaction{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(40), EnvelopeID: &deleted.ID})
	_ = suite.createTestTransaction(models.Transaction{Kind: models.TransactionExpense, Amount: decimal.NewFromInt(15), EnvelopeID: &deleted.ID})

	err := models.DB.Delete(&deleted).Error
	require.Nil(suite.T(), err)

	// The dangling entries stay in the ledger but contribute to no balance.
	balances, err := models.CurrentBalances(models.DB)
	require.Nil(suite.T(), err)

	assert.Len(suite.T(), balances, 1)
	assert.True(suite.T(), balances.Of(envelope.ID).Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), balances.Of(deleted.ID).IsZero())

	var count int64
	models.DB.Model(&models.Transaction{}).Count(&count)
	assert.Equal(suite.T(), int64(3), count)
}

func (suite *TestSuiteStandard) TestComputeBalancesEnvelopeAddedLater() {
	// An envelope added after an auto-split income participates in it: the
	// split is resolved at computation time, not at append time.
	_ = suite.createTestTransaction(models.Transaction{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(1000), AutoSplit: true})

	envelope := suite.createTestEnvelope(models.Envelope{Name: "Late", Weight: decimal.NewFromFloat(0.1)})

	balances, err := models.CurrentBalances(models.DB)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), balances.Of(envelope.ID).Equal(decimal.NewFromInt(100)), "balance is %s", balances.Of(envelope.ID))
}

func (suite *TestSuiteStandard) TestComputeBalancesReweighting() {
	// Editing a weight changes how all historical auto-split incomes
	// resolve.
	envelope := suite.createTestEnvelope(models.Envelope{Name: "Daily", Weight: decimal.NewFromFloat(0.5)})
	_ = suite.createTestTransaction(models.Transaction{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(1000), AutoSplit: true})

	balance, err := models.BalanceOf(models.DB, envelope.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.NewFromInt(500)))

	err = models.DB.Model(&envelope).Update("Weight", decimal.NewFromFloat(0.2)).Error
	require.Nil(suite.T(), err)

	balance, err = models.BalanceOf(models.DB, envelope.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.NewFromInt(200)), "balance is %s", balance)
}

func (suite *TestSuiteStandard) TestBalancesOfUnknownID() {
	balances := models.Balances{}
	assert.True(suite.T(), balances.Of(uuid.New()).IsZero())
}

func (suite *TestSuiteStandard) TestTransactionSplit() {
	daily := models.Envelope{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Daily", Weight: decimal.NewFromFloat(0.5)}
	savings := models.Envelope{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Savings", Weight: decimal.NewFromFloat(0.3)}
	envelopes := []models.Envelope{daily, savings}

	income := models.Transaction{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(200), AutoSplit: true, Date: time.Now()}

	shares := income.Split(envelopes)
	require.Len(suite.T(), shares, 2)
	assert.True(suite.T(), shares[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(suite.T(), "Daily", shares[0].Name)
	assert.True(suite.T(), shares[1].Amount.Equal(decimal.NewFromInt(60)))

	manual := models.Transaction{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(200), EnvelopeID: &daily.ID}
	assert.Nil(suite.T(), manual.Split(envelopes))

	expense := models.Transaction{Kind: models.TransactionExpense, Amount: decimal.NewFromInt(10), EnvelopeID: &daily.ID}
	assert.Nil(suite.T(), expense.Split(envelopes))
}
