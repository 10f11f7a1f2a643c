package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/wolf-negro/bolsas-backend/internal/controllers/v1"
	"github.com/wolf-negro/bolsas-backend/test"
)

// patchTestGoal updates the goal via the v1 API.
func patchTestGoal(t *testing.T, editable v1.GoalEditable, expectedStatus ...int) v1.GoalResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusOK)
	}

	r := test.Request(t, http.MethodPatch, "http://example.com/v1/goal", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var gr v1.GoalResponse
	test.DecodeResponse(t, &r, &gr)

	return gr
}

// TestGoalOptions verifies the allowed methods for the goal endpoint.
func (suite *TestSuiteStandard) TestGoalOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/goal", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH", r.Header().Get("allow"))
}

// TestGoalGetDefault verifies that the first read creates the default goal.
func (suite *TestSuiteStandard) TestGoalGetDefault() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/goal", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.TargetAmount.Equal(decimal.NewFromFloat(5000)), "Target is %s", response.Data.TargetAmount)
	assert.Equal(suite.T(), "total", response.Data.Basis)
	assert.Empty(suite.T(), response.Data.EnvelopeIDs)
	assert.True(suite.T(), response.Data.Progress.Percent.IsZero())
}

// TestGoalProgressTotalIncome verifies progress against the monthly income.
func (suite *TestSuiteStandard) TestGoalProgressTotalIncome() {
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{Name: "Salary sink", Weight: decimal.NewFromFloat(1)})

	createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:      "income",
		Amount:    decimal.NewFromFloat(600),
		AutoSplit: true,
		Date:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:       "income",
		Amount:     decimal.NewFromFloat(650),
		EnvelopeID: &envelope.Data.ID,
		Date:       time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	})

	// Income of another month must not count
	createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:       "income",
		Amount:     decimal.NewFromFloat(9999),
		EnvelopeID: &envelope.Data.ID,
		Date:       time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC),
	})

	patchTestGoal(suite.T(), v1.GoalEditable{TargetAmount: decimalPtr(2500)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/goal?month=2026-08", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Progress.Current.Equal(decimal.NewFromFloat(1250)), "Current is %s", response.Data.Progress.Current)
	assert.True(suite.T(), response.Data.Progress.Percent.Equal(decimal.NewFromFloat(50)), "Percent is %s", response.Data.Progress.Percent)
}

// TestGoalProgressClamped verifies that progress never exceeds 100 percent.
func (suite *TestSuiteStandard) TestGoalProgressClamped() {
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{Name: "Salary sink"})

	createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:       "income",
		Amount:     decimal.NewFromFloat(2000),
		EnvelopeID: &envelope.Data.ID,
		Date:       time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})

	patchTestGoal(suite.T(), v1.GoalEditable{TargetAmount: decimalPtr(1000)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/goal?month=2026-08", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Progress.Percent.Equal(decimal.NewFromFloat(100)), "Percent is %s", response.Data.Progress.Percent)
}

// TestGoalEnvelopeBasis verifies progress against a set of envelopes.
func (suite *TestSuiteStandard) TestGoalEnvelopeBasis() {
	savings := createTestEnvelope(suite.T(), v1.EnvelopeEditable{Name: "Savings"})
	other := createTestEnvelope(suite.T(), v1.EnvelopeEditable{Name: "Other"})

	createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:       "income",
		Amount:     decimal.NewFromFloat(800),
		EnvelopeID: &savings.Data.ID,
	})
	createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:       "income",
		Amount:     decimal.NewFromFloat(300),
		EnvelopeID: &other.Data.ID,
	})

	response := patchTestGoal(suite.T(), v1.GoalEditable{
		TargetAmount: decimalPtr(1600),
		EnvelopeIDs:  &[]uuid.UUID{savings.Data.ID},
	})

	assert.Equal(suite.T(), "envelopes", response.Data.Basis)
	assert.Equal(suite.T(), []uuid.UUID{savings.Data.ID}, response.Data.EnvelopeIDs)
	assert.True(suite.T(), response.Data.Progress.Current.Equal(decimal.NewFromFloat(800)), "Current is %s", response.Data.Progress.Current)
	assert.True(suite.T(), response.Data.Progress.Percent.Equal(decimal.NewFromFloat(50)), "Percent is %s", response.Data.Progress.Percent)

	// Deselecting all envelopes reverts to the total income basis
	response = patchTestGoal(suite.T(), v1.GoalEditable{EnvelopeIDs: &[]uuid.UUID{}})
	assert.Equal(suite.T(), "total", response.Data.Basis)
}

// TestGoalPatch verifies the validation of goal updates.
func (suite *TestSuiteStandard) TestGoalPatch() {
	tests := []struct {
		name     string
		editable v1.GoalEditable
		status   int
	}{
		{"Valid target", v1.GoalEditable{TargetAmount: decimalPtr(10000)}, http.StatusOK},
		{"Zero target", v1.GoalEditable{TargetAmount: decimalPtr(0)}, http.StatusBadRequest},
		{"Negative target", v1.GoalEditable{TargetAmount: decimalPtr(-1)}, http.StatusBadRequest},
		{"Nothing set", v1.GoalEditable{}, http.StatusOK},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			patchTestGoal(t, tt.editable, tt.status)
		})
	}
}

// TestGoalPatchUnknownEnvelope verifies that unknown basis envelopes are rejected.
func (suite *TestSuiteStandard) TestGoalPatchUnknownEnvelope() {
	patchTestGoal(suite.T(), v1.GoalEditable{
		EnvelopeIDs: &[]uuid.UUID{uuid.New()},
	}, http.StatusNotFound)
}

// TestGoalGetInvalidMonth verifies the error for unparseable months.
func (suite *TestSuiteStandard) TestGoalGetInvalidMonth() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/goal?month=NotAMonth", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func decimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}
