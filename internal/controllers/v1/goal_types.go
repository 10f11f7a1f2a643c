package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wolf-negro/bolsas-backend/internal/httputil"
	"github.com/wolf-negro/bolsas-backend/internal/models"
)

// BasisTotalIncome is the basis value reported when the goal tracks
// the total monthly income instead of a set of envelopes.
const BasisTotalIncome = "total"

type GoalEditable struct {
	TargetAmount *decimal.Decimal `json:"targetAmount" example:"5000" minimum:"0.00000001"` // Target amount, unchanged if unset
	EnvelopeIDs  *[]uuid.UUID     `json:"envelopeIds"`                                      // Basis envelopes, unchanged if unset, reverts to total income if empty
}

type GoalLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/goal"` // The goal itself
}

type Goal struct {
	models.DefaultModel
	TargetAmount decimal.Decimal `json:"targetAmount" example:"5000"`
	Basis        string          `json:"basis" example:"total"` // "total" or "envelopes"
	EnvelopeIDs  []uuid.UUID     `json:"envelopeIds"`           // Basis envelopes, empty when tracking total income
	Progress     models.Progress `json:"progress"`
	Links        GoalLinks       `json:"links"`
}

// newGoal returns the API v1 representation of the resource
func newGoal(c *gin.Context, model models.Goal, progress models.Progress) Goal {
	url := httputil.RequestHost(c)

	goal := Goal{
		DefaultModel: model.DefaultModel,
		TargetAmount: model.TargetAmount,
		Basis:        BasisTotalIncome,
		EnvelopeIDs:  make([]uuid.UUID, 0, len(model.Envelopes)),
		Progress:     progress,
		Links: GoalLinks{
			Self: fmt.Sprintf("%s/v1/goal", url),
		},
	}

	if !model.BasisIsTotalIncome() {
		goal.Basis = "envelopes"
	}

	for _, envelope := range model.Envelopes {
		goal.EnvelopeIDs = append(goal.EnvelopeIDs, envelope.ID)
	}

	return goal
}

type GoalResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Goal   `json:"data"`                                                          // The resource
}
