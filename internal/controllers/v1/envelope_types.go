package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wolf-negro/bolsas-backend/internal/httputil"
	"github.com/wolf-negro/bolsas-backend/internal/models"
)

type EnvelopeEditable struct {
	Name             string          `json:"name" example:"Daily expenses" default:""`
	Weight           decimal.Decimal `json:"weight" example:"0.5" minimum:"0" maximum:"1" default:"0"`       // Fraction of automatic-split incomes this envelope receives
	MinimumThreshold decimal.Decimal `json:"minimumThreshold" example:"100" minimum:"0" default:"0"`         // Balances at or below this are at risk
}

// model returns the database resource for the API representation of the editable fields
func (editable EnvelopeEditable) model() models.Envelope {
	return models.Envelope{
		Name:             editable.Name,
		Weight:           editable.Weight,
		MinimumThreshold: editable.MinimumThreshold,
	}
}

type EnvelopeLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/envelopes/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`                   // The envelope itself
	Reconcile    string `json:"reconcile" example:"https://example.com/api/v1/envelopes/438cc6c0-9baf-49fd-a75a-d76bd5cab19c/reconcile"`    // Reconcile the envelope against a real-world balance
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?envelope=438cc6c0-9baf-49fd-a75a-d76bd5cab19c"` // The transactions referencing the envelope
}

type Envelope struct {
	models.DefaultModel
	EnvelopeEditable
	Balance decimal.Decimal  `json:"balance" example:"450"`   // Balance derived from the full transaction history
	Risk    models.RiskState `json:"risk" example:"near-risk"` // Derived warning state relative to the minimum threshold
	Links   EnvelopeLinks    `json:"links"`
}

// newEnvelope returns the API v1 representation of the resource
func newEnvelope(c *gin.Context, model models.Envelope, balance decimal.Decimal) Envelope {
	url := httputil.RequestHost(c)

	return Envelope{
		DefaultModel: model.DefaultModel,
		EnvelopeEditable: EnvelopeEditable{
			Name:             model.Name,
			Weight:           model.Weight,
			MinimumThreshold: model.MinimumThreshold,
		},
		Balance: balance,
		Risk:    model.Risk(balance),
		Links: EnvelopeLinks{
			Self:         fmt.Sprintf("%s/v1/envelopes/%s", url, model.ID),
			Reconcile:    fmt.Sprintf("%s/v1/envelopes/%s/reconcile", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?envelope=%s", url, model.ID),
		},
	}
}

type EnvelopeListResponse struct {
	Data  []Envelope `json:"data"`                                                          // List of resources
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type EnvelopeCreateResponse struct {
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []EnvelopeResponse `json:"data"`                                                          // List of created resources
}

func (r *EnvelopeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, EnvelopeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type EnvelopeResponse struct {
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Envelope `json:"data"`                                                          // The resource
}

// ReconcileRequest carries the balance the user asserts to really have.
type ReconcileRequest struct {
	AssertedBalance decimal.Decimal `json:"assertedBalance" example:"400"`
}
