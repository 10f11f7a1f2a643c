package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wolf-negro/bolsas-backend/internal/httputil"
	"github.com/wolf-negro/bolsas-backend/internal/models"
	ez_uuid "github.com/wolf-negro/bolsas-backend/internal/uuid"
)

// UnknownEnvelopeName labels ledger entries whose envelope has been
// removed from the registry.
const UnknownEnvelopeName = "Unknown envelope"

type TransactionEditable struct {
	Kind       models.TransactionKind `json:"kind" example:"expense" enums:"income,expense,adjustment"`
	Amount     decimal.Decimal        `json:"amount" example:"50" multipleOf:"0.00000001"` // Positive magnitude for income and expense, signed for adjustments
	Note       string                 `json:"note" example:"Groceries" default:""`
	Date       time.Time              `json:"date" example:"2026-08-30T00:00:00Z"`
	EnvelopeID *uuid.UUID             `json:"envelopeId" example:"f81566d9-af4d-4f13-9830-c62c4b5e4c7e"` // Must be unset for automatic-split income
	AutoSplit  bool                   `json:"autoSplit" example:"true" default:"false"`                  // Distribute the income over all envelopes by weight
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Kind:       editable.Kind,
		Amount:     editable.Amount,
		Note:       editable.Note,
		Date:       editable.Date,
		EnvelopeID: editable.EnvelopeID,
		AutoSplit:  editable.AutoSplit,
	}
}

type TransactionLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"`     // The transaction itself
	Envelope string `json:"envelope" example:"https://example.com/api/v1/envelopes/f81566d9-af4d-4f13-9830-c62c4b5e4c7e"` // The envelope the transaction references, if any
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	EnvelopeName string              `json:"envelopeName,omitempty" example:"Daily expenses"` // Name of the referenced envelope, "Unknown envelope" for dangling references
	Split        []models.SplitShare `json:"split,omitempty"`                                 // Per-envelope breakdown for automatic-split income
	Links        TransactionLinks    `json:"links"`
}

// newTransaction returns the API v1 representation of the resource.
// The envelopes are the current registry contents and are used to
// resolve the envelope name and the automatic-split breakdown.
func newTransaction(c *gin.Context, model models.Transaction, envelopes []models.Envelope) Transaction {
	url := httputil.RequestHost(c)

	transaction := Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Kind:       model.Kind,
			Amount:     model.Amount,
			Note:       model.Note,
			Date:       model.Date,
			EnvelopeID: model.EnvelopeID,
			AutoSplit:  model.AutoSplit,
		},
		Split: model.Split(envelopes),
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}

	if model.EnvelopeID != nil {
		transaction.Links.Envelope = fmt.Sprintf("%s/v1/envelopes/%s", url, model.EnvelopeID)

		transaction.EnvelopeName = UnknownEnvelopeName
		for _, envelope := range envelopes {
			if envelope.ID == *model.EnvelopeID {
				transaction.EnvelopeName = envelope.Name
				break
			}
		}
	}

	return transaction
}

// activeEnvelopes returns all envelopes currently in the registry
// in the order they were created.
func activeEnvelopes(db *gorm.DB) ([]models.Envelope, error) {
	var envelopes []models.Envelope
	err := db.Order("created_at ASC").Find(&envelopes).Error
	if err != nil {
		return nil, err
	}

	return envelopes, nil
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`                                                          // List of resources
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created resources
}

func (r *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Transaction `json:"data"`                                                          // The resource
}

type TransactionQueryFilter struct {
	Kind       models.TransactionKind `form:"kind"`      // Filter by transaction kind
	EnvelopeID ez_uuid.UUID           `form:"envelope"`  // Filter by envelope ID
	Month      string                 `form:"month"`     // Transactions in this YYYY-MM month
	Note       string                 `form:"note"`      // Filter by note, glob patterns are supported
	AutoSplit  bool                   `form:"autoSplit"` // Only automatic-split incomes
}
