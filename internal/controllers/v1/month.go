package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wolf-negro/bolsas-backend/internal/httputil"
	"github.com/wolf-negro/bolsas-backend/internal/models"
	"github.com/wolf-negro/bolsas-backend/internal/types"
)

// RegisterMonthRoutes registers the routes for months with the
// RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:month", OptionsMonth)
	r.GET("/:month", GetMonth)
}

type Month struct {
	Month     types.Month     `json:"month" example:"2026-08"`
	Income    decimal.Decimal `json:"income" example:"1300"` // Total income booked in this month
	Envelopes []Envelope      `json:"envelopes"`             // Envelopes with their all-time balances
}

type MonthResponse struct {
	Error *string `json:"error" example:"parameter month is invalid, it must be in the format YYYY-MM"` // The error, if any occurred
	Data  *Month  `json:"data"`                                                                         // The resource
}

// OptionsMonth returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Months
//	@Success		204
//	@Router			/v1/months/{month} [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetMonth returns the monthly overview
//
//	@Summary		Get month
//	@Description	Returns the income of the month and the current envelope balances
//	@Tags			Months
//	@Produce		json
//	@Success		200	{object}	MonthResponse
//	@Failure		400	{object}	MonthResponse
//	@Failure		500	{object}	MonthResponse
//	@Param			month	path	string	true	"Month in YYYY-MM format"
//	@Router			/v1/months/{month} [get]
func GetMonth(c *gin.Context) {
	var uri URIMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &s,
		})
		return
	}

	month, err := types.ParseMonth(uri.Month)
	if err != nil {
		s := errMonthNotParseable.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &s,
		})
		return
	}

	income, err := models.MonthIncome(models.DB, month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	var envelopes []models.Envelope
	err = models.DB.Order("created_at ASC").Find(&envelopes).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	balances, err := models.CurrentBalances(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	data := Month{
		Month:     month,
		Income:    income,
		Envelopes: make([]Envelope, 0, len(envelopes)),
	}

	for _, envelope := range envelopes {
		data.Envelopes = append(data.Envelopes, newEnvelope(c, envelope, balances.Of(envelope.ID)))
	}

	c.JSON(http.StatusOK, MonthResponse{Data: &data})
}
