package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wolf-negro/bolsas-backend/internal/httputil"
	"github.com/wolf-negro/bolsas-backend/internal/models"
)

// RegisterEnvelopeRoutes registers the routes for envelopes with
// the RouterGroup that is passed.
func RegisterEnvelopeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEnvelopes)
		r.GET("", GetEnvelopes)
		r.POST("", CreateEnvelopes)
	}

	// Envelope with ID
	{
		r.OPTIONS("/:id", OptionsEnvelopeDetail)
		r.GET("/:id", GetEnvelope)
		r.DELETE("/:id", DeleteEnvelope)
	}

	// Reconciliation
	{
		r.OPTIONS("/:id/reconcile", OptionsEnvelopeReconcile)
		r.POST("/:id/reconcile", ReconcileEnvelope)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Router			/v1/envelopes [options]
func OptionsEnvelopes(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the envelope"
// @Router			/v1/envelopes/{id} [options]
func OptionsEnvelopeDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Envelope{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the envelope"
// @Router			/v1/envelopes/{id}/reconcile [options]
func OptionsEnvelopeReconcile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Envelope{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Create envelopes
// @Description	Creates new envelopes
// @Tags			Envelopes
// @Produce		json
// @Success		201			{object}	EnvelopeCreateResponse
// @Failure		400			{object}	EnvelopeCreateResponse
// @Failure		500			{object}	EnvelopeCreateResponse
// @Param			envelopes	body		[]EnvelopeEditable	true	"Envelopes"
// @Router			/v1/envelopes [post]
func CreateEnvelopes(c *gin.Context) {
	var editables []EnvelopeEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := EnvelopeCreateResponse{}

	for _, editable := range editables {
		envelope := editable.model()

		err = models.DB.Create(&envelope).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// A new envelope has no transactions yet, its balance is zero
		apiResource := newEnvelope(c, envelope, decimal.Zero)
		r.Data = append(r.Data, EnvelopeResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get envelopes
// @Description	Returns the envelope registry in insertion order, with current balances and risk states
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	EnvelopeListResponse
// @Failure		500	{object}	EnvelopeListResponse
// @Router			/v1/envelopes [get]
func GetEnvelopes(c *gin.Context) {
	var envelopes []models.Envelope
	err := models.DB.Order("created_at ASC").Find(&envelopes).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeListResponse{
			Error: &s,
		})
		return
	}

	balances, err := models.CurrentBalances(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Envelope, 0, len(envelopes))
	for _, envelope := range envelopes {
		data = append(data, newEnvelope(c, envelope, balances.Of(envelope.ID)))
	}

	c.JSON(http.StatusOK, EnvelopeListResponse{Data: data})
}

// @Summary		Get envelope
// @Description	Returns a specific envelope with its current balance and risk state
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	EnvelopeResponse
// @Failure		400	{object}	EnvelopeResponse
// @Failure		404	{object}	EnvelopeResponse
// @Failure		500	{object}	EnvelopeResponse
// @Param			id	path		URIID	true	"ID of the envelope"
// @Router			/v1/envelopes/{id} [get]
func GetEnvelope(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{
			Error: &e,
		})
		return
	}

	var envelope models.Envelope
	err = models.DB.First(&envelope, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{
			Error: &e,
		})
		return
	}

	balance, err := models.BalanceOf(models.DB, envelope.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{
			Error: &e,
		})
		return
	}

	data := newEnvelope(c, envelope, balance)
	c.JSON(http.StatusOK, EnvelopeResponse{Data: &data})
}

// @Summary		Delete envelope
// @Description	Removes an envelope from the registry. Ledger entries referencing it are kept and resolve to an unknown envelope.
// @Tags			Envelopes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the envelope"
// @Router			/v1/envelopes/{id} [delete]
func DeleteEnvelope(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var envelope models.Envelope
	err = models.DB.First(&envelope, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&envelope).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Reconcile envelope
// @Description	Compares the computed balance with the asserted real-world balance and appends a corrective adjustment for the difference. When both agree, nothing is appended and the response data is null.
// @Tags			Envelopes
// @Produce		json
// @Success		200		{object}	TransactionResponse
// @Success		201		{object}	TransactionResponse
// @Failure		400		{object}	TransactionResponse
// @Failure		404		{object}	TransactionResponse
// @Failure		500		{object}	TransactionResponse
// @Param			id		path		URIID				true	"ID of the envelope"
// @Param			body	body		ReconcileRequest	true	"Asserted balance"
// @Router			/v1/envelopes/{id}/reconcile [post]
func ReconcileEnvelope(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	var request ReconcileRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction, err := models.Reconcile(models.DB, uri.ID.UUID, request.AssertedBalance)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	// Computed and asserted balance already agree
	if transaction == nil {
		c.JSON(http.StatusOK, TransactionResponse{})
		return
	}

	envelopes, err := activeEnvelopes(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	data := newTransaction(c, *transaction, envelopes)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}
