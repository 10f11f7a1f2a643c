package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"

	"github.com/wolf-negro/bolsas-backend/internal/httputil"
	"github.com/wolf-negro/bolsas-backend/internal/models"
	"github.com/wolf-negro/bolsas-backend/internal/types"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// OptionsTransactionList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsTransactionDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// CreateTransactions creates new transactions
//
//	@Summary		Create transactions
//	@Description	Creates new transactions
//	@Tags			Transactions
//	@Produce		json
//	@Success		201	{object}	TransactionCreateResponse
//	@Failure		400	{object}	TransactionCreateResponse
//	@Failure		404	{object}	TransactionCreateResponse
//	@Failure		500	{object}	TransactionCreateResponse
//	@Param			transactions	body	[]TransactionEditable	true	"Transactions"
//	@Router			/v1/transactions [post]
func CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &s,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	httpStatus := http.StatusCreated
	response := TransactionCreateResponse{}

	envelopes, err := activeEnvelopes(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &s,
		})
		return
	}

	for _, editable := range editables {
		transaction := editable.model()

		// Non-nil envelope references must point to an envelope that
		// currently exists in the registry
		if transaction.EnvelopeID != nil && *transaction.EnvelopeID != uuid.Nil {
			var envelope models.Envelope
			err = models.DB.First(&envelope, *transaction.EnvelopeID).Error
			if err != nil {
				httpStatus = response.appendError(err, httpStatus)
				continue
			}
		}

		err = models.DB.Create(&transaction).Error
		if err != nil {
			httpStatus = response.appendError(err, httpStatus)
			continue
		}

		data := newTransaction(c, transaction, envelopes)
		response.Data = append(response.Data, TransactionResponse{Data: &data})
	}

	c.JSON(httpStatus, response)
}

// GetTransactions returns transactions filtered by the query parameters
//
//	@Summary		Get transactions
//	@Description	Returns a list of transactions
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionListResponse
//	@Failure		400	{object}	TransactionListResponse
//	@Failure		500	{object}	TransactionListResponse
//	@Param			kind		query	string	false	"Filter by kind"
//	@Param			envelope	query	string	false	"Filter by envelope ID"
//	@Param			month		query	string	false	"Month in YYYY-MM format"
//	@Param			note		query	string	false	"Filter by note, glob patterns are supported"
//	@Param			autoSplit	query	bool	false	"Only automatic-split incomes"
//	@Router			/v1/transactions [get]
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &s,
		})
		return
	}

	query := models.DB.Order("date(date) DESC, created_at DESC")

	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}

	if filter.EnvelopeID.UUID != uuid.Nil {
		query = query.Where("envelope_id = ?", filter.EnvelopeID.UUID)
	}

	if _, ok := c.GetQuery("autoSplit"); ok {
		query = query.Where("auto_split = ?", filter.AutoSplit)
	}

	var month types.Month
	if filter.Month != "" {
		var err error
		month, err = types.ParseMonth(filter.Month)
		if err != nil {
			s := errMonthNotParseable.Error()
			c.JSON(http.StatusBadRequest, TransactionListResponse{
				Error: &s,
			})
			return
		}
	}

	var transactions []models.Transaction
	err := query.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	envelopes, err := activeEnvelopes(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		if !month.IsZero() && !month.Contains(transaction.Date) {
			continue
		}

		if filter.Note != "" && !glob.Glob(filter.Note, transaction.Note) {
			continue
		}

		data = append(data, newTransaction(c, transaction, envelopes))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// GetTransaction returns a specific transaction
//
//	@Summary		Get transaction
//	@Description	Returns a specific transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionResponse
//	@Failure		400	{object}	TransactionResponse
//	@Failure		404	{object}	TransactionResponse
//	@Failure		500	{object}	TransactionResponse
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	envelopes, err := activeEnvelopes(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	data := newTransaction(c, transaction, envelopes)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// DeleteTransaction deletes a specific transaction
//
//	@Summary		Delete transaction
//	@Description	Deletes a transaction
//	@Tags			Transactions
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
