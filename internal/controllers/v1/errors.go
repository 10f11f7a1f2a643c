package v1

import (
	"errors"
	"net/http"

	"github.com/wolf-negro/bolsas-backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"an ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var errMonthNotParseable = errors.New("the month must be specified as YYYY-MM")
