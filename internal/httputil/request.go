// Package httputil provides helpers for request handling.
package httputil

import (
	"errors"
	"io"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var ErrRequestBodyEmpty = errors.New("the request body must not be empty")

var ErrInvalidBody = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")

var ErrInvalidQueryString = errors.New("the query string contains unparseable data. Please check the values")

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data interface{}) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(io.EOF, err) {
			return ErrRequestBodyEmpty
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}
