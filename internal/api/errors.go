package api

import (
	"errors"
	"net/http"

	"vgsales/internal/engine"
	"vgsales/internal/models"

	"github.com/labstack/echo/v4"
)

const (
	codeLoading  = "LOADING"
	codeHTTP     = "HTTP_ERROR"
	codeInternal = "INTERNAL_ERROR"
)

func statusFor(code string) int {
	switch code {
	case engine.CodeInvalidParameter:
		return http.StatusBadRequest
	case engine.CodeEmptyTable:
		return http.StatusUnprocessableEntity
	case engine.CodeDataUnavailable, codeLoading:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders engine errors as {"code","message"} bodies with a
// matching status.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := models.APIError{Code: codeInternal, Message: http.StatusText(status)}

	var he *echo.HTTPError
	var ee *engine.Error
	switch {
	case errors.As(err, &ee):
		status = statusFor(ee.Code)
		body = models.APIError{Code: ee.Code, Message: ee.Error()}
	case errors.As(err, &he):
		status = he.Code
		body = models.APIError{Code: codeHTTP, Message: http.StatusText(he.Code)}
		if msg, ok := he.Message.(string); ok {
			body.Message = msg
		}
	default:
		c.Logger().Errorf("unhandled error on %s %s: %v", c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

var errLoading = &engine.Error{Code: codeLoading, Message: "dataset is still loading"}
