package devapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/devapi/handler"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
	"github.com/sachcu/marketplace-client/internal/pkg/validate"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders echo's own errors as {"error": "<message>"}.
//   - Maps known store and validation errors to HTTP codes with {"message": "<message>"}.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, handler.ErrorBody{Error: fmt.Sprintf("%v", he.Message)})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, handler.MessageBody{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, validate.Detail(err)
	case errors.Is(err, store.ErrInvalidInput):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), store.ErrInvalidInput.Error()+": ")
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, store.ErrForbidden), errors.Is(err, store.ErrAccountInactive):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, store.ErrInvalidCredentials), errors.Is(err, store.ErrWrongPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, store.ErrEmailTaken),
		errors.Is(err, store.ErrCategoryExists),
		errors.Is(err, store.ErrCategoryInUse):
		return http.StatusConflict, err.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
