package apperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/logging"
)

// Status maps a classified error to an HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrTransient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// HTTPErrorHandler renders classified errors as a stable JSON shape. Raw
// internal error text is only echoed back in dev mode.
func HTTPErrorHandler(dev bool, log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := Status(err)
		msg := Message(err)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			}
		}

		if code >= http.StatusInternalServerError {
			log.Error(context.Background(), "request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err.Error())
			if dev {
				msg = err.Error()
			}
		}

		_ = c.JSON(code, echo.Map{"status": "error", "message": msg})
	}
}
