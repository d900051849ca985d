package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Eursukkul/airline-ops/internal/apperr"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "internal server error"

// HTTPError maps a service error to the status and message shown to clients.
// Internal causes are kept on the HTTPError but never rendered.
func HTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	var ae *apperr.Error
	if !errors.As(err, &ae) {
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: internalErrorMessage, Internal: err}
	}

	switch ae.Kind {
	case apperr.KindNotFound:
		return &echo.HTTPError{Code: http.StatusNotFound, Message: ae.Error(), Internal: err}
	case apperr.KindValidation:
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: ae.Error(), Internal: err}
	case apperr.KindConflict:
		return &echo.HTTPError{Code: http.StatusConflict, Message: ae.Message, Internal: err}
	case apperr.KindUnauthorized:
		return &echo.HTTPError{Code: http.StatusUnauthorized, Message: ae.Message, Internal: err}
	case apperr.KindRendering:
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: ae.Message, Internal: err}
	default:
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: internalErrorMessage, Internal: err}
	}
}

// WantsJSON is true for API paths, XHR calls and clients asking for JSON.
func WantsJSON(c echo.Context) bool {
	req := c.Request()
	if strings.HasPrefix(req.URL.Path, "/api/") {
		return true
	}
	if req.Header.Get(echo.HeaderXRequestedWith) == "XMLHttpRequest" {
		return true
	}
	return strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// ErrorHandler renders errors as {"message": ...} for JSON clients and as the
// error page for browsers.
func ErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he := HTTPError(err)
		code := he.Code
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(code)
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", code,
				"error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		if !WantsJSON(c) && c.Echo().Renderer != nil {
			if rerr := c.Render(code, "error.html", map[string]any{"Code": code, "Message": msg}); rerr == nil {
				return
			}
		}

		_ = c.JSON(code, map[string]string{"message": msg})
	}
}
