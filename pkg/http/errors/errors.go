package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var messages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

// Message returns the fixed client-facing message for status. Other statuses use the
// lower-cased reason phrase.
func Message(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return strings.ToLower(http.StatusText(status))
}

// RespondError writes the failure envelope for status.
func RespondError(c echo.Context, status int) error {
	return c.JSON(status, ErrorResponse{
		Success: false,
		Error:   status,
		Message: Message(status),
	})
}

// RespondBadRequest writes a 400 envelope.
func RespondBadRequest(c echo.Context) error {
	return RespondError(c, http.StatusBadRequest)
}

// RespondNotFound writes a 404 envelope.
func RespondNotFound(c echo.Context) error {
	return RespondError(c, http.StatusNotFound)
}

// RespondUnprocessable writes a 422 envelope.
func RespondUnprocessable(c echo.Context) error {
	return RespondError(c, http.StatusUnprocessableEntity)
}

// NewHTTPErrorHandler renders errors that escape handlers (unknown routes, wrong methods,
// body limits, panics recovered by middleware) with the same envelope as handler failures.
// Any status other than 400, 404, 405 and 413 becomes a 500.
func NewHTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusBadRequest, http.StatusNotFound, http.StatusMethodNotAllowed, http.StatusRequestEntityTooLarge:
				status = he.Code
			}
		}

		reqLogger := logging.FromContext(c.Request().Context())
		if status == http.StatusInternalServerError {
			// the request logger is absent when the failure happened before middleware ran
			if reqLogger.GetLevel() == zerolog.Disabled {
				reqLogger = logger
			}
			reqLogger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled request error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = RespondError(c, status)
		}
		if writeErr != nil {
			logger.Warn().Err(writeErr).Msg("write error response")
		}
	}
}
