package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/service"
	"github.com/chooy/admin-console/internal/upstream"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain and upstream errors to deterministic HTTP codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "session expired or unknown"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too many login attempts, try again later"
	case errors.Is(err, upstream.ErrUnreachable):
		return http.StatusBadGateway, "platform API unreachable, check network connection"
	case errors.Is(err, upstream.ErrMalformedResponse):
		return http.StatusBadGateway, "platform API returned a malformed response"
	case errors.Is(err, upstream.ErrTooManyPages):
		return http.StatusBadGateway, "directory listing exceeded the page cap"
	}

	// Failures the platform API reported about the console's own request are
	// relayed with their original status where it is a valid error code.
	var fault *upstream.Fault
	if errors.As(err, &fault) {
		if code, aerr := strconv.Atoi(fault.Code); aerr == nil && code >= 400 && code < 600 {
			return code, fault.Description
		}
		log.Warn().Str("code", fault.Code).Str("description", fault.Description).Msg("upstream fault with non-numeric code")
		return http.StatusBadGateway, fault.Description
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
