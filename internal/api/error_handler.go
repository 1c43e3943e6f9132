package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/90sidort/skillshare-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the engine's typed errors to their HTTP status codes, in one place.
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

	// The engine's typed errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrOfferNotFound):
		return http.StatusNotFound, "offer not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrOwnOffer):
		return http.StatusBadRequest, "cannot apply for your own offer"
	case errors.Is(err, domain.ErrAlreadyApplied):
		return http.StatusBadRequest, "already applied for this offer"
	case errors.Is(err, domain.ErrGlobalCapReached):
		// 404 is wrong for a quota failure, but deployed clients branch on
		// it; the code stays until the API is versioned.
		return http.StatusNotFound, "skill share limit of 10 reached"
	case errors.Is(err, domain.ErrCapacityReached):
		return http.StatusBadRequest, "offer has reached its participant limit"
	case errors.Is(err, domain.ErrOfferClosed):
		return http.StatusBadRequest, "offer no longer available"
	case errors.Is(err, domain.ErrNotApplied):
		return http.StatusBadRequest, "user did not apply for this offer"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflicting update, retry"
	case errors.Is(err, domain.ErrOfferHasMembers):
		return http.StatusBadRequest, "offer has active members"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
