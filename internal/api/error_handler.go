package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bonehealth/analysis-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
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

	// Known domain errors → deterministic HTTP codes. All of them are
	// terminal to the single action that triggered them; recovery is by
	// user retry.
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "username already exists"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrDoctorProfileIncomplete):
		return http.StatusBadRequest, "doctor registration requires license number, specialization, and affiliation"
	case errors.Is(err, domain.ErrUnknownTask):
		return http.StatusBadRequest, "unknown analysis task"
	case errors.Is(err, domain.ErrNoTaskSelected):
		return http.StatusBadRequest, "select an analysis task first"
	case errors.Is(err, domain.ErrMissingImage):
		return http.StatusBadRequest, "upload an image before analyzing"
	case errors.Is(err, domain.ErrCorruptImage):
		return http.StatusUnprocessableEntity, "the uploaded image is corrupted or not a supported format"
	case errors.Is(err, domain.ErrModelCallFailed):
		return http.StatusBadGateway, "the analysis service is unavailable, please try again"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
