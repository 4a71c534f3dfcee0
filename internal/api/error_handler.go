package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamops/teamops-api/internal/core/domain"
)

// problem is the canonical error body for all 4xx/5xx responses, modelled
// after RFC 7807. Errors carries field-level validation messages.
type problem struct {
	Title     string              `json:"title"`
	Status    int                 `json:"status"`
	Detail    string              `json:"detail"`
	Timestamp string              `json:"timestamp"`
	Path      string              `json:"path"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status codes in one place.
//   - Renders the problem body with timestamp and request path.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		p := resolveProblem(err, log, c)
		p.Timestamp = time.Now().UTC().Format(time.RFC3339)
		p.Path = c.Request().URL.Path

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(p.Status)
			return
		}
		_ = c.JSON(p.Status, p)
	}
}

func resolveProblem(err error, log zerolog.Logger, c echo.Context) problem {
	// Field validation, from the request validator or the services.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return problem{
			Title:  "Validation failed",
			Status: http.StatusBadRequest,
			Detail: "One or more fields are invalid.",
			Errors: ve.Fields,
		}
	}

	// Echo's own errors: bind failures, 404 from the router, 405, and the
	// gates' 401/403.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return problem{
			Title:  http.StatusText(he.Code),
			Status: he.Code,
			Detail: fmt.Sprintf("%v", he.Message),
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return problem{Title: "Unauthorized", Status: http.StatusUnauthorized, Detail: "Invalid email or password."}
	case errors.Is(err, domain.ErrAccountExists):
		return problem{Title: "Conflict", Status: http.StatusConflict, Detail: "An account with this email already exists."}
	case errors.Is(err, domain.ErrProjectNotFound), errors.Is(err, domain.ErrTaskNotFound):
		return problem{Title: "Not Found", Status: http.StatusNotFound, Detail: err.Error()}
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrNoUpdatableFields):
		return problem{Title: "Invalid input", Status: http.StatusBadRequest, Detail: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return problem{Title: "Internal Server Error", Status: http.StatusInternalServerError, Detail: "Something went wrong."}
}
