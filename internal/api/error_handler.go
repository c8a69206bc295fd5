package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/api/pipeline"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/domain"
)

const crashMessage = "Oh no! There was a crash. Maybe try a different route?"

// errorResponse is the canonical error envelope of the JSON endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the error page, or {"error": "<message>"} for JSON clients.
func NewHTTPErrorHandler(log zerolog.Logger, nav pipeline.NavFunc) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if wantsJSON(c) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}

		title := http.StatusText(code)
		if code >= http.StatusInternalServerError {
			title = "Server Error"
		}
		data := view.Data{
			Title:    title,
			Fields:   map[string]string{"message": msg},
			Identity: middleware.IdentityFrom(c),
		}
		if nav != nil {
			if markup, err := nav(c.Request().Context()); err == nil {
				data.Nav = markup
			}
		}
		if rerr := c.Render(code, view.PageError, data); rerr != nil {
			log.Error().Err(rerr).Msg("render error page")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (404 from router, gate denials, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Error().Err(he.Internal).Str("path", c.Path()).Msg("request failed")
		}
		if he.Code >= http.StatusInternalServerError {
			return he.Code, crashMessage
		}
		if he.Code == http.StatusNotFound {
			return he.Code, "Sorry, we appear to have lost that page."
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "Sorry, we appear to have lost that page."
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "You do not have access to that page."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, crashMessage
}

func wantsJSON(c echo.Context) bool {
	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/inv/getInventory/") || strings.HasPrefix(path, "/health") {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
