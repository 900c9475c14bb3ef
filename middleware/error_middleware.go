// ABOUTME: This file maps domain errors to HTTP responses.
// ABOUTME: Internal failure details never reach the client on 5xx responses.
package middleware

import (
	"errors"
	"net/http"

	"news-explainer/domain"
	logger "news-explainer/utils/logger"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the uniform error body returned to clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler builds the echo error handler for the service.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := classify(err)

		if status >= http.StatusInternalServerError {
			logger.Logger.ErrorContext(c.Request().Context(), "request failed",
				"error", err,
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}

		_ = c.JSON(status, ErrorResponse{Error: message})
	}
}

func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if message, ok := httpErr.Message.(string); ok {
			return httpErr.Code, message
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return http.StatusBadRequest, "invalid URL"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrArticleNotFound), errors.Is(err, domain.ErrExplanationNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrFetchFailed):
		return http.StatusBadGateway, "failed to fetch the article"
	case errors.Is(err, domain.ErrGenerationFailed), errors.Is(err, domain.ErrMalformedExplanation):
		return http.StatusBadGateway, "failed to generate an explanation"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
