package handler

import (
	"errors"
	"net/http"

	"news-explainer/domain"

	"github.com/labstack/echo/v4"
)

// functionError maps upstream failures on the stateless function endpoints.
// The functions surface reports every fetch or generation failure as a plain
// 500; the finer-grained status mapping applies only under /api/v1.
func functionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrFetchFailed):
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch the article")
	case errors.Is(err, domain.ErrGenerationFailed), errors.Is(err, domain.ErrMalformedExplanation):
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate an explanation")
	default:
		return err
	}
}
