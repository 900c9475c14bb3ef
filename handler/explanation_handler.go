package handler

import (
	"net/http"

	authmiddleware "news-explainer/internal/auth/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ExplanationHandler serves explanation resolution and the stateless
// explain-article function.
type ExplanationHandler struct {
	resolver Resolver
}

// NewExplanationHandler creates the explanation endpoint handler.
func NewExplanationHandler(resolver Resolver) *ExplanationHandler {
	return &ExplanationHandler{resolver: resolver}
}

type explainRequest struct {
	URL string `json:"url"`
}

// Resolve handles POST /api/v1/explanations. A stored explanation for the URL
// is served to anyone; generating a new one requires an authenticated user.
func (h *ExplanationHandler) Resolve(c echo.Context) error {
	var req explainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.URL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}

	actingUserID := uuid.Nil
	if user := authmiddleware.UserFrom(c); user != nil {
		actingUserID = user.UserID
	}

	record, err := h.resolver.Resolve(c.Request().Context(), req.URL, actingUserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, record)
}

// Explain handles POST /v1/functions/explain-article. It generates an
// explanation without persisting anything.
func (h *ExplanationHandler) Explain(c echo.Context) error {
	var req explainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.URL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}

	generated, err := h.resolver.Explain(c.Request().Context(), req.URL)
	if err != nil {
		return functionError(err)
	}

	return c.JSON(http.StatusOK, generated)
}
