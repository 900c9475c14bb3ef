package handler

import (
	"net/http"
	"strconv"

	authmiddleware "news-explainer/internal/auth/middleware"

	"github.com/labstack/echo/v4"
)

// HistoryHandler serves the recent-explanation listings.
type HistoryHandler struct {
	history HistoryLister
}

// NewHistoryHandler creates the history endpoint handler.
func NewHistoryHandler(history HistoryLister) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// ListRecent handles GET /api/v1/explanations/recent?limit=&scope=.
// scope defaults to global; scope=mine requires an authenticated user.
func (h *HistoryHandler) ListRecent(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		limit = parsed
	}

	ctx := c.Request().Context()

	switch scope := c.QueryParam("scope"); scope {
	case "", "global":
		records, err := h.history.ListRecent(ctx, limit)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, records)
	case "mine":
		user := authmiddleware.UserFrom(c)
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "scope=mine requires authentication")
		}
		records, err := h.history.ListRecentForUser(ctx, user.UserID, limit)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, records)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "scope must be global or mine")
	}
}

// ListCached handles GET /api/v1/explanations/recent/cached.
func (h *HistoryHandler) ListCached(c echo.Context) error {
	records, err := h.history.ListCached(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
