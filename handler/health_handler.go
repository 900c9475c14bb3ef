package handler

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	db *pgxpool.Pool
}

// NewHealthHandler creates the health endpoint handler.
func NewHealthHandler(db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Check handles GET /api/v1/health.
func (h *HealthHandler) Check(c echo.Context) error {
	response := healthResponse{Status: "ok", Database: "ok"}

	if h.db == nil {
		response.Database = "not configured"
	} else if err := h.db.Ping(c.Request().Context()); err != nil {
		response.Status = "degraded"
		response.Database = "unreachable"
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}
