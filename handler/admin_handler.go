package handler

import (
	"fmt"
	"net/http"

	"news-explainer/domain"
	authmiddleware "news-explainer/internal/auth/middleware"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves the admin-only user listing.
type AdminHandler struct {
	profiles ProfileReader
}

// NewAdminHandler creates the admin endpoint handler.
func NewAdminHandler(profiles ProfileReader) *AdminHandler {
	return &AdminHandler{profiles: profiles}
}

// ListUsers handles GET /api/v1/admin/users. The capability check is per
// request; a non-admin caller gets 403 regardless of token validity.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	user := authmiddleware.UserFrom(c)
	if user == nil {
		return fmt.Errorf("%w: admin endpoints require a user", domain.ErrUnauthenticated)
	}

	isAdmin, err := h.profiles.IsAdmin(c.Request().Context(), user.UserID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return fmt.Errorf("%w: admin capability required", domain.ErrForbidden)
	}

	profiles, err := h.profiles.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profiles)
}
