// ABOUTME: This file provides echo middleware that resolves bearer tokens to users.
package middleware

import (
	"net/http"
	"strings"

	"news-explainer/internal/auth"

	"github.com/labstack/echo/v4"
)

const userContextKey = "auth.user"

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved user on the echo context.
func RequireAuth(client *auth.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			user, err := client.ValidateUserToken(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// OptionalAuth resolves a bearer token when present but lets anonymous
// requests through. A present but invalid token is still rejected.
func OptionalAuth(client *auth.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token == "" {
				return next(c)
			}

			user, err := client.ValidateUserToken(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// UserFrom returns the authenticated user stored on the context, or nil for
// an anonymous request.
func UserFrom(c echo.Context) *auth.UserContext {
	user, _ := c.Get(userContextKey).(*auth.UserContext)
	return user
}

// SetUser stores a user on the context the way the auth middleware does.
func SetUser(c echo.Context, user *auth.UserContext) {
	c.Set(userContextKey, user)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
