package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	authmiddleware "news-explainer/internal/auth/middleware"
	appmiddleware "news-explainer/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewHTTPServer creates and configures the Echo HTTP server.
func NewHTTPServer(deps *Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Custom error handler for consistent error responses
	e.HTTPErrorHandler = appmiddleware.NewHTTPErrorHandler()

	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/v1/health"
		},
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			deps.Logger.InfoContext(ctx, "HTTP request completed",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"error", v.Error)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	requireAuth := authmiddleware.RequireAuth(deps.AuthClient)
	optionalAuth := authmiddleware.OptionalAuth(deps.AuthClient)

	// Stateless function endpoints
	functions := e.Group("/v1/functions")
	functions.GET("/fetch-metadata", deps.MetadataHandler.FetchMetadata)
	functions.POST("/explain-article", deps.ExplanationHandler.Explain)

	// API routes
	api := e.Group("/api/v1")
	api.GET("/health", deps.HealthHandler.Check)
	api.POST("/explanations", deps.ExplanationHandler.Resolve, optionalAuth)
	api.GET("/explanations/recent", deps.HistoryHandler.ListRecent, optionalAuth)
	api.GET("/explanations/recent/cached", deps.HistoryHandler.ListCached)
	api.GET("/admin/users", deps.AdminHandler.ListUsers, requireAuth)

	return e
}

// StartHTTPServer starts the HTTP server in a goroutine.
func StartHTTPServer(e *echo.Echo, deps *Dependencies, log *slog.Logger) {
	go func() {
		addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
		log.Info("Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()
}
