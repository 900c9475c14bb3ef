package bootstrap

import (
	"context"
	"log/slog"

	articlefetcher "news-explainer/article-fetcher"
	"news-explainer/cache"
	"news-explainer/config"
	"news-explainer/driver"
	"news-explainer/handler"
	"news-explainer/internal/auth"
	"news-explainer/repository"
	"news-explainer/usecase/explain"
	"news-explainer/usecase/history"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	Config *config.Config
	DBPool *pgxpool.Pool
	Logger *slog.Logger

	AuthClient *auth.Client

	ExplanationHandler *handler.ExplanationHandler
	HistoryHandler     *handler.HistoryHandler
	MetadataHandler    *handler.MetadataHandler
	AdminHandler       *handler.AdminHandler
	HealthHandler      *handler.HealthHandler
}

// BuildDependencies constructs all application dependencies.
// Returns a cleanup function that should be deferred.
func BuildDependencies(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Dependencies, func(), error) {
	dbPool, err := driver.Init(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		dbPool.Close()
	}

	// Repositories
	articleRepo := repository.NewArticleRepository(dbPool)
	explanationRepo := repository.NewExplanationRepository(dbPool)
	profileRepo := repository.NewProfileRepository(dbPool)
	generator := repository.NewAPIGenerator(&cfg.LLM)

	fetcher := articlefetcher.NewFetcher(&cfg.Fetcher, log)

	recent, err := buildRecentCache(ctx, cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	// Use cases
	resolution := explain.NewResolutionService(articleRepo, explanationRepo, fetcher, generator, recent, log)
	historyService := history.NewHistoryService(explanationRepo, recent, log)

	deps := &Dependencies{
		Config:             cfg,
		DBPool:             dbPool,
		Logger:             log,
		AuthClient:         auth.NewClient(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		ExplanationHandler: handler.NewExplanationHandler(resolution),
		HistoryHandler:     handler.NewHistoryHandler(historyService),
		MetadataHandler:    handler.NewMetadataHandler(fetcher),
		AdminHandler:       handler.NewAdminHandler(profileRepo),
		HealthHandler:      handler.NewHealthHandler(dbPool),
	}

	return deps, cleanup, nil
}

func buildRecentCache(ctx context.Context, cfg *config.Config, log *slog.Logger) (cache.RecentCache, error) {
	if !cfg.Cache.Enabled {
		log.Info("Recent-explanation cache disabled")
		return cache.NewNoopRecentCache(), nil
	}

	client, err := driver.NewRedisClient(ctx, &cfg.Cache)
	if err != nil {
		return nil, err
	}

	return cache.NewRecentCache(client, cfg.Cache.RecentSize, cfg.Cache.TTL, log), nil
}
