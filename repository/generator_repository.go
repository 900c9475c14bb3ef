package repository

import (
	"context"
	"fmt"

	"news-explainer/config"
	"news-explainer/domain"
	"news-explainer/driver"
)

type apiGenerator struct {
	cfg *config.LLMConfig
}

// NewAPIGenerator creates an ExplanationGenerator backed by the chat
// completion API.
func NewAPIGenerator(cfg *config.LLMConfig) ExplanationGenerator {
	return &apiGenerator{cfg: cfg}
}

func (g *apiGenerator) Generate(ctx context.Context, content *domain.FetchedContent) (*domain.GeneratedExplanation, error) {
	generated, err := driver.ExplainArticleAPIClient(ctx, content, g.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate explanation: %w", err)
	}
	return generated, nil
}
