// ABOUTME: This file implements the explanation resolution workflow.
// ABOUTME: One URL maps to one article and at most one stored explanation.
package explain

import (
	"context"
	"fmt"
	"log/slog"

	"news-explainer/cache"
	"news-explainer/domain"
	"news-explainer/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ResolutionService turns a submitted URL into an explanation record,
// reusing a stored explanation when the URL has been explained before and
// generating plus persisting a new one otherwise.
type ResolutionService struct {
	articles     repository.ArticleRepository
	explanations repository.ExplanationRepository
	fetcher      repository.ArticleFetcher
	generator    repository.ExplanationGenerator
	recent       cache.RecentCache
	logger       *slog.Logger
}

// NewResolutionService wires the resolution workflow.
func NewResolutionService(
	articles repository.ArticleRepository,
	explanations repository.ExplanationRepository,
	fetcher repository.ArticleFetcher,
	generator repository.ExplanationGenerator,
	recent cache.RecentCache,
	logger *slog.Logger,
) *ResolutionService {
	return &ResolutionService{
		articles:     articles,
		explanations: explanations,
		fetcher:      fetcher,
		generator:    generator,
		recent:       recent,
		logger:       logger,
	}
}

// Resolve returns the explanation record for rawURL. A stored explanation is
// returned as-is; otherwise the page is fetched, explained, and persisted
// under actingUserID. Generating requires an authenticated user, reading a
// stored explanation does not.
func (s *ResolutionService) Resolve(ctx context.Context, rawURL string, actingUserID uuid.UUID) (*domain.ExplanationRecord, error) {
	url, err := domain.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	article, err := s.articles.FindByURL(ctx, url)
	if err != nil {
		return nil, err
	}

	if article != nil {
		explanation, err := s.explanations.FindByArticleID(ctx, article.ID)
		if err != nil {
			return nil, err
		}
		if explanation != nil {
			s.logger.InfoContext(ctx, "reusing stored explanation",
				"url", url,
				"explanation_id", explanation.ID)
			return s.assembleRecord(ctx, url, explanation)
		}
	}

	if actingUserID == uuid.Nil {
		return nil, fmt.Errorf("%w: generating an explanation requires a user", domain.ErrUnauthenticated)
	}

	article, err = s.articles.Ensure(ctx, url)
	if err != nil {
		return nil, err
	}

	metadata, content, generated, err := s.fetchAndGenerate(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := generated.Validate(); err != nil {
		s.logger.ErrorContext(ctx, "generator produced malformed explanation", "error", err, "url", url)
		return nil, err
	}

	explanation := &domain.Explanation{
		ArticleID: article.ID,
		UserID:    actingUserID,
		Summary:   generated.Summary,
		Title:     content.Title,
		OGP:       metadata,
	}

	created, err := s.explanations.Create(ctx, explanation, generated.ImportantPoints, generated.SkipSections)
	if err != nil {
		return nil, err
	}

	record := &domain.ExplanationRecord{
		URL:             url,
		Timestamp:       created.CreatedAt,
		Summary:         created.Summary,
		Title:           created.Title,
		OGP:             created.OGP,
		ImportantPoints: generated.ImportantPoints,
		SkipSections:    generated.SkipSections,
	}

	// Mirror push is best effort; a cache failure never fails the request.
	if err := s.recent.Push(ctx, record); err != nil {
		s.logger.WarnContext(ctx, "failed to mirror explanation record", "error", err, "url", url)
	}

	s.logger.InfoContext(ctx, "explanation resolved",
		"url", url,
		"explanation_id", created.ID,
		"user_id", actingUserID)

	return record, nil
}

// Explain fetches and explains a URL without touching storage. Used by the
// stateless function endpoint.
func (s *ResolutionService) Explain(ctx context.Context, rawURL string) (*domain.GeneratedExplanation, error) {
	url, err := domain.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	content, err := s.fetcher.FetchContent(ctx, url)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.Generate(ctx, content)
	if err != nil {
		return nil, err
	}

	if err := generated.Validate(); err != nil {
		return nil, err
	}

	return generated, nil
}

// fetchAndGenerate runs metadata extraction and content fetch plus generation
// concurrently. Metadata shares the page with content but the generator call
// dominates latency, so the two fetches overlap it cheaply.
func (s *ResolutionService) fetchAndGenerate(ctx context.Context, url string) (*domain.OGPMetadata, *domain.FetchedContent, *domain.GeneratedExplanation, error) {
	var (
		metadata  *domain.OGPMetadata
		content   *domain.FetchedContent
		generated *domain.GeneratedExplanation
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		metadata, err = s.fetcher.FetchMetadata(groupCtx, url)
		return err
	})

	group.Go(func() error {
		var err error
		content, err = s.fetcher.FetchContent(groupCtx, url)
		if err != nil {
			return err
		}
		generated, err = s.generator.Generate(groupCtx, content)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return metadata, content, generated, nil
}

func (s *ResolutionService) assembleRecord(ctx context.Context, url string, explanation *domain.Explanation) (*domain.ExplanationRecord, error) {
	points, err := s.explanations.Points(ctx, explanation.ID)
	if err != nil {
		return nil, err
	}

	sections, err := s.explanations.Sections(ctx, explanation.ID)
	if err != nil {
		return nil, err
	}

	return &domain.ExplanationRecord{
		URL:             url,
		Timestamp:       explanation.CreatedAt,
		Summary:         explanation.Summary,
		Title:           explanation.Title,
		OGP:             explanation.OGP,
		ImportantPoints: points,
		SkipSections:    sections,
	}, nil
}
