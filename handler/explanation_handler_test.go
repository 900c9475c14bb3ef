package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"news-explainer/domain"
	"news-explainer/internal/auth"
	authmiddleware "news-explainer/internal/auth/middleware"
	"news-explainer/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	record    *domain.ExplanationRecord
	generated *domain.GeneratedExplanation
	err       error

	lastURL    string
	lastUserID uuid.UUID
}

func (s *stubResolver) Resolve(ctx context.Context, rawURL string, actingUserID uuid.UUID) (*domain.ExplanationRecord, error) {
	s.lastURL = rawURL
	s.lastUserID = actingUserID
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubResolver) Explain(ctx context.Context, rawURL string) (*domain.GeneratedExplanation, error) {
	s.lastURL = rawURL
	if s.err != nil {
		return nil, s.err
	}
	return s.generated, nil
}

func postJSON(t *testing.T, h echo.HandlerFunc, body string, user *auth.UserContext) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		authmiddleware.SetUser(c, user)
	}

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec
}

func TestExplanationHandler_Resolve(t *testing.T) {
	userID := uuid.New()

	t.Run("should resolve with the acting user's id", func(t *testing.T) {
		resolver := &stubResolver{record: &domain.ExplanationRecord{
			URL:       "https://example.com/news/1",
			Timestamp: time.Now(),
			Summary:   "要約",
		}}
		h := NewExplanationHandler(resolver)

		rec := postJSON(t, h.Resolve, `{"url": "https://example.com/news/1"}`, &auth.UserContext{UserID: userID})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, resolver.lastUserID)

		var record domain.ExplanationRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
		assert.Equal(t, "https://example.com/news/1", record.URL)
		assert.Equal(t, "要約", record.Summary)
	})

	t.Run("should pass the nil user id for anonymous callers", func(t *testing.T) {
		resolver := &stubResolver{record: &domain.ExplanationRecord{URL: "https://example.com/news/1"}}
		h := NewExplanationHandler(resolver)

		rec := postJSON(t, h.Resolve, `{"url": "https://example.com/news/1"}`, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uuid.Nil, resolver.lastUserID)
	})

	t.Run("should reject a missing url", func(t *testing.T) {
		h := NewExplanationHandler(&stubResolver{})

		rec := postJSON(t, h.Resolve, `{}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject a malformed body", func(t *testing.T) {
		h := NewExplanationHandler(&stubResolver{})

		rec := postJSON(t, h.Resolve, `{"url": `, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should map an unauthenticated miss to 401", func(t *testing.T) {
		h := NewExplanationHandler(&stubResolver{err: domain.ErrUnauthenticated})

		rec := postJSON(t, h.Resolve, `{"url": "https://example.com/news/1"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should map a fetch failure to 502", func(t *testing.T) {
		h := NewExplanationHandler(&stubResolver{err: domain.ErrFetchFailed})

		rec := postJSON(t, h.Resolve, `{"url": "https://example.com/news/1"}`, &auth.UserContext{UserID: userID})
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestExplanationHandler_Explain(t *testing.T) {
	t.Run("should return the generated explanation", func(t *testing.T) {
		resolver := &stubResolver{generated: &domain.GeneratedExplanation{
			Summary: "要約",
			ImportantPoints: []domain.ImportantPoint{
				{Importance: 5, Content: "ポイント", Explanation: "説明", Analogy: "例え"},
			},
		}}
		h := NewExplanationHandler(resolver)

		rec := postJSON(t, h.Explain, `{"url": "https://example.com/news/1"}`, nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var generated domain.GeneratedExplanation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generated))
		assert.Equal(t, "要約", generated.Summary)
		assert.Len(t, generated.ImportantPoints, 1)
	})

	t.Run("should reject a missing url", func(t *testing.T) {
		h := NewExplanationHandler(&stubResolver{})

		rec := postJSON(t, h.Explain, `{"url": ""}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should report a fetch failure as 500", func(t *testing.T) {
		h := NewExplanationHandler(&stubResolver{err: domain.ErrFetchFailed})

		rec := postJSON(t, h.Explain, `{"url": "https://example.com/news/1"}`, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("should report a generation failure as 500", func(t *testing.T) {
		h := NewExplanationHandler(&stubResolver{err: domain.ErrGenerationFailed})

		rec := postJSON(t, h.Explain, `{"url": "https://example.com/news/1"}`, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "failed to generate an explanation", body.Error)
	})
}
