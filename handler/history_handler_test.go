package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

type stubHistory struct {
	global []domain.ExplanationRecord
	mine   []domain.ExplanationRecord
	cached []domain.ExplanationRecord
	err    error

	lastLimit  int
	lastUserID uuid.UUID
}

func (s *stubHistory) ListRecent(ctx context.Context, limit int) ([]domain.ExplanationRecord, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.global, nil
}

func (s *stubHistory) ListRecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ExplanationRecord, error) {
	s.lastLimit = limit
	s.lastUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.mine, nil
}

func (s *stubHistory) ListCached(ctx context.Context) ([]domain.ExplanationRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cached, nil
}

func getWithUser(t *testing.T, h echo.HandlerFunc, target string, user *auth.UserContext) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler()

	req := httptest.NewRequest(http.MethodGet, target, nil)
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

func TestHistoryHandler_ListRecent(t *testing.T) {
	records := []domain.ExplanationRecord{
		{URL: "https://example.com/b", Timestamp: time.Now(), Summary: "新しい方"},
		{URL: "https://example.com/a", Timestamp: time.Now().Add(-time.Hour), Summary: "古い方"},
	}

	t.Run("should list global history by default", func(t *testing.T) {
		history := &stubHistory{global: records}
		h := NewHistoryHandler(history)

		rec := getWithUser(t, h.ListRecent, "/?limit=10", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 10, history.lastLimit)

		var got []domain.ExplanationRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "https://example.com/b", got[0].URL)
	})

	t.Run("should return an empty array for empty history", func(t *testing.T) {
		h := NewHistoryHandler(&stubHistory{global: []domain.ExplanationRecord{}})

		rec := getWithUser(t, h.ListRecent, "/", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("should scope to the caller with scope=mine", func(t *testing.T) {
		userID := uuid.New()
		history := &stubHistory{mine: records[:1]}
		h := NewHistoryHandler(history)

		rec := getWithUser(t, h.ListRecent, "/?scope=mine", &auth.UserContext{UserID: userID})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, history.lastUserID)
	})

	t.Run("should reject scope=mine without a user", func(t *testing.T) {
		h := NewHistoryHandler(&stubHistory{})

		rec := getWithUser(t, h.ListRecent, "/?scope=mine", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject an unknown scope", func(t *testing.T) {
		h := NewHistoryHandler(&stubHistory{})

		rec := getWithUser(t, h.ListRecent, "/?scope=everyone", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject a non-integer limit", func(t *testing.T) {
		h := NewHistoryHandler(&stubHistory{})

		rec := getWithUser(t, h.ListRecent, "/?limit=ten", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHistoryHandler_ListCached(t *testing.T) {
	t.Run("should return the mirrored records", func(t *testing.T) {
		h := NewHistoryHandler(&stubHistory{cached: []domain.ExplanationRecord{
			{URL: "https://example.com/cached", Summary: "要約"},
		}})

		rec := getWithUser(t, h.ListCached, "/", nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got []domain.ExplanationRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "https://example.com/cached", got[0].URL)
	})
}
