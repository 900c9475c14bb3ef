package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"news-explainer/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler()(err, c)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestNewHTTPErrorHandler(t *testing.T) {
	t.Run("should map invalid URL to 400", func(t *testing.T) {
		rec, body := handleError(t, fmt.Errorf("%w: no scheme", domain.ErrInvalidURL))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid URL", body.Error)
	})

	t.Run("should map unauthenticated to 401", func(t *testing.T) {
		rec, _ := handleError(t, domain.ErrUnauthenticated)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should map forbidden to 403", func(t *testing.T) {
		rec, _ := handleError(t, domain.ErrForbidden)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should map fetch failures to 502", func(t *testing.T) {
		rec, body := handleError(t, fmt.Errorf("%w: status 404", domain.ErrFetchFailed))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "failed to fetch the article", body.Error)
	})

	t.Run("should map malformed generator output to 502", func(t *testing.T) {
		rec, _ := handleError(t, fmt.Errorf("%w: empty summary", domain.ErrMalformedExplanation))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("should hide internal details on unknown errors", func(t *testing.T) {
		rec, body := handleError(t, errors.New("pq: connection refused on 10.0.0.5"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", body.Error)
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	})

	t.Run("should pass echo HTTP errors through", func(t *testing.T) {
		rec, body := handleError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "missing bearer token", body.Error)
	})
}
