package driver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"news-explainer/config"
	"news-explainer/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func llmTestConfig(endpoint string) *config.LLMConfig {
	return &config.LLMConfig{
		Endpoint:    endpoint,
		APIKey:      "test-key",
		Model:       "gpt-3.5-turbo",
		Timeout:     5 * time.Second,
		MaxTokens:   2000,
		Temperature: 0.7,
	}
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

const modelJSON = `{
	"summary": "ビットコインETFが承認されました。",
	"importantPoints": [
		{"importance": 5, "content": "ETF承認", "explanation": "SECが承認", "analogy": "上場のようなもの"}
	],
	"skipSections": [
		{"number": 3, "reason": "過去の経緯の繰り返し"}
	]
}`

func TestExplainArticleAPIClient(t *testing.T) {
	fetched := &domain.FetchedContent{Title: "ETF承認", Content: "本文テキスト"}

	t.Run("should parse a clean JSON completion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req chatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt-3.5-turbo", req.Model)
			require.Len(t, req.Messages, 1)
			assert.Contains(t, req.Messages[0].Content, "ETF承認")
			assert.Contains(t, req.Messages[0].Content, "本文テキスト")

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionBody(modelJSON)))
		}))
		defer server.Close()

		generated, err := ExplainArticleAPIClient(context.Background(), fetched, llmTestConfig(server.URL))
		require.NoError(t, err)
		assert.Equal(t, "ビットコインETFが承認されました。", generated.Summary)
		require.Len(t, generated.ImportantPoints, 1)
		assert.Equal(t, 5, generated.ImportantPoints[0].Importance)
		require.Len(t, generated.SkipSections, 1)
		assert.Equal(t, 3, generated.SkipSections[0].Number)
	})

	t.Run("should tolerate markdown code fences around the JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody("```json\n" + modelJSON + "\n```")))
		}))
		defer server.Close()

		generated, err := ExplainArticleAPIClient(context.Background(), fetched, llmTestConfig(server.URL))
		require.NoError(t, err)
		assert.Len(t, generated.ImportantPoints, 1)
	})

	t.Run("should fail on non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := ExplainArticleAPIClient(context.Background(), fetched, llmTestConfig(server.URL))
		assert.True(t, errors.Is(err, domain.ErrGenerationFailed))
	})

	t.Run("should fail on prose without JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody("すみません、この記事は解説できません。")))
		}))
		defer server.Close()

		_, err := ExplainArticleAPIClient(context.Background(), fetched, llmTestConfig(server.URL))
		assert.True(t, errors.Is(err, domain.ErrGenerationFailed))
	})

	t.Run("should fail on empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": []}`))
		}))
		defer server.Close()

		_, err := ExplainArticleAPIClient(context.Background(), fetched, llmTestConfig(server.URL))
		assert.True(t, errors.Is(err, domain.ErrGenerationFailed))
	})
}

func TestParseModelJSON(t *testing.T) {
	t.Run("should extract the object from surrounding prose", func(t *testing.T) {
		generated, err := parseModelJSON("解説結果です。\n" + modelJSON + "\n以上です。")
		require.NoError(t, err)
		assert.NotEmpty(t, generated.Summary)
	})

	t.Run("should reject invalid JSON", func(t *testing.T) {
		_, err := parseModelJSON(`{"summary": `)
		assert.True(t, errors.Is(err, domain.ErrGenerationFailed))
	})
}
