package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"news-explainer/config"
	"news-explainer/domain"
	logger "news-explainer/utils/logger"
)

// Prompt template mirroring the production explainer. The model is instructed
// to answer with a single JSON object matching domain.GeneratedExplanation.
const promptTemplate = `以下の記事を分かりやすく解説してください。

タイトル: %s

記事:
%s

以下の形式でJSON形式で出力してください:
{
  "summary": "記事の要約（200文字程度）",
  "importantPoints": [
    {
      "importance": 重要度（1-5の数値）,
      "content": "重要なポイント",
      "explanation": "詳しい説明",
      "analogy": "身近な例えで説明"
    }
  ],
  "skipSections": [
    {
      "number": セクション番号,
      "reason": "読み飛ばしてよい理由"
    }
  ]
}
`

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ExplainArticleAPIClient calls the chat-completions API with the fixed prompt
// and parses the model output into a structured explanation. The model output
// is untrusted; callers must run domain validation before persisting.
func ExplainArticleAPIClient(ctx context.Context, content *domain.FetchedContent, cfg *config.LLMConfig) (*domain.GeneratedExplanation, error) {
	prompt := fmt.Sprintf(promptTemplate, content.Title, content.Content)

	payload := chatCompletionRequest{
		Model:       cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to marshal payload", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodPost, cfg.Endpoint, bytes.NewReader(jsonData))
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to create request", "error", err, "endpoint", cfg.Endpoint)
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}

	logger.Logger.DebugContext(ctx, "Calling explanation model",
		"endpoint", cfg.Endpoint,
		"model", cfg.Model,
		"content_length", len(content.Content))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to call explanation model", "error", err, "endpoint", cfg.Endpoint)
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Logger.ErrorContext(ctx, "failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		logger.Logger.ErrorContext(ctx, "Model API returned non-200 status",
			"status", resp.Status,
			"body", string(bodyBytes))
		return nil, fmt.Errorf("%w: API status %s", domain.ErrGenerationFailed, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to read response body", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	var apiResponse chatCompletionResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to unmarshal API response", "error", err)
		return nil, fmt.Errorf("%w: unparseable API response", domain.ErrGenerationFailed)
	}

	if len(apiResponse.Choices) == 0 {
		logger.Logger.ErrorContext(ctx, "Model returned no choices")
		return nil, fmt.Errorf("%w: empty completion", domain.ErrGenerationFailed)
	}

	generated, err := parseModelJSON(apiResponse.Choices[0].Message.Content)
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to parse model output", "error", err)
		return nil, err
	}

	logger.Logger.InfoContext(ctx, "Explanation generated",
		"summary_length", len(generated.Summary),
		"points", len(generated.ImportantPoints),
		"sections", len(generated.SkipSections))

	return generated, nil
}

// parseModelJSON decodes the model's answer into the explanation structure.
// Models frequently wrap JSON in markdown code fences or add surrounding
// prose, so the first top-level JSON object is extracted before decoding.
func parseModelJSON(raw string) (*domain.GeneratedExplanation, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in model output", domain.ErrGenerationFailed)
	}

	var generated domain.GeneratedExplanation
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &generated); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	return &generated, nil
}
