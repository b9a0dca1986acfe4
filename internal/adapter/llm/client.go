package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

// TooManyRequestsError represents rate limiting signal from the model API.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client answers whether two words are synonyms based on their definitions.
type Client interface {
	AreSynonyms(ctx context.Context, wordA, defA, wordB, defB string) (bool, error)
}

// HTTPClient implements Client against an OpenAI-compatible chat
// completions endpoint.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewHTTPClient creates an LLM client with default timeout.
func NewHTTPClient(baseURL, apiKey, model string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse llm url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("llm url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		model:   model,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

const synonymPrompt = `You are a language expert. Compare the meanings of the following two words based on their definitions.

Word 1: %q
Definition 1: %q

Word 2: %q
Definition 2: %q

Are these words synonyms?
Respond ONLY with "YES" or "NO".`

// AreSynonyms asks the model for a YES/NO verdict. Anything that is not a
// clear YES counts as NO.
func (c *HTTPClient) AreSynonyms(ctx context.Context, wordA, defA, wordB, defB string) (bool, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(synonymPrompt, wordA, defA, wordB, defB)},
		},
		MaxTokens: 3,
	})
	if err != nil {
		return false, err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/chat/completions")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return false, err
		}
		var data chatResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return false, err
		}
		if len(data.Choices) == 0 {
			return false, fmt.Errorf("llm returned no choices")
		}
		reply := strings.ToUpper(strings.TrimSpace(data.Choices[0].Message.Content))
		return reply == "YES", nil
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return false, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("llm request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return false, fmt.Errorf("llm error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
