package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/anrodrig/comanda/internal/domain/model"
)

// ErrWordNotFound indicates the dictionary API has no entry for the word.
var ErrWordNotFound = errors.New("word not found in dictionary")

// TooManyRequestsError represents rate limiting signal from the dictionary API.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations to query the external dictionary.
type Client interface {
	Lookup(ctx context.Context, word string) (*model.DictionaryEntry, error)
}

// HTTPClient implements Client via the dictionaryapi.dev HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// entry mirrors the JSON payload of the dictionary API. Only the first
// meaning's first definition is used, like the original consumer.
type entry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string   `json:"definition"`
			Synonyms   []string `json:"synonyms"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// NewHTTPClient creates HTTP dictionary client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse dictionary url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("dictionary url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Lookup fetches definition, type and synonyms for a word.
func (c *HTTPClient) Lookup(ctx context.Context, word string) (*model.DictionaryEntry, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/v2/entries/en/", word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var entries []entry
		if err := json.Unmarshal(body, &entries); err != nil {
			return nil, err
		}
		return toDictionaryEntry(word, entries)
	case http.StatusNotFound:
		return nil, ErrWordNotFound
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("dictionary request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("dictionary error: %s", resp.Status)
	}
}

func toDictionaryEntry(word string, entries []entry) (*model.DictionaryEntry, error) {
	if len(entries) == 0 || len(entries[0].Meanings) == 0 {
		return nil, ErrWordNotFound
	}
	meaning := entries[0].Meanings[0]
	if len(meaning.Definitions) == 0 {
		return nil, ErrWordNotFound
	}
	return &model.DictionaryEntry{
		Word:       word,
		Type:       meaning.PartOfSpeech,
		Definition: meaning.Definitions[0].Definition,
		Synonyms:   meaning.Definitions[0].Synonyms,
	}, nil
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
