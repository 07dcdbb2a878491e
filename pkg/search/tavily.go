// Package search provides web SearchClient implementations for the research
// pipeline. Clients map vendor responses onto research.SearchResult and
// carry their own HTTP timeouts, so a slow vendor degrades into a failed
// step rather than a stuck run.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dealdesk/dealdesk/pkg/research"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// Tavily calls the Tavily search API.
type Tavily struct {
	APIKey string
	Depth  string // "basic" or "advanced"
	client *http.Client
}

// NewTavily constructs a Tavily search client with a 15 second timeout.
func NewTavily(apiKey string) *Tavily {
	return &Tavily{
		APIKey: apiKey,
		Depth:  "basic",
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewTavilyWithClient constructs a Tavily client using the supplied HTTP
// client, useful for overriding the default timeout.
func NewTavilyWithClient(apiKey string, client *http.Client) *Tavily {
	return &Tavily{APIKey: apiKey, Depth: "basic", client: client}
}

// Search posts a query to Tavily. Retries on 429 with doubling backoff,
// capped at 30 seconds per wait.
func (t *Tavily) Search(ctx context.Context, query string, opts research.SearchOptions) ([]research.SearchResult, error) {
	if strings.TrimSpace(t.APIKey) == "" {
		return nil, errors.New("tavily: API key is missing")
	}

	body := map[string]any{
		"api_key":      t.APIKey,
		"query":        query,
		"search_depth": t.Depth,
	}
	if opts.MaxResults > 0 {
		body["max_results"] = opts.MaxResults
	}
	if opts.TimeRange != "" {
		body["time_range"] = opts.TimeRange
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	var resp *http.Response
	delay := 1 * time.Second
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyEndpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err = t.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily http %d", resp.StatusCode)
	}

	var response struct {
		Results []struct {
			Title         string  `json:"title"`
			URL           string  `json:"url"`
			Content       string  `json:"content"`
			Score         float64 `json:"score"`
			PublishedDate string  `json:"published_date"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	results := make([]research.SearchResult, 0, len(response.Results))
	for _, r := range response.Results {
		results = append(results, research.SearchResult{
			Title:          r.Title,
			URL:            r.URL,
			Snippet:        r.Content,
			Source:         "tavily",
			PublishedDate:  r.PublishedDate,
			RelevanceScore: r.Score,
		})
		if opts.MaxResults > 0 && len(results) >= opts.MaxResults {
			break
		}
	}
	return results, nil
}
