// Package serpapi issues best-effort web searches through SerpAPI. Domain
// discovery uses it as a last-resort fallback, never as a ranking system.
package serpapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/webutil"
)

const defaultSearchURL = "https://serpapi.com/search.json"

type Config struct {
	APIKey    string
	HTTP      *webutil.Client
	Limiter   *webutil.MinuteLimiter
	SearchURL string
}

type Client struct {
	key       string
	http      *webutil.Client
	limiter   *webutil.MinuteLimiter
	searchURL string
}

// New returns nil when no API key is configured; a nil client is a no-op.
func New(cfg Config) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	searchURL := cfg.SearchURL
	if searchURL == "" {
		searchURL = defaultSearchURL
	}
	return &Client{
		key:       cfg.APIKey,
		http:      cfg.HTTP,
		limiter:   cfg.Limiter,
		searchURL: searchURL,
	}
}

func (c *Client) Enabled() bool { return c != nil }

type searchResponse struct {
	OrganicResults []struct {
		Link string `json:"link"`
	} `json:"organic_results"`
}

// OrganicLinks returns result links for a query, in ranking order.
func (c *Client) OrganicLinks(ctx context.Context, query string, limit int) ([]string, error) {
	if c == nil || query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.key)
	params.Set("num", strconv.Itoa(limit))

	var resp searchResponse
	err := webutil.Retry(ctx, 3, time.Second, func() error {
		resp = searchResponse{}
		return c.http.FetchJSON(ctx, c.searchURL, params, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("serpapi %q: %w", query, err)
	}

	var links []string
	for _, r := range resp.OrganicResults {
		if r.Link != "" {
			links = append(links, r.Link)
		}
	}
	return links, nil
}
