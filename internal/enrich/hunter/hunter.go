// Package hunter wraps the Hunter.io domain-search and email-verifier APIs.
package hunter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/webutil"
)

const (
	defaultDomainSearchURL = "https://api.hunter.io/v2/domain-search"
	defaultVerifyURL       = "https://api.hunter.io/v2/email-verifier"
)

type Config struct {
	APIKey          string
	HTTP            *webutil.Client
	Limiter         *webutil.MinuteLimiter
	DomainSearchURL string
	VerifyURL       string
}

type Client struct {
	key       string
	http      *webutil.Client
	limiter   *webutil.MinuteLimiter
	searchURL string
	verifyURL string
}

// New returns nil when no API key is configured; a nil client is a no-op.
func New(cfg Config) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	searchURL := cfg.DomainSearchURL
	if searchURL == "" {
		searchURL = defaultDomainSearchURL
	}
	verifyURL := cfg.VerifyURL
	if verifyURL == "" {
		verifyURL = defaultVerifyURL
	}
	return &Client{
		key:       cfg.APIKey,
		http:      cfg.HTTP,
		limiter:   cfg.Limiter,
		searchURL: searchURL,
		verifyURL: verifyURL,
	}
}

func (c *Client) Enabled() bool { return c != nil }

type domainSearchResponse struct {
	Data struct {
		Emails []struct {
			Value string `json:"value"`
		} `json:"emails"`
	} `json:"data"`
}

// DomainSearch lists addresses Hunter knows for a domain.
func (c *Client) DomainSearch(ctx context.Context, domain string) ([]string, error) {
	if c == nil || domain == "" {
		return nil, nil
	}
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("domain", domain)
	params.Set("api_key", c.key)
	params.Set("limit", "100")

	var resp domainSearchResponse
	err := webutil.Retry(ctx, 3, time.Second, func() error {
		resp = domainSearchResponse{}
		return c.http.FetchJSON(ctx, c.searchURL, params, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("hunter domain-search %s: %w", domain, err)
	}

	var emails []string
	for _, item := range resp.Data.Emails {
		if item.Value != "" {
			emails = append(emails, item.Value)
		}
	}
	return emails, nil
}

type verifyResponse struct {
	Data json.RawMessage `json:"data"`
}

// VerifyAll verifies each address, one call per email under the shared
// budget. The verdict payload is kept opaque; only its "result" field is
// contractually inspected downstream.
func (c *Client) VerifyAll(ctx context.Context, emails []string) (map[string]json.RawMessage, error) {
	if c == nil || len(emails) == 0 {
		return nil, nil
	}
	out := make(map[string]json.RawMessage, len(emails))
	for _, e := range emails {
		if err := c.limiter.Acquire(ctx); err != nil {
			return out, err
		}

		params := url.Values{}
		params.Set("email", e)
		params.Set("api_key", c.key)

		var resp verifyResponse
		err := webutil.Retry(ctx, 3, time.Second, func() error {
			resp = verifyResponse{}
			return c.http.FetchJSON(ctx, c.verifyURL, params, &resp)
		})
		if err != nil {
			return out, fmt.Errorf("hunter verify %s: %w", e, err)
		}
		if len(resp.Data) > 0 {
			out[e] = resp.Data
		}
	}
	return out, nil
}
