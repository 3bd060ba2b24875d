package webutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxBodyBytes = 5 << 20

// Client wraps a pooled http.Client with the identity and courtesy
// behavior every fetch in the pipeline shares: a User-Agent, a small
// randomized delay before each request, and capped response reads.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

func NewClient(userAgent string, connectTimeout, requestTimeout time.Duration) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     30 * time.Second,
	}
	return &Client{
		HTTP: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
		UserAgent: userAgent,
	}
}

// ErrNotFound distinguishes a 404 from other HTTP failures. Crawl path
// guesses and robots.txt lookups treat it as an expected miss.
var ErrNotFound = fmt.Errorf("not found")

// FetchText GETs a URL and returns the body as text. Sleeps a short random
// interval first so bursts of page fetches stay gentle.
func (c *Client) FetchText(ctx context.Context, rawURL string) (string, error) {
	courtesySleep(ctx, 50, 180)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("GET %s: status %d", rawURL, resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FetchJSON GETs a URL with query params and decodes a JSON response.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	courtesySleep(ctx, 50, 150)

	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("GET %s: status %d: %s", rawURL, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out)
}

// PostJSON POSTs a JSON body and decodes a JSON response.
func (c *Client) PostJSON(ctx context.Context, rawURL string, payload any, out any) error {
	courtesySleep(ctx, 50, 150)

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("POST %s: status %d: %s", rawURL, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out)
}

func courtesySleep(ctx context.Context, minMs, maxMs int) {
	d := time.Duration(minMs+rand.Intn(maxMs-minMs)) * time.Millisecond
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
