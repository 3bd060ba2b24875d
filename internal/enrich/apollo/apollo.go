// Package apollo wraps the Apollo.io people-search API.
package apollo

import (
	"context"
	"fmt"
	"time"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/domain"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/webutil"
)

const defaultPeopleSearchURL = "https://api.apollo.io/v1/people/search"

// Titles worth asking for when hunting hiring contacts at a startup.
var defaultTitles = []string{"Founder", "Co-founder", "Recruiter", "Head of Talent", "Talent"}

type Config struct {
	APIKey          string
	HTTP            *webutil.Client
	Limiter         *webutil.MinuteLimiter
	PeopleSearchURL string
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
	searchURL := cfg.PeopleSearchURL
	if searchURL == "" {
		searchURL = defaultPeopleSearchURL
	}
	return &Client{
		key:       cfg.APIKey,
		http:      cfg.HTTP,
		limiter:   cfg.Limiter,
		searchURL: searchURL,
	}
}

func (c *Client) Enabled() bool { return c != nil }

type peopleResponse struct {
	People []struct {
		Name        string `json:"name"`
		Title       string `json:"title"`
		Seniority   string `json:"seniority"`
		Email       string `json:"email"`
		EmailStatus string `json:"email_status"`
		LinkedInURL string `json:"linkedin_url"`
	} `json:"people"`
}

// PeopleForDomain searches people at a domain, optionally biased toward a
// named person. Emails are surfaced only when Apollo returns a real address
// field; a bare email_status is a verification flag, not an address.
func (c *Client) PeopleForDomain(ctx context.Context, dom, personHint string) ([]domain.Person, error) {
	if c == nil || dom == "" {
		return nil, nil
	}
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"api_key":                c.key,
		"page":                   1,
		"q_organization_domains": dom,
		"person_titles":          defaultTitles,
		"per_page":               25,
	}
	if personHint != "" {
		payload["q_person_name"] = personHint
	}

	var resp peopleResponse
	err := webutil.Retry(ctx, 3, time.Second, func() error {
		resp = peopleResponse{}
		return c.http.PostJSON(ctx, c.searchURL, payload, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("apollo people-search %s: %w", dom, err)
	}

	out := make([]domain.Person, 0, len(resp.People))
	for _, p := range resp.People {
		out = append(out, domain.Person{
			Name:        p.Name,
			Title:       p.Title,
			Seniority:   p.Seniority,
			Email:       p.Email,
			LinkedInURL: p.LinkedInURL,
			Source:      domain.SourceApollo,
		})
	}
	return out, nil
}
