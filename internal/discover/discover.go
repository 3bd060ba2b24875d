// Package discover resolves a company record to its registrable domain via
// an ordered fallback chain. Failing to find a domain is an answer, not an
// error; every stage notes its failure and falls through.
package discover

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/domain"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/enrich/serpapi"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/store"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/webutil"
)

var urlRe = regexp.MustCompile(`(?i)https?://[^\s"'<>]+`)

type Resolver struct {
	Client *webutil.Client
	Cache  *store.DB       // optional cross-run domain cache
	Search *serpapi.Client // optional search fallback
}

// Resolve walks website field -> linkedin page -> cache -> search, stopping
// at the first stage that yields a registrable domain. A successful
// resolution is written back to the cache for later runs.
func (r *Resolver) Resolve(ctx context.Context, co domain.Company) (string, domain.Source, []string) {
	var notes []string

	if co.Website != "" {
		if dom := webutil.NormalizeDomain(co.Website); dom != "" {
			r.remember(ctx, co.Name, dom, domain.SourceWebsite)
			return dom, domain.SourceWebsite, notes
		}
		notes = append(notes, "website_unparseable:"+co.Website)
	}

	if co.LinkedInURL != "" {
		dom, err := r.fromLinkedIn(ctx, co.LinkedInURL)
		if err != nil {
			notes = append(notes, fmt.Sprintf("linkedin_parse_error:%v", err))
		} else if dom != "" {
			r.remember(ctx, co.Name, dom, domain.SourceLinkedIn)
			return dom, domain.SourceLinkedIn, notes
		}
	}

	if r.Cache != nil {
		dom, err := r.Cache.GetDomain(ctx, co.Name)
		if err != nil {
			notes = append(notes, fmt.Sprintf("domain_cache_error:%v", err))
		} else if dom != "" {
			return dom, domain.SourceCache, notes
		}
	}

	if r.Search.Enabled() {
		dom, err := r.fromSearch(ctx, co.Name)
		if err != nil {
			notes = append(notes, fmt.Sprintf("serpapi_error:%v", err))
		} else if dom != "" {
			r.remember(ctx, co.Name, dom, domain.SourceSerp)
			return dom, domain.SourceSerp, notes
		}
	}

	return "", domain.SourceUnknown, notes
}

// fromLinkedIn fetches the public company page and normalizes the first
// URL-shaped string found in it. LinkedIn renders the company website link
// into the page source in several shapes; scanning beats a brittle selector.
func (r *Resolver) fromLinkedIn(ctx context.Context, pageURL string) (string, error) {
	html, err := r.Client.FetchText(ctx, pageURL)
	if err != nil {
		return "", err
	}
	for _, raw := range urlRe.FindAllString(html, -1) {
		if dom := webutil.NormalizeDomain(raw); dom != "" {
			return dom, nil
		}
	}
	return "", nil
}

func (r *Resolver) fromSearch(ctx context.Context, companyName string) (string, error) {
	q := sanitizeCompanyForSearch(companyName)
	if q == "" {
		return "", nil
	}
	links, err := r.Search.OrganicLinks(ctx, q+" official website", 5)
	if err != nil {
		return "", err
	}
	for _, link := range links {
		if dom := webutil.NormalizeDomain(link); dom != "" {
			return dom, nil
		}
	}
	return "", nil
}

func (r *Resolver) remember(ctx context.Context, company, dom string, method domain.Source) {
	if r.Cache == nil {
		return
	}
	_ = r.Cache.UpsertDomain(ctx, company, dom, string(method))
}

// sanitizeCompanyForSearch drops legal suffixes that make search queries
// noisier.
func sanitizeCompanyForSearch(s string) string {
	s = strings.TrimSpace(s)
	repls := []string{
		", Inc.", "", " Inc.", "", " Inc", "",
		", LLC", "", " LLC", "",
		", Ltd.", "", " Ltd.", "", " Ltd", "",
	}
	s = strings.NewReplacer(repls...).Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
