// Package pipeline runs the resolve -> crawl -> enrich -> score stages for
// each company and collects results with periodic checkpointing.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/crawl"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/discover"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/domain"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/enrich/apollo"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/enrich/hunter"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/logging"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/validate"
)

type Deps struct {
	Log      *logging.Logger
	Resolver *discover.Resolver
	Crawler  *crawl.Crawler
	Hunter   *hunter.Client
	Apollo   *apollo.Client
}

// ProcessCompany runs one company through every stage. Stages are strictly
// sequential: each consumes the previous stage's domain or evidence. Partial
// evidence never suppresses the result; the confidence label carries the
// uncertainty instead.
func (d *Deps) ProcessCompany(ctx context.Context, co domain.Company) domain.Result {
	started := time.Now().UTC()
	var notes []string

	dom, discoveredBy, dnotes := d.Resolver.Resolve(ctx, co)
	notes = append(notes, dnotes...)

	evidence := domain.NewEmailSet()
	var verification map[string]json.RawMessage
	var people []domain.Person

	if dom != "" {
		crawled, cnotes := d.Crawler.Site(ctx, dom)
		for _, e := range crawled {
			evidence.Add(e, domain.SourcePage)
		}
		notes = append(notes, cnotes...)
	} else {
		notes = append(notes, "no_domain_discovered:skipping_crawl")
	}

	if d.Hunter.Enabled() && dom != "" {
		found, err := d.Hunter.DomainSearch(ctx, dom)
		if err != nil {
			notes = append(notes, fmt.Sprintf("hunter_error:%v", err))
		} else {
			for _, e := range found {
				evidence.Add(e, domain.SourceHunter)
			}
			verification, err = d.Hunter.VerifyAll(ctx, evidence.Emails())
			if err != nil {
				notes = append(notes, fmt.Sprintf("hunter_error:%v", err))
			}
		}
	}

	if d.Apollo.Enabled() && dom != "" {
		var err error
		people, err = d.Apollo.PeopleForDomain(ctx, dom, co.FounderName)
		if err != nil {
			notes = append(notes, fmt.Sprintf("apollo_error:%v", err))
			people = nil
		} else {
			for _, p := range people {
				if p.Email != "" {
					evidence.Add(p.Email, domain.SourceApollo)
				}
			}
		}
	}

	emails := validate.DedupeKeepOrder(validate.FilterEmails(evidence.Emails()))
	confidence, method := validate.AssessConfidence(emails, verification, evidence)
	if dom == "" {
		method = discoveredBy
	}

	return domain.Result{
		CompanyName:  co.Name,
		Domain:       dom,
		Country:      co.Country,
		LinkedInURL:  co.LinkedInURL,
		FounderName:  co.FounderName,
		FoundEmails:  emails,
		EmailSources: evidence.BySource(),
		Verification: verification,
		People:       people,
		Confidence:   confidence,
		Method:       method,
		Notes:        notes,
		Timestamp:    started,
	}
}
