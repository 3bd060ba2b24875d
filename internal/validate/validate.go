// Package validate filters email evidence and assigns the final confidence
// label for a company.
package validate

import (
	"encoding/json"
	"strings"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/domain"
)

// Throwaway-mail providers whose addresses are never worth keeping.
var disposableDomains = map[string]bool{
	"mailinator.com":    true,
	"guerrillamail.com": true,
	"10minutemail.com":  true,
	"tempmail.com":      true,
	"yopmail.com":       true,
}

// Role-account local parts that don't identify a person.
var genericPrefixes = map[string]bool{
	"info": true, "hello": true, "contact": true, "hi": true,
	"support": true, "team": true, "careers": true, "jobs": true,
}

// FilterEmails drops malformed and disposable-domain addresses, preserving
// input order.
func FilterEmails(emails []string) []string {
	var out []string
	for _, e := range emails {
		e = strings.TrimSpace(e)
		at := strings.Index(e, "@")
		if at <= 0 || at == len(e)-1 {
			continue
		}
		if disposableDomains[strings.ToLower(e[at+1:])] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// DedupeKeepOrder removes case-insensitive duplicates, keeping the first
// spelling seen.
func DedupeKeepOrder(emails []string) []string {
	seen := make(map[string]bool, len(emails))
	var out []string
	for _, e := range emails {
		k := strings.ToLower(e)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}

type verdict struct {
	Result string `json:"result"`
}

// AssessConfidence applies the priority-ordered scoring policy: verifier
// "valid" beats apollo provenance beats a personal-looking on-page address
// beats anything at all. First matching rule wins; the method reported is
// the evidence's discovery source.
func AssessConfidence(
	emails []string,
	verification map[string]json.RawMessage,
	evidence *domain.EmailSet,
) (domain.Confidence, domain.Source) {
	for _, e := range emails {
		raw, ok := verification[e]
		if !ok {
			continue
		}
		var v verdict
		if json.Unmarshal(raw, &v) == nil && v.Result == "valid" {
			return domain.ConfidenceHigh, sourceOrPage(evidence, e)
		}
	}

	for _, e := range emails {
		if evidence.Source(e) == domain.SourceApollo {
			return domain.ConfidenceHigh, domain.SourceApollo
		}
	}

	for _, e := range emails {
		if evidence.Source(e) != domain.SourcePage {
			continue
		}
		local := strings.ToLower(e[:strings.Index(e, "@")])
		if dottedName(local) || !genericPrefixes[local] {
			return domain.ConfidenceMedium, domain.SourcePage
		}
	}

	if len(emails) > 0 {
		return domain.ConfidenceLow, sourceOrPage(evidence, emails[0])
	}
	return domain.ConfidenceLow, domain.SourceSerp
}

// dottedName reports firstname.lastname-shaped local parts: at least one
// dot, no empty segments.
func dottedName(local string) bool {
	if !strings.Contains(local, ".") {
		return false
	}
	for _, part := range strings.Split(local, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

func sourceOrPage(evidence *domain.EmailSet, email string) domain.Source {
	if src := evidence.Source(email); src != domain.SourceUnknown {
		return src
	}
	return domain.SourcePage
}
