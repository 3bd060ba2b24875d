package webutil

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeDomain maps an arbitrary URL or hostname to its lower-cased
// registrable domain (sub.example.co.uk -> example.co.uk). Returns "" for
// empty, unparseable, or suffix-less input; absence is an answer here, not
// an error.
func NormalizeDomain(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ""
	}
	reg, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return reg
}

// SameDomain reports whether the URL's host collapses to the given
// registrable domain.
func SameDomain(domain, rawURL string) bool {
	if domain == "" {
		return false
	}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	reg, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		reg = host
	}
	return strings.EqualFold(reg, domain)
}
