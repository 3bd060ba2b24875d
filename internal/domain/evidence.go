package domain

import "strings"

// Source tags where an email (or a domain) was first discovered.
type Source string

const (
	SourcePage     Source = "page"
	SourceHunter   Source = "hunter"
	SourceApollo   Source = "apollo"
	SourceSerp     Source = "serp"
	SourceCache    Source = "cache"
	SourceWebsite  Source = "website"
	SourceLinkedIn Source = "linkedin"
	SourceUnknown  Source = "unknown"
)

// EmailSet accumulates discovered emails for one company. Keys are
// case-insensitive, the first-seen spelling is kept for display, and the
// first source to report an address wins; later sources never overwrite.
// Iteration order is insertion (discovery) order.
type EmailSet struct {
	keys    []string
	display map[string]string
	source  map[string]Source
}

func NewEmailSet() *EmailSet {
	return &EmailSet{
		display: make(map[string]string),
		source:  make(map[string]Source),
	}
}

func (s *EmailSet) Add(email string, src Source) {
	email = strings.TrimSpace(email)
	if email == "" {
		return
	}
	k := strings.ToLower(email)
	if _, ok := s.source[k]; ok {
		return
	}
	s.keys = append(s.keys, k)
	s.display[k] = email
	s.source[k] = src
}

// Emails returns addresses in discovery order, first-seen spelling.
func (s *EmailSet) Emails() []string {
	out := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.display[k])
	}
	return out
}

// Source reports the first source that discovered the address, or
// SourceUnknown if it was never added.
func (s *EmailSet) Source(email string) Source {
	if src, ok := s.source[strings.ToLower(strings.TrimSpace(email))]; ok {
		return src
	}
	return SourceUnknown
}

func (s *EmailSet) Len() int { return len(s.keys) }

// BySource returns the email→source map for serialization.
func (s *EmailSet) BySource() map[string]Source {
	out := make(map[string]Source, len(s.keys))
	for _, k := range s.keys {
		out[s.display[k]] = s.source[k]
	}
	return out
}

// Person is one Apollo people-search hit. Email is set only when the
// upstream returned a directly confirmed address; an email_status token
// alone is not an address and must not leak into results.
type Person struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Seniority   string `json:"seniority"`
	Email       string `json:"email,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Source      Source `json:"source"`
}
