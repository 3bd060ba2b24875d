package domain

import (
	"encoding/json"
	"time"
)

// Confidence is the coarse trust tier for a company's email set.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Result is the final record for one company. Built once after all
// evidence-gathering stages finish; not mutated afterwards.
type Result struct {
	CompanyName  string                     `json:"company_name"`
	Domain       string                     `json:"domain"`
	Country      string                     `json:"country"`
	LinkedInURL  string                     `json:"linkedin_url"`
	FounderName  string                     `json:"founder_name"`
	FoundEmails  []string                   `json:"found_emails"`
	EmailSources map[string]Source          `json:"emails_with_source"`
	Verification map[string]json.RawMessage `json:"hunter_verification"`
	People       []Person                   `json:"apollo_results"`
	Confidence   Confidence                 `json:"confidence"`
	Method       Source                     `json:"extraction_method"`
	Notes        []string                   `json:"notes"`
	Timestamp    time.Time                  `json:"timestamp"`
}
