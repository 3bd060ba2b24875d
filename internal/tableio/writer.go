package tableio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/domain"
)

var resultHeader = []string{
	"company_name", "domain", "country", "linkedin_url", "founder_name",
	"found_emails", "emails_with_source", "hunter_verification",
	"apollo_results", "confidence", "extraction_method", "notes", "timestamp",
}

const maxNotesLen = 2000

// WriteResults writes the final CSV plus a JSON document deduplicated by
// (company_name, domain), keeping the last record per key.
func WriteResults(results []domain.Result, csvPath, jsonPath string) error {
	if err := writeCSV(results, csvPath); err != nil {
		return err
	}

	type key struct{ name, dom string }
	order := make([]key, 0, len(results))
	byKey := make(map[key]domain.Result, len(results))
	for _, r := range results {
		k := key{r.CompanyName, r.Domain}
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] = r
	}
	deduped := make([]domain.Result, 0, len(order))
	for _, k := range order {
		deduped = append(deduped, byKey[k])
	}

	b, err := json.Marshal(deduped)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(jsonPath, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", jsonPath, err)
	}
	return nil
}

// WriteCheckpoint writes the same tabular shape to the checkpoint path so an
// interrupted run can resume.
func WriteCheckpoint(results []domain.Result, checkpointPath string) error {
	return writeCSV(results, checkpointPath)
}

func writeCSV(results []domain.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(resultHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write(resultRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func resultRow(r domain.Result) []string {
	notes := strings.Join(r.Notes, " | ")
	if len(notes) > maxNotesLen {
		notes = notes[:maxNotesLen]
	}
	return []string{
		r.CompanyName,
		r.Domain,
		r.Country,
		r.LinkedInURL,
		r.FounderName,
		strings.Join(r.FoundEmails, ";"),
		jsonCell(r.EmailSources),
		jsonCell(r.Verification),
		jsonCell(r.People),
		string(r.Confidence),
		string(r.Method),
		notes,
		r.Timestamp.UTC().Format(time.RFC3339),
	}
}

func jsonCell(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
