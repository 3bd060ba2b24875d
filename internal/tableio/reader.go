// Package tableio reads company tables and persists result tables,
// including resumable checkpoints.
package tableio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/domain"
)

// ReadCompanies loads the input CSV, inferring common header spellings
// (company/name, url/domain, linkedin, founder, location). Missing optional
// columns become empty strings. Warnings report data problems that do not
// stop a run, like a completely empty company-name column.
func ReadCompanies(path string) ([]domain.Company, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("input CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("input CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("input CSV %s is empty", path)
	}

	header := rows[0]
	idx := func(names ...string) int {
		for _, want := range names {
			for i, h := range header {
				if strings.EqualFold(strings.TrimSpace(h), want) {
					return i
				}
			}
		}
		return -1
	}

	nameCol := idx("company_name", "company", "name")
	websiteCol := idx("website", "url", "domain")
	linkedinCol := idx("linkedin", "linkedin_url")
	founderCol := idx("founder_name", "founder")
	countryCol := idx("country", "location")

	cell := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	var companies []domain.Company
	anyName := false
	for _, row := range rows[1:] {
		co := domain.Company{
			Name:        cell(row, nameCol),
			Website:     cell(row, websiteCol),
			LinkedInURL: cell(row, linkedinCol),
			FounderName: cell(row, founderCol),
			Country:     cell(row, countryCol),
		}
		if co.Name != "" {
			anyName = true
		}
		companies = append(companies, co)
	}

	var warnings []string
	if !anyName {
		warnings = append(warnings, "company_name column is entirely empty")
	}
	return companies, warnings, nil
}
