package tableio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/domain"
)

// LoadCheckpoint returns the set of normalized company names already
// present in a checkpoint file. A missing or unreadable checkpoint is an
// empty set, never an error; resume is best-effort.
func LoadCheckpoint(path string) map[string]bool {
	done := make(map[string]bool)

	f, err := os.Open(path)
	if err != nil {
		return done
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil || len(rows) < 2 {
		return done
	}

	nameCol := -1
	for i, h := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(h), "company_name") {
			nameCol = i
			break
		}
	}
	if nameCol < 0 {
		return done
	}

	for _, row := range rows[1:] {
		if nameCol < len(row) {
			if k := companyKey(row[nameCol]); k != "" {
				done[k] = true
			}
		}
	}
	return done
}

// MergeCheckpoint drops input rows whose company name already appears in
// the checkpoint. The match key is the name alone: checkpoint rows for
// companies that never resolved carry an empty domain, and a (name, domain)
// key would reprocess those forever.
func MergeCheckpoint(companies []domain.Company, done map[string]bool) []domain.Company {
	if len(done) == 0 {
		return companies
	}
	out := make([]domain.Company, 0, len(companies))
	for _, co := range companies {
		if done[companyKey(co.Name)] {
			continue
		}
		out = append(out, co)
	}
	return out
}

func companyKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// AcquireRunLock takes an advisory lock next to the checkpoint file so two
// runs cannot interleave checkpoint writes.
func AcquireRunLock(checkpointPath string) (*flock.Flock, error) {
	lk := flock.New(checkpointPath + ".lock")
	ok, err := lk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("run lock: another run holds %s", lk.Path())
	}
	return lk, nil
}
