package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// GetDomain returns the cached domain for a company, or "" on miss.
func (d *DB) GetDomain(ctx context.Context, company string) (string, error) {
	company = normalizeCompanyKey(company)
	if company == "" {
		return "", nil
	}

	var domain string
	err := d.Pool.QueryRowContext(ctx,
		`SELECT domain FROM company_domains WHERE company = ? LIMIT 1;`,
		company,
	).Scan(&domain)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(domain), nil
}

// UpsertDomain records how a company resolved so later runs can skip
// discovery. Empty keys or domains are ignored.
func (d *DB) UpsertDomain(ctx context.Context, company, domain, method string) error {
	company = normalizeCompanyKey(company)
	domain = strings.ToLower(strings.TrimSpace(domain))

	if company == "" || domain == "" {
		return nil
	}

	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO company_domains(company, domain, method, fetched_at)
VALUES(?,?,?,?)
ON CONFLICT(company) DO UPDATE SET
  domain     = excluded.domain,
  method     = excluded.method,
  fetched_at = excluded.fetched_at;
`, company, domain, method, time.Now().UTC().Format(time.RFC3339))

	return err
}

func normalizeCompanyKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}
