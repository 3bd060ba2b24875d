package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "domains.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDomainCacheRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if dom, err := db.GetDomain(ctx, "Acme"); err != nil || dom != "" {
		t.Fatalf("cold cache = (%q, %v), want miss", dom, err)
	}

	if err := db.UpsertDomain(ctx, "Acme", "ACME.io", "website"); err != nil {
		t.Fatalf("UpsertDomain: %v", err)
	}

	// Lookup key is case- and whitespace-insensitive; the domain comes back
	// lowered.
	dom, err := db.GetDomain(ctx, "  acme ")
	if err != nil {
		t.Fatalf("GetDomain: %v", err)
	}
	if dom != "acme.io" {
		t.Fatalf("dom = %q, want acme.io", dom)
	}
}

func TestUpsertDomainOverwrites(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.UpsertDomain(ctx, "Acme", "old.io", "serp"); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := db.UpsertDomain(ctx, "acme", "new.io", "website"); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	dom, err := db.GetDomain(ctx, "Acme")
	if err != nil {
		t.Fatalf("GetDomain: %v", err)
	}
	if dom != "new.io" {
		t.Fatalf("dom = %q, want new.io", dom)
	}
}

func TestUpsertDomainIgnoresEmpty(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.UpsertDomain(ctx, "", "acme.io", "website"); err != nil {
		t.Fatalf("empty company: %v", err)
	}
	if err := db.UpsertDomain(ctx, "Acme", "", "website"); err != nil {
		t.Fatalf("empty domain: %v", err)
	}
	if dom, _ := db.GetDomain(ctx, "Acme"); dom != "" {
		t.Fatalf("dom = %q, want miss", dom)
	}
}
