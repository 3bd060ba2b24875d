package secrets

import (
	"testing"

	"github.com/zalando/go-keyring"
)

func TestAPIKeyPrefersEnv(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HUNTER_API_KEY", "from-env")

	if err := SetAPIKey("hunter", "from-keyring"); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}
	if got := APIKey("HUNTER_API_KEY", "hunter"); got != "from-env" {
		t.Fatalf("APIKey = %q, want the env value", got)
	}
}

func TestAPIKeyFallsBackToKeyring(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HUNTER_API_KEY", "")

	if err := SetAPIKey("hunter", "  from-keyring  "); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}
	if got := APIKey("HUNTER_API_KEY", "hunter"); got != "from-keyring" {
		t.Fatalf("APIKey = %q, want the trimmed keyring value", got)
	}
}

func TestAPIKeyMissingIsEmpty(t *testing.T) {
	keyring.MockInit()
	t.Setenv("SERPAPI_KEY", "")

	if got := APIKey("SERPAPI_KEY", "serpapi"); got != "" {
		t.Fatalf("APIKey = %q, want empty for a missing credential", got)
	}
}

func TestSetAndDeleteAPIKey(t *testing.T) {
	keyring.MockInit()
	t.Setenv("APOLLO_API_KEY", "")

	if err := SetAPIKey("", "key"); err == nil {
		t.Fatal("empty provider must be rejected")
	}
	if err := SetAPIKey("apollo", ""); err == nil {
		t.Fatal("empty key must be rejected")
	}
	if err := DeleteAPIKey(""); err == nil {
		t.Fatal("empty provider must be rejected")
	}

	if err := SetAPIKey("apollo", "secret"); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}
	if got := APIKey("APOLLO_API_KEY", "apollo"); got != "secret" {
		t.Fatalf("APIKey = %q after set", got)
	}
	if err := DeleteAPIKey("apollo"); err != nil {
		t.Fatalf("DeleteAPIKey: %v", err)
	}
	if got := APIKey("APOLLO_API_KEY", "apollo"); got != "" {
		t.Fatalf("APIKey = %q after delete, want empty", got)
	}
}
