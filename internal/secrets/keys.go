package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "email-enricher"

// APIKey looks up a provider credential: environment variable first
// (HUNTER_API_KEY and friends), then the OS keyring under the provider
// name. A missing credential is normal; the caller disables that source.
func APIKey(envVar, provider string) string {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v
	}
	if provider != "" {
		if v, err := keyring.Get(KeyringService, provider); err == nil {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func SetAPIKey(provider, key string) error {
	if strings.TrimSpace(provider) == "" {
		return errors.New("provider name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("key is empty")
	}
	return keyring.Set(KeyringService, provider, key)
}

func DeleteAPIKey(provider string) error {
	if strings.TrimSpace(provider) == "" {
		return errors.New("provider name is empty")
	}
	return keyring.Delete(KeyringService, provider)
}
