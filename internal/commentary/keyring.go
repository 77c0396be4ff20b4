package commentary

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// Environment variables checked for the API key, in order.
const (
	EnvAPIKey    = "GEMINI_API_KEY"
	EnvAPIKeyAlt = "API_KEY"
)

const (
	defaultService = "office-saver"
	keyAccount     = "gemini"
)

// ErrNoAPIKey is returned when no key is configured anywhere.
var ErrNoAPIKey = errors.New("commentary: no API key configured")

// KeyringStore keeps the API key in the OS keychain.
type KeyringStore struct {
	service string
}

// NewKeyringStore creates a keyring wrapper.
func NewKeyringStore(serviceName string) *KeyringStore {
	if strings.TrimSpace(serviceName) == "" {
		serviceName = defaultService
	}
	return &KeyringStore{service: serviceName}
}

// SetAPIKey stores the key.
func (k *KeyringStore) SetAPIKey(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("commentary: API key is empty")
	}
	if err := keyring.Set(k.service, keyAccount, value); err != nil {
		return fmt.Errorf("commentary: keyring set: %w", err)
	}
	return nil
}

// GetAPIKey returns the stored key, or keyring.ErrNotFound.
func (k *KeyringStore) GetAPIKey() (string, error) {
	val, err := keyring.Get(k.service, keyAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", keyring.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("commentary: keyring get: %w", err)
	}
	return val, nil
}

// DeleteAPIKey removes the stored key. Deleting a missing key is not an error.
func (k *KeyringStore) DeleteAPIKey() error {
	if err := keyring.Delete(k.service, keyAccount); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("commentary: keyring delete: %w", err)
	}
	return nil
}

// ResolveAPIKey finds the key: environment first, then the keyring. It also
// reports where the key came from. store may be nil.
func ResolveAPIKey(store *KeyringStore) (key, source string, err error) {
	for _, env := range []string{EnvAPIKey, EnvAPIKeyAlt} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v, env, nil
		}
	}
	if store == nil {
		return "", "", ErrNoAPIKey
	}

	v, err := store.GetAPIKey()
	if errors.Is(err, keyring.ErrNotFound) {
		return "", "", ErrNoAPIKey
	}
	if err != nil {
		return "", "", err
	}
	return v, "keyring", nil
}
