package store

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringStore keeps blobs in the OS credential store (Keychain, Secret
// Service, Windows Credential Manager). Keys map to keyring services under
// Service, all owned by User.
type KeyringStore struct {
	Service string
	User    string
}

// NewKeyringStore creates a KeyringStore.
func NewKeyringStore(service, user string) *KeyringStore {
	return &KeyringStore{Service: service, User: user}
}

func (s *KeyringStore) service(key string) string {
	return s.Service + "/" + key
}

// Load fetches the secret stored for key.
func (s *KeyringStore) Load(key string) ([]byte, error) {
	secret, err := keyring.Get(s.service(key), s.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from keyring: %w", key, err)
	}
	return []byte(secret), nil
}

// Save stores blob as the secret for key.
func (s *KeyringStore) Save(key string, blob []byte) error {
	if err := keyring.Set(s.service(key), s.User, string(blob)); err != nil {
		return fmt.Errorf("failed to save %s to keyring: %w", key, err)
	}
	return nil
}
