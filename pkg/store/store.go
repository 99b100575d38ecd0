// Package store persists small credential blobs under string keys.
package store

import "errors"

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// Store is a key/value blob store.
type Store interface {
	// Load returns the blob stored under key, or ErrNotFound.
	Load(key string) ([]byte, error)
	// Save stores blob under key, replacing any previous value.
	Save(key string, blob []byte) error
}
