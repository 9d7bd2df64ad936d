package repository

import (
	"context"
	"errors"
)

// Namespaced keys under which each store persists its state document.
const (
	KeyBrowserState   = "bezier-browser-storage"
	KeyExtensionState = "bezier-extension-storage"
	KeyThemeState     = "bezier-theme-storage"
)

// ErrStateNotFound may be returned by backends that distinguish absence
// from an empty document. Callers treat it like (nil, nil).
var ErrStateNotFound = errors.New("state document not found")

// StateRepository persists whole-store JSON documents under namespaced keys.
// Documents are opaque to the repository.
type StateRepository interface {
	// Load returns the document stored under key, or nil if there is none.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores or replaces the document under key.
	Save(ctx context.Context, key string, doc []byte) error

	// Delete removes the document under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists the keys that currently hold a document.
	Keys(ctx context.Context) ([]string, error)

	// Close releases the backend's resources.
	Close() error
}
