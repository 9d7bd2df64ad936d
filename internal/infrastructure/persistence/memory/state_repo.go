// Package memory provides an in-process StateRepository for ephemeral
// sessions and tests.
package memory

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/bnema/bezier/internal/domain/repository"
)

type stateRepo struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewStateRepository creates an empty in-memory repository.
func NewStateRepository() repository.StateRepository {
	return &stateRepo{docs: make(map[string][]byte)}
}

func (r *stateRepo) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[key]
	if !ok {
		return nil, nil
	}
	return bytes.Clone(doc), nil
}

func (r *stateRepo) Save(_ context.Context, key string, doc []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[key] = bytes.Clone(doc)
	return nil
}

func (r *stateRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, key)
	return nil
}

func (r *stateRepo) Keys(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.docs))
	for k := range r.docs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (r *stateRepo) Close() error {
	return nil
}
