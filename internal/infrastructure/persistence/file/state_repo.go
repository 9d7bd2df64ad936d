// Package file stores each state document as <key>.jsonlz4 in a directory,
// using the same framing Firefox uses for its session files.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bnema/bezier/internal/domain/repository"
	"github.com/bnema/bezier/internal/infrastructure/mozlz4"
	"github.com/bnema/bezier/internal/logging"
)

const (
	extension = ".jsonlz4"
	lockName  = ".lock"
	dirPerm   = 0o750
	filePerm  = 0o600
)

// ErrLocked means another process holds the state directory.
var ErrLocked = errors.New("state directory is in use")

type stateRepo struct {
	mu   sync.Mutex
	dir  string
	lock *os.File
}

// NewStateRepository creates a repository rooted at dir, creating it if
// needed. The directory stays locked against other openers until Close.
func NewStateRepository(dir string) (repository.StateRepository, error) {
	if dir == "" {
		return nil, errors.New("state directory cannot be empty")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	lock, err := lockDir(dir)
	if err != nil {
		return nil, err
	}
	return &stateRepo{dir: dir, lock: lock}, nil
}

func (r *stateRepo) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid state key %q", key)
	}
	return filepath.Join(r.dir, key+extension), nil
}

func (r *stateRepo) Load(_ context.Context, key string) ([]byte, error) {
	p, err := r.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	doc, err := mozlz4.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return doc, nil
}

// Save writes to a temporary file and renames it over the target so a
// crash never leaves a half-written document.
func (r *stateRepo) Save(ctx context.Context, key string, doc []byte) error {
	p, err := r.path(key)
	if err != nil {
		return err
	}
	payload, err := mozlz4.Encode(doc)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(r.dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	logging.FromContext(ctx).Debug().Str("path", p).Int("bytes", len(payload)).Msg("state document written")
	return nil
}

func (r *stateRepo) Delete(_ context.Context, key string) error {
	p, err := r.path(key)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (r *stateRepo) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, extension) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, extension))
	}
	slices.Sort(keys)
	return keys, nil
}

func (r *stateRepo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock := r.lock
	r.lock = nil
	return unlockDir(lock)
}
