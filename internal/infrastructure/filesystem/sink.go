// Package filesystem writes downloads into a directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/domain/download"
	"github.com/bnema/bezier/internal/logging"
)

const (
	dirPerm       = 0o755
	partialSuffix = ".part"
)

// DirSink is a port.DownloadSink that places files in Dir. Bytes go to a
// .part file that is renamed into place on commit.
type DirSink struct {
	Dir string

	// mu serializes name selection so concurrent downloads of the same
	// file get distinct names.
	mu       sync.Mutex
	reserved map[string]struct{}
}

var _ port.DownloadSink = (*DirSink)(nil)

// NewDirSink creates a sink writing into dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir, reserved: make(map[string]struct{})}
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// Create implements port.DownloadSink.
func (s *DirSink) Create(ctx context.Context, filename string) (port.DownloadFile, string, error) {
	if err := os.MkdirAll(s.Dir, dirPerm); err != nil {
		return nil, "", fmt.Errorf("failed to create download directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := download.MakeUniqueFilename(s.Dir, download.SanitizeFilename(filename), func(p string) bool {
		if _, taken := s.reserved[filepath.Base(p)]; taken {
			return true
		}
		return Exists(p) || Exists(p+partialSuffix)
	})
	if err != nil {
		return nil, "", err
	}

	final := filepath.Join(s.Dir, name)
	f, err := os.OpenFile(final+partialSuffix, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("create %s: %w", name, err)
	}
	s.reserved[name] = struct{}{}

	logging.FromContext(ctx).Debug().Str("path", final).Msg("download file created")
	return &dirFile{sink: s, name: name, final: final, f: f}, name, nil
}

func (s *DirSink) release(name string) {
	s.mu.Lock()
	delete(s.reserved, name)
	s.mu.Unlock()
}

type dirFile struct {
	sink  *DirSink
	name  string
	final string
	f     *os.File
}

func (d *dirFile) Write(p []byte) (int, error) {
	return d.f.Write(p)
}

func (d *dirFile) Commit() error {
	defer d.sink.release(d.name)
	if err := d.f.Close(); err != nil {
		_ = os.Remove(d.f.Name())
		return err
	}
	return os.Rename(d.f.Name(), d.final)
}

func (d *dirFile) Abort() error {
	defer d.sink.release(d.name)
	_ = d.f.Close()
	if err := os.Remove(d.f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
