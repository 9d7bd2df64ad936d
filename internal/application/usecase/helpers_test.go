package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func sequentialIDs(prefix string) port.IDGenerator {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s%d", prefix, n.Add(1))
	}
}

var epoch = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedClock(t time.Time) port.Clock {
	return func() time.Time { return t }
}

func newBrowserStore(t *testing.T, clock port.Clock) *store.BrowserStore {
	t.Helper()
	if clock == nil {
		clock = fixedClock(epoch)
	}
	s := store.NewBrowserStore(nil, store.Options{
		IDs:            sequentialIDs("id-"),
		Clock:          clock,
		SearchTemplate: "https://duckduckgo.com/?q=%s",
	})
	t.Cleanup(s.Close)
	return s
}

// memorySink keeps committed downloads in memory.
type memorySink struct {
	mu        sync.Mutex
	committed map[string][]byte
	aborted   []string
	createErr error
}

func newMemorySink() *memorySink {
	return &memorySink{committed: make(map[string][]byte)}
}

func (s *memorySink) Create(_ context.Context, filename string) (port.DownloadFile, string, error) {
	if s.createErr != nil {
		return nil, "", s.createErr
	}
	return &memoryFile{sink: s, name: filename}, filename, nil
}

func (s *memorySink) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.committed[name]
	return b, ok
}

func (s *memorySink) Aborted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.aborted...)
}

type memoryFile struct {
	sink *memorySink
	name string
	buf  bytes.Buffer
	done bool
}

func (f *memoryFile) Write(p []byte) (int, error) {
	if f.done {
		return 0, errors.New("file closed")
	}
	return f.buf.Write(p)
}

func (f *memoryFile) Commit() error {
	f.done = true
	f.sink.mu.Lock()
	f.sink.committed[f.name] = f.buf.Bytes()
	f.sink.mu.Unlock()
	return nil
}

func (f *memoryFile) Abort() error {
	f.done = true
	f.sink.mu.Lock()
	f.sink.aborted = append(f.sink.aborted, f.name)
	f.sink.mu.Unlock()
	return nil
}
