package store_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/domain/repository"
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

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type testStore struct {
	*store.BrowserStore
	clock  *fakeClock
	events *eventLog
}

func newTestStore(t *testing.T, opts ...func(*store.Options)) *testStore {
	t.Helper()
	return newPersistedStore(t, nil, opts...)
}

func newPersistedStore(t *testing.T, persister *store.Persister, opts ...func(*store.Options)) *testStore {
	t.Helper()
	clock := newFakeClock()
	o := store.Options{
		IDs:            sequentialIDs("id-"),
		Clock:          clock.Now,
		SearchTemplate: "https://duckduckgo.com/?q=%s",
	}
	for _, fn := range opts {
		fn(&o)
	}
	s := store.NewBrowserStore(persister, o)
	events := &eventLog{}
	unsubscribe := s.Subscribe(events.record)
	t.Cleanup(func() {
		unsubscribe()
		s.Close()
	})
	return &testStore{BrowserStore: s, clock: clock, events: events}
}

func newMemoryPersister(t *testing.T, repo repository.StateRepository) *store.Persister {
	t.Helper()
	p := store.NewPersister(testContext(), repo, time.Hour)
	t.Cleanup(p.Close)
	return p
}

type eventLog struct {
	mu     sync.Mutex
	events []store.Event
}

func (l *eventLog) record(e store.Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func (l *eventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

func (l *eventLog) Last() store.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return store.Event{}
	}
	return l.events[len(l.events)-1]
}
