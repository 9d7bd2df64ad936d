// Package store holds the browser's state managers. Each store owns its
// entity collections, serializes mutations behind a mutex, notifies
// subscribers after every change and schedules a best-effort write of its
// whole state document.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/bezier/internal/logging"
)

// Topic names the collection an event refers to.
type Topic string

const (
	TopicTabs        Topic = "tabs"
	TopicGroups      Topic = "groups"
	TopicHistory     Topic = "history"
	TopicBookmarks   Topic = "bookmarks"
	TopicDownloads   Topic = "downloads"
	TopicUI          Topic = "ui"
	TopicTheme       Topic = "theme"
	TopicExtensions  Topic = "extensions"
	TopicPermissions Topic = "permissions"
)

// Event describes a completed mutation.
type Event struct {
	Topic Topic     `json:"topic"`
	Op    string    `json:"op"`
	ID    string    `json:"id,omitempty"`
	At    time.Time `json:"at"`
}

// Listener receives events. It runs on the mutating goroutine after the
// store lock is released, so it may read from the store.
type Listener func(Event)

type notifier struct {
	mu        sync.RWMutex
	next      int
	listeners map[int]Listener
}

// Subscribe registers l and returns a function that removes it.
func (n *notifier) Subscribe(l Listener) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = make(map[int]Listener)
	}
	id := n.next
	n.next++
	n.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.listeners, id)
			n.mu.Unlock()
		})
	}
}

func (n *notifier) emit(e Event) {
	n.mu.RLock()
	listeners := make([]Listener, 0, len(n.listeners))
	for _, l := range n.listeners {
		listeners = append(listeners, l)
	}
	n.mu.RUnlock()

	for _, l := range listeners {
		l(e)
	}
}

// commit finishes a mutation once the store lock is released: unchanged
// calls are logged as no-ops, changes are announced and a write of the
// store document is scheduled.
func commit(ctx context.Context, n *notifier, p *Persister, key string, doc func() ([]byte, error), e Event, changed bool) bool {
	log := logging.FromContext(ctx).Debug().Str("topic", string(e.Topic)).Str("op", e.Op).Str("id", e.ID)
	if !changed {
		log.Msg("ignored: unknown identifier or nothing to change")
		return false
	}
	log.Msg("state changed")

	n.emit(e)
	p.schedule(key, doc)
	return true
}
