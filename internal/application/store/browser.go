package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/domain/repository"
	"github.com/bnema/bezier/internal/logging"
)

// DefaultLoadDelay is how long a navigated tab stays in the loading state.
const DefaultLoadDelay = 800 * time.Millisecond

// Options configure a BrowserStore.
type Options struct {
	IDs   port.IDGenerator
	Clock port.Clock

	// MaxHistoryEntries caps the history log; 0 means unbounded.
	MaxHistoryEntries int

	// SearchTemplate turns non-URL address bar input into a search
	// location; %s is replaced by the query.
	SearchTemplate string

	// LoadDelay simulates page load time after NavigateTab.
	LoadDelay time.Duration
}

func (o *Options) withDefaults() {
	if o.IDs == nil {
		o.IDs = port.NewUUIDGenerator()
	}
	if o.Clock == nil {
		o.Clock = port.SystemClock
	}
	if o.LoadDelay <= 0 {
		o.LoadDelay = DefaultLoadDelay
	}
}

// BrowserState is the persisted and exported form of a BrowserStore.
type BrowserState struct {
	Tabs        []entity.Tab          `json:"tabs"`
	TabGroups   []entity.TabGroup     `json:"tabGroups"`
	Bookmarks   []entity.Bookmark     `json:"bookmarks"`
	History     []entity.HistoryEntry `json:"history"`
	Downloads   []entity.DownloadItem `json:"downloads"`
	SidebarOpen bool                  `json:"sidebarOpen"`
	ActiveTab   *entity.TabID         `json:"activeTab"`
}

// BrowserStore owns tabs, tab groups, history, bookmarks and downloads.
// Every operation on an unknown identifier is a silent no-op.
type BrowserStore struct {
	notifier

	mu          sync.RWMutex
	tabs        *entity.TabList
	groups      []*entity.TabGroup
	bookmarks   []*entity.Bookmark
	history     []*entity.HistoryEntry
	downloads   []*entity.DownloadItem
	sidebarOpen bool

	cancels    map[entity.DownloadID]func()
	loadTimers map[entity.TabID]*time.Timer

	opts      Options
	persister *Persister
	closed    bool
}

// NewBrowserStore creates an empty store. Call Load to restore saved state.
func NewBrowserStore(persister *Persister, opts Options) *BrowserStore {
	opts.withDefaults()
	return &BrowserStore{
		tabs:       entity.NewTabList(),
		cancels:    make(map[entity.DownloadID]func()),
		loadTimers: make(map[entity.TabID]*time.Timer),
		opts:       opts,
		persister:  persister,
	}
}

// Load replaces the in-memory state with the saved document, if any.
// A missing or unreadable document leaves the store empty.
func (s *BrowserStore) Load(ctx context.Context) {
	var state BrowserState
	if !load(ctx, s.persister, repository.KeyBrowserState, &state) {
		return
	}

	s.mu.Lock()
	s.restore(state)
	tabs, groups := s.tabs.Count(), len(s.groups)
	s.mu.Unlock()

	logging.FromContext(ctx).Info().
		Int("tabs", tabs).
		Int("groups", groups).
		Msg("browser state restored")
}

// restore installs state, repairing cross-references. Must hold s.mu.
func (s *BrowserStore) restore(state BrowserState) {
	tabs := make([]*entity.Tab, 0, len(state.Tabs))
	for i := range state.Tabs {
		tab := state.Tabs[i]
		if state.ActiveTab != nil {
			tab.IsActive = *state.ActiveTab == tab.ID
		}
		tabs = append(tabs, &tab)
	}
	s.tabs = entity.NewTabList()
	s.tabs.Replace(tabs)

	s.groups = make([]*entity.TabGroup, 0, len(state.TabGroups))
	for i := range state.TabGroups {
		g := state.TabGroups[i].Clone()
		if g.Layout == "" {
			g.Layout = entity.DefaultGroupLayout
		}
		s.groups = append(s.groups, &g)
	}
	s.repairMembership()

	s.bookmarks = make([]*entity.Bookmark, 0, len(state.Bookmarks))
	for i := range state.Bookmarks {
		b := state.Bookmarks[i].Clone()
		s.bookmarks = append(s.bookmarks, &b)
	}

	// Saved logs may keep revisited entries in place; newest first wins.
	history := slices.Clone(state.History)
	slices.SortStableFunc(history, func(a, b entity.HistoryEntry) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	s.history = make([]*entity.HistoryEntry, 0, len(history))
	seen := make(map[string]struct{}, len(history))
	for i := range history {
		h := history[i].Clone()
		if _, dup := seen[h.URL]; dup {
			continue
		}
		seen[h.URL] = struct{}{}
		s.history = append(s.history, &h)
	}
	s.trimHistory()

	s.downloads = make([]*entity.DownloadItem, 0, len(state.Downloads))
	for i := range state.Downloads {
		d := state.Downloads[i].Clone()
		// A transfer cannot survive a restart.
		if d.Status == entity.DownloadDownloading || d.Status == entity.DownloadPending {
			d.Status = entity.DownloadPaused
		}
		s.downloads = append(s.downloads, &d)
	}

	s.sidebarOpen = state.SidebarOpen
}

// repairMembership makes group member lists and tab GroupIDs agree,
// trusting the tab side. Must hold s.mu.
func (s *BrowserStore) repairMembership() {
	byID := make(map[entity.GroupID]*entity.TabGroup, len(s.groups))
	for _, g := range s.groups {
		g.Tabs = g.Tabs[:0]
		byID[g.ID] = g
	}
	for _, tab := range s.tabs.Tabs {
		if tab.GroupID == "" {
			continue
		}
		if g, ok := byID[tab.GroupID]; ok {
			g.AddTab(tab.ID)
		} else {
			tab.GroupID = ""
		}
	}
}

// State returns a detached copy of the whole store.
func (s *BrowserStore) State() BrowserState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *BrowserStore) stateLocked() BrowserState {
	state := BrowserState{
		Tabs:        s.tabs.Snapshot(),
		TabGroups:   make([]entity.TabGroup, 0, len(s.groups)),
		Bookmarks:   make([]entity.Bookmark, 0, len(s.bookmarks)),
		History:     make([]entity.HistoryEntry, 0, len(s.history)),
		Downloads:   make([]entity.DownloadItem, 0, len(s.downloads)),
		SidebarOpen: s.sidebarOpen,
	}
	for _, g := range s.groups {
		state.TabGroups = append(state.TabGroups, g.Clone())
	}
	for _, b := range s.bookmarks {
		state.Bookmarks = append(state.Bookmarks, b.Clone())
	}
	for _, h := range s.history {
		state.History = append(state.History, h.Clone())
	}
	for _, d := range s.downloads {
		state.Downloads = append(state.Downloads, d.Clone())
	}
	if s.tabs.ActiveTabID != "" {
		id := s.tabs.ActiveTabID
		state.ActiveTab = &id
	}
	return state
}

func (s *BrowserStore) document() ([]byte, error) {
	s.mu.RLock()
	state := s.stateLocked()
	s.mu.RUnlock()
	return encode(state)
}

// mutate runs fn under the write lock. When fn reports a change the event
// is emitted and a write is scheduled; otherwise the call is logged as a
// no-op.
func (s *BrowserStore) mutate(ctx context.Context, topic Topic, op string, fn func() (id string, changed bool)) bool {
	var (
		id      string
		changed bool
	)
	func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		id, changed = fn()
	}()

	return commit(ctx, &s.notifier, s.persister, repository.KeyBrowserState, s.document,
		Event{Topic: topic, Op: op, ID: id, At: s.opts.Clock()}, changed)
}

func (s *BrowserStore) now() entity.Millis {
	return entity.MillisFrom(s.opts.Clock())
}

// SidebarOpen reports the sidebar visibility flag.
func (s *BrowserStore) SidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarOpen
}

// ToggleSidebar flips the sidebar visibility flag.
func (s *BrowserStore) ToggleSidebar(ctx context.Context) {
	s.mutate(ctx, TopicUI, "toggle_sidebar", func() (string, bool) {
		s.sidebarOpen = !s.sidebarOpen
		return "sidebar", true
	})
}

// Close stops pending load timers and fires the cancellation signal of
// every running transfer. It does not flush the persister, which may be
// shared with other stores.
func (s *BrowserStore) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for id, t := range s.loadTimers {
		t.Stop()
		delete(s.loadTimers, id)
	}
	cancels := make([]func(), 0, len(s.cancels))
	for id, cancel := range s.cancels {
		cancels = append(cancels, cancel)
		delete(s.cancels, id)
	}
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}
