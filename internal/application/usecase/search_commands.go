// Package usecase holds the application operations that combine stores
// with external collaborators.
package usecase

import (
	"context"
	"sync"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/domain/search"
	"github.com/bnema/bezier/internal/logging"
)

// CommandCategory names a group of palette results.
type CommandCategory string

const (
	CategoryTabs      CommandCategory = "tabs"
	CategoryBookmarks CommandCategory = "bookmarks"
	CategoryHistory   CommandCategory = "history"
)

// CommandSources provides the collections the palette searches.
type CommandSources interface {
	Tabs() []entity.Tab
	Bookmarks() []entity.Bookmark
	History() []entity.HistoryEntry
}

// CommandItem is one palette entry.
type CommandItem struct {
	Category CommandCategory `json:"category"`
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	URL      string          `json:"url"`
}

// SearchCommandsInput contains search parameters.
type SearchCommandsInput struct {
	Query string
	// Limit caps each category; 0 means no cap.
	Limit int
}

// SearchCommandsOutput contains the matches grouped by category.
type SearchCommandsOutput struct {
	Tabs      []entity.Tab          `json:"tabs"`
	Bookmarks []entity.Bookmark     `json:"bookmarks"`
	History   []entity.HistoryEntry `json:"history"`
}

// Items flattens the output in palette order: tabs, bookmarks, history.
func (o *SearchCommandsOutput) Items() []CommandItem {
	items := make([]CommandItem, 0, len(o.Tabs)+len(o.Bookmarks)+len(o.History))
	for _, t := range o.Tabs {
		items = append(items, CommandItem{Category: CategoryTabs, ID: string(t.ID), Title: t.DisplayTitle(), URL: t.URL})
	}
	for _, b := range o.Bookmarks {
		items = append(items, CommandItem{Category: CategoryBookmarks, ID: string(b.ID), Title: b.Title, URL: b.URL})
	}
	for _, h := range o.History {
		items = append(items, CommandItem{Category: CategoryHistory, ID: string(h.ID), Title: h.Title, URL: h.URL})
	}
	return items
}

// Total returns the number of matches across categories.
func (o *SearchCommandsOutput) Total() int {
	return len(o.Tabs) + len(o.Bookmarks) + len(o.History)
}

// SearchCommandsUseCase is the command palette index: a read-only fuzzy
// view over tabs, bookmarks and history.
type SearchCommandsUseCase struct {
	sources CommandSources
	matcher *search.Matcher

	mu         sync.Mutex
	cache      port.Cache[SearchCommandsInput, *SearchCommandsOutput]
	generation uint64
}

// ChangeFeed publishes store mutations.
type ChangeFeed interface {
	Subscribe(l store.Listener) (unsubscribe func())
}

// CacheResults memoizes outputs in c. Tab, group, bookmark and history events
// from changes empty the cache. Cached outputs are shared between callers
// and must not be modified. The returned func detaches the cache.
func (uc *SearchCommandsUseCase) CacheResults(c port.Cache[SearchCommandsInput, *SearchCommandsOutput], changes ChangeFeed) (detach func()) {
	uc.mu.Lock()
	uc.cache = c
	uc.generation++
	uc.mu.Unlock()

	unsubscribe := changes.Subscribe(func(e store.Event) {
		switch e.Topic {
		case store.TopicTabs, store.TopicGroups, store.TopicBookmarks, store.TopicHistory:
			uc.invalidate()
		}
	})
	return func() {
		unsubscribe()
		uc.mu.Lock()
		uc.cache = nil
		uc.generation++
		uc.mu.Unlock()
	}
}

func (uc *SearchCommandsUseCase) invalidate() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.generation++
	if uc.cache != nil {
		uc.cache.Clear()
	}
}

// cached returns a memoized output and the generation to store under.
func (uc *SearchCommandsUseCase) cached(input SearchCommandsInput) (*SearchCommandsOutput, uint64, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.cache == nil {
		return nil, uc.generation, false
	}
	out, ok := uc.cache.Get(input)
	return out, uc.generation, ok
}

// remember stores out unless the data changed while it was computed.
func (uc *SearchCommandsUseCase) remember(input SearchCommandsInput, out *SearchCommandsOutput, generation uint64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.cache != nil && uc.generation == generation {
		uc.cache.Set(input, out)
	}
}

// NewSearchCommandsUseCase creates the palette search. A non-positive
// threshold selects search.DefaultThreshold.
func NewSearchCommandsUseCase(sources CommandSources, threshold float64) *SearchCommandsUseCase {
	return &SearchCommandsUseCase{
		sources: sources,
		matcher: search.NewMatcher(threshold),
	}
}

// Execute matches the query against every category. An empty query
// returns everything.
func (uc *SearchCommandsUseCase) Execute(ctx context.Context, input SearchCommandsInput) *SearchCommandsOutput {
	out, generation, hit := uc.cached(input)
	if hit {
		logging.FromContext(ctx).Trace().Str("query", input.Query).Msg("command search served from cache")
		return out
	}

	out = &SearchCommandsOutput{
		Tabs: capped(search.Filter(uc.matcher, uc.sources.Tabs(), input.Query, func(t entity.Tab) []string {
			return []string{t.Title, t.URL}
		}), input.Limit),
		Bookmarks: capped(search.Filter(uc.matcher, uc.sources.Bookmarks(), input.Query, func(b entity.Bookmark) []string {
			return append([]string{b.Title, b.URL}, b.Tags...)
		}), input.Limit),
		History: capped(search.Filter(uc.matcher, uc.sources.History(), input.Query, func(h entity.HistoryEntry) []string {
			return []string{h.Title, h.URL}
		}), input.Limit),
	}

	logging.FromContext(ctx).Debug().
		Str("query", input.Query).
		Int("tabs", len(out.Tabs)).
		Int("bookmarks", len(out.Bookmarks)).
		Int("history", len(out.History)).
		Msg("command search completed")

	uc.remember(input, out, generation)
	return out
}

func capped[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
