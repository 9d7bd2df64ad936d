package store_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserStore_AddHistoryEntry_RepeatVisit(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)

	first := s.AddHistoryEntry(ctx, store.VisitInfo{Title: "Go", URL: "https://go.dev", Duration: 1000})
	s.clock.Advance(time.Hour)
	second := s.AddHistoryEntry(ctx, store.VisitInfo{URL: "https://go.dev", Duration: 500})

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(2), history[0].VisitCount)
	assert.Equal(t, int64(1500), history[0].Duration)
	assert.Equal(t, "Go", history[0].Title, "an empty title keeps the previous one")
	assert.Equal(t, entity.MillisFrom(s.clock.Now()), history[0].Timestamp)
}

func TestBrowserStore_AddHistoryEntry_MostRecentFirst(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)

	s.AddHistoryEntry(ctx, store.VisitInfo{URL: "a.com"})
	s.AddHistoryEntry(ctx, store.VisitInfo{URL: "b.com"})
	s.AddHistoryEntry(ctx, store.VisitInfo{URL: "c.com"})
	s.AddHistoryEntry(ctx, store.VisitInfo{URL: "a.com"})

	var urls []string
	for _, h := range s.History() {
		urls = append(urls, h.URL)
	}
	assert.Equal(t, []string{"https://a.com", "https://c.com", "https://b.com"}, urls)
}

func TestBrowserStore_AddHistoryEntry_Retention(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t, func(o *store.Options) { o.MaxHistoryEntries = 3 })

	for i := range 5 {
		s.AddHistoryEntry(ctx, store.VisitInfo{URL: fmt.Sprintf("https://site%d.com", i)})
	}

	history := s.History()
	require.Len(t, history, 3)
	assert.Equal(t, "https://site4.com", history[0].URL)
	assert.Equal(t, "https://site2.com", history[2].URL)
}

func TestBrowserStore_RemoveAndClearHistory(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)
	a := s.AddHistoryEntry(ctx, store.VisitInfo{URL: "a.com"})
	s.AddHistoryEntry(ctx, store.VisitInfo{URL: "b.com"})

	s.RemoveHistoryEntry(ctx, a)
	require.Len(t, s.History(), 1)
	assert.Equal(t, "https://b.com", s.History()[0].URL)

	s.ClearHistory(ctx)
	assert.Empty(t, s.History())

	events := s.events.Len()
	s.ClearHistory(ctx)
	assert.Equal(t, events, s.events.Len(), "clearing an empty log is a no-op")
}
