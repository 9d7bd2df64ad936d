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

func activeTabs(tabs []entity.Tab) []entity.TabID {
	var ids []entity.TabID
	for _, tab := range tabs {
		if tab.IsActive {
			ids = append(ids, tab.ID)
		}
	}
	return ids
}

func TestBrowserStore_AddTab_ExactlyOneActive(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)

	var last entity.TabID
	for i := range 8 {
		last = s.AddTab(ctx, store.TabSpec{URL: fmt.Sprintf("site%d.com", i)})

		tabs := s.Tabs()
		require.Len(t, tabs, i+1)
		assert.Equal(t, []entity.TabID{last}, activeTabs(tabs))
		assert.Equal(t, last, tabs[len(tabs)-1].ID, "new tabs are appended")
	}

	active, ok := s.ActiveTab()
	require.True(t, ok)
	assert.Equal(t, last, active.ID)
	assert.Equal(t, "https://site7.com", active.URL)
}

func TestBrowserStore_AddTab_Defaults(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)

	id := s.AddTab(ctx, store.TabSpec{Title: "Docs", URL: "go.dev"})
	tab, ok := s.Tab(id)
	require.True(t, ok)

	assert.Equal(t, "Docs", tab.Title)
	assert.Equal(t, "https://go.dev", tab.URL)
	assert.Equal(t, entity.MillisFrom(s.clock.Now()), tab.LastAccessed)
	assert.False(t, tab.Pinned)
	assert.False(t, tab.Muted)
	assert.False(t, tab.Loading)
	assert.False(t, tab.Hibernated)
	assert.Equal(t, store.TopicTabs, s.events.Last().Topic)
	assert.Equal(t, "add", s.events.Last().Op)
}

func TestBrowserStore_AddTab_SanitizesLocation(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)

	id := s.AddTab(ctx, store.TabSpec{URL: "javascript:alert(1)"})
	tab, _ := s.Tab(id)
	assert.Equal(t, "about:blank", tab.URL)
}

func TestBrowserStore_AddTab_LocalHosts(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)

	for input, want := range map[string]string{
		"localhost:3000": "https://localhost:3000",
		"localhost":      "https://localhost",
		"nas:5000/login": "https://nas:5000/login",
	} {
		tab, ok := s.Tab(s.AddTab(ctx, store.TabSpec{URL: input}))
		require.True(t, ok)
		assert.Equal(t, want, tab.URL, input)
	}
}

func TestBrowserStore_CloseTab_Promotion(t *testing.T) {
	tests := []struct {
		name       string
		activate   int
		close      int
		wantActive int // index into the original ids, -1 for none
	}{
		{name: "active middle promotes right neighbour", activate: 1, close: 1, wantActive: 2},
		{name: "active first promotes right neighbour", activate: 0, close: 0, wantActive: 1},
		{name: "active rightmost promotes new last", activate: 3, close: 3, wantActive: 2},
		{name: "inactive close keeps active", activate: 0, close: 2, wantActive: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			s := newTestStore(t)
			ids := make([]entity.TabID, 4)
			for i := range ids {
				ids[i] = s.AddTab(ctx, store.TabSpec{URL: fmt.Sprintf("t%d.com", i)})
			}
			s.SetActiveTab(ctx, ids[tt.activate])

			s.CloseTab(ctx, ids[tt.close])

			tabs := s.Tabs()
			require.Len(t, tabs, 3)
			assert.Equal(t, []entity.TabID{ids[tt.wantActive]}, activeTabs(tabs))
		})
	}
}

func TestBrowserStore_CloseTab_ActiveNeighbourScenario(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)

	a := s.AddTab(ctx, store.TabSpec{URL: "a.com"})
	b := s.AddTab(ctx, store.TabSpec{URL: "b.com"})
	s.CloseTab(ctx, b)

	active, ok := s.ActiveTab()
	require.True(t, ok)
	assert.Equal(t, a, active.ID)
	assert.Equal(t, "https://a.com", active.URL)
}

func TestBrowserStore_CloseTab_OnlyTabLeavesNoneActive(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)

	id := s.AddTab(ctx, store.TabSpec{URL: "a.com"})
	s.CloseTab(ctx, id)

	_, ok := s.ActiveTab()
	assert.False(t, ok)
	assert.Empty(t, s.Tabs())
	assert.Nil(t, s.State().ActiveTab)
}

func TestBrowserStore_CloseTab_RemovesGroupMembership(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)

	g := s.AddTabGroup(ctx, "work", "blue", "")
	id := s.AddTab(ctx, store.TabSpec{URL: "a.com", GroupID: g})
	group, _ := s.Group(g)
	require.Equal(t, []entity.TabID{id}, group.Tabs)

	s.CloseTab(ctx, id)

	group, _ = s.Group(g)
	assert.Empty(t, group.Tabs)
}

func TestBrowserStore_UnknownIDsAreSilentNoOps(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)
	s.AddTab(ctx, store.TabSpec{URL: "a.com"})
	before := s.State()
	events := s.events.Len()

	title := "nope"
	s.CloseTab(ctx, "missing")
	s.UpdateTab(ctx, "missing", store.TabPatch{Title: &title})
	s.SetActiveTab(ctx, "missing")
	s.PinTab(ctx, "missing")
	s.MuteTab(ctx, "missing")
	s.HibernateTab(ctx, "missing")
	s.MoveTab(ctx, "missing", 0)
	s.NavigateTab(ctx, "missing", "example.com")
	s.RemoveTabGroup(ctx, "missing")
	s.MoveTabToGroup(ctx, "missing", "missing")
	s.RemoveHistoryEntry(ctx, "missing")
	s.RemoveBookmark(ctx, "missing")
	s.PauseDownload(ctx, "missing")
	s.CancelDownload(ctx, "missing")

	assert.Equal(t, before, s.State())
	assert.Equal(t, events, s.events.Len(), "no-ops must not notify")
}

func TestBrowserStore_UpdateTab_MergesFields(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)
	id := s.AddTab(ctx, store.TabSpec{Title: "old", URL: "a.com", Notes: "keep"})

	title := "new"
	loc := "vbscript:msgbox"
	pinned := true
	s.UpdateTab(ctx, id, store.TabPatch{Title: &title, URL: &loc, Pinned: &pinned})

	tab, _ := s.Tab(id)
	assert.Equal(t, "new", tab.Title)
	assert.Equal(t, "about:blank", tab.URL)
	assert.True(t, tab.Pinned)
	assert.Equal(t, "keep", tab.Notes)
}

func TestBrowserStore_UpdateTab_GroupIDMovesMembership(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)
	g1 := s.AddTabGroup(ctx, "one", "red", "")
	g2 := s.AddTabGroup(ctx, "two", "green", "")
	id := s.AddTab(ctx, store.TabSpec{URL: "a.com", GroupID: g1})

	s.UpdateTab(ctx, id, store.TabPatch{GroupID: &g2})

	one, _ := s.Group(g1)
	two, _ := s.Group(g2)
	tab, _ := s.Tab(id)
	assert.Empty(t, one.Tabs)
	assert.Equal(t, []entity.TabID{id}, two.Tabs)
	assert.Equal(t, g2, tab.GroupID)
}

func TestBrowserStore_SetActiveTab_StampsLastAccessed(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)
	a := s.AddTab(ctx, store.TabSpec{URL: "a.com"})
	s.AddTab(ctx, store.TabSpec{URL: "b.com"})

	s.clock.Advance(time.Minute)
	s.SetActiveTab(ctx, a)

	tab, _ := s.Tab(a)
	assert.True(t, tab.IsActive)
	assert.Equal(t, entity.MillisFrom(s.clock.Now()), tab.LastAccessed)
	assert.Equal(t, []entity.TabID{a}, activeTabs(s.Tabs()))
}

func TestBrowserStore_Toggles(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)
	id := s.AddTab(ctx, store.TabSpec{URL: "a.com"})

	s.PinTab(ctx, id)
	s.MuteTab(ctx, id)
	s.HibernateTab(ctx, id)
	tab, _ := s.Tab(id)
	assert.True(t, tab.Pinned)
	assert.True(t, tab.Muted)
	assert.True(t, tab.Hibernated)

	s.PinTab(ctx, id)
	s.MuteTab(ctx, id)
	s.HibernateTab(ctx, id)
	tab, _ = s.Tab(id)
	assert.False(t, tab.Pinned)
	assert.False(t, tab.Muted)
	assert.False(t, tab.Hibernated)
}

func TestBrowserStore_MoveTab(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)
	a := s.AddTab(ctx, store.TabSpec{URL: "a.com"})
	b := s.AddTab(ctx, store.TabSpec{URL: "b.com"})
	c := s.AddTab(ctx, store.TabSpec{URL: "c.com"})

	s.MoveTab(ctx, c, 0)
	s.MoveTab(ctx, a, 99)

	var order []entity.TabID
	for _, tab := range s.Tabs() {
		order = append(order, tab.ID)
	}
	assert.Equal(t, []entity.TabID{c, b, a}, order)
	active, _ := s.ActiveTab()
	assert.Equal(t, c, active.ID, "moving does not change activation")
}

func TestBrowserStore_InitializeTabs(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)
	g := s.AddTabGroup(ctx, "kept", "blue", "")

	s.InitializeTabs(ctx, []entity.Tab{
		{ID: "x", URL: "x.com", GroupID: g},
		{ID: "y", URL: "https://y.com", IsActive: true, GroupID: "gone"},
		{URL: "data:text/html,hi"},
	})

	tabs := s.Tabs()
	require.Len(t, tabs, 3)
	assert.Equal(t, []entity.TabID{"y"}, activeTabs(tabs))
	assert.Equal(t, "https://x.com", tabs[0].URL)
	assert.Empty(t, tabs[1].GroupID, "unknown groups are dropped")
	assert.NotEmpty(t, tabs[2].ID)
	assert.Equal(t, "about:blank", tabs[2].URL)

	group, _ := s.Group(g)
	assert.Equal(t, []entity.TabID{"x"}, group.Tabs)
}

func TestBrowserStore_InitializeTabs_FirstActiveByDefault(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)

	s.InitializeTabs(ctx, []entity.Tab{{ID: "x", URL: "x.com"}, {ID: "y", URL: "y.com"}})

	assert.Equal(t, []entity.TabID{"x"}, activeTabs(s.Tabs()))
}

func TestBrowserStore_NavigateTab(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t, func(o *store.Options) { o.LoadDelay = 10 * time.Millisecond })
	id := s.AddTab(ctx, store.TabSpec{URL: "a.com"})
	s.HibernateTab(ctx, id)

	s.NavigateTab(ctx, id, "golang generics")

	tab, _ := s.Tab(id)
	assert.Equal(t, "https://duckduckgo.com/?q=golang+generics", tab.URL)
	assert.True(t, tab.Loading)
	assert.False(t, tab.Hibernated)

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, tab.URL, history[0].URL)

	assert.Eventually(t, func() bool {
		tab, _ := s.Tab(id)
		return !tab.Loading
	}, 2*time.Second, 5*time.Millisecond)
}

func TestBrowserStore_NavigateTab_InternalPagesSkipHistory(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)
	id := s.AddTab(ctx, store.TabSpec{URL: "a.com"})

	s.NavigateTab(ctx, id, "about:settings")

	tab, _ := s.Tab(id)
	assert.Equal(t, "about:settings", tab.URL)
	assert.Empty(t, s.History())
}

func TestBrowserStore_Snapshots_AreDetached(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)
	g := s.AddTabGroup(ctx, "g", "red", "")
	id := s.AddTab(ctx, store.TabSpec{URL: "a.com", GroupID: g})

	group, _ := s.Group(g)
	group.Tabs[0] = "mutated"
	tabs := s.Tabs()
	tabs[0].Title = "mutated"

	group, _ = s.Group(g)
	tab, _ := s.Tab(id)
	assert.Equal(t, []entity.TabID{id}, group.Tabs)
	assert.Empty(t, tab.Title)
}
