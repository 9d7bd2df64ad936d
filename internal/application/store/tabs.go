package store

import (
	"context"
	"time"

	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/domain/url"
)

// TabSpec holds the caller-supplied fields of a new tab.
type TabSpec struct {
	Title        string         `json:"title"`
	URL          string         `json:"url"`
	Favicon      string         `json:"favicon,omitempty"`
	GroupID      entity.GroupID `json:"groupId,omitempty"`
	PreviewImage string         `json:"previewImage,omitempty"`
	Private      bool           `json:"private,omitempty"`
	CustomColor  string         `json:"customColor,omitempty"`
	Notes        string         `json:"notes,omitempty"`
}

// TabPatch lists the tab fields an update may change. Nil fields are left
// alone. Activation goes through SetActiveTab, not through a patch.
type TabPatch struct {
	Title        *string         `json:"title,omitempty"`
	URL          *string         `json:"url,omitempty"`
	Favicon      *string         `json:"favicon,omitempty"`
	GroupID      *entity.GroupID `json:"groupId,omitempty"`
	PreviewImage *string         `json:"previewImage,omitempty"`
	Pinned       *bool           `json:"pinned,omitempty"`
	Muted        *bool           `json:"muted,omitempty"`
	Loading      *bool           `json:"loading,omitempty"`
	Private      *bool           `json:"private,omitempty"`
	Hibernated   *bool           `json:"hibernated,omitempty"`
	CustomColor  *string         `json:"customColor,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
}

// Tabs returns the tabs in tab-bar order.
func (s *BrowserStore) Tabs() []entity.Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tabs.Snapshot()
}

// Tab returns a copy of one tab.
func (s *BrowserStore) Tab(id entity.TabID) (entity.Tab, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if tab := s.tabs.Find(id); tab != nil {
		return *tab, true
	}
	return entity.Tab{}, false
}

// ActiveTab returns a copy of the active tab, if there is one.
func (s *BrowserStore) ActiveTab() (entity.Tab, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if tab := s.tabs.ActiveTab(); tab != nil {
		return *tab, true
	}
	return entity.Tab{}, false
}

// AddTab appends a new tab and makes it the active one. Unsafe locations
// are replaced by about:blank.
func (s *BrowserStore) AddTab(ctx context.Context, spec TabSpec) entity.TabID {
	id := entity.TabID(s.opts.IDs())
	s.mutate(ctx, TopicTabs, "add", func() (string, bool) {
		tab := &entity.Tab{
			ID:           id,
			Title:        spec.Title,
			URL:          url.Sanitize(url.Normalize(spec.URL)),
			Favicon:      spec.Favicon,
			PreviewImage: spec.PreviewImage,
			LastAccessed: s.now(),
			Private:      spec.Private,
			CustomColor:  spec.CustomColor,
			Notes:        spec.Notes,
		}
		s.tabs.Add(tab)
		if spec.GroupID != "" {
			s.assignGroup(tab, spec.GroupID)
		}
		return string(id), true
	})
	return id
}

// CloseTab removes a tab. If it was active, the tab that slides into its
// position becomes active, or the new last tab when it was rightmost.
func (s *BrowserStore) CloseTab(ctx context.Context, id entity.TabID) {
	s.mutate(ctx, TopicTabs, "close", func() (string, bool) {
		if !s.tabs.Remove(id) {
			return string(id), false
		}
		for _, g := range s.groups {
			g.RemoveTab(id)
		}
		if t, ok := s.loadTimers[id]; ok {
			t.Stop()
			delete(s.loadTimers, id)
		}
		return string(id), true
	})
}

// UpdateTab merges patch into a tab.
func (s *BrowserStore) UpdateTab(ctx context.Context, id entity.TabID, patch TabPatch) {
	s.mutate(ctx, TopicTabs, "update", func() (string, bool) {
		tab := s.tabs.Find(id)
		if tab == nil {
			return string(id), false
		}
		applyString(&tab.Title, patch.Title)
		if patch.URL != nil {
			tab.URL = url.Sanitize(url.Normalize(*patch.URL))
		}
		applyString(&tab.Favicon, patch.Favicon)
		applyString(&tab.PreviewImage, patch.PreviewImage)
		applyBool(&tab.Pinned, patch.Pinned)
		applyBool(&tab.Muted, patch.Muted)
		applyBool(&tab.Loading, patch.Loading)
		applyBool(&tab.Private, patch.Private)
		applyBool(&tab.Hibernated, patch.Hibernated)
		applyString(&tab.CustomColor, patch.CustomColor)
		applyString(&tab.Notes, patch.Notes)
		if patch.GroupID != nil {
			s.assignGroup(tab, *patch.GroupID)
		}
		return string(id), true
	})
}

// SetActiveTab activates a tab and stamps its last-accessed time.
func (s *BrowserStore) SetActiveTab(ctx context.Context, id entity.TabID) {
	s.mutate(ctx, TopicTabs, "activate", func() (string, bool) {
		if !s.tabs.Activate(id) {
			return string(id), false
		}
		s.tabs.Find(id).LastAccessed = s.now()
		return string(id), true
	})
}

// PinTab toggles the pinned flag.
func (s *BrowserStore) PinTab(ctx context.Context, id entity.TabID) {
	s.toggleTab(ctx, "pin", id, func(t *entity.Tab) { t.Pinned = !t.Pinned })
}

// MuteTab toggles the muted flag.
func (s *BrowserStore) MuteTab(ctx context.Context, id entity.TabID) {
	s.toggleTab(ctx, "mute", id, func(t *entity.Tab) { t.Muted = !t.Muted })
}

// HibernateTab toggles the hibernated flag.
func (s *BrowserStore) HibernateTab(ctx context.Context, id entity.TabID) {
	s.toggleTab(ctx, "hibernate", id, func(t *entity.Tab) { t.Hibernated = !t.Hibernated })
}

func (s *BrowserStore) toggleTab(ctx context.Context, op string, id entity.TabID, fn func(*entity.Tab)) {
	s.mutate(ctx, TopicTabs, op, func() (string, bool) {
		tab := s.tabs.Find(id)
		if tab == nil {
			return string(id), false
		}
		fn(tab)
		return string(id), true
	})
}

// MoveTab reorders a tab within the tab bar.
func (s *BrowserStore) MoveTab(ctx context.Context, id entity.TabID, index int) {
	s.mutate(ctx, TopicTabs, "move", func() (string, bool) {
		return string(id), s.tabs.Move(id, index)
	})
}

// InitializeTabs replaces the whole tab collection, as when restoring or
// importing a session. Group references to unknown groups are dropped.
func (s *BrowserStore) InitializeTabs(ctx context.Context, tabs []entity.Tab) {
	s.mutate(ctx, TopicTabs, "initialize", func() (string, bool) {
		list := make([]*entity.Tab, 0, len(tabs))
		for i := range tabs {
			tab := tabs[i]
			if tab.ID == "" {
				tab.ID = entity.TabID(s.opts.IDs())
			}
			tab.URL = url.Sanitize(url.Normalize(tab.URL))
			if tab.LastAccessed.IsZero() {
				tab.LastAccessed = s.now()
			}
			list = append(list, &tab)
		}
		s.tabs.Replace(list)
		s.repairMembership()
		return "", true
	})
}

// NavigateTab points a tab at new address-bar input, records the visit in
// history and marks the tab loading until the simulated load finishes.
func (s *BrowserStore) NavigateTab(ctx context.Context, id entity.TabID, input string) {
	var location string
	changed := s.mutate(ctx, TopicTabs, "navigate", func() (string, bool) {
		tab := s.tabs.Find(id)
		if tab == nil || s.closed {
			return string(id), false
		}
		location = url.Resolve(input, s.opts.SearchTemplate)
		tab.URL = location
		tab.Loading = true
		tab.Hibernated = false
		tab.LastAccessed = s.now()

		if t, ok := s.loadTimers[id]; ok {
			t.Stop()
		}
		s.loadTimers[id] = time.AfterFunc(s.opts.LoadDelay, func() {
			s.finishLoading(context.WithoutCancel(ctx), id)
		})
		return string(id), true
	})
	if changed && !url.IsInternal(location) {
		s.AddHistoryEntry(ctx, VisitInfo{Title: location, URL: location})
	}
}

func (s *BrowserStore) finishLoading(ctx context.Context, id entity.TabID) {
	s.mutate(ctx, TopicTabs, "loaded", func() (string, bool) {
		delete(s.loadTimers, id)
		tab := s.tabs.Find(id)
		if tab == nil || !tab.Loading {
			return string(id), false
		}
		tab.Loading = false
		return string(id), true
	})
}

// assignGroup moves tab into group gid, or out of every group when gid is
// empty. Unknown groups leave membership untouched. Must hold s.mu.
func (s *BrowserStore) assignGroup(tab *entity.Tab, gid entity.GroupID) bool {
	var target *entity.TabGroup
	if gid != "" {
		target = s.findGroup(gid)
		if target == nil {
			return false
		}
	}
	for _, g := range s.groups {
		if g != target {
			g.RemoveTab(tab.ID)
		}
	}
	if target != nil {
		target.AddTab(tab.ID)
	}
	tab.GroupID = gid
	return true
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func applyBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
