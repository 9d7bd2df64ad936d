package store

import (
	"context"

	"github.com/bnema/bezier/internal/domain/entity"
)

// GroupPatch lists the group fields an update may change. Membership is
// changed through MoveTabToGroup and RemoveTabFromGroup only.
type GroupPatch struct {
	Name       *string             `json:"name,omitempty"`
	Color      *string             `json:"color,omitempty"`
	Collapsed  *bool               `json:"collapsed,omitempty"`
	Layout     *entity.GroupLayout `json:"layout,omitempty"`
	CustomIcon *string             `json:"customIcon,omitempty"`
}

// Groups returns the tab groups in creation order.
func (s *BrowserStore) Groups() []entity.TabGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.TabGroup, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g.Clone())
	}
	return out
}

// Group returns a copy of one group.
func (s *BrowserStore) Group(id entity.GroupID) (entity.TabGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g := s.findGroup(id); g != nil {
		return g.Clone(), true
	}
	return entity.TabGroup{}, false
}

// AddTabGroup creates an empty group. An empty layout means vertical.
func (s *BrowserStore) AddTabGroup(ctx context.Context, name, color string, layout entity.GroupLayout) entity.GroupID {
	if layout == "" {
		layout = entity.DefaultGroupLayout
	}
	id := entity.GroupID(s.opts.IDs())
	s.mutate(ctx, TopicGroups, "add", func() (string, bool) {
		s.groups = append(s.groups, &entity.TabGroup{
			ID:        id,
			Name:      name,
			Color:     color,
			Tabs:      []entity.TabID{},
			Layout:    layout,
			CreatedAt: s.now(),
		})
		return string(id), true
	})
	return id
}

// RemoveTabGroup deletes a group and ungroups its former members.
func (s *BrowserStore) RemoveTabGroup(ctx context.Context, id entity.GroupID) {
	s.mutate(ctx, TopicGroups, "remove", func() (string, bool) {
		idx := s.groupIndex(id)
		if idx < 0 {
			return string(id), false
		}
		s.groups = append(s.groups[:idx], s.groups[idx+1:]...)
		for _, tab := range s.tabs.Tabs {
			if tab.GroupID == id {
				tab.GroupID = ""
			}
		}
		return string(id), true
	})
}

// MoveTabToGroup takes a tab out of any other group and appends it to the
// target group.
func (s *BrowserStore) MoveTabToGroup(ctx context.Context, tabID entity.TabID, groupID entity.GroupID) {
	s.mutate(ctx, TopicGroups, "move_tab", func() (string, bool) {
		tab := s.tabs.Find(tabID)
		if tab == nil || groupID == "" {
			return string(tabID), false
		}
		return string(groupID), s.assignGroup(tab, groupID)
	})
}

// RemoveTabFromGroup ungroups a tab.
func (s *BrowserStore) RemoveTabFromGroup(ctx context.Context, tabID entity.TabID) {
	s.mutate(ctx, TopicGroups, "ungroup_tab", func() (string, bool) {
		tab := s.tabs.Find(tabID)
		if tab == nil || tab.GroupID == "" {
			return string(tabID), false
		}
		return string(tabID), s.assignGroup(tab, "")
	})
}

// UpdateTabGroup merges patch into a group. An unknown layout is ignored.
func (s *BrowserStore) UpdateTabGroup(ctx context.Context, id entity.GroupID, patch GroupPatch) {
	s.mutate(ctx, TopicGroups, "update", func() (string, bool) {
		g := s.findGroup(id)
		if g == nil {
			return string(id), false
		}
		applyString(&g.Name, patch.Name)
		applyString(&g.Color, patch.Color)
		applyBool(&g.Collapsed, patch.Collapsed)
		applyString(&g.CustomIcon, patch.CustomIcon)
		if patch.Layout != nil {
			if layout, err := entity.ParseGroupLayout(string(*patch.Layout)); err == nil {
				g.Layout = layout
			}
		}
		return string(id), true
	})
}

func (s *BrowserStore) findGroup(id entity.GroupID) *entity.TabGroup {
	if idx := s.groupIndex(id); idx >= 0 {
		return s.groups[idx]
	}
	return nil
}

func (s *BrowserStore) groupIndex(id entity.GroupID) int {
	for i, g := range s.groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}
