package entity

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// GroupID uniquely identifies a tab group.
type GroupID string

// GroupLayout controls how a group's tabs are arranged.
type GroupLayout string

const (
	GroupLayoutGrid       GroupLayout = "grid"
	GroupLayoutVertical   GroupLayout = "vertical"
	GroupLayoutHorizontal GroupLayout = "horizontal"
)

// DefaultGroupLayout is applied when a group is created without a layout.
const DefaultGroupLayout = GroupLayoutVertical

// ErrInvalidLayout is returned when a layout name is not recognized.
var ErrInvalidLayout = errors.New("invalid group layout")

// ParseGroupLayout converts user input into a GroupLayout.
// An empty string yields DefaultGroupLayout.
func ParseGroupLayout(s string) (GroupLayout, error) {
	switch GroupLayout(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultGroupLayout, nil
	case GroupLayoutGrid:
		return GroupLayoutGrid, nil
	case GroupLayoutVertical:
		return GroupLayoutVertical, nil
	case GroupLayoutHorizontal:
		return GroupLayoutHorizontal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLayout, s)
	}
}

// TabGroup is a user-defined named cluster of tabs.
type TabGroup struct {
	ID         GroupID     `json:"id"`
	Name       string      `json:"name"`
	Color      string      `json:"color"`
	Tabs       []TabID     `json:"tabs"`
	Collapsed  bool        `json:"collapsed"`
	Layout     GroupLayout `json:"layout"`
	CustomIcon string      `json:"customIcon,omitempty"`
	CreatedAt  Millis      `json:"createdAt"`
}

// Contains reports whether the tab is a member of the group.
func (g *TabGroup) Contains(id TabID) bool {
	return slices.Contains(g.Tabs, id)
}

// AddTab appends a member, ignoring duplicates.
func (g *TabGroup) AddTab(id TabID) {
	if g.Contains(id) {
		return
	}
	g.Tabs = append(g.Tabs, id)
}

// RemoveTab drops a member and reports whether it was present.
func (g *TabGroup) RemoveTab(id TabID) bool {
	before := len(g.Tabs)
	g.Tabs = slices.DeleteFunc(g.Tabs, func(t TabID) bool { return t == id })
	return len(g.Tabs) != before
}

// Clone returns a copy that does not share the member slice.
func (g *TabGroup) Clone() TabGroup {
	c := *g
	c.Tabs = slices.Clone(g.Tabs)
	if c.Tabs == nil {
		c.Tabs = []TabID{}
	}
	return c
}
