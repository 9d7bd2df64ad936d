package entity

// TabID uniquely identifies a tab.
type TabID string

// Tab represents a browser tab in the tab bar.
type Tab struct {
	ID           TabID   `json:"id"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	Favicon      string  `json:"favicon,omitempty"`
	IsActive     bool    `json:"isActive"`
	GroupID      GroupID `json:"groupId,omitempty"`
	PreviewImage string  `json:"previewImage,omitempty"`
	LastAccessed Millis  `json:"lastAccessed"`
	Pinned       bool    `json:"pinned"`
	Muted        bool    `json:"muted"`
	Loading      bool    `json:"loading"`
	Private      bool    `json:"private"`
	Hibernated   bool    `json:"hibernated"`
	CustomColor  string  `json:"customColor,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// DisplayTitle returns the title, falling back to URL or "New Tab".
func (t *Tab) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.URL != "" {
		return t.URL
	}
	return "New Tab"
}

// TabList manages an ordered collection of tabs.
// ActiveTabID is the single source of truth for activation; the per-tab
// IsActive flag is recomputed from it after every mutation.
type TabList struct {
	Tabs        []*Tab
	ActiveTabID TabID
}

// NewTabList creates an empty tab list.
func NewTabList() *TabList {
	return &TabList{
		Tabs: make([]*Tab, 0),
	}
}

// Add appends a tab to the end of the list and makes it the active tab.
func (tl *TabList) Add(tab *Tab) {
	tl.Tabs = append(tl.Tabs, tab)
	tl.ActiveTabID = tab.ID
	tl.syncActive()
}

// Remove removes a tab by ID.
// When the removed tab was active, the tab now occupying its former index
// becomes active, clamped to the last tab. Removing the last remaining tab
// leaves no active tab.
func (tl *TabList) Remove(id TabID) bool {
	i := tl.Index(id)
	if i < 0 {
		return false
	}

	tl.Tabs = append(tl.Tabs[:i], tl.Tabs[i+1:]...)

	if tl.ActiveTabID == id {
		tl.ActiveTabID = ""
		if len(tl.Tabs) > 0 {
			tl.ActiveTabID = tl.Tabs[min(i, len(tl.Tabs)-1)].ID
		}
	}
	tl.syncActive()
	return true
}

// Activate makes the tab with the given ID the active one.
func (tl *TabList) Activate(id TabID) bool {
	if tl.Find(id) == nil {
		return false
	}
	tl.ActiveTabID = id
	tl.syncActive()
	return true
}

// Replace swaps the whole collection.
// The first tab flagged active wins; otherwise the first tab is activated.
func (tl *TabList) Replace(tabs []*Tab) {
	tl.Tabs = make([]*Tab, 0, len(tabs))
	tl.ActiveTabID = ""
	for _, tab := range tabs {
		if tab == nil {
			continue
		}
		if tab.IsActive && tl.ActiveTabID == "" {
			tl.ActiveTabID = tab.ID
		}
		tl.Tabs = append(tl.Tabs, tab)
	}
	if tl.ActiveTabID == "" && len(tl.Tabs) > 0 {
		tl.ActiveTabID = tl.Tabs[0].ID
	}
	tl.syncActive()
}

// Index returns the position of a tab, or -1.
func (tl *TabList) Index(id TabID) int {
	for i, tab := range tl.Tabs {
		if tab.ID == id {
			return i
		}
	}
	return -1
}

// Find returns a tab by ID.
func (tl *TabList) Find(id TabID) *Tab {
	if i := tl.Index(id); i >= 0 {
		return tl.Tabs[i]
	}
	return nil
}

// ActiveTab returns the currently active tab.
func (tl *TabList) ActiveTab() *Tab {
	return tl.Find(tl.ActiveTabID)
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	return len(tl.Tabs)
}

// Move moves a tab to a new position, clamping out-of-range targets.
func (tl *TabList) Move(id TabID, newPos int) bool {
	oldPos := tl.Index(id)
	if oldPos < 0 {
		return false
	}
	newPos = max(0, min(newPos, len(tl.Tabs)-1))
	if newPos == oldPos {
		return true
	}
	tab := tl.Tabs[oldPos]
	tl.Tabs = append(tl.Tabs[:oldPos], tl.Tabs[oldPos+1:]...)
	tl.Tabs = append(tl.Tabs[:newPos], append([]*Tab{tab}, tl.Tabs[newPos:]...)...)
	return true
}

// Snapshot returns deep copies of the tabs in order.
func (tl *TabList) Snapshot() []Tab {
	out := make([]Tab, len(tl.Tabs))
	for i, tab := range tl.Tabs {
		out[i] = *tab
	}
	return out
}

func (tl *TabList) syncActive() {
	for _, tab := range tl.Tabs {
		tab.IsActive = tab.ID == tl.ActiveTabID
	}
}
