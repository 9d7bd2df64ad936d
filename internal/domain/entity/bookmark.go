package entity

import "slices"

// BookmarkID uniquely identifies a bookmark.
type BookmarkID string

// Bookmark is a saved location with folder and tag metadata.
type Bookmark struct {
	ID          BookmarkID `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Favicon     string     `json:"favicon,omitempty"`
	FolderID    string     `json:"folderId,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   Millis     `json:"createdAt"`
	LastVisited Millis     `json:"lastVisited,omitempty"`
	CustomIcon  string     `json:"customIcon,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// HasTag reports whether the bookmark carries the tag.
func (b *Bookmark) HasTag(tag string) bool {
	return slices.Contains(b.Tags, tag)
}

// Clone returns a copy that does not share the tag slice.
func (b *Bookmark) Clone() Bookmark {
	c := *b
	c.Tags = slices.Clone(b.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c
}
