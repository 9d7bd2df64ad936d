package store

import (
	"context"
	"slices"

	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/domain/url"
)

// BookmarkSpec holds the caller-supplied fields of a new bookmark.
type BookmarkSpec struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Favicon    string   `json:"favicon,omitempty"`
	FolderID   string   `json:"folderId,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	CustomIcon string   `json:"customIcon,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// BookmarkPatch lists the bookmark fields an update may change.
type BookmarkPatch struct {
	Title       *string        `json:"title,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Favicon     *string        `json:"favicon,omitempty"`
	FolderID    *string        `json:"folderId,omitempty"`
	Tags        *[]string      `json:"tags,omitempty"`
	LastVisited *entity.Millis `json:"lastVisited,omitempty"`
	CustomIcon  *string        `json:"customIcon,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
}

// Bookmarks returns every bookmark in insertion order.
func (s *BrowserStore) Bookmarks() []entity.Bookmark {
	return s.filterBookmarks(func(*entity.Bookmark) bool { return true })
}

// BookmarksByTag returns the bookmarks carrying tag.
func (s *BrowserStore) BookmarksByTag(tag string) []entity.Bookmark {
	return s.filterBookmarks(func(b *entity.Bookmark) bool { return b.HasTag(tag) })
}

// BookmarksInFolder returns the bookmarks filed under folder. An empty
// folder selects unfiled bookmarks.
func (s *BrowserStore) BookmarksInFolder(folder string) []entity.Bookmark {
	return s.filterBookmarks(func(b *entity.Bookmark) bool { return b.FolderID == folder })
}

func (s *BrowserStore) filterBookmarks(keep func(*entity.Bookmark) bool) []entity.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		if keep(b) {
			out = append(out, b.Clone())
		}
	}
	return out
}

// AddBookmark saves a location. Tags default to an empty set.
func (s *BrowserStore) AddBookmark(ctx context.Context, spec BookmarkSpec) entity.BookmarkID {
	id := entity.BookmarkID(s.opts.IDs())
	s.mutate(ctx, TopicBookmarks, "add", func() (string, bool) {
		tags := slices.Clone(spec.Tags)
		if tags == nil {
			tags = []string{}
		}
		s.bookmarks = append(s.bookmarks, &entity.Bookmark{
			ID:         id,
			Title:      spec.Title,
			URL:        url.Sanitize(url.Normalize(spec.URL)),
			Favicon:    spec.Favicon,
			FolderID:   spec.FolderID,
			Tags:       tags,
			CreatedAt:  s.now(),
			CustomIcon: spec.CustomIcon,
			Notes:      spec.Notes,
		})
		return string(id), true
	})
	return id
}

// UpdateBookmark merges patch into a bookmark.
func (s *BrowserStore) UpdateBookmark(ctx context.Context, id entity.BookmarkID, patch BookmarkPatch) {
	s.mutate(ctx, TopicBookmarks, "update", func() (string, bool) {
		idx := s.bookmarkIndex(id)
		if idx < 0 {
			return string(id), false
		}
		b := s.bookmarks[idx]
		applyString(&b.Title, patch.Title)
		if patch.URL != nil {
			b.URL = url.Sanitize(url.Normalize(*patch.URL))
		}
		applyString(&b.Favicon, patch.Favicon)
		applyString(&b.FolderID, patch.FolderID)
		if patch.Tags != nil {
			b.Tags = slices.Clone(*patch.Tags)
			if b.Tags == nil {
				b.Tags = []string{}
			}
		}
		if patch.LastVisited != nil {
			b.LastVisited = *patch.LastVisited
		}
		applyString(&b.CustomIcon, patch.CustomIcon)
		applyString(&b.Notes, patch.Notes)
		return string(id), true
	})
}

// RemoveBookmark deletes a bookmark.
func (s *BrowserStore) RemoveBookmark(ctx context.Context, id entity.BookmarkID) {
	s.mutate(ctx, TopicBookmarks, "remove", func() (string, bool) {
		idx := s.bookmarkIndex(id)
		if idx < 0 {
			return string(id), false
		}
		s.bookmarks = slices.Delete(s.bookmarks, idx, idx+1)
		return string(id), true
	})
}

func (s *BrowserStore) bookmarkIndex(id entity.BookmarkID) int {
	return slices.IndexFunc(s.bookmarks, func(b *entity.Bookmark) bool { return b.ID == id })
}
