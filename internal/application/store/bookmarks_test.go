package store_test

import (
	"testing"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserStore_Bookmarks(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)

	plain := s.AddBookmark(ctx, store.BookmarkSpec{Title: "Go", URL: "go.dev"})
	tagged := s.AddBookmark(ctx, store.BookmarkSpec{
		Title:    "Chi",
		URL:      "https://go-chi.io",
		FolderID: "dev",
		Tags:     []string{"router", "http"},
	})

	all := s.Bookmarks()
	require.Len(t, all, 2)
	assert.Equal(t, plain, all[0].ID)
	assert.NotNil(t, all[0].Tags, "tags default to an empty set")
	assert.Empty(t, all[0].Tags)
	assert.Equal(t, "https://go.dev", all[0].URL)
	assert.Equal(t, entity.MillisFrom(s.clock.Now()), all[0].CreatedAt)

	byTag := s.BookmarksByTag("http")
	require.Len(t, byTag, 1)
	assert.Equal(t, tagged, byTag[0].ID)

	inFolder := s.BookmarksInFolder("dev")
	require.Len(t, inFolder, 1)
	assert.Equal(t, tagged, inFolder[0].ID)
	assert.Len(t, s.BookmarksInFolder(""), 1)
}

func TestBrowserStore_UpdateAndRemoveBookmark(t *testing.T) {
	ctx := testContext()
	s := newTestStore(t)
	id := s.AddBookmark(ctx, store.BookmarkSpec{Title: "Go", URL: "go.dev", Tags: []string{"lang"}})

	title := "The Go Programming Language"
	var noTags []string
	visited := entity.Millis(1700000000000)
	s.UpdateBookmark(ctx, id, store.BookmarkPatch{Title: &title, Tags: &noTags, LastVisited: &visited})

	b := s.Bookmarks()[0]
	assert.Equal(t, title, b.Title)
	assert.Equal(t, []string{}, b.Tags)
	assert.Equal(t, visited, b.LastVisited)

	s.RemoveBookmark(ctx, id)
	assert.Empty(t, s.Bookmarks())
}
