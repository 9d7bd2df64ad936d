package model

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/bezier/internal/application/usecase"
	"github.com/bnema/bezier/internal/cli/styles"
	"github.com/bnema/bezier/internal/domain/entity"
)

type fakeSources struct {
	tabs      []entity.Tab
	bookmarks []entity.Bookmark
	history   []entity.HistoryEntry
}

func (f fakeSources) Tabs() []entity.Tab             { return f.tabs }
func (f fakeSources) Bookmarks() []entity.Bookmark   { return f.bookmarks }
func (f fakeSources) History() []entity.HistoryEntry { return f.history }

func newPalette(t *testing.T, query string) PaletteModel {
	t.Helper()
	src := fakeSources{
		tabs: []entity.Tab{
			{ID: "t1", Title: "Go Documentation", URL: "https://go.dev/doc"},
			{ID: "t2", Title: "Rust Book", URL: "https://doc.rust-lang.org/book"},
		},
		bookmarks: []entity.Bookmark{
			{ID: "b1", Title: "Go Playground", URL: "https://go.dev/play"},
		},
	}
	uc := usecase.NewSearchCommandsUseCase(src, 0)
	theme := styles.NewTheme(entity.DefaultTheme().Colors)
	return NewPaletteModel(context.Background(), theme, uc, query, 0)
}

func typeRunes(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestPaletteModel_EmptyQueryListsEverything(t *testing.T) {
	m := newPalette(t, "")
	assert.Len(t, m.Results(), 3)
	assert.Equal(t, usecase.CategoryTabs, m.Results()[0].Category)
	assert.Equal(t, usecase.CategoryBookmarks, m.Results()[2].Category)
}

func TestPaletteModel_TypingFilters(t *testing.T) {
	var m tea.Model = newPalette(t, "")
	m = typeRunes(m, "rust")

	pm := m.(PaletteModel)
	require.Len(t, pm.Results(), 1)
	assert.Equal(t, "t2", pm.Results()[0].ID)
}

func TestPaletteModel_EnterSelects(t *testing.T) {
	var m tea.Model = newPalette(t, "rust")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	item, ok := m.(PaletteModel).Selected()
	require.True(t, ok)
	assert.Equal(t, "https://doc.rust-lang.org/book", item.URL)
}

func TestPaletteModel_EscapeCancels(t *testing.T) {
	var m tea.Model = newPalette(t, "")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	_, ok := m.(PaletteModel).Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "Go Documentation")
}

func TestPaletteModel_TabCyclesCategories(t *testing.T) {
	var m tea.Model = newPalette(t, "go")
	require.Len(t, m.(PaletteModel).Results(), 2)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	pm := m.(PaletteModel)
	assert.Equal(t, usecase.CategoryTabs, pm.Category())
	require.Len(t, pm.Results(), 1)
	assert.Equal(t, "t1", pm.Results()[0].ID)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	pm = m.(PaletteModel)
	assert.Equal(t, usecase.CategoryBookmarks, pm.Category())
	require.Len(t, pm.Results(), 1)
	assert.Equal(t, "b1", pm.Results()[0].ID)

	m = typeRunes(m, "x")
	assert.Empty(t, m.(PaletteModel).Results(), "the filter survives a new query")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, usecase.CommandCategory(""), m.(PaletteModel).Category())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, usecase.CategoryHistory, m.(PaletteModel).Category())
}
