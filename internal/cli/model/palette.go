// Package model holds the Bubble Tea models behind interactive commands.
package model

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/bezier/internal/application/usecase"
	"github.com/bnema/bezier/internal/cli/styles"
)

// categoryCycle is the order tab steps through; the empty category shows
// every result.
var categoryCycle = []usecase.CommandCategory{
	"",
	usecase.CategoryTabs,
	usecase.CategoryBookmarks,
	usecase.CategoryHistory,
}

// Searcher runs a palette query.
type Searcher interface {
	Execute(ctx context.Context, input usecase.SearchCommandsInput) *usecase.SearchCommandsOutput
}

// PaletteModel is the interactive command palette.
type PaletteModel struct {
	list   list.Model
	search textinput.Model
	help   help.Model
	keys   styles.PaletteKeyMap

	results  []usecase.CommandItem
	items    []usecase.CommandItem
	category usecase.CommandCategory
	query    string
	selected *usecase.CommandItem
	limit    int
	width    int
	height   int

	ctx      context.Context
	searcher Searcher
	theme    *styles.Theme
}

// NewPaletteModel creates a palette seeded with the initial query. Each
// category shows at most limit results; 0 means no cap.
func NewPaletteModel(ctx context.Context, theme *styles.Theme, searcher Searcher, query string, limit int) PaletteModel {
	m := PaletteModel{
		search:   styles.NewPaletteInput(theme, query),
		help:     styles.NewStyledHelp(theme),
		keys:     styles.DefaultPaletteKeyMap(),
		query:    query,
		limit:    limit,
		width:    80,
		height:   24,
		ctx:      ctx,
		searcher: searcher,
		theme:    theme,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m PaletteModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m PaletteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildList()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Open):
			if item, ok := m.list.SelectedItem().(styles.CommandItem); ok {
				picked := item.CommandItem
				m.selected = &picked
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextCategory):
			m.cycleCategory(1)

		case key.Matches(msg, m.keys.PrevCategory):
			m.cycleCategory(-1)

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			cmds = append(cmds, cmd)

		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)

			if m.search.Value() != m.query {
				m.query = m.search.Value()
				m.refresh()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// refresh reruns the search for the current query.
func (m *PaletteModel) refresh() {
	out := m.searcher.Execute(m.ctx, usecase.SearchCommandsInput{Query: m.query, Limit: m.limit})
	m.results = out.Items()
	m.applyCategory()
}

func (m *PaletteModel) cycleCategory(step int) {
	i := 0
	for j, c := range categoryCycle {
		if c == m.category {
			i = j
			break
		}
	}
	n := len(categoryCycle)
	m.category = categoryCycle[((i+step)%n+n)%n]
	m.applyCategory()
}

func (m *PaletteModel) applyCategory() {
	if m.category == "" {
		m.items = m.results
	} else {
		m.items = make([]usecase.CommandItem, 0, len(m.results))
		for _, it := range m.results {
			if it.Category == m.category {
				m.items = append(m.items, it)
			}
		}
	}
	m.rebuildList()
}

func (m *PaletteModel) rebuildList() {
	listHeight := max(m.height-6, 5)
	m.list = styles.NewCommandList(m.theme, m.items, m.width, listHeight)
}

// View implements tea.Model.
func (m PaletteModel) View() string {
	t := m.theme

	body := m.list.View()
	if len(m.items) == 0 {
		body = t.Subtle.Render("  No matches")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		t.InputFocused.Render(m.search.View()),
		m.categoryBar(),
		body,
		"",
		m.help.View(m.keys),
	)
}

func (m PaletteModel) categoryBar() string {
	chips := make([]string, 0, len(categoryCycle))
	for _, c := range categoryCycle {
		label := string(c)
		if c == "" {
			label = "all"
		}
		style := m.theme.InactiveCategory
		if c == m.category {
			style = m.theme.ActiveCategory
		}
		chips = append(chips, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

// Selected returns the item the user picked, if any.
func (m PaletteModel) Selected() (usecase.CommandItem, bool) {
	if m.selected == nil {
		return usecase.CommandItem{}, false
	}
	return *m.selected, true
}

// Category returns the active category filter; empty means all.
func (m PaletteModel) Category() usecase.CommandCategory {
	return m.category
}

// Results returns the items currently listed.
func (m PaletteModel) Results() []usecase.CommandItem {
	return m.items
}

var _ tea.Model = PaletteModel{}
