package styles

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/bezier/internal/application/usecase"
)

const (
	cursorSelected = "> "
	cursorEmpty    = "  "
	minItemWidth   = 20
)

// CommandItem adapts a palette result to list.Item.
type CommandItem struct {
	usecase.CommandItem
}

// FilterValue implements list.Item.
func (i CommandItem) FilterValue() string {
	return i.Title + " " + i.URL
}

// CommandDelegate renders palette results with their category badge.
type CommandDelegate struct {
	Theme *Theme
}

// Height returns the height of each item.
func (d CommandDelegate) Height() int { return 2 }

// Spacing returns the spacing between items.
func (d CommandDelegate) Spacing() int { return 0 }

// Update handles item-level events.
func (d CommandDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders a single list item.
func (d CommandDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(CommandItem)
	if !ok {
		return
	}

	t := d.Theme
	badge := t.MutedBadge(string(ci.Category))
	room := max(m.Width()-len(cursorEmpty), minItemWidth)

	title := ci.Title
	if title == "" {
		title = ci.URL
	}
	title = Truncate(title, room)

	cursor := cursorEmpty
	titleStyle := t.ListItemTitle
	urlStyle := t.ListItemDesc
	if index == m.Index() {
		cursor = cursorSelected
		titleStyle = titleStyle.Foreground(t.Accent).Bold(true)
		urlStyle = urlStyle.Foreground(t.Text)
	}

	line1 := lipgloss.JoinHorizontal(
		lipgloss.Left,
		t.Highlight.Render(cursor),
		titleStyle.Render(title),
	)
	line2 := lipgloss.JoinHorizontal(
		lipgloss.Left,
		strings.Repeat(" ", len(cursorEmpty)),
		badge,
		" ",
		urlStyle.Render(Truncate(ci.URL, max(room-lipgloss.Width(badge)-1, minItemWidth))),
	)

	_, _ = fmt.Fprintf(w, "%s\n%s", line1, line2)
}

// NewCommandList creates a themed list of palette results.
func NewCommandList(theme *Theme, items []usecase.CommandItem, width, height int) list.Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = CommandItem{item}
	}

	l := list.New(listItems, CommandDelegate{Theme: theme}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)

	l.Styles.PaginationStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	l.Styles.ActivePaginationDot = lipgloss.NewStyle().Foreground(theme.Accent)
	l.Styles.InactivePaginationDot = lipgloss.NewStyle().Foreground(theme.Muted)

	return l
}
