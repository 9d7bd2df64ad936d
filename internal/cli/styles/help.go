package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledHelp creates a help bar in the theme's accent and muted slots.
func NewStyledHelp(theme *Theme) help.Model {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	sepStyle := lipgloss.NewStyle().Foreground(theme.Border)

	h := help.New()
	h.ShortSeparator = " · "
	h.Styles.ShortKey, h.Styles.FullKey = keyStyle, keyStyle
	h.Styles.ShortSeparator, h.Styles.FullSeparator = sepStyle, sepStyle
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	return h
}

// PaletteKeyMap holds the palette bindings. Printable keys belong to the
// query field, so every binding here uses arrows or modifiers.
type PaletteKeyMap struct {
	Up, Down     key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	Open, Cancel key.Binding
}

// ShortHelp implements help.KeyMap.
func (k PaletteKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextCategory, k.Open, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k PaletteKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextCategory, k.PrevCategory},
		{k.Open, k.Cancel},
	}
}

func binding(help string, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultPaletteKeyMap returns the palette bindings.
func DefaultPaletteKeyMap() PaletteKeyMap {
	return PaletteKeyMap{
		Up:           binding("↑/ctrl+p", "up", "up", "ctrl+p"),
		Down:         binding("↓/ctrl+n", "down", "down", "ctrl+n"),
		NextCategory: binding("tab", "category", "tab"),
		PrevCategory: binding("shift+tab", "previous category", "shift+tab"),
		Open:         binding("enter", "open", "enter"),
		Cancel:       binding("esc", "cancel", "esc", "ctrl+c"),
	}
}
