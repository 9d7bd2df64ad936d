package styles

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const paletteQueryLimit = 256

// NewPaletteInput returns the focused query field of the command palette,
// pre-filled with query.
func NewPaletteInput(theme *Theme, query string) textinput.Model {
	accent := lipgloss.NewStyle().Foreground(theme.Accent)

	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = accent
	in.Cursor.Style = accent
	in.TextStyle = lipgloss.NewStyle().Foreground(theme.Text)
	in.Placeholder = "tabs, bookmarks, history"
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Muted).Italic(true)
	in.CharLimit = paletteQueryLimit
	in.SetValue(query)
	in.Focus()
	return in
}
