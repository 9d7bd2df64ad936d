// Package styles provides reusable lipgloss-based TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/bezier/internal/domain/entity"
)

// Theme is a bezier palette projected onto terminal colors and styles.
type Theme struct {
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Chip       lipgloss.Color

	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style

	ListItemTitle lipgloss.Style
	ListItemDesc  lipgloss.Style

	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style

	// Palette chrome.
	InputFocused     lipgloss.Style
	ActiveCategory   lipgloss.Style
	InactiveCategory lipgloss.Style
}

// NewTheme maps palette slots onto the terminal styles. Empty slots fall
// back to the default palette.
func NewTheme(p entity.Palette) *Theme {
	def := entity.DefaultTheme().Colors
	pick := func(v, fallback string) lipgloss.Color {
		if v == "" {
			v = fallback
		}
		return lipgloss.Color(v)
	}

	t := &Theme{
		Background: pick(p.Base, def.Base),
		Text:       pick(p.Text, def.Text),
		Muted:      pick(p.Overlay1, def.Overlay1),
		Accent:     pick(p.Blue, def.Blue),
		Border:     pick(p.Surface2, def.Surface2),
		Chip:       pick(p.Surface1, def.Surface1),
		Error:      pick(p.Red, def.Red),
		Warning:    pick(p.Yellow, def.Yellow),
		Success:    pick(p.Green, def.Green),
	}
	t.derive()
	return t
}

func (t *Theme) derive() {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	t.Title = fg(t.Text).Bold(true)
	t.Subtitle = fg(t.Muted).Bold(true)
	t.Subtle = fg(t.Muted)
	t.Highlight = fg(t.Accent).Bold(true)
	t.ErrorStyle = fg(t.Error)
	t.SuccessStyle = fg(t.Success)

	t.ListItemTitle = fg(t.Text)
	t.ListItemDesc = fg(t.Muted)

	t.Badge = fg(t.Background).Background(t.Accent).Padding(0, 1)
	t.BadgeMuted = fg(t.Text).Background(t.Chip).Padding(0, 1)

	t.InputFocused = fg(t.Text).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(0, 1)
	t.ActiveCategory = t.Badge.Bold(true)
	t.InactiveCategory = fg(t.Muted).Padding(0, 1)
}

// Swatch renders a color sample followed by its slot name and value.
func (t *Theme) Swatch(slot entity.PaletteSlot) string {
	block := lipgloss.NewStyle().Background(lipgloss.Color(slot.Color)).Render("    ")
	return lipgloss.JoinHorizontal(lipgloss.Left,
		block, " ",
		lipgloss.NewStyle().Foreground(t.Text).Width(10).Render(slot.Name),
		t.Subtle.Render(slot.Color),
	)
}
