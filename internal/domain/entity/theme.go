package entity

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"strings"
)

// ThemeID uniquely identifies a theme.
type ThemeID string

// DefaultThemeID is the identifier of the built-in theme.
const DefaultThemeID ThemeID = "default"

// ErrInvalidTheme is returned when a theme fails validation.
var ErrInvalidTheme = errors.New("invalid theme")

// Palette is the fixed set of named color slots.
type Palette struct {
	Base      string `json:"base" yaml:"base"`
	Mantle    string `json:"mantle" yaml:"mantle"`
	Crust     string `json:"crust" yaml:"crust"`
	Surface0  string `json:"surface0" yaml:"surface0"`
	Surface1  string `json:"surface1" yaml:"surface1"`
	Surface2  string `json:"surface2" yaml:"surface2"`
	Text      string `json:"text" yaml:"text"`
	Subtext0  string `json:"subtext0" yaml:"subtext0"`
	Subtext1  string `json:"subtext1" yaml:"subtext1"`
	Overlay0  string `json:"overlay0" yaml:"overlay0"`
	Overlay1  string `json:"overlay1" yaml:"overlay1"`
	Overlay2  string `json:"overlay2" yaml:"overlay2"`
	Blue      string `json:"blue" yaml:"blue"`
	Lavender  string `json:"lavender" yaml:"lavender"`
	Sapphire  string `json:"sapphire" yaml:"sapphire"`
	Sky       string `json:"sky" yaml:"sky"`
	Teal      string `json:"teal" yaml:"teal"`
	Green     string `json:"green" yaml:"green"`
	Yellow    string `json:"yellow" yaml:"yellow"`
	Peach     string `json:"peach" yaml:"peach"`
	Maroon    string `json:"maroon" yaml:"maroon"`
	Red       string `json:"red" yaml:"red"`
	Mauve     string `json:"mauve" yaml:"mauve"`
	Pink      string `json:"pink" yaml:"pink"`
	Flamingo  string `json:"flamingo" yaml:"flamingo"`
	Rosewater string `json:"rosewater" yaml:"rosewater"`
}

// Slots returns the palette as slot name to color, in declaration order.
func (p Palette) Slots() []PaletteSlot {
	v := reflect.ValueOf(p)
	t := v.Type()
	out := make([]PaletteSlot, 0, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		out = append(out, PaletteSlot{Name: name, Color: v.Field(i).String()})
	}
	return out
}

// PaletteSlot is a single named color.
type PaletteSlot struct {
	Name  string
	Color string
}

// ThemeFonts is the pair of font-family strings.
type ThemeFonts struct {
	Sans string `json:"sans" yaml:"sans"`
	Mono string `json:"mono" yaml:"mono"`
}

// ThemeMetadata is optional descriptive data attached to a theme.
type ThemeMetadata struct {
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	CreatedAt   Millis `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   Millis `json:"updatedAt" yaml:"updatedAt"`
}

// Theme is a complete visual theme.
type Theme struct {
	ID               ThemeID           `json:"id" yaml:"id"`
	Name             string            `json:"name" yaml:"name"`
	Colors           Palette           `json:"colors" yaml:"colors"`
	Fonts            ThemeFonts        `json:"fonts" yaml:"fonts"`
	CustomProperties map[string]string `json:"customProperties,omitempty" yaml:"customProperties,omitempty"`
	Metadata         *ThemeMetadata    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Clone returns a deep copy of the theme.
func (t *Theme) Clone() Theme {
	c := *t
	c.CustomProperties = maps.Clone(t.CustomProperties)
	if t.Metadata != nil {
		md := *t.Metadata
		c.Metadata = &md
	}
	return c
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate checks that every palette slot holds a hex color and that a name
// and both font families are present.
func (t *Theme) Validate() error {
	var problems []string
	if strings.TrimSpace(t.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(t.Fonts.Sans) == "" || strings.TrimSpace(t.Fonts.Mono) == "" {
		problems = append(problems, "both font families are required")
	}
	for _, slot := range t.Colors.Slots() {
		if !hexColorRe.MatchString(slot.Color) {
			problems = append(problems, fmt.Sprintf("colors.%s must be a hex color, got %q", slot.Name, slot.Color))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTheme, strings.Join(problems, "; "))
	}
	return nil
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() Theme {
	return Theme{
		ID:   DefaultThemeID,
		Name: "Default",
		Colors: Palette{
			Base:      "#24273a",
			Mantle:    "#1e2030",
			Crust:     "#181926",
			Surface0:  "#363a4f",
			Surface1:  "#494d64",
			Surface2:  "#5b6078",
			Text:      "#cad3f5",
			Subtext0:  "#a5adcb",
			Subtext1:  "#b8c0e0",
			Overlay0:  "#6e738d",
			Overlay1:  "#8087a2",
			Overlay2:  "#939ab7",
			Blue:      "#8aadf4",
			Lavender:  "#b7bdf8",
			Sapphire:  "#7dc4e4",
			Sky:       "#91d7e3",
			Teal:      "#8bd5ca",
			Green:     "#a6da95",
			Yellow:    "#eed49f",
			Peach:     "#f5a97f",
			Maroon:    "#ee99a0",
			Red:       "#ed8796",
			Mauve:     "#c6a0f6",
			Pink:      "#f5bde6",
			Flamingo:  "#f0c6c6",
			Rosewater: "#f4dbd6",
		},
		Fonts: ThemeFonts{
			Sans: "Inter, system-ui, sans-serif",
			Mono: "JetBrains Mono, monospace",
		},
	}
}

// ThemePreset is a named, shareable theme.
type ThemePreset struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Theme   Theme  `json:"theme" yaml:"theme"`
	Preview string `json:"preview,omitempty" yaml:"preview,omitempty"`
}
