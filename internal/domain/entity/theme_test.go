package entity_test

import (
	"testing"

	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_IsValid(t *testing.T) {
	theme := entity.DefaultTheme()
	require.NoError(t, theme.Validate())
	assert.Equal(t, entity.DefaultThemeID, theme.ID)
	assert.Len(t, theme.Colors.Slots(), 26)
	assert.Equal(t, "base", theme.Colors.Slots()[0].Name)
	assert.Equal(t, "#24273a", theme.Colors.Slots()[0].Color)
}

func TestTheme_Validate(t *testing.T) {
	theme := entity.DefaultTheme()
	theme.Name = ""
	theme.Colors.Red = "red"

	err := theme.Validate()
	require.ErrorIs(t, err, entity.ErrInvalidTheme)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "colors.red")
}

func TestTheme_Clone(t *testing.T) {
	theme := entity.DefaultTheme()
	theme.CustomProperties = map[string]string{"radius": "4px"}
	theme.Metadata = &entity.ThemeMetadata{Author: "me"}

	c := theme.Clone()
	c.CustomProperties["radius"] = "8px"
	c.Metadata.Author = "you"

	assert.Equal(t, "4px", theme.CustomProperties["radius"])
	assert.Equal(t, "me", theme.Metadata.Author)
}
