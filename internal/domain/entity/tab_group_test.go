package entity_test

import (
	"testing"

	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroupLayout(t *testing.T) {
	tests := []struct {
		input   string
		want    entity.GroupLayout
		wantErr bool
	}{
		{"", entity.GroupLayoutVertical, false},
		{"grid", entity.GroupLayoutGrid, false},
		{" Horizontal ", entity.GroupLayoutHorizontal, false},
		{"vertical", entity.GroupLayoutVertical, false},
		{"diagonal", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := entity.ParseGroupLayout(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, entity.ErrInvalidLayout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTabGroup_Membership(t *testing.T) {
	g := &entity.TabGroup{ID: "g"}

	g.AddTab("a")
	g.AddTab("b")
	g.AddTab("a")
	assert.Equal(t, []entity.TabID{"a", "b"}, g.Tabs)
	assert.True(t, g.Contains("b"))

	assert.True(t, g.RemoveTab("a"))
	assert.False(t, g.RemoveTab("a"))
	assert.Equal(t, []entity.TabID{"b"}, g.Tabs)

	c := g.Clone()
	c.Tabs[0] = "z"
	assert.Equal(t, entity.TabID("b"), g.Tabs[0])
}
