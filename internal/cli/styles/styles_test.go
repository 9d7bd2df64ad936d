package styles

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/bezier/internal/domain/entity"
)

func TestNewTheme_FallsBackToDefaultSlots(t *testing.T) {
	def := entity.DefaultTheme().Colors

	theme := NewTheme(entity.Palette{Blue: "#0000ff"})

	assert.Equal(t, lipgloss.Color("#0000ff"), theme.Accent)
	assert.Equal(t, lipgloss.Color(def.Base), theme.Background)
	assert.Equal(t, lipgloss.Color(def.Red), theme.Error)
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Time{}, "never"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-48 * time.Hour), "2d ago"},
		{now.Add(-30 * 24 * time.Hour), "Feb 8, 2025"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, relativeTo(tt.at, now))
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KiB", FormatBytes(1536))
	assert.Equal(t, "2.0 MiB", FormatBytes(2*1024*1024))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "日本語...", Truncate("日本語のテキストです", 6))
}
