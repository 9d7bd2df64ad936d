package firefox_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/infrastructure/firefox"
	"github.com/bnema/bezier/internal/infrastructure/mozlz4"
	"github.com/bnema/bezier/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func sampleSession(t *testing.T) []byte {
	t.Helper()
	session := map[string]any{
		"selectedWindow": 2,
		"windows": []map[string]any{
			{
				"selected": 1,
				"groups":   []map[string]any{{"id": "g", "name": "Work", "color": "blue"}},
				"tabs": []map[string]any{
					{
						"entries":      []map[string]any{{"url": "https://example.com", "title": "Example"}},
						"index":        1,
						"lastAccessed": 1707654321000,
						"groupId":      "g",
					},
					{"entries": []map[string]any{}},
				},
			},
			{
				"selected": 2,
				"groups":   []map[string]any{{"id": "g", "name": "Reading"}},
				"tabs": []map[string]any{
					{
						"entries": []map[string]any{
							{"url": "https://a.example", "title": "A"},
							{"url": "https://b.example", "title": "B"},
						},
						"index":  1,
						"pinned": true,
					},
					{
						"entries": []map[string]any{{"url": "https://c.example", "title": "C"}},
						"index":   7,
						"hidden":  true,
						"groupId": "g",
					},
				},
			},
		},
	}
	data, err := json.Marshal(session)
	require.NoError(t, err)
	return data
}

func TestParseSession(t *testing.T) {
	s, err := firefox.ParseSession(sampleSession(t))
	require.NoError(t, err)

	require.Len(t, s.Groups, 2)
	assert.Equal(t, "Work", s.Groups[0].Name)
	assert.NotEqual(t, s.Groups[0].Key, s.Groups[1].Key, "group ids are scoped per window")

	require.Len(t, s.Tabs, 3, "tabs without entries are skipped")

	assert.Equal(t, "https://example.com", s.Tabs[0].URL)
	assert.Equal(t, s.Groups[0].Key, s.Tabs[0].GroupKey)
	assert.Equal(t, entity.Millis(1707654321000), s.Tabs[0].LastAccessed)
	assert.False(t, s.Tabs[0].Active)

	assert.Equal(t, "A", s.Tabs[1].Title, "index selects the current history entry")
	assert.True(t, s.Tabs[1].Pinned)
	assert.False(t, s.Tabs[1].Active)

	assert.Equal(t, "C", s.Tabs[2].Title, "out of range index falls back to the last entry")
	assert.True(t, s.Tabs[2].Hibernated)
	assert.True(t, s.Tabs[2].Active)
	assert.Equal(t, s.Groups[1].Key, s.Tabs[2].GroupKey)
}

func TestParseSession_InvalidJSON(t *testing.T) {
	_, err := firefox.ParseSession([]byte("{"))
	require.Error(t, err)
}

func TestSessionReader_ReadSession(t *testing.T) {
	profile := t.TempDir()
	backups := filepath.Join(profile, "sessionstore-backups")
	require.NoError(t, os.MkdirAll(backups, 0o755))

	payload, err := mozlz4.Encode(sampleSession(t))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(backups, "previous.jsonlz4"), payload, 0o600))

	s, err := firefox.NewSessionReader(profile).ReadSession(testContext())
	require.NoError(t, err)
	assert.Len(t, s.Tabs, 3)
}

func TestSessionReader_Missing(t *testing.T) {
	_, err := firefox.NewSessionReader(t.TempDir()).ReadSession(testContext())
	require.Error(t, err)
}
