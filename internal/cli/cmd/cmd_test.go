package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/domain/credential"
	"github.com/bnema/bezier/internal/domain/entity"
)

const testConfig = `[storage]
backend = "file"
file_dir = %q
flush_delay_ms = 0

[server]
grant = ["tabs", "history"]

[logging]
level = "error"
`

// setupCLI points bezier at a throwaway config and file-backed state.
func setupCLI(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_DOWNLOAD_DIR", filepath.Join(root, "downloads"))

	path := filepath.Join(root, "bezier.toml")
	body := []byte(fmt.Sprintf(testConfig, filepath.Join(root, "docs")))
	require.NoError(t, os.WriteFile(path, body, 0o600))
	return path
}

// resetFlags restores every flag to its default so runs do not leak.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfg, "--json"}, args...))
	err := rootCmd.Execute()
	closeApp()
	return out.String(), err
}

func mustRun(t *testing.T, cfg string, args ...string) string {
	t.Helper()
	out, err := run(t, cfg, args...)
	require.NoError(t, err, out)
	return out
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func createdID(t *testing.T, out string) string {
	t.Helper()
	id := decode[map[string]string](t, out)["id"]
	require.NotEmpty(t, id)
	return id
}

func TestTabs_PersistAcrossRuns(t *testing.T) {
	cfg := setupCLI(t)

	first := createdID(t, mustRun(t, cfg, "tabs", "open", "https://example.com", "--title", "Example"))
	second := createdID(t, mustRun(t, cfg, "tabs", "open", "https://go.dev"))

	mustRun(t, cfg, "tabs", "activate", first)
	mustRun(t, cfg, "tabs", "pin", second)
	mustRun(t, cfg, "tabs", "move", second, "0")

	tabs := decode[[]entity.Tab](t, mustRun(t, cfg, "tabs"))
	require.Len(t, tabs, 2)
	assert.Equal(t, entity.TabID(second), tabs[0].ID)
	assert.True(t, tabs[0].Pinned)
	assert.Equal(t, "Example", tabs[1].Title)
	assert.Contains(t, tabs[1].URL, "example.com")
	assert.True(t, tabs[1].IsActive)

	mustRun(t, cfg, "tabs", "close", first)
	tabs = decode[[]entity.Tab](t, mustRun(t, cfg, "tabs"))
	require.Len(t, tabs, 1)
	assert.True(t, tabs[0].IsActive, "closing the active tab activates a neighbor")
}

func TestTabs_UnknownTab(t *testing.T) {
	cfg := setupCLI(t)

	_, err := run(t, cfg, "tabs", "pin", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `tab "nope" not found`)
}

func TestGroups_Lifecycle(t *testing.T) {
	cfg := setupCLI(t)

	tab := createdID(t, mustRun(t, cfg, "tabs", "open", "https://example.com"))
	group := createdID(t, mustRun(t, cfg, "groups", "create", "Work", "--color", "blue", "--layout", "grid"))
	mustRun(t, cfg, "groups", "add", group, tab)

	groups := decode[[]entity.TabGroup](t, mustRun(t, cfg, "groups"))
	require.Len(t, groups, 1)
	assert.Equal(t, "Work", groups[0].Name)
	assert.Equal(t, entity.GroupLayoutGrid, groups[0].Layout)
	assert.Equal(t, []entity.TabID{entity.TabID(tab)}, groups[0].Tabs)

	mustRun(t, cfg, "groups", "update", group, "--name", "Play", "--collapsed", "true")
	groups = decode[[]entity.TabGroup](t, mustRun(t, cfg, "groups"))
	assert.Equal(t, "Play", groups[0].Name)
	assert.Equal(t, "blue", groups[0].Color)
	assert.True(t, groups[0].Collapsed)

	mustRun(t, cfg, "groups", "remove", group)
	tabs := decode[[]entity.Tab](t, mustRun(t, cfg, "tabs"))
	require.Len(t, tabs, 1)
	assert.Empty(t, tabs[0].GroupID)
}

func TestGroups_InvalidLayout(t *testing.T) {
	cfg := setupCLI(t)

	_, err := run(t, cfg, "groups", "create", "Work", "--layout", "diagonal")
	require.ErrorIs(t, err, entity.ErrInvalidLayout)
}

func TestHistory_VisitsAndStats(t *testing.T) {
	cfg := setupCLI(t)

	id := createdID(t, mustRun(t, cfg, "history", "add", "https://example.com/a", "--title", "A"))
	again := createdID(t, mustRun(t, cfg, "history", "add", "https://example.com/a"))
	assert.Equal(t, id, again)
	mustRun(t, cfg, "history", "add", "https://go.dev")

	entries := decode[[]entity.HistoryEntry](t, mustRun(t, cfg, "history"))
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].URL, "go.dev")
	assert.Equal(t, int64(2), entries[1].VisitCount)
	assert.Equal(t, "A", entries[1].Title)

	stats := decode[entity.HistoryAnalytics](t, mustRun(t, cfg, "history", "stats"))
	assert.Equal(t, int64(2), stats.TotalEntries)
	assert.Equal(t, int64(3), stats.TotalVisits)

	cleared := decode[map[string]int](t, mustRun(t, cfg, "history", "clear"))
	assert.Equal(t, 2, cleared["deleted"])
	assert.Empty(t, decode[[]entity.HistoryEntry](t, mustRun(t, cfg, "history")))
}

func TestBookmarks_FilterAndRemove(t *testing.T) {
	cfg := setupCLI(t)

	docs := createdID(t, mustRun(t, cfg, "bookmarks", "add", "https://go.dev/doc", "--title", "Docs", "--tag", "go", "--tag", "ref"))
	mustRun(t, cfg, "bookmarks", "add", "https://news.ycombinator.com", "--folder", "news")

	tagged := decode[[]entity.Bookmark](t, mustRun(t, cfg, "bookmarks", "--tag", "ref"))
	require.Len(t, tagged, 1)
	assert.Equal(t, entity.BookmarkID(docs), tagged[0].ID)
	assert.Equal(t, []string{"go", "ref"}, tagged[0].Tags)

	inFolder := decode[[]entity.Bookmark](t, mustRun(t, cfg, "bookmarks", "--folder", "news"))
	require.Len(t, inFolder, 1)

	mustRun(t, cfg, "bookmarks", "remove", docs)
	assert.Len(t, decode[[]entity.Bookmark](t, mustRun(t, cfg, "bookmarks")), 1)
}

func TestTheme_ExportImportSelect(t *testing.T) {
	cfg := setupCLI(t)

	exported := mustRun(t, cfg, "theme", "export", "--format", "yaml")
	assert.Contains(t, exported, "base:")

	file := filepath.Join(t.TempDir(), "mine.yaml")
	require.NoError(t, os.WriteFile(file, []byte(exported), 0o600))
	id := createdID(t, mustRun(t, cfg, "theme", "import", file))

	state := decode[store.ThemeState](t, mustRun(t, cfg, "theme", "list"))
	require.Len(t, state.CustomThemes, 1)
	assert.Equal(t, entity.ThemeID(id), state.CustomThemes[0].ID)
	assert.Equal(t, entity.DefaultThemeID, state.CurrentTheme.ID)

	mustRun(t, cfg, "theme", "select", id)
	current := decode[entity.Theme](t, mustRun(t, cfg, "theme"))
	assert.Equal(t, entity.ThemeID(id), current.ID)

	mustRun(t, cfg, "theme", "reset")
	current = decode[entity.Theme](t, mustRun(t, cfg, "theme"))
	assert.Equal(t, entity.DefaultThemeID, current.ID)

	_, err := run(t, cfg, "theme", "select", "missing")
	require.Error(t, err)
}

func TestTheme_CSS(t *testing.T) {
	cfg := setupCLI(t)

	vars := decode[map[string]string](t, mustRun(t, cfg, "theme", "css"))
	assert.Equal(t, entity.DefaultTheme().Colors.Base, vars["--color-base"])
}

func TestExtensions_InstallFromManifest(t *testing.T) {
	cfg := setupCLI(t)

	manifest := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{
		"name": "Tab Stash",
		"version": "1.2.0",
		"permissions": ["tabs", "storage", "<all_urls>"],
		"icons": {"48": "icon-48.png", "128": "icon-128.png"},
		"background": {"scripts": ["bg.js"]},
		"content_scripts": [{"matches": ["*://*/*"], "js": ["cs.js"]}]
	}`), 0o600))

	id := createdID(t, mustRun(t, cfg, "extensions", "install", manifest))

	exts := decode[[]entity.Extension](t, mustRun(t, cfg, "extensions"))
	require.Len(t, exts, 1)
	ext := exts[0]
	assert.Equal(t, entity.ExtensionID(id), ext.ID)
	assert.Equal(t, []entity.Capability{entity.CapabilityTabs, entity.CapabilityStorage}, ext.Permissions)
	assert.Equal(t, "icon-128.png", ext.Icon)
	assert.True(t, ext.Background)
	require.Len(t, ext.ContentScripts, 1)
	assert.Equal(t, []string{"cs.js"}, ext.ContentScripts[0].JS)
	assert.True(t, ext.Enabled)

	mustRun(t, cfg, "extensions", "toggle", id)
	exts = decode[[]entity.Extension](t, mustRun(t, cfg, "extensions"))
	assert.False(t, exts[0].Enabled)

	mustRun(t, cfg, "extensions", "uninstall", id)
	assert.Empty(t, decode[[]entity.Extension](t, mustRun(t, cfg, "extensions")))
}

func TestPermissions_FollowConfiguredGrants(t *testing.T) {
	cfg := setupCLI(t)

	decisions := decode[[]capabilityDecision](t, mustRun(t, cfg, "permissions"))
	granted := map[entity.Capability]bool{}
	for _, d := range decisions {
		granted[d.Capability] = d.Granted
	}
	assert.Len(t, decisions, len(entity.AllCapabilities()))
	assert.True(t, granted[entity.CapabilityTabs])
	assert.True(t, granted[entity.CapabilityHistory])
	assert.False(t, granted[entity.CapabilityDownloads])
}

func TestPalette_JSON(t *testing.T) {
	cfg := setupCLI(t)

	mustRun(t, cfg, "tabs", "open", "https://go.dev/doc", "--title", "Go Docs")
	mustRun(t, cfg, "bookmarks", "add", "https://pkg.go.dev", "--title", "Packages")
	mustRun(t, cfg, "history", "add", "https://example.com", "--title", "Example")

	out := decode[map[string]json.RawMessage](t, mustRun(t, cfg, "palette", "go"))
	var tabs []entity.Tab
	require.NoError(t, json.Unmarshal(out["tabs"], &tabs))
	require.Len(t, tabs, 1)
	assert.Equal(t, "Go Docs", tabs[0].Title)

	var history []entity.HistoryEntry
	require.NoError(t, json.Unmarshal(out["history"], &history))
	assert.Empty(t, history)
}

func TestSchema(t *testing.T) {
	out := mustRun(t, "", "schema", "browser")
	schema := decode[map[string]any](t, out)
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "tabs")
	assert.Contains(t, props, "tabGroups")

	_, err := run(t, "", "schema", "bogus")
	require.Error(t, err)
}

func TestPasswordStrength(t *testing.T) {
	report := decode[credential.Report](t, mustRun(t, "", "password", "strength", "Tr0ub4dor&3"))
	assert.Equal(t, credential.Report{Score: 70, Strength: credential.StrengthStrong}, report)

	rootCmd.SetIn(strings.NewReader("password\n"))
	t.Cleanup(func() { rootCmd.SetIn(nil) })
	report = decode[credential.Report](t, mustRun(t, "", "password", "strength"))
	assert.Equal(t, credential.StrengthWeak, report.Strength)
}

func TestVersion_JSON(t *testing.T) {
	info := decode[map[string]string](t, mustRun(t, "", "version"))
	assert.NotEmpty(t, info["goVersion"])
}
