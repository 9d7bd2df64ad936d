package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/bezier/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetXDGDirs(t *testing.T) {
	root := isolateXDG(t)

	dirs, err := config.GetXDGDirs()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "config", "bezier"), dirs.ConfigHome)
	assert.Equal(t, filepath.Join(root, "data", "bezier"), dirs.DataHome)
	assert.Equal(t, filepath.Join(root, "config", "bezier", "config.toml"), dirs.ConfigFile())
	assert.Equal(t, filepath.Join(root, "data", "bezier", "bezier.db"), dirs.DatabaseFile())
	assert.Equal(t, filepath.Join(root, "data", "bezier", "state"), dirs.StateFileDir())

	require.NoError(t, config.EnsureDirectories())
	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestGetXDGDirs_DevMode(t *testing.T) {
	isolateXDG(t)
	t.Setenv("ENV", "dev")
	cwd, err := os.Getwd()
	require.NoError(t, err)

	dirs, err := config.GetXDGDirs()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, ".dev", "bezier"), dirs.ConfigHome)
	assert.Equal(t, dirs.ConfigHome, dirs.DataHome)
}

func TestGetDownloadsDir_FallsBackToHome(t *testing.T) {
	root := isolateXDG(t)
	t.Setenv("XDG_DOWNLOAD_DIR", "")

	dirs, err := config.GetXDGDirs()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Downloads"), dirs.Downloads)
}
