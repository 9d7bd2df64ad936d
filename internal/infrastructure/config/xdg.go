package config

import (
	"os"
	"path/filepath"
)

const (
	appName      = "bezier"
	databaseName = "bezier.db"
	dirPerm      = 0o750
)

// XDGDirs are bezier's resolved base directories. Config goes under
// ConfigHome; state documents are user data and go under DataHome.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
	Downloads  string
}

// GetXDGDirs resolves the directories from the XDG environment, falling
// back to the usual locations under $HOME. With ENV=dev everything but
// downloads lives in ./.dev/bezier.
func GetXDGDirs() (*XDGDirs, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dirs := &XDGDirs{
		ConfigHome: filepath.Join(envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config")), appName),
		DataHome:   filepath.Join(envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share")), appName),
		Downloads:  envOr("XDG_DOWNLOAD_DIR", filepath.Join(home, "Downloads")),
	}

	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dirs.ConfigHome = filepath.Join(cwd, ".dev", appName)
		dirs.DataHome = dirs.ConfigHome
	}
	return dirs, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ConfigFile is the default config.toml location.
func (d *XDGDirs) ConfigFile() string { return filepath.Join(d.ConfigHome, "config.toml") }

// DatabaseFile is the default SQLite state database.
func (d *XDGDirs) DatabaseFile() string { return filepath.Join(d.DataHome, databaseName) }

// StateFileDir is the default directory of the file backend.
func (d *XDGDirs) StateFileDir() string { return filepath.Join(d.DataHome, "state") }

// EnsureDirectories creates the config and data directories.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}
	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}
