package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool

	// explicitFile is set when the file path was given rather than
	// searched for in the XDG config directory.
	explicitFile string
}

// NewManager creates a manager that reads config.toml from the XDG config
// directory (or the working directory during development).
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	dirs, err := GetXDGDirs()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(dirs.ConfigHome)
	v.AddConfigPath(".")

	m := &Manager{viper: v}
	if err := m.bindEnv(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewManagerWithFile creates a manager bound to one config file. The file
// is created with defaults if it does not exist.
func NewManagerWithFile(path string) (*Manager, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	m := &Manager{viper: v, explicitFile: path}
	if err := m.bindEnv(); err != nil {
		return nil, err
	}
	return m, nil
}

// bindEnv maps BEZIER_<SECTION>_<KEY> onto every setting, plus the short
// logging variables shared with logging.NewFromEnv.
func (m *Manager) bindEnv() error {
	m.viper.SetEnvPrefix("BEZIER")
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	if err := m.viper.BindEnv("logging.level", "BEZIER_LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind BEZIER_LOG_LEVEL: %w", err)
	}
	if err := m.viper.BindEnv("logging.format", "BEZIER_LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind BEZIER_LOG_FORMAT: %w", err)
	}
	return nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.explicitFile == "" {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	return m.decode()
}

// decode unmarshals, resolves and validates the current viper state.
// Must hold m.mu for write.
func (m *Manager) decode() error {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := resolvePaths(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
		configFile := m.viper.ConfigFileUsed()
		if dirs, dirErr := GetXDGDirs(); configFile == "" && dirErr == nil {
			configFile = dirs.ConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf("failed to create default config: %w\nTry creating the directory manually or check permissions", createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// resolvePaths fills empty path settings from the XDG directories.
func resolvePaths(config *Config) error {
	if config.Storage.SQLitePath != "" && config.Storage.FileDir != "" && config.Downloads.Dir != "" {
		return nil
	}
	dirs, err := GetXDGDirs()
	if err != nil {
		return fmt.Errorf("failed to resolve default directories: %w", err)
	}
	for _, p := range []struct {
		target *string
		value  string
	}{
		{&config.Storage.SQLitePath, dirs.DatabaseFile()},
		{&config.Storage.FileDir, dirs.StateFileDir()},
		{&config.Downloads.Dir, dirs.Downloads},
	} {
		if *p.target == "" {
			*p.target = p.value
		}
	}
	return nil
}

func normalizeConfig(config *Config) {
	switch StorageBackend(strings.ToLower(string(config.Storage.Backend))) {
	case "", StorageSQLite:
		config.Storage.Backend = StorageSQLite
	case StorageRedis:
		config.Storage.Backend = StorageRedis
	case StorageFile:
		config.Storage.Backend = StorageFile
	case StorageMemory:
		config.Storage.Backend = StorageMemory
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	config.Search.Engine = strings.TrimSpace(config.Search.Engine)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

func (m *Manager) createDefaultConfig() error {
	configFile := m.explicitFile
	if configFile == "" {
		dirs, err := GetXDGDirs()
		if err != nil {
			return err
		}
		configFile = dirs.ConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	m.viper.SetConfigFile(configFile)

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s (TOML format)\n", configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// Paths are resolved in Load so the written file stays portable.
	m.viper.SetDefault("storage.backend", string(defaults.Storage.Backend))
	m.viper.SetDefault("storage.sqlite_path", "")
	m.viper.SetDefault("storage.file_dir", "")
	m.viper.SetDefault("storage.flush_delay_ms", defaults.Storage.FlushDelayMs)
	m.viper.SetDefault("storage.redis.addr", defaults.Storage.Redis.Addr)
	m.viper.SetDefault("storage.redis.password", defaults.Storage.Redis.Password)
	m.viper.SetDefault("storage.redis.db", defaults.Storage.Redis.DB)
	m.viper.SetDefault("storage.redis.prefix", defaults.Storage.Redis.Prefix)

	m.viper.SetDefault("history.max_entries", defaults.History.MaxEntries)

	m.viper.SetDefault("search.threshold", defaults.Search.Threshold)
	m.viper.SetDefault("search.engine", defaults.Search.Engine)

	m.viper.SetDefault("tabs.load_delay_ms", defaults.Tabs.LoadDelayMs)

	m.viper.SetDefault("downloads.dir", "")
	m.viper.SetDefault("downloads.report_interval_ms", defaults.Downloads.ReportIntervalMs)
	m.viper.SetDefault("downloads.timeout_s", defaults.Downloads.TimeoutS)

	m.viper.SetDefault("hibernation.enabled", defaults.Hibernation.Enabled)
	m.viper.SetDefault("hibernation.interval_s", defaults.Hibernation.IntervalS)
	m.viper.SetDefault("hibernation.rules", ruleDefaults(defaults.Hibernation.Rules))

	m.viper.SetDefault("server.listen", defaults.Server.Listen)
	m.viper.SetDefault("server.enable_metrics", defaults.Server.EnableMetrics)
	m.viper.SetDefault("server.grant", defaults.Server.Grant)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}
