// Package config loads bezier's TOML configuration through viper.
package config

import (
	"time"

	"github.com/bnema/bezier/internal/domain/entity"
)

// Config represents the complete configuration for bezier.
type Config struct {
	Storage     StorageConfig     `mapstructure:"storage" yaml:"storage" toml:"storage"`
	History     HistoryConfig     `mapstructure:"history" yaml:"history" toml:"history"`
	Search      SearchConfig      `mapstructure:"search" yaml:"search" toml:"search"`
	Tabs        TabsConfig        `mapstructure:"tabs" yaml:"tabs" toml:"tabs"`
	Downloads   DownloadsConfig   `mapstructure:"downloads" yaml:"downloads" toml:"downloads"`
	Hibernation HibernationConfig `mapstructure:"hibernation" yaml:"hibernation" toml:"hibernation"`
	Server      ServerConfig      `mapstructure:"server" yaml:"server" toml:"server"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging" toml:"logging"`
}

// StorageBackend selects where state documents are persisted.
type StorageBackend string

const (
	StorageSQLite StorageBackend = "sqlite"
	StorageRedis  StorageBackend = "redis"
	StorageFile   StorageBackend = "file"
	StorageMemory StorageBackend = "memory"
)

// StorageConfig controls state persistence.
type StorageConfig struct {
	Backend StorageBackend `mapstructure:"backend" yaml:"backend" toml:"backend"`
	// SQLitePath defaults to $XDG_DATA_HOME/bezier/bezier.db.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path" toml:"sqlite_path"`
	// FileDir defaults to $XDG_DATA_HOME/bezier/state.
	FileDir string      `mapstructure:"file_dir" yaml:"file_dir" toml:"file_dir"`
	Redis   RedisConfig `mapstructure:"redis" yaml:"redis" toml:"redis"`
	// FlushDelayMs coalesces bursts of mutations into one write.
	FlushDelayMs int `mapstructure:"flush_delay_ms" yaml:"flush_delay_ms" toml:"flush_delay_ms"`
}

// RedisConfig holds the redis backend connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr" toml:"addr"`
	Password string `mapstructure:"password" yaml:"password" toml:"password"`
	DB       int    `mapstructure:"db" yaml:"db" toml:"db"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix" toml:"prefix"`
}

// HistoryConfig controls the history log.
type HistoryConfig struct {
	// MaxEntries caps the log; 0 keeps everything.
	MaxEntries int `mapstructure:"max_entries" yaml:"max_entries" toml:"max_entries"`
}

// SearchConfig controls address-bar search and the command palette.
type SearchConfig struct {
	// Threshold is the minimum fuzzy similarity, in (0, 1].
	Threshold float64 `mapstructure:"threshold" yaml:"threshold" toml:"threshold"`
	// Engine is the search URL template; %s is replaced by the query.
	Engine string `mapstructure:"engine" yaml:"engine" toml:"engine"`
}

// TabsConfig controls tab behavior.
type TabsConfig struct {
	LoadDelayMs int `mapstructure:"load_delay_ms" yaml:"load_delay_ms" toml:"load_delay_ms"`
}

// DownloadsConfig controls the transfer process.
type DownloadsConfig struct {
	// Dir defaults to XDG_DOWNLOAD_DIR or ~/Downloads.
	Dir              string `mapstructure:"dir" yaml:"dir" toml:"dir"`
	ReportIntervalMs int    `mapstructure:"report_interval_ms" yaml:"report_interval_ms" toml:"report_interval_ms"`
	TimeoutS         int    `mapstructure:"timeout_s" yaml:"timeout_s" toml:"timeout_s"`
}

// HibernationConfig controls idle tab unloading in serve mode.
type HibernationConfig struct {
	Enabled   bool                     `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	IntervalS int                      `mapstructure:"interval_s" yaml:"interval_s" toml:"interval_s"`
	Rules     []entity.HibernationRule `mapstructure:"rules" yaml:"rules" toml:"rules"`
}

// ServerConfig controls the HTTP surface of `bezier serve`.
type ServerConfig struct {
	Listen        string `mapstructure:"listen" yaml:"listen" toml:"listen"`
	EnableMetrics bool   `mapstructure:"enable_metrics" yaml:"enable_metrics" toml:"enable_metrics"`
	// Grant lists the capabilities granted without asking. Everything
	// else is denied.
	Grant []string `mapstructure:"grant" yaml:"grant" toml:"grant"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level"`
	Format string `mapstructure:"format" yaml:"format" toml:"format"`
}

// FlushDelay returns the persistence coalescing window.
func (c *StorageConfig) FlushDelay() time.Duration {
	return time.Duration(c.FlushDelayMs) * time.Millisecond
}

// LoadDelay returns the simulated page load time.
func (c *TabsConfig) LoadDelay() time.Duration {
	return time.Duration(c.LoadDelayMs) * time.Millisecond
}

// ReportInterval returns the minimum gap between progress reports.
func (c *DownloadsConfig) ReportInterval() time.Duration {
	return time.Duration(c.ReportIntervalMs) * time.Millisecond
}

// Timeout returns how long a transfer may wait for response headers.
func (c *DownloadsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutS) * time.Second
}

// Interval returns the hibernation sweep period.
func (c *HibernationConfig) Interval() time.Duration {
	return time.Duration(c.IntervalS) * time.Second
}
