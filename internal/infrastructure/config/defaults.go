package config

import (
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/domain/search"
)

// Default configuration constants
const (
	defaultMaxHistoryEntries = 10000 // entries
	defaultFlushDelayMs      = 500
	defaultLoadDelayMs       = 800
	defaultReportIntervalMs  = 250
	defaultDownloadTimeoutS  = 30
	defaultHibernateEvery    = 60 // seconds
	defaultListenAddr        = "127.0.0.1:7420"
	defaultSearchEngine      = "https://duckduckgo.com/?q=%s"
	defaultRedisAddr         = "localhost:6379"
	defaultRedisPrefix       = "bezier:state:"
)

// DefaultConfig returns the default configuration values for bezier.
// Paths left empty are resolved against the XDG directories in Load.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: StorageSQLite,
			Redis: RedisConfig{
				Addr:   defaultRedisAddr,
				Prefix: defaultRedisPrefix,
			},
			FlushDelayMs: defaultFlushDelayMs,
		},
		History: HistoryConfig{
			MaxEntries: defaultMaxHistoryEntries,
		},
		Search: SearchConfig{
			Threshold: search.DefaultThreshold,
			Engine:    defaultSearchEngine,
		},
		Tabs: TabsConfig{
			LoadDelayMs: defaultLoadDelayMs,
		},
		Downloads: DownloadsConfig{
			ReportIntervalMs: defaultReportIntervalMs,
			TimeoutS:         defaultDownloadTimeoutS,
		},
		Hibernation: HibernationConfig{
			Enabled:   true,
			IntervalS: defaultHibernateEvery,
			Rules:     []entity.HibernationRule{entity.DefaultHibernationRule()},
		},
		Server: ServerConfig{
			Listen:        defaultListenAddr,
			EnableMetrics: true,
			Grant:         defaultGrants(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ruleDefaults renders rules in the shape the TOML file uses, so the
// generated default file reads back through the same decoder.
func ruleDefaults(rules []entity.HibernationRule) []map[string]any {
	out := make([]map[string]any, 0, len(rules))
	for _, r := range rules {
		out = append(out, map[string]any{
			"id":              r.ID,
			"name":            r.Name,
			"inactive_time":   r.InactiveTime.String(),
			"max_tabs":        r.MaxTabs,
			"exclude_domains": append([]string{}, r.ExcludeDomains...),
			"action":          string(r.Action),
			"enabled":         r.Enabled,
		})
	}
	return out
}

// defaultGrants allows every capability the stores back by themselves.
func defaultGrants() []string {
	return []string{
		string(entity.CapabilityTabs),
		string(entity.CapabilityBookmarks),
		string(entity.CapabilityHistory),
		string(entity.CapabilityDownloads),
		string(entity.CapabilityStorage),
	}
}
