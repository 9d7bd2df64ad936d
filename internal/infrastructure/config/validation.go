package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/bnema/bezier/internal/domain/entity"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateStorage(config)...)
	validationErrors = append(validationErrors, validateHistory(config)...)
	validationErrors = append(validationErrors, validateSearch(config)...)
	validationErrors = append(validationErrors, validateTabs(config)...)
	validationErrors = append(validationErrors, validateDownloads(config)...)
	validationErrors = append(validationErrors, validateHibernation(config)...)
	validationErrors = append(validationErrors, validateServer(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateStorage(config *Config) []string {
	var validationErrors []string
	switch config.Storage.Backend {
	case StorageSQLite, StorageRedis, StorageFile, StorageMemory:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"storage.backend must be one of: sqlite, redis, file, memory (got: %s)",
			config.Storage.Backend,
		))
	}
	if config.Storage.FlushDelayMs < 0 {
		validationErrors = append(validationErrors, "storage.flush_delay_ms must be non-negative")
	}
	if config.Storage.Backend == StorageRedis && config.Storage.Redis.Addr == "" {
		validationErrors = append(validationErrors, "storage.redis.addr is required for the redis backend")
	}
	if config.Storage.Redis.DB < 0 {
		validationErrors = append(validationErrors, "storage.redis.db must be non-negative")
	}
	return validationErrors
}

func validateHistory(config *Config) []string {
	if config.History.MaxEntries < 0 {
		return []string{"history.max_entries must be non-negative"}
	}
	return nil
}

func validateSearch(config *Config) []string {
	var validationErrors []string
	if config.Search.Threshold <= 0 || config.Search.Threshold > 1 {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"search.threshold must be in (0, 1] (got: %g)", config.Search.Threshold,
		))
	}
	if !strings.Contains(config.Search.Engine, "%s") {
		validationErrors = append(validationErrors, "search.engine must contain a %s placeholder")
	}
	return validationErrors
}

func validateTabs(config *Config) []string {
	if config.Tabs.LoadDelayMs < 0 {
		return []string{"tabs.load_delay_ms must be non-negative"}
	}
	return nil
}

func validateDownloads(config *Config) []string {
	var validationErrors []string
	if config.Downloads.ReportIntervalMs <= 0 {
		validationErrors = append(validationErrors, "downloads.report_interval_ms must be positive")
	}
	if config.Downloads.TimeoutS < 0 {
		validationErrors = append(validationErrors, "downloads.timeout_s must be non-negative")
	}
	return validationErrors
}

func validateHibernation(config *Config) []string {
	var validationErrors []string
	if config.Hibernation.Enabled && config.Hibernation.IntervalS <= 0 {
		validationErrors = append(validationErrors, "hibernation.interval_s must be positive when hibernation is enabled")
	}
	seen := make(map[string]bool, len(config.Hibernation.Rules))
	for i := range config.Hibernation.Rules {
		rule := &config.Hibernation.Rules[i]
		if err := rule.Validate(); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("hibernation.rules[%d]: %v", i, err))
		}
		if rule.ID != "" {
			if seen[rule.ID] {
				validationErrors = append(validationErrors, fmt.Sprintf("hibernation.rules[%d]: duplicate id %q", i, rule.ID))
			}
			seen[rule.ID] = true
		}
	}
	return validationErrors
}

func validateServer(config *Config) []string {
	var validationErrors []string
	if _, _, err := net.SplitHostPort(config.Server.Listen); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("server.listen must be host:port (got: %s)", config.Server.Listen))
	}
	for _, name := range config.Server.Grant {
		if _, err := entity.ParseCapability(name); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("server.grant: %v", err))
		}
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error, fatal (got: %s)",
			config.Logging.Level,
		))
	}
	switch config.Logging.Format {
	case "text", "json", "console", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: text, json, console (got: %s)",
			config.Logging.Format,
		))
	}
	return validationErrors
}
