package entity

import (
	"fmt"
	"time"
)

// HibernationAction is what a rule does to a matching tab.
type HibernationAction string

const (
	HibernationActionHibernate HibernationAction = "hibernate"
	HibernationActionClose     HibernationAction = "close"
)

// HibernationRule unloads or closes idle tabs once the tab count grows past
// MaxTabs.
type HibernationRule struct {
	ID             string            `json:"id" mapstructure:"id" yaml:"id" toml:"id"`
	Name           string            `json:"name" mapstructure:"name" yaml:"name" toml:"name"`
	InactiveTime   time.Duration     `json:"inactiveTime" mapstructure:"inactive_time" yaml:"inactive_time" toml:"inactive_time"`
	MaxTabs        int               `json:"maxTabs" mapstructure:"max_tabs" yaml:"max_tabs" toml:"max_tabs"`
	ExcludeDomains []string          `json:"excludeDomains" mapstructure:"exclude_domains" yaml:"exclude_domains" toml:"exclude_domains"`
	Action         HibernationAction `json:"action" mapstructure:"action" yaml:"action" toml:"action"`
	Enabled        bool              `json:"enabled" mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
}

// Validate checks the rule's thresholds and action.
func (r *HibernationRule) Validate() error {
	if r.InactiveTime <= 0 {
		return fmt.Errorf("rule %q: inactive_time must be positive", r.Name)
	}
	if r.MaxTabs < 0 {
		return fmt.Errorf("rule %q: max_tabs must be non-negative", r.Name)
	}
	switch r.Action {
	case HibernationActionHibernate, HibernationActionClose:
	default:
		return fmt.Errorf("rule %q: unknown action %q", r.Name, r.Action)
	}
	return nil
}

// DefaultHibernationRule mirrors the settings a new rule starts with.
func DefaultHibernationRule() HibernationRule {
	return HibernationRule{
		ID:           "default",
		Name:         "Idle tabs",
		InactiveTime: 30 * time.Minute,
		MaxTabs:      10,
		Action:       HibernationActionHibernate,
		Enabled:      true,
	}
}
