package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidCapability is returned for capability names outside the known set.
var ErrInvalidCapability = errors.New("unknown capability")

// Capability is a coarse-grained permission flag.
type Capability string

const (
	CapabilityTabs          Capability = "tabs"
	CapabilityBookmarks     Capability = "bookmarks"
	CapabilityHistory       Capability = "history"
	CapabilityDownloads     Capability = "downloads"
	CapabilityNotifications Capability = "notifications"
	CapabilityStorage       Capability = "storage"
	// CapabilityNetwork gates network request interception.
	CapabilityNetwork Capability = "webRequest"
	CapabilityCookies Capability = "cookies"
	CapabilityPrivacy Capability = "privacy"
)

// AllCapabilities lists every known capability in display order.
func AllCapabilities() []Capability {
	return []Capability{
		CapabilityTabs,
		CapabilityBookmarks,
		CapabilityHistory,
		CapabilityDownloads,
		CapabilityNotifications,
		CapabilityStorage,
		CapabilityNetwork,
		CapabilityCookies,
		CapabilityPrivacy,
	}
}

// ParseCapability validates a capability name.
func ParseCapability(s string) (Capability, error) {
	for _, c := range AllCapabilities() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrInvalidCapability, s)
}
