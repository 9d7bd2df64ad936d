package entity

import (
	"maps"
	"slices"
)

// ExtensionID uniquely identifies an installed extension.
type ExtensionID string

// ContentScript declares the assets injected into matching pages.
type ContentScript struct {
	Matches []string `json:"matches"`
	JS      []string `json:"js"`
	CSS     []string `json:"css"`
}

// Extension is installed extension metadata. Extensions are never executed;
// only their manifest, settings and storage are tracked.
type Extension struct {
	ID             ExtensionID     `json:"id"`
	Name           string          `json:"name"`
	Version        string          `json:"version"`
	Description    string          `json:"description"`
	Enabled        bool            `json:"enabled"`
	Permissions    []Capability    `json:"permissions"`
	Icon           string          `json:"icon"`
	Background     bool            `json:"background,omitempty"`
	ContentScripts []ContentScript `json:"contentScripts"`
	Manifest       map[string]any  `json:"manifest"`
	Settings       map[string]any  `json:"settings,omitempty"`
	StorageData    map[string]any  `json:"storageData,omitempty"`
}

// Clone returns a copy whose slices and top-level maps are not shared.
func (e *Extension) Clone() Extension {
	c := *e
	c.Permissions = slices.Clone(e.Permissions)
	c.ContentScripts = slices.Clone(e.ContentScripts)
	c.Manifest = maps.Clone(e.Manifest)
	c.Settings = maps.Clone(e.Settings)
	c.StorageData = maps.Clone(e.StorageData)
	return c
}

// ExtensionMessage is a queued message addressed to an extension.
type ExtensionMessage struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Payload     any         `json:"payload"`
	ExtensionID ExtensionID `json:"extensionId"`
	TabID       TabID       `json:"tabId,omitempty"`
}
