// Package firefox reads Firefox session-restore files into importable
// sessions.
package firefox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/infrastructure/mozlz4"
	"github.com/bnema/bezier/internal/logging"
)

// sessionFiles are tried in order: the live session, then the last closed one.
var sessionFiles = []string{"recovery.jsonlz4", "previous.jsonlz4"}

type rawEntry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type rawTab struct {
	Entries      []rawEntry `json:"entries"`
	Index        int        `json:"index"`
	LastAccessed int64      `json:"lastAccessed"`
	Pinned       bool       `json:"pinned"`
	Hidden       bool       `json:"hidden"`
	Group        string     `json:"groupId"`
}

type rawGroup struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type rawWindow struct {
	Tabs     []rawTab   `json:"tabs"`
	Groups   []rawGroup `json:"groups"`
	Selected int        `json:"selected"`
}

type rawSession struct {
	Windows        []rawWindow `json:"windows"`
	SelectedWindow int         `json:"selectedWindow"`
}

// ParseSession converts session-restore JSON into an ImportedSession.
// Tabs of every window are concatenated; only the selected tab of the
// selected window is marked active. Hidden tabs come back hibernated.
func ParseSession(data []byte) (*port.ImportedSession, error) {
	var raw rawSession
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse session JSON: %w", err)
	}

	selectedWindow := raw.SelectedWindow - 1
	if selectedWindow < 0 || selectedWindow >= len(raw.Windows) {
		selectedWindow = 0
	}

	session := &port.ImportedSession{}
	for winIdx, window := range raw.Windows {
		for _, g := range window.Groups {
			session.Groups = append(session.Groups, port.ImportedGroup{
				Key:   groupKey(winIdx, g.ID),
				Name:  g.Name,
				Color: g.Color,
			})
		}

		for tabIdx, rt := range window.Tabs {
			if len(rt.Entries) == 0 {
				continue
			}

			// index is 1-based; the current page is entries[index-1].
			entryIdx := rt.Index - 1
			if entryIdx < 0 || entryIdx >= len(rt.Entries) {
				entryIdx = len(rt.Entries) - 1
			}
			entry := rt.Entries[entryIdx]

			tab := port.ImportedTab{
				Title:        entry.Title,
				URL:          entry.URL,
				Pinned:       rt.Pinned,
				Hibernated:   rt.Hidden,
				Active:       winIdx == selectedWindow && tabIdx == window.Selected-1,
				LastAccessed: entity.Millis(rt.LastAccessed),
			}
			if rt.Group != "" {
				tab.GroupKey = groupKey(winIdx, rt.Group)
			}
			session.Tabs = append(session.Tabs, tab)
		}
	}
	return session, nil
}

// Group ids are only unique within a window.
func groupKey(window int, id string) string {
	return fmt.Sprintf("%d/%s", window, id)
}

// ReadSessionFile reads and parses the newest session file in profileDir.
func ReadSessionFile(profileDir string) (*port.ImportedSession, error) {
	backupDir := filepath.Join(profileDir, "sessionstore-backups")

	var data []byte
	var err error
	for _, name := range sessionFiles {
		data, err = os.ReadFile(filepath.Join(backupDir, name))
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("no session file found in %s", backupDir)
	}

	decompressed, err := mozlz4.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decompress session file: %w", err)
	}
	return ParseSession(decompressed)
}

// SessionReader is a port.SessionSource over one Firefox profile.
type SessionReader struct {
	ProfileDir string
}

var _ port.SessionSource = (*SessionReader)(nil)

// NewSessionReader creates a reader for profileDir.
func NewSessionReader(profileDir string) *SessionReader {
	return &SessionReader{ProfileDir: profileDir}
}

// ReadSession implements port.SessionSource.
func (r *SessionReader) ReadSession(ctx context.Context) (*port.ImportedSession, error) {
	session, err := ReadSessionFile(r.ProfileDir)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug().
		Str("profile", r.ProfileDir).
		Int("tabs", len(session.Tabs)).
		Int("groups", len(session.Groups)).
		Msg("firefox session read")
	return session, nil
}
