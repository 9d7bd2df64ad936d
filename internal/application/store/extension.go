package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/domain/repository"
	"github.com/bnema/bezier/internal/logging"
)

// ErrInvalidExtension is returned when an extension cannot be installed.
var ErrInvalidExtension = errors.New("invalid extension")

// ExtensionState is the persisted form of an ExtensionStore.
type ExtensionState struct {
	Extensions   []entity.Extension        `json:"extensions"`
	MessageQueue []entity.ExtensionMessage `json:"messageQueue"`
}

// ExtensionSpec is the manifest-derived data of an extension to install.
type ExtensionSpec struct {
	Name           string                 `json:"name"`
	Version        string                 `json:"version"`
	Description    string                 `json:"description"`
	Permissions    []entity.Capability    `json:"permissions"`
	Icon           string                 `json:"icon"`
	Background     bool                   `json:"background,omitempty"`
	ContentScripts []entity.ContentScript `json:"contentScripts"`
	Manifest       map[string]any         `json:"manifest"`
}

func (s ExtensionSpec) validate() error {
	var problems []string
	if strings.TrimSpace(s.Name) == "" {
		problems = append(problems, "name is required")
	}
	for _, p := range s.Permissions {
		if _, err := entity.ParseCapability(string(p)); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, strings.Join(problems, "; "))
	}
	return nil
}

// ExtensionPatch lists the extension fields an update may change.
type ExtensionPatch struct {
	Name           *string                 `json:"name,omitempty"`
	Version        *string                 `json:"version,omitempty"`
	Description    *string                 `json:"description,omitempty"`
	Enabled        *bool                   `json:"enabled,omitempty"`
	Icon           *string                 `json:"icon,omitempty"`
	Background     *bool                   `json:"background,omitempty"`
	ContentScripts *[]entity.ContentScript `json:"contentScripts,omitempty"`
	Manifest       map[string]any          `json:"manifest,omitempty"`
	Settings       map[string]any          `json:"settings,omitempty"`
}

// ExtensionStore tracks installed extensions and the messages queued for
// them. Nothing here runs extension code.
type ExtensionStore struct {
	notifier

	mu         sync.RWMutex
	extensions []*entity.Extension
	queue      []entity.ExtensionMessage

	ids       port.IDGenerator
	clock     port.Clock
	persister *Persister
}

// NewExtensionStore creates an empty store.
func NewExtensionStore(persister *Persister, ids port.IDGenerator, clock port.Clock) *ExtensionStore {
	if ids == nil {
		ids = port.NewUUIDGenerator()
	}
	if clock == nil {
		clock = port.SystemClock
	}
	return &ExtensionStore{ids: ids, clock: clock, persister: persister}
}

// Load restores the saved extensions and message queue.
func (s *ExtensionStore) Load(ctx context.Context) {
	var state ExtensionState
	if !load(ctx, s.persister, repository.KeyExtensionState, &state) {
		return
	}
	s.mu.Lock()
	s.extensions = make([]*entity.Extension, 0, len(state.Extensions))
	for i := range state.Extensions {
		e := state.Extensions[i].Clone()
		s.extensions = append(s.extensions, &e)
	}
	s.queue = slices.Clone(state.MessageQueue)
	n := len(s.extensions)
	s.mu.Unlock()

	logging.FromContext(ctx).Debug().Int("extensions", n).Msg("extension state restored")
}

// State returns a detached copy of the store.
func (s *ExtensionStore) State() ExtensionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := ExtensionState{
		Extensions:   make([]entity.Extension, 0, len(s.extensions)),
		MessageQueue: slices.Clone(s.queue),
	}
	if state.MessageQueue == nil {
		state.MessageQueue = []entity.ExtensionMessage{}
	}
	for _, e := range s.extensions {
		state.Extensions = append(state.Extensions, e.Clone())
	}
	return state
}

func (s *ExtensionStore) document() ([]byte, error) {
	return encode(s.State())
}

func (s *ExtensionStore) mutate(ctx context.Context, op string, fn func() (id string, changed bool)) bool {
	var (
		id      string
		changed bool
	)
	func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		id, changed = fn()
	}()
	return commit(ctx, &s.notifier, s.persister, repository.KeyExtensionState, s.document,
		Event{Topic: TopicExtensions, Op: op, ID: id, At: s.clock()}, changed)
}

// Extensions returns the installed extensions.
func (s *ExtensionStore) Extensions() []entity.Extension {
	return s.State().Extensions
}

// Extension returns one installed extension.
func (s *ExtensionStore) Extension(id entity.ExtensionID) (entity.Extension, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e := s.find(id); e != nil {
		return e.Clone(), true
	}
	return entity.Extension{}, false
}

// Messages returns the pending message queue in send order.
func (s *ExtensionStore) Messages() []entity.ExtensionMessage {
	return s.State().MessageQueue
}

// InstallExtension adds an enabled extension with empty settings and
// storage.
func (s *ExtensionStore) InstallExtension(ctx context.Context, spec ExtensionSpec) (entity.ExtensionID, error) {
	if err := spec.validate(); err != nil {
		return "", err
	}
	id := entity.ExtensionID(s.ids())
	s.mutate(ctx, "install", func() (string, bool) {
		manifest := maps.Clone(spec.Manifest)
		if manifest == nil {
			manifest = map[string]any{}
		}
		s.extensions = append(s.extensions, &entity.Extension{
			ID:             id,
			Name:           spec.Name,
			Version:        spec.Version,
			Description:    spec.Description,
			Enabled:        true,
			Permissions:    slices.Clone(spec.Permissions),
			Icon:           spec.Icon,
			Background:     spec.Background,
			ContentScripts: slices.Clone(spec.ContentScripts),
			Manifest:       manifest,
			Settings:       map[string]any{},
			StorageData:    map[string]any{},
		})
		return string(id), true
	})
	return id, nil
}

// UninstallExtension removes an extension and any messages queued for it.
func (s *ExtensionStore) UninstallExtension(ctx context.Context, id entity.ExtensionID) {
	s.mutate(ctx, "uninstall", func() (string, bool) {
		idx := s.index(id)
		if idx < 0 {
			return string(id), false
		}
		s.extensions = slices.Delete(s.extensions, idx, idx+1)
		s.dropMessages(id)
		return string(id), true
	})
}

// ToggleExtension flips the enabled flag.
func (s *ExtensionStore) ToggleExtension(ctx context.Context, id entity.ExtensionID) {
	s.mutate(ctx, "toggle", func() (string, bool) {
		e := s.find(id)
		if e == nil {
			return string(id), false
		}
		e.Enabled = !e.Enabled
		return string(id), true
	})
}

// UpdateExtension merges patch into an extension. Manifest and Settings
// replace the stored maps.
func (s *ExtensionStore) UpdateExtension(ctx context.Context, id entity.ExtensionID, patch ExtensionPatch) {
	s.mutate(ctx, "update", func() (string, bool) {
		e := s.find(id)
		if e == nil {
			return string(id), false
		}
		applyString(&e.Name, patch.Name)
		applyString(&e.Version, patch.Version)
		applyString(&e.Description, patch.Description)
		applyBool(&e.Enabled, patch.Enabled)
		applyString(&e.Icon, patch.Icon)
		applyBool(&e.Background, patch.Background)
		if patch.ContentScripts != nil {
			e.ContentScripts = slices.Clone(*patch.ContentScripts)
		}
		if patch.Manifest != nil {
			e.Manifest = maps.Clone(patch.Manifest)
		}
		if patch.Settings != nil {
			e.Settings = maps.Clone(patch.Settings)
		}
		return string(id), true
	})
}

// SendMessage queues a message for an installed, enabled extension.
func (s *ExtensionStore) SendMessage(ctx context.Context, msg entity.ExtensionMessage) string {
	msg.ID = s.ids()
	ok := s.mutate(ctx, "send_message", func() (string, bool) {
		e := s.find(msg.ExtensionID)
		if e == nil || !e.Enabled {
			return string(msg.ExtensionID), false
		}
		s.queue = append(s.queue, msg)
		return msg.ID, true
	})
	if !ok {
		return ""
	}
	return msg.ID
}

// ProcessMessage marks the messages of msg's extension as handled,
// dropping every message queued for that extension.
func (s *ExtensionStore) ProcessMessage(ctx context.Context, msg entity.ExtensionMessage) {
	s.mutate(ctx, "process_message", func() (string, bool) {
		return string(msg.ExtensionID), s.dropMessages(msg.ExtensionID)
	})
}

// ClearMessages empties the queue.
func (s *ExtensionStore) ClearMessages(ctx context.Context) {
	s.mutate(ctx, "clear_messages", func() (string, bool) {
		if len(s.queue) == 0 {
			return "", false
		}
		s.queue = nil
		return "", true
	})
}

// UpdateExtensionStorage merges data into an extension's storage area.
func (s *ExtensionStore) UpdateExtensionStorage(ctx context.Context, id entity.ExtensionID, data map[string]any) {
	s.mutate(ctx, "update_storage", func() (string, bool) {
		e := s.find(id)
		if e == nil {
			return string(id), false
		}
		if e.StorageData == nil {
			e.StorageData = make(map[string]any, len(data))
		}
		maps.Copy(e.StorageData, data)
		return string(id), true
	})
}

// ClearExtensionStorage empties an extension's storage area.
func (s *ExtensionStore) ClearExtensionStorage(ctx context.Context, id entity.ExtensionID) {
	s.mutate(ctx, "clear_storage", func() (string, bool) {
		e := s.find(id)
		if e == nil {
			return string(id), false
		}
		e.StorageData = map[string]any{}
		return string(id), true
	})
}

func (s *ExtensionStore) dropMessages(id entity.ExtensionID) bool {
	before := len(s.queue)
	s.queue = slices.DeleteFunc(s.queue, func(m entity.ExtensionMessage) bool { return m.ExtensionID == id })
	return len(s.queue) != before
}

func (s *ExtensionStore) find(id entity.ExtensionID) *entity.Extension {
	if idx := s.index(id); idx >= 0 {
		return s.extensions[idx]
	}
	return nil
}

func (s *ExtensionStore) index(id entity.ExtensionID) int {
	return slices.IndexFunc(s.extensions, func(e *entity.Extension) bool { return e.ID == id })
}
