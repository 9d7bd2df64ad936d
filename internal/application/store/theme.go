package store

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/domain/repository"
	"github.com/bnema/bezier/internal/logging"
)

// ThemeState is the persisted form of a ThemeStore.
type ThemeState struct {
	CurrentTheme entity.Theme         `json:"currentTheme"`
	CustomThemes []entity.Theme       `json:"customThemes"`
	Presets      []entity.ThemePreset `json:"presets"`
}

// ThemePatch lists the theme fields an update may change. CustomProperties
// are merged key by key; an empty value deletes the key.
type ThemePatch struct {
	Name             *string               `json:"name,omitempty" yaml:"name,omitempty"`
	Colors           *entity.Palette       `json:"colors,omitempty" yaml:"colors,omitempty"`
	Fonts            *entity.ThemeFonts    `json:"fonts,omitempty" yaml:"fonts,omitempty"`
	CustomProperties map[string]string     `json:"customProperties,omitempty" yaml:"customProperties,omitempty"`
	Metadata         *entity.ThemeMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ThemeStore owns the active theme, the user's custom themes and saved
// presets. Custom themes are independent of the active selection.
type ThemeStore struct {
	notifier

	mu      sync.RWMutex
	current entity.Theme
	custom  []entity.Theme
	presets []entity.ThemePreset

	ids       port.IDGenerator
	clock     port.Clock
	persister *Persister
}

// NewThemeStore creates a store holding the default theme.
func NewThemeStore(persister *Persister, ids port.IDGenerator, clock port.Clock) *ThemeStore {
	if ids == nil {
		ids = port.NewUUIDGenerator()
	}
	if clock == nil {
		clock = port.SystemClock
	}
	return &ThemeStore{
		current:   entity.DefaultTheme(),
		ids:       ids,
		clock:     clock,
		persister: persister,
	}
}

// Load restores saved themes. Invalid saved themes are skipped and an
// invalid current theme falls back to the default.
func (s *ThemeStore) Load(ctx context.Context) {
	var state ThemeState
	if !load(ctx, s.persister, repository.KeyThemeState, &state) {
		return
	}
	log := logging.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := state.CurrentTheme.Validate(); err != nil {
		log.Warn().Err(err).Msg("saved theme is invalid, using default")
	} else {
		s.current = state.CurrentTheme.Clone()
	}
	s.custom = s.custom[:0]
	for i := range state.CustomThemes {
		t := &state.CustomThemes[i]
		if err := t.Validate(); err != nil {
			log.Warn().Err(err).Str("theme", string(t.ID)).Msg("skipping invalid custom theme")
			continue
		}
		s.custom = append(s.custom, t.Clone())
	}
	s.presets = slices.Clone(state.Presets)
}

// State returns a detached copy of the store.
func (s *ThemeStore) State() ThemeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *ThemeStore) stateLocked() ThemeState {
	state := ThemeState{
		CurrentTheme: s.current.Clone(),
		CustomThemes: make([]entity.Theme, 0, len(s.custom)),
		Presets:      make([]entity.ThemePreset, 0, len(s.presets)),
	}
	for i := range s.custom {
		state.CustomThemes = append(state.CustomThemes, s.custom[i].Clone())
	}
	for _, p := range s.presets {
		p.Theme = p.Theme.Clone()
		state.Presets = append(state.Presets, p)
	}
	return state
}

func (s *ThemeStore) document() ([]byte, error) {
	return encode(s.State())
}

func (s *ThemeStore) mutate(ctx context.Context, op string, fn func() (id string, changed bool)) bool {
	var (
		id      string
		changed bool
	)
	func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		id, changed = fn()
	}()
	return commit(ctx, &s.notifier, s.persister, repository.KeyThemeState, s.document,
		Event{Topic: TopicTheme, Op: op, ID: id, At: s.clock()}, changed)
}

// CurrentTheme returns the active theme.
func (s *ThemeStore) CurrentTheme() entity.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// SetTheme replaces the active theme wholesale.
func (s *ThemeStore) SetTheme(ctx context.Context, theme entity.Theme) error {
	if err := theme.Validate(); err != nil {
		return err
	}
	s.mutate(ctx, "set", func() (string, bool) {
		s.current = theme.Clone()
		return string(theme.ID), true
	})
	return nil
}

// ResetTheme restores the default theme.
func (s *ThemeStore) ResetTheme(ctx context.Context) {
	s.mutate(ctx, "reset", func() (string, bool) {
		s.current = entity.DefaultTheme()
		return string(entity.DefaultThemeID), true
	})
}

// SelectTheme makes a custom theme or preset the active one.
func (s *ThemeStore) SelectTheme(ctx context.Context, id entity.ThemeID) bool {
	return s.mutate(ctx, "select", func() (string, bool) {
		if id == entity.DefaultThemeID {
			s.current = entity.DefaultTheme()
			return string(id), true
		}
		if idx := s.customIndex(id); idx >= 0 {
			s.current = s.custom[idx].Clone()
			return string(id), true
		}
		for _, p := range s.presets {
			if p.ID == string(id) || p.Theme.ID == id {
				s.current = p.Theme.Clone()
				return string(id), true
			}
		}
		return string(id), false
	})
}

// CustomThemes returns the user's themes in insertion order.
func (s *ThemeStore) CustomThemes() []entity.Theme {
	return s.State().CustomThemes
}

// AddCustomTheme stores a new custom theme under a fresh identifier.
func (s *ThemeStore) AddCustomTheme(ctx context.Context, theme entity.Theme) (entity.ThemeID, error) {
	if err := theme.Validate(); err != nil {
		return "", err
	}
	t := theme.Clone()
	t.ID = entity.ThemeID(s.ids())
	now := entity.MillisFrom(s.clock())
	if t.Metadata == nil {
		t.Metadata = &entity.ThemeMetadata{}
	}
	t.Metadata.CreatedAt = now
	t.Metadata.UpdatedAt = now

	s.mutate(ctx, "add_custom", func() (string, bool) {
		s.custom = append(s.custom, t)
		return string(t.ID), true
	})
	return t.ID, nil
}

// UpdateCustomTheme merges patch into a custom theme. The merged theme
// must still validate. An unknown identifier is a no-op.
func (s *ThemeStore) UpdateCustomTheme(ctx context.Context, id entity.ThemeID, patch ThemePatch) error {
	var verr error
	s.mutate(ctx, "update_custom", func() (string, bool) {
		idx := s.customIndex(id)
		if idx < 0 {
			return string(id), false
		}
		merged := s.custom[idx].Clone()
		applyThemePatch(&merged, patch)
		if err := merged.Validate(); err != nil {
			verr = fmt.Errorf("update theme %s: %w", id, err)
			return string(id), false
		}
		if merged.Metadata == nil {
			merged.Metadata = &entity.ThemeMetadata{}
		}
		merged.Metadata.UpdatedAt = entity.MillisFrom(s.clock())
		s.custom[idx] = merged
		return string(id), true
	})
	return verr
}

func applyThemePatch(t *entity.Theme, patch ThemePatch) {
	applyString(&t.Name, patch.Name)
	if patch.Colors != nil {
		t.Colors = *patch.Colors
	}
	if patch.Fonts != nil {
		t.Fonts = *patch.Fonts
	}
	if len(patch.CustomProperties) > 0 {
		if t.CustomProperties == nil {
			t.CustomProperties = make(map[string]string, len(patch.CustomProperties))
		}
		for k, v := range patch.CustomProperties {
			if v == "" {
				delete(t.CustomProperties, k)
				continue
			}
			t.CustomProperties[k] = v
		}
	}
	if patch.Metadata != nil {
		md := *patch.Metadata
		if t.Metadata != nil && md.CreatedAt.IsZero() {
			md.CreatedAt = t.Metadata.CreatedAt
		}
		t.Metadata = &md
	}
}

// RemoveCustomTheme deletes a custom theme. The active theme is untouched
// even if it was selected from the removed one.
func (s *ThemeStore) RemoveCustomTheme(ctx context.Context, id entity.ThemeID) {
	s.mutate(ctx, "remove_custom", func() (string, bool) {
		idx := s.customIndex(id)
		if idx < 0 {
			return string(id), false
		}
		s.custom = slices.Delete(s.custom, idx, idx+1)
		return string(id), true
	})
}

// Presets returns the saved presets.
func (s *ThemeStore) Presets() []entity.ThemePreset {
	return s.State().Presets
}

// AddPreset saves a preset, replacing one with the same identifier.
func (s *ThemeStore) AddPreset(ctx context.Context, preset entity.ThemePreset) error {
	if err := preset.Theme.Validate(); err != nil {
		return err
	}
	if preset.ID == "" {
		preset.ID = s.ids()
	}
	preset.Theme = preset.Theme.Clone()
	s.mutate(ctx, "add_preset", func() (string, bool) {
		idx := slices.IndexFunc(s.presets, func(p entity.ThemePreset) bool { return p.ID == preset.ID })
		if idx >= 0 {
			s.presets[idx] = preset
		} else {
			s.presets = append(s.presets, preset)
		}
		return preset.ID, true
	})
	return nil
}

// RemovePreset deletes a preset.
func (s *ThemeStore) RemovePreset(ctx context.Context, id string) {
	s.mutate(ctx, "remove_preset", func() (string, bool) {
		before := len(s.presets)
		s.presets = slices.DeleteFunc(s.presets, func(p entity.ThemePreset) bool { return p.ID == id })
		return id, len(s.presets) != before
	})
}

func (s *ThemeStore) customIndex(id entity.ThemeID) int {
	return slices.IndexFunc(s.custom, func(t entity.Theme) bool { return t.ID == id })
}

// CSSVariables renders the active theme as CSS custom properties. Custom
// properties override the generated ones.
func (s *ThemeStore) CSSVariables() map[string]string {
	t := s.CurrentTheme()
	vars := make(map[string]string, 30)
	for _, slot := range t.Colors.Slots() {
		vars["--color-"+slot.Name] = slot.Color
	}
	vars["--font-sans"] = t.Fonts.Sans
	vars["--font-mono"] = t.Fonts.Mono
	maps.Copy(vars, t.CustomProperties)
	return vars
}
