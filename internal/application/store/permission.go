package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/logging"
)

// PermissionGate records which capabilities have been granted. Grants live
// for the lifetime of the gate and are not persisted. Stores never consult
// it; callers that expose a capability check it themselves.
type PermissionGate struct {
	notifier

	mu       sync.RWMutex
	granted  map[entity.Capability]struct{}
	prompter port.PermissionPrompter
}

// NewPermissionGate creates a gate. A nil prompter denies every request.
func NewPermissionGate(prompter port.PermissionPrompter) *PermissionGate {
	return &PermissionGate{
		granted:  make(map[entity.Capability]struct{}),
		prompter: prompter,
	}
}

// Request asks the prompter for a capability and records a grant. Prompt
// errors count as a denial.
func (g *PermissionGate) Request(ctx context.Context, c entity.Capability) bool {
	if g.Has(c) {
		return true
	}
	log := logging.FromContext(ctx).With().Str("capability", string(c)).Logger()
	if g.prompter == nil {
		log.Debug().Msg("no permission prompter, denying")
		return false
	}
	ok, err := g.prompter.Prompt(ctx, c)
	if err != nil {
		log.Warn().Err(err).Msg("permission prompt failed, denying")
		return false
	}
	if !ok {
		log.Debug().Msg("permission denied")
		return false
	}

	g.mu.Lock()
	g.granted[c] = struct{}{}
	g.mu.Unlock()
	log.Info().Msg("permission granted")
	g.emit(Event{Topic: TopicPermissions, Op: "grant", ID: string(c), At: time.Now()})
	return true
}

// Has reports whether c has been granted.
func (g *PermissionGate) Has(c entity.Capability) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.granted[c]
	return ok
}

// Revoke withdraws a grant.
func (g *PermissionGate) Revoke(c entity.Capability) {
	g.mu.Lock()
	_, ok := g.granted[c]
	delete(g.granted, c)
	g.mu.Unlock()
	if ok {
		g.emit(Event{Topic: TopicPermissions, Op: "revoke", ID: string(c), At: time.Now()})
	}
}

// Clear withdraws every grant.
func (g *PermissionGate) Clear() {
	g.mu.Lock()
	n := len(g.granted)
	clear(g.granted)
	g.mu.Unlock()
	if n > 0 {
		g.emit(Event{Topic: TopicPermissions, Op: "clear", At: time.Now()})
	}
}

// All returns the granted capabilities in display order.
func (g *PermissionGate) All() []entity.Capability {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]entity.Capability, 0, len(g.granted))
	for _, c := range entity.AllCapabilities() {
		if _, ok := g.granted[c]; ok {
			out = append(out, c)
		}
	}
	return slices.Clip(out)
}
