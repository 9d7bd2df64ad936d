package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/logging"
)

// ErrEmptySession is returned when the source session holds no tabs.
var ErrEmptySession = errors.New("session has no tabs")

// SessionTarget is the part of the browser store an import writes to.
type SessionTarget interface {
	AddTabGroup(ctx context.Context, name, color string, layout entity.GroupLayout) entity.GroupID
	InitializeTabs(ctx context.Context, tabs []entity.Tab)
}

// ImportSessionUseCase replaces the open tabs with another browser's
// session. Existing groups are kept; imported groups are added next to them.
type ImportSessionUseCase struct {
	source port.SessionSource
	target SessionTarget
}

// NewImportSessionUseCase creates the import use case.
func NewImportSessionUseCase(source port.SessionSource, target SessionTarget) *ImportSessionUseCase {
	return &ImportSessionUseCase{source: source, target: target}
}

// ImportSessionOutput reports what was imported.
type ImportSessionOutput struct {
	Tabs   int
	Groups int
}

// Execute reads the session and seeds the store with it.
func (uc *ImportSessionUseCase) Execute(ctx context.Context) (*ImportSessionOutput, error) {
	log := logging.FromContext(ctx)

	session, err := uc.source.ReadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if session == nil || len(session.Tabs) == 0 {
		return nil, ErrEmptySession
	}

	groups := make(map[string]entity.GroupID, len(session.Groups))
	for _, g := range session.Groups {
		if _, dup := groups[g.Key]; dup {
			continue
		}
		name := g.Name
		if name == "" {
			name = "Imported"
		}
		groups[g.Key] = uc.target.AddTabGroup(ctx, name, g.Color, entity.DefaultGroupLayout)
	}

	tabs := make([]entity.Tab, 0, len(session.Tabs))
	for _, it := range session.Tabs {
		tabs = append(tabs, entity.Tab{
			Title:        it.Title,
			URL:          it.URL,
			GroupID:      groups[it.GroupKey],
			IsActive:     it.Active,
			Pinned:       it.Pinned,
			Hibernated:   it.Hibernated && !it.Active,
			LastAccessed: it.LastAccessed,
		})
	}
	uc.target.InitializeTabs(ctx, tabs)

	log.Info().Int("tabs", len(tabs)).Int("groups", len(groups)).Msg("session imported")
	return &ImportSessionOutput{Tabs: len(tabs), Groups: len(groups)}, nil
}
