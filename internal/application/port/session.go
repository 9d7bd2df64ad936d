package port

import (
	"context"

	"github.com/bnema/bezier/internal/domain/entity"
)

// ImportedGroup is a tab group read from another browser's session.
type ImportedGroup struct {
	Key   string
	Name  string
	Color string
}

// ImportedTab is a tab read from another browser's session.
type ImportedTab struct {
	Title        string
	URL          string
	GroupKey     string
	Pinned       bool
	Hibernated   bool
	Active       bool
	LastAccessed entity.Millis
}

// ImportedSession is the browser-neutral result of a session read.
type ImportedSession struct {
	Tabs   []ImportedTab
	Groups []ImportedGroup
}

// SessionSource reads an external browser session.
type SessionSource interface {
	ReadSession(ctx context.Context) (*ImportedSession, error)
}
