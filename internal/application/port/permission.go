package port

import (
	"context"

	"github.com/bnema/bezier/internal/domain/entity"
)

// PermissionPrompter asks the user whether a capability may be granted.
type PermissionPrompter interface {
	// Prompt returns true when the user grants the capability.
	Prompt(ctx context.Context, capability entity.Capability) (bool, error)
}
