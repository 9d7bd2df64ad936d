// Package permission answers capability prompts from a fixed policy, for
// headless runs where nobody can be asked.
package permission

import (
	"context"

	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/logging"
)

// PolicyPrompter grants a fixed set of capabilities and denies the rest.
type PolicyPrompter struct {
	allowed map[entity.Capability]bool
}

// NewPolicyPrompter builds a prompter from capability names. Unknown
// names are ignored.
func NewPolicyPrompter(names []string) *PolicyPrompter {
	allowed := make(map[entity.Capability]bool, len(names))
	for _, name := range names {
		if c, err := entity.ParseCapability(name); err == nil {
			allowed[c] = true
		}
	}
	return &PolicyPrompter{allowed: allowed}
}

// Prompt implements port.PermissionPrompter.
func (p *PolicyPrompter) Prompt(ctx context.Context, c entity.Capability) (bool, error) {
	granted := p.allowed[c]
	logging.FromContext(ctx).Debug().
		Str("capability", string(c)).
		Bool("granted", granted).
		Msg("capability decided by policy")
	return granted, nil
}
