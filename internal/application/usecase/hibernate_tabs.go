package usecase

import (
	"context"
	"slices"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/domain/url"
	"github.com/bnema/bezier/internal/logging"
)

// TabController is the part of the browser store hibernation acts on.
type TabController interface {
	Tabs() []entity.Tab
	UpdateTab(ctx context.Context, id entity.TabID, patch store.TabPatch)
	CloseTab(ctx context.Context, id entity.TabID)
}

// HibernateTabsUseCase applies hibernation rules to idle tabs.
type HibernateTabsUseCase struct {
	tabs  TabController
	clock port.Clock
}

// NewHibernateTabsUseCase creates the hibernation use case.
func NewHibernateTabsUseCase(tabs TabController, clock port.Clock) *HibernateTabsUseCase {
	if clock == nil {
		clock = port.SystemClock
	}
	return &HibernateTabsUseCase{tabs: tabs, clock: clock}
}

// HibernateTabsOutput lists the tabs each action touched.
type HibernateTabsOutput struct {
	Hibernated []entity.TabID
	Closed     []entity.TabID
}

// Execute runs every enabled rule in order. A rule only fires while the
// number of tabs it counts exceeds MaxTabs, and stops once it no longer
// does. Active and pinned tabs are never touched.
func (uc *HibernateTabsUseCase) Execute(ctx context.Context, rules []entity.HibernationRule) *HibernateTabsOutput {
	log := logging.FromContext(ctx)
	out := &HibernateTabsOutput{}
	now := uc.clock()

	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		if err := rule.Validate(); err != nil {
			log.Warn().Err(err).Msg("skipping invalid hibernation rule")
			continue
		}

		tabs := uc.tabs.Tabs()
		count := 0
		for _, t := range tabs {
			if rule.Action == entity.HibernationActionClose || !t.Hibernated {
				count++
			}
		}
		if count <= rule.MaxTabs {
			continue
		}

		cutoff := entity.MillisFrom(now.Add(-rule.InactiveTime))
		candidates := make([]entity.Tab, 0, len(tabs))
		for _, t := range tabs {
			if t.IsActive || t.Pinned || t.LastAccessed > cutoff {
				continue
			}
			if rule.Action == entity.HibernationActionHibernate && t.Hibernated {
				continue
			}
			if excludedDomain(t.URL, rule.ExcludeDomains) {
				continue
			}
			candidates = append(candidates, t)
		}
		slices.SortStableFunc(candidates, func(a, b entity.Tab) int {
			switch {
			case a.LastAccessed < b.LastAccessed:
				return -1
			case a.LastAccessed > b.LastAccessed:
				return 1
			}
			return 0
		})

		hibernated := true
		for _, t := range candidates {
			if count <= rule.MaxTabs {
				break
			}
			tctx := logging.WithTabID(ctx, string(t.ID))
			logging.FromContext(tctx).Debug().Str("rule", rule.ID).Str("action", string(rule.Action)).Msg("unloading idle tab")
			switch rule.Action {
			case entity.HibernationActionClose:
				uc.tabs.CloseTab(tctx, t.ID)
				out.Closed = append(out.Closed, t.ID)
			default:
				uc.tabs.UpdateTab(tctx, t.ID, store.TabPatch{Hibernated: &hibernated})
				out.Hibernated = append(out.Hibernated, t.ID)
			}
			count--
		}
	}

	if len(out.Hibernated)+len(out.Closed) > 0 {
		log.Info().
			Int("hibernated", len(out.Hibernated)).
			Int("closed", len(out.Closed)).
			Msg("idle tabs unloaded")
	}
	return out
}

func excludedDomain(location string, domains []string) bool {
	for _, d := range domains {
		if url.MatchesDomain(location, d) {
			return true
		}
	}
	return false
}
