package usecase

import (
	"context"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/domain/analytics"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/logging"
)

const (
	defaultAnalyticsDays = 30
	defaultAnalyticsTopN = 10
)

// HistorySource provides the history log, most recent first.
type HistorySource interface {
	History() []entity.HistoryEntry
}

// HistoryAnalyticsUseCase computes the derived read-side views over
// history. It holds no state of its own.
type HistoryAnalyticsUseCase struct {
	source HistorySource
	clock  port.Clock
}

// NewHistoryAnalyticsUseCase creates the analytics use case.
func NewHistoryAnalyticsUseCase(source HistorySource, clock port.Clock) *HistoryAnalyticsUseCase {
	if clock == nil {
		clock = port.SystemClock
	}
	return &HistoryAnalyticsUseCase{source: source, clock: clock}
}

// HistoryAnalyticsInput selects the reporting window.
type HistoryAnalyticsInput struct {
	Days int
	TopN int
}

// Execute summarizes the current history log.
func (uc *HistoryAnalyticsUseCase) Execute(ctx context.Context, input HistoryAnalyticsInput) *entity.HistoryAnalytics {
	days := input.Days
	if days <= 0 {
		days = defaultAnalyticsDays
	}
	days = min(days, analytics.MaxDays)
	topN := input.TopN
	if topN <= 0 {
		topN = defaultAnalyticsTopN
	}

	entries := uc.source.History()
	result := analytics.Summarize(entries, days, topN, uc.clock())

	logging.FromContext(ctx).Debug().
		Int("entries", len(entries)).
		Int("days", days).
		Msg("history analytics computed")
	return result
}
