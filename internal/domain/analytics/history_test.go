package analytics_test

import (
	"testing"
	"time"

	"github.com/bnema/bezier/internal/domain/analytics"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func at(daysAgo int, hour int) entity.Millis {
	d := now.AddDate(0, 0, -daysAgo)
	return entity.MillisFrom(time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC))
}

func sampleHistory() []entity.HistoryEntry {
	return []entity.HistoryEntry{
		{ID: "1", URL: "https://www.google.com/search?q=a", Title: "Google", Timestamp: at(0, 9), VisitCount: 5, Duration: 60000},
		{ID: "2", URL: "https://mail.google.com/", Title: "Mail", Timestamp: at(0, 10), VisitCount: 2, Duration: 30000},
		{ID: "3", URL: "https://go.dev/doc", Title: "Docs", Timestamp: at(2, 12), VisitCount: 5},
		{ID: "4", URL: "https://example.com", Title: "Example", Timestamp: at(40, 8), VisitCount: 1, Duration: 10000},
		{ID: "5", URL: "about:blank", Title: "Blank", Timestamp: at(1, 8), VisitCount: 1},
	}
}

func TestDailyVisits(t *testing.T) {
	days := analytics.DailyVisits(sampleHistory(), 7, now)

	require.Len(t, days, 8)
	assert.Equal(t, "2026-03-03", days[0].Day)
	assert.Equal(t, "2026-03-10", days[7].Day)

	assert.Equal(t, int64(2), days[7].Entries)
	assert.Equal(t, int64(7), days[7].Visits)
	assert.Equal(t, int64(1), days[6].Entries)
	assert.Equal(t, int64(5), days[5].Visits)
	assert.Equal(t, int64(0), days[0].Entries)
}

func TestDailyVisits_ClampsWindow(t *testing.T) {
	assert.Len(t, analytics.DailyVisits(nil, 3_000_000, now), analytics.MaxDays+1)
	assert.Len(t, analytics.DailyVisits(nil, -5, now), 1)
}

func TestTopLocations(t *testing.T) {
	top := analytics.TopLocations(sampleHistory(), 2)

	require.Len(t, top, 2)
	// Tie on 5 visits broken by recency.
	assert.Equal(t, "Google", top[0].Title)
	assert.Equal(t, "Docs", top[1].Title)

	assert.Empty(t, analytics.TopLocations(nil, 10))
}

func TestTopDomains(t *testing.T) {
	top := analytics.TopDomains(sampleHistory(), 10)

	require.Len(t, top, 4)
	// Tie on 5 visits broken alphabetically.
	assert.Equal(t, "go.dev", top[0].Domain)
	assert.Equal(t, "google.com", top[1].Domain)
	assert.Equal(t, int64(5), top[1].TotalVisits)
	assert.Equal(t, "mail.google.com", top[2].Domain)
	assert.Equal(t, "example.com", top[3].Domain)

	assert.Len(t, analytics.TopDomains(sampleHistory(), 1), 1)
}

func TestAverageDuration(t *testing.T) {
	assert.Equal(t, int64(20000), analytics.AverageDuration(sampleHistory()))
	assert.Equal(t, int64(0), analytics.AverageDuration(nil))
}

func TestSummarize(t *testing.T) {
	s := analytics.Summarize(sampleHistory(), 30, 10, now)

	assert.Equal(t, int64(5), s.TotalEntries)
	assert.Equal(t, int64(14), s.TotalVisits)
	assert.Equal(t, int64(4), s.UniqueDays)
	assert.Len(t, s.DailyVisits, 31)
	assert.Len(t, s.TopLocations, 5)
}
