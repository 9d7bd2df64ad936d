// Package analytics computes read-side views over the history log.
// Nothing here holds state; every function is a pure function of its input.
package analytics

import (
	"cmp"
	"slices"
	"time"

	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/domain/url"
)

// DayFormat is the calendar-day key used by DailyVisits.
const DayFormat = "2006-01-02"

// MaxDays bounds the DailyVisits window.
const MaxDays = 366

// DailyVisits groups entries by the calendar day of their most recent visit,
// for every day from now-days through now inclusive. Days without visits
// are present with zero counts. Buckets use now's location. days is
// clamped to [0, MaxDays].
func DailyVisits(entries []entity.HistoryEntry, days int, now time.Time) []*entity.DailyVisitCount {
	days = min(max(days, 0), MaxDays)
	loc := now.Location()
	start := startOfDay(now.AddDate(0, 0, -days))

	buckets := make([]*entity.DailyVisitCount, 0, days+1)
	index := make(map[string]*entity.DailyVisitCount, days+1)
	for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
		b := &entity.DailyVisitCount{Day: d.Format(DayFormat)}
		buckets = append(buckets, b)
		index[b.Day] = b
	}

	for i := range entries {
		day := entries[i].Timestamp.Time().In(loc).Format(DayFormat)
		if b, ok := index[day]; ok {
			b.Entries++
			b.Visits += entries[i].VisitCount
		}
	}
	return buckets
}

// TopLocations returns up to n entries ranked by visit count, most recent
// first on ties.
func TopLocations(entries []entity.HistoryEntry, n int) []*entity.LocationStat {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b entity.HistoryEntry) int {
		if c := cmp.Compare(b.VisitCount, a.VisitCount); c != 0 {
			return c
		}
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})

	out := make([]*entity.LocationStat, 0, max(0, min(n, len(sorted))))
	for _, e := range sorted {
		if len(out) >= n {
			break
		}
		out = append(out, &entity.LocationStat{URL: e.URL, Title: e.Title, VisitCount: e.VisitCount})
	}
	return out
}

// TopDomains aggregates entries per domain and returns the n domains with
// the most visits. Entries without a host are skipped.
func TopDomains(entries []entity.HistoryEntry, n int) []*entity.DomainStat {
	byDomain := make(map[string]*entity.DomainStat)
	for _, e := range entries {
		domain := url.ExtractDomain(e.URL)
		if domain == "" {
			continue
		}
		stat, ok := byDomain[domain]
		if !ok {
			stat = &entity.DomainStat{Domain: domain}
			byDomain[domain] = stat
		}
		stat.PageCount++
		stat.TotalVisits += e.VisitCount
		stat.LastVisit = max(stat.LastVisit, e.Timestamp)
	}

	stats := make([]*entity.DomainStat, 0, len(byDomain))
	for _, s := range byDomain {
		stats = append(stats, s)
	}
	slices.SortFunc(stats, func(a, b *entity.DomainStat) int {
		if c := cmp.Compare(b.TotalVisits, a.TotalVisits); c != 0 {
			return c
		}
		return cmp.Compare(a.Domain, b.Domain)
	})
	if len(stats) > n {
		stats = stats[:max(n, 0)]
	}
	return stats
}

// AverageDuration is the mean accumulated duration per entry, in
// milliseconds. Entries without a duration count as zero.
func AverageDuration(entries []entity.HistoryEntry) int64 {
	if len(entries) == 0 {
		return 0
	}
	var total int64
	for _, e := range entries {
		total += e.Duration
	}
	return total / int64(len(entries))
}

// UniqueDays counts distinct calendar days (in loc) among the entries.
func UniqueDays(entries []entity.HistoryEntry, loc *time.Location) int64 {
	seen := make(map[string]struct{})
	for _, e := range entries {
		seen[e.Timestamp.Time().In(loc).Format(DayFormat)] = struct{}{}
	}
	return int64(len(seen))
}

// Summarize builds every view at once.
func Summarize(entries []entity.HistoryEntry, days, topN int, now time.Time) *entity.HistoryAnalytics {
	var visits int64
	for _, e := range entries {
		visits += e.VisitCount
	}
	return &entity.HistoryAnalytics{
		TotalEntries:    int64(len(entries)),
		TotalVisits:     visits,
		UniqueDays:      UniqueDays(entries, now.Location()),
		AverageDuration: AverageDuration(entries),
		TopLocations:    TopLocations(entries, topN),
		TopDomains:      TopDomains(entries, topN),
		DailyVisits:     DailyVisits(entries, days, now),
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
