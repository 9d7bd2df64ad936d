package entity

import "slices"

// HistoryID uniquely identifies a history entry.
type HistoryID string

// HistoryEntry represents a visited location.
// There is at most one entry per distinct URL.
type HistoryEntry struct {
	ID         HistoryID `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Favicon    string    `json:"favicon,omitempty"`
	Timestamp  Millis    `json:"timestamp"`
	VisitCount int64     `json:"visitCount"`
	Duration   int64     `json:"duration,omitempty"` // accumulated milliseconds
	Referrer   string    `json:"referrer,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
}

// RecordVisit updates the entry for a repeat visit.
func (h *HistoryEntry) RecordVisit(at Millis, duration int64) {
	h.VisitCount++
	h.Timestamp = at
	if duration > 0 {
		h.Duration += duration
	}
}

// Clone returns a copy that does not share the tag slice.
func (h *HistoryEntry) Clone() HistoryEntry {
	c := *h
	c.Tags = slices.Clone(h.Tags)
	return c
}

// DomainStat contains per-domain visit statistics.
type DomainStat struct {
	Domain      string `json:"domain"`
	PageCount   int64  `json:"page_count"`
	TotalVisits int64  `json:"total_visits"`
	LastVisit   Millis `json:"last_visit"`
}

// LocationStat ranks a single location by visit count.
type LocationStat struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	VisitCount int64  `json:"visit_count"`
}

// DailyVisitCount contains visit counts by day.
type DailyVisitCount struct {
	Day     string `json:"day"`
	Entries int64  `json:"entries"`
	Visits  int64  `json:"visits"`
}

// HistoryAnalytics contains the derived read-side views over history.
type HistoryAnalytics struct {
	TotalEntries    int64              `json:"total_entries"`
	TotalVisits     int64              `json:"total_visits"`
	UniqueDays      int64              `json:"unique_days"`
	AverageDuration int64              `json:"average_duration_ms"`
	TopLocations    []*LocationStat    `json:"top_locations"`
	TopDomains      []*DomainStat      `json:"top_domains"`
	DailyVisits     []*DailyVisitCount `json:"daily_visits"`
}
