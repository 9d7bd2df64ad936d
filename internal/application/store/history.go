package store

import (
	"context"
	"slices"

	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/domain/url"
)

// VisitInfo describes a visit to record.
type VisitInfo struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Favicon  string   `json:"favicon,omitempty"`
	Duration int64    `json:"duration,omitempty"` // milliseconds spent on the page
	Referrer string   `json:"referrer,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// History returns the log most recent first.
func (s *BrowserStore) History() []entity.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.HistoryEntry, 0, len(s.history))
	for _, h := range s.history {
		out = append(out, h.Clone())
	}
	return out
}

// AddHistoryEntry records a visit. A repeat visit to a known location
// bumps that entry's count, refreshes its timestamp and moves it to the
// front; a new location is prepended with a count of one.
func (s *BrowserStore) AddHistoryEntry(ctx context.Context, visit VisitInfo) entity.HistoryID {
	location := url.Sanitize(url.Normalize(visit.URL))
	var id entity.HistoryID
	s.mutate(ctx, TopicHistory, "visit", func() (string, bool) {
		now := s.now()
		idx := slices.IndexFunc(s.history, func(h *entity.HistoryEntry) bool { return h.URL == location })
		if idx >= 0 {
			entry := s.history[idx]
			entry.RecordVisit(now, visit.Duration)
			if visit.Title != "" {
				entry.Title = visit.Title
			}
			if visit.Favicon != "" {
				entry.Favicon = visit.Favicon
			}
			s.history = slices.Delete(s.history, idx, idx+1)
			s.history = slices.Insert(s.history, 0, entry)
			id = entry.ID
			return string(id), true
		}

		id = entity.HistoryID(s.opts.IDs())
		entry := &entity.HistoryEntry{
			ID:         id,
			Title:      visit.Title,
			URL:        location,
			Favicon:    visit.Favicon,
			Timestamp:  now,
			VisitCount: 1,
			Duration:   max(visit.Duration, 0),
			Referrer:   visit.Referrer,
			Tags:       slices.Clone(visit.Tags),
		}
		s.history = slices.Insert(s.history, 0, entry)
		s.trimHistory()
		return string(id), true
	})
	return id
}

// trimHistory drops the oldest entries beyond the configured cap.
// Must hold s.mu.
func (s *BrowserStore) trimHistory() {
	limit := s.opts.MaxHistoryEntries
	if limit <= 0 || len(s.history) <= limit {
		return
	}
	clear(s.history[limit:])
	s.history = s.history[:limit]
}

// ClearHistory empties the log.
func (s *BrowserStore) ClearHistory(ctx context.Context) {
	s.mutate(ctx, TopicHistory, "clear", func() (string, bool) {
		if len(s.history) == 0 {
			return "", false
		}
		s.history = nil
		return "", true
	})
}

// RemoveHistoryEntry deletes one entry.
func (s *BrowserStore) RemoveHistoryEntry(ctx context.Context, id entity.HistoryID) {
	s.mutate(ctx, TopicHistory, "remove", func() (string, bool) {
		before := len(s.history)
		s.history = slices.DeleteFunc(s.history, func(h *entity.HistoryEntry) bool { return h.ID == id })
		return string(id), len(s.history) != before
	})
}
