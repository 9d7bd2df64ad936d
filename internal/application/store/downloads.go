package store

import (
	"context"
	"slices"

	"github.com/bnema/bezier/internal/domain/download"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/domain/url"
)

// DownloadPatch carries the fields a transfer reports. A Status that the
// record cannot move to rejects the whole patch, and records in a terminal
// state accept no further patches.
type DownloadPatch struct {
	Filename       *string                 `json:"filename,omitempty"`
	Progress       *float64                `json:"progress,omitempty"`
	Status         *entity.DownloadStatus  `json:"status,omitempty"`
	Speed          *float64                `json:"speed,omitempty"`
	TimeRemaining  *float64                `json:"timeRemaining,omitempty"`
	Size           *int64                  `json:"size,omitempty"`
	DownloadedSize *int64                  `json:"downloadedSize,omitempty"`
	Error          *string                 `json:"error,omitempty"`
	Chunks         *[]entity.DownloadChunk `json:"chunks,omitempty"`
	EndTime        *entity.Millis          `json:"endTime,omitempty"`
}

// Downloads returns the records newest first.
func (s *BrowserStore) Downloads() []entity.DownloadItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.DownloadItem, 0, len(s.downloads))
	for _, d := range s.downloads {
		out = append(out, d.Clone())
	}
	return out
}

// Download returns a copy of one record.
func (s *BrowserStore) Download(id entity.DownloadID) (entity.DownloadItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.downloadIndex(id); idx >= 0 {
		return s.downloads[idx].Clone(), true
	}
	return entity.DownloadItem{}, false
}

// StartDownload creates a pending record with zero progress. The filename
// is reduced to a safe base name, derived from the location when empty.
func (s *BrowserStore) StartDownload(ctx context.Context, location, filename string) entity.DownloadID {
	id := entity.DownloadID(s.opts.IDs())
	s.mutate(ctx, TopicDownloads, "start", func() (string, bool) {
		src := url.Sanitize(url.Normalize(location))
		item := &entity.DownloadItem{
			ID:        id,
			URL:       src,
			Filename:  download.FilenameFor(src, filename, ""),
			Status:    entity.DownloadPending,
			StartTime: s.now(),
			Chunks:    []entity.DownloadChunk{},
		}
		s.downloads = slices.Insert(s.downloads, 0, item)
		return string(id), true
	})
	return id
}

// UpdateDownload merges a progress report or status change into a record.
// Moving to a terminal state stamps the end time when the patch has none.
func (s *BrowserStore) UpdateDownload(ctx context.Context, id entity.DownloadID, patch DownloadPatch) {
	s.mutate(ctx, TopicDownloads, "update", func() (string, bool) {
		idx := s.downloadIndex(id)
		if idx < 0 {
			return string(id), false
		}
		d := s.downloads[idx]
		if d.Status.IsTerminal() {
			return string(id), false
		}
		if patch.Status != nil && !d.Status.CanTransition(*patch.Status) {
			return string(id), false
		}

		if patch.Filename != nil {
			d.Filename = download.SanitizeFilename(*patch.Filename)
		}
		if patch.Progress != nil {
			d.Progress = min(max(*patch.Progress, 0), 100)
		}
		if patch.Speed != nil {
			d.Speed = *patch.Speed
		}
		if patch.TimeRemaining != nil {
			d.TimeRemaining = *patch.TimeRemaining
		}
		if patch.Size != nil {
			d.Size = *patch.Size
		}
		if patch.DownloadedSize != nil {
			d.DownloadedSize = *patch.DownloadedSize
		}
		applyString(&d.Error, patch.Error)
		if patch.Chunks != nil {
			d.Chunks = slices.Clone(*patch.Chunks)
		}
		if patch.EndTime != nil {
			d.EndTime = *patch.EndTime
		}
		if patch.Status != nil {
			d.Status = *patch.Status
		}

		if d.Status.IsTerminal() {
			if d.EndTime.IsZero() {
				d.EndTime = s.now()
			}
			d.Speed = 0
			d.TimeRemaining = 0
			if d.Status == entity.DownloadCompleted {
				d.Progress = 100
			}
		}
		return string(id), true
	})
}

// PauseDownload moves a pending or running record to paused.
func (s *BrowserStore) PauseDownload(ctx context.Context, id entity.DownloadID) {
	s.transitionDownload(ctx, "pause", id, entity.DownloadPaused, entity.DownloadPending, entity.DownloadDownloading)
}

// ResumeDownload moves a paused record back to downloading.
func (s *BrowserStore) ResumeDownload(ctx context.Context, id entity.DownloadID) {
	s.transitionDownload(ctx, "resume", id, entity.DownloadDownloading, entity.DownloadPaused)
}

func (s *BrowserStore) transitionDownload(ctx context.Context, op string, id entity.DownloadID, to entity.DownloadStatus, from ...entity.DownloadStatus) {
	s.mutate(ctx, TopicDownloads, op, func() (string, bool) {
		idx := s.downloadIndex(id)
		if idx < 0 {
			return string(id), false
		}
		d := s.downloads[idx]
		if !slices.Contains(from, d.Status) {
			return string(id), false
		}
		d.Status = to
		if to == entity.DownloadPaused {
			d.Speed = 0
			d.TimeRemaining = 0
		}
		return string(id), true
	})
}

// CancelDownload deletes a record in any state and signals its transfer,
// if one is running, to stop.
func (s *BrowserStore) CancelDownload(ctx context.Context, id entity.DownloadID) {
	s.dropDownload(ctx, "cancel", id)
}

// RemoveDownload deletes a record in any state, as CancelDownload does.
func (s *BrowserStore) RemoveDownload(ctx context.Context, id entity.DownloadID) {
	s.dropDownload(ctx, "remove", id)
}

func (s *BrowserStore) dropDownload(ctx context.Context, op string, id entity.DownloadID) {
	var cancel func()
	s.mutate(ctx, TopicDownloads, op, func() (string, bool) {
		idx := s.downloadIndex(id)
		if idx < 0 {
			return string(id), false
		}
		s.downloads = slices.Delete(s.downloads, idx, idx+1)
		cancel = s.cancels[id]
		delete(s.cancels, id)
		return string(id), true
	})
	if cancel != nil {
		cancel()
	}
}

// RegisterCancel attaches the cancellation signal of a running transfer
// to a record. It reports false, without keeping fn, when the record no
// longer exists. The returned function detaches fn again.
func (s *BrowserStore) RegisterCancel(id entity.DownloadID, fn func()) (release func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.downloadIndex(id) < 0 {
		return func() {}, false
	}
	s.cancels[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.cancels, id)
		s.mu.Unlock()
	}, true
}

func (s *BrowserStore) downloadIndex(id entity.DownloadID) int {
	return slices.IndexFunc(s.downloads, func(d *entity.DownloadItem) bool { return d.ID == id })
}
