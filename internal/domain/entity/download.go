package entity

import "slices"

// DownloadID uniquely identifies a download record.
type DownloadID string

// DownloadStatus is the lifecycle state of a download.
type DownloadStatus string

const (
	DownloadPending     DownloadStatus = "pending"
	DownloadDownloading DownloadStatus = "downloading"
	DownloadPaused      DownloadStatus = "paused"
	DownloadCompleted   DownloadStatus = "completed"
	DownloadError       DownloadStatus = "error"
)

// IsTerminal reports whether no further transitions are possible.
func (s DownloadStatus) IsTerminal() bool {
	return s == DownloadCompleted || s == DownloadError
}

// IsValid reports whether s is a known status.
func (s DownloadStatus) IsValid() bool {
	switch s {
	case DownloadPending, DownloadDownloading, DownloadPaused, DownloadCompleted, DownloadError:
		return true
	}
	return false
}

// CanTransition reports whether a record in state s may move to next.
//
//	pending -> downloading -> {paused <-> downloading} -> {completed | error}
//
// A pending download may also be paused, fail, or complete without ever
// reporting progress. Removal is not a status and is allowed from any state.
func (s DownloadStatus) CanTransition(next DownloadStatus) bool {
	if s == next {
		return !s.IsTerminal()
	}
	switch s {
	case DownloadPending:
		return next == DownloadDownloading || next == DownloadPaused ||
			next == DownloadCompleted || next == DownloadError
	case DownloadDownloading:
		return next == DownloadPaused || next == DownloadCompleted || next == DownloadError
	case DownloadPaused:
		return next == DownloadDownloading || next == DownloadError
	}
	return false
}

// DownloadChunk records the byte range covered by one streamed read.
type DownloadChunk struct {
	ID       string  `json:"id"`
	Start    int64   `json:"start"`
	End      int64   `json:"end"`
	Progress float64 `json:"progress"`
}

// DownloadItem is a tracked transfer.
type DownloadItem struct {
	ID             DownloadID      `json:"id"`
	URL            string          `json:"url"`
	Filename       string          `json:"filename"`
	Progress       float64         `json:"progress"` // percent, 0..100
	Status         DownloadStatus  `json:"status"`
	Speed          float64         `json:"speed"`         // bytes per second
	TimeRemaining  float64         `json:"timeRemaining"` // seconds
	Size           int64           `json:"size"`
	DownloadedSize int64           `json:"downloadedSize"`
	StartTime      Millis          `json:"startTime"`
	EndTime        Millis          `json:"endTime,omitempty"`
	Error          string          `json:"error,omitempty"`
	Chunks         []DownloadChunk `json:"chunks"`
}

// Clone returns a copy that does not share the chunk slice.
func (d *DownloadItem) Clone() DownloadItem {
	c := *d
	c.Chunks = slices.Clone(d.Chunks)
	if c.Chunks == nil {
		c.Chunks = []DownloadChunk{}
	}
	return c
}
