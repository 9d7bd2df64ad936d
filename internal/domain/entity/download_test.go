package entity_test

import (
	"testing"

	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestDownloadStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to entity.DownloadStatus
		want     bool
	}{
		{entity.DownloadPending, entity.DownloadDownloading, true},
		{entity.DownloadPending, entity.DownloadPaused, true},
		{entity.DownloadPending, entity.DownloadError, true},
		{entity.DownloadDownloading, entity.DownloadPaused, true},
		{entity.DownloadDownloading, entity.DownloadDownloading, true},
		{entity.DownloadDownloading, entity.DownloadCompleted, true},
		{entity.DownloadDownloading, entity.DownloadError, true},
		{entity.DownloadDownloading, entity.DownloadPending, false},
		{entity.DownloadPaused, entity.DownloadDownloading, true},
		{entity.DownloadPaused, entity.DownloadCompleted, false},
		{entity.DownloadCompleted, entity.DownloadDownloading, false},
		{entity.DownloadCompleted, entity.DownloadCompleted, false},
		{entity.DownloadError, entity.DownloadPaused, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestDownloadStatus_IsTerminal(t *testing.T) {
	assert.True(t, entity.DownloadCompleted.IsTerminal())
	assert.True(t, entity.DownloadError.IsTerminal())
	assert.False(t, entity.DownloadPaused.IsTerminal())
	assert.False(t, entity.DownloadStatus("bogus").IsValid())
}

func TestDownloadItem_Clone(t *testing.T) {
	item := entity.DownloadItem{ID: "d", Chunks: []entity.DownloadChunk{{ID: "c1", End: 10}}}
	c := item.Clone()
	c.Chunks[0].End = 99
	assert.Equal(t, int64(10), item.Chunks[0].End)

	empty := (&entity.DownloadItem{}).Clone()
	assert.NotNil(t, empty.Chunks)
}
