package port

import (
	"context"
	"io"
)

// DownloadFile is an open download destination.
type DownloadFile interface {
	io.Writer

	// Commit finalizes the file once every byte has been written.
	Commit() error

	// Abort discards the partial file.
	Abort() error
}

// DownloadSink creates download destinations.
type DownloadSink interface {
	// Create opens a new destination for filename. The returned name is the
	// one actually used, which may differ to avoid clobbering existing files.
	Create(ctx context.Context, filename string) (DownloadFile, string, error)
}
