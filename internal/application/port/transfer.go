package port

import (
	"context"
	"io"
)

// TransferResponse is an open streaming body returned by a Fetcher.
type TransferResponse struct {
	Body io.ReadCloser

	// Size is the announced length in bytes, or -1 when unknown.
	Size int64

	// ContentType is the announced media type, possibly with parameters.
	ContentType string

	// Filename is the server-suggested name, if any.
	Filename string
}

// Fetcher opens a streaming fetch for a source location.
// Implementations must honour ctx cancellation while the body is read.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*TransferResponse, error)
}
