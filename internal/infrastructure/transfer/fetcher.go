// Package transfer opens streaming HTTP downloads.
package transfer

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/domain/build"
	"github.com/bnema/bezier/internal/logging"
	"github.com/go-resty/resty/v2"
)

// DefaultHeaderTimeout bounds the wait for response headers. The body
// itself has no deadline; cancellation ends it.
const DefaultHeaderTimeout = 30 * time.Second

// Fetcher is a port.Fetcher backed by resty.
type Fetcher struct {
	client *resty.Client
}

var _ port.Fetcher = (*Fetcher)(nil)

// NewFetcher creates a fetcher. A non-positive headerTimeout selects
// DefaultHeaderTimeout.
func NewFetcher(headerTimeout time.Duration) *Fetcher {
	if headerTimeout <= 0 {
		headerTimeout = DefaultHeaderTimeout
	}

	client := resty.New().
		SetTransport(&http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			ResponseHeaderTimeout: headerTimeout,
			TLSHandshakeTimeout:   10 * time.Second,
		}).
		SetRetryCount(0).
		SetHeader("User-Agent", "bezier/"+build.Version)

	return &Fetcher{client: client}
}

// Fetch starts a GET request and returns its unread body. The caller owns
// the body and must close it.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*port.TransferResponse, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, err
	}

	body := resp.RawBody()
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		if body != nil {
			_ = body.Close()
		}
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode())
	}

	size := int64(-1)
	if resp.RawResponse != nil && resp.RawResponse.ContentLength >= 0 {
		size = resp.RawResponse.ContentLength
	}

	out := &port.TransferResponse{
		Body:        body,
		Size:        size,
		ContentType: resp.Header().Get("Content-Type"),
		Filename:    dispositionFilename(resp.Header().Get("Content-Disposition")),
	}

	logging.FromContext(ctx).Debug().
		Str("url", url).
		Int("status", resp.StatusCode()).
		Int64("size", size).
		Str("content_type", out.ContentType).
		Msg("transfer started")
	return out, nil
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
