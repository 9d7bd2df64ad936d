package transfer_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/bezier/internal/infrastructure/transfer"
	"github.com/bnema/bezier/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/report":
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="q3 report.pdf"`)
			_, _ = io.WriteString(w, "%PDF-1.7")
		case "/missing":
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	f := transfer.NewFetcher(time.Second)

	resp, err := f.Fetch(testContext(), srv.URL+"/report")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(body))
	assert.Equal(t, int64(8), resp.Size)
	assert.Equal(t, "application/pdf", resp.ContentType)
	assert.Equal(t, "q3 report.pdf", resp.Filename)

	_, err = f.Fetch(testContext(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcher_CancelStopsBody(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "first")
		w.(http.Flusher).Flush()
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	ctx, cancel := context.WithCancel(testContext())
	resp, err := transfer.NewFetcher(0).Fetch(ctx, srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, int64(-1), resp.Size)

	buf := make([]byte, 5)
	_, err = io.ReadFull(resp.Body, buf)
	require.NoError(t, err)

	cancel()
	_, err = io.ReadAll(resp.Body)
	require.Error(t, err)
}
