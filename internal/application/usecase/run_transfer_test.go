package usecase_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bnema/bezier/internal/application/port"
	portmocks "github.com/bnema/bezier/internal/application/port/mocks"
	"github.com/bnema/bezier/internal/application/usecase"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func bodyOf(s string) *port.TransferResponse {
	return &port.TransferResponse{
		Body:        io.NopCloser(strings.NewReader(s)),
		Size:        int64(len(s)),
		ContentType: "application/pdf",
	}
}

// blockingBody returns a response whose body only ends when ctx does.
func blockingBody(ctx context.Context, started chan<- struct{}) *port.TransferResponse {
	pr, pw := io.Pipe()
	go func() {
		_, _ = pw.Write([]byte("partial"))
		close(started)
		<-ctx.Done()
		_ = pw.CloseWithError(ctx.Err())
	}()
	return &port.TransferResponse{Body: pr, Size: 1 << 20}
}

func TestRunTransfer_Completes(t *testing.T) {
	ctx := testContext()
	s := newBrowserStore(t, time.Now)
	sink := newMemorySink()
	fetcher := portmocks.NewMockFetcher(t)
	fetcher.EXPECT().Fetch(mock.Anything, "https://example.com/files/report").
		Return(bodyOf("%PDF-1.7 hello"), nil).Once()

	uc := usecase.NewRunTransferUseCase(s, fetcher, sink, time.Now, time.Millisecond)
	id := s.StartDownload(ctx, "https://example.com/files/report", "")

	require.NoError(t, uc.Run(ctx, id))

	d, ok := s.Download(id)
	require.True(t, ok)
	assert.Equal(t, entity.DownloadCompleted, d.Status)
	assert.Equal(t, "report.pdf", d.Filename)
	assert.InDelta(t, 100.0, d.Progress, 0.001)
	assert.Equal(t, int64(14), d.Size)
	assert.Equal(t, int64(14), d.DownloadedSize)
	assert.False(t, d.EndTime.IsZero())
	assert.Zero(t, d.Speed)
	require.NotEmpty(t, d.Chunks)
	assert.Equal(t, int64(13), d.Chunks[len(d.Chunks)-1].End)

	content, ok := sink.File("report.pdf")
	require.True(t, ok)
	assert.Equal(t, "%PDF-1.7 hello", string(content))
}

func TestRunTransfer_ServerFilename(t *testing.T) {
	ctx := testContext()
	s := newBrowserStore(t, time.Now)
	sink := newMemorySink()
	resp := bodyOf("a,b\n")
	resp.Filename = "export.csv"
	resp.Size = -1
	fetcher := portmocks.NewMockFetcher(t)
	fetcher.EXPECT().Fetch(mock.Anything, mock.Anything).Return(resp, nil).Once()

	uc := usecase.NewRunTransferUseCase(s, fetcher, sink, nil, 0)
	id := s.StartDownload(ctx, "https://example.com/api/export?id=1", "")
	require.NoError(t, uc.Run(ctx, id))

	d, _ := s.Download(id)
	assert.Equal(t, entity.DownloadCompleted, d.Status)
	assert.Equal(t, "export.csv", d.Filename)
	assert.Equal(t, int64(4), d.Size, "unknown sizes are filled in at the end")
}

func TestRunTransfer_FetchFailure(t *testing.T) {
	ctx := testContext()
	s := newBrowserStore(t, time.Now)
	sink := newMemorySink()
	fetcher := portmocks.NewMockFetcher(t)
	fetcher.EXPECT().Fetch(mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	uc := usecase.NewRunTransferUseCase(s, fetcher, sink, time.Now, 0)
	id := s.StartDownload(ctx, "https://example.com/a.zip", "")

	err := uc.Run(ctx, id)
	require.Error(t, err)

	d, _ := s.Download(id)
	assert.Equal(t, entity.DownloadError, d.Status)
	assert.Contains(t, d.Error, "connection refused")
	assert.Empty(t, sink.Aborted(), "nothing was created yet")
}

func TestRunTransfer_SinkFailure(t *testing.T) {
	ctx := testContext()
	s := newBrowserStore(t, time.Now)
	sink := newMemorySink()
	sink.createErr = errors.New("disk full")
	fetcher := portmocks.NewMockFetcher(t)
	fetcher.EXPECT().Fetch(mock.Anything, mock.Anything).Return(bodyOf("x"), nil).Once()

	uc := usecase.NewRunTransferUseCase(s, fetcher, sink, time.Now, 0)
	id := s.StartDownload(ctx, "https://example.com/a.zip", "")
	require.Error(t, uc.Run(ctx, id))

	d, _ := s.Download(id)
	assert.Equal(t, entity.DownloadError, d.Status)
	assert.Contains(t, d.Error, "disk full")
}

func TestRunTransfer_CancelMidStream(t *testing.T) {
	ctx := testContext()
	s := newBrowserStore(t, time.Now)
	sink := newMemorySink()
	started := make(chan struct{})
	fetcher := portmocks.NewMockFetcher(t)
	fetcher.EXPECT().Fetch(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ string) (*port.TransferResponse, error) {
			return blockingBody(ctx, started), nil
		}).Once()

	uc := usecase.NewRunTransferUseCase(s, fetcher, sink, time.Now, time.Millisecond)
	id, done := uc.Start(ctx, "https://example.com/big.iso", "")

	<-started
	s.CancelDownload(ctx, id)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("transfer did not stop after cancel")
	}

	_, ok := s.Download(id)
	assert.False(t, ok)
	assert.Equal(t, []string{"big.iso"}, sink.Aborted())
	_, committed := sink.File("big.iso")
	assert.False(t, committed)
}

func TestRunTransfer_WaitsWhilePaused(t *testing.T) {
	ctx := testContext()
	s := newBrowserStore(t, time.Now)
	sink := newMemorySink()
	fetched := make(chan struct{})
	fetcher := portmocks.NewMockFetcher(t)
	fetcher.EXPECT().Fetch(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, string) (*port.TransferResponse, error) {
			close(fetched)
			return bodyOf("payload"), nil
		}).Once()

	uc := usecase.NewRunTransferUseCase(s, fetcher, sink, time.Now, 0)
	id := s.StartDownload(ctx, "https://example.com/notes.txt", "")
	s.PauseDownload(ctx, id)

	done := make(chan error, 1)
	go func() { done <- uc.Run(ctx, id) }()

	select {
	case <-fetched:
		t.Fatal("paused transfer started fetching")
	case <-time.After(50 * time.Millisecond):
	}

	s.ResumeDownload(ctx, id)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("resumed transfer did not finish")
	}

	d, _ := s.Download(id)
	assert.Equal(t, entity.DownloadCompleted, d.Status)
}

func TestRunTransfer_UnknownRecord(t *testing.T) {
	s := newBrowserStore(t, time.Now)
	fetcher := portmocks.NewMockFetcher(t)
	uc := usecase.NewRunTransferUseCase(s, fetcher, newMemorySink(), time.Now, 0)

	assert.NoError(t, uc.Run(testContext(), "missing"))
}
