package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/domain/download"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/logging"
)

const (
	// DefaultReportInterval is the minimum gap between progress reports.
	DefaultReportInterval = 250 * time.Millisecond

	transferBufferSize = 32 * 1024
)

// errDownloadGone means the record was cancelled or removed mid-transfer.
var errDownloadGone = errors.New("download record removed")

// DownloadTracker is the part of the browser store a transfer talks to.
type DownloadTracker interface {
	StartDownload(ctx context.Context, location, filename string) entity.DownloadID
	UpdateDownload(ctx context.Context, id entity.DownloadID, patch store.DownloadPatch)
	Download(id entity.DownloadID) (entity.DownloadItem, bool)
	RegisterCancel(id entity.DownloadID, fn func()) (release func(), ok bool)
	Subscribe(l store.Listener) (unsubscribe func())
}

// RunTransferUseCase streams a download's body to a sink and feeds the
// tracker with progress. It never retries: a failure ends the record in
// the error state.
type RunTransferUseCase struct {
	tracker        DownloadTracker
	fetcher        port.Fetcher
	sink           port.DownloadSink
	clock          port.Clock
	reportInterval time.Duration
}

// NewRunTransferUseCase creates the transfer process.
func NewRunTransferUseCase(
	tracker DownloadTracker,
	fetcher port.Fetcher,
	sink port.DownloadSink,
	clock port.Clock,
	reportInterval time.Duration,
) *RunTransferUseCase {
	if clock == nil {
		clock = port.SystemClock
	}
	if reportInterval <= 0 {
		reportInterval = DefaultReportInterval
	}
	return &RunTransferUseCase{
		tracker:        tracker,
		fetcher:        fetcher,
		sink:           sink,
		clock:          clock,
		reportInterval: reportInterval,
	}
}

// Start registers a download and runs its transfer in the background.
// The returned channel is closed when the transfer goroutine exits.
func (uc *RunTransferUseCase) Start(ctx context.Context, location, filename string) (entity.DownloadID, <-chan struct{}) {
	id := uc.tracker.StartDownload(ctx, location, filename)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = uc.Run(context.WithoutCancel(ctx), id)
	}()
	return id, done
}

// Run transfers an existing pending record. It returns nil when the
// record completes or is cancelled, and the transfer error otherwise.
func (uc *RunTransferUseCase) Run(ctx context.Context, id entity.DownloadID) error {
	ctx = logging.WithDownloadID(ctx, string(id))
	log := logging.FromContext(ctx)

	item, ok := uc.tracker.Download(id)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	release, ok := uc.tracker.RegisterCancel(id, cancel)
	if !ok {
		return nil
	}
	defer release()

	wake := make(chan struct{}, 1)
	unsubscribe := uc.tracker.Subscribe(func(e store.Event) {
		if e.Topic == store.TopicDownloads && e.ID == string(id) {
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	t := &transfer{uc: uc, id: id, item: item, wake: wake}
	err := t.run(ctx)
	switch {
	case err == nil:
		log.Info().Str("filename", t.filename).Int64("bytes", t.downloaded).Msg("download completed")
		return nil
	case ctx.Err() != nil || errors.Is(err, errDownloadGone):
		t.abort()
		log.Info().Msg("download cancelled")
		return nil
	default:
		t.abort()
		msg := err.Error()
		failed := entity.DownloadError
		uc.tracker.UpdateDownload(ctx, id, store.DownloadPatch{Status: &failed, Error: &msg})
		log.Warn().Err(err).Msg("download failed")
		return err
	}
}

type transfer struct {
	uc   *RunTransferUseCase
	id   entity.DownloadID
	item entity.DownloadItem
	wake <-chan struct{}

	file       port.DownloadFile
	filename   string
	size       int64
	downloaded int64
	chunks     []entity.DownloadChunk

	lastReport   time.Time
	reportedSize int64
}

func (t *transfer) run(ctx context.Context) error {
	if err := t.waitWhilePaused(ctx); err != nil {
		return err
	}
	t.setStatus(ctx, entity.DownloadDownloading)

	resp, err := t.uc.fetcher.Fetch(ctx, t.item.URL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", t.item.URL, err)
	}
	defer resp.Body.Close()
	t.size = resp.Size

	name := t.item.Filename
	if resp.Filename != "" {
		name = resp.Filename
	}
	name = download.FilenameFor(t.item.URL, name, resp.ContentType)
	t.file, t.filename, err = t.uc.sink.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	patch := store.DownloadPatch{Filename: &t.filename}
	if t.size >= 0 {
		patch.Size = &t.size
	}
	t.uc.tracker.UpdateDownload(ctx, t.id, patch)
	t.lastReport = t.uc.clock()

	buf := make([]byte, transferBufferSize)
	for {
		if err := t.waitWhilePaused(ctx); err != nil {
			return err
		}

		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := t.file.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write %s: %w", t.filename, werr)
			}
			t.downloaded += int64(n)
			t.maybeReport(ctx, false)
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read body: %w", rerr)
		}
	}

	if err := t.waitWhilePaused(ctx); err != nil {
		return err
	}
	if err := t.file.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", t.filename, err)
	}
	t.file = nil
	if t.size < 0 {
		t.size = t.downloaded
	}
	t.maybeReport(ctx, true)
	t.setStatus(ctx, entity.DownloadCompleted)
	return nil
}

// waitWhilePaused parks the transfer between reads while the record is
// paused. It fails when the record disappears or ctx ends.
func (t *transfer) waitWhilePaused(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		item, ok := t.uc.tracker.Download(t.id)
		if !ok {
			return errDownloadGone
		}
		if item.Status != entity.DownloadPaused {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.wake:
			t.lastReport = t.uc.clock()
			t.reportedSize = t.downloaded
		}
	}
}

func (t *transfer) maybeReport(ctx context.Context, final bool) {
	now := t.uc.clock()
	elapsed := now.Sub(t.lastReport)
	if !final && elapsed < t.uc.reportInterval {
		return
	}
	if t.downloaded == t.reportedSize && !final {
		return
	}

	if t.downloaded > t.reportedSize {
		t.chunks = append(t.chunks, entity.DownloadChunk{
			ID:       strconv.Itoa(len(t.chunks)),
			Start:    t.reportedSize,
			End:      t.downloaded - 1,
			Progress: 100,
		})
	}

	var speed, remaining, progress float64
	if secs := elapsed.Seconds(); secs > 0 {
		speed = float64(t.downloaded-t.reportedSize) / secs
	}
	if t.size > 0 {
		progress = float64(t.downloaded) / float64(t.size) * 100
		if speed > 0 {
			remaining = float64(t.size-t.downloaded) / speed
		}
	}

	chunks := append([]entity.DownloadChunk(nil), t.chunks...)
	patch := store.DownloadPatch{
		Speed:          &speed,
		TimeRemaining:  &remaining,
		DownloadedSize: &t.downloaded,
		Chunks:         &chunks,
	}
	if t.size > 0 {
		patch.Progress = &progress
		patch.Size = &t.size
	}
	t.uc.tracker.UpdateDownload(ctx, t.id, patch)

	t.lastReport = now
	t.reportedSize = t.downloaded
}

func (t *transfer) setStatus(ctx context.Context, status entity.DownloadStatus) {
	t.uc.tracker.UpdateDownload(ctx, t.id, store.DownloadPatch{Status: &status})
}

func (t *transfer) abort() {
	if t.file == nil {
		return
	}
	_ = t.file.Abort()
	t.file = nil
}
