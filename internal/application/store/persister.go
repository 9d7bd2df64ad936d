package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/bnema/bezier/internal/domain/repository"
	"github.com/bnema/bezier/internal/logging"
	"github.com/bnema/bezier/internal/mainloop"
)

// DefaultFlushDelay is how long a burst of mutations may accumulate before
// the store document is written.
const DefaultFlushDelay = 250 * time.Millisecond

// document is the envelope every store state is persisted in.
type document[T any] struct {
	State   T   `json:"state"`
	Version int `json:"version"`
}

// Persister writes store documents in the background. Writes for the same
// key are coalesced and each write captures the state current at write
// time, so the newest state always lands last. Failures are logged and
// dropped; nothing is retried.
type Persister struct {
	ctx       context.Context
	repo      repository.StateRepository
	loop      *mainloop.Loop
	coalescer *mainloop.Coalescer
	saveMu    sync.Mutex
	closeOnce sync.Once

	// OnSave, when set, is told about every completed write attempt.
	OnSave func(key string, err error)
}

// NewPersister creates a persister. A nil repository gives a persister
// that never writes, for ephemeral sessions.
func NewPersister(ctx context.Context, repo repository.StateRepository, delay time.Duration) *Persister {
	if delay < 0 {
		delay = 0
	}
	loop := mainloop.New()
	p := &Persister{
		ctx:  context.WithoutCancel(logging.WithComponent(ctx, "persister")),
		repo: repo,
		loop: loop,
	}
	p.coalescer = mainloop.NewCoalescer(func(fn func()) {
		loop.PostAfter(delay, fn)
	})
	return p
}

// schedule queues a write of the document returned by snapshot.
func (p *Persister) schedule(key string, snapshot func() ([]byte, error)) {
	if p == nil || p.repo == nil {
		return
	}
	p.coalescer.Post(key, func() { p.save(key, snapshot) })
}

func (p *Persister) save(key string, snapshot func() ([]byte, error)) {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	log := logging.FromContext(p.ctx)
	doc, err := snapshot()
	if err == nil {
		err = p.repo.Save(p.ctx, key, doc)
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to persist state, keeping in-memory copy only")
	} else {
		log.Debug().Str("key", key).Int("bytes", len(doc)).Msg("state persisted")
	}
	if p.OnSave != nil {
		p.OnSave(key, err)
	}
}

// load decodes the state stored under key into out. It reports false when
// there is nothing usable, in which case callers fall back to defaults.
func load[T any](ctx context.Context, p *Persister, key string, out *T) bool {
	if p == nil || p.repo == nil {
		return false
	}
	log := logging.FromContext(ctx)

	raw, err := p.repo.Load(ctx, key)
	if errors.Is(err, repository.ErrStateNotFound) || (err == nil && len(raw) == 0) {
		log.Debug().Str("key", key).Msg("no saved state, using defaults")
		return false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read saved state, using defaults")
		return false
	}

	var doc document[T]
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("saved state is corrupt, using defaults")
		return false
	}
	*out = doc.State
	return true
}

func encode[T any](state T) ([]byte, error) {
	return json.Marshal(document[T]{State: state})
}

// Flush writes every pending document now, on the calling goroutine.
func (p *Persister) Flush() {
	if p == nil {
		return
	}
	p.coalescer.Flush()
}

// Close flushes pending writes and stops the background worker.
func (p *Persister) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.coalescer.Flush()
		p.coalescer.Destroy()
		p.loop.Stop()
	})
}
