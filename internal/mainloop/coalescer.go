package mainloop

import "sync"

// Coalescer merges bursts of same-key tasks: however many times a key is
// posted before its task runs, only the most recent callback executes, once.
type Coalescer struct {
	mu        sync.Mutex
	latest    map[string]func()
	post      func(func())
	destroyed bool
}

// NewCoalescer schedules runs through post, typically Loop.Post or a
// delayed variant of it.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}
	return &Coalescer{latest: make(map[string]func()), post: post}
}

// Post makes fn the callback for key. A run is scheduled only when key
// has none pending.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	_, scheduled := c.latest[key]
	c.latest[key] = fn
	c.mu.Unlock()

	if !scheduled {
		c.post(func() { c.run(key) })
	}
}

func (c *Coalescer) run(key string) {
	c.mu.Lock()
	fn, ok := c.latest[key]
	delete(c.latest, key)
	c.mu.Unlock()

	if ok {
		fn()
	}
}

// Flush runs every pending callback on the calling goroutine. Scheduled
// runs that fire afterwards find nothing to do.
func (c *Coalescer) Flush() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	pending := c.latest
	c.latest = make(map[string]func())
	c.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// Pending reports how many keys are waiting to run.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.latest)
}

// Destroy drops all pending work and ignores later posts.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	clear(c.latest)
	c.mu.Unlock()
}
