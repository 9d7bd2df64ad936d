// Package mainloop provides a single worker goroutine that runs posted
// tasks one at a time, in order, plus helpers to defer and coalesce work
// onto it.
package mainloop

import (
	"sync"
	"time"
)

// Loop executes tasks serially on one goroutine until stopped.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
}

// New starts a loop.
func New() *Loop {
	l := &Loop{
		tasks:  make(chan func()),
		done:   make(chan struct{}),
		timers: make(map[*time.Timer]struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.done:
			return
		}
	}
}

// Post hands fn to the loop, blocking until the loop accepts it.
// It returns false once the loop is stopped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	case l.tasks <- fn:
		return true
	}
}

// PostAfter posts fn once delay has elapsed. It never blocks the caller.
// Pending delayed tasks are discarded by Stop.
func (l *Loop) PostAfter(delay time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if delay <= 0 {
		go l.Post(fn)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	select {
	case <-l.done:
		return
	default:
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		l.mu.Lock()
		delete(l.timers, timer)
		l.mu.Unlock()
		l.Post(fn)
	})
	l.timers[timer] = struct{}{}
}

// Stop discards delayed tasks, waits for the running task to finish and
// ends the loop. It is safe to call more than once.
func (l *Loop) Stop() {
	l.once.Do(func() {
		l.mu.Lock()
		close(l.done)
		for t := range l.timers {
			t.Stop()
		}
		l.timers = map[*time.Timer]struct{}{}
		l.mu.Unlock()
	})
	l.wg.Wait()
}
