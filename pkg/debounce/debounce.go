// Package debounce delays a value until input has been quiet for a while.
//
// A search box is the typical user: every keystroke calls Set, and the term
// is applied only once typing pauses for the configured delay.
//
//	d := debounce.New(300*time.Millisecond, func(term string) {
//	    results = projects.Filter(list, projects.Query{Term: term})
//	})
//	defer d.Stop()
//	d.Set("ca")
//	d.Set("cache") // only "cache" is committed
package debounce

import (
	"sync"
	"time"
)

// Debouncer holds the latest value and commits it after a quiet period.
// It is safe for concurrent use.
type Debouncer[T any] struct {
	delay  time.Duration
	commit func(T)

	mu           sync.Mutex
	timer        *time.Timer
	pending      T
	hasPending   bool
	gen          uint64
	last         T
	hasCommitted bool
	stopped      bool
	inflight     sync.WaitGroup
}

// New returns a debouncer that calls commit with the last value set, delay
// after the last call to Set. commit may be nil.
func New[T any](delay time.Duration, commit func(T)) *Debouncer[T] {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{delay: delay, commit: commit}
}

// Delay returns the configured quiet period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Set records v and restarts the quiet period. Calls after Stop are ignored.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending = v
	d.hasPending = true
	d.gen++
	gen := d.gen

	if d.timer != nil && d.timer.Stop() {
		d.inflight.Done()
	}
	d.inflight.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.inflight.Done()
		d.fire(gen)
	})
}

// fire commits the pending value if no newer Set happened since gen.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.hasPending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()

	if d.commit != nil {
		d.commit(v)
	}
}

// take moves the pending value to last. d.mu must be held.
func (d *Debouncer[T]) take() T {
	v := d.pending
	var zero T
	d.pending = zero
	d.hasPending = false
	d.last = v
	d.hasCommitted = true
	return v
}

// Flush commits a pending value immediately. It reports whether a value
// was pending.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.hasPending {
		d.mu.Unlock()
		return false
	}
	d.gen++
	if d.timer != nil && d.timer.Stop() {
		d.inflight.Done()
	}
	v := d.take()
	d.mu.Unlock()

	if d.commit != nil {
		d.commit(v)
	}
	return true
}

// Pending reports whether a value is waiting for the quiet period to end.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasPending
}

// LastCommitted returns the most recently committed value and whether any
// value has been committed yet.
func (d *Debouncer[T]) LastCommitted() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last, d.hasCommitted
}

// Stop drops any pending value and waits for a commit already running to
// return. The debouncer ignores further calls. Stop must not be called from
// inside commit.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.hasPending = false
	if d.timer != nil && d.timer.Stop() {
		d.inflight.Done()
	}
	d.mu.Unlock()

	d.inflight.Wait()
}
