// Package watch polls a shared memory segment and reports each new payload.
//
// Segments carry no change notification, so a watcher samples the payload
// at a fixed interval. Payloads written and overwritten between two samples
// are never seen.
package watch

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/Workiva/go-datastructures/queue"
)

// ErrStopped is returned by Next once Run has returned and every payload
// was delivered.
var ErrStopped = errors.New("watch: stopped")

// Source is anything with a trailing-zero trimmed payload, such as *shm.Segment.
type Source interface {
	Read() []byte
}

// Options tune a Watcher.
type Options struct {
	// Interval between samples, default 10ms.
	Interval time.Duration
	// Backlog is the number of undelivered payloads kept, default 64.
	// When full the oldest payload is dropped.
	Backlog uint64
	// EmitInitial delivers the payload present when Run starts.
	EmitInitial bool
}

// Watcher delivers each distinct payload observed on a Source.
type Watcher struct {
	src     Source
	opts    Options
	changes *queue.RingBuffer
	dropped atomic.Uint64
	done    atomic.Bool
}

// New returns a watcher over src. Call Run to start sampling.
func New(src Source, opts Options) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = 10 * time.Millisecond
	}
	if opts.Backlog == 0 {
		opts.Backlog = 64
	}
	return &Watcher{
		src:     src,
		opts:    opts,
		changes: queue.NewRingBuffer(opts.Backlog),
	}
}

// Run samples the source until ctx is done, then stops the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.done.Store(true)
	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	last := w.src.Read()
	if w.opts.EmitInitial {
		w.offer(last)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		cur := w.src.Read()
		if bytes.Equal(cur, last) {
			continue
		}
		last = cur
		w.offer(cur)
	}
}

func (w *Watcher) offer(p []byte) {
	for {
		ok, err := w.changes.Offer(p)
		if ok || err != nil {
			return
		}
		// full: make room by dropping the oldest payload
		if _, err := w.changes.Poll(time.Nanosecond); err == nil {
			w.dropped.Add(1)
		}
	}
}

// pollSlice bounds each wait on the ring buffer so a blocked Next notices
// that Run has returned.
const pollSlice = 50 * time.Millisecond

// Next blocks up to timeout for the next payload. It returns
// queue.ErrTimeout when nothing changed in time; a timeout <= 0 waits
// indefinitely. A Next waiting when Run returns gets ErrStopped.
func (w *Watcher) Next(timeout time.Duration) ([]byte, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		if w.done.Load() && w.changes.Len() == 0 {
			return nil, ErrStopped
		}
		wait := pollSlice
		if timeout > 0 {
			left := time.Until(deadline)
			if left <= 0 {
				return nil, queue.ErrTimeout
			}
			wait = min(wait, left)
		}
		item, err := w.changes.Poll(wait)
		if err == nil {
			return item.([]byte), nil
		}
		if !errors.Is(err, queue.ErrTimeout) {
			return nil, err
		}
	}
}

// Pending returns the number of undelivered payloads.
func (w *Watcher) Pending() int {
	return int(w.changes.Len())
}

// Dropped returns how many payloads were discarded because the backlog was full.
func (w *Watcher) Dropped() uint64 {
	return w.dropped.Load()
}
