// Package health exposes liveness and readiness probes for a process that
// holds shared memory segments.
package health

import (
	"fmt"

	"github.com/heptiolabs/healthcheck"

	"github.com/srediag/shm-segment/pkg/shm"
)

// maxGoroutines bounds the liveness goroutine check.
const maxGoroutines = 10000

// NewHandler returns an http handler serving /live and /ready. The process
// is ready while at least one segment in r is mapped.
func NewHandler(r *shm.Registry) healthcheck.Handler {
	h := healthcheck.NewHandler()
	h.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(maxGoroutines))
	h.AddReadinessCheck("segments-mapped", SegmentsMapped(r))
	return h
}

// SegmentsMapped fails while r holds no live segment.
func SegmentsMapped(r *shm.Registry) healthcheck.Check {
	return func() error {
		if r.Len() == 0 {
			return fmt.Errorf("no shared memory segment mapped")
		}
		return nil
	}
}

// SegmentOpen fails once seg has been closed.
func SegmentOpen(seg *shm.Segment) healthcheck.Check {
	return func() error {
		if seg.Closed() {
			return fmt.Errorf("segment %s: %w", seg.Name(), shm.ErrClosed)
		}
		return nil
	}
}
