package shm

import (
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"weak"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/panjf2000/ants/v2"
)

// DefaultRegistry tracks every segment whose config does not name a registry.
var DefaultRegistry = NewRegistry()

// Registry tracks the live segments of this process. It holds weak
// references, so a segment dropped without Close is still finalized.
type Registry struct {
	segments cmap.ConcurrentMap[string, weak.Pointer[Segment]]
	seq      atomic.Uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{segments: cmap.New[weak.Pointer[Segment]]()}
}

func (r *Registry) add(s *Segment) string {
	key := s.name + "#" + strconv.FormatUint(r.seq.Add(1), 10)
	r.segments.Set(key, weak.Make(s))
	return key
}

func (r *Registry) remove(key string) {
	r.segments.Remove(key)
}

// Len returns the number of live segments.
func (r *Registry) Len() int {
	return len(r.Live())
}

// Live returns the segments that are still mapped.
func (r *Registry) Live() []*Segment {
	live := make([]*Segment, 0, r.segments.Count())
	for item := range r.segments.IterBuffered() {
		if s := item.Val.Value(); s != nil && !s.Closed() {
			live = append(live, s)
		}
	}
	return live
}

// CloseAll closes every live segment on a bounded worker pool and waits for
// the releases to finish.
func (r *Registry) CloseAll() {
	live := r.Live()
	if len(live) == 0 {
		return
	}
	var wg sync.WaitGroup
	pool, err := ants.NewPool(min(len(live), runtime.GOMAXPROCS(0)))
	if err != nil {
		internalLogger.warnf("close all: worker pool unavailable, closing inline: %v", err)
		for _, s := range live {
			_ = s.Close()
		}
		return
	}
	defer pool.Release()
	for _, s := range live {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			_ = s.Close()
		}); err != nil {
			wg.Done()
			_ = s.Close()
		}
	}
	wg.Wait()
}
