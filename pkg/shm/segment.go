package shm

import (
	"context"
	"runtime"
	"sync/atomic"

	internalshm "github.com/srediag/shm-segment/internal/shm"
)

// Model tells when a named object leaves the system namespace.
type Model = internalshm.Model

const (
	ModelUnlink   = internalshm.ModelUnlink
	ModelRefcount = internalshm.ModelRefcount
)

// LifetimeModel reports the model of the backend compiled for this platform.
// With ModelUnlink the name is removed when the creator closes, even while
// openers still hold mappings. With ModelRefcount it is removed when the
// last holder closes.
func LifetimeModel() Model {
	return internalshm.Default.Model()
}

// Segment is a named, fixed-capacity shared memory region mapped read-write.
//
// Payload length is implicit: Write zero-fills the rest of the region and
// Read trims trailing zero bytes, so payloads must not end in meaningful
// zeros. Segment has no internal lock; callers sharing one across goroutines
// or processes must coordinate access themselves.
type Segment struct {
	name     string
	capacity int
	creator  bool
	key      string

	region   *internalshm.MappedRegion
	backend  internalshm.Backend
	registry *Registry
	tel      *telemetry
	closed   atomic.Bool
}

// Create creates a new named segment of capacity bytes. It fails with
// ErrAlreadyExists if the name is taken.
func Create(name string, capacity int) (*Segment, error) {
	cfg := DefaultConfig()
	cfg.Name, cfg.Capacity, cfg.Create = name, capacity, true
	return New(context.Background(), cfg)
}

// Open maps an existing named segment. It fails with ErrNotFound if the name
// does not exist. capacity must match the creator's.
func Open(name string, capacity int) (*Segment, error) {
	cfg := DefaultConfig()
	cfg.Name, cfg.Capacity = name, capacity
	return New(context.Background(), cfg)
}

// New creates or opens a segment as described by cfg. Anything acquired
// before a failure is released before the error is returned.
func New(ctx context.Context, cfg Config) (*Segment, error) {
	return newSegment(ctx, cfg, internalshm.Default)
}

func newSegment(ctx context.Context, cfg Config, backend internalshm.Backend) (s *Segment, err error) {
	cfg = cfg.withDefaults()
	tel := newTelemetry(cfg)
	ctx, span := tel.startAcquire(ctx, cfg)
	defer func() { endAcquire(span, err) }()

	if err := VerifyConfig(cfg); err != nil {
		return nil, err
	}
	opts := internalshm.MapOptions{
		Name:           cfg.Name,
		Size:           cfg.Capacity,
		Dir:            cfg.Dir,
		CheckFreeSpace: cfg.CheckFreeSpace,
	}
	var region *internalshm.MappedRegion
	if cfg.Create {
		region, err = backend.Create(ctx, opts)
	} else {
		region, err = backend.Open(ctx, opts)
	}
	if err != nil {
		internalLogger.debugf("acquire segment %s failed: %v", cfg.Name, err)
		return nil, err
	}

	s = &Segment{
		name:     cfg.Name,
		capacity: cfg.Capacity,
		creator:  region.Creator,
		region:   region,
		backend:  backend,
		registry: cfg.Registry,
		tel:      tel,
	}
	s.key = s.registry.add(s)
	runtime.SetFinalizer(s, func(s *Segment) {
		internalLogger.warnf("segment %s was not closed, releasing it", s.name)
		_ = s.Close()
	})
	if s.creator {
		internalLogger.infof("created segment %s capacity:%d", s.name, s.capacity)
	} else {
		internalLogger.infof("opened segment %s capacity:%d", s.name, s.capacity)
	}
	return s, nil
}

// Name returns the segment's identifier.
func (s *Segment) Name() string { return s.name }

// Capacity returns the segment size in bytes.
func (s *Segment) Capacity() int { return s.capacity }

// IsCreator reports whether this segment created the named object.
func (s *Segment) IsCreator() bool { return s.creator }

// Closed reports whether Close has been called.
func (s *Segment) Closed() bool { return s.closed.Load() }

// Write copies p to the start of the region and zero-fills the remainder.
// A payload longer than Capacity is rejected with *TooLargeError and the
// region is left unmodified.
func (s *Segment) Write(p []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if len(p) > s.capacity {
		s.tel.rejectedWrite()
		return &TooLargeError{Size: len(p), Capacity: s.capacity}
	}
	mem := s.region.Addr
	n := copy(mem, p)
	clear(mem[n:])
	s.tel.wrote(n)
	return nil
}

// Read returns a copy of the region up to its last non-zero byte. An all-zero
// region yields an empty slice, as does a closed segment.
func (s *Segment) Read() []byte {
	if s.closed.Load() {
		return []byte{}
	}
	mem := s.region.Addr
	n := payloadLen(mem)
	out := make([]byte, n)
	copy(out, mem[:n])
	s.tel.read()
	internalLogger.tracef("read segment %s: %d bytes", s.name, n)
	return out
}

// payloadLen scans backward for the last non-zero byte.
func payloadLen(mem []byte) int {
	n := len(mem)
	for n > 0 && mem[n-1] == 0 {
		n--
	}
	return n
}

// WriteText writes the UTF-8 bytes of text.
func (s *Segment) WriteText(text string) error {
	return s.Write([]byte(text))
}

// Close unmaps the region and releases its handle. The creator on an unlink
// backend also removes the name. Release failures are logged, never returned;
// Close is idempotent.
func (s *Segment) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	runtime.SetFinalizer(s, nil)
	s.registry.remove(s.key)
	if err := s.backend.Release(s.region); err != nil {
		internalLogger.warnf("release segment %s: %v", s.name, err)
	} else if s.creator && s.backend.Model() == ModelUnlink {
		internalLogger.infof("removed segment %s", s.name)
	}
	return nil
}

func (s *Segment) payloadSize() int {
	if s.closed.Load() {
		return 0
	}
	return payloadLen(s.region.Addr)
}
