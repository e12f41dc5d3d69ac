package shm

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"testing"
)

var nameSeq atomic.Uint64

// testSegmentName returns a name no other test or test run will use.
func testSegmentName(t testing.TB) string {
	base := strings.NewReplacer("/", "-", " ", "_").Replace(t.Name())
	if len(base) > 64 {
		base = base[len(base)-64:]
	}
	return fmt.Sprintf("shmseg-%s-%d-%d", base, os.Getpid(), nameSeq.Add(1))
}

func skipIfUnsupported(t testing.TB) {
	t.Helper()
	if LifetimeModel() != ModelUnlink && LifetimeModel() != ModelRefcount {
		t.Skip("no shared memory backend on this platform")
	}
}

func mustCreate(t testing.TB, name string, capacity int) *Segment {
	t.Helper()
	s, err := Create(name, capacity)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustOpen(t testing.TB, name string, capacity int) *Segment {
	t.Helper()
	s, err := Open(name, capacity)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
