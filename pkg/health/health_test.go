package health

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srediag/shm-segment/pkg/shm"
)

func probe(h http.Handler, path string) int {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code
}

func TestHandlerReadyFollowsSegments(t *testing.T) {
	r := shm.NewRegistry()
	h := NewHandler(r)

	assert.Equal(t, http.StatusOK, probe(h, "/live"))
	assert.Equal(t, http.StatusServiceUnavailable, probe(h, "/ready"))

	cfg := shm.DefaultConfig()
	cfg.Name = fmt.Sprintf("shmseg-health-%d", os.Getpid())
	cfg.Capacity = 64
	cfg.Create = true
	cfg.Registry = r
	seg, err := shm.New(context.Background(), cfg)
	if err != nil {
		t.Skipf("shared memory unavailable: %v", err)
	}
	assert.Equal(t, http.StatusOK, probe(h, "/ready"))

	check := SegmentOpen(seg)
	require.NoError(t, check())

	require.NoError(t, seg.Close())
	assert.Equal(t, http.StatusServiceUnavailable, probe(h, "/ready"))
	assert.ErrorIs(t, check(), shm.ErrClosed)
}
