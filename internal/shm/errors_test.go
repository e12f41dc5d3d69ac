package shm

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifiersIgnoreForeignErrors(t *testing.T) {
	assert.False(t, IsResourceExhausted(nil))
	assert.False(t, IsInvalidArgument(nil))
	assert.False(t, IsResourceExhausted(errors.New("boom")))
	assert.False(t, IsInvalidArgument(fmt.Errorf("wrapped: %w", fs.ErrNotExist)))
}

func TestModelString(t *testing.T) {
	assert.Equal(t, "unlink", ModelUnlink.String())
	assert.Equal(t, "refcount", ModelRefcount.String())
	assert.Equal(t, "unsupported", Model(0).String())
}
