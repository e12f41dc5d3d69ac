//go:build unix

package shm

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestClassifyErrno(t *testing.T) {
	for _, errno := range []unix.Errno{unix.ENOMEM, unix.ENOSPC, unix.EMFILE, unix.ENFILE} {
		err := &fs.PathError{Op: "mmap", Path: "/dev/shm/x", Err: errno}
		assert.True(t, IsResourceExhausted(err), errno.Error())
		assert.False(t, IsInvalidArgument(err), errno.Error())
	}
	assert.True(t, IsInvalidArgument(&fs.PathError{Op: "mmap", Err: unix.EINVAL}))
	assert.False(t, IsResourceExhausted(&fs.PathError{Op: "shm_open", Err: unix.EEXIST}))
}
