package shm

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// checkFreeSpace fails when dir is /dev/shm and cannot hold size more bytes.
// Other directories are not checked.
func checkFreeSpace(dir string, size uint64) error {
	if !strings.HasPrefix(dir, "/dev/shm") {
		return nil
	}
	stat, err := disk.Usage(dir)
	if err != nil {
		// can't tell, let the create decide
		return nil
	}
	if size > stat.Free {
		return fmt.Errorf("%w: %s has %d bytes free, need %d", ErrResourceExhausted, dir, stat.Free, size)
	}
	return nil
}

// IsResourceExhausted reports whether err means the system ran out of memory,
// space or descriptors.
func IsResourceExhausted(err error) bool {
	return err != nil && isResourceExhausted(err)
}

// IsInvalidArgument reports whether the OS rejected an argument of err's call.
func IsInvalidArgument(err error) bool {
	return err != nil && isInvalidArgument(err)
}
