//go:build unix && !linux

package shm

import "os"

// Without a POSIX shm filesystem the objects live as files in the temp dir,
// which is usually disk-backed. Callers wanting RAM should set MapOptions.Dir.
func defaultDir() string { return os.TempDir() }
