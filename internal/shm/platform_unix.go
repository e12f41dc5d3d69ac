//go:build unix

package shm

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

type sysHandle struct {
	fd   int
	path string
}

type unlinkBackend struct{}

func newPlatformBackend() Backend { return unlinkBackend{} }

func (unlinkBackend) Model() Model { return ModelUnlink }

// objectPath resolves a POSIX style name ("/seg" or "seg") to its file under dir.
func objectPath(dir, name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" || strings.IndexByte(name, '/') >= 0 {
		return "", ErrInvalidArgument
	}
	if dir == "" {
		dir = defaultDir()
	}
	return filepath.Join(dir, name), nil
}

func (b unlinkBackend) Create(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}
	path, err := objectPath(opts.Dir, opts.Name)
	if err != nil {
		return nil, err
	}
	if opts.CheckFreeSpace {
		if err := checkFreeSpace(filepath.Dir(path), uint64(opts.Size)); err != nil {
			return nil, err
		}
	}
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, 0600)
	if err != nil {
		return nil, &fs.PathError{Op: "shm_open", Path: path, Err: err}
	}
	if err := unix.Ftruncate(fd, int64(opts.Size)); err != nil {
		_ = unix.Close(fd)
		_ = unix.Unlink(path)
		return nil, &fs.PathError{Op: "ftruncate", Path: path, Err: err}
	}
	addr, err := unix.Mmap(fd, 0, opts.Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		_ = unix.Unlink(path)
		return nil, &fs.PathError{Op: "mmap", Path: path, Err: err}
	}
	return &MappedRegion{
		Addr:    addr,
		Name:    opts.Name,
		Creator: true,
		sys:     sysHandle{fd: fd, path: path},
	}, nil
}

func (b unlinkBackend) Open(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}
	path, err := objectPath(opts.Dir, opts.Name)
	if err != nil {
		return nil, err
	}
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0600)
	if err != nil {
		return nil, &fs.PathError{Op: "shm_open", Path: path, Err: err}
	}
	addr, err := unix.Mmap(fd, 0, opts.Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, &fs.PathError{Op: "mmap", Path: path, Err: err}
	}
	return &MappedRegion{
		Addr: addr,
		Name: opts.Name,
		sys:  sysHandle{fd: fd, path: path},
	}, nil
}

func (b unlinkBackend) Release(region *MappedRegion) error {
	var errs []error
	if region.Addr != nil {
		if err := unix.Munmap(region.Addr); err != nil {
			errs = append(errs, fmt.Errorf("munmap: %w", err))
		}
		region.Addr = nil
	}
	if region.sys.fd >= 0 {
		if err := unix.Close(region.sys.fd); err != nil {
			errs = append(errs, fmt.Errorf("close fd %d: %w", region.sys.fd, err))
		}
		region.sys.fd = -1
	}
	if region.Creator && region.sys.path != "" {
		if err := unix.Unlink(region.sys.path); err != nil {
			errs = append(errs, &fs.PathError{Op: "shm_unlink", Path: region.sys.path, Err: err})
		}
		region.sys.path = ""
	}
	return errors.Join(errs...)
}

func isResourceExhausted(err error) bool {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return false
	}
	switch errno {
	case unix.ENOMEM, unix.ENOSPC, unix.EMFILE, unix.ENFILE, unix.EFBIG:
		return true
	}
	return false
}

func isInvalidArgument(err error) bool {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return false
	}
	return errno == unix.EINVAL || errno == unix.ENAMETOOLONG
}
