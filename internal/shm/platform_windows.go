//go:build windows

package shm

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procOpenFileMappingW = modkernel32.NewProc("OpenFileMappingW")
)

type sysHandle struct {
	handle windows.Handle
	view   uintptr
}

// refcountBackend uses pagefile-backed file mappings. The kernel drops the
// object when its last handle closes, so creators and openers release alike.
type refcountBackend struct{}

func newPlatformBackend() Backend { return refcountBackend{} }

func (refcountBackend) Model() Model { return ModelRefcount }

func (b refcountBackend) Create(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}
	name, err := windows.UTF16PtrFromString(opts.Name)
	if err != nil {
		return nil, ErrInvalidArgument
	}
	size := uint64(opts.Size)
	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE,
		uint32(size>>32), uint32(size), name)
	if err != nil {
		if h != 0 {
			// ERROR_ALREADY_EXISTS hands back a handle to the existing object.
			_ = windows.CloseHandle(h)
		}
		return nil, &fs.PathError{Op: "CreateFileMapping", Path: opts.Name, Err: err}
	}
	return b.mapView(h, opts, true)
}

func (b refcountBackend) Open(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}
	name, err := windows.UTF16PtrFromString(opts.Name)
	if err != nil {
		return nil, ErrInvalidArgument
	}
	h, err := openFileMapping(windows.FILE_MAP_READ|windows.FILE_MAP_WRITE, name)
	if err != nil {
		return nil, &fs.PathError{Op: "OpenFileMapping", Path: opts.Name, Err: err}
	}
	return b.mapView(h, opts, false)
}

// openFileMapping calls OpenFileMappingW, which x/sys/windows does not wrap.
// The handle is not inheritable.
func openFileMapping(access uint32, name *uint16) (windows.Handle, error) {
	r, _, e1 := procOpenFileMappingW.Call(uintptr(access), 0, uintptr(unsafe.Pointer(name)))
	if r == 0 {
		if errno, ok := e1.(windows.Errno); ok && errno != 0 {
			return 0, errno
		}
		return 0, windows.ERROR_INVALID_HANDLE
	}
	return windows.Handle(r), nil
}

func (b refcountBackend) mapView(h windows.Handle, opts MapOptions, creator bool) (*MappedRegion, error) {
	view, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ|windows.FILE_MAP_WRITE, 0, 0, uintptr(opts.Size))
	if err != nil {
		_ = windows.CloseHandle(h)
		return nil, &fs.PathError{Op: "MapViewOfFile", Path: opts.Name, Err: err}
	}
	return &MappedRegion{
		Addr:    unsafe.Slice((*byte)(unsafe.Pointer(view)), opts.Size),
		Name:    opts.Name,
		Creator: creator,
		sys:     sysHandle{handle: h, view: view},
	}, nil
}

func (b refcountBackend) Release(region *MappedRegion) error {
	var errs []error
	if region.sys.view != 0 {
		if err := windows.UnmapViewOfFile(region.sys.view); err != nil {
			errs = append(errs, fmt.Errorf("UnmapViewOfFile: %w", err))
		}
		region.sys.view = 0
		region.Addr = nil
	}
	if region.sys.handle != 0 {
		if err := windows.CloseHandle(region.sys.handle); err != nil {
			errs = append(errs, fmt.Errorf("CloseHandle: %w", err))
		}
		region.sys.handle = 0
	}
	return errors.Join(errs...)
}

func isResourceExhausted(err error) bool {
	var errno windows.Errno
	if !errors.As(err, &errno) {
		return false
	}
	switch errno {
	case windows.ERROR_NOT_ENOUGH_MEMORY, windows.ERROR_OUTOFMEMORY, windows.ERROR_DISK_FULL,
		windows.ERROR_TOO_MANY_OPEN_FILES:
		return true
	}
	return false
}

func isInvalidArgument(err error) bool {
	var errno windows.Errno
	if !errors.As(err, &errno) {
		return false
	}
	return errno == windows.ERROR_INVALID_PARAMETER || errno == windows.ERROR_INVALID_NAME
}
