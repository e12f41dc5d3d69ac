// Package shm contains the platform backends that acquire and release named
// shared memory objects and their mappings.
package shm

import (
	"context"
	"errors"
	"strings"
)

// Model describes when a named object leaves the system namespace.
type Model int

const (
	// ModelUnlink objects disappear once the creator unlinks them, even if
	// openers still hold live mappings.
	ModelUnlink Model = iota + 1
	// ModelRefcount objects disappear once every holder has closed its handle.
	ModelRefcount
)

func (m Model) String() string {
	switch m {
	case ModelUnlink:
		return "unlink"
	case ModelRefcount:
		return "refcount"
	default:
		return "unsupported"
	}
}

const maxNameLen = 255

var (
	// ErrInvalidArgument reports a bad name or size.
	ErrInvalidArgument = errors.New("shm: invalid argument")
	// ErrResourceExhausted reports that the backing store cannot hold the object.
	ErrResourceExhausted = errors.New("shm: resource exhausted")
)

// MappedRegion represents a memory-mapped shared region.
type MappedRegion struct {
	Addr    []byte
	Name    string
	Creator bool
	sys     sysHandle
}

// MapOptions defines options for mapping shared memory.
type MapOptions struct {
	Name string
	Size int
	// Dir overrides the directory holding named objects on descriptor backends.
	Dir string
	// CheckFreeSpace verifies the backing directory can hold Size bytes before
	// creating the object.
	CheckFreeSpace bool
}

// Backend acquires and releases named shared memory objects.
type Backend interface {
	// Create exclusively creates the named object and maps it read-write.
	Create(ctx context.Context, opts MapOptions) (*MappedRegion, error)
	// Open maps an existing named object using the caller-supplied size.
	Open(ctx context.Context, opts MapOptions) (*MappedRegion, error)
	// Release unmaps the region, closes its handle and, for creators on
	// unlink backends, removes the name. All steps run even if one fails.
	Release(region *MappedRegion) error
	Model() Model
}

// Default is the backend compiled for this platform.
var Default Backend = newPlatformBackend()

// MapRegion creates or opens a region with the default backend.
func MapRegion(ctx context.Context, opts MapOptions, create bool) (*MappedRegion, error) {
	if create {
		return Default.Create(ctx, opts)
	}
	return Default.Open(ctx, opts)
}

// UnmapRegion releases a region acquired with the default backend.
func UnmapRegion(region *MappedRegion) error {
	if region == nil {
		return nil
	}
	return Default.Release(region)
}

func validate(opts MapOptions) error {
	if opts.Size <= 0 {
		return ErrInvalidArgument
	}
	if opts.Name == "" || len(opts.Name) > maxNameLen || strings.IndexByte(opts.Name, 0) >= 0 {
		return ErrInvalidArgument
	}
	return nil
}
