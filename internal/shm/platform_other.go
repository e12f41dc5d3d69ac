//go:build !unix && !windows

package shm

import (
	"context"
	"errors"
)

type sysHandle struct{}

type unsupportedBackend struct{}

func newPlatformBackend() Backend { return unsupportedBackend{} }

func (unsupportedBackend) Model() Model { return 0 }

func (unsupportedBackend) Create(context.Context, MapOptions) (*MappedRegion, error) {
	return nil, errors.ErrUnsupported
}

func (unsupportedBackend) Open(context.Context, MapOptions) (*MappedRegion, error) {
	return nil, errors.ErrUnsupported
}

func (unsupportedBackend) Release(*MappedRegion) error { return nil }

func isResourceExhausted(error) bool { return false }

func isInvalidArgument(error) bool { return false }
