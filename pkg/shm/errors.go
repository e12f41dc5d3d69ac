package shm

import (
	"errors"
	"fmt"
	"io/fs"

	internalshm "github.com/srediag/shm-segment/internal/shm"
)

// Errors returned by segment operations. OS failures are returned as
// *fs.PathError wrapping the unmodified errno, which matches the fs
// sentinels below through errors.Is on every backend.
var (
	ErrAlreadyExists     = fs.ErrExist
	ErrNotFound          = fs.ErrNotExist
	ErrPermissionDenied  = fs.ErrPermission
	ErrResourceExhausted = internalshm.ErrResourceExhausted
	ErrInvalidArgument   = internalshm.ErrInvalidArgument
	ErrTooLarge          = errors.New("shm: payload exceeds segment capacity")
	ErrClosed            = errors.New("shm: segment closed")
	ErrUnsupported       = errors.ErrUnsupported
)

// TooLargeError is returned by Write when the payload does not fit.
// The segment is left untouched.
type TooLargeError struct {
	Size     int
	Capacity int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("shm: payload of %d bytes exceeds segment capacity %d", e.Size, e.Capacity)
}

func (e *TooLargeError) Is(target error) bool { return target == ErrTooLarge }

// Kind classifies errors returned by this package.
type Kind int

const (
	KindUnknown Kind = iota
	KindAlreadyExists
	KindNotFound
	KindPermissionDenied
	KindResourceExhausted
	KindInvalidArgument
	KindTooLarge
	KindClosed
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindAlreadyExists:
		return "AlreadyExists"
	case KindNotFound:
		return "NotFound"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindResourceExhausted:
		return "ResourceExhausted"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindTooLarge:
		return "TooLarge"
	case KindClosed:
		return "Closed"
	case KindUnsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// KindOf reports the kind of err. A nil error is KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrTooLarge):
		return KindTooLarge
	case errors.Is(err, ErrClosed):
		return KindClosed
	case errors.Is(err, ErrAlreadyExists):
		return KindAlreadyExists
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrResourceExhausted), internalshm.IsResourceExhausted(err):
		return KindResourceExhausted
	case errors.Is(err, ErrInvalidArgument), internalshm.IsInvalidArgument(err):
		return KindInvalidArgument
	case errors.Is(err, ErrUnsupported):
		return KindUnsupported
	}
	return KindUnknown
}
