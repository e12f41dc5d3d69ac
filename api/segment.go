// Package api defines public API contracts for shm-segment.
package api

import (
	"io"

	"github.com/srediag/shm-segment/pkg/shm"
)

// Segment is a named shared memory region exchanging one trailing-zero
// trimmed payload at a time.
type Segment interface {
	io.Closer
	Name() string
	Capacity() int
	IsCreator() bool
	Write(p []byte) error
	Read() []byte
	WriteText(text string) error
	ReadText() string
}

var _ Segment = (*shm.Segment)(nil)

// Create creates a named segment and returns it as a Segment.
func Create(name string, capacity int) (Segment, error) {
	s, err := shm.Create(name, capacity)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Open opens an existing named segment and returns it as a Segment.
func Open(name string, capacity int) (Segment, error) {
	s, err := shm.Open(name, capacity)
	if err != nil {
		return nil, err
	}
	return s, nil
}
