//go:build windows

package shm

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RefcountBackendTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *RefcountBackendTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *RefcountBackendTestSuite) opts(name string, size int) MapOptions {
	return MapOptions{Name: fmt.Sprintf("shmseg-%d-%s", os.Getpid(), name), Size: size}
}

func (s *RefcountBackendTestSuite) TestCreateOpenShareBytes() {
	creator, err := Default.Create(s.ctx, s.opts("shared", 4096))
	s.Require().NoError(err)
	defer func() { _ = Default.Release(creator) }()
	s.Require().True(creator.Creator)
	s.Require().Len(creator.Addr, 4096)

	opener, err := Default.Open(s.ctx, s.opts("shared", 4096))
	s.Require().NoError(err)
	defer func() { _ = Default.Release(opener) }()
	s.Require().False(opener.Creator)

	copy(creator.Addr, "ping")
	s.Equal("ping", string(opener.Addr[:4]))
}

func (s *RefcountBackendTestSuite) TestCreateExclusive() {
	r, err := Default.Create(s.ctx, s.opts("excl", 64))
	s.Require().NoError(err)
	defer func() { _ = Default.Release(r) }()

	_, err = Default.Create(s.ctx, s.opts("excl", 64))
	s.Require().ErrorIs(err, fs.ErrExist)
	var pathErr *fs.PathError
	s.Require().ErrorAs(err, &pathErr)
	s.Equal("CreateFileMapping", pathErr.Op)
}

func (s *RefcountBackendTestSuite) TestOpenMissing() {
	_, err := Default.Open(s.ctx, s.opts("missing", 64))
	s.Require().ErrorIs(err, fs.ErrNotExist)
	var pathErr *fs.PathError
	s.Require().ErrorAs(err, &pathErr)
	s.Equal("OpenFileMapping", pathErr.Op)
}

func (s *RefcountBackendTestSuite) TestNameOutlivesCreatorWhileHeld() {
	creator, err := Default.Create(s.ctx, s.opts("held", 128))
	s.Require().NoError(err)
	holder, err := Default.Open(s.ctx, s.opts("held", 128))
	s.Require().NoError(err)

	copy(creator.Addr, "kept")
	s.Require().NoError(Default.Release(creator))

	late, err := Default.Open(s.ctx, s.opts("held", 128))
	s.Require().NoError(err)
	s.Equal("kept", string(late.Addr[:4]))
	s.Require().NoError(Default.Release(late))
	s.Require().NoError(Default.Release(holder))

	_, err = Default.Open(s.ctx, s.opts("held", 128))
	s.Require().ErrorIs(err, fs.ErrNotExist)
}

func (s *RefcountBackendTestSuite) TestReleaseTwice() {
	r, err := Default.Create(s.ctx, s.opts("twice", 64))
	s.Require().NoError(err)
	s.Require().NoError(Default.Release(r))
	s.Require().NoError(Default.Release(r))
}

func (s *RefcountBackendTestSuite) TestModel() {
	s.Equal(ModelRefcount, Default.Model())
}

func TestRefcountBackend(t *testing.T) {
	suite.Run(t, new(RefcountBackendTestSuite))
}
