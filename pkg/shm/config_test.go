package shm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestVerifyConfig() {
	config := DefaultConfig()
	err := VerifyConfig(config)
	s.Require().ErrorIs(err, ErrInvalidArgument)

	config.Name = "/segment"
	s.Require().NoError(VerifyConfig(config))

	config.Capacity = 0
	s.Require().ErrorIs(VerifyConfig(config), ErrInvalidArgument)
	config.Capacity = -1
	s.Require().ErrorIs(VerifyConfig(config), ErrInvalidArgument)
}

func (s *ConfigTestSuite) TestDefaultConfig() {
	config := DefaultConfig()
	s.Equal(4096, config.Capacity)
	s.False(config.Create)
	s.Same(DefaultRegistry, config.Registry)
}

func (s *ConfigTestSuite) TestLoadConfig() {
	path := filepath.Join(s.T().TempDir(), "shm.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
name: /orders
capacity: 65536
create: true
dir: /run/shm
check_free_space: true
`), 0o600))

	config, err := LoadConfig(path)
	s.Require().NoError(err)
	s.Equal("/orders", config.Name)
	s.Equal(65536, config.Capacity)
	s.True(config.Create)
	s.Equal("/run/shm", config.Dir)
	s.True(config.CheckFreeSpace)
	s.Same(DefaultRegistry, config.Registry)
}

func (s *ConfigTestSuite) TestLoadConfigKeepsDefaults() {
	path := filepath.Join(s.T().TempDir(), "shm.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("name: quotes\n"), 0o600))

	config, err := LoadConfig(path)
	s.Require().NoError(err)
	s.Equal(4096, config.Capacity)
}

func (s *ConfigTestSuite) TestLoadConfigErrors() {
	_, err := LoadConfig(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Require().ErrorIs(err, os.ErrNotExist)

	bad := filepath.Join(s.T().TempDir(), "bad.yaml")
	s.Require().NoError(os.WriteFile(bad, []byte("name: [unterminated"), 0o600))
	_, err = LoadConfig(bad)
	s.Require().Error(err)

	invalid := filepath.Join(s.T().TempDir(), "invalid.yaml")
	s.Require().NoError(os.WriteFile(invalid, []byte("name: x\ncapacity: 0\n"), 0o600))
	_, err = LoadConfig(invalid)
	s.Require().ErrorIs(err, ErrInvalidArgument)
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
