package shm

import (
	"fmt"
	"os"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"
)

// Config holds segment creation parameters.
type Config struct {
	// Name identifies the OS object. Unix backends accept "/name" or "name".
	Name string `yaml:"name"`
	// Capacity is the segment size in bytes. Openers must pass the size the
	// creator used; it is not checked against the object.
	Capacity int `yaml:"capacity"`
	// Create selects exclusive creation instead of opening an existing object.
	Create bool `yaml:"create"`
	// Dir holds named objects on descriptor backends, empty means the
	// platform default: /dev/shm on linux, os.TempDir() on other unix
	// systems. The temp dir is usually disk-backed, so on darwin and the
	// BSDs point Dir at a memory-backed filesystem such as a RAM disk.
	// Ignored on windows.
	Dir string `yaml:"dir"`
	// CheckFreeSpace makes Create fail with ErrResourceExhausted when
	// /dev/shm cannot hold Capacity bytes.
	CheckFreeSpace bool `yaml:"check_free_space"`

	Meter    metric.Meter `yaml:"-"`
	Tracer   trace.Tracer `yaml:"-"`
	Registry *Registry    `yaml:"-"`
}

// DefaultConfig returns a config for opening an unnamed 4 KiB segment.
// Name must be set before use.
func DefaultConfig() Config {
	return Config{
		Capacity: 4096,
		Registry: DefaultRegistry,
	}
}

// VerifyConfig checks the fields every backend requires.
func VerifyConfig(c Config) error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty segment name", ErrInvalidArgument)
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidArgument, c.Capacity)
	}
	return nil
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := VerifyConfig(cfg); err != nil {
		return cfg, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	if c.Registry == nil {
		c.Registry = DefaultRegistry
	}
	return c
}
