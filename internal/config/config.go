// Package config loads the generator's runtime settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration of a world. Zero or missing fields
// take the documented defaults, so an empty file (or no file at all) is a
// valid configuration.
type Config struct {
	// Seed is the world seed. Every generated block derives from it.
	Seed int64 `yaml:"seed"`

	// Workers is the number of background generation workers. 0 sizes the
	// pool from the CPU count; negative forces serial generation.
	Workers int `yaml:"workers"`

	// StreamRadius is the horizontal chunk radius kept generated around
	// the stream center.
	StreamRadius int32 `yaml:"stream_radius"`

	// EvictHorizontal and EvictVertical bound the cache retention window,
	// in chunks. Both must be at least the stream radius or streaming
	// would evict its own working set.
	EvictHorizontal int32 `yaml:"evict_horizontal"`
	EvictVertical   int32 `yaml:"evict_vertical"`

	// MinChunkY and MaxChunkY bound generation vertically, in chunk
	// coordinates.
	MinChunkY int32 `yaml:"min_chunk_y"`
	MaxChunkY int32 `yaml:"max_chunk_y"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Seed:            0,
		Workers:         0,
		StreamRadius:    6,
		EvictHorizontal: 10,
		EvictVertical:   6,
		MinChunkY:       -4,
		MaxChunkY:       4,
	}
}

// Load reads the configuration at path, layering it over the defaults. An
// empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.StreamRadius < 1 {
		return fmt.Errorf("stream_radius %d must be at least 1", c.StreamRadius)
	}
	if c.EvictHorizontal < c.StreamRadius {
		return fmt.Errorf("evict_horizontal %d must cover stream_radius %d", c.EvictHorizontal, c.StreamRadius)
	}
	if c.EvictVertical < 1 {
		return fmt.Errorf("evict_vertical %d must be at least 1", c.EvictVertical)
	}
	if c.MinChunkY > c.MaxChunkY {
		return fmt.Errorf("min_chunk_y %d exceeds max_chunk_y %d", c.MinChunkY, c.MaxChunkY)
	}
	return nil
}
