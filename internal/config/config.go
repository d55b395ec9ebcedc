// Package config loads the memowrap configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/on-the-ground/memo_ive_go/memo"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config drives one memowrap run.
type Config struct {
	Widths     []int `yaml:"widths"`
	Passes     int   `yaml:"passes"`
	MaxAge     int   `yaml:"max_age"`
	Workers    int   `yaml:"workers"`
	BufferSize int   `yaml:"buffer_size"`
}

func Default() Config {
	return Config{
		Widths:     []int{40, 60, 80},
		Passes:     1,
		MaxAge:     memo.DefaultMaxAge,
		Workers:    1,
		BufferSize: 16,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if len(c.Widths) == 0 {
		return fmt.Errorf("%w: at least one width is required", ErrInvalidConfig)
	}
	for _, w := range c.Widths {
		if w < 1 {
			return fmt.Errorf("%w: width %d must be positive", ErrInvalidConfig, w)
		}
	}
	if c.Passes < 1 {
		return fmt.Errorf("%w: passes %d must be positive", ErrInvalidConfig, c.Passes)
	}
	if c.MaxAge < 1 {
		return fmt.Errorf("%w: max_age %d must be positive", ErrInvalidConfig, c.MaxAge)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d must be positive", ErrInvalidConfig, c.Workers)
	}
	if c.BufferSize < 1 {
		return fmt.Errorf("%w: buffer_size %d must be positive", ErrInvalidConfig, c.BufferSize)
	}
	return nil
}
