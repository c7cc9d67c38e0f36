package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultQueueCapacity = 5
	DefaultStackCapacity = 3
	DefaultBatchSize     = 3
)

// Config holds the parameters of one game session.
type Config struct {
	QueueCapacity int `yaml:"queue_capacity"`
	StackCapacity int `yaml:"stack_capacity"`
	BatchSize     int `yaml:"batch_size"`

	// Seed drives piece-kind selection. Sessions with equal seeds deal the
	// same pieces.
	Seed uint64 `yaml:"seed"`
}

// Default returns the classic 5-piece queue with a 3-slot reserve.
func Default() Config {
	return Config{
		QueueCapacity: DefaultQueueCapacity,
		StackCapacity: DefaultStackCapacity,
		BatchSize:     DefaultBatchSize,
	}
}

// Validate rejects configurations a session cannot be built from.
func (c Config) Validate() error {
	var errs []error
	if c.QueueCapacity < 1 {
		errs = append(errs, fmt.Errorf("queue_capacity must be positive, got %d", c.QueueCapacity))
	}
	if c.StackCapacity < 1 {
		errs = append(errs, fmt.Errorf("stack_capacity must be positive, got %d", c.StackCapacity))
	}
	if c.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("batch_size must be positive, got %d", c.BatchSize))
	} else if c.BatchSize > c.QueueCapacity || c.BatchSize > c.StackCapacity {
		errs = append(errs, fmt.Errorf("batch_size %d exceeds a container capacity (queue %d, stack %d)",
			c.BatchSize, c.QueueCapacity, c.StackCapacity))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Parse decodes YAML on top of Default, so omitted keys keep their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	return Parse(data)
}
