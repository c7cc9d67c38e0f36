package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/i5heu/GoPieceQueue/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.QueueCapacity)
	assert.Equal(t, 3, cfg.StackCapacity)
	assert.Equal(t, 3, cfg.BatchSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"default", func(*config.Config) {}, false},
		{"zero queue", func(c *config.Config) { c.QueueCapacity = 0 }, true},
		{"negative stack", func(c *config.Config) { c.StackCapacity = -1 }, true},
		{"zero batch", func(c *config.Config) { c.BatchSize = 0 }, true},
		{"batch above stack", func(c *config.Config) { c.BatchSize = 4 }, true},
		{"batch equals both", func(c *config.Config) { c.QueueCapacity, c.StackCapacity, c.BatchSize = 4, 4, 4 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := config.Parse([]byte("seed: 42\nqueue_capacity: 7\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 7, cfg.QueueCapacity)
	assert.Equal(t, config.DefaultStackCapacity, cfg.StackCapacity)
	assert.Equal(t, config.DefaultBatchSize, cfg.BatchSize)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := config.Parse([]byte("queue_capacity: [1, 2"))
	assert.Error(t, err)

	_, err = config.Parse([]byte("stack_capacity: 0\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stack_capacity: 4\nbatch_size: 2\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.StackCapacity)
	assert.Equal(t, 2, cfg.BatchSize)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
