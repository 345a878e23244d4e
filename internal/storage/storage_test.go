package storage

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearforge/drivetrain/internal/config"
	"github.com/gearforge/drivetrain/internal/storage/memory"
)

func TestNewBackendMemory(t *testing.T) {
	b, err := NewBackend(config.StorageConfig{
		Type:   "memory",
		Memory: config.MemoryConfig{OutputDir: t.TempDir()},
	}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &memory.Backend{}, b)
}

func TestNewBackendUnknownType(t *testing.T) {
	_, err := NewBackend(config.StorageConfig{Type: "redis"}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage type")
}
