package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 9876, cfg.Port)
	assert.Equal(t, int64(1*1024*1024), cfg.ChunkSize)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cloudvault.yaml")
	contents := "port: 4000\nchunk_size: 2048\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, int64(2048), cfg.ChunkSize)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	// Untouched fields still carry defaults.
	assert.Equal(t, 100, cfg.MaxConcurrentClients)
}

func TestValidate_RejectsBadPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 0
	require.Error(t, Validate(cfg))
}

func TestValidate_RejectsZeroChunkSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChunkSize = 0
	require.Error(t, Validate(cfg))
}
