package download

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sxlmons/cloudvault/internal/catalog"
	"github.com/sxlmons/cloudvault/internal/storage"
	"github.com/sxlmons/cloudvault/internal/upload"
)

const testChunkSize = 1024 * 1024

func newTestEngines(t *testing.T) (*upload.Engine, *Engine) {
	t.Helper()
	storageAdapter, err := storage.New(filepath.Join(t.TempDir(), "storage"))
	require.NoError(t, err)
	cat, err := catalog.New(t.TempDir(), storageAdapter)
	require.NoError(t, err)
	return upload.New(cat, storageAdapter, testChunkSize), New(cat, storageAdapter, testChunkSize)
}

func TestDownload_RoundTripMatchesUploadedBytes(t *testing.T) {
	up, down := newTestEngines(t)

	size := int64(2 * testChunkSize)
	f, err := up.Initialize("alice", "f.bin", size, "application/octet-stream", "")
	require.NoError(t, err)

	chunk0 := make([]byte, testChunkSize)
	chunk1 := make([]byte, testChunkSize)
	for i := range chunk0 {
		chunk0[i] = byte(i % 251)
	}
	for i := range chunk1 {
		chunk1[i] = byte((i + 7) % 251)
	}
	require.NoError(t, up.AppendChunk(f.ID, "alice", 0, false, chunk0))
	require.NoError(t, up.AppendChunk(f.ID, "alice", 1, true, chunk1))
	require.NoError(t, up.Finalize(f.ID, "alice"))

	meta, err := down.Initialize(f.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, int32(2), meta.TotalChunks)

	got0, last0, err := down.GetChunk(f.ID, "alice", 0)
	require.NoError(t, err)
	assert.False(t, last0)
	assert.Equal(t, chunk0, got0)

	got1, last1, err := down.GetChunk(f.ID, "alice", 1)
	require.NoError(t, err)
	assert.True(t, last1)
	assert.Equal(t, chunk1, got1)

	require.NoError(t, down.Complete(f.ID, "alice"))
}

func TestDownload_RejectsIncompleteFile(t *testing.T) {
	up, down := newTestEngines(t)

	f, err := up.Initialize("alice", "f.bin", 2*testChunkSize, "application/octet-stream", "")
	require.NoError(t, err)

	_, err = down.Initialize(f.ID, "alice")
	assert.Error(t, err)
}

func TestDownload_RejectsOutOfRangeChunk(t *testing.T) {
	up, down := newTestEngines(t)

	f, err := up.Initialize("alice", "f.bin", testChunkSize, "application/octet-stream", "")
	require.NoError(t, err)
	require.NoError(t, up.AppendChunk(f.ID, "alice", 0, true, make([]byte, testChunkSize)))
	require.NoError(t, up.Finalize(f.ID, "alice"))

	_, _, err = down.GetChunk(f.ID, "alice", 1)
	assert.Error(t, err)
}
