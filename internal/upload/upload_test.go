package upload

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sxlmons/cloudvault/internal/catalog"
	"github.com/sxlmons/cloudvault/internal/storage"
)

const testChunkSize = 1024 * 1024

func newTestEngine(t *testing.T) (*Engine, *catalog.Catalog) {
	t.Helper()
	storageAdapter, err := storage.New(filepath.Join(t.TempDir(), "storage"))
	require.NoError(t, err)
	cat, err := catalog.New(t.TempDir(), storageAdapter)
	require.NoError(t, err)
	return New(cat, storageAdapter, testChunkSize), cat
}

func TestUpload_TwoChunkFileRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)

	f, err := e.Initialize("alice", "f.bin", 2*testChunkSize, "application/octet-stream", "")
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.TotalChunks)
	assert.False(t, f.Complete)

	chunk0 := make([]byte, testChunkSize)
	chunk1 := make([]byte, testChunkSize)
	require.NoError(t, e.AppendChunk(f.ID, "alice", 0, false, chunk0))
	require.NoError(t, e.AppendChunk(f.ID, "alice", 1, true, chunk1))
	require.NoError(t, e.Finalize(f.ID, "alice"))

	final, err := e.catalog.Files.Get(f.ID, "alice")
	require.NoError(t, err)
	assert.True(t, final.Complete)
	assert.Equal(t, int32(2), final.ChunksReceived)
}

func TestUpload_OutOfOrderChunkRejectedAndStateUnchanged(t *testing.T) {
	e, _ := newTestEngine(t)

	f, err := e.Initialize("alice", "f.bin", 3*testChunkSize, "application/octet-stream", "")
	require.NoError(t, err)

	err = e.AppendChunk(f.ID, "alice", 1, false, make([]byte, testChunkSize))
	require.Error(t, err)
	assert.Equal(t, catalog.ErrOutOfOrderChunk, catalog.CodeOf(err))

	got, err := e.catalog.Files.Get(f.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, int32(0), got.ChunksReceived)

	require.NoError(t, e.AppendChunk(f.ID, "alice", 0, false, make([]byte, testChunkSize)))
	require.NoError(t, e.AppendChunk(f.ID, "alice", 1, false, make([]byte, testChunkSize)))
	require.NoError(t, e.AppendChunk(f.ID, "alice", 2, true, make([]byte, testChunkSize)))
}

func TestUpload_ShortLastChunkAcceptedWithoutIsLastFlag(t *testing.T) {
	e, _ := newTestEngine(t)

	size := int64(testChunkSize + 100)
	f, err := e.Initialize("alice", "f.bin", size, "application/octet-stream", "")
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.TotalChunks)

	require.NoError(t, e.AppendChunk(f.ID, "alice", 0, false, make([]byte, testChunkSize)))
	require.NoError(t, e.AppendChunk(f.ID, "alice", 1, false, make([]byte, 100)))

	got, err := e.catalog.Files.Get(f.ID, "alice")
	require.NoError(t, err)
	assert.True(t, got.Complete)
}

func TestInitialize_RejectsNonPositiveSize(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.Initialize("alice", "f.bin", 0, "application/octet-stream", "")
	assert.Error(t, err)
}
