package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := New(t.TempDir())
	require.NoError(t, err)
	return a
}

func TestAdapter_CreateAndWriteReadChunk(t *testing.T) {
	a := newTestAdapter(t)
	path := filepath.Join(a.Root(), "user1", "f1_hello.bin")

	require.NoError(t, a.CreateEmptyFile(path))
	require.NoError(t, a.WriteChunk(path, 0, []byte("hello")))
	require.NoError(t, a.WriteChunk(path, 5, []byte(" world")))

	buf := make([]byte, 11)
	n, err := a.ReadChunk(path, 0, 11, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(buf[:n]))

	size, err := a.Size(path)
	require.NoError(t, err)
	assert.Equal(t, int64(11), size)
}

func TestAdapter_MoveFile(t *testing.T) {
	a := newTestAdapter(t)
	src := filepath.Join(a.Root(), "user1", "a.bin")
	dst := filepath.Join(a.Root(), "user1", "sub", "a.bin")

	require.NoError(t, a.CreateEmptyFile(src))
	require.NoError(t, a.WriteChunk(src, 0, []byte("data")))
	require.NoError(t, a.MoveFile(src, dst))

	buf := make([]byte, 4)
	n, err := a.ReadChunk(dst, 0, 4, buf)
	require.NoError(t, err)
	assert.Equal(t, "data", string(buf[:n]))
}

func TestAdapter_DeleteDirectory_NonRecursiveFailsWhenNotEmpty(t *testing.T) {
	a := newTestAdapter(t)
	dir := filepath.Join(a.Root(), "user1", "docs")
	require.NoError(t, a.CreateDirectory(dir))
	require.NoError(t, a.CreateEmptyFile(filepath.Join(dir, "f.bin")))

	err := a.DeleteDirectory(dir, false)
	assert.Error(t, err)
}

func TestAdapter_DeleteDirectory_Recursive(t *testing.T) {
	a := newTestAdapter(t)
	dir := filepath.Join(a.Root(), "user1", "docs")
	require.NoError(t, a.CreateDirectory(dir))
	require.NoError(t, a.CreateEmptyFile(filepath.Join(dir, "f.bin")))

	require.NoError(t, a.DeleteDirectory(dir, true))
	_, err := a.Size(filepath.Join(dir, "f.bin"))
	assert.Error(t, err)
}
