package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sxlmons/cloudvault/internal/storage"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	storageAdapter, err := storage.New(filepath.Join(t.TempDir(), "storage"))
	require.NoError(t, err)

	c, err := New(t.TempDir(), storageAdapter)
	require.NoError(t, err)
	return c
}

func TestCreateDirectory_DuplicateNameCaseInsensitiveConflicts(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.CreateDirectory("alice", "Docs", "")
	require.NoError(t, err)

	_, err = c.CreateDirectory("alice", "docs", "")
	require.Error(t, err)
	assert.Equal(t, ErrConflict, CodeOf(err))
}

func TestCreateDirectory_SameNameDifferentOwnersAllowed(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.CreateDirectory("alice", "docs", "")
	require.NoError(t, err)
	_, err = c.CreateDirectory("bob", "docs", "")
	require.NoError(t, err)
}

func TestDeleteDirectory_NonRecursiveFailsWhenNotEmpty(t *testing.T) {
	c := newTestCatalog(t)

	d1, err := c.CreateDirectory("alice", "docs", "")
	require.NoError(t, err)
	_, err = c.CreateDirectory("alice", "sub", d1.ID)
	require.NoError(t, err)

	err = c.DeleteDirectory(d1.ID, "alice", false)
	require.Error(t, err)
	assert.Equal(t, ErrConflict, CodeOf(err))

	// Tree is unchanged.
	_, err = c.Dirs.Get(d1.ID, "alice")
	require.NoError(t, err)
}

func TestDeleteDirectory_RecursiveRemovesFilesAndSubdirs(t *testing.T) {
	c := newTestCatalog(t)

	d1, err := c.CreateDirectory("alice", "docs", "")
	require.NoError(t, err)
	d2, err := c.CreateDirectory("alice", "sub", d1.ID)
	require.NoError(t, err)

	require.NoError(t, c.storage.CreateEmptyFile(filepath.Join(d2.Path, "f1_file.bin")))
	f := &FileMetadata{OwnerID: "alice", Name: "file.bin", DirectoryID: d2.ID, Path: filepath.Join(d2.Path, "f1_file.bin")}
	require.NoError(t, c.Files.Create(f))

	require.NoError(t, c.DeleteDirectory(d1.ID, "alice", true))

	_, err = c.Dirs.Get(d1.ID, "alice")
	assert.Error(t, err)
	_, err = c.Dirs.Get(d2.ID, "alice")
	assert.Error(t, err)
	_, err = c.Files.Get(f.ID, "alice")
	assert.Error(t, err)
}

func TestRenameDirectory_PropagatesDescendantPaths(t *testing.T) {
	c := newTestCatalog(t)

	d1, err := c.CreateDirectory("alice", "docs", "")
	require.NoError(t, err)
	d2, err := c.CreateDirectory("alice", "sub", d1.ID)
	require.NoError(t, err)

	f := &FileMetadata{OwnerID: "alice", Name: "file.bin", DirectoryID: d2.ID, Path: filepath.Join(d2.Path, "f1_file.bin")}
	require.NoError(t, c.Files.Create(f))

	require.NoError(t, c.RenameDirectory(d1.ID, "renamed", "alice"))

	renamed, err := c.Dirs.Get(d1.ID, "alice")
	require.NoError(t, err)
	assert.Contains(t, renamed.Path, "renamed")

	subAfter, err := c.Dirs.Get(d2.ID, "alice")
	require.NoError(t, err)
	assert.Contains(t, subAfter.Path, "renamed")
	assert.Contains(t, subAfter.Path, "sub")

	fileAfter, err := c.Files.Get(f.ID, "alice")
	require.NoError(t, err)
	assert.Contains(t, fileAfter.Path, "renamed")
}

func TestMoveFiles_DeduplicatesCollidingNames(t *testing.T) {
	c := newTestCatalog(t)

	d1, err := c.CreateDirectory("alice", "target", "")
	require.NoError(t, err)

	existingPath := filepath.Join(d1.Path, "f0_a.bin")
	require.NoError(t, c.storage.CreateEmptyFile(existingPath))
	existing := &FileMetadata{OwnerID: "alice", Name: "a.bin", DirectoryID: d1.ID, Path: existingPath}
	require.NoError(t, c.Files.Create(existing))

	movingPath := filepath.Join(c.storage.UserRoot("alice"), "f1_a.bin")
	require.NoError(t, c.storage.CreateEmptyFile(movingPath))
	moving := &FileMetadata{OwnerID: "alice", Name: "a.bin", DirectoryID: "", Path: movingPath}
	require.NoError(t, c.Files.Create(moving))

	require.NoError(t, c.MoveFiles([]string{moving.ID}, d1.ID, "alice"))

	after, err := c.Files.Get(moving.ID, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "a.bin", after.Name)
	assert.Equal(t, d1.ID, after.DirectoryID)
}
