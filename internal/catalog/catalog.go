package catalog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sxlmons/cloudvault/internal/logger"
	"github.com/sxlmons/cloudvault/internal/storage"
)

// Catalog composes the directory and file stores with the physical storage
// adapter to implement the cross-cutting directory operations (create,
// rename, recursive delete, list, move) under the catalogs' write locks.
type Catalog struct {
	Dirs    *DirectoryStore
	Files   *FileStore
	storage *storage.Adapter
}

// New constructs a Catalog backed by metadataDir (JSON snapshots) and
// storageAdapter (physical bytes).
func New(metadataDir string, storageAdapter *storage.Adapter) (*Catalog, error) {
	dirs, err := NewDirectoryStore(metadataDir)
	if err != nil {
		return nil, err
	}
	files, err := NewFileStore(metadataDir)
	if err != nil {
		return nil, err
	}
	return &Catalog{Dirs: dirs, Files: files, storage: storageAdapter}, nil
}

// CreateDirectory creates a new directory record and its physical backing
// directory.
func (c *Catalog) CreateDirectory(owner, name, parentID string) (*DirectoryMetadata, error) {
	name = SanitizeName(name)

	var parentPath string
	if parentID != "" {
		parent, err := c.Dirs.Get(parentID, owner)
		if err != nil {
			return nil, err
		}
		parentPath = parent.Path
	} else {
		parentPath = c.storage.UserRoot(owner)
	}

	if c.Dirs.ExistsWithName(name, parentID, owner) {
		return nil, NewError(ErrConflict, "a directory with this name already exists")
	}

	physicalPath := filepath.Join(parentPath, name)
	if err := c.storage.CreateDirectory(physicalPath); err != nil {
		return nil, NewError(ErrStorage, err.Error())
	}

	d := &DirectoryMetadata{
		OwnerID:  owner,
		Name:     name,
		ParentID: parentID,
		Path:     physicalPath,
	}
	if err := c.Dirs.insert(d); err != nil {
		// Roll back the physical directory on metadata-persist failure.
		_ = c.storage.DeleteDirectory(physicalPath, false)
		return nil, err
	}
	return d, nil
}

// RenameDirectory renames id to newName, rewriting every descendant
// directory's stored path and every contained file's stored path so that
// stored paths always point at the physical file. The renamed directory and
// its descendant directories are rewritten in one snapshot write; file
// records are then rewritten one at a time, and a failure to rewrite a file
// record is logged, not returned, and not rolled back.
func (c *Catalog) RenameDirectory(id, newName, owner string) error {
	newName = SanitizeName(newName)

	dir, err := c.Dirs.Get(id, owner)
	if err != nil {
		return err
	}

	if c.Dirs.ExistsWithNameExcluding(newName, dir.ParentID, owner, id) {
		return NewError(ErrConflict, "a directory with this name already exists")
	}

	oldPath := dir.Path
	newPath := filepath.Join(filepath.Dir(oldPath), newName)

	if err := c.storage.RenameDirectory(oldPath, newPath); err != nil {
		return NewError(ErrStorage, err.Error())
	}

	descendants := c.Dirs.descendants(id, owner)
	updatedDirs := make([]*DirectoryMetadata, 0, len(descendants))
	for _, desc := range descendants {
		rewritten := desc.Clone()
		if desc.ID == id {
			rewritten.Name = newName
			rewritten.Path = newPath
		} else {
			rel, relErr := filepath.Rel(oldPath, desc.Path)
			if relErr != nil {
				continue
			}
			rewritten.Path = filepath.Join(newPath, rel)
		}
		updatedDirs = append(updatedDirs, rewritten)
	}
	if err := c.Dirs.updateMany(updatedDirs); err != nil {
		return err
	}

	// Rewrite every file under the renamed subtree (any depth).
	for _, desc := range descendants {
		files := c.Files.ListByDirectory(desc.ID, owner)
		var newDescPath string
		for _, ud := range updatedDirs {
			if ud.ID == desc.ID {
				newDescPath = ud.Path
				break
			}
		}
		for _, f := range files {
			fCopy := f
			_, updErr := c.Files.Update(fCopy.ID, func(working *FileMetadata) error {
				working.Path = filepath.Join(newDescPath, filepath.Base(working.Path))
				return nil
			})
			if updErr != nil {
				logger.Warn("failed to rewrite file path after directory rename",
					"file_id", fCopy.ID, "directory_id", desc.ID, "error", updErr)
			}
		}
	}
	return nil
}

// DeleteDirectory removes directory id. Non-recursive deletion fails with
// Conflict if the directory has any child. Recursive deletion walks the
// subtree bottom-up, deleting file bytes/metadata then directory
// metadata/physical directories.
func (c *Catalog) DeleteDirectory(id, owner string, recursive bool) error {
	dir, err := c.Dirs.Get(id, owner)
	if err != nil {
		return err
	}

	if !recursive {
		if len(c.Dirs.children(id, owner)) > 0 || len(c.Files.ListByDirectory(id, owner)) > 0 {
			return NewError(ErrConflict, "directory is not empty")
		}
		if err := c.storage.DeleteDirectory(dir.Path, false); err != nil {
			return NewError(ErrStorage, err.Error())
		}
		return c.Dirs.remove(id)
	}

	descendants := c.Dirs.descendants(id, owner)
	// Bottom-up: delete deepest directories' files first.
	for i := len(descendants) - 1; i >= 0; i-- {
		desc := descendants[i]
		for _, f := range c.Files.ListByDirectory(desc.ID, owner) {
			if err := c.storage.DeleteFile(f.Path); err != nil {
				logger.Warn("failed to delete file bytes during recursive delete",
					"file_id", f.ID, "error", err)
			}
			if err := c.Files.deleteUnchecked(f.ID); err != nil {
				return err
			}
		}
	}
	for i := len(descendants) - 1; i >= 0; i-- {
		desc := descendants[i]
		if err := c.storage.DeleteDirectory(desc.Path, true); err != nil {
			logger.Warn("failed to delete physical directory during recursive delete",
				"directory_id", desc.ID, "error", err)
		}
		if err := c.Dirs.remove(desc.ID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteFile removes a file's physical bytes and metadata record.
func (c *Catalog) DeleteFile(id, owner string) error {
	f, err := c.Files.Get(id, owner)
	if err != nil {
		return err
	}
	if err := c.storage.DeleteFile(f.Path); err != nil {
		return NewError(ErrStorage, err.Error())
	}
	return c.Files.Delete(id, owner)
}

// ListChildren lists the directories and files directly under parentID
// (empty => root), filtered by owner.
func (c *Catalog) ListChildren(parentID, owner string) ([]*DirectoryMetadata, []*FileMetadata) {
	return c.Dirs.ListChildren(parentID, owner), c.Files.ListByDirectory(parentID, owner)
}

// MoveFiles moves fileIDs into targetDirID (empty => root) for owner,
// de-duplicating colliding names with a timestamp suffix and attempting a
// best-effort rollback of already-moved files on partial failure.
func (c *Catalog) MoveFiles(fileIDs []string, targetDirID, owner string) error {
	var targetPath string
	if targetDirID != "" {
		target, err := c.Dirs.Get(targetDirID, owner)
		if err != nil {
			return err
		}
		targetPath = target.Path
	} else {
		targetPath = c.storage.UserRoot(owner)
	}

	type moved struct {
		id       string
		oldPath  string
		oldDirID string
	}
	var done []moved

	rollback := func() {
		for i := len(done) - 1; i >= 0; i-- {
			m := done[i]
			cur, err := c.Files.GetUnchecked(m.id)
			if err != nil {
				continue
			}
			_ = c.storage.MoveFile(cur.Path, m.oldPath)
			_, _ = c.Files.Update(m.id, func(f *FileMetadata) error {
				f.Path = m.oldPath
				f.DirectoryID = m.oldDirID
				return nil
			})
		}
	}

	for _, id := range fileIDs {
		f, err := c.Files.Get(id, owner)
		if err != nil {
			rollback()
			return err
		}

		name := f.Name
		candidate := filepath.Join(targetPath, name)
		if c.Files.ExistsWithName(name, targetDirID, owner) && f.DirectoryID != targetDirID {
			name = fmt.Sprintf("%s_%d%s", trimExt(f.Name), time.Now().UnixNano(), extOf(f.Name))
			candidate = filepath.Join(targetPath, name)
		}

		oldPath, oldDirID := f.Path, f.DirectoryID
		if err := c.storage.MoveFile(oldPath, candidate); err != nil {
			rollback()
			return NewError(ErrStorage, err.Error())
		}
		if _, err := c.Files.Update(id, func(working *FileMetadata) error {
			working.Path = candidate
			working.DirectoryID = targetDirID
			working.Name = name
			return nil
		}); err != nil {
			_ = c.storage.MoveFile(candidate, oldPath)
			rollback()
			return err
		}
		done = append(done, moved{id: id, oldPath: oldPath, oldDirID: oldDirID})
	}
	return nil
}

func trimExt(name string) string {
	ext := extOf(name)
	return name[:len(name)-len(ext)]
}

func extOf(name string) string {
	return filepath.Ext(name)
}
