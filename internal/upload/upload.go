// Package upload implements the chunked upload engine: a
// three-phase contract (Initialize, AppendChunk, Finalize) keyed by file id.
package upload

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sxlmons/cloudvault/internal/catalog"
	"github.com/sxlmons/cloudvault/internal/logger"
	"github.com/sxlmons/cloudvault/internal/storage"
)

// Engine is the upload engine, sharing the catalog and storage adapter with
// the rest of the server.
type Engine struct {
	catalog   *catalog.Catalog
	storage   *storage.Adapter
	chunkSize int64
}

// New constructs an upload Engine with the configured chunk size.
func New(cat *catalog.Catalog, storageAdapter *storage.Adapter, chunkSize int64) *Engine {
	return &Engine{catalog: cat, storage: storageAdapter, chunkSize: chunkSize}
}

// Initialize validates inputs, creates an empty physical file, and persists
// file metadata with complete=false.
func (e *Engine) Initialize(owner, name string, size int64, contentType, directoryID string) (*catalog.FileMetadata, error) {
	if size <= 0 {
		return nil, catalog.NewError(catalog.ErrInvalidArgument, "file size must be positive")
	}

	name = catalog.SanitizeName(name)

	var parentPath string
	if directoryID != "" {
		dir, err := e.catalog.Dirs.Get(directoryID, owner)
		if err != nil {
			return nil, err
		}
		parentPath = dir.Path
	} else {
		parentPath = e.storage.UserRoot(owner)
	}

	fileID := uuid.NewString()
	physicalPath := filepath.Join(parentPath, fmt.Sprintf("%s_%s", fileID, name))

	if err := e.storage.CreateEmptyFile(physicalPath); err != nil {
		return nil, catalog.NewError(catalog.ErrStorage, err.Error())
	}

	totalChunks := int32((size + e.chunkSize - 1) / e.chunkSize)

	f := &catalog.FileMetadata{
		ID:          fileID,
		OwnerID:     owner,
		Name:        name,
		Size:        size,
		ContentType: contentType,
		DirectoryID: directoryID,
		Path:        physicalPath,
		TotalChunks: totalChunks,
	}
	if err := e.catalog.Files.Create(f); err != nil {
		_ = e.storage.DeleteFile(physicalPath)
		return nil, err
	}
	return f, nil
}

// AppendChunk enforces strict in-order delivery: index must equal the
// file's current chunks_received, otherwise OutOfOrderChunk is returned and
// state is left unchanged. A short last
// chunk (len(data) < ChunkSize at index == total_chunks-1) is accepted
// without requiring isLast.
func (e *Engine) AppendChunk(fileID, owner string, index int32, isLast bool, data []byte) error {
	f, err := e.catalog.Files.Get(fileID, owner)
	if err != nil {
		return err
	}
	if index != f.ChunksReceived {
		return catalog.NewError(catalog.ErrOutOfOrderChunk,
			fmt.Sprintf("expected chunk index %d, got %d", f.ChunksReceived, index))
	}

	offset := int64(index) * e.chunkSize
	if err := e.storage.WriteChunk(f.Path, offset, data); err != nil {
		return catalog.NewError(catalog.ErrStorage, err.Error())
	}

	_, err = e.catalog.Files.UpdateOwned(fileID, owner, func(working *catalog.FileMetadata) error {
		if index != working.ChunksReceived {
			return catalog.NewError(catalog.ErrOutOfOrderChunk,
				fmt.Sprintf("expected chunk index %d, got %d", working.ChunksReceived, index))
		}
		working.ChunksReceived++
		if working.ChunksReceived == working.TotalChunks {
			working.Complete = true
		}
		if isLast {
			working.Complete = true
		}
		return nil
	})
	return err
}

// Finalize requires chunks_received >= total_chunks, marks the file
// complete, and logs (without failing) a declared-vs-actual size mismatch.
func (e *Engine) Finalize(fileID, owner string) error {
	f, err := e.catalog.Files.Get(fileID, owner)
	if err != nil {
		return err
	}
	if f.ChunksReceived < f.TotalChunks {
		return catalog.NewError(catalog.ErrInvalidArgument, "not all chunks have been received")
	}

	actualSize, err := e.storage.Size(f.Path)
	if err != nil {
		return catalog.NewError(catalog.ErrStorage, err.Error())
	}
	if actualSize != f.Size {
		logger.Warn("uploaded file size mismatch", "file_id", fileID, "declared", f.Size, "on_disk", actualSize)
	}

	_, err = e.catalog.Files.UpdateOwned(fileID, owner, func(working *catalog.FileMetadata) error {
		working.Complete = true
		return nil
	})
	return err
}
