// Package download implements the chunked download engine.
package download

import (
	"github.com/sxlmons/cloudvault/internal/bufpool"
	"github.com/sxlmons/cloudvault/internal/catalog"
	"github.com/sxlmons/cloudvault/internal/storage"
)

// Engine is the download engine, sharing the catalog, storage adapter, and
// chunk size with the upload engine.
type Engine struct {
	catalog   *catalog.Catalog
	storage   *storage.Adapter
	chunkSize int64
	pool      *bufpool.Pool
}

// New constructs a download Engine.
func New(cat *catalog.Catalog, storageAdapter *storage.Adapter, chunkSize int64) *Engine {
	return &Engine{
		catalog:   cat,
		storage:   storageAdapter,
		chunkSize: chunkSize,
		pool:      bufpool.NewPool(int(chunkSize)),
	}
}

// Initialize verifies ownership and completeness, returning the file
// metadata and total chunk count.
func (e *Engine) Initialize(fileID, owner string) (*catalog.FileMetadata, error) {
	f, err := e.catalog.Files.Get(fileID, owner)
	if err != nil {
		return nil, err
	}
	if !f.Complete {
		return nil, catalog.NewError(catalog.ErrInvalidArgument, "file is not fully uploaded")
	}
	return f, nil
}

// GetChunk reads chunk index of fileID into an exact-size buffer, reporting
// whether it is the last chunk.
func (e *Engine) GetChunk(fileID, owner string, index int32) ([]byte, bool, error) {
	f, err := e.catalog.Files.Get(fileID, owner)
	if err != nil {
		return nil, false, err
	}
	if !f.Complete {
		return nil, false, catalog.NewError(catalog.ErrInvalidArgument, "file is not fully uploaded")
	}

	offset := int64(index) * e.chunkSize
	if offset >= f.Size {
		return nil, false, catalog.NewError(catalog.ErrInvalidArgument, "chunk index out of range")
	}

	length := e.chunkSize
	if remaining := f.Size - offset; remaining < length {
		length = remaining
	}

	pooled := e.pool.Get(int(e.chunkSize))
	defer e.pool.Put(pooled)

	n, err := e.storage.ReadChunk(f.Path, offset, int(length), pooled)
	if err != nil {
		return nil, false, catalog.NewError(catalog.ErrStorage, err.Error())
	}

	out := make([]byte, n)
	copy(out, pooled[:n])

	isLast := index == f.TotalChunks-1
	return out, isLast, nil
}

// Complete is an acknowledgment-only step.
func (e *Engine) Complete(fileID, owner string) error {
	_, err := e.catalog.Files.Get(fileID, owner)
	return err
}
