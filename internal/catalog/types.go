package catalog

import "time"

// DirectoryMetadata describes one directory record.
type DirectoryMetadata struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parent_id"` // empty => root
	Path      string    `json:"path"`      // physical path on disk
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy, so callers never mutate catalog-owned state.
func (d *DirectoryMetadata) Clone() *DirectoryMetadata {
	c := *d
	return &c
}

// FileMetadata describes one file record.
type FileMetadata struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Name            string    `json:"name"`
	Size            int64     `json:"size"`
	ContentType     string    `json:"content_type"`
	DirectoryID     string    `json:"directory_id"` // empty => root
	Path            string    `json:"path"`          // physical path on disk
	ChunksReceived  int32     `json:"chunks_received"`
	TotalChunks     int32     `json:"total_chunks"`
	Complete        bool      `json:"complete"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Clone returns a deep copy, so callers never mutate catalog-owned state.
func (f *FileMetadata) Clone() *FileMetadata {
	c := *f
	return &c
}
