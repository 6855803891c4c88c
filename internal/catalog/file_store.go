package catalog

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileStore is the file metadata catalog. A single write
// lock serializes all mutations; persistence is a copy-on-write JSON
// snapshot written on every mutating call.
type FileStore struct {
	mu       sync.Mutex
	files    map[string]*FileMetadata
	snapshot string // path to files.json
}

// NewFileStore loads (or initializes) the file catalog backed by
// <metadataDir>/files.json.
func NewFileStore(metadataDir string) (*FileStore, error) {
	s := &FileStore{
		files:    make(map[string]*FileMetadata),
		snapshot: metadataDir + "/files.json",
	}
	var records []*FileMetadata
	if err := loadSnapshot(s.snapshot, &records); err != nil {
		return nil, err
	}
	for _, r := range records {
		s.files[r.ID] = r
	}
	return s, nil
}

func (s *FileStore) persistLocked() error {
	records := make([]*FileMetadata, 0, len(s.files))
	for _, f := range s.files {
		records = append(records, f)
	}
	return saveSnapshot(s.snapshot, records)
}

// Create inserts a new file record and persists the snapshot.
func (s *FileStore) Create(f *FileMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now

	s.files[f.ID] = f.Clone()
	if err := s.persistLocked(); err != nil {
		delete(s.files, f.ID)
		return NewError(ErrStorage, err.Error())
	}
	return nil
}

// Get returns a copy of the file record with the given id, owned by owner.
func (s *FileStore) Get(id, owner string) (*FileMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok || f.OwnerID != owner {
		return nil, NewError(ErrNotFound, "file not found")
	}
	return f.Clone(), nil
}

// GetUnchecked returns a copy of the file record regardless of owner, for
// internal cross-cutting operations (the MoveFiles rollback) that have
// already validated ownership.
func (s *FileStore) GetUnchecked(id string) (*FileMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok {
		return nil, NewError(ErrNotFound, "file not found")
	}
	return f.Clone(), nil
}

// Update applies mutate to the stored record under the write lock and
// persists the result. mutate must not retain the pointer it's given.
func (s *FileStore) Update(id string, mutate func(f *FileMetadata) error) (*FileMetadata, error) {
	return s.update(id, "", false, mutate)
}

// UpdateOwned is Update but also validates the record's owner, atomically
// with the mutation (no separate Get-then-Update race window).
func (s *FileStore) UpdateOwned(id, owner string, mutate func(f *FileMetadata) error) (*FileMetadata, error) {
	return s.update(id, owner, true, mutate)
}

func (s *FileStore) update(id, owner string, checkOwner bool, mutate func(f *FileMetadata) error) (*FileMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok || (checkOwner && f.OwnerID != owner) {
		return nil, NewError(ErrNotFound, "file not found")
	}

	working := f.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = time.Now()

	previous := f
	s.files[id] = working
	if err := s.persistLocked(); err != nil {
		s.files[id] = previous
		return nil, NewError(ErrStorage, err.Error())
	}
	return working.Clone(), nil
}

// Delete removes a file record, owned by owner.
func (s *FileStore) Delete(id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok || f.OwnerID != owner {
		return NewError(ErrNotFound, "file not found")
	}

	delete(s.files, id)
	if err := s.persistLocked(); err != nil {
		s.files[id] = f
		return NewError(ErrStorage, err.Error())
	}
	return nil
}

// deleteUnchecked removes a file record without an ownership check, used by
// recursive directory delete which has already validated the directory owner.
func (s *FileStore) deleteUnchecked(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok {
		return nil
	}
	delete(s.files, id)
	if err := s.persistLocked(); err != nil {
		s.files[id] = f
		return NewError(ErrStorage, err.Error())
	}
	return nil
}

// ListByDirectory returns copies of every file owned by owner under
// directoryID (empty => root).
func (s *FileStore) ListByDirectory(directoryID, owner string) []*FileMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*FileMetadata
	for _, f := range s.files {
		if f.OwnerID == owner && f.DirectoryID == directoryID {
			out = append(out, f.Clone())
		}
	}
	return out
}

// ExistsWithName reports whether owner already has a file named name
// (case-insensitive) inside directoryID.
func (s *FileStore) ExistsWithName(name, directoryID, owner string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := toLower(name)
	for _, f := range s.files {
		if f.OwnerID == owner && f.DirectoryID == directoryID && toLower(f.Name) == lower {
			return true
		}
	}
	return false
}
