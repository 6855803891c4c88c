package catalog

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DirectoryStore is the directory metadata catalog. As with
// FileStore, a single write lock serializes mutations and persistence is a
// copy-on-write JSON snapshot.
type DirectoryStore struct {
	mu       sync.Mutex
	dirs     map[string]*DirectoryMetadata
	snapshot string
}

// NewDirectoryStore loads (or initializes) the directory catalog backed by
// <metadataDir>/directories.json.
func NewDirectoryStore(metadataDir string) (*DirectoryStore, error) {
	s := &DirectoryStore{
		dirs:     make(map[string]*DirectoryMetadata),
		snapshot: metadataDir + "/directories.json",
	}
	var records []*DirectoryMetadata
	if err := loadSnapshot(s.snapshot, &records); err != nil {
		return nil, err
	}
	for _, r := range records {
		s.dirs[r.ID] = r
	}
	return s, nil
}

func (s *DirectoryStore) persistLocked() error {
	records := make([]*DirectoryMetadata, 0, len(s.dirs))
	for _, d := range s.dirs {
		records = append(records, d)
	}
	return saveSnapshot(s.snapshot, records)
}

// Get returns a copy of the directory record, owned by owner.
func (s *DirectoryStore) Get(id, owner string) (*DirectoryMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dirs[id]
	if !ok || d.OwnerID != owner {
		return nil, NewError(ErrNotFound, "directory not found")
	}
	return d.Clone(), nil
}

// ExistsWithName reports whether owner already has a directory named name
// (case-insensitive) under parentID.
func (s *DirectoryStore) ExistsWithName(name, parentID, owner string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.existsWithNameLocked(name, parentID, owner, "")
}

// ExistsWithNameExcluding is ExistsWithName but ignores excludeID, for
// rename's self-collision check.
func (s *DirectoryStore) ExistsWithNameExcluding(name, parentID, owner, excludeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.existsWithNameLocked(name, parentID, owner, excludeID)
}

func (s *DirectoryStore) existsWithNameLocked(name, parentID, owner, excludeID string) bool {
	lower := toLower(name)
	for _, d := range s.dirs {
		if d.ID == excludeID {
			continue
		}
		if d.OwnerID == owner && d.ParentID == parentID && toLower(d.Name) == lower {
			return true
		}
	}
	return false
}

// children returns copies of every directory directly under parentID for owner.
func (s *DirectoryStore) children(parentID, owner string) []*DirectoryMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*DirectoryMetadata
	for _, d := range s.dirs {
		if d.OwnerID == owner && d.ParentID == parentID {
			out = append(out, d.Clone())
		}
	}
	return out
}

// ListChildren returns copies of every directory directly under parentID
// for owner.
func (s *DirectoryStore) ListChildren(parentID, owner string) []*DirectoryMetadata {
	return s.children(parentID, owner)
}

func (s *DirectoryStore) insert(d *DirectoryMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	s.dirs[d.ID] = d.Clone()
	if err := s.persistLocked(); err != nil {
		delete(s.dirs, d.ID)
		return NewError(ErrStorage, err.Error())
	}
	return nil
}

// updateMany replaces several records atomically under one write lock and
// one snapshot write, used by rename path propagation.
func (s *DirectoryStore) updateMany(updated []*DirectoryMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := make(map[string]*DirectoryMetadata, len(updated))
	for _, d := range updated {
		previous[d.ID] = s.dirs[d.ID]
	}

	for _, d := range updated {
		d.UpdatedAt = time.Now()
		s.dirs[d.ID] = d.Clone()
	}
	if err := s.persistLocked(); err != nil {
		for id, old := range previous {
			s.dirs[id] = old
		}
		return NewError(ErrStorage, err.Error())
	}
	return nil
}

func (s *DirectoryStore) remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.dirs[id]
	if !ok {
		return nil
	}
	delete(s.dirs, id)
	if err := s.persistLocked(); err != nil {
		s.dirs[id] = old
		return NewError(ErrStorage, err.Error())
	}
	return nil
}

// descendants returns, breadth-first, every directory transitively under
// rootID (inclusive of rootID), never following parent pointers from
// children.
func (s *DirectoryStore) descendants(rootID, owner string) []*DirectoryMetadata {
	s.mu.Lock()
	byParent := make(map[string][]*DirectoryMetadata)
	all := make(map[string]*DirectoryMetadata, len(s.dirs))
	for _, d := range s.dirs {
		if d.OwnerID != owner {
			continue
		}
		byParent[d.ParentID] = append(byParent[d.ParentID], d.Clone())
		all[d.ID] = d.Clone()
	}
	s.mu.Unlock()

	root, ok := all[rootID]
	if !ok {
		return nil
	}

	result := []*DirectoryMetadata{root}
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range byParent[id] {
			result = append(result, child)
			queue = append(queue, child.ID)
		}
	}
	return result
}
