package handlers

import (
	"context"

	"github.com/sxlmons/cloudvault/internal/protocol"
	"github.com/sxlmons/cloudvault/internal/session"
)

// DirectoryCreate creates a new directory under the ParentDirectoryId
// metadata field (empty => root).
func (d *Deps) DirectoryCreate(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	var body directoryCreateRequestBody
	if err := decodeJSON(p.Payload, &body); err != nil {
		return nil, err
	}
	parentID := metaString(p, "ParentDirectoryId")

	dir, err := d.Catalog.CreateDirectory(s.UserID(), body.DirectoryName, parentID)
	if err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}

	return domainResponse(p, directoryCreateResponseBody{Success: true, DirectoryId: dir.ID}, map[string]string{"DirectoryId": dir.ID})
}

// DirectoryList lists the subdirectories directly under the
// ParentDirectoryId metadata field (empty => root).
func (d *Deps) DirectoryList(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	parentID := metaString(p, "ParentDirectoryId")
	dirs := d.Catalog.Dirs.ListChildren(parentID, s.UserID())
	return domainResponse(p, directoryListResponseBody{Success: true, Directories: toDirectoryInfos(dirs)}, nil)
}

// DirectoryRename renames the directory named by the DirectoryId metadata
// field, rewriting every descendant's stored path.
func (d *Deps) DirectoryRename(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	var body directoryRenameRequestBody
	if err := decodeJSON(p.Payload, &body); err != nil {
		return nil, err
	}
	directoryID := metaString(p, "DirectoryId")

	if err := d.Catalog.RenameDirectory(directoryID, body.DirectoryName, s.UserID()); err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}
	return domainResponse(p, statusBody{Success: true}, nil)
}

// DirectoryDelete deletes the directory named by the DirectoryId metadata
// field, recursively if Recursive is true.
func (d *Deps) DirectoryDelete(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	directoryID := metaString(p, "DirectoryId")
	recursive := metaBool(p, "Recursive")

	if err := d.Catalog.DeleteDirectory(directoryID, s.UserID(), recursive); err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}
	return domainResponse(p, statusBody{Success: true}, nil)
}

// DirectoryContents lists both the subdirectories and files directly under
// the DirectoryId metadata field (empty => root), per §8 scenarios 3 and 6.
func (d *Deps) DirectoryContents(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	directoryID := metaString(p, "DirectoryId")
	dirs, files := d.Catalog.ListChildren(directoryID, s.UserID())
	return domainResponse(p, directoryContentsResponseBody{
		Success:     true,
		Directories: toDirectoryInfos(dirs),
		Files:       toFileInfos(files),
	}, nil)
}
