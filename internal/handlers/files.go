package handlers

import (
	"context"
	"strconv"

	"github.com/sxlmons/cloudvault/internal/protocol"
	"github.com/sxlmons/cloudvault/internal/session"
)

// FileList lists the files owned by the session's user directly under the
// DirectoryId carried in metadata (empty => root).
func (d *Deps) FileList(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	directoryID := metaString(p, "DirectoryId")
	files := d.Catalog.Files.ListByDirectory(directoryID, s.UserID())
	return domainResponse(p, fileListResponseBody{Success: true, Files: toFileInfos(files)}, nil)
}

// UploadInit begins a chunked upload.
func (d *Deps) UploadInit(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	var body uploadInitRequestBody
	if err := decodeJSON(p.Payload, &body); err != nil {
		return nil, err
	}
	directoryID := metaString(p, "DirectoryId")

	f, err := d.Upload.Initialize(s.UserID(), body.FileName, body.FileSize, body.ContentType, directoryID)
	if err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}

	return domainResponse(p, uploadInitResponseBody{Success: true, TotalChunks: f.TotalChunks},
		map[string]string{"FileId": f.ID})
}

// UploadChunk appends one chunk of raw payload bytes to an in-progress
// upload, enforcing strict in-order delivery.
func (d *Deps) UploadChunk(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	fileID := metaString(p, "FileId")
	index, err := metaInt32(p, "ChunkIndex")
	if err != nil {
		return nil, err
	}
	isLast := metaBool(p, "IsLastChunk")

	if err := d.Upload.AppendChunk(fileID, s.UserID(), index, isLast, p.Payload); err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}
	return domainResponse(p, statusBody{Success: true}, nil)
}

// UploadComplete finalizes an upload once every chunk has arrived (spec
// §4.7 step 3).
func (d *Deps) UploadComplete(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	fileID := metaString(p, "FileId")
	if err := d.Upload.Finalize(fileID, s.UserID()); err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}
	return domainResponse(p, statusBody{Success: true}, nil)
}

// DownloadInit verifies ownership/completeness and reports the file's size
// and chunk count.
func (d *Deps) DownloadInit(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	fileID := metaString(p, "FileId")
	f, err := d.Download.Initialize(fileID, s.UserID())
	if err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}
	return domainResponse(p, downloadInitResponseBody{
		Success:     true,
		FileName:    f.Name,
		FileSize:    f.Size,
		ContentType: f.ContentType,
		TotalChunks: f.TotalChunks,
	}, nil)
}

// DownloadChunk reads one chunk of a downloaded file into the response's
// raw payload, reporting IsLastChunk in metadata.
// A domain failure (not found, not yet complete, out of range) falls back
// to a JSON status body instead of chunk bytes.
func (d *Deps) DownloadChunk(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	fileID := metaString(p, "FileId")
	index, err := metaInt32(p, "ChunkIndex")
	if err != nil {
		return nil, err
	}

	data, isLast, err := d.Download.GetChunk(fileID, s.UserID(), index)
	if err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}

	resp := protocol.NewResponse(p, data)
	resp.Metadata["IsLastChunk"] = strconv.FormatBool(isLast)
	resp.Metadata["ChunkIndex"] = strconv.Itoa(int(index))
	return resp, nil
}

// DownloadComplete acknowledges the end of a download.
func (d *Deps) DownloadComplete(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	fileID := metaString(p, "FileId")
	if err := d.Download.Complete(fileID, s.UserID()); err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}
	return domainResponse(p, statusBody{Success: true}, nil)
}

// FileDelete removes a file's bytes and metadata record.
func (d *Deps) FileDelete(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	fileID := metaString(p, "FileId")
	if err := d.Catalog.DeleteFile(fileID, s.UserID()); err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}
	return domainResponse(p, statusBody{Success: true}, nil)
}

// FileMove relocates a batch of files into the directory named by the
// DirectoryId metadata field (empty => root).
func (d *Deps) FileMove(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	var body fileMoveRequestBody
	if err := decodeJSON(p.Payload, &body); err != nil {
		return nil, err
	}
	targetDirID := metaString(p, "DirectoryId")

	if err := d.Catalog.MoveFiles(body.FileIds, targetDirID, s.UserID()); err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}
	return domainResponse(p, statusBody{Success: true}, nil)
}
