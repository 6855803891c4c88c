package client

import (
	"encoding/json"
	"strconv"

	"github.com/sxlmons/cloudvault/internal/protocol"
)

// FileInfo describes one file as reported by FileList/DirectoryContents.
type FileInfo struct {
	FileId      string
	FileName    string
	FileSize    int64
	ContentType string
	DirectoryId string
	IsComplete  bool
}

// FileList lists the files directly under directoryID (empty => root).
func (c *Client) FileList(directoryID string) ([]FileInfo, error) {
	resp, err := c.request(protocol.CmdFileListRequest, map[string]string{"DirectoryId": directoryID}, nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Files []FileInfo
	}
	if err := statusResult(protocol.CmdFileListRequest, resp, &result); err != nil {
		return nil, err
	}
	return result.Files, nil
}

// UploadInit begins a chunked upload, returning the new file id and the
// number of chunks the caller must send.
func (c *Client) UploadInit(name string, size int64, contentType, directoryID string) (fileID string, totalChunks int32, err error) {
	resp, err := c.request(protocol.CmdUploadInitRequest,
		map[string]string{"DirectoryId": directoryID},
		map[string]any{"FileName": name, "FileSize": size, "ContentType": contentType})
	if err != nil {
		return "", 0, err
	}
	var result struct {
		TotalChunks int32
	}
	if err := statusResult(protocol.CmdUploadInitRequest, resp, &result); err != nil {
		return "", 0, err
	}
	return resp.Metadata["FileId"], result.TotalChunks, nil
}

// UploadChunk sends one chunk of raw bytes for fileID at index. isLast may be false for a short final chunk; the server also
// accepts a short chunk at the last index without it.
func (c *Client) UploadChunk(fileID string, index int32, isLast bool, data []byte) error {
	req := protocol.NewPacket(protocol.CmdUploadChunkRequest, c.userID, map[string]string{
		"FileId":      fileID,
		"ChunkIndex":  strconv.Itoa(int(index)),
		"IsLastChunk": strconv.FormatBool(isLast),
	}, data)
	resp, err := c.call(req)
	if err != nil {
		return err
	}
	return statusResult(protocol.CmdUploadChunkRequest, resp, nil)
}

// UploadComplete finalizes an upload after every chunk has been sent (spec
// §4.7 step 3).
func (c *Client) UploadComplete(fileID string) error {
	resp, err := c.request(protocol.CmdUploadCompleteRequest, map[string]string{"FileId": fileID}, nil)
	if err != nil {
		return err
	}
	return statusResult(protocol.CmdUploadCompleteRequest, resp, nil)
}

// DownloadInfo describes a file's download metadata.
type DownloadInfo struct {
	FileName    string
	FileSize    int64
	ContentType string
	TotalChunks int32
}

// DownloadInit verifies the file is complete and reports its size/chunk count.
func (c *Client) DownloadInit(fileID string) (DownloadInfo, error) {
	resp, err := c.request(protocol.CmdDownloadInitRequest, map[string]string{"FileId": fileID}, nil)
	if err != nil {
		return DownloadInfo{}, err
	}
	var info DownloadInfo
	if err := statusResult(protocol.CmdDownloadInitRequest, resp, &info); err != nil {
		return DownloadInfo{}, err
	}
	return info, nil
}

// DownloadChunk reads one chunk of fileID, reporting whether it is the
// last chunk.
func (c *Client) DownloadChunk(fileID string, index int32) (data []byte, isLast bool, err error) {
	req := protocol.NewPacket(protocol.CmdDownloadChunkRequest, c.userID, map[string]string{
		"FileId": fileID, "ChunkIndex": strconv.Itoa(int(index)),
	}, nil)
	resp, err := c.call(req)
	if err != nil {
		return nil, false, err
	}
	// A successful chunk response always carries IsLastChunk in metadata; a
	// domain failure falls back to a JSON {Success,Message} body instead of
	// raw chunk bytes.
	if lastStr, ok := resp.Metadata["IsLastChunk"]; ok {
		last, _ := strconv.ParseBool(lastStr)
		return resp.Payload, last, nil
	}
	var envelope struct{ Message string }
	_ = json.Unmarshal(resp.Payload, &envelope)
	return nil, false, &APIError{Command: protocol.CmdDownloadChunkRequest, Message: envelope.Message}
}

// DownloadComplete acknowledges the end of a download.
func (c *Client) DownloadComplete(fileID string) error {
	resp, err := c.request(protocol.CmdDownloadCompleteRequest, map[string]string{"FileId": fileID}, nil)
	if err != nil {
		return err
	}
	return statusResult(protocol.CmdDownloadCompleteRequest, resp, nil)
}

// FileDelete removes a file's bytes and metadata record.
func (c *Client) FileDelete(fileID string) error {
	resp, err := c.request(protocol.CmdFileDeleteRequest, map[string]string{"FileId": fileID}, nil)
	if err != nil {
		return err
	}
	return statusResult(protocol.CmdFileDeleteRequest, resp, nil)
}

// FileMove relocates fileIDs into targetDirID (empty => root).
func (c *Client) FileMove(fileIDs []string, targetDirID string) error {
	resp, err := c.request(protocol.CmdFileMoveRequest,
		map[string]string{"DirectoryId": targetDirID},
		map[string]any{"FileIds": fileIDs})
	if err != nil {
		return err
	}
	return statusResult(protocol.CmdFileMoveRequest, resp, nil)
}
