// Package handlers implements the concrete command.Handler for every
// request code, wiring the session/catalog/upload/download/userstore
// collaborators together.
package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/sxlmons/cloudvault/internal/catalog"
	"github.com/sxlmons/cloudvault/internal/command"
	"github.com/sxlmons/cloudvault/internal/download"
	"github.com/sxlmons/cloudvault/internal/protocol"
	"github.com/sxlmons/cloudvault/internal/upload"
	"github.com/sxlmons/cloudvault/internal/userstore"
)

// Deps bundles the collaborators every handler is built from. A single Deps
// value is shared by every registered handler.
type Deps struct {
	Users    userstore.Store
	Catalog  *catalog.Catalog
	Upload   *upload.Engine
	Download *download.Engine
}

// Register builds every handler in this package and registers it against r.
func Register(r *command.Registry, d *Deps) {
	r.Register(protocol.CmdLoginRequest, command.HandlerFunc(d.Login))
	r.Register(protocol.CmdLogoutRequest, command.HandlerFunc(d.Logout))
	r.Register(protocol.CmdCreateAccountRequest, command.HandlerFunc(d.CreateAccount))

	r.Register(protocol.CmdFileListRequest, command.HandlerFunc(d.FileList))
	r.Register(protocol.CmdUploadInitRequest, command.HandlerFunc(d.UploadInit))
	r.Register(protocol.CmdUploadChunkRequest, command.HandlerFunc(d.UploadChunk))
	r.Register(protocol.CmdUploadCompleteRequest, command.HandlerFunc(d.UploadComplete))
	r.Register(protocol.CmdDownloadInitRequest, command.HandlerFunc(d.DownloadInit))
	r.Register(protocol.CmdDownloadChunkRequest, command.HandlerFunc(d.DownloadChunk))
	r.Register(protocol.CmdDownloadCompleteRequest, command.HandlerFunc(d.DownloadComplete))
	r.Register(protocol.CmdFileDeleteRequest, command.HandlerFunc(d.FileDelete))
	r.Register(protocol.CmdFileMoveRequest, command.HandlerFunc(d.FileMove))

	r.Register(protocol.CmdDirectoryCreateRequest, command.HandlerFunc(d.DirectoryCreate))
	r.Register(protocol.CmdDirectoryListRequest, command.HandlerFunc(d.DirectoryList))
	r.Register(protocol.CmdDirectoryRenameRequest, command.HandlerFunc(d.DirectoryRename))
	r.Register(protocol.CmdDirectoryDeleteRequest, command.HandlerFunc(d.DirectoryDelete))
	r.Register(protocol.CmdDirectoryContentsRequest, command.HandlerFunc(d.DirectoryContents))
}

// domainResponse marshals body as the JSON payload of a req+1 response,
// optionally merging extra key/value pairs into the packet's metadata.
func domainResponse(req *protocol.Packet, body any, metadata map[string]string) (*protocol.Packet, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp := protocol.NewResponse(req, payload)
	for k, v := range metadata {
		resp.Metadata[k] = v
	}
	return resp, nil
}

// failureResponse builds a req+1 response whose body reports Success:false
// and the domain error's message. Unexpected failures are not passed here;
// the caller should propagate those for the session loop to convert to a
// generic ERROR response.
func failureResponse(req *protocol.Packet, err error) (*protocol.Packet, error) {
	return domainResponse(req, statusBody{Success: false, Message: err.Error()}, nil)
}

// statusBody is the minimal {Success, Message} shape shared by every
// response that doesn't carry richer data.
type statusBody struct {
	Success bool   `json:"Success"`
	Message string `json:"Message,omitempty"`
}

func decodeJSON(payload []byte, v any) error {
	if len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, v)
}

func metaString(p *protocol.Packet, key string) string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata[key]
}

func metaInt32(p *protocol.Packet, key string) (int32, error) {
	v, err := strconv.ParseInt(metaString(p, key), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func metaBool(p *protocol.Packet, key string) bool {
	b, _ := strconv.ParseBool(metaString(p, key))
	return b
}

// isDomainError reports whether err is a structured catalog/userstore error
// that should be surfaced to the client as Success:false rather than
// propagated to the session loop's generic ERROR path.
func isDomainError(err error) bool {
	if _, ok := err.(*catalog.Error); ok {
		return true
	}
	switch err {
	case userstore.ErrUsernameTaken, userstore.ErrInvalidCredentials:
		return true
	}
	return false
}
