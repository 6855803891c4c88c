package protocol

// Command is a protocol command code.
type Command int32

// Command codes grouped by range: authentication 100-111, file operations
// 200-231, directory operations 240-251, status 300-301.
const (
	CmdLoginRequest  Command = 100
	CmdLoginResponse Command = 101

	CmdLogoutRequest  Command = 102
	CmdLogoutResponse Command = 103

	CmdCreateAccountRequest  Command = 110
	CmdCreateAccountResponse Command = 111

	CmdFileListRequest  Command = 200
	CmdFileListResponse Command = 201

	CmdUploadInitRequest  Command = 210
	CmdUploadInitResponse Command = 211

	CmdUploadChunkRequest  Command = 212
	CmdUploadChunkResponse Command = 213

	CmdUploadCompleteRequest  Command = 214
	CmdUploadCompleteResponse Command = 215

	CmdDownloadInitRequest  Command = 220
	CmdDownloadInitResponse Command = 221

	CmdDownloadChunkRequest  Command = 222
	CmdDownloadChunkResponse Command = 223

	CmdDownloadCompleteRequest  Command = 224
	CmdDownloadCompleteResponse Command = 225

	CmdFileDeleteRequest  Command = 230
	CmdFileDeleteResponse Command = 231

	CmdDirectoryCreateRequest  Command = 240
	CmdDirectoryCreateResponse Command = 241

	CmdDirectoryListRequest  Command = 242
	CmdDirectoryListResponse Command = 243

	CmdDirectoryRenameRequest  Command = 244
	CmdDirectoryRenameResponse Command = 245

	CmdDirectoryDeleteRequest  Command = 246
	CmdDirectoryDeleteResponse Command = 247

	CmdFileMoveRequest  Command = 248
	CmdFileMoveResponse Command = 249

	CmdDirectoryContentsRequest  Command = 250
	CmdDirectoryContentsResponse Command = 251

	CmdSuccess Command = 300
	CmdError   Command = 301
)

// requestCodes lists every command code that has a response, per §4.3's
// response = request + 1 rule. ResponseCommandCode consults it to reject
// unknown request codes.
var requestCodes = []Command{
	CmdLoginRequest,
	CmdLogoutRequest,
	CmdCreateAccountRequest,
	CmdFileListRequest,
	CmdUploadInitRequest,
	CmdUploadChunkRequest,
	CmdUploadCompleteRequest,
	CmdDownloadInitRequest,
	CmdDownloadChunkRequest,
	CmdDownloadCompleteRequest,
	CmdFileDeleteRequest,
	CmdDirectoryCreateRequest,
	CmdDirectoryListRequest,
	CmdDirectoryRenameRequest,
	CmdDirectoryDeleteRequest,
	CmdFileMoveRequest,
	CmdDirectoryContentsRequest,
}

// ResponseCommandCode returns the response code for a request code, per the
// rule response = request + 1. Panics if req is not a known request code,
// since a mismatch here is a programming error.
func ResponseCommandCode(req Command) Command {
	for _, c := range requestCodes {
		if c == req {
			return req + 1
		}
	}
	panic("protocol: no response code registered for request code")
}

// IsAuthCommand reports whether cmd is part of the pre-authentication
// handshake (login or account creation).
func IsAuthCommand(cmd Command) bool {
	return cmd == CmdLoginRequest || cmd == CmdCreateAccountRequest
}
