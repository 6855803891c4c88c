package handlers

// JSON payload bodies, using the PascalCase field names of the wire contract.

type loginRequestBody struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

type loginResponseBody struct {
	Success bool   `json:"Success"`
	Message string `json:"Message,omitempty"`
	UserId  string `json:"UserId,omitempty"`
}

type createAccountRequestBody struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
	Email    string `json:"Email"`
}

type createAccountResponseBody struct {
	Success bool   `json:"Success"`
	Message string `json:"Message,omitempty"`
	UserId  string `json:"UserId,omitempty"`
}

type fileInfo struct {
	FileId      string `json:"FileId"`
	FileName    string `json:"FileName"`
	FileSize    int64  `json:"FileSize"`
	ContentType string `json:"ContentType"`
	DirectoryId string `json:"DirectoryId"`
	IsComplete  bool   `json:"IsComplete"`
}

type directoryInfo struct {
	DirectoryId       string `json:"DirectoryId"`
	DirectoryName     string `json:"DirectoryName"`
	ParentDirectoryId string `json:"ParentDirectoryId"`
}

type fileListResponseBody struct {
	Success bool       `json:"Success"`
	Message string     `json:"Message,omitempty"`
	Files   []fileInfo `json:"Files"`
}

type uploadInitRequestBody struct {
	FileName    string `json:"FileName"`
	FileSize    int64  `json:"FileSize"`
	ContentType string `json:"ContentType"`
}

type uploadInitResponseBody struct {
	Success     bool   `json:"Success"`
	Message     string `json:"Message,omitempty"`
	TotalChunks int32  `json:"TotalChunks,omitempty"`
}

type downloadInitResponseBody struct {
	Success     bool   `json:"Success"`
	Message     string `json:"Message,omitempty"`
	FileName    string `json:"FileName,omitempty"`
	FileSize    int64  `json:"FileSize,omitempty"`
	ContentType string `json:"ContentType,omitempty"`
	TotalChunks int32  `json:"TotalChunks,omitempty"`
}

type directoryCreateRequestBody struct {
	DirectoryName string `json:"DirectoryName"`
}

type directoryCreateResponseBody struct {
	Success     bool   `json:"Success"`
	Message     string `json:"Message,omitempty"`
	DirectoryId string `json:"DirectoryId,omitempty"`
}

type directoryRenameRequestBody struct {
	DirectoryName string `json:"DirectoryName"`
}

type directoryListResponseBody struct {
	Success     bool            `json:"Success"`
	Message     string          `json:"Message,omitempty"`
	Directories []directoryInfo `json:"Directories"`
}

type directoryContentsResponseBody struct {
	Success     bool            `json:"Success"`
	Message     string          `json:"Message,omitempty"`
	Directories []directoryInfo `json:"Directories"`
	Files       []fileInfo      `json:"Files"`
}

type fileMoveRequestBody struct {
	FileIds []string `json:"FileIds"`
}
