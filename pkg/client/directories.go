package client

import "github.com/sxlmons/cloudvault/internal/protocol"

// DirectoryInfo describes one directory as reported by DirectoryList/
// DirectoryContents.
type DirectoryInfo struct {
	DirectoryId       string
	DirectoryName     string
	ParentDirectoryId string
}

// DirectoryCreate creates a new directory under parentID (empty => root),
// returning its id.
func (c *Client) DirectoryCreate(name, parentID string) (directoryID string, err error) {
	resp, err := c.request(protocol.CmdDirectoryCreateRequest,
		map[string]string{"ParentDirectoryId": parentID},
		map[string]string{"DirectoryName": name})
	if err != nil {
		return "", err
	}
	if statusErr := statusResult(protocol.CmdDirectoryCreateRequest, resp, nil); statusErr != nil {
		return "", statusErr
	}
	return resp.Metadata["DirectoryId"], nil
}

// DirectoryList lists the subdirectories directly under parentID.
func (c *Client) DirectoryList(parentID string) ([]DirectoryInfo, error) {
	resp, err := c.request(protocol.CmdDirectoryListRequest,
		map[string]string{"ParentDirectoryId": parentID}, nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Directories []DirectoryInfo
	}
	if err := statusResult(protocol.CmdDirectoryListRequest, resp, &result); err != nil {
		return nil, err
	}
	return result.Directories, nil
}

// DirectoryRename renames directoryID, rewriting every descendant's stored
// path.
func (c *Client) DirectoryRename(directoryID, newName string) error {
	resp, err := c.request(protocol.CmdDirectoryRenameRequest,
		map[string]string{"DirectoryId": directoryID},
		map[string]string{"DirectoryName": newName})
	if err != nil {
		return err
	}
	return statusResult(protocol.CmdDirectoryRenameRequest, resp, nil)
}

// DirectoryDelete deletes directoryID, recursively if recursive is true.
func (c *Client) DirectoryDelete(directoryID string, recursive bool) error {
	resp, err := c.request(protocol.CmdDirectoryDeleteRequest,
		map[string]string{"DirectoryId": directoryID, "Recursive": boolString(recursive)}, nil)
	if err != nil {
		return err
	}
	return statusResult(protocol.CmdDirectoryDeleteRequest, resp, nil)
}

// DirectoryContentsResult is the combined directory+file listing returned
// by DirectoryContents.
type DirectoryContentsResult struct {
	Directories []DirectoryInfo
	Files       []FileInfo
}

// DirectoryContents lists both the subdirectories and files directly under
// directoryID (empty => root).
func (c *Client) DirectoryContents(directoryID string) (DirectoryContentsResult, error) {
	resp, err := c.request(protocol.CmdDirectoryContentsRequest,
		map[string]string{"DirectoryId": directoryID}, nil)
	if err != nil {
		return DirectoryContentsResult{}, err
	}
	var result DirectoryContentsResult
	if err := statusResult(protocol.CmdDirectoryContentsRequest, resp, &result); err != nil {
		return DirectoryContentsResult{}, err
	}
	return result, nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
