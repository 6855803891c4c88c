package handlers

import "github.com/sxlmons/cloudvault/internal/catalog"

func toFileInfos(files []*catalog.FileMetadata) []fileInfo {
	out := make([]fileInfo, 0, len(files))
	for _, f := range files {
		out = append(out, fileInfo{
			FileId:      f.ID,
			FileName:    f.Name,
			FileSize:    f.Size,
			ContentType: f.ContentType,
			DirectoryId: f.DirectoryID,
			IsComplete:  f.Complete,
		})
	}
	return out
}

func toDirectoryInfos(dirs []*catalog.DirectoryMetadata) []directoryInfo {
	out := make([]directoryInfo, 0, len(dirs))
	for _, dir := range dirs {
		out = append(out, directoryInfo{
			DirectoryId:       dir.ID,
			DirectoryName:     dir.Name,
			ParentDirectoryId: dir.ParentID,
		})
	}
	return out
}
