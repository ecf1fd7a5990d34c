package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// videoExtensions is the set of file extensions treated as videos during a
// walk.
var videoExtensions = map[string]struct{}{
	".mp4": {},
	".mkv": {},
	".avi": {},
}

// FolderEntry is one immediate subdirectory of the scanned root.
type FolderEntry struct {
	Name       string
	Subfolders []SubfolderEntry
}

// SubfolderEntry is one immediate subdirectory of a folder, holding the video
// files found directly inside it.
type SubfolderEntry struct {
	Name   string
	Videos []VideoEntry
}

type VideoEntry struct {
	Name string
	Path string
}

// Walk scans a root directory exactly two levels deep: immediate
// subdirectories are folders, their immediate subdirectories are subfolders,
// and files with a known video extension inside those are videos.
// Non-directory entries at the folder and subfolder levels are ignored.
// Callers are expected to have verified that root exists.
func Walk(root string) ([]FolderEntry, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	folders := make([]FolderEntry, 0, len(dirEntries))
	for _, folderEntry := range dirEntries {
		if !folderEntry.IsDir() {
			continue
		}
		folder := FolderEntry{Name: folderEntry.Name()}
		folderPath := filepath.Join(root, folderEntry.Name())

		subEntries, err := os.ReadDir(folderPath)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		for _, subEntry := range subEntries {
			if !subEntry.IsDir() {
				continue
			}
			subfolder := SubfolderEntry{Name: subEntry.Name()}
			subfolderPath := filepath.Join(folderPath, subEntry.Name())

			fileEntries, err := os.ReadDir(subfolderPath)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			for _, fileEntry := range fileEntries {
				if fileEntry.IsDir() {
					continue
				}
				ext := strings.ToLower(filepath.Ext(fileEntry.Name()))
				if _, ok := videoExtensions[ext]; !ok {
					continue
				}
				subfolder.Videos = append(subfolder.Videos, VideoEntry{
					Name: fileEntry.Name(),
					Path: filepath.Join(subfolderPath, fileEntry.Name()),
				})
			}

			folder.Subfolders = append(folder.Subfolders, subfolder)
		}

		folders = append(folders, folder)
	}

	return folders, nil
}

// HasVideos reports whether any file below root (at any depth) has a known
// video extension.
func HasVideos(root string) bool {
	found := false
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || found {
			return filepath.SkipAll
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]; ok {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
