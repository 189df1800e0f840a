package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vmunix/renamarr/pkg/epname"
)

// videoExtensions are the container formats worth renaming.
var videoExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".avi":  true,
	".m4v":  true,
	".mov":  true,
	".wmv":  true,
	".ts":   true,
	".webm": true,
}

// IsVideoFile reports whether the path has a known video extension.
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanDir finds and parses all video files under root (recursive).
// Skips files with "sample" in the name. Results are ordered by path so
// plans are deterministic.
func ScanDir(root string) ([]epname.LocalFile, error) {
	var files []epname.LocalFile

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !IsVideoFile(path) {
			return nil
		}
		if strings.Contains(strings.ToLower(info.Name()), "sample") {
			return nil
		}
		files = append(files, epname.Parse(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
