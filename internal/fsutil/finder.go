// Package fsutil provides file system helpers for configuration discovery.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension returns the full paths of all files under root that
// end with the given extension. A root that is itself a matching file is
// returned as-is, so callers can accept either a single file or a
// directory tree.
func FindFilesByExtension(root string, extension string) ([]string, error) {
	if extension == "" {
		return nil, fmt.Errorf("fsutil: extension must not be empty")
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if strings.HasSuffix(info.Name(), extension) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
