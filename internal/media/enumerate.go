// Package media discovers source files and maps them onto the mirrored
// output tree.
package media

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// SupportedExtensions are matched when no extension filter is set.
var SupportedExtensions = []string{"mkv", "mp4", "m4v", "webm", "mp3", "wav", "m4a", "ogg"}

// File is one discovered source file.
type File struct {
	Path     string // absolute
	RelDir   string // relative to the input root, "." for the root itself
	BaseName string // file name without extension
}

// RelPath returns the file's path relative to the input root.
func (f File) RelPath() string {
	return filepath.Join(f.RelDir, f.BaseName+filepath.Ext(f.Path))
}

// Enumerate walks inputDir recursively and returns the matching files
// sorted by full path. An empty filter matches SupportedExtensions.
// Hidden files and directories are not visited.
func Enumerate(inputDir, filter string) ([]File, error) {
	root, err := filepath.Abs(inputDir)
	if err != nil {
		return nil, err
	}

	match := extensionSet(filter)
	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if !match[ext] {
			return nil
		}

		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		files = append(files, File{
			Path:     path,
			RelDir:   rel,
			BaseName: strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// IsMediaFile reports whether path would be picked up by Enumerate with
// the given filter.
func IsMediaFile(path, filter string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return extensionSet(filter)[ext]
}

func extensionSet(filter string) map[string]bool {
	filter = strings.TrimPrefix(strings.ToLower(filter), ".")
	if filter != "" {
		return map[string]bool{filter: true}
	}
	set := make(map[string]bool, len(SupportedExtensions))
	for _, ext := range SupportedExtensions {
		set[ext] = true
	}
	return set
}
