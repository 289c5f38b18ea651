// Package boards discovers markdown board files for migration.
package boards

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File is one discovered board file.
type File struct {
	Path         string
	RelativePath string
}

// IsMarkdown reports whether the path has a markdown extension.
// Matching is case-insensitive so legacy .MD boards are picked up too.
func IsMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

// Walk calls the handler for every markdown file under root. If root itself
// is a markdown file, the handler is called once for it. The .lexera and
// .trash directories and hidden directories are skipped.
func Walk(root string, handler func(f File) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		if !IsMarkdown(root) {
			return nil
		}
		return handler(File{Path: root, RelativePath: filepath.Base(root)})
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == ".lexera" || name == ".trash" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsMarkdown(path) {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		return handler(File{Path: path, RelativePath: rel})
	})
}

// Collect walks root and returns all markdown files in sorted order, so
// runs over the same tree are deterministic.
func Collect(root string) ([]File, error) {
	var files []File
	err := Walk(root, func(f File) error {
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
