package sdl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FileSystemDiscovery implements Discovery for .graphql/.graphqls files below a root directory.
type FileSystemDiscovery struct {
	root  string
	files map[string]*FileMetadata
}

// NewFileSystemDiscovery walks rootDir once and records every schema file.
func NewFileSystemDiscovery(rootDir string) (*FileSystemDiscovery, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("schema root cannot be empty")
	}
	d := &FileSystemDiscovery{
		root:  rootDir,
		files: make(map[string]*FileMetadata),
	}

	err := filepath.WalkDir(rootDir, func(path string, e os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}
		switch filepath.Ext(e.Name()) {
		case ".graphql", ".graphqls":
		default:
			return nil
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %q: %w", path, err)
		}
		name := filepath.ToSlash(relPath)
		d.files[name] = &FileMetadata{Name: name, Path: path}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk schema root %q: %w", rootDir, err)
	}
	return d, nil
}

// ListMetadata returns the discovered files ordered by name.
func (d *FileSystemDiscovery) ListMetadata(ctx context.Context) ([]*FileMetadata, error) {
	out := make([]*FileMetadata, 0, len(d.files))
	for _, f := range d.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ReadSDL reads the content of a discovered file.
func (d *FileSystemDiscovery) ReadSDL(ctx context.Context, name string) (string, error) {
	f, ok := d.files[name]
	if !ok {
		return "", fmt.Errorf("schema file %q not found", name)
	}
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema file %q: %w", name, err)
	}
	return string(content), nil
}
