package sdl

import (
	"context"
	"fmt"
	"sort"
)

type InMemoryFile struct {
	Name    string
	Content string
}

// InMemoryDiscovery serves SDL held in memory, mostly for tests.
type InMemoryDiscovery struct {
	files    map[string]*FileMetadata
	contents map[string]string
}

func NewInMemoryDiscovery(files ...InMemoryFile) *InMemoryDiscovery {
	d := &InMemoryDiscovery{
		files:    make(map[string]*FileMetadata),
		contents: make(map[string]string),
	}
	for _, f := range files {
		d.files[f.Name] = &FileMetadata{Name: f.Name, Path: f.Name}
		d.contents[f.Name] = f.Content
	}
	return d
}

// ListMetadata implements Discovery interface
func (d *InMemoryDiscovery) ListMetadata(ctx context.Context) ([]*FileMetadata, error) {
	out := make([]*FileMetadata, 0, len(d.files))
	for _, f := range d.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ReadSDL implements Discovery interface
func (d *InMemoryDiscovery) ReadSDL(ctx context.Context, name string) (string, error) {
	content, ok := d.contents[name]
	if !ok {
		return "", fmt.Errorf("schema file %q not found", name)
	}
	return content, nil
}
