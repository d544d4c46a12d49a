// Package sdl finds GraphQL SDL files and builds a schema from them.
//
// Files are discovered through a Discovery implementation (filesystem or in-memory),
// merged with any extra sources supplied by the caller, such as directive
// declarations, and validated as a single schema document.
package sdl

import (
	"context"
)

type FileMetadata struct {
	// Name identifies the file within its discovery, e.g. "users/user.graphql".
	Name string
	// Path is the location reported in violations.
	Path string
}

type Discovery interface {
	ListMetadata(ctx context.Context) ([]*FileMetadata, error)
	ReadSDL(ctx context.Context, name string) (string, error)
}
