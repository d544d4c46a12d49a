package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header carries the request ID in requests and responses.
const Header = "X-Request-Id"

// key is the context key for the request ID.
type key struct{}

// NewContext returns a copy of parent with a new random request ID stored.
// It also returns the generated ID.
func NewContext(parent context.Context) (context.Context, string) {
	return WithID(parent, uuid.NewString())
}

// WithID stores id in a copy of parent.
func WithID(parent context.Context, id string) (context.Context, string) {
	return context.WithValue(parent, key{}, id), id
}

// FromRequest reuses the client's X-Request-Id when present and generates one otherwise.
func FromRequest(parent context.Context, r *http.Request) (context.Context, string) {
	if id := r.Header.Get(Header); id != "" {
		return WithID(parent, id)
	}
	return NewContext(parent)
}

// FromContext extracts the request ID from ctx.
// It returns the ID and whether it was present.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(key{}).(string)
	return id, ok
}
