package nonnull

import (
	"context"

	eventbus "github.com/ephys/graphql-non-null-directive/internal/eventbus"
	events "github.com/ephys/graphql-non-null-directive/internal/events"
	"github.com/ephys/graphql-non-null-directive/internal/schema"
)

// resolver rejects explicit nulls at tagged paths before calling the wrapped resolver.
type resolver struct {
	next       schema.FieldResolver
	paths      []Path
	buildError func(message string) error
}

func (r *resolver) Resolve(ctx context.Context, source any, args map[string]any, info schema.ResolveInfo) (any, error) {
	for _, p := range r.paths {
		if !nullAt(args, p) {
			continue
		}
		eventbus.Publish(ctx, events.NullInputRejected{
			ObjectType: info.ParentType,
			Field:      info.FieldName,
			Path:       p.String(),
		})
		msg := p.String() + " cannot be null"
		if r.buildError != nil {
			return nil, r.buildError(msg)
		}
		return nil, &InputValidationError{Path: p, Message: msg}
	}
	return r.next.Resolve(ctx, source, args, info)
}

// nullAt reports whether args holds an explicit null at p or at one of its prefixes.
// A missing key or a non-object value on the way is not a null.
func nullAt(args map[string]any, p Path) bool {
	var cur any = args
	for _, seg := range p {
		obj, ok := cur.(map[string]any)
		if !ok {
			return false
		}
		v, present := obj[seg]
		if !present {
			return false
		}
		if v == nil {
			return true
		}
		cur = v
	}
	return false
}
