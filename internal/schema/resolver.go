package schema

import (
	"context"
	"reflect"
	"strings"
)

// ResolveInfo describes the field being resolved.
type ResolveInfo struct {
	ParentType string
	FieldName  string
	ReturnType *TypeRef
}

// FieldResolver produces a field's value from its parent value and coerced arguments.
//
// Arguments keep the distinction between an omitted input (no key) and an explicit
// null (key present with a nil value). Implementations must not mutate args.
type FieldResolver interface {
	Resolve(ctx context.Context, source any, args map[string]any, info ResolveInfo) (any, error)
}

// FieldResolverFunc adapts a plain function to FieldResolver.
type FieldResolverFunc func(ctx context.Context, source any, args map[string]any, info ResolveInfo) (any, error)

func (f FieldResolverFunc) Resolve(ctx context.Context, source any, args map[string]any, info ResolveInfo) (any, error) {
	return f(ctx, source, args, info)
}

// DefaultResolver reads the property named after the field from the parent value.
var DefaultResolver FieldResolver = propertyResolver{}

type propertyResolver struct{}

func (propertyResolver) Resolve(_ context.Context, source any, _ map[string]any, info ResolveInfo) (any, error) {
	return Property(source, info.FieldName), nil
}

// Property looks up name on v. Maps are indexed by key; structs match an exported
// field by json tag first, then by case-insensitive name. Pointers are followed.
// A missing property yields nil.
func Property(v any, name string) any {
	if v == nil {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return m[name]
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		out := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !out.IsValid() {
			return nil
		}
		return out.Interface()
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			if tag, _, _ := strings.Cut(sf.Tag.Get("json"), ","); tag == name {
				return rv.Field(i).Interface()
			}
		}
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if sf.IsExported() && strings.EqualFold(sf.Name, name) {
				return rv.Field(i).Interface()
			}
		}
	}
	return nil
}
