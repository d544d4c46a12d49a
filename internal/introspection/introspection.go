// Package introspection adds the __schema and __type entry points and the
// __-prefixed meta types to a schema. Every meta field carries its own
// resolver, so the extended schema is served by any runtime that dispatches
// to schema.Field resolvers.
package introspection

import (
	"sort"
	"strings"

	schema "github.com/ephys/graphql-non-null-directive/internal/schema"
)

// Extend returns a copy of s with introspection types registered and the
// query root extended with __schema and __type. Types other than the query
// root are shared with s, so resolvers installed on s stay in effect.
func Extend(s *schema.Schema) *schema.Schema {
	ext := &schema.Schema{
		QueryType:        s.QueryType,
		MutationType:     s.MutationType,
		SubscriptionType: s.SubscriptionType,
		Types:            make(map[string]*schema.Type, len(s.Types)+8),
		Directives:       s.Directives,
		Description:      s.Description,
	}
	for name, t := range s.Types {
		ext.Types[name] = t
	}
	for _, t := range metaTypes(ext) {
		ext.Types[t.Name] = t
	}

	q := s.GetQueryType()
	if q == nil {
		return ext
	}
	root := *q
	root.Fields = append(append([]*schema.Field(nil), q.Fields...),
		schema.NewField("__schema", "Access the current type schema of this server.",
			schema.NonNullType(schema.NamedType("__Schema"))).
			SetResolver(resolve(func(any, map[string]any) any { return ext })),
		schema.NewField("__type", "Request the type information of a single type.",
			schema.NamedType("__Type")).
			AddArgument(schema.NewInputValue("name", "", schema.NonNullType(schema.NamedType("String")))).
			SetResolver(resolve(func(_ any, args map[string]any) any {
				name, _ := args["name"].(string)
				if t := ext.Types[name]; t != nil {
					return t
				}
				return nil
			})),
	)
	ext.Types[root.Name] = &root
	return ext
}

func sortedTypes(s *schema.Schema) []*schema.Type {
	out := make([]*schema.Type, 0, len(s.Types))
	for _, t := range s.Types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedDirectives(s *schema.Schema) []*schema.Directive {
	out := make([]*schema.Directive, 0, len(s.Directives))
	for _, d := range s.Directives {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// typeValue maps a type reference onto the value served as __Type: wrappers
// stay *schema.TypeRef, named references become the *schema.Type they name.
func typeValue(s *schema.Schema, ref *schema.TypeRef) any {
	if ref == nil {
		return nil
	}
	if ref.Kind == schema.TypeRefKindNamed {
		if t := s.Types[ref.Named]; t != nil {
			return t
		}
		return nil
	}
	return ref
}

func typeOrNil(t *schema.Type) any {
	if t == nil {
		return nil
	}
	return t
}

func visibleFields(t *schema.Type, includeDeprecated bool) []*schema.Field {
	out := []*schema.Field{}
	for _, f := range t.Fields {
		if strings.HasPrefix(f.Name, "__") || (f.IsDeprecated && !includeDeprecated) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func visibleInputs(vs []*schema.InputValue, includeDeprecated bool) []*schema.InputValue {
	out := []*schema.InputValue{}
	for _, v := range vs {
		if v.IsDeprecated && !includeDeprecated {
			continue
		}
		out = append(out, v)
	}
	return out
}

func visibleEnumValues(vs []*schema.EnumValue, includeDeprecated bool) []*schema.EnumValue {
	out := []*schema.EnumValue{}
	for _, v := range vs {
		if v.IsDeprecated && !includeDeprecated {
			continue
		}
		out = append(out, v)
	}
	return out
}

func namedTypes(s *schema.Schema, names []string) []*schema.Type {
	out := make([]*schema.Type, 0, len(names))
	for _, name := range names {
		if t := s.Types[name]; t != nil {
			out = append(out, t)
		}
	}
	return out
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deprecationReason(deprecated bool, reason string) any {
	if !deprecated {
		return nil
	}
	return reason
}

func includeDeprecated(args map[string]any) bool {
	b, _ := args["includeDeprecated"].(bool)
	return b
}
