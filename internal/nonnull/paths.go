package nonnull

import (
	"slices"
	"sort"
	"strings"

	"github.com/ephys/graphql-non-null-directive/internal/schema"
)

// Path leads from a field argument through nested input objects to a tagged input field.
type Path []string

func (p Path) String() string { return strings.Join(p, ".") }

// FieldPaths holds the tagged paths of one object field, shortest first.
type FieldPaths struct {
	Type  string
	Field string
	Paths []Path

	field *schema.Field
}

// Paths validates the schema and returns the tagged paths of every object field that has any.
// The schema is not modified.
func (d *Directive) Paths(s *schema.Schema) ([]FieldPaths, error) {
	return d.discover(s)
}

// discover visits the type map once. Input types get their placement checked and
// object fields get their argument paths collected.
func (d *Directive) discover(s *schema.Schema) ([]FieldPaths, error) {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	w := &walker{directive: d.opt.DirectiveName, schema: s, reaches: map[string]bool{}}
	var out []FieldPaths
	for _, name := range names {
		t := s.Types[name]
		switch t.Kind {
		case schema.TypeKindInputObject:
			if err := w.checkPlacement(t); err != nil {
				return nil, err
			}
		case schema.TypeKindObject:
			for _, f := range t.Fields {
				paths, err := w.fieldPaths(f)
				if err != nil {
					return nil, err
				}
				if len(paths) == 0 {
					continue
				}
				out = append(out, FieldPaths{Type: t.Name, Field: f.Name, Paths: paths, field: f})
			}
		}
	}
	return out, nil
}

type walker struct {
	directive string
	schema    *schema.Schema
	// reaches caches whether a tagged field is reachable from an input type.
	reaches map[string]bool
}

func (w *walker) checkPlacement(t *schema.Type) error {
	for _, f := range t.InputFields {
		if !f.HasDirective(w.directive) || !f.Type.IsNonNull() {
			continue
		}
		return &ConfigurationError{
			Directive: w.directive,
			Type:      t.Name,
			Field:     f.Name,
			Signature: f.Type.String(),
			Position:  f.Position,
		}
	}
	return nil
}

func (w *walker) fieldPaths(f *schema.Field) ([]Path, error) {
	var paths []Path
	for _, arg := range f.Arguments {
		name, ok := w.inputObject(arg.Type)
		if !ok {
			continue
		}
		found, err := w.inputPaths(name, Path{arg.Name}, nil)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	sort.SliceStable(paths, func(i, j int) bool { return len(paths[i]) < len(paths[j]) })
	return paths, nil
}

func (w *walker) inputPaths(typeName string, prefix Path, stack []string) ([]Path, error) {
	if i := slices.Index(stack, typeName); i >= 0 {
		if w.reachesTag(typeName, map[string]bool{}) {
			return nil, &ConfigurationError{
				Directive: w.directive,
				Cycle:     append(slices.Clone(stack[i:]), typeName),
			}
		}
		return nil, nil
	}
	stack = append(stack, typeName)

	var out []Path
	for _, f := range w.schema.Types[typeName].InputFields {
		p := append(slices.Clone(prefix), f.Name)
		if nested, ok := w.inputObject(f.Type); ok {
			found, err := w.inputPaths(nested, p, stack)
			if err != nil {
				return nil, err
			}
			out = append(out, found...)
		}
		if f.HasDirective(w.directive) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (w *walker) reachesTag(typeName string, seen map[string]bool) bool {
	if r, ok := w.reaches[typeName]; ok {
		return r
	}
	if seen[typeName] {
		return false
	}
	seen[typeName] = true
	for _, f := range w.schema.Types[typeName].InputFields {
		if f.HasDirective(w.directive) {
			w.reaches[typeName] = true
			return true
		}
		if nested, ok := w.inputObject(f.Type); ok && w.reachesTag(nested, seen) {
			w.reaches[typeName] = true
			return true
		}
	}
	return false
}

// inputObject unwraps one Non-Null and reports the input object type named by ref.
func (w *walker) inputObject(ref *schema.TypeRef) (string, bool) {
	if ref == nil {
		return "", false
	}
	ref = ref.Nullable()
	switch ref.Kind {
	case schema.TypeRefKindNamed:
		t := w.schema.Types[ref.Named]
		if t != nil && t.Kind == schema.TypeKindInputObject {
			return t.Name, true
		}
	case schema.TypeRefKindList, schema.TypeRefKindNonNull:
	}
	return "", false
}
