package executor

import (
	"slices"

	language "github.com/ephys/graphql-non-null-directive/internal/language"
	schema "github.com/ephys/graphql-non-null-directive/internal/schema"
)

// fieldGroup holds every field node merged under one response key.
type fieldGroup struct {
	ResponseName string
	Fields       []*language.Field
}

// groupedFields keeps response keys in first-seen order.
type groupedFields struct {
	groups []fieldGroup
	byName map[string]int
}

func (g *groupedFields) add(f *language.Field) {
	name := f.Alias
	if name == "" {
		name = f.Name
	}
	if i, ok := g.byName[name]; ok {
		g.groups[i].Fields = append(g.groups[i].Fields, f)
		return
	}
	g.byName[name] = len(g.groups)
	g.groups = append(g.groups, fieldGroup{ResponseName: name, Fields: []*language.Field{f}})
}

func (g *groupedFields) orderedFields() []fieldGroup { return g.groups }

// collectFields merges the selections that apply to objectType, following
// fragments whose type condition the object satisfies.
func collectFields(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet) *groupedFields {
	g := &groupedFields{byName: make(map[string]int)}
	visited := make(map[string]bool)

	var walk func(language.SelectionSet)
	walk = func(set language.SelectionSet) {
		for _, selection := range set {
			switch sel := selection.(type) {
			case *language.Field:
				if included(state, sel.Directives) {
					g.add(sel)
				}
			case *language.InlineFragment:
				if included(state, sel.Directives) && fragmentApplies(state.schema, objectType, sel.TypeCondition) {
					walk(sel.SelectionSet)
				}
			case *language.FragmentSpread:
				if !included(state, sel.Directives) || visited[sel.Name] {
					continue
				}
				visited[sel.Name] = true
				def := state.document.Fragments.ForName(sel.Name)
				if def == nil || !included(state, def.Directives) || !fragmentApplies(state.schema, objectType, def.TypeCondition) {
					continue
				}
				walk(def.SelectionSet)
			}
		}
	}
	walk(selectionSet)
	return g
}

// fragmentApplies reports whether a fragment with the given type condition
// selects fields on objectType: the object itself, an interface it
// implements, or a union listing it.
func fragmentApplies(s *schema.Schema, objectType *schema.Type, condition string) bool {
	if condition == "" || condition == objectType.Name {
		return true
	}
	if slices.Contains(objectType.Interfaces, condition) {
		return true
	}
	if s == nil {
		return false
	}
	abstract := s.Types[condition]
	if abstract == nil {
		return false
	}
	switch abstract.Kind {
	case schema.TypeKindInterface, schema.TypeKindUnion:
		return slices.Contains(abstract.PossibleTypes, objectType.Name)
	}
	return false
}

// included evaluates @skip and @include.
func included(state *executionState, directives language.DirectiveList) bool {
	if skip := directives.ForName("skip"); skip != nil {
		if v, ok := directiveArgument(state, skip, "if").(bool); ok && v {
			return false
		}
	}
	if include := directives.ForName("include"); include != nil {
		if v, ok := directiveArgument(state, include, "if").(bool); ok && !v {
			return false
		}
	}
	return true
}

func directiveArgument(state *executionState, d *language.Directive, name string) any {
	arg := d.Arguments.ForName(name)
	if arg == nil || arg.Value == nil {
		return nil
	}
	if arg.Value.Kind == language.Variable {
		return state.variableValues[arg.Value.Raw]
	}
	return astValueToGo(arg.Value)
}

func getFieldDefinition(objectType *schema.Type, fieldName string) *schema.Field {
	return objectType.Field(fieldName)
}
