package schema

import (
	"sort"
	"strings"

	language "github.com/ephys/graphql-non-null-directive/internal/language"
)

func NewSchema(description string) *Schema {
	return &Schema{
		Types:       make(map[string]*Type),
		Directives:  make(map[string]*Directive),
		Description: description,
	}
}

func (s *Schema) SetQueryType(name string) *Schema        { s.QueryType = name; return s }
func (s *Schema) SetMutationType(name string) *Schema     { s.MutationType = name; return s }
func (s *Schema) SetSubscriptionType(name string) *Schema { s.SubscriptionType = name; return s }

func (s *Schema) AddType(t *Type) *Schema {
	if s.Types == nil {
		s.Types = make(map[string]*Type)
	}
	s.Types[t.Name] = t
	return s
}

func (s *Schema) AddDirective(d *Directive) *Schema {
	if s.Directives == nil {
		s.Directives = make(map[string]*Directive)
	}
	s.Directives[d.Name] = d
	return s
}

func NewType(name string, kind TypeKind, description string) *Type {
	return &Type{Name: name, Kind: kind, Description: description}
}

func (t *Type) AddField(f *Field) *Type            { t.Fields = append(t.Fields, f); return t }
func (t *Type) AddInterface(name string) *Type     { t.Interfaces = append(t.Interfaces, name); return t }
func (t *Type) AddPossibleType(name string) *Type  { t.PossibleTypes = append(t.PossibleTypes, name); return t }
func (t *Type) AddEnumValue(v *EnumValue) *Type    { t.EnumValues = append(t.EnumValues, v); return t }
func (t *Type) AddInputField(v *InputValue) *Type  { t.InputFields = append(t.InputFields, v); return t }
func (t *Type) SetOneOf(oneOf bool) *Type          { t.OneOf = oneOf; return t }
func (t *Type) SetSpecifiedByURL(url string) *Type { t.SpecifiedByURL = &url; return t }

// Field returns the named field, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// InputField returns the named input field, or nil.
func (t *Type) InputField(name string) *InputValue {
	for _, f := range t.InputFields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// NewFieldMap collects fields for struct literals of Type.
func NewFieldMap(fields ...*Field) []*Field { return fields }

func NewField(name, description string, typ *TypeRef) *Field {
	return &Field{Name: name, Description: description, Type: typ}
}

func (f *Field) SetAsync(async bool) *Field         { f.Async = async; return f }
func (f *Field) AddArgument(arg *InputValue) *Field { f.Arguments = append(f.Arguments, arg); return f }

func (f *Field) Deprecate(reason string) *Field {
	f.IsDeprecated = true
	f.DeprecationReason = reason
	return f
}

// Argument returns the named argument definition, or nil.
func (f *Field) Argument(name string) *InputValue {
	for _, a := range f.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func NewEnumValue(name, description string) *EnumValue {
	return &EnumValue{Name: name, Description: description}
}

func (e *EnumValue) Deprecate(reason string) *EnumValue {
	e.IsDeprecated = true
	e.DeprecationReason = reason
	return e
}

func NewInputValue(name, description string, typ *TypeRef) *InputValue {
	return &InputValue{Name: name, Description: description, Type: typ}
}

func (v *InputValue) SetDefault(value any) *InputValue { v.DefaultValue = value; return v }

func (v *InputValue) Deprecate(reason string) *InputValue {
	v.IsDeprecated = true
	v.DeprecationReason = reason
	return v
}

// AddDirective attaches a directive use. Arguments may be nil.
func (v *InputValue) AddDirective(name string, args map[string]any) *InputValue {
	v.Directives = append(v.Directives, &DirectiveUse{Name: name, Arguments: args})
	return v
}

func NewDirective(name, description string) *Directive {
	return &Directive{Name: name, Description: description}
}

func (d *Directive) SetRepeatable(repeatable bool) *Directive  { d.IsRepeatable = repeatable; return d }
func (d *Directive) AddArgument(arg *InputValue) *Directive    { d.Arguments = append(d.Arguments, arg); return d }
func (d *Directive) AddLocation(locations ...string) *Directive { d.Locations = append(d.Locations, locations...); return d }

// BuildFromSDL parses SDL and returns the corresponding Schema.
func BuildFromSDL(sdl string) (*Schema, error) {
	return BuildFromSources(&language.Source{Name: "schema.graphql", Input: sdl})
}

// BuildFromSources validates the sources as one schema and converts the result.
func BuildFromSources(sources ...*language.Source) (*Schema, error) {
	doc, err := language.LoadSchema(sources...)
	if err != nil {
		return nil, err
	}
	return BuildFromAST(doc), nil
}

// BuildFromAST converts a validated gqlparser schema. Introspection types and
// built-in directives are left out; built-in scalars are shared.
func BuildFromAST(doc *language.Schema) *Schema {
	s := NewSchema("")
	if doc.Query != nil {
		s.SetQueryType(doc.Query.Name)
	}
	if doc.Mutation != nil {
		s.SetMutationType(doc.Mutation.Name)
	}
	if doc.Subscription != nil {
		s.SetSubscriptionType(doc.Subscription.Name)
	}

	names := make([]string, 0, len(doc.Types))
	for name := range doc.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := doc.Types[name]
		if def.BuiltIn {
			if bt := builtinScalar(name); bt != nil {
				s.AddType(bt)
			}
			continue
		}
		switch def.Kind {
		case language.Object:
			s.AddType(buildObject(def, TypeKindObject))
		case language.Interface:
			t := buildObject(def, TypeKindInterface)
			for _, pt := range doc.PossibleTypes[def.Name] {
				t.AddPossibleType(pt.Name)
			}
			s.AddType(t)
		case language.Union:
			t := NewType(def.Name, TypeKindUnion, def.Description)
			for _, member := range def.Types {
				t.AddPossibleType(member)
			}
			s.AddType(t)
		case language.Enum:
			s.AddType(buildEnum(def))
		case language.InputObject:
			s.AddType(buildInput(def))
		case language.Scalar:
			t := NewType(def.Name, TypeKindScalar, def.Description)
			if d := def.Directives.ForName("specifiedBy"); d != nil {
				if url, ok := directiveArgument(d, "url").(string); ok {
					t.SetSpecifiedByURL(url)
				}
			}
			s.AddType(t)
		}
	}

	dirNames := make([]string, 0, len(doc.Directives))
	for name, d := range doc.Directives {
		if d.Position != nil && d.Position.Src != nil && d.Position.Src.BuiltIn {
			continue
		}
		dirNames = append(dirNames, name)
	}
	sort.Strings(dirNames)
	for _, name := range dirNames {
		s.AddDirective(buildDirective(doc.Directives[name]))
	}
	return s
}

func buildObject(def *language.Definition, kind TypeKind) *Type {
	t := NewType(def.Name, kind, def.Description)
	for _, name := range def.Interfaces {
		t.AddInterface(name)
	}
	for _, fd := range def.Fields {
		if strings.HasPrefix(fd.Name, "__") {
			continue
		}
		f := NewField(fd.Name, fd.Description, buildTypeRef(fd.Type))
		if reason, ok := deprecation(fd.Directives); ok {
			f.Deprecate(reason)
		}
		for _, arg := range fd.Arguments {
			in := NewInputValue(arg.Name, arg.Description, buildTypeRef(arg.Type)).
				SetDefault(literal(arg.DefaultValue))
			in.Position = arg.Position
			in.Directives = buildDirectiveUses(arg.Directives)
			if reason, ok := deprecation(arg.Directives); ok {
				in.Deprecate(reason)
			}
			f.AddArgument(in)
		}
		t.AddField(f)
	}
	return t
}

func buildEnum(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindEnum, def.Description)
	for _, v := range def.EnumValues {
		e := NewEnumValue(v.Name, v.Description)
		if reason, ok := deprecation(v.Directives); ok {
			e.Deprecate(reason)
		}
		t.AddEnumValue(e)
	}
	return t
}

func buildInput(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindInputObject, def.Description).
		SetOneOf(def.Directives.ForName("oneOf") != nil)
	for _, fd := range def.Fields {
		in := NewInputValue(fd.Name, fd.Description, buildTypeRef(fd.Type)).
			SetDefault(literal(fd.DefaultValue))
		in.Position = fd.Position
		in.Directives = buildDirectiveUses(fd.Directives)
		if reason, ok := deprecation(fd.Directives); ok {
			in.Deprecate(reason)
		}
		t.AddInputField(in)
	}
	return t
}

func buildDirective(def *language.DirectiveDefinition) *Directive {
	d := NewDirective(def.Name, def.Description).SetRepeatable(def.IsRepeatable)
	for _, loc := range def.Locations {
		d.AddLocation(string(loc))
	}
	for _, arg := range def.Arguments {
		d.AddArgument(NewInputValue(arg.Name, arg.Description, buildTypeRef(arg.Type)).
			SetDefault(literal(arg.DefaultValue)))
	}
	return d
}

func buildTypeRef(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	var ref *TypeRef
	if t.Elem != nil {
		ref = ListType(buildTypeRef(t.Elem))
	} else {
		ref = NamedType(t.NamedType)
	}
	if t.NonNull {
		return NonNullType(ref)
	}
	return ref
}

// buildDirectiveUses keeps every directive except @deprecated, which is
// projected onto the IsDeprecated fields.
func buildDirectiveUses(list language.DirectiveList) []*DirectiveUse {
	var out []*DirectiveUse
	for _, d := range list {
		if d.Name == "deprecated" {
			continue
		}
		use := &DirectiveUse{Name: d.Name}
		for _, arg := range d.Arguments {
			if use.Arguments == nil {
				use.Arguments = make(map[string]any, len(d.Arguments))
			}
			use.Arguments[arg.Name] = literal(arg.Value)
		}
		out = append(out, use)
	}
	return out
}

func deprecation(list language.DirectiveList) (string, bool) {
	d := list.ForName("deprecated")
	if d == nil {
		return "", false
	}
	if reason, ok := directiveArgument(d, "reason").(string); ok {
		return reason, true
	}
	return "No longer supported", true
}

func directiveArgument(d *language.Directive, name string) any {
	if arg := d.Arguments.ForName(name); arg != nil {
		return literal(arg.Value)
	}
	return nil
}

func literal(v *language.Value) any {
	if v == nil {
		return nil
	}
	out, err := v.Value(nil)
	if err != nil {
		return nil
	}
	return out
}
