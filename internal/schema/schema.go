package schema

import (
	"strings"
	"sync"

	language "github.com/ephys/graphql-non-null-directive/internal/language"
)

// Schema represents the complete GraphQL schema
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            map[string]*Type // All named types keyed by name
	Directives       map[string]*Directive
	Description      string

	mu          sync.Mutex
	transformed map[string]struct{}
	transformMu sync.Mutex
}

// GetQueryType returns the root query type (may be nil if absent)
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (may be nil if absent)
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// GetSubscriptionType returns the root subscription type (may be nil if absent)
func (s *Schema) GetSubscriptionType() *Type { return s.Types[s.SubscriptionType] }

// MarkTransformed records that the transform identified by key ran on this schema.
// It reports false when the key was already recorded.
func (s *Schema) MarkTransformed(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transformed[key]; ok {
		return false
	}
	if s.transformed == nil {
		s.transformed = make(map[string]struct{})
	}
	s.transformed[key] = struct{}{}
	return true
}

// Transform runs fn unless key is already recorded, holding a per-schema lock
// so concurrent transforms run one at a time. Key is recorded only when fn
// succeeds. It reports whether fn ran.
func (s *Schema) Transform(key string, fn func() error) (bool, error) {
	s.transformMu.Lock()
	defer s.transformMu.Unlock()
	if s.IsTransformed(key) {
		return false, nil
	}
	if err := fn(); err != nil {
		return true, err
	}
	s.MarkTransformed(key)
	return true, nil
}

// IsTransformed reports whether MarkTransformed was called with key.
func (s *Schema) IsTransformed(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.transformed[key]
	return ok
}

// Type is a named GraphQL type (object, interface, union, scalar, enum, input)
type Type struct {
	Name           string
	Kind           TypeKind
	Description    string
	Fields         []*Field      // For OBJECT and INTERFACE
	Interfaces     []string      // For OBJECT and INTERFACE (implemented/extended)
	PossibleTypes  []string      // For INTERFACE and UNION
	EnumValues     []*EnumValue  // For ENUM
	InputFields    []*InputValue // For INPUT_OBJECT
	SpecifiedByURL *string
	OneOf          bool
}

// Field represents a field on an object or interface
type Field struct {
	Name              string
	Description       string
	Type              *TypeRef
	Arguments         []*InputValue
	Async             bool
	IsDeprecated      bool
	DeprecationReason string

	resolver FieldResolver
}

// Resolver returns the resolver configured for the field, or DefaultResolver.
func (f *Field) Resolver() FieldResolver {
	if f.resolver == nil {
		return DefaultResolver
	}
	return f.resolver
}

// HasResolver reports whether a resolver was set explicitly.
func (f *Field) HasResolver() bool { return f.resolver != nil }

// SetResolver replaces the field's resolver. A nil resolver restores DefaultResolver.
func (f *Field) SetResolver(r FieldResolver) *Field {
	f.resolver = r
	return f
}

// TypeKind represents the kind of GraphQL type
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// TypeRef represents a reference to a type (can be wrapped)
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For List and NonNull
	Named  string   // For named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

// Helper functions for TypeRef
func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

func (t *TypeRef) IsList() bool {
	if t.Kind == TypeRefKindList {
		return true
	}
	if t.Kind == TypeRefKindNonNull && t.OfType != nil {
		return t.OfType.Kind == TypeRefKindList
	}
	return false
}

func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

// Nullable strips a single outer Non-Null wrapper. List wrappers are kept.
func (t *TypeRef) Nullable() *TypeRef {
	if t.IsNonNull() {
		return t.OfType
	}
	return t
}

func (t *TypeRef) GetNamedType() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

// String renders the reference in SDL notation, e.g. "[String!]!".
func (t *TypeRef) String() string {
	if t == nil {
		return "Unknown"
	}
	switch t.Kind {
	case TypeRefKindNamed:
		return t.Named
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	case TypeRefKindNonNull:
		inner := t.OfType.String()
		if strings.HasSuffix(inner, "!") {
			return inner
		}
		return inner + "!"
	default:
		return "Unknown"
	}
}

type EnumValue struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

type InputValue struct {
	Name              string
	Description       string
	Type              *TypeRef
	DefaultValue      any
	IsDeprecated      bool
	DeprecationReason string
	Directives        []*DirectiveUse `json:",omitempty"`

	// Position is the SDL location of the definition, when known.
	Position *language.Position `json:"-"`
}

// Directive returns the first use of the named directive, or nil.
func (v *InputValue) Directive(name string) *DirectiveUse {
	for _, d := range v.Directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// HasDirective reports whether the input value carries the named directive.
func (v *InputValue) HasDirective(name string) bool { return v.Directive(name) != nil }

// DirectiveUse is a directive applied to a schema element, with its literal arguments.
type DirectiveUse struct {
	Name      string
	Arguments map[string]any `json:",omitempty"`
}

type Directive struct {
	Name         string
	Description  string
	Locations    []string
	Arguments    []*InputValue
	IsRepeatable bool
}

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

// IsNonNull reports whether the type is wrapped with Non-Null.
func IsNonNull(t *TypeRef) bool { return t != nil && t.IsNonNull() }

// IsList reports whether the type is (or is wrapped by) a list type.
func IsList(t *TypeRef) bool { return t != nil && t.IsList() }

// Unwrap removes one layer of Non-Null or List wrapping and returns the inner type.
func Unwrap(t *TypeRef) *TypeRef { return t.Unwrap() }

// GetNamedType returns the innermost named type for the given reference.
func GetNamedType(t *TypeRef) string { return t.GetNamedType() }
