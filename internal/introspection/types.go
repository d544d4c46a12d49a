package introspection

import (
	"context"

	schema "github.com/ephys/graphql-non-null-directive/internal/schema"
)

func resolve(fn func(source any, args map[string]any) any) schema.FieldResolver {
	return schema.FieldResolverFunc(func(_ context.Context, source any, args map[string]any, _ schema.ResolveInfo) (any, error) {
		return fn(source, args), nil
	})
}

// onType resolves a __Type field that only named types carry; wrapper
// references resolve to null.
func onType(fn func(t *schema.Type, args map[string]any) any) schema.FieldResolver {
	return resolve(func(source any, args map[string]any) any {
		t, ok := source.(*schema.Type)
		if !ok {
			return nil
		}
		return fn(t, args)
	})
}

func field(name string, typ *schema.TypeRef, r schema.FieldResolver) *schema.Field {
	return schema.NewField(name, "", typ).SetResolver(r)
}

func withDeprecated(f *schema.Field) *schema.Field {
	return f.AddArgument(schema.NewInputValue("includeDeprecated", "", schema.NamedType("Boolean")).SetDefault(false))
}

func named(name string) *schema.TypeRef { return schema.NamedType(name) }

func required(name string) *schema.TypeRef { return schema.NonNullType(schema.NamedType(name)) }

func requiredList(name string) *schema.TypeRef {
	return schema.NonNullType(schema.ListType(required(name)))
}

func list(name string) *schema.TypeRef { return schema.ListType(required(name)) }

func metaTypes(s *schema.Schema) []*schema.Type {
	schemaType := schema.NewType("__Schema", schema.TypeKindObject,
		"A GraphQL Schema defines the capabilities of a GraphQL server.")
	schemaType.Fields = []*schema.Field{
		field("description", named("String"), resolve(func(src any, _ map[string]any) any {
			return optional(src.(*schema.Schema).Description)
		})),
		field("types", requiredList("__Type"), resolve(func(src any, _ map[string]any) any {
			return sortedTypes(src.(*schema.Schema))
		})),
		field("queryType", required("__Type"), resolve(func(src any, _ map[string]any) any {
			return typeOrNil(src.(*schema.Schema).GetQueryType())
		})),
		field("mutationType", named("__Type"), resolve(func(src any, _ map[string]any) any {
			return typeOrNil(src.(*schema.Schema).GetMutationType())
		})),
		field("subscriptionType", named("__Type"), resolve(func(src any, _ map[string]any) any {
			return typeOrNil(src.(*schema.Schema).GetSubscriptionType())
		})),
		field("directives", requiredList("__Directive"), resolve(func(src any, _ map[string]any) any {
			return sortedDirectives(src.(*schema.Schema))
		})),
	}

	typeType := schema.NewType("__Type", schema.TypeKindObject,
		"The fundamental unit of any GraphQL Schema is the type.")
	typeType.Fields = []*schema.Field{
		field("kind", required("__TypeKind"), resolve(func(src any, _ map[string]any) any {
			switch t := src.(type) {
			case *schema.Type:
				return string(t.Kind)
			case *schema.TypeRef:
				return string(t.Kind)
			}
			return nil
		})),
		field("name", named("String"), onType(func(t *schema.Type, _ map[string]any) any { return t.Name })),
		field("description", named("String"), onType(func(t *schema.Type, _ map[string]any) any {
			return optional(t.Description)
		})),
		field("specifiedByURL", named("String"), onType(func(t *schema.Type, _ map[string]any) any {
			if t.SpecifiedByURL == nil {
				return nil
			}
			return *t.SpecifiedByURL
		})),
		withDeprecated(field("fields", list("__Field"), onType(func(t *schema.Type, args map[string]any) any {
			if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
				return nil
			}
			return visibleFields(t, includeDeprecated(args))
		}))),
		field("interfaces", list("__Type"), onType(func(t *schema.Type, _ map[string]any) any {
			if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
				return nil
			}
			return namedTypes(s, t.Interfaces)
		})),
		field("possibleTypes", list("__Type"), onType(func(t *schema.Type, _ map[string]any) any {
			if t.Kind != schema.TypeKindInterface && t.Kind != schema.TypeKindUnion {
				return nil
			}
			return namedTypes(s, t.PossibleTypes)
		})),
		withDeprecated(field("enumValues", list("__EnumValue"), onType(func(t *schema.Type, args map[string]any) any {
			if t.Kind != schema.TypeKindEnum {
				return nil
			}
			return visibleEnumValues(t.EnumValues, includeDeprecated(args))
		}))),
		withDeprecated(field("inputFields", list("__InputValue"), onType(func(t *schema.Type, args map[string]any) any {
			if t.Kind != schema.TypeKindInputObject {
				return nil
			}
			return visibleInputs(t.InputFields, includeDeprecated(args))
		}))),
		field("ofType", named("__Type"), resolve(func(src any, _ map[string]any) any {
			if ref, ok := src.(*schema.TypeRef); ok {
				return typeValue(s, ref.OfType)
			}
			return nil
		})),
		field("isOneOf", named("Boolean"), onType(func(t *schema.Type, _ map[string]any) any {
			if t.Kind != schema.TypeKindInputObject {
				return nil
			}
			return t.OneOf
		})),
	}

	fieldType := schema.NewType("__Field", schema.TypeKindObject, "")
	fieldType.Fields = []*schema.Field{
		field("name", required("String"), resolve(func(src any, _ map[string]any) any { return src.(*schema.Field).Name })),
		field("description", named("String"), resolve(func(src any, _ map[string]any) any {
			return optional(src.(*schema.Field).Description)
		})),
		withDeprecated(field("args", requiredList("__InputValue"), resolve(func(src any, args map[string]any) any {
			return visibleInputs(src.(*schema.Field).Arguments, includeDeprecated(args))
		}))),
		field("type", required("__Type"), resolve(func(src any, _ map[string]any) any {
			return typeValue(s, src.(*schema.Field).Type)
		})),
		field("isDeprecated", required("Boolean"), resolve(func(src any, _ map[string]any) any {
			return src.(*schema.Field).IsDeprecated
		})),
		field("deprecationReason", named("String"), resolve(func(src any, _ map[string]any) any {
			f := src.(*schema.Field)
			return deprecationReason(f.IsDeprecated, f.DeprecationReason)
		})),
	}

	inputValueType := schema.NewType("__InputValue", schema.TypeKindObject, "")
	inputValueType.Fields = []*schema.Field{
		field("name", required("String"), resolve(func(src any, _ map[string]any) any { return src.(*schema.InputValue).Name })),
		field("description", named("String"), resolve(func(src any, _ map[string]any) any {
			return optional(src.(*schema.InputValue).Description)
		})),
		field("type", required("__Type"), resolve(func(src any, _ map[string]any) any {
			return typeValue(s, src.(*schema.InputValue).Type)
		})),
		field("defaultValue", named("String"), resolve(func(src any, _ map[string]any) any {
			v := src.(*schema.InputValue)
			if v.DefaultValue == nil {
				return nil
			}
			return schema.FormatValue(v.DefaultValue)
		})),
		field("isDeprecated", required("Boolean"), resolve(func(src any, _ map[string]any) any {
			return src.(*schema.InputValue).IsDeprecated
		})),
		field("deprecationReason", named("String"), resolve(func(src any, _ map[string]any) any {
			v := src.(*schema.InputValue)
			return deprecationReason(v.IsDeprecated, v.DeprecationReason)
		})),
	}

	enumValueType := schema.NewType("__EnumValue", schema.TypeKindObject, "")
	enumValueType.Fields = []*schema.Field{
		field("name", required("String"), resolve(func(src any, _ map[string]any) any { return src.(*schema.EnumValue).Name })),
		field("description", named("String"), resolve(func(src any, _ map[string]any) any {
			return optional(src.(*schema.EnumValue).Description)
		})),
		field("isDeprecated", required("Boolean"), resolve(func(src any, _ map[string]any) any {
			return src.(*schema.EnumValue).IsDeprecated
		})),
		field("deprecationReason", named("String"), resolve(func(src any, _ map[string]any) any {
			v := src.(*schema.EnumValue)
			return deprecationReason(v.IsDeprecated, v.DeprecationReason)
		})),
	}

	directiveType := schema.NewType("__Directive", schema.TypeKindObject, "")
	directiveType.Fields = []*schema.Field{
		field("name", required("String"), resolve(func(src any, _ map[string]any) any { return src.(*schema.Directive).Name })),
		field("description", named("String"), resolve(func(src any, _ map[string]any) any {
			return optional(src.(*schema.Directive).Description)
		})),
		field("isRepeatable", required("Boolean"), resolve(func(src any, _ map[string]any) any {
			return src.(*schema.Directive).IsRepeatable
		})),
		field("locations", requiredList("__DirectiveLocation"), resolve(func(src any, _ map[string]any) any {
			return src.(*schema.Directive).Locations
		})),
		withDeprecated(field("args", requiredList("__InputValue"), resolve(func(src any, args map[string]any) any {
			return visibleInputs(src.(*schema.Directive).Arguments, includeDeprecated(args))
		}))),
	}

	return []*schema.Type{
		schemaType, typeType, fieldType, inputValueType, enumValueType, directiveType,
		enumType("__TypeKind",
			"SCALAR", "OBJECT", "INTERFACE", "UNION", "ENUM", "INPUT_OBJECT", "LIST", "NON_NULL"),
		enumType("__DirectiveLocation",
			"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD", "FRAGMENT_DEFINITION", "FRAGMENT_SPREAD",
			"INLINE_FRAGMENT", "VARIABLE_DEFINITION", "SCHEMA", "SCALAR", "OBJECT", "FIELD_DEFINITION",
			"ARGUMENT_DEFINITION", "INTERFACE", "UNION", "ENUM", "ENUM_VALUE", "INPUT_OBJECT",
			"INPUT_FIELD_DEFINITION"),
	}
}

func enumType(name string, values ...string) *schema.Type {
	t := schema.NewType(name, schema.TypeKindEnum, "")
	for _, v := range values {
		t.AddEnumValue(schema.NewEnumValue(v, ""))
	}
	return t
}
