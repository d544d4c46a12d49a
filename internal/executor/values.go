package executor

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	language "github.com/ephys/graphql-non-null-directive/internal/language"
	schema "github.com/ephys/graphql-non-null-directive/internal/schema"
)

// Coerced input values keep explicit nulls apart from omitted values: an explicit
// null is a present key holding nil, an omitted value has no key at all.

// coerceVariableValues coerces variable values according to their types
func coerceVariableValues(
	sch *schema.Schema,
	operation *language.OperationDefinition,
	variableValues map[string]any,
) (map[string]any, error) {
	if variableValues == nil {
		variableValues = make(map[string]any)
	}
	coerced := make(map[string]any)
	for _, varDef := range operation.VariableDefinitions {
		name := varDef.Variable
		t := varDef.Type
		val, ok := lookupVariable(variableValues, name)
		if !ok {
			if varDef.DefaultValue != nil {
				val = astValueToGo(varDef.DefaultValue)
			} else if t.NonNull {
				return nil, fmt.Errorf("variable $%s of required type %s was not provided", name, t.String())
			} else {
				continue
			}
		}
		if val == nil && t.NonNull {
			return nil, fmt.Errorf("variable $%s of type %s cannot be null", name, t.String())
		}
		cv, err := coerceValue(sch, val, typeRefFromAST(t))
		if err != nil {
			return nil, fmt.Errorf("variable $%s of type %s cannot be coerced: %v", name, t.String(), err)
		}
		coerced[name] = cv
	}
	return coerced, nil
}

// coerceArgumentValues coerces argument values for a field.
// It reports false when an error was recorded for the field.
func coerceArgumentValues(
	sch *schema.Schema,
	fieldDef *schema.Field,
	arguments language.ArgumentList,
	variableValues map[string]any,
	state *executionState,
	path Path,
) (map[string]any, bool) {
	coerced := make(map[string]any)
	ok := true
	for _, arg := range arguments {
		argDef := fieldDef.Argument(arg.Name)
		if argDef == nil {
			continue
		}
		val, provided := valueFromASTWithVars(arg.Value, variableValues)
		if !provided {
			continue
		}
		cv, err := coerceValue(sch, val, argDef.Type)
		if err != nil {
			state.addError(fmt.Sprintf("argument '%s' cannot be coerced: %v", arg.Name, err), path)
			ok = false
			continue
		}
		coerced[arg.Name] = cv
	}
	for _, argDef := range fieldDef.Arguments {
		name := argDef.Name
		if _, present := coerced[name]; present {
			continue
		}
		if argDef.DefaultValue != nil {
			cv, err := coerceValue(sch, argDef.DefaultValue, argDef.Type)
			if err != nil {
				state.addError(fmt.Sprintf("default value of argument '%s' cannot be coerced: %v", name, err), path)
				ok = false
				continue
			}
			coerced[name] = cv
		} else if schema.IsNonNull(argDef.Type) {
			state.addError(fmt.Sprintf("argument '%s' of required type was not provided", name), path)
			ok = false
		}
	}
	return coerced, ok
}

func lookupVariable(variableValues map[string]any, name string) (any, bool) {
	if v, ok := variableValues[name]; ok {
		return v, true
	}
	v, ok := variableValues[strings.TrimPrefix(name, "$")]
	return v, ok
}

// valueFromASTWithVars converts an AST value to a runtime value with variable substitution.
// It reports false for a variable that was not provided; object fields referring to
// such variables are left out.
func valueFromASTWithVars(value *language.Value, variableValues map[string]any) (any, bool) {
	if value == nil {
		return nil, false
	}
	switch value.Kind {
	case language.Variable:
		return lookupVariable(variableValues, value.Raw)
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i], _ = valueFromASTWithVars(c.Value, variableValues)
		}
		return out, true
	case language.ObjectValue:
		m := make(map[string]any, len(value.Children))
		for _, f := range value.Children {
			if v, ok := valueFromASTWithVars(f.Value, variableValues); ok {
				m[f.Name] = v
			}
		}
		return m, true
	default:
		return astValueToGo(value), true
	}
}

// astValueToGo converts an AST value to a Go value
func astValueToGo(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.EnumValue:
		return value.Raw
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = astValueToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any)
		for _, f := range value.Children {
			m[f.Name] = astValueToGo(f.Value)
		}
		return m
	default:
		return nil
	}
}

// coerceValue coerces a value to the specified GraphQL type
func coerceValue(sch *schema.Schema, value any, targetType *schema.TypeRef) (any, error) {
	// Handle Non-Null wrapper
	if schema.IsNonNull(targetType) {
		if value == nil {
			return nil, fmt.Errorf("cannot provide null for non-null type")
		}
		return coerceValue(sch, value, schema.Unwrap(targetType))
	}

	// Handle null for nullable types
	if value == nil {
		return nil, nil
	}

	// Handle List wrapper
	if schema.IsList(targetType) {
		return coerceListValue(sch, value, targetType)
	}

	// Get the named type for scalar coercion
	namedType := schema.GetNamedType(targetType)

	// Coerce based on target scalar type
	switch namedType {
	case "Int":
		return coerceToInt(value)
	case "Float":
		return coerceToFloat(value)
	case "String":
		return coerceToString(value)
	case "Boolean":
		return coerceToBoolean(value)
	case "ID":
		return coerceToID(value)
	}

	var typ *schema.Type
	if sch != nil {
		typ = sch.Types[namedType]
	}
	if typ == nil {
		return value, nil
	}
	switch typ.Kind {
	case schema.TypeKindInputObject:
		return coerceInputObject(sch, value, typ)
	case schema.TypeKindEnum:
		return coerceToEnum(value, typ)
	default:
		// custom scalars are passed through
		return value, nil
	}
}

// coerceInputObject coerces every declared field of an input object. Fields that are
// absent stay absent unless they have a default; explicit nulls are kept as nil.
func coerceInputObject(sch *schema.Schema, value any, typ *schema.Type) (any, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object for %s, got %T", typ.Name, value)
	}

	var unknown []string
	for name := range obj {
		if typ.InputField(name) == nil {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown field '%s' on %s", unknown[0], typ.Name)
	}

	out := make(map[string]any, len(obj))
	for _, f := range typ.InputFields {
		v, present := obj[f.Name]
		if !present {
			if f.DefaultValue != nil {
				v = f.DefaultValue
			} else if schema.IsNonNull(f.Type) {
				return nil, fmt.Errorf("required field '%s' of type %s was not provided", f.Name, f.Type)
			} else {
				continue
			}
		}
		cv, err := coerceValue(sch, v, f.Type)
		if err != nil {
			return nil, fmt.Errorf("field '%s' of %s: %w", f.Name, typ.Name, err)
		}
		out[f.Name] = cv
	}
	return out, nil
}

// coerceListValue coerces a value to a list
func coerceListValue(sch *schema.Schema, value any, listType *schema.TypeRef) (any, error) {
	// If already a slice, coerce each item
	if slice, ok := value.([]any); ok {
		innerType := schema.Unwrap(listType)
		coercedSlice := make([]any, len(slice))
		for i, item := range slice {
			coercedItem, err := coerceValue(sch, item, innerType)
			if err != nil {
				return nil, err
			}
			coercedSlice[i] = coercedItem
		}
		return coercedSlice, nil
	}

	// Single value becomes a list of one
	innerType := schema.Unwrap(listType)
	coercedItem, err := coerceValue(sch, value, innerType)
	if err != nil {
		return nil, err
	}
	return []any{coercedItem}, nil
}

func coerceToInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) {
			return int(v), nil
		}
	case float32:
		if float64(v) == math.Trunc(float64(v)) {
			return int(v), nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to int", value, value)
}

func coerceToFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to float", value, value)
}

func coerceToString(value any) (any, error) {
	if v, ok := value.(string); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to string", value, value)
}

func coerceToBoolean(value any) (any, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to boolean", value, value)
}

func coerceToID(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to ID", value, value)
}

func coerceToEnum(value any, typ *schema.Type) (any, error) {
	name, ok := value.(string)
	if ok {
		for _, ev := range typ.EnumValues {
			if ev.Name == name {
				return name, nil
			}
		}
	}
	return nil, fmt.Errorf("value %v is not a member of enum %s", value, typ.Name)
}
