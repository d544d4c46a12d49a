// Package schemart implements executor.Runtime on top of the resolvers attached
// to a schema.Schema.
package schemart

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/ephys/graphql-non-null-directive/internal/executor"
	"github.com/ephys/graphql-non-null-directive/internal/schema"
)

// Runtime dispatches every field to schema.Field.Resolver().
// Invariants and boundaries:
//   - Schema trust: the executor only asks for fields it found in the schema, so a
//     missing type or field is reported as an error for that field alone.
//   - Concurrency: BatchResolveAsync groups tasks by (objectType, field) and runs
//     groups in parallel. Resolvers must be safe for concurrent use.
//   - Determinism: results preserve input ordering; partial success is supported.
type Runtime struct {
	schema *schema.Schema
}

var _ executor.Runtime = (*Runtime)(nil)

func NewRuntime(s *schema.Schema) *Runtime {
	return &Runtime{schema: s}
}

// ResolveSync calls the field's resolver in the caller's goroutine.
func (r *Runtime) ResolveSync(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error) {
	return r.resolve(ctx, objectType, field, source, args)
}

// BatchResolveAsync resolves one depth of async fields.
//
// Tasks of the same (objectType, field) run sequentially in task order; distinct
// groups run in parallel. Results are written into the slot of their task.
func (r *Runtime) BatchResolveAsync(ctx context.Context, tasks []executor.AsyncResolveTask) []executor.AsyncResolveResult {
	results := make([]executor.AsyncResolveResult, len(tasks))
	if len(tasks) == 0 {
		return results
	}
	type groupKey struct {
		objectType string
		field      string
	}
	var groups [][]int
	idxByKey := map[groupKey]int{}
	for i, t := range tasks {
		k := groupKey{objectType: t.ObjectType, field: t.Field}
		if gi, ok := idxByKey[k]; ok {
			groups[gi] = append(groups[gi], i)
		} else {
			idxByKey[k] = len(groups)
			groups = append(groups, []int{i})
		}
	}
	run := func(idxs []int) {
		for _, i := range idxs {
			t := tasks[i]
			v, err := r.resolve(ctx, t.ObjectType, t.Field, t.Source, t.Args)
			results[i] = executor.AsyncResolveResult{Value: v, Error: err}
		}
	}

	if len(groups) > 1 {
		var wg sync.WaitGroup
		wg.Add(len(groups))
		for _, g := range groups {
			g := g
			go func() {
				defer wg.Done()
				run(g)
			}()
		}
		wg.Wait()
	} else {
		run(groups[0])
	}
	return results
}

func (r *Runtime) resolve(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error) {
	t := r.schema.Types[objectType]
	if t == nil {
		return nil, fmt.Errorf("unknown object type %q", objectType)
	}
	f := t.Field(field)
	if f == nil {
		return nil, fmt.Errorf("unknown field %q on type %q", field, objectType)
	}
	if args == nil {
		args = map[string]any{}
	}
	info := schema.ResolveInfo{ParentType: objectType, FieldName: field, ReturnType: f.Type}
	return f.Resolver().Resolve(ctx, source, args, info)
}

// ResolveType reads the "__typename" property of the value and checks it
// against the possible types of the abstract type.
func (r *Runtime) ResolveType(ctx context.Context, abstractType string, value any) (string, error) {
	name, _ := schema.Property(value, "__typename").(string)
	if name == "" {
		return "", fmt.Errorf("cannot resolve concrete type of %s from %T: missing __typename", abstractType, value)
	}
	at := r.schema.Types[abstractType]
	if at == nil {
		return "", fmt.Errorf("unknown abstract type %q", abstractType)
	}
	for _, pt := range at.PossibleTypes {
		if pt == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("type %q is not a possible type of %s", name, abstractType)
}

// ResolveUnionConcreteValue returns the value unchanged; union members are plain values.
func (r *Runtime) ResolveUnionConcreteValue(ctx context.Context, unionTypeName string, value any) (any, error) {
	return value, nil
}

// ResolveInterfaceConcreteValue returns the value unchanged.
func (r *Runtime) ResolveInterfaceConcreteValue(ctx context.Context, interfaceTypeName string, value any) (any, error) {
	return value, nil
}

// SerializeLeafValue converts resolver output into JSON-safe values. Numbers that
// came through encoding/json as float64 are turned back into integers for Int.
// Byte slices are base64-encoded.
func (r *Runtime) SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error) {
	switch scalarOrEnumTypeName {
	case "Int":
		switch v := value.(type) {
		case float64:
			if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
				return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %v", v)
			}
			return int(v), nil
		case string:
			return nil, fmt.Errorf("Int cannot represent non-integer value: %q", v)
		}
	case "Float":
		switch v := value.(type) {
		case int:
			return float64(v), nil
		case int32:
			return float64(v), nil
		case int64:
			return float64(v), nil
		}
	case "ID":
		switch v := value.(type) {
		case int:
			return strconv.Itoa(v), nil
		case int64:
			return strconv.FormatInt(v, 10), nil
		case float64:
			if v == math.Trunc(v) {
				return strconv.FormatInt(int64(v), 10), nil
			}
		}
	}
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string, bool, int, int32, int64, float32, float64:
		return v, nil
	case []byte:
		return base64.StdEncoding.EncodeToString(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return v, nil
	}
}
