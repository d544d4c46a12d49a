package executor

import (
	"context"
	"fmt"
	"sync"
	"testing"

	language "github.com/ephys/graphql-non-null-directive/internal/language"
	schema "github.com/ephys/graphql-non-null-directive/internal/schema"
)

// MockResolver resolves one field value for MockRuntime.
type MockResolver func(ctx context.Context, source any, args map[string]any) (any, error)

func NewMockValueResolver(val any) MockResolver {
	return func(context.Context, any, map[string]any) (any, error) { return val, nil }
}

func NewMockErrorResolver(err error) MockResolver {
	return func(context.Context, any, map[string]any) (any, error) { return nil, err }
}

// Call records one field resolution. Async calls of the same flush share a
// BatchID greater than zero.
type Call struct {
	ObjectType string
	Field      string
	Source     any
	Args       map[string]any
	BatchID    int
}

// MockRuntime resolves "Type.field" keys from a map and logs every call.
type MockRuntime struct {
	mu        sync.Mutex
	resolvers map[string]MockResolver
	calls     []Call
	batches   int
}

var _ Runtime = (*MockRuntime)(nil)

func NewMockRuntime(resolvers map[string]MockResolver) *MockRuntime {
	return &MockRuntime{resolvers: resolvers}
}

func (m *MockRuntime) call(ctx context.Context, c Call) (any, error) {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	r := m.resolvers[c.ObjectType+"."+c.Field]
	m.mu.Unlock()
	if r == nil {
		return nil, nil
	}
	return r(ctx, c.Source, c.Args)
}

func (m *MockRuntime) ResolveSync(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error) {
	return m.call(ctx, Call{ObjectType: objectType, Field: field, Source: source, Args: args})
}

func (m *MockRuntime) BatchResolveAsync(ctx context.Context, tasks []AsyncResolveTask) []AsyncResolveResult {
	m.mu.Lock()
	m.batches++
	id := m.batches
	m.mu.Unlock()

	out := make([]AsyncResolveResult, len(tasks))
	for i, t := range tasks {
		v, err := m.call(ctx, Call{ObjectType: t.ObjectType, Field: t.Field, Source: t.Source, Args: t.Args, BatchID: id})
		out[i] = AsyncResolveResult{Value: v, Error: err}
	}
	return out
}

func (m *MockRuntime) ResolveType(_ context.Context, abstractType string, value any) (string, error) {
	if name, ok := schema.Property(value, "__typename").(string); ok {
		return name, nil
	}
	return "", fmt.Errorf("cannot resolve type of %s", abstractType)
}

func (m *MockRuntime) ResolveUnionConcreteValue(_ context.Context, _ string, value any) (any, error) {
	return value, nil
}

func (m *MockRuntime) ResolveInterfaceConcreteValue(_ context.Context, _ string, value any) (any, error) {
	return value, nil
}

func (m *MockRuntime) SerializeLeafValue(_ context.Context, _ string, value any) (any, error) {
	return value, nil
}

func (m *MockRuntime) GetCalls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

func newSchemaWithQueryType(query *schema.Type, additional ...*schema.Type) *schema.Schema {
	sch := schema.NewSchema("")
	sch.SetQueryType(query.Name)
	sch.AddType(query)
	for _, t := range additional {
		sch.AddType(t)
	}
	return sch
}

func newObjectType(name string, fields ...*schema.Field) *schema.Type {
	t := schema.NewType(name, schema.TypeKindObject, "")
	for _, field := range fields {
		t.AddField(field)
	}
	return t
}

func newScalarType(name string) *schema.Type {
	return schema.NewType(name, schema.TypeKindScalar, "")
}
