package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	schema "github.com/ephys/graphql-non-null-directive/internal/schema"
)

func newInputSchema() *schema.Schema {
	filter := schema.NewType("Filter", schema.TypeKindInputObject, "").
		AddInputField(schema.NewInputValue("name", "", schema.NamedType("String"))).
		AddInputField(schema.NewInputValue("limit", "", schema.NamedType("Int")).SetDefault(int64(10))).
		AddInputField(schema.NewInputValue("order", "", schema.NamedType("Order"))).
		AddInputField(schema.NewInputValue("nested", "", schema.NamedType("Filter")))
	order := schema.NewType("Order", schema.TypeKindEnum, "").
		AddEnumValue(schema.NewEnumValue("ASC", "")).
		AddEnumValue(schema.NewEnumValue("DESC", ""))
	query := newObjectType("Query",
		schema.NewField("search", "", schema.NamedType("String")).
			AddArgument(schema.NewInputValue("filter", "", schema.NamedType("Filter"))),
		schema.NewField("fail", "", schema.NamedType("String")),
	)
	return newSchemaWithQueryType(query, filter, order, newScalarType("String"), newScalarType("Int"))
}

type codedError struct{ msg string }

func (e *codedError) Error() string              { return e.msg }
func (e *codedError) Extensions() map[string]any { return map[string]any{"code": "BAD_USER_INPUT"} }

func TestInputObjectCoercion_ExplicitNullAndAbsence(t *testing.T) {
	sch := newInputSchema()

	for _, tc := range []struct {
		name     string
		query    string
		vars     map[string]any
		wantArgs map[string]any
	}{
		{
			name:     "literal null stays as a key",
			query:    `{ search(filter: {name: null}) }`,
			wantArgs: map[string]any{"filter": map[string]any{"name": nil, "limit": 10}},
		},
		{
			name:     "omitted field has no key",
			query:    `{ search(filter: {order: DESC}) }`,
			wantArgs: map[string]any{"filter": map[string]any{"order": "DESC", "limit": 10}},
		},
		{
			name:     "variable object keeps nulls",
			query:    `query($f: Filter) { search(filter: $f) }`,
			vars:     map[string]any{"f": map[string]any{"nested": nil, "limit": float64(3)}},
			wantArgs: map[string]any{"filter": map[string]any{"nested": nil, "limit": 3}},
		},
		{
			name:     "unset variable inside literal is omitted",
			query:    `query($n: String) { search(filter: {name: $n, nested: {}}) }`,
			wantArgs: map[string]any{"filter": map[string]any{"limit": 10, "nested": map[string]any{"limit": 10}}},
		},
		{
			name:     "unset variable argument is omitted",
			query:    `query($f: Filter) { search(filter: $f) }`,
			wantArgs: map[string]any{},
		},
		{
			name:     "null variable argument is kept",
			query:    `query($f: Filter) { search(filter: $f) }`,
			vars:     map[string]any{"f": nil},
			wantArgs: map[string]any{"filter": nil},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rt := NewMockRuntime(map[string]MockResolver{
				"Query.search": NewMockValueResolver("ok"),
			})
			exec := NewExecutor(rt, sch)
			res := exec.ExecuteRequest(context.Background(), mustParseQuery(t, tc.query), "", tc.vars, nil)
			require.Empty(t, res.Errors)

			calls := rt.GetCalls()
			require.Len(t, calls, 1)
			if diff := cmp.Diff(tc.wantArgs, calls[0].Args); diff != "" {
				t.Fatalf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInputObjectCoercion_Errors(t *testing.T) {
	sch := newInputSchema()

	for _, tc := range []struct {
		name    string
		query   string
		wantMsg string
	}{
		{
			name:    "unknown field",
			query:   `{ search(filter: {bogus: 1}) }`,
			wantMsg: "argument 'filter' cannot be coerced: unknown field 'bogus' on Filter",
		},
		{
			name:    "bad enum",
			query:   `{ search(filter: {order: SIDEWAYS}) }`,
			wantMsg: "argument 'filter' cannot be coerced: field 'order' of Filter: value SIDEWAYS is not a member of enum Order",
		},
		{
			name:    "not an object",
			query:   `{ search(filter: "x") }`,
			wantMsg: "argument 'filter' cannot be coerced: expected an object for Filter, got string",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rt := NewMockRuntime(map[string]MockResolver{
				"Query.search": NewMockValueResolver("ok"),
			})
			exec := NewExecutor(rt, sch)
			gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t, tc.query), "", nil, nil)

			wantRes := &ExecutionResult{
				Data:   map[string]any{"search": nil},
				Errors: []GraphQLError{{Message: tc.wantMsg, Path: Path{"search"}}},
			}
			if diff := cmp.Diff(wantRes, gotRes); diff != "" {
				t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
			}
			require.Empty(t, rt.GetCalls())
		})
	}
}

func TestResolverErrorExtensions(t *testing.T) {
	sch := newInputSchema()
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.search": NewMockErrorResolver(errors.New("plain")),
		"Query.fail":   NewMockErrorResolver(&codedError{msg: "filter.name cannot be null"}),
	})
	exec := NewExecutor(rt, sch)

	gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ search fail }`), "", nil, nil)
	wantRes := &ExecutionResult{
		Data: map[string]any{"search": nil, "fail": nil},
		Errors: []GraphQLError{
			{Message: "plain", Path: Path{"search"}},
			{Message: "filter.name cannot be null", Path: Path{"fail"}, Extensions: map[string]any{"code": "BAD_USER_INPUT"}},
		},
	}
	if diff := cmp.Diff(wantRes, gotRes); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}
