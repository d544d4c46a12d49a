package executor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	schema "github.com/ephys/graphql-non-null-directive/internal/schema"
)

func newUsersSchema() *schema.Schema {
	user := newObjectType("User",
		schema.NewField("id", "", schema.NonNullType(schema.NamedType("ID"))),
		schema.NewField("name", "", schema.NonNullType(schema.NamedType("String"))),
		schema.NewField("email", "", schema.NamedType("String")).SetAsync(true),
		schema.NewField("manager", "", schema.NamedType("User")).SetAsync(true),
	).AddInterface("Node")
	node := schema.NewType("Node", schema.TypeKindInterface, "").
		AddField(schema.NewField("id", "", schema.NonNullType(schema.NamedType("ID")))).
		AddPossibleType("User")
	query := newObjectType("Query",
		schema.NewField("viewer", "", schema.NonNullType(schema.NamedType("User"))),
		schema.NewField("users", "", schema.ListType(schema.NonNullType(schema.NamedType("User")))),
		schema.NewField("node", "", schema.NamedType("Node")).
			AddArgument(schema.NewInputValue("id", "", schema.NonNullType(schema.NamedType("ID")))),
	)
	mutation := newObjectType("Mutation",
		schema.NewField("updateUser", "", schema.NamedType("User")).
			AddArgument(schema.NewInputValue("input", "", schema.NonNullType(schema.NamedType("UpdateUserInput")))),
	)
	principal := schema.NewType("Principal", schema.TypeKindUnion, "").AddPossibleType("User")
	input := schema.NewType("UpdateUserInput", schema.TypeKindInputObject, "").
		AddInputField(schema.NewInputValue("id", "", schema.NonNullType(schema.NamedType("ID")))).
		AddInputField(schema.NewInputValue("name", "", schema.NamedType("String")))

	sch := newSchemaWithQueryType(query, mutation, user, node, principal, input,
		newScalarType("ID"), newScalarType("String"))
	sch.SetMutationType("Mutation")
	return sch
}

func prop(name string) MockResolver {
	return func(_ context.Context, source any, _ map[string]any) (any, error) {
		return schema.Property(source, name), nil
	}
}

func userResolvers(overrides map[string]MockResolver) map[string]MockResolver {
	rs := map[string]MockResolver{
		"User.id":      prop("id"),
		"User.name":    prop("name"),
		"User.email":   prop("email"),
		"User.manager": prop("manager"),
	}
	for k, v := range overrides {
		rs[k] = v
	}
	return rs
}

func callKeys(calls []Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = fmt.Sprintf("%s.%s#%d", c.ObjectType, c.Field, c.BatchID)
	}
	return out
}

func TestAsyncFieldsBatchPerDepth(t *testing.T) {
	users := []any{
		map[string]any{"id": "1", "email": "ada@example.com", "manager": map[string]any{"name": "Grace"}},
		map[string]any{"id": "2", "email": "alan@example.com"},
	}
	rt := NewMockRuntime(userResolvers(map[string]MockResolver{"Query.users": NewMockValueResolver(users)}))
	exec := NewExecutor(rt, newUsersSchema())

	res := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ users { id email manager { name } } }`), "", nil, nil)

	want := &ExecutionResult{
		Data: map[string]any{"users": []any{
			map[string]any{"id": "1", "email": "ada@example.com", "manager": map[string]any{"name": "Grace"}},
			map[string]any{"id": "2", "email": "alan@example.com", "manager": nil},
		}},
		Errors: []GraphQLError{},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}

	wantCalls := []string{
		"Query.users#0",
		"User.id#0",
		"User.id#0",
		"User.email#1",
		"User.manager#1",
		"User.email#1",
		"User.manager#1",
		"User.name#0",
	}
	if diff := cmp.Diff(wantCalls, callKeys(rt.GetCalls())); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestNonNullPropagation(t *testing.T) {
	rt := NewMockRuntime(userResolvers(map[string]MockResolver{
		"Query.viewer": NewMockValueResolver(map[string]any{"id": "1"}),
	}))
	exec := NewExecutor(rt, newUsersSchema())

	res := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ viewer { id name } }`), "", nil, nil)
	want := &ExecutionResult{
		Data: map[string]any{"viewer": nil},
		Errors: []GraphQLError{
			{Message: "Cannot return null for non-nullable field viewer.name", Path: Path{"viewer", "name"}},
		},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestAsyncErrorPath(t *testing.T) {
	users := []any{map[string]any{"id": "1"}, map[string]any{"id": "2"}}
	rt := NewMockRuntime(userResolvers(map[string]MockResolver{
		"Query.users": NewMockValueResolver(users),
		"User.email": func(_ context.Context, source any, _ map[string]any) (any, error) {
			if schema.Property(source, "id") == "2" {
				return nil, errors.New("email hidden")
			}
			return "ada@example.com", nil
		},
	}))
	exec := NewExecutor(rt, newUsersSchema())

	res := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ users { email } }`), "", nil, nil)
	want := &ExecutionResult{
		Data: map[string]any{"users": []any{
			map[string]any{"email": "ada@example.com"},
			map[string]any{"email": nil},
		}},
		Errors: []GraphQLError{{Message: "email hidden", Path: Path{"users", 1, "email"}}},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestMutationsRunSeriallyWithExplicitNulls(t *testing.T) {
	rt := NewMockRuntime(userResolvers(map[string]MockResolver{
		"Mutation.updateUser": func(_ context.Context, _ any, args map[string]any) (any, error) {
			input := args["input"].(map[string]any)
			return map[string]any{"id": input["id"]}, nil
		},
	}))
	exec := NewExecutor(rt, newUsersSchema())

	doc := mustParseQuery(t, `mutation {
  a: updateUser(input: {id: 1, name: null}) { id }
  b: updateUser(input: {id: "2"}) { id }
  c: updateUser { id }
}`)
	res := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

	want := &ExecutionResult{
		Data: map[string]any{
			"a": map[string]any{"id": "1"},
			"b": map[string]any{"id": "2"},
			"c": nil,
		},
		Errors: []GraphQLError{{Message: "argument 'input' of required type was not provided", Path: Path{"c"}}},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}

	var mutations []map[string]any
	for _, c := range rt.GetCalls() {
		if c.ObjectType == "Mutation" {
			mutations = append(mutations, c.Args)
		}
	}
	wantArgs := []map[string]any{
		{"input": map[string]any{"id": "1", "name": nil}},
		{"input": map[string]any{"id": "2"}},
	}
	if diff := cmp.Diff(wantArgs, mutations); diff != "" {
		t.Fatalf("mutation args mismatch (-want +got):\n%s", diff)
	}
}

func TestAbstractTypeResolution(t *testing.T) {
	rt := NewMockRuntime(userResolvers(map[string]MockResolver{
		"Query.node": func(_ context.Context, _ any, args map[string]any) (any, error) {
			return map[string]any{"__typename": "User", "id": args["id"], "name": "Ada"}, nil
		},
	}))
	exec := NewExecutor(rt, newUsersSchema())

	doc := mustParseQuery(t, `query($id: ID!) { node(id: $id) { __typename id ... on User { name } } }`)
	res := exec.ExecuteRequest(context.Background(), doc, "", map[string]any{"id": float64(7)}, nil)
	want := &ExecutionResult{
		Data:   map[string]any{"node": map[string]any{"__typename": "User", "id": "7", "name": "Ada"}},
		Errors: []GraphQLError{},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestFragmentsOnAbstractTypes(t *testing.T) {
	rt := NewMockRuntime(userResolvers(map[string]MockResolver{
		"Query.viewer": NewMockValueResolver(map[string]any{"id": "1", "name": "Ada"}),
	}))
	exec := NewExecutor(rt, newUsersSchema())

	tests := []struct {
		name  string
		query string
		want  map[string]any
	}{
		{
			name:  "inline interface",
			query: `{ viewer { ... on Node { id } } }`,
			want:  map[string]any{"id": "1"},
		},
		{
			name:  "named interface",
			query: `{ viewer { ...NodeID } } fragment NodeID on Node { id }`,
			want:  map[string]any{"id": "1"},
		},
		{
			name:  "inline union",
			query: `{ viewer { ... on Principal { name } } }`,
			want:  map[string]any{"name": "Ada"},
		},
		{
			name:  "named union",
			query: `{ viewer { id ...PrincipalName } } fragment PrincipalName on Principal { name }`,
			want:  map[string]any{"id": "1", "name": "Ada"},
		},
		{
			name:  "unrelated condition",
			query: `{ viewer { id ... on Query { users { id } } } }`,
			want:  map[string]any{"id": "1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := exec.ExecuteRequest(context.Background(), mustParseQuery(t, tt.query), "", nil, nil)
			require.Empty(t, res.Errors)
			if diff := cmp.Diff(map[string]any{"viewer": tt.want}, res.Data); diff != "" {
				t.Fatalf("data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOperationSelection(t *testing.T) {
	rt := NewMockRuntime(userResolvers(map[string]MockResolver{
		"Query.viewer": NewMockValueResolver(map[string]any{"id": "1", "name": "Ada"}),
	}))
	exec := NewExecutor(rt, newUsersSchema())
	doc := mustParseQuery(t, `query A { viewer { id } } query B { viewer { name } }`)

	res := exec.ExecuteRequest(context.Background(), doc, "B", nil, nil)
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"viewer": map[string]any{"name": "Ada"}}, res.Data)

	res = exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
	require.Equal(t, []GraphQLError{{Message: "operation not found"}}, res.Errors)
}

func TestVariableErrors(t *testing.T) {
	exec := NewExecutor(NewMockRuntime(nil), newUsersSchema())
	doc := mustParseQuery(t, `query($id: ID!) { node(id: $id) { id } }`)

	res := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
	require.Equal(t, []GraphQLError{{Message: "variable $id of required type ID! was not provided"}}, res.Errors)

	res = exec.ExecuteRequest(context.Background(), doc, "", map[string]any{"id": nil}, nil)
	require.Equal(t, []GraphQLError{{Message: "variable $id of type ID! cannot be null"}}, res.Errors)
}

func TestSkipAndInclude(t *testing.T) {
	rt := NewMockRuntime(userResolvers(map[string]MockResolver{
		"Query.viewer": NewMockValueResolver(map[string]any{"id": "1", "name": "Ada"}),
	}))
	exec := NewExecutor(rt, newUsersSchema())
	doc := mustParseQuery(t, `query($full: Boolean!) {
  viewer { id name @include(if: $full) ...F @skip(if: $full) }
}
fragment F on User { email }`)

	res := exec.ExecuteRequest(context.Background(), doc, "", map[string]any{"full": false}, nil)
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"viewer": map[string]any{"id": "1", "email": nil}}, res.Data)
}
