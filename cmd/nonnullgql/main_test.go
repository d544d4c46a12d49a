package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ephys/graphql-non-null-directive/internal/nonnull"
)

const usersSDL = `type Query {
  user(id: ID!): User
}

type Mutation {
  updateUser(input: UpdateUserInput!): User
}

type User {
  id: ID!
  firstName: String
}

input UpdateUserInput {
  firstName: String @nonNull
  address: AddressInput
}

input AddressInput {
  city: String @nonNull
}
`

func writeSchema(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDirectiveCommand(t *testing.T) {
	out, err := execute(t, "directive")
	require.NoError(t, err)
	require.Equal(t, "directive @nonNull on INPUT_FIELD_DEFINITION\n", out)

	out, err = execute(t, "directive", "--directive-name", "notNull")
	require.NoError(t, err)
	require.Equal(t, "directive @notNull on INPUT_FIELD_DEFINITION\n", out)
}

func TestPathsCommand(t *testing.T) {
	dir := writeSchema(t, map[string]string{"users.graphql": usersSDL})
	out, err := execute(t, "paths", "--schema", dir)
	require.NoError(t, err)
	require.Equal(t, "Mutation.updateUser: input.firstName\nMutation.updateUser: input.address.city\n", out)
}

func TestCompileSDLCommand(t *testing.T) {
	dir := writeSchema(t, map[string]string{"users.graphql": usersSDL})
	out, err := execute(t, "compile-sdl", "--schema", dir)
	require.NoError(t, err)
	require.Contains(t, out, "directive @nonNull on INPUT_FIELD_DEFINITION")
	require.Contains(t, out, "firstName: String @nonNull")
}

func TestMisplacedDirective(t *testing.T) {
	dir := writeSchema(t, map[string]string{"bad.graphql": `type Query { f(input: In): String }
input In { name: String! @nonNull }
`})
	_, err := execute(t, "paths", "--schema", dir)
	var cfgErr *nonnull.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
	require.Equal(t, "In", cfgErr.Type)
	require.Equal(t, "name", cfgErr.Field)
}

func TestSchemaFlagRequired(t *testing.T) {
	_, err := execute(t, "paths")
	require.EqualError(t, err, "--schema is required")
}

func TestConfigFile(t *testing.T) {
	dir := writeSchema(t, map[string]string{"users.graphql": usersSDL})
	cfg := filepath.Join(t.TempDir(), "nonnullgql.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("schema: "+dir+"\n"), 0o644))

	out, err := execute(t, "paths", "--config", cfg)
	require.NoError(t, err)
	require.Contains(t, out, "Mutation.updateUser: input.firstName")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("NONNULLGQL_DIRECTIVE_NAME", "required")
	out, err := execute(t, "directive")
	require.NoError(t, err)
	require.Equal(t, "directive @required on INPUT_FIELD_DEFINITION\n", out)
}

func TestServeHandler(t *testing.T) {
	dir := writeSchema(t, map[string]string{"users.graphql": usersSDL})
	a := appOf(t, "serve", "--schema", dir,
		"--root-value", `{"user": {"id": 1, "firstName": "Ada"}, "updateUser": {"id": 1, "firstName": "Grace"}}`)

	h, err := a.handler(context.Background())
	require.NoError(t, err)

	post := func(query string) string {
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query": `+query+`}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		return rec.Body.String()
	}

	require.JSONEq(t, `{"data": {"user": {"id": "1", "firstName": "Ada"}}}`,
		post(`"{ user(id: 1) { id firstName } }"`))

	require.JSONEq(t, `{"data": {"updateUser": {"firstName": "Grace"}}}`,
		post(`"mutation { updateUser(input: {address: {}}) { firstName } }"`))

	body := post(`"mutation { updateUser(input: {address: {city: null}}) { firstName } }"`)
	require.Contains(t, body, `"input.address.city cannot be null"`)
	require.Contains(t, body, `"BAD_USER_INPUT"`)

	require.JSONEq(t, `{"data": {"__type": {"name": "UpdateUserInput"}}}`,
		post(`"{ __type(name: \"UpdateUserInput\") { name } }"`))
}

func TestRootValue(t *testing.T) {
	v, err := rootValue("")
	require.NoError(t, err)
	require.Equal(t, map[string]any{}, v)

	file := filepath.Join(t.TempDir(), "root.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"a": true}`), 0o644))
	v, err = rootValue("@" + file)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": true}, v)

	_, err = rootValue("{")
	require.ErrorContains(t, err, "parse root value")
}

// appOf parses args and initializes a fresh app without running the command.
func appOf(t *testing.T, args ...string) *app {
	t.Helper()
	a := newApp()
	cmd, rest, err := a.rootCmd().Find(args)
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags(rest))
	require.NoError(t, a.init(cmd))
	return a
}
