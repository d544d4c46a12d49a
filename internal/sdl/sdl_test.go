package sdl_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	language "github.com/ephys/graphql-non-null-directive/internal/language"
	"github.com/ephys/graphql-non-null-directive/internal/sdl"
)

const nonNullDecl = `directive @nonNull on INPUT_FIELD_DEFINITION`

func TestBuildInMemory(t *testing.T) {
	d := sdl.NewInMemoryDiscovery(
		sdl.InMemoryFile{Name: "query.graphql", Content: `type Query { user(input: UserInput): String }`},
		sdl.InMemoryFile{Name: "input.graphql", Content: `input UserInput { name: String @nonNull }`},
	)

	s, err := sdl.Build(context.Background(), d, &language.Source{Name: "nonnull.graphql", Input: nonNullDecl})
	require.NoError(t, err)
	require.Equal(t, "Query", s.QueryType)

	input := s.Types["UserInput"]
	require.NotNil(t, input)
	name := input.InputField("name")
	require.NotNil(t, name)
	require.True(t, name.HasDirective("nonNull"))
	require.NotNil(t, name.Position)
	require.Equal(t, "input.graphql", name.Position.Src.Name)
}

func TestBuildReportsUndeclaredDirective(t *testing.T) {
	d := sdl.NewInMemoryDiscovery(
		sdl.InMemoryFile{Name: "schema.graphql", Content: `
type Query { user(input: UserInput): String }
input UserInput { name: String @nonNull }
`},
	)

	_, err := sdl.Build(context.Background(), d)
	require.Error(t, err)

	var verr sdl.ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr)
	require.Contains(t, verr[0].Message, "nonNull")
	require.Equal(t, 3, verr[0].Line)
}

func TestLoadSourcesReportsSyntaxErrorsPerFile(t *testing.T) {
	d := sdl.NewInMemoryDiscovery(
		sdl.InMemoryFile{Name: "a.graphql", Content: `type Query { a: String }`},
		sdl.InMemoryFile{Name: "b.graphql", Content: `type Broken {`},
	)

	_, err := sdl.LoadSources(context.Background(), d)
	var verr sdl.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr, 1)
	require.Equal(t, "b.graphql", verr[0].File)
}

func TestBuildWithoutFiles(t *testing.T) {
	_, err := sdl.Build(context.Background(), sdl.NewInMemoryDiscovery())
	require.EqualError(t, err, "violations found:\n- no schema files found\n")
}

func TestFileSystemDiscovery(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "users"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "query.graphql"), []byte(`type Query { ping: String }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "users", "user.graphqls"), []byte(`type User { id: ID! }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte(`not a schema`), 0o644))

	d, err := sdl.NewFileSystemDiscovery(root)
	require.NoError(t, err)

	files, err := d.ListMetadata(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "query.graphql", files[0].Name)
	require.Equal(t, "users/user.graphqls", files[1].Name)

	content, err := d.ReadSDL(context.Background(), "users/user.graphqls")
	require.NoError(t, err)
	require.Equal(t, `type User { id: ID! }`, content)

	_, err = d.ReadSDL(context.Background(), "missing.graphql")
	require.Error(t, err)

	s, err := sdl.Build(context.Background(), d)
	require.NoError(t, err)
	require.NotNil(t, s.Types["User"])
}

func TestFileSystemDiscoveryRequiresRoot(t *testing.T) {
	_, err := sdl.NewFileSystemDiscovery("")
	require.Error(t, err)
}
