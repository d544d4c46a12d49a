package sdl

import (
	"context"
	"fmt"

	language "github.com/ephys/graphql-non-null-directive/internal/language"
	"github.com/ephys/graphql-non-null-directive/internal/schema"
)

// LoadSources reads every discovered file and returns them as parser sources, followed by extra.
// Each file is parsed on its own so syntax errors point at the right file.
func LoadSources(ctx context.Context, d Discovery, extra ...*language.Source) ([]*language.Source, error) {
	files, err := d.ListMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schema files: %w", err)
	}

	var violations ValidationError
	sources := make([]*language.Source, 0, len(files)+len(extra))
	for _, f := range files {
		content, err := d.ReadSDL(ctx, f.Name)
		if err != nil {
			return nil, err
		}
		if _, err := language.ParseSchema(f.Path, content); err != nil {
			violations = append(violations, violationsFrom(err)...)
			continue
		}
		sources = append(sources, &language.Source{Name: f.Path, Input: content})
	}
	if len(violations) > 0 {
		return nil, violations
	}
	return append(sources, extra...), nil
}

// Build loads and validates the discovered SDL and converts it into an executable schema.
func Build(ctx context.Context, d Discovery, extra ...*language.Source) (*schema.Schema, error) {
	sources, err := LoadSources(ctx, d, extra...)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, ValidationError{{Message: "no schema files found"}}
	}
	s, err := schema.BuildFromSources(sources...)
	if err != nil {
		return nil, violationsFrom(err)
	}
	return s, nil
}
