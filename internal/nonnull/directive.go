package nonnull

import (
	"fmt"

	language "github.com/ephys/graphql-non-null-directive/internal/language"
	"github.com/ephys/graphql-non-null-directive/internal/schema"
)

// DefaultDirectiveName is the directive name used unless WithDirectiveName overrides it.
const DefaultDirectiveName = "nonNull"

const location = "INPUT_FIELD_DEFINITION"

type Options struct {
	// DirectiveName is both declared and matched on input fields.
	DirectiveName string

	// BuildInputError constructs the error returned for a null at a tagged path.
	// When nil, an *InputValidationError is returned.
	BuildInputError func(message string) error
}

type Option func(*Options)

func WithDirectiveName(name string) Option { return func(o *Options) { o.DirectiveName = name } }

func WithInputErrorBuilder(fn func(message string) error) Option {
	return func(o *Options) { o.BuildInputError = fn }
}

// Directive is a configured @nonNull directive.
type Directive struct {
	opt Options
}

func New(opts ...Option) *Directive {
	op := Options{DirectiveName: DefaultDirectiveName}
	for _, f := range opts {
		f(&op)
	}
	if op.DirectiveName == "" {
		op.DirectiveName = DefaultDirectiveName
	}
	return &Directive{opt: op}
}

// Name returns the directive name without the leading '@'.
func (d *Directive) Name() string { return d.opt.DirectiveName }

// Declaration returns the SDL declaration to merge into the schema source.
func (d *Directive) Declaration() string {
	return fmt.Sprintf("directive @%s on %s", d.opt.DirectiveName, location)
}

// Source wraps Declaration as a parser source.
func (d *Directive) Source() *language.Source {
	return &language.Source{Name: d.opt.DirectiveName + ".graphql", Input: d.Declaration()}
}

// Definition returns the declaration as a schema directive, for schemas built in code.
func (d *Directive) Definition() *schema.Directive {
	return schema.NewDirective(d.opt.DirectiveName, "The input field may be omitted, but cannot be null when provided.").
		AddLocation(location)
}

func (d *Directive) markerKey() string { return "@" + d.opt.DirectiveName }
