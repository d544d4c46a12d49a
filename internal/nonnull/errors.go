package nonnull

import (
	"fmt"
	"strings"

	language "github.com/ephys/graphql-non-null-directive/internal/language"
)

// ConfigurationError reports a schema the directive cannot be applied to.
// Either a tagged field is already Non-Null, or tagged fields sit behind a cycle
// of input types.
type ConfigurationError struct {
	Directive string
	// Type and Field name the tagged input field. Signature is its declared type.
	Type      string
	Field     string
	Signature string
	Position  *language.Position
	// Cycle lists the input types of a cycle, first type repeated at the end.
	Cycle []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Cycle) > 0 {
		return fmt.Sprintf("@%s: input types %s form a cycle that reaches a tagged field",
			e.Directive, strings.Join(e.Cycle, " -> "))
	}
	msg := fmt.Sprintf("@%s cannot be used on field %q of input type %q: its type %s is already non-null",
		e.Directive, e.Field, e.Type, e.Signature)
	if e.Position != nil && e.Position.Src != nil {
		msg += fmt.Sprintf(" (%s:%d:%d)", e.Position.Src.Name, e.Position.Line, e.Position.Column)
	}
	return msg
}

// InputValidationError is returned by a wrapped resolver when a tagged input is null.
type InputValidationError struct {
	Path    Path
	Message string
}

func (e *InputValidationError) Error() string { return e.Message }

// Extensions marks the error as a client input error in GraphQL responses.
func (e *InputValidationError) Extensions() map[string]any {
	return map[string]any{"code": "BAD_USER_INPUT"}
}
