package sdl

import (
	"fmt"

	language "github.com/ephys/graphql-non-null-directive/internal/language"
)

type Violation struct {
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

func (v *Violation) String() string {
	if v.File == "" {
		return v.Message
	}
	return fmt.Sprintf("%s %s:%d:%d", v.Message, v.File, v.Line, v.Column)
}

type ValidationError []*Violation

func (e ValidationError) Error() string {
	msg := "violations found:\n"
	for _, v := range e {
		msg += "- " + v.String() + "\n"
	}
	return msg
}

// violationsFrom converts parser and validator errors into violations.
func violationsFrom(err error) ValidationError {
	var out ValidationError
	for _, ge := range language.Errors(err) {
		v := &Violation{Message: ge.Message}
		if len(ge.Locations) > 0 {
			v.Line = ge.Locations[0].Line
			v.Column = ge.Locations[0].Column
			if name, ok := ge.Extensions["file"].(string); ok {
				v.File = name
			}
		}
		out = append(out, v)
	}
	return out
}
