package nonnull

import "github.com/ephys/graphql-non-null-directive/internal/schema"

// WrapDepth counts the null-checking wrappers around r.
func WrapDepth(r schema.FieldResolver) int {
	n := 0
	for {
		w, ok := r.(*resolver)
		if !ok {
			return n
		}
		n++
		r = w.next
	}
}
