package nonnull

import (
	"github.com/ephys/graphql-non-null-directive/internal/schema"
)

// Transform validates directive placement and wraps the resolver of every object
// field that has tagged argument paths. The schema is modified in place and returned.
//
// A schema already transformed for this directive name is returned unchanged.
// Concurrent calls on one schema are serialized and wrap resolvers once.
// On error no resolver has been replaced.
func (d *Directive) Transform(s *schema.Schema) (*schema.Schema, error) {
	_, err := s.Transform(d.markerKey(), func() error {
		found, err := d.discover(s)
		if err != nil {
			return err
		}
		for _, fp := range found {
			fp.field.SetResolver(&resolver{
				next:       fp.field.Resolver(),
				paths:      fp.Paths,
				buildError: d.opt.BuildInputError,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
