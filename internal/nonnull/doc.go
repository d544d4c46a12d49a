// Package nonnull implements the @nonNull input directive.
//
// A tagged input field may be omitted from a request, but a client that supplies
// it cannot pass the null literal. GraphQL itself only distinguishes required
// non-null fields from optional nullable ones; the directive adds the third state
// without changing the schema grammar.
//
// # Usage
//
// The directive declaration has to be part of the SDL the schema is built from:
//
//	d := nonnull.New()
//	s, err := sdl.Build(ctx, discovery, d.Source())
//	...
//	s, err = d.Transform(s)
//
// Transform runs once per schema at startup:
//  1. Every input field carrying the directive is checked to be nullable. A tagged
//     field declared with a Non-Null type is a *ConfigurationError.
//  2. For every field of every object type, the arguments are walked through nested
//     input objects to collect the paths that end at a tagged field. One outer
//     Non-Null wrapper is removed at each step; list types are never entered.
//  3. Fields with at least one path get a resolver that checks the paths, shortest
//     first, before delegating to the previous resolver. Other fields keep their
//     resolver untouched.
//
// # Enforcement
//
// At request time an explicit null at the end of a path, or at any object along
// it, fails the field with "<path> cannot be null" and the original resolver is
// not called. A missing key is not a violation, so an optional wrapper object can
// be left out while its tagged fields are still enforced when it is sent.
//
// Explicit null and absence are told apart by the argument maps: a present key
// with a nil value is an explicit null.
package nonnull
