// Package executor runs GraphQL operations against a schema.Schema breadth-first,
// delegating field resolution, abstract type resolution and leaf serialization to
// a Runtime.
//
// # Preparation
//
// Before execution the executor:
//  1. Chooses the operation, by name or as the only one in the document.
//  2. Coerces variables against the operation's variable definitions. Errors here
//     stop execution and are returned without data.
//  3. Collects the root selection set of the Query, Mutation or Subscription type.
//
// # Input Coercion
//
// Arguments and variables are coerced with the schema: built-in scalars are
// checked, enum values must be members of their enum, and input objects are
// coerced field by field with defaults applied and required fields enforced.
//
// Coerced values keep the difference between an explicit null and an omitted
// value. An explicit null becomes a present map key with a nil value; an omitted
// argument, an omitted input field, or a variable that was not provided, has no
// key. Resolvers such as the @nonNull wrapper depend on that distinction.
//
// # Execution Model
//
// A field is synchronous or asynchronous according to schema.Field.Async.
// Synchronous fields are resolved immediately through Runtime.ResolveSync and
// their object results expand in place without increasing depth. Asynchronous
// fields found while expanding a depth are queued and resolved together by a
// single Runtime.BatchResolveAsync call once the depth is drained:
//
//	A. Expand the current selection sets, resolving sync fields and queuing async ones.
//	B. Call BatchResolveAsync once with every live queued task, in order.
//	C. Complete the results. Object results provide the selections of the next depth.
//	D. Repeat until nothing is queued.
//
// For an operation of asynchronous depth d, BatchResolveAsync is called exactly
// d times.
//
// # Value Completion
//
//   - Non-Null: a null inner value is a violation that propagates to the nearest
//     nullable ancestor; queued tasks under the nullified path are dropped.
//   - List: elements complete with index-aware paths.
//   - Leaf: Runtime.SerializeLeafValue produces a JSON-safe value.
//   - Abstract: Runtime.ResolveType picks the concrete object type, which must
//     exist in the schema.
//   - Object: sub-selections are collected and executed as above.
//
// # Errors and Partial Success
//
// Errors are accumulated as located GraphQL errors (message, path). Errors
// returned by a resolver that implement Extensions() map[string]any keep those
// extensions in the response. Batch results are independent, so one failing
// task does not affect the others.
//
// Fragment type conditions only match the concrete object type name; matching
// through interfaces and unions is not implemented.
package executor
