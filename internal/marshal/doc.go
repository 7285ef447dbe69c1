// Package marshal populates a statically described configuration tree from
// a dynamic value graph.
//
// For every key of a map the marshaler looks for, in order:
//
//   - a property of the current section: the value goes through the
//     coercion table and is written into the property's slot
//   - a child section: the value must be a map, the child is marked
//     provided and the walk recurses into it
//   - a reserved key (prefix "__"): ignored
//
// Anything else fails with [ErrUnknownKey].
//
// # Errors
//
// The first failure aborts the walk. It is returned as an [*Error] naming
// the key, the enclosing section and the expected input, and wraps one of
// the Err* sentinels so callers can use [errors.Is]. An unrecognised
// property variant is a schema bug and panics with [ErrInternalSchema].
//
// # Atomicity
//
// Marshaling is not transactional. Slots written and sections marked
// provided before a failure keep their new state, and which ones those are
// depends on the map's iteration order. A single property is all or
// nothing: its slot is written only after its whole value validated.
//
// # Thread Safety
//
// A Marshaler holds no per-call state, but the slots it writes belong to
// the schema. Never marshal into the same schema tree from two goroutines.
package marshal
