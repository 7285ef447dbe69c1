// Package dynval models the dynamically typed value graph that a host hands
// to the configuration marshaler.
//
// A [Value] is an immutable tagged union over:
//
//   - scalars: null, int, float, bool, string
//   - tuples: fixed-arity sequences of values
//   - arrays: rank-N homogeneous arrays with an explicit [ElemType] and shape
//   - maps: ordered sequences of key/value [Entry] pairs
//
// The marshaler never builds values, it only inspects them through the
// query methods on [Value] and [Array]. Hosts build them with the
// constructors in this package or with one of the adapters:
//
//	v, err := dynval.FromYAML(data)          // gopkg.in/yaml.v3 documents
//	v, err := dynval.FromAny(map[string]any{ // native Go graphs
//		"cutoff": 2.5,
//	})
//
// Map iteration follows the order the host produced. The YAML adapter keeps
// document order; the native adapter sorts Go map keys.
package dynval
