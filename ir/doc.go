// Package ir provides the in-memory representation for LLSD values.
//
// # Overview
//
// All LLSD data, whether decoded from the binary wire form or the XML
// text form, is represented as a tree of ir.Node values. The Node is a
// closed tagged union: the Type field selects one of the eleven LLSD
// variants and the matching payload field holds the value. Both codecs
// perform exhaustive matching over Type, so adding a variant is a
// compile-time-visible change in every codec.
//
// # Node Types
//
//   - UndefType: the unit value
//   - BoolType: boolean
//   - IntegerType: 32-bit signed integer
//   - RealType: 64-bit IEEE-754 float (NaN is representable)
//   - UUIDType: 16-byte identifier
//   - StringType: text
//   - URIType: text, semantically distinct from String
//   - DateType: signed 64-bit seconds since the Unix epoch
//   - BinaryType: opaque byte sequence
//   - MapType: text keys to child values, unique keys, order not significant
//   - ArrayType: ordered sequence of child values
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromReal(1.5),
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.FromBool(true)})
//
// Maps can also be built incrementally with Set, which replaces the
// value of an existing key (last write wins, never an error):
//
//	m := ir.NewMap().Set("a", ir.FromInt(1)).Set("a", ir.FromInt(2))
//
// # Structure Constraints
//
// For MapType nodes, Fields[i] is the key for the value at Values[i],
// so there are always as many fields as values and keys are unique at
// any instant. For ArrayType nodes Fields is nil. A tree is finite and
// acyclic; every composite exclusively owns its children.
//
// Iteration order of map entries follows insertion order, but neither
// codec guarantees a byte-for-byte stable encoding of maps with the
// same keys: key order is not part of the data model. Use Equal, which
// compares maps independently of key order.
//
// # Comparison and Hashing
//
// Equal reports structural equality; Reals compare by bit pattern so
// NaN round trips are comparable. Compare provides a total order and
// Hash a 64-bit hash consistent with Equal.
//
// # Thread Safety
//
// Node trees are not synchronized. Decode and encode calls never share
// state, so concurrent use on independent trees needs no coordination;
// sharing one tree across goroutines requires the caller to synchronize
// or Clone.
//
// # Related Packages
//
//   - github.com/llsd-format/go-llsd/binary - binary wire codec
//   - github.com/llsd-format/go-llsd/xml - XML text codec
//   - github.com/llsd-format/go-llsd/gomap - Go value conversion
package ir
