// Package llsd is a codec library for LLSD, a self-describing typed
// structured-data format with two interchangeable wire representations:
// a compact binary encoding and an XML text encoding. Both decode to
// and encode from the same value tree, and round trip losslessly.
//
// # Overview
//
// The value tree lives in the ir package. The binary and xml packages
// are mirror images over it: each provides Decode and Encode, and
// decode(encode(v)) == v for every representable value (Reals round
// trip bit-exactly, including NaN). This package's Parse is the
// format-detection dispatcher: it inspects a buffer's leading bytes and
// routes to the right decoder.
//
//	node, err := llsd.Parse(data)
//	if err != nil {
//	    return err
//	}
//	out, err := binary.Encode(node)
//
// The caller may re-serialize through either codec independently of how
// the tree was decoded.
//
// A third LLSD syntax, the notation format, is intentionally not
// implemented: Parse recognizes its sentinel and fails cleanly with
// format.ErrNotation.
//
// # Concurrency
//
// All decode and encode calls are pure, synchronous transformations of
// the caller's buffer. No state is shared between calls, so concurrent
// use on independent inputs needs no coordination. Recursion is bounded
// by a maximum nesting depth; exceeding it is a decode error, not a
// crash.
//
// # Packages
//
//   - github.com/llsd-format/go-llsd/ir - the value tree
//   - github.com/llsd-format/go-llsd/binary - binary wire codec
//   - github.com/llsd-format/go-llsd/xml - XML text codec
//   - github.com/llsd-format/go-llsd/format - format names and sniffing
//   - github.com/llsd-format/go-llsd/gomap - Go value conversion
package llsd
