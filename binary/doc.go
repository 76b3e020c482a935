// Package binary implements the LLSD binary wire codec.
//
// A full message is the fixed sentinel "<? LLSD/Binary ?>\n" followed
// by one value. Every value starts with a single type tag byte; fixed
// width fields are big-endian; strings, URIs, binary payloads and map
// keys carry a 4-byte big-endian length prefix. Maps and arrays carry a
// 4-byte entry count after their opening tag and are closed by a
// literal '}' or ']' terminator, which the decoder verifies.
//
// Each map key is additionally preceded by a literal 'k' byte. This is
// a non-obvious framing detail of the wire contract: earlier iterations
// of the format used a plain length-prefixed key, so implementations
// interoperating at the byte level must emit and expect the marker.
//
// Decoding never reads past the supplied buffer; truncated input,
// unknown tags and terminator mismatches are errors carrying the byte
// offset and the conflicting token.
package binary
