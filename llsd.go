package llsd

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/llsd-format/go-llsd/binary"
	"github.com/llsd-format/go-llsd/format"
	"github.com/llsd-format/go-llsd/ir"
	"github.com/llsd-format/go-llsd/xml"
)

// ErrInvalidUTF8 reports input that is neither binary LLSD nor valid
// UTF-8 text.
var ErrInvalidUTF8 = errors.New("input is not valid utf-8")

// snippetRunes bounds the diagnostic excerpt included in a
// format-not-recognized error.
const snippetRunes = 60

// Parse inspects a buffer and decodes it with whichever codec matches.
//
// Detection order: the binary sentinel (decode errors are then final,
// no fallback); a headerless binary composite, recognized by its outer
// bracket pair (a failed decode here falls back to text detection,
// since short text payloads can match the same shape); the XML
// declaration. Notation-format input is recognized and rejected. Input
// matching nothing fails with a bounded excerpt of the buffer.
func Parse(d []byte) (*ir.Node, error) {
	if bytes.HasPrefix(d, format.BinaryHeader) {
		return binary.Decode(d)
	}
	if format.HeaderlessBinary(d) {
		if n, err := binary.DecodeValue(d); err == nil {
			return n, nil
		}
	}
	if !utf8.Valid(d) {
		return nil, fmt.Errorf("%w: not binary LLSD and not decodable as text", ErrInvalidUTF8)
	}
	text := bytes.TrimSpace(d)
	if bytes.HasPrefix(text, format.XMLHeader) {
		return xml.Decode(d)
	}
	if bytes.HasPrefix(text, format.NotationHeader) {
		return nil, format.ErrNotation
	}
	return nil, fmt.Errorf("%w: %q", format.ErrBadFormat, snippet(string(text), snippetRunes))
}

// Detect reports which wire format d carries, without decoding it.
func Detect(d []byte) (format.Format, error) {
	return format.Sniff(d)
}

// snippet truncates s to at most max codepoints, never splitting a
// multi-byte character.
func snippet(s string, max int) string {
	count := 0
	for i := range s {
		count++
		if count > max {
			return s[:i] + "..."
		}
	}
	return s
}
