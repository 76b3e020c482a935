// Package format names the LLSD wire formats and detects which one a
// buffer carries.
package format

import (
	"bytes"
	"errors"
	"fmt"
)

type Format int

const (
	BinaryFormat Format = iota
	XMLFormat
	NotationFormat
)

var (
	ErrBadFormat = errors.New("format not recognized")
	ErrNotation  = errors.New("llsd notation format is not supported")
)

// Wire sentinels. BinaryHeader opens every full binary message;
// XMLHeader is the XML declaration token that opens a text message;
// NotationHeader identifies the unsupported notation syntax.
var (
	BinaryHeader   = []byte("<? LLSD/Binary ?>\n")
	XMLHeader      = []byte("<?xml")
	NotationHeader = []byte("<?llsd/notation?>")
)

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"b":        BinaryFormat,
		"binary":   BinaryFormat,
		"x":        XMLFormat,
		"xml":      XMLFormat,
		"n":        NotationFormat,
		"notation": NotationFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case BinaryFormat:
		return []byte("binary"), nil
	case XMLFormat:
		return []byte("xml"), nil
	case NotationFormat:
		return []byte("notation"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsBinary() bool   { return f == BinaryFormat }
func (f Format) IsXML() bool      { return f == XMLFormat }
func (f Format) IsNotation() bool { return f == NotationFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case BinaryFormat:
		return ".llsd"
	case XMLFormat:
		return ".xml"
	default:
		return ""
	}
}

// AllFormats returns all formats in detection order.
func AllFormats() []Format {
	return []Format{BinaryFormat, XMLFormat, NotationFormat}
}

// Sniff inspects the leading bytes of a buffer and reports which wire
// format it carries. A bracket pair with room for a framed composite
// (tag, 4-byte count, terminator) is taken as headerless binary; the
// caller is expected to fall back to text detection if that decode
// fails, since short text payloads can match the same shape.
func Sniff(d []byte) (Format, error) {
	if bytes.HasPrefix(d, BinaryHeader) {
		return BinaryFormat, nil
	}
	if HeaderlessBinary(d) {
		return BinaryFormat, nil
	}
	t := bytes.TrimSpace(d)
	if bytes.HasPrefix(t, XMLHeader) {
		return XMLFormat, nil
	}
	if bytes.HasPrefix(t, NotationHeader) {
		return NotationFormat, nil
	}
	return 0, ErrBadFormat
}

// HeaderlessBinary reports whether d looks like a binary composite
// without the sentinel: matching outer bracket pair plus the minimum
// framed length of an empty composite.
func HeaderlessBinary(d []byte) bool {
	const minFramed = 6 // tag + 4-byte count + terminator
	if len(d) < minFramed {
		return false
	}
	first, last := d[0], d[len(d)-1]
	return (first == '{' && last == '}') || (first == '[' && last == ']')
}
