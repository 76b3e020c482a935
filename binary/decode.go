package binary

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/llsd-format/go-llsd/format"
	"github.com/llsd-format/go-llsd/ir"
)

// maxDepth bounds recursion so adversarial nesting is a decode error,
// not a stack overflow.
const maxDepth = 1000

// Decode decodes a full binary message: the sentinel is validated
// byte-for-byte, then exactly one value must consume the rest of the
// buffer.
func Decode(d []byte) (*ir.Node, error) {
	if !bytes.HasPrefix(d, format.BinaryHeader) {
		return nil, fmt.Errorf("%w: input does not begin with %q", ErrHeader, format.BinaryHeader)
	}
	dec := &decoder{d: d, off: len(format.BinaryHeader)}
	return dec.finish()
}

// DecodeValue decodes a headerless value, for binary data embedded in
// framing that strips the sentinel. The value must consume the whole
// buffer.
func DecodeValue(d []byte) (*ir.Node, error) {
	dec := &decoder{d: d}
	return dec.finish()
}

// ReadValue decodes one headerless value from the front of d and
// returns the number of bytes consumed, allowing further framing to be
// read after it.
func ReadValue(d []byte) (*ir.Node, int, error) {
	dec := &decoder{d: d}
	n, err := dec.value(0)
	if err != nil {
		return nil, 0, err
	}
	return n, dec.off, nil
}

type decoder struct {
	d   []byte
	off int
}

func (dec *decoder) finish() (*ir.Node, error) {
	n, err := dec.value(0)
	if err != nil {
		return nil, err
	}
	if dec.off != len(dec.d) {
		return nil, fmt.Errorf("%w: %d bytes after value at offset %d",
			ErrTrailing, len(dec.d)-dec.off, dec.off)
	}
	return n, nil
}

func (dec *decoder) byte(what string) (byte, error) {
	if dec.off >= len(dec.d) {
		return 0, fmt.Errorf("%w: expected %s at offset %d", ErrTruncated, what, dec.off)
	}
	b := dec.d[dec.off]
	dec.off++
	return b, nil
}

func (dec *decoder) take(n int, what string) ([]byte, error) {
	if len(dec.d)-dec.off < n {
		return nil, fmt.Errorf("%w: need %d bytes for %s at offset %d, have %d",
			ErrTruncated, n, what, dec.off, len(dec.d)-dec.off)
	}
	b := dec.d[dec.off : dec.off+n]
	dec.off += n
	return b, nil
}

func (dec *decoder) u32(what string) (uint32, error) {
	b, err := dec.take(4, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (dec *decoder) u64(what string) (uint64, error) {
	b, err := dec.take(8, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// str reads a 4-byte big-endian length followed by that many UTF-8
// bytes.
func (dec *decoder) str(what string) (string, error) {
	n, err := dec.u32(what + " length")
	if err != nil {
		return "", err
	}
	b, err := dec.take(int(n), what)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %s at offset %d", ErrUTF8, what, dec.off-len(b))
	}
	return string(b), nil
}

func (dec *decoder) value(depth int) (*ir.Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w (%d) at offset %d", ErrMaxDepth, maxDepth, dec.off)
	}
	tagOff := dec.off
	tag, err := dec.byte("type tag")
	if err != nil {
		return nil, err
	}
	switch tag {
	case '!':
		return ir.Undef(), nil
	case '0':
		return ir.FromBool(false), nil
	case '1':
		return ir.FromBool(true), nil
	case 'i':
		u, err := dec.u32("integer")
		if err != nil {
			return nil, err
		}
		return ir.FromInt(int32(u)), nil
	case 'r':
		u, err := dec.u64("real")
		if err != nil {
			return nil, err
		}
		return ir.FromReal(math.Float64frombits(u)), nil
	case 'u':
		b, err := dec.take(16, "uuid")
		if err != nil {
			return nil, err
		}
		var u uuid.UUID
		copy(u[:], b)
		return ir.FromUUID(u), nil
	case 'd':
		u, err := dec.u64("date")
		if err != nil {
			return nil, err
		}
		return ir.FromDate(int64(u)), nil
	case 's':
		s, err := dec.str("string")
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	case 'l':
		s, err := dec.str("uri")
		if err != nil {
			return nil, err
		}
		return ir.FromURI(s), nil
	case 'b':
		n, err := dec.u32("binary length")
		if err != nil {
			return nil, err
		}
		b, err := dec.take(int(n), "binary")
		if err != nil {
			return nil, err
		}
		res := make([]byte, len(b))
		copy(res, b)
		return ir.FromBinary(res), nil
	case '{':
		return dec.decodeMap(depth)
	case '[':
		return dec.decodeArray(depth)
	default:
		return nil, fmt.Errorf("%w: %q at offset %d", ErrUnknownTag, tag, tagOff)
	}
}

func (dec *decoder) decodeMap(depth int) (*ir.Node, error) {
	count, err := dec.u32("map entry count")
	if err != nil {
		return nil, err
	}
	node := ir.NewMap()
	for i := uint32(0); i < count; i++ {
		kOff := dec.off
		kb, err := dec.byte("map key marker")
		if err != nil {
			return nil, err
		}
		if kb != 'k' {
			return nil, fmt.Errorf("%w: expected key marker 'k', found %q at offset %d",
				ErrUnknownTag, kb, kOff)
		}
		key, err := dec.str("map key")
		if err != nil {
			return nil, err
		}
		val, err := dec.value(depth + 1)
		if err != nil {
			return nil, err
		}
		// duplicate keys replace; last write wins
		node.Set(key, val)
	}
	return node, dec.terminator('}', "map")
}

func (dec *decoder) decodeArray(depth int) (*ir.Node, error) {
	count, err := dec.u32("array entry count")
	if err != nil {
		return nil, err
	}
	// each entry needs at least one byte, so the remaining buffer
	// bounds a sane preallocation for hostile counts
	node := &ir.Node{
		Type:   ir.ArrayType,
		Values: make([]*ir.Node, 0, min(int(count), len(dec.d)-dec.off)),
	}
	for i := uint32(0); i < count; i++ {
		v, err := dec.value(depth + 1)
		if err != nil {
			return nil, err
		}
		node.Values = append(node.Values, v)
	}
	return node, dec.terminator(']', "array")
}

func (dec *decoder) terminator(want byte, what string) error {
	tOff := dec.off
	b, err := dec.byte(what + " terminator")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTerminator, err)
	}
	if b != want {
		return fmt.Errorf("%w: expected %s terminator %q, found %q at offset %d",
			ErrTerminator, what, want, b, tOff)
	}
	return nil
}
