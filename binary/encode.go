package binary

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/llsd-format/go-llsd/format"
	"github.com/llsd-format/go-llsd/ir"
)

// Encode encodes a full binary message: sentinel followed by one value.
// The node is only read; encoding never mutates the tree.
func Encode(node *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.Write(format.BinaryHeader)
	if err := encodeValue(buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeValue encodes a headerless value, the mirror of DecodeValue.
func EncodeValue(node *ir.Node) ([]byte, error) {
	return AppendValue(nil, node)
}

// AppendValue appends the headerless encoding of node to dst, for
// embedding values inside other framing.
func AppendValue(dst []byte, node *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	if err := encodeValue(buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, node *ir.Node) error {
	if node == nil {
		return fmt.Errorf("cannot encode nil node")
	}
	switch node.Type {
	case ir.UndefType:
		buf.WriteByte('!')
	case ir.BoolType:
		if node.Bool {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	case ir.IntegerType:
		buf.WriteByte('i')
		writeU32(buf, uint32(node.Int))
	case ir.RealType:
		buf.WriteByte('r')
		writeU64(buf, math.Float64bits(node.Real))
	case ir.UUIDType:
		buf.WriteByte('u')
		buf.Write(node.UUID[:])
	case ir.DateType:
		buf.WriteByte('d')
		writeU64(buf, uint64(node.Date))
	case ir.StringType:
		buf.WriteByte('s')
		if err := writeBytes(buf, []byte(node.String), "string"); err != nil {
			return err
		}
	case ir.URIType:
		buf.WriteByte('l')
		if err := writeBytes(buf, []byte(node.String), "uri"); err != nil {
			return err
		}
	case ir.BinaryType:
		buf.WriteByte('b')
		if err := writeBytes(buf, node.Binary, "binary"); err != nil {
			return err
		}
	case ir.MapType:
		buf.WriteByte('{')
		writeU32(buf, uint32(len(node.Fields)))
		for i, key := range node.Fields {
			buf.WriteByte('k')
			if err := writeBytes(buf, []byte(key), "map key"); err != nil {
				return err
			}
			if err := encodeValue(buf, node.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case ir.ArrayType:
		buf.WriteByte('[')
		writeU32(buf, uint32(len(node.Values)))
		for _, v := range node.Values {
			if err := encodeValue(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("cannot encode node of type %s", node.Type)
	}
	return nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeBytes(buf *bytes.Buffer, d []byte, what string) error {
	if len(d) > math.MaxUint32 {
		return fmt.Errorf("%w: %s of %d bytes", ErrTooLong, what, len(d))
	}
	writeU32(buf, uint32(len(d)))
	buf.Write(d)
	return nil
}
