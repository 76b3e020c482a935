package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// shared seed so hashes are stable across calls within a process
var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node, consistent with Equal: equal
// trees hash equally regardless of map key order.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteByte(byte(n.Type))

	var b [8]byte
	switch n.Type {
	case UndefType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case IntegerType:
		binary.LittleEndian.PutUint32(b[:4], uint32(n.Int))
		h.Write(b[:4])
	case RealType:
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(n.Real))
		h.Write(b[:])
	case UUIDType:
		h.Write(n.UUID[:])
	case StringType, URIType:
		h.WriteString(n.String)
	case DateType:
		binary.LittleEndian.PutUint64(b[:], uint64(n.Date))
		h.Write(b[:])
	case BinaryType:
		h.Write(n.Binary)
	case ArrayType:
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case MapType:
		// Entry hashes are combined with addition so the result is
		// independent of key order, matching Equal.
		var sum uint64
		for i, key := range n.Fields {
			var eh maphash.Hash
			eh.SetSeed(hashSeed)
			eh.WriteString(key)
			binary.LittleEndian.PutUint64(b[:], n.Values[i].Hash())
			eh.Write(b[:])
			sum += eh.Sum64()
		}
		binary.LittleEndian.PutUint64(b[:], sum)
		h.Write(b[:])
	}
	return h.Sum64()
}
