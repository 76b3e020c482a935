package ir

import (
	"bytes"
	"cmp"
	"math"
	"sort"
	"strings"
)

// Equal reports structural equality: same variant at every node,
// recursively. Map equality is independent of key order. Reals compare
// by IEEE-754 bit pattern, so NaN equals NaN and -0 differs from +0.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case UndefType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case IntegerType:
		return a.Int == b.Int
	case RealType:
		return math.Float64bits(a.Real) == math.Float64bits(b.Real)
	case UUIDType:
		return a.UUID == b.UUID
	case StringType, URIType:
		return a.String == b.String
	case DateType:
		return a.Date == b.Date
	case BinaryType:
		return bytes.Equal(a.Binary, b.Binary)
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case MapType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, key := range a.Fields {
			bv := b.Get(key)
			if bv == nil || !Equal(a.Values[i], bv) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// The order is total: Undef < Bool < Integer < Real < UUID < String <
// URI < Date < Binary < Array < Map, then payload within a variant.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.Type != b.Type {
		return cmp.Compare(a.Type, b.Type)
	}

	switch a.Type {
	case UndefType:
		return 0
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case IntegerType:
		return cmp.Compare(a.Int, b.Int)
	case RealType:
		if math.Float64bits(a.Real) == math.Float64bits(b.Real) {
			return 0
		}
		if math.IsNaN(a.Real) {
			return -1
		}
		if math.IsNaN(b.Real) {
			return 1
		}
		return cmp.Compare(a.Real, b.Real)
	case UUIDType:
		return bytes.Compare(a.UUID[:], b.UUID[:])
	case StringType, URIType:
		return strings.Compare(a.String, b.String)
	case DateType:
		return cmp.Compare(a.Date, b.Date)
	case BinaryType:
		return bytes.Compare(a.Binary, b.Binary)
	case ArrayType:
		return compareArrays(a, b)
	case MapType:
		return compareMaps(a, b)
	}
	return 0
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)
	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// compareMaps compares entries in key order, so the result does not
// depend on insertion order.
func compareMaps(a, b *Node) int {
	ka := sortedKeyIndex(a)
	kb := sortedKeyIndex(b)
	minLen := min(len(ka), len(kb))
	for i := 0; i < minLen; i++ {
		if c := strings.Compare(a.Fields[ka[i]], b.Fields[kb[i]]); c != 0 {
			return c
		}
		if c := Compare(a.Values[ka[i]], b.Values[kb[i]]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ka), len(kb))
}

func sortedKeyIndex(n *Node) []int {
	idx := make([]int, len(n.Fields))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return n.Fields[idx[i]] < n.Fields[idx[j]]
	})
	return idx
}
