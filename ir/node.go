package ir

import (
	"slices"

	"github.com/google/uuid"
)

// Node is a single value in an LLSD tree. It is a tagged union: Type
// selects the variant and the matching payload field holds the value.
// Composite nodes own their children exclusively; a tree is finite and
// acyclic with no back references.
type Node struct {
	Type Type

	Bool   bool
	Int    int32
	Real   float64
	String string // payload for both StringType and URIType
	UUID   uuid.UUID
	Date   int64 // seconds since the Unix epoch
	Binary []byte

	// Composites. For MapType, Fields[i] is the key for Values[i] and
	// keys are unique (Set replaces). For ArrayType, Fields is nil and
	// Values holds the elements in order.
	Fields []string
	Values []*Node
}

func Undef() *Node {
	return &Node{Type: UndefType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int32) *Node {
	return &Node{Type: IntegerType, Int: v}
}

func FromReal(v float64) *Node {
	return &Node{Type: RealType, Real: v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromURI(v string) *Node {
	return &Node{Type: URIType, String: v}
}

func FromUUID(v uuid.UUID) *Node {
	return &Node{Type: UUIDType, UUID: v}
}

func FromDate(secs int64) *Node {
	return &Node{Type: DateType, Date: secs}
}

func FromBinary(d []byte) *Node {
	return &Node{Type: BinaryType, Binary: d}
}

func NewMap() *Node {
	return &Node{Type: MapType}
}

// FromMap builds a map node with keys in sorted order so that output is
// deterministic for programmatically built trees.
func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: MapType}
	res.Fields = make([]string, 0, len(m))
	res.Values = make([]*Node, 0, len(m))
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		res.Fields = append(res.Fields, key)
		res.Values = append(res.Values, m[key])
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds a map node preserving the order of kvs. Duplicate
// keys replace earlier entries.
func FromKeyVals(kvs []KeyVal) *Node {
	res := NewMap()
	for i := range kvs {
		res.Set(kvs[i].Key, kvs[i].Val)
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	return &Node{Type: ArrayType, Values: vs}
}

// Get returns the value for field in a map node, or nil if absent.
func (n *Node) Get(field string) *Node {
	for i := range n.Fields {
		if n.Fields[i] == field {
			return n.Values[i]
		}
	}
	return nil
}

// Set inserts a key/value pair into a map node. A duplicate key replaces
// the earlier value; last write wins.
func (n *Node) Set(field string, v *Node) *Node {
	for i := range n.Fields {
		if n.Fields[i] == field {
			n.Values[i] = v
			return n
		}
	}
	n.Fields = append(n.Fields, field)
	n.Values = append(n.Values, v)
	return n
}

// Append adds an element to an array node.
func (n *Node) Append(v *Node) *Node {
	n.Values = append(n.Values, v)
	return n
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Type = n.Type
	dst.Bool = n.Bool
	dst.Int = n.Int
	dst.Real = n.Real
	dst.String = n.String
	dst.UUID = n.UUID
	dst.Date = n.Date
	if n.Binary != nil {
		dst.Binary = make([]byte, len(n.Binary))
		copy(dst.Binary, n.Binary)
	}
	if n.Fields != nil {
		dst.Fields = make([]string, len(n.Fields))
		copy(dst.Fields, n.Fields)
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

// Visit walks the tree top-down. f is called with isPost=false before a
// node's children and isPost=true after them; returning false from the
// pre call skips the children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}
