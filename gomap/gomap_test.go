package gomap

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/llsd-format/go-llsd/ir"
)

type region struct {
	Name     string    `llsd:"name"`
	ID       uuid.UUID `llsd:"id"`
	Agents   int32     `llsd:"agents"`
	Ratio    float64   `llsd:"ratio"`
	Online   bool      `llsd:"online"`
	Seen     time.Time `llsd:"seen"`
	Payload  []byte    `llsd:"payload"`
	Tags     []string  `llsd:"tags"`
	Internal string    `llsd:"-"`
	Plain    string
}

func sampleRegion() region {
	return region{
		Name:    "Ahern",
		ID:      uuid.MustParse("67153d5b-3659-afb4-8510-adda2c034649"),
		Agents:  12,
		Ratio:   0.75,
		Online:  true,
		Seen:    time.Unix(1138804193, 0).UTC(),
		Payload: []byte{0x0f, 0xa1},
		Tags:    []string{"mainland", "pg"},
	}
}

func TestStructRoundTrip(t *testing.T) {
	in := sampleRegion()
	in.Internal = "dropped"

	node, err := ToIR(in)
	if err != nil {
		t.Fatal(err)
	}
	if node.Type != ir.MapType {
		t.Fatalf("expected map, got %s", node.Type)
	}
	if node.Get("Internal") != nil || node.Get("-") != nil {
		t.Fatal("skipped field was marshaled")
	}
	if node.Get("name") == nil || node.Get("Plain") == nil {
		t.Fatalf("missing fields in %v", node.Fields)
	}

	var out region
	if err := FromIR(node, &out); err != nil {
		t.Fatal(err)
	}
	want := sampleRegion()
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("round trip mismatch:\n%s", diff)
	}
}

func TestToIRScalars(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want *ir.Node
	}{
		{"nil", nil, ir.Undef()},
		{"nil pointer", (*int)(nil), ir.Undef()},
		{"bool", true, ir.FromBool(true)},
		{"int", 42, ir.FromInt(42)},
		{"uint16", uint16(7), ir.FromInt(7)},
		{"float", 1.5, ir.FromReal(1.5)},
		{"string", "hi", ir.FromString("hi")},
		{"bytes", []byte{1, 2}, ir.FromBinary([]byte{1, 2})},
		{"uuid", uuid.Nil, ir.FromUUID(uuid.Nil)},
		{"time", time.Unix(99, 0), ir.FromDate(99)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ToIR(c.in)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, c.want) {
				t.Fatalf("mismatch: %s", cmp.Diff(c.want, got))
			}
		})
	}
}

func TestToIRMapSortedKeys(t *testing.T) {
	node, err := ToIR(map[string]int{"b": 2, "a": 1, "c": 3})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, node.Fields); diff != "" {
		t.Fatalf("keys not sorted:\n%s", diff)
	}
}

func TestToIROverflow(t *testing.T) {
	type wide struct {
		N int64 `llsd:"n"`
	}
	_, err := ToIR(wide{N: 1 << 40})
	var me *MarshalError
	if !errors.As(err, &me) {
		t.Fatalf("expected MarshalError, got %v", err)
	}
	if me.FieldPath != "n" {
		t.Fatalf("expected field path %q, got %q", "n", me.FieldPath)
	}
}

func TestToIRUnsupported(t *testing.T) {
	_, err := ToIR(map[int]string{1: "a"})
	var me *MarshalError
	if !errors.As(err, &me) {
		t.Fatalf("expected MarshalError, got %v", err)
	}
}

func TestFromIROverflow(t *testing.T) {
	var n int8
	err := FromIR(ir.FromInt(300), &n)
	var ue *UnmarshalError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnmarshalError, got %v", err)
	}

	var u uint32
	if err := FromIR(ir.FromInt(-1), &u); !errors.As(err, &ue) {
		t.Fatalf("expected UnmarshalError for negative into uint, got %v", err)
	}
}

func TestFromIRTypeMismatchPath(t *testing.T) {
	type inner struct {
		N int `llsd:"n"`
	}
	type outer struct {
		In inner `llsd:"in"`
	}
	node := ir.NewMap().Set("in", ir.NewMap().Set("n", ir.FromString("oops")))
	var out outer
	err := FromIR(node, &out)
	var ue *UnmarshalError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnmarshalError, got %v", err)
	}
	if ue.FieldPath != "in.n" {
		t.Fatalf("expected field path %q, got %q", "in.n", ue.FieldPath)
	}
}

func TestFromIREmptyInterface(t *testing.T) {
	node := ir.NewMap().
		Set("u", ir.Undef()).
		Set("n", ir.FromInt(9)).
		Set("d", ir.FromDate(0)).
		Set("xs", ir.FromSlice([]*ir.Node{ir.FromBool(true)}))
	var got interface{}
	if err := FromIR(node, &got); err != nil {
		t.Fatal(err)
	}
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map[string]interface{}, got %T", got)
	}
	if m["u"] != nil {
		t.Fatalf("undef should decode to nil, got %v", m["u"])
	}
	if v, ok := m["n"].(int32); !ok || v != 9 {
		t.Fatalf("expected int32 9, got %#v", m["n"])
	}
	if d, ok := m["d"].(time.Time); !ok || !d.Equal(time.Unix(0, 0)) {
		t.Fatalf("expected epoch time, got %#v", m["d"])
	}
	if xs, ok := m["xs"].([]interface{}); !ok || len(xs) != 1 || xs[0] != true {
		t.Fatalf("expected [true], got %#v", m["xs"])
	}
}

func TestFromIRNodePassThrough(t *testing.T) {
	src := ir.NewMap().Set("k", ir.FromBinary([]byte{1}))
	var dst *ir.Node
	if err := FromIR(src, &dst); err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(src, dst) {
		t.Fatal("node destination should receive an equal tree")
	}
	dst.Get("k").Binary[0] = 9
	if src.Get("k").Binary[0] != 1 {
		t.Fatal("node destination must be a deep copy")
	}
}

func TestFromIRPointerTargets(t *testing.T) {
	var p *int
	if err := FromIR(ir.FromInt(5), &p); err != nil {
		t.Fatal(err)
	}
	if p == nil || *p != 5 {
		t.Fatalf("expected *int 5, got %v", p)
	}
	if err := FromIR(ir.Undef(), &p); err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Fatalf("undef should nil the pointer, got %v", *p)
	}
}

func TestFromIRBadDestination(t *testing.T) {
	if err := FromIR(ir.FromInt(1), nil); err == nil {
		t.Fatal("expected error for nil destination")
	}
	var n int
	err := FromIR(ir.FromInt(1), n)
	if err == nil || !strings.Contains(err.Error(), "pointer") {
		t.Fatalf("expected pointer error, got %v", err)
	}
}
