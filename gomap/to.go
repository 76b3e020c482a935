package gomap

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/llsd-format/go-llsd/ir"
)

// ToIR converts a Go value to an LLSD tree.
//
// Mapping: bool -> Bool; signed and unsigned integers -> Integer
// (values outside the 32-bit range are an error, not truncated);
// floats -> Real; string -> String; []byte -> Binary; uuid.UUID ->
// UUID; time.Time -> Date (truncated to seconds); maps with string
// keys -> Map (sorted key order, for deterministic output); slices and
// arrays -> Array; structs -> Map over exported fields, renamed by the
// `llsd` tag, skipped by `llsd:"-"`; nil pointers and interfaces ->
// Undef. An *ir.Node passes through unchanged.
func ToIR(v interface{}) (*ir.Node, error) {
	if v == nil {
		return ir.Undef(), nil
	}
	return toIR(reflect.ValueOf(v), "")
}

func toIR(val reflect.Value, fieldPath string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Undef(), nil
	}
	if val.CanInterface() {
		switch v := val.Interface().(type) {
		case *ir.Node:
			if v == nil {
				return ir.Undef(), nil
			}
			return v, nil
		case uuid.UUID:
			return ir.FromUUID(v), nil
		case time.Time:
			return ir.FromDate(v.Unix()), nil
		case []byte:
			return ir.FromBinary(v), nil
		}
	}

	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return ir.Undef(), nil
		}
		return toIR(val.Elem(), fieldPath)
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := val.Int()
		if i < math.MinInt32 || i > math.MaxInt32 {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("%d overflows the 32-bit LLSD integer", i),
			}
		}
		return ir.FromInt(int32(i)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt32 {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("%d overflows the 32-bit LLSD integer", u),
			}
		}
		return ir.FromInt(int32(u)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromReal(val.Float()), nil
	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Slice, reflect.Array:
		node := &ir.Node{Type: ir.ArrayType}
		node.Values = make([]*ir.Node, val.Len())
		for i := 0; i < val.Len(); i++ {
			child, err := toIR(val.Index(i), fmt.Sprintf("%s[%d]", fieldPath, i))
			if err != nil {
				return nil, err
			}
			node.Values[i] = child
		}
		return node, nil
	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("map key type %s is not a string", val.Type().Key()),
			}
		}
		node := ir.NewMap()
		keys := make([]string, 0, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			keys = append(keys, iter.Key().String())
		}
		slices.Sort(keys)
		for _, key := range keys {
			child, err := toIR(val.MapIndex(reflect.ValueOf(key).Convert(val.Type().Key())), joinPath(fieldPath, key))
			if err != nil {
				return nil, err
			}
			node.Set(key, child)
		}
		return node, nil
	case reflect.Struct:
		node := ir.NewMap()
		t := val.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue // unexported
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("llsd"); ok {
				if tag == "-" {
					continue
				}
				if tag != "" {
					name = tag
				}
			}
			child, err := toIR(val.Field(i), joinPath(fieldPath, name))
			if err != nil {
				return nil, err
			}
			node.Set(name, child)
		}
		return node, nil
	default:
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported Go type %s", val.Type()),
		}
	}
}

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}
