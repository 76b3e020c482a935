package gomap

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/llsd-format/go-llsd/ir"
)

// FromIR converts an LLSD tree to a Go value. v must be a non-nil
// pointer to the target. The mapping mirrors ToIR; Undef nodes set the
// target to its zero value.
func FromIR(node *ir.Node, v interface{}) error {
	if v == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return &UnmarshalError{Message: "destination must be a non-nil pointer"}
	}
	return fromIR(node, val.Elem(), "")
}

func fromIR(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node == nil {
		return &UnmarshalError{FieldPath: fieldPath, Message: "source node is nil"}
	}

	if val.Type() == reflect.TypeOf((*ir.Node)(nil)) {
		val.Set(reflect.ValueOf(node.Clone()))
		return nil
	}
	if val.CanAddr() {
		switch dst := val.Addr().Interface().(type) {
		case *uuid.UUID:
			if node.Type != ir.UUIDType {
				return typeErr(fieldPath, ir.UUIDType, node.Type)
			}
			*dst = node.UUID
			return nil
		case *time.Time:
			if node.Type != ir.DateType {
				return typeErr(fieldPath, ir.DateType, node.Type)
			}
			*dst = time.Unix(node.Date, 0).UTC()
			return nil
		case *[]byte:
			if node.Type != ir.BinaryType {
				return typeErr(fieldPath, ir.BinaryType, node.Type)
			}
			*dst = make([]byte, len(node.Binary))
			copy(*dst, node.Binary)
			return nil
		}
	}

	switch val.Kind() {
	case reflect.Ptr:
		if node.Type == ir.UndefType {
			val.Set(reflect.Zero(val.Type()))
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		return fromIR(node, val.Elem(), fieldPath)
	case reflect.Interface:
		if val.NumMethod() != 0 {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot unmarshal into non-empty interface %s", val.Type()),
			}
		}
		g := toGo(node)
		if g == nil {
			val.Set(reflect.Zero(val.Type()))
			return nil
		}
		val.Set(reflect.ValueOf(g))
		return nil
	case reflect.Bool:
		if node.Type != ir.BoolType {
			return typeErr(fieldPath, ir.BoolType, node.Type)
		}
		val.SetBool(node.Bool)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if node.Type != ir.IntegerType {
			return typeErr(fieldPath, ir.IntegerType, node.Type)
		}
		if val.OverflowInt(int64(node.Int)) {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("%d overflows %s", node.Int, val.Type()),
			}
		}
		val.SetInt(int64(node.Int))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if node.Type != ir.IntegerType {
			return typeErr(fieldPath, ir.IntegerType, node.Type)
		}
		if node.Int < 0 || val.OverflowUint(uint64(node.Int)) {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("%d overflows %s", node.Int, val.Type()),
			}
		}
		val.SetUint(uint64(node.Int))
		return nil
	case reflect.Float32, reflect.Float64:
		switch node.Type {
		case ir.RealType:
			val.SetFloat(node.Real)
		case ir.IntegerType:
			val.SetFloat(float64(node.Int))
		default:
			return typeErr(fieldPath, ir.RealType, node.Type)
		}
		return nil
	case reflect.String:
		if node.Type != ir.StringType && node.Type != ir.URIType {
			return typeErr(fieldPath, ir.StringType, node.Type)
		}
		val.SetString(node.String)
		return nil
	case reflect.Slice:
		if node.Type != ir.ArrayType {
			return typeErr(fieldPath, ir.ArrayType, node.Type)
		}
		out := reflect.MakeSlice(val.Type(), len(node.Values), len(node.Values))
		for i, child := range node.Values {
			if err := fromIR(child, out.Index(i), fmt.Sprintf("%s[%d]", fieldPath, i)); err != nil {
				return err
			}
		}
		val.Set(out)
		return nil
	case reflect.Map:
		if node.Type != ir.MapType {
			return typeErr(fieldPath, ir.MapType, node.Type)
		}
		if val.Type().Key().Kind() != reflect.String {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("map key type %s is not a string", val.Type().Key()),
			}
		}
		out := reflect.MakeMapWithSize(val.Type(), len(node.Fields))
		for i, key := range node.Fields {
			elem := reflect.New(val.Type().Elem()).Elem()
			if err := fromIR(node.Values[i], elem, joinPath(fieldPath, key)); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(key).Convert(val.Type().Key()), elem)
		}
		val.Set(out)
		return nil
	case reflect.Struct:
		if node.Type != ir.MapType {
			return typeErr(fieldPath, ir.MapType, node.Type)
		}
		t := val.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue
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
			child := node.Get(name)
			if child == nil {
				continue // absent keys leave the zero value
			}
			if err := fromIR(child, val.Field(i), joinPath(fieldPath, name)); err != nil {
				return err
			}
		}
		return nil
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported Go type %s", val.Type()),
		}
	}
}

func typeErr(fieldPath string, want, got ir.Type) error {
	return &UnmarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("expected %s, got %s", want, got),
	}
}

// toGo maps a node to the natural Go representation for an empty
// interface destination.
func toGo(node *ir.Node) interface{} {
	switch node.Type {
	case ir.UndefType:
		return nil
	case ir.BoolType:
		return node.Bool
	case ir.IntegerType:
		return node.Int
	case ir.RealType:
		return node.Real
	case ir.UUIDType:
		return node.UUID
	case ir.StringType, ir.URIType:
		return node.String
	case ir.DateType:
		return time.Unix(node.Date, 0).UTC()
	case ir.BinaryType:
		out := make([]byte, len(node.Binary))
		copy(out, node.Binary)
		return out
	case ir.ArrayType:
		out := make([]interface{}, len(node.Values))
		for i, v := range node.Values {
			out[i] = toGo(v)
		}
		return out
	case ir.MapType:
		out := make(map[string]interface{}, len(node.Fields))
		for i, key := range node.Fields {
			out[key] = toGo(node.Values[i])
		}
		return out
	}
	return nil
}
