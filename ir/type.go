package ir

import "fmt"

type Type int

const (
	UndefType Type = iota
	BoolType
	IntegerType
	RealType
	UUIDType
	StringType
	URIType
	DateType
	BinaryType
	MapType
	ArrayType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		UndefType:   "Undef",
		BoolType:    "Bool",
		IntegerType: "Integer",
		RealType:    "Real",
		UUIDType:    "UUID",
		StringType:  "String",
		URIType:     "URI",
		DateType:    "Date",
		BinaryType:  "Binary",
		MapType:     "Map",
		ArrayType:   "Array",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Undef":   UndefType,
		"Bool":    BoolType,
		"Integer": IntegerType,
		"Real":    RealType,
		"UUID":    UUIDType,
		"String":  StringType,
		"URI":     URIType,
		"Date":    DateType,
		"Binary":  BinaryType,
		"Map":     MapType,
		"Array":   ArrayType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		UndefType,
		BoolType,
		IntegerType,
		RealType,
		UUIDType,
		StringType,
		URIType,
		DateType,
		BinaryType,
		MapType,
		ArrayType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case MapType, ArrayType:
		return false
	default:
		return true
	}
}
