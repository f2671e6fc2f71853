package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Kind enumerates the semantic types a declared feature may carry. Int and
// Float are distinct kinds even though cty.Number covers both on the wire:
// an integer feature must reject fractional raw values.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTimestamp
	KindEnum
)

// String returns the type keyword used in manifest files.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTimestamp:
		return "timestamp"
	case KindEnum:
		return "enum"
	default:
		return "invalid"
	}
}

// FieldType is the semantic type of a declared feature. Enum types carry the
// registry name of the enumeration they reference.
type FieldType struct {
	Kind     Kind
	EnumName string
}

var (
	StringType    = FieldType{Kind: KindString}
	IntType       = FieldType{Kind: KindInt}
	FloatType     = FieldType{Kind: KindFloat}
	BoolType      = FieldType{Kind: KindBool}
	TimestampType = FieldType{Kind: KindTimestamp}
)

// EnumType returns the FieldType referencing the named enumeration.
func EnumType(name string) FieldType {
	return FieldType{Kind: KindEnum, EnumName: name}
}

// Equals reports whether two field types are the same semantic type.
func (t FieldType) Equals(other FieldType) bool {
	return t.Kind == other.Kind && t.EnumName == other.EnumName
}

// FriendlyName renders the type the way it is written in a manifest, e.g.
// "string" or "enum(VehicleType)".
func (t FieldType) FriendlyName() string {
	if t.Kind == KindEnum {
		return fmt.Sprintf("enum(%s)", t.EnumName)
	}
	return t.Kind.String()
}

// CtyType returns the cty type used for value plumbing of this semantic
// type. Timestamps and enum members travel as strings (RFC 3339 and wire
// values respectively).
func (t FieldType) CtyType() cty.Type {
	switch t.Kind {
	case KindInt, KindFloat:
		return cty.Number
	case KindBool:
		return cty.Bool
	case KindString, KindTimestamp, KindEnum:
		return cty.String
	default:
		return cty.NilType
	}
}
