// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Attribute is an applied attribute: its type plus constant arguments.
type Attribute struct {
	Type            TypeRef
	ConstructorArgs []TypedConstant
	NamedArgs       []NamedArgument
}

// NamedArgument is a Name = value attribute argument.
type NamedArgument struct {
	Name  string
	Value TypedConstant
}

// ConstantKind identifies the shape of a TypedConstant. The zero value is
// deliberately invalid so that an unset constant is reported rather than
// rendered.
type ConstantKind int

const (
	ConstantUnknown   ConstantKind = iota
	ConstantPrimitive              // bool, char, string, numeric, or null
	ConstantEnum                   // Enum value; Value holds the underlying integer
	ConstantType                   // typeof(T); Value holds a TypeRef
	ConstantArray                  // Array; Values holds the elements
)

func (k ConstantKind) String() string {
	switch k {
	case ConstantPrimitive:
		return "Primitive"
	case ConstantEnum:
		return "Enum"
	case ConstantType:
		return "Type"
	case ConstantArray:
		return "Array"
	default:
		return "Unknown"
	}
}

// TypedConstant is a compile-time constant together with its type.
//
// Primitive values are bool, rune, string, int64, uint64 or float64; nil
// stands for null (reference types) or default(T) (value types).
type TypedConstant struct {
	Kind   ConstantKind
	Type   TypeRef
	Value  any
	Values []TypedConstant
}

// Primitive returns a primitive constant of the given special type.
func Primitive(st SpecialType, value any) TypedConstant {
	return TypedConstant{Kind: ConstantPrimitive, Type: Special(st), Value: value}
}

// StringConstant returns a string constant.
func StringConstant(s string) TypedConstant { return Primitive(SpecialString, s) }

// IntConstant returns an int constant.
func IntConstant(n int64) TypedConstant { return Primitive(SpecialInt32, n) }

// BoolConstant returns a bool constant.
func BoolConstant(b bool) TypedConstant { return Primitive(SpecialBoolean, b) }

// EnumConstant returns a value of the enum type. value is the bit pattern
// of the underlying value, so ulong values above MaxInt64 are negative.
func EnumConstant(enum TypeRef, value int64) TypedConstant {
	return TypedConstant{Kind: ConstantEnum, Type: enum, Value: value}
}

// TypeOfConstant returns a typeof(T) constant.
func TypeOfConstant(t TypeRef) TypedConstant {
	return TypedConstant{Kind: ConstantType, Type: Named("System", "Type", TypeKindClass), Value: t}
}

// ArrayConstant returns an array constant with the given element type.
func ArrayConstant(elem TypeRef, values ...TypedConstant) TypedConstant {
	return TypedConstant{Kind: ConstantArray, Type: ArrayOf(elem), Values: values}
}

// NewAttribute returns an attribute of the given type with positional
// arguments.
func NewAttribute(t TypeRef, args ...TypedConstant) Attribute {
	return Attribute{Type: t, ConstructorArgs: args}
}
