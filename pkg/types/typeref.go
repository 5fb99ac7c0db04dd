// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"strconv"
	"strings"
)

// TypeRefKind identifies the shape of a type reference.
type TypeRefKind int

const (
	RefNamed         TypeRefKind = iota // Named type, possibly generic
	RefTypeParameter                    // Generic type parameter
	RefArray                            // Single or multi-dimensional array
	RefPointer                          // Unmanaged pointer
	RefNullable                         // Nullable value type, T?
	RefTuple                            // Tuple of element types
	RefKeyword                          // Language keyword without a special type, e.g. "dynamic"
)

// TypeRef references a type from a declaration: a parameter type, a base
// type, an attribute type and so on. The referenced type does not need to
// be part of the symbol graph.
type TypeRef struct {
	Kind            TypeRefKind
	Name            string
	Namespace       string   // Dotted containing namespace, "" for global
	ContainingTypes []string // Outer types, outermost first
	Args            []TypeRef
	Elem            *TypeRef // Element type for arrays, pointers and nullables
	Rank            int      // Array rank, 1 for T[]
	Elems           []TypeRef
	TypeKind        TypeKind
	Special         SpecialType
	Definition      *NamedType // Set when the type is part of the graph
}

// Named returns a reference to a non-generic named type.
func Named(namespace, name string, kind TypeKind) TypeRef {
	ref := TypeRef{Kind: RefNamed, Namespace: namespace, Name: name, TypeKind: kind}
	ref.Special = SpecialTypeOf(ref.QualifiedName())
	return ref
}

// Generic returns a reference to a constructed generic type.
func Generic(namespace, name string, kind TypeKind, args ...TypeRef) TypeRef {
	ref := Named(namespace, name, kind)
	ref.Args = args
	ref.Special = SpecialTypeOf(ref.MetadataName())
	return ref
}

// Special returns a reference to a special type.
func Special(st SpecialType) TypeRef {
	ns, name := st.QualifiedName()
	kind := TypeKindStruct
	switch st {
	case SpecialObject, SpecialString:
		kind = TypeKindClass
	case SpecialIEnumerable, SpecialIEnumerableT:
		kind = TypeKindInterface
	}
	return TypeRef{Kind: RefNamed, Namespace: ns, Name: name, TypeKind: kind, Special: st}
}

// TypeParam returns a reference to a type parameter.
func TypeParam(name string) TypeRef {
	return TypeRef{Kind: RefTypeParameter, Name: name}
}

// ArrayOf returns a reference to a single-dimensional array of elem.
func ArrayOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: RefArray, Elem: &elem, Rank: 1, TypeKind: TypeKindClass}
}

// Keyword returns a reference rendered as a bare keyword.
func Keyword(name string) TypeRef {
	return TypeRef{Kind: RefKeyword, Name: name}
}

// Void returns the void return type.
func Void() TypeRef { return Special(SpecialVoid) }

// QualifiedName returns the dotted name without type arguments.
func (r TypeRef) QualifiedName() string {
	var parts []string
	if r.Namespace != "" {
		parts = append(parts, r.Namespace)
	}
	parts = append(parts, r.ContainingTypes...)
	parts = append(parts, r.Name)
	return strings.Join(parts, ".")
}

// MetadataName returns the qualified name with a backtick arity suffix for
// generic types.
func (r TypeRef) MetadataName() string {
	name := r.QualifiedName()
	if len(r.Args) > 0 {
		name += "`" + strconv.Itoa(len(r.Args))
	}
	return name
}

// IsValueType reports whether the referenced type is a value type. Type
// parameters count as value types unless constrained to reference types,
// which is what selects the default(T) form for their default values.
func (r TypeRef) IsValueType() bool {
	switch r.Kind {
	case RefNamed:
		if r.Special != SpecialNone {
			return r.Special.IsValueType()
		}
		return r.TypeKind.IsValueType()
	case RefTypeParameter, RefNullable, RefPointer, RefTuple:
		return true
	default:
		return false
	}
}

// SpecialType identifies types the renderer treats specially: keyword
// aliases, the root object type and the enumerable interfaces.
type SpecialType int

const (
	SpecialNone SpecialType = iota
	SpecialObject
	SpecialVoid
	SpecialBoolean
	SpecialChar
	SpecialSByte
	SpecialByte
	SpecialInt16
	SpecialUInt16
	SpecialInt32
	SpecialUInt32
	SpecialInt64
	SpecialUInt64
	SpecialSingle
	SpecialDouble
	SpecialDecimal
	SpecialString
	SpecialIEnumerable  // System.Collections.IEnumerable
	SpecialIEnumerableT // System.Collections.Generic.IEnumerable<T>
)

var specialNames = map[SpecialType][2]string{
	SpecialObject:       {"System", "Object"},
	SpecialVoid:         {"System", "Void"},
	SpecialBoolean:      {"System", "Boolean"},
	SpecialChar:         {"System", "Char"},
	SpecialSByte:        {"System", "SByte"},
	SpecialByte:         {"System", "Byte"},
	SpecialInt16:        {"System", "Int16"},
	SpecialUInt16:       {"System", "UInt16"},
	SpecialInt32:        {"System", "Int32"},
	SpecialUInt32:       {"System", "UInt32"},
	SpecialInt64:        {"System", "Int64"},
	SpecialUInt64:       {"System", "UInt64"},
	SpecialSingle:       {"System", "Single"},
	SpecialDouble:       {"System", "Double"},
	SpecialDecimal:      {"System", "Decimal"},
	SpecialString:       {"System", "String"},
	SpecialIEnumerable:  {"System.Collections", "IEnumerable"},
	SpecialIEnumerableT: {"System.Collections.Generic", "IEnumerable"},
}

var specialKeywords = map[SpecialType]string{
	SpecialObject:  "object",
	SpecialVoid:    "void",
	SpecialBoolean: "bool",
	SpecialChar:    "char",
	SpecialSByte:   "sbyte",
	SpecialByte:    "byte",
	SpecialInt16:   "short",
	SpecialUInt16:  "ushort",
	SpecialInt32:   "int",
	SpecialUInt32:  "uint",
	SpecialInt64:   "long",
	SpecialUInt64:  "ulong",
	SpecialSingle:  "float",
	SpecialDouble:  "double",
	SpecialDecimal: "decimal",
	SpecialString:  "string",
}

var specialByName = func() map[string]SpecialType {
	m := make(map[string]SpecialType, len(specialNames)+len(specialKeywords))
	for st, n := range specialNames {
		name := n[0] + "." + n[1]
		if st == SpecialIEnumerableT {
			name += "`1"
		}
		m[name] = st
	}
	for st, kw := range specialKeywords {
		m[kw] = st
	}
	return m
}()

// SpecialTypeOf maps a metadata name ("System.Int32",
// "System.Collections.Generic.IEnumerable`1") or a keyword alias ("int")
// to its special type.
func SpecialTypeOf(name string) SpecialType {
	return specialByName[name]
}

// QualifiedName returns the namespace and simple name of the special type.
func (st SpecialType) QualifiedName() (namespace, name string) {
	n := specialNames[st]
	return n[0], n[1]
}

// KeywordAlias returns the language keyword for the type, or "" if it has
// none.
func (st SpecialType) KeywordAlias() string {
	return specialKeywords[st]
}

// IsUnsigned reports whether the special type is an unsigned integer.
func (st SpecialType) IsUnsigned() bool {
	switch st {
	case SpecialByte, SpecialUInt16, SpecialUInt32, SpecialUInt64:
		return true
	}
	return false
}

// IsValueType reports whether the special type is a value type.
func (st SpecialType) IsValueType() bool {
	switch st {
	case SpecialNone, SpecialObject, SpecialString, SpecialIEnumerable, SpecialIEnumerableT, SpecialVoid:
		return false
	}
	return true
}
