// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the read-only symbol graph consumed by the
// definition list engine, and the display parts it produces.
//
// A Symbol is one of *Namespace, *NamedType, *Method, *Property, *Field or
// *Event. Code that dispatches on symbols uses a type switch over exactly
// these variants.
package types

import (
	"strconv"
	"strings"
)

// Symbol is a node in the declaration graph.
type Symbol interface {
	// Kind returns the variant tag.
	Kind() SymbolKind
	// Info returns the declaration header shared by every variant.
	Info() *Decl

	symbol()
}

// Decl holds the facets common to every symbol. Symbols are built once by
// an adapter and never mutated afterwards.
type Decl struct {
	Name          string
	Namespace     *Namespace // Containing namespace
	Containing    *NamedType // Containing type, nil for top-level types and namespaces
	Accessibility Accessibility
	Modifiers     Modifiers
	Attributes    []Attribute
	Implicit      bool // Synthesized by the compiler rather than declared in source
}

// Info returns d.
func (d *Decl) Info() *Decl { return d }

func (*Decl) symbol() {}

// IsStatic reports whether the symbol is declared static.
func (d *Decl) IsStatic() bool { return d.Modifiers.Has(ModStatic) }

// Namespace is a namespace symbol. The global namespace has an empty name
// and no containing namespace.
type Namespace struct {
	Decl
}

func (*Namespace) Kind() SymbolKind { return KindNamespace }

// IsGlobal reports whether n is the unnamed global namespace.
func (n *Namespace) IsGlobal() bool {
	return n == nil || (n.Name == "" && n.Namespace == nil)
}

// FullName returns the dotted namespace name, "" for the global namespace.
func (n *Namespace) FullName() string {
	if n.IsGlobal() {
		return ""
	}
	parent := n.Namespace.FullName()
	if parent == "" {
		return n.Name
	}
	return parent + "." + n.Name
}

// Segments returns the namespace chain from the outermost named namespace
// down to n.
func (n *Namespace) Segments() []*Namespace {
	var chain []*Namespace
	for cur := n; !cur.IsGlobal(); cur = cur.Namespace {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Root returns the outermost named namespace containing n, or n itself when
// n is global or already a root.
func (n *Namespace) Root() *Namespace {
	cur := n
	for !cur.IsGlobal() && !cur.Namespace.IsGlobal() {
		cur = cur.Namespace
	}
	return cur
}

// NamedType is a class, struct, interface, enum or delegate.
type NamedType struct {
	Decl
	TypeKind       TypeKind
	TypeParameters []TypeParameter
	BaseType       *TypeRef  // nil when the type derives from the root object type
	Interfaces     []TypeRef // Directly implemented interfaces
	EnumUnderlying *TypeRef  // Enum underlying type, nil for int
	Members        []Symbol  // Methods, properties, fields, events and nested types
	Invoke         *Method   // Delegate signature, nil unless TypeKind is TypeKindDelegate
	Special        SpecialType
}

func (*NamedType) Kind() SymbolKind { return KindNamedType }

// Arity returns the number of type parameters.
func (t *NamedType) Arity() int { return len(t.TypeParameters) }

// IsFlagsEnum reports whether the enum carries System.FlagsAttribute.
func (t *NamedType) IsFlagsEnum() bool {
	if t.TypeKind != TypeKindEnum {
		return false
	}
	for _, a := range t.Attributes {
		if a.Type.QualifiedName() == "System.FlagsAttribute" {
			return true
		}
	}
	return false
}

// TypeMembers returns the nested types in declaration order.
func (t *NamedType) TypeMembers() []*NamedType {
	var nested []*NamedType
	for _, m := range t.Members {
		if nt, ok := m.(*NamedType); ok {
			nested = append(nested, nt)
		}
	}
	return nested
}

// Fields returns the field members in declaration order.
func (t *NamedType) Fields() []*Field {
	var fields []*Field
	for _, m := range t.Members {
		if f, ok := m.(*Field); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Ref returns a reference to t as seen from other declarations.
func (t *NamedType) Ref() TypeRef {
	ref := TypeRef{
		Kind:       RefNamed,
		Name:       t.Name,
		Namespace:  t.Namespace.FullName(),
		TypeKind:   t.TypeKind,
		Special:    t.Special,
		Definition: t,
	}
	for c := t.Containing; c != nil; c = c.Containing {
		ref.ContainingTypes = append([]string{c.Name}, ref.ContainingTypes...)
	}
	for _, tp := range t.TypeParameters {
		ref.Args = append(ref.Args, TypeRef{Kind: RefTypeParameter, Name: tp.Name})
	}
	return ref
}

// Method is an ordinary method, constructor, operator, conversion or
// accessor.
type Method struct {
	Decl
	MethodKind     MethodKind
	ReturnType     *TypeRef // nil for constructors; RefVoid for void
	TypeParameters []TypeParameter
	Parameters     []Parameter
	Associated     Symbol // Owning property or event for accessors
	Operator       string // Operator token for MethodOperator, e.g. "+"
}

func (*Method) Kind() SymbolKind { return KindMethod }

// Arity returns the number of type parameters.
func (m *Method) Arity() int { return len(m.TypeParameters) }

// IsExtension reports whether m is an extension method.
func (m *Method) IsExtension() bool {
	return len(m.Parameters) > 0 && m.Parameters[0].RefKind == RefThis
}

// Property is a property or an indexer.
type Property struct {
	Decl
	Type       TypeRef
	Parameters []Parameter // Indexer parameters
	IsIndexer  bool
	Getter     *Method
	Setter     *Method
	InitOnly   bool // Setter is an init accessor
}

func (*Property) Kind() SymbolKind { return KindProperty }

// Field is a field, a constant, or an enum member.
type Field struct {
	Decl
	Type     TypeRef
	Constant *TypedConstant // Constant value for const fields and enum members
}

func (*Field) Kind() SymbolKind { return KindField }

// IsConst reports whether the field is a compile-time constant.
func (f *Field) IsConst() bool { return f.Modifiers.Has(ModConst) }

// IsEnumMember reports whether f is a named constant of an enum.
func (f *Field) IsEnumMember() bool {
	return f.Containing != nil && f.Containing.TypeKind == TypeKindEnum
}

// Event is an event declaration.
type Event struct {
	Decl
	Type    TypeRef
	Adder   *Method
	Remover *Method
}

func (*Event) Kind() SymbolKind { return KindEvent }

// Parameter is a method, delegate or indexer parameter.
type Parameter struct {
	Name       string
	Type       TypeRef
	RefKind    RefKind
	Attributes []Attribute
	HasDefault bool
	Default    TypedConstant // Valid when HasDefault; a nil primitive means default(T) or null
}

// TypeParameter is a generic type parameter with its constraints.
type TypeParameter struct {
	Name            string
	Variance        Variance
	Attributes      []Attribute
	ReferenceType   bool // class
	ValueType       bool // struct
	Unmanaged       bool
	NotNull         bool
	Constructor     bool // new()
	ConstraintTypes []TypeRef
}

// HasConstraints reports whether a where clause is needed.
func (tp TypeParameter) HasConstraints() bool {
	return tp.ReferenceType || tp.ValueType || tp.Unmanaged || tp.NotNull || tp.Constructor || len(tp.ConstraintTypes) > 0
}

// Parameters returns the parameters of methods, delegates and indexers.
func Parameters(sym Symbol) []Parameter {
	switch s := sym.(type) {
	case *Method:
		return s.Parameters
	case *Property:
		return s.Parameters
	case *NamedType:
		if s.Invoke != nil {
			return s.Invoke.Parameters
		}
	}
	return nil
}

// ContainingTypes returns the chain of containing types, outermost first.
func ContainingTypes(sym Symbol) []*NamedType {
	var chain []*NamedType
	for c := sym.Info().Containing; c != nil; c = c.Containing {
		chain = append([]*NamedType{c}, chain...)
	}
	return chain
}

// QualifiedName returns the dotted name of sym including namespaces and
// containing types, e.g. "Acme.Outer.Inner.Member".
func QualifiedName(sym Symbol) string {
	if ns, ok := sym.(*Namespace); ok {
		return ns.FullName()
	}
	var b strings.Builder
	if ns := sym.Info().Namespace.FullName(); ns != "" {
		b.WriteString(ns)
		b.WriteByte('.')
	}
	for _, c := range ContainingTypes(sym) {
		b.WriteString(c.Name)
		b.WriteByte('.')
	}
	b.WriteString(sym.Info().Name)
	return b.String()
}

// MetadataName returns the metadata form of the qualified name: nested types
// are separated by '+' and generic types carry a backtick arity suffix, e.g.
// "Acme.Outer+Inner`1". Members append ".Name" to their type's metadata name.
func MetadataName(sym Symbol) string {
	switch s := sym.(type) {
	case *Namespace:
		return s.FullName()
	case *NamedType:
		var b strings.Builder
		if ns := s.Namespace.FullName(); ns != "" {
			b.WriteString(ns)
			b.WriteByte('.')
		}
		for _, c := range ContainingTypes(s) {
			b.WriteString(typeMetadataName(c))
			b.WriteByte('+')
		}
		b.WriteString(typeMetadataName(s))
		return b.String()
	default:
		d := sym.Info()
		if d.Containing == nil {
			return QualifiedName(sym)
		}
		return MetadataName(d.Containing) + "." + d.Name
	}
}

func typeMetadataName(t *NamedType) string {
	if n := t.Arity(); n > 0 {
		return t.Name + "`" + strconv.Itoa(n)
	}
	return t.Name
}
