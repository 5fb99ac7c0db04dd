// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "slices"

// TypeBuilder assembles a NamedType in two phases. The first phase collects
// the declared members; Build then produces the final member list, adding a
// synthesized parameterless constructor to classes that declare none, and
// links every member back to its containing type and namespace.
type TypeBuilder struct {
	decl           Decl
	kind           TypeKind
	typeParams     []TypeParameter
	base           *TypeRef
	interfaces     []TypeRef
	enumUnderlying *TypeRef
	invoke         *Method
	members        []Symbol
	nested         []*TypeBuilder
	special        SpecialType
}

// NewType starts a public type of the given kind.
func NewType(kind TypeKind, name string) *TypeBuilder {
	return &TypeBuilder{
		decl: Decl{Name: name, Accessibility: AccessPublic},
		kind: kind,
	}
}

func (b *TypeBuilder) Access(a Accessibility) *TypeBuilder {
	b.decl.Accessibility = a
	return b
}

func (b *TypeBuilder) Modifiers(m Modifiers) *TypeBuilder {
	b.decl.Modifiers |= m
	return b
}

func (b *TypeBuilder) Attributes(attrs ...Attribute) *TypeBuilder {
	b.decl.Attributes = append(b.decl.Attributes, attrs...)
	return b
}

func (b *TypeBuilder) Implicit() *TypeBuilder {
	b.decl.Implicit = true
	return b
}

func (b *TypeBuilder) TypeParameters(tps ...TypeParameter) *TypeBuilder {
	b.typeParams = append(b.typeParams, tps...)
	return b
}

// Base sets the base class. Passing System.Object clears it.
func (b *TypeBuilder) Base(ref TypeRef) *TypeBuilder {
	if ref.Special == SpecialObject {
		b.base = nil
		return b
	}
	b.base = &ref
	return b
}

func (b *TypeBuilder) Implements(refs ...TypeRef) *TypeBuilder {
	b.interfaces = append(b.interfaces, refs...)
	return b
}

// Underlying sets the enum underlying type.
func (b *TypeBuilder) Underlying(ref TypeRef) *TypeBuilder {
	if ref.Special == SpecialInt32 {
		b.enumUnderlying = nil
		return b
	}
	b.enumUnderlying = &ref
	return b
}

// Special marks the type as one of the well-known special types.
func (b *TypeBuilder) Special(st SpecialType) *TypeBuilder {
	b.special = st
	return b
}

// Signature sets the delegate signature.
func (b *TypeBuilder) Signature(ret TypeRef, params ...Parameter) *TypeBuilder {
	b.invoke = &Method{
		Decl:       Decl{Name: "Invoke", Accessibility: AccessPublic, Implicit: true},
		MethodKind: MethodDelegateInvoke,
		ReturnType: &ret,
		Parameters: params,
	}
	return b
}

// Add appends declared members.
func (b *TypeBuilder) Add(members ...Symbol) *TypeBuilder {
	b.members = append(b.members, members...)
	return b
}

// Nest appends nested type declarations.
func (b *TypeBuilder) Nest(types ...*TypeBuilder) *TypeBuilder {
	b.nested = append(b.nested, types...)
	return b
}

// Build produces the type inside namespace ns.
func (b *TypeBuilder) Build(ns *Namespace) *NamedType {
	return b.build(ns, nil)
}

func (b *TypeBuilder) build(ns *Namespace, containing *NamedType) *NamedType {
	t := &NamedType{
		Decl:           b.decl,
		TypeKind:       b.kind,
		TypeParameters: slices.Clone(b.typeParams),
		BaseType:       b.base,
		Interfaces:     slices.Clone(b.interfaces),
		EnumUnderlying: b.enumUnderlying,
		Invoke:         b.invoke,
		Special:        b.special,
	}
	t.Namespace = ns
	t.Containing = containing
	t.Attributes = slices.Clone(b.decl.Attributes)

	members := slices.Clone(b.members)
	for _, nb := range b.nested {
		members = append(members, nb.build(ns, t))
	}
	if b.needsDefaultConstructor() {
		members = withConstructor(members, &Method{
			Decl:       Decl{Name: ".ctor", Accessibility: defaultConstructorAccess(t), Implicit: true},
			MethodKind: MethodConstructor,
		})
	}
	t.Members = members

	link(t)
	return t
}

func (b *TypeBuilder) needsDefaultConstructor() bool {
	if b.kind != TypeKindClass || b.decl.Modifiers.Has(ModStatic) {
		return false
	}
	for _, m := range b.members {
		if mm, ok := m.(*Method); ok && mm.MethodKind == MethodConstructor {
			return false
		}
	}
	return true
}

func defaultConstructorAccess(t *NamedType) Accessibility {
	if t.Modifiers.Has(ModAbstract) {
		return AccessProtected
	}
	return AccessPublic
}

// withConstructor returns a copy of members with ctor placed first.
func withConstructor(members []Symbol, ctor *Method) []Symbol {
	out := make([]Symbol, 0, len(members)+1)
	out = append(out, ctor)
	return append(out, members...)
}

// link sets the containing type and namespace of every member of t.
func link(t *NamedType) {
	adopt := func(d *Decl) {
		d.Namespace = t.Namespace
		d.Containing = t
	}
	if t.Invoke != nil {
		adopt(&t.Invoke.Decl)
	}
	for _, m := range t.Members {
		switch s := m.(type) {
		case *NamedType:
			// Nested types are linked by their own build.
		case *Method:
			adopt(&s.Decl)
		case *Field:
			adopt(&s.Decl)
			if t.TypeKind == TypeKindEnum {
				s.Type = t.Ref()
				if s.Constant != nil && s.Constant.Kind == ConstantPrimitive {
					c := EnumConstant(t.Ref(), toInt64(s.Constant.Value))
					if t.EnumUnderlying != nil && t.EnumUnderlying.Special.IsUnsigned() {
						c.Value = uint64(toInt64(s.Constant.Value))
					}
					s.Constant = &c
				}
			}
		case *Property:
			adopt(&s.Decl)
			for _, acc := range []*Method{s.Getter, s.Setter} {
				if acc != nil {
					adopt(&acc.Decl)
					acc.Associated = s
				}
			}
		case *Event:
			adopt(&s.Decl)
			for _, acc := range []*Method{s.Adder, s.Remover} {
				if acc != nil {
					adopt(&acc.Decl)
					acc.Associated = s
				}
			}
		}
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int8:
		return int64(n)
	case uint64:
		return int64(n)
	case uint32:
		return int64(n)
	case uint16:
		return int64(n)
	case uint8:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
