// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"strconv"
	"strings"
)

// Resolve links every named type reference in the assemblies to the type it
// names when that type is declared in one of them. Linked references take
// the declaration's type kind. References that are already linked, or that
// name types outside the assemblies, are left alone. When two assemblies
// declare the same metadata name the first one wins.
func Resolve(assemblies ...*Assembly) {
	index := make(map[string]*NamedType)
	for _, a := range assemblies {
		for _, t := range a.Types(nil) {
			name := MetadataName(t)
			if _, dup := index[name]; !dup {
				index[name] = t
			}
		}
	}

	r := resolver{index: index}
	for _, a := range assemblies {
		r.attributes(a.Attributes)
		for _, t := range a.Types(nil) {
			r.namedType(t)
		}
	}
}

type resolver struct {
	index map[string]*NamedType
}

// refMetadataName returns the metadata name a named reference would have
// as a declaration.
func refMetadataName(ref *TypeRef) string {
	var b strings.Builder
	if ref.Namespace != "" {
		b.WriteString(ref.Namespace)
		b.WriteByte('.')
	}
	for _, c := range ref.ContainingTypes {
		b.WriteString(c)
		b.WriteByte('+')
	}
	b.WriteString(ref.Name)
	if n := len(ref.Args); n > 0 {
		b.WriteByte('`')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

func (r resolver) ref(ref *TypeRef) {
	if ref == nil {
		return
	}
	for i := range ref.Args {
		r.ref(&ref.Args[i])
	}
	for i := range ref.Elems {
		r.ref(&ref.Elems[i])
	}
	r.ref(ref.Elem)

	if ref.Kind != RefNamed || ref.Definition != nil {
		return
	}
	t, ok := r.index[refMetadataName(ref)]
	if !ok {
		return
	}
	ref.Definition = t
	ref.TypeKind = t.TypeKind
	if ref.Special == SpecialNone {
		ref.Special = t.Special
	}
}

func (r resolver) constant(c *TypedConstant) {
	r.ref(&c.Type)
	if tr, ok := c.Value.(TypeRef); ok {
		r.ref(&tr)
		c.Value = tr
	}
	for i := range c.Values {
		r.constant(&c.Values[i])
	}
}

func (r resolver) attributes(attrs []Attribute) {
	for i := range attrs {
		a := &attrs[i]
		r.ref(&a.Type)
		for j := range a.ConstructorArgs {
			r.constant(&a.ConstructorArgs[j])
		}
		for j := range a.NamedArgs {
			r.constant(&a.NamedArgs[j].Value)
		}
	}
}

func (r resolver) typeParameters(tps []TypeParameter) {
	for i := range tps {
		for j := range tps[i].ConstraintTypes {
			r.ref(&tps[i].ConstraintTypes[j])
		}
	}
}

func (r resolver) parameters(params []Parameter) {
	for i := range params {
		p := &params[i]
		r.ref(&p.Type)
		r.attributes(p.Attributes)
		if p.HasDefault {
			r.constant(&p.Default)
		}
	}
}

func (r resolver) method(m *Method) {
	if m == nil {
		return
	}
	r.attributes(m.Attributes)
	r.ref(m.ReturnType)
	r.typeParameters(m.TypeParameters)
	r.parameters(m.Parameters)
}

// namedType resolves the declaration of t and its members. Nested types
// are visited by the caller.
func (r resolver) namedType(t *NamedType) {
	r.attributes(t.Attributes)
	r.typeParameters(t.TypeParameters)
	r.ref(t.BaseType)
	for i := range t.Interfaces {
		r.ref(&t.Interfaces[i])
	}
	r.ref(t.EnumUnderlying)
	r.method(t.Invoke)

	for _, m := range t.Members {
		switch s := m.(type) {
		case *Method:
			r.method(s)
		case *Property:
			r.attributes(s.Attributes)
			r.ref(&s.Type)
			r.parameters(s.Parameters)
			r.method(s.Getter)
			r.method(s.Setter)
		case *Field:
			r.attributes(s.Attributes)
			r.ref(&s.Type)
			if s.Constant != nil {
				r.constant(s.Constant)
			}
		case *Event:
			r.attributes(s.Attributes)
			r.ref(&s.Type)
			r.method(s.Adder)
			r.method(s.Remover)
		}
	}
}
