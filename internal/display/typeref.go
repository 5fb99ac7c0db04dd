// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package display

import (
	"strings"

	"github.com/petar-djukic/go-deflist/internal/options"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

const attributeSuffix = "Attribute"

// omitNamespace reports whether a reference into namespace ns is written
// without qualification when displayed inside namespace context.
func (r *Renderer) omitNamespace(ns, context string) bool {
	switch r.opts.NamespaceStyle() {
	case options.NamespaceOmitted:
		return true
	case options.NamespaceOmittedAsContaining:
		return ns == context
	default:
		return false
	}
}

// typeRef appends ref as seen from namespace context.
func (r *Renderer) typeRef(b *builder, ref types.TypeRef, context string) {
	r.typeRefTrimmed(b, ref, context, false)
}

func (r *Renderer) typeRefTrimmed(b *builder, ref types.TypeRef, context string, trimAttribute bool) {
	switch ref.Kind {
	case types.RefKeyword:
		b.keyword(ref.Name)
	case types.RefTypeParameter:
		b.add(types.PartTypeParameterName, ref.Name)
	case types.RefArray:
		r.elem(b, ref, context)
		b.punctuation("[")
		for i := 1; i < ref.Rank; i++ {
			b.punctuation(",")
		}
		b.punctuation("]")
	case types.RefPointer:
		r.elem(b, ref, context)
		b.punctuation("*")
	case types.RefNullable:
		r.elem(b, ref, context)
		b.punctuation("?")
	case types.RefTuple:
		b.punctuation("(")
		for i, e := range ref.Elems {
			if i > 0 {
				b.punctuation(",")
				b.space()
			}
			r.typeRef(b, e, context)
		}
		b.punctuation(")")
	default:
		r.namedRef(b, ref, context, trimAttribute)
	}
}

func (r *Renderer) elem(b *builder, ref types.TypeRef, context string) {
	if ref.Elem != nil {
		r.typeRef(b, *ref.Elem, context)
	}
}

func (r *Renderer) namedRef(b *builder, ref types.TypeRef, context string, trimAttribute bool) {
	if kw := ref.Special.KeywordAlias(); kw != "" && len(ref.Args) == 0 {
		b.keyword(kw)
		return
	}

	if ref.Namespace != "" && !r.omitNamespace(ref.Namespace, context) {
		for _, seg := range strings.Split(ref.Namespace, ".") {
			b.add(types.PartNamespaceName, seg)
			b.punctuation(".")
		}
	}
	for _, outer := range ref.ContainingTypes {
		b.add(types.PartClassName, outer)
		b.punctuation(".")
	}

	name := ref.Name
	if trimAttribute && name != attributeSuffix {
		name = strings.TrimSuffix(name, attributeSuffix)
	}
	kind := typeNamePartKind(ref.TypeKind)
	if ref.Definition != nil {
		b.addSymbol(kind, name, ref.Definition)
	} else {
		b.add(kind, name)
	}

	if len(ref.Args) > 0 {
		b.punctuation("<")
		for i, arg := range ref.Args {
			if i > 0 {
				b.punctuation(",")
				b.space()
			}
			r.typeRef(b, arg, context)
		}
		b.punctuation(">")
	}
}

// typeRefString renders ref to text, used as a sort key.
func (r *Renderer) typeRefString(ref types.TypeRef, context string) string {
	var b builder
	r.typeRef(&b, ref, context)
	return b.parts.String()
}
