// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package display renders symbols as sequences of typed display parts.
//
// Render starts from the bare declaration of a symbol and rewrites the part
// stream: it prepends attributes, splices the base list in front of the
// constraint clauses, lays out constraints, inserts accessor and parameter
// attributes, breaks long parameter lists and shortens default(T) to
// default. Rewrites that cannot find their splice point leave the stream
// unchanged.
package display

import (
	"fmt"
	"slices"
	"strings"

	"github.com/petar-djukic/go-deflist/internal/options"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

// Renderer renders symbols under one set of options. It is safe for
// concurrent use.
type Renderer struct {
	opts               *options.Options
	isVisibleAttribute func(types.TypeRef) bool
}

// New returns a renderer using ShouldBeDisplayed as attribute filter.
func New(opts *options.Options) *Renderer {
	return &Renderer{opts: opts, isVisibleAttribute: ShouldBeDisplayed}
}

// WithAttributeFilter returns a copy of r using filter to decide which
// attributes are displayed.
func (r *Renderer) WithAttributeFilter(filter func(types.TypeRef) bool) *Renderer {
	cp := *r
	cp.isVisibleAttribute = filter
	return &cp
}

// contextNamespace returns the namespace a symbol is displayed in.
func contextNamespace(sym types.Symbol) string {
	if ns, ok := sym.(*types.Namespace); ok {
		return ns.FullName()
	}
	return sym.Info().Namespace.FullName()
}

// Render returns the display parts of sym.
func (r *Renderer) Render(sym types.Symbol) (types.Parts, error) {
	context := contextNamespace(sym)
	parts, err := r.declaration(sym, context)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", types.QualifiedName(sym), err)
	}
	if sym.Kind() == types.KindNamespace {
		return parts, nil
	}

	var b builder
	prefix, err := r.attributeList(sym.Info().Attributes, context, attributeMode{
		split:   r.opts.SplitAttributes(),
		newLine: true,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", types.QualifiedName(sym), err)
	}
	b.append(prefix...)
	skip := len(prefix)

	r.spliceBaseList(&b, sym, parts, context)

	if err := r.spliceAccessorAttributes(&b, sym, skip, context); err != nil {
		return nil, fmt.Errorf("render %s: %w", types.QualifiedName(sym), err)
	}

	params := types.Parameters(sym)
	if len(params) > 0 {
		if b.parts, err = r.spliceParameterAttributes(sym, b.parts, skip, params, context); err != nil {
			return nil, fmt.Errorf("render %s: %w", types.QualifiedName(sym), err)
		}
	}
	if r.opts.FormatParameters() && len(params) > 1 {
		b.parts = r.formatParameters(sym, b.parts, skip)
	}
	if r.opts.UseDefaultLiteral() && slices.ContainsFunc(params, func(p types.Parameter) bool { return p.HasDefault }) {
		b.parts = useDefaultLiteral(sym, b.parts, skip)
	}
	return b.parts, nil
}

// AssemblyAttributes renders the visible assembly-level attributes, one
// "[assembly: X]" group per line when attributes are split.
func (r *Renderer) AssemblyAttributes(asm *types.Assembly) (types.Parts, error) {
	parts, err := r.attributeList(asm.Attributes, "", attributeMode{
		split:    r.opts.SplitAttributes(),
		newLine:  true,
		assembly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("render assembly %s attributes: %w", asm.Name, err)
	}
	return parts, nil
}

// baseList returns the base class and interfaces shown for sym. The root
// object type is never shown, and the non-generic enumerable interface is
// dropped next to its generic counterpart when the options say so.
func (r *Renderer) baseList(sym types.Symbol, context string) (*types.TypeRef, []types.TypeRef) {
	t, ok := sym.(*types.NamedType)
	if !ok {
		return nil, nil
	}

	var base *types.TypeRef
	switch t.TypeKind {
	case types.TypeKindClass, types.TypeKindInterface:
		if t.BaseType != nil && t.BaseType.Special != types.SpecialObject {
			base = t.BaseType
		}
	case types.TypeKindStruct:
	default:
		return nil, nil
	}

	interfaces := slices.Clone(t.Interfaces)
	if r.opts.OmitIEnumerable() && slices.ContainsFunc(interfaces, func(i types.TypeRef) bool {
		return i.Special == types.SpecialIEnumerableT
	}) {
		interfaces = slices.DeleteFunc(interfaces, func(i types.TypeRef) bool {
			return i.Special == types.SpecialIEnumerable
		})
	}

	slices.SortStableFunc(interfaces, func(a, b types.TypeRef) int {
		if a.Namespace != b.Namespace {
			return strings.Compare(a.Namespace, b.Namespace)
		}
		return strings.Compare(r.typeRefString(a, context), r.typeRefString(b, context))
	})
	return base, interfaces
}

// spliceBaseList copies parts into b, inserting ": Base, IFace" before the
// first constraint clause and laying out the constraint clauses.
func (r *Renderer) spliceBaseList(b *builder, sym types.Symbol, parts types.Parts, context string) {
	base, interfaces := r.baseList(sym, context)
	baseCount := len(interfaces)
	if base != nil {
		baseCount++
	}

	whereIndex, constraintCount := -1, 0
	for i, p := range parts {
		if p.IsKeyword("where") {
			if whereIndex == -1 {
				whereIndex = i
			}
			constraintCount++
		}
	}

	head := parts
	if whereIndex != -1 {
		head = parts[:whereIndex]
	}
	b.append(head...)

	if baseCount > 0 {
		if whereIndex == -1 {
			b.space()
		}
		b.punctuation(":")
		b.space()

		separator := func() {
			b.punctuation(",")
			if r.opts.FormatBaseList() {
				b.lineBreak()
				b.indentation(r.opts.IndentChars())
			} else {
				b.space()
			}
		}
		if base != nil {
			r.typeRef(b, *base, context)
			if len(interfaces) > 0 {
				separator()
			}
		}
		for i, iface := range interfaces {
			if i > 0 {
				separator()
			}
			r.typeRef(b, iface, context)
		}
		if whereIndex != -1 {
			b.space()
		}
	}

	if whereIndex == -1 {
		return
	}

	breakConstraints := r.opts.FormatConstraints() && (baseCount > 1 || constraintCount > 1)
	for _, p := range parts[whereIndex:] {
		if p.IsKeyword("where") && breakConstraints {
			b.trimTrailingSpace()
			b.lineBreak()
			b.indentation(r.opts.IndentChars())
		}
		b.append(p)
	}
}

// spliceAccessorAttributes inserts property accessor attributes in front
// of their get/set keywords, and appends an accessor block to events whose
// add or remove accessors carry visible attributes.
func (r *Renderer) spliceAccessorAttributes(b *builder, sym types.Symbol, skip int, context string) error {
	mode := attributeMode{}
	switch s := sym.(type) {
	case *types.Property:
		for _, acc := range []*types.Method{s.Getter, s.Setter} {
			if acc == nil {
				continue
			}
			attrs, err := r.attributeList(acc.Attributes, context, mode)
			if err != nil {
				return err
			}
			if len(attrs) == 0 {
				continue
			}
			keyword := "get"
			if acc == s.Setter {
				keyword = "set"
				if s.InitOnly {
					keyword = "init"
				}
			}
			for i := skip; i < len(b.parts); i++ {
				if b.parts[i].IsKeyword(keyword) {
					b.parts = insert(b.parts, i, append(attrs, spacePart())...)
					break
				}
			}
		}
	case *types.Event:
		hasAdd := s.Adder != nil && r.hasVisibleAttributes(s.Adder.Attributes)
		hasRemove := s.Remover != nil && r.hasVisibleAttributes(s.Remover.Attributes)
		if !hasAdd && !hasRemove {
			return nil
		}
		b.space()
		b.punctuation("{")
		b.space()
		for _, acc := range []struct {
			method  *types.Method
			has     bool
			keyword string
		}{{s.Adder, hasAdd, "add"}, {s.Remover, hasRemove, "remove"}} {
			if acc.has {
				attrs, err := r.attributeList(acc.method.Attributes, context, mode)
				if err != nil {
					return err
				}
				b.append(attrs...)
				b.space()
			}
			b.keyword(acc.keyword)
			b.punctuation(";")
			b.space()
		}
		b.punctuation("}")
	}
	return nil
}

// spliceParameterAttributes inserts each parameter's attributes in front of
// the parameter.
func (r *Renderer) spliceParameterAttributes(sym types.Symbol, parts types.Parts, skip int, params []types.Parameter, context string) (types.Parts, error) {
	open, end, ok := ParameterList(sym, parts, skip)
	if !ok {
		return parts, nil
	}

	starts := []int{open + 1}
	for _, comma := range separators(parts, open, end) {
		starts = append(starts, comma+2)
	}
	if len(starts) > len(params) {
		starts = starts[:len(params)]
	}

	for i := len(starts) - 1; i >= 0; i-- {
		attrs, err := r.attributeList(params[i].Attributes, context, attributeMode{})
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", params[i].Name, err)
		}
		if len(attrs) > 0 {
			parts = insert(parts, starts[i], append(attrs, spacePart())...)
		}
	}
	return parts, nil
}

// formatParameters puts every parameter on its own indented line.
func (r *Renderer) formatParameters(sym types.Symbol, parts types.Parts, skip int) types.Parts {
	open, end, ok := ParameterList(sym, parts, skip)
	if !ok {
		return parts
	}
	indent := r.opts.IndentChars()
	lineBreak := types.Part{Kind: types.PartLineBreak, Text: "\n"}
	indentation := types.Part{Kind: types.PartIndentation, Text: indent}

	out := make(types.Parts, 0, len(parts)+8)
	out = append(out, parts[:open+1]...)
	out = append(out, lineBreak, indentation)
	next := open + 1
	for _, comma := range separators(parts, open, end) {
		out = append(out, parts[next:comma+1]...)
		out = append(out, lineBreak, indentation)
		next = comma + 2
	}
	return append(out, parts[next:]...)
}

// useDefaultLiteral rewrites "= default(T)" to "= default" inside the
// parameter list of sym.
func useDefaultLiteral(sym types.Symbol, parts types.Parts, skip int) types.Parts {
	open, end, ok := ParameterList(sym, parts, skip)
	if !ok {
		return parts
	}

	var out types.Parts
	next := 0
	for i := open + 1; i < end; i++ {
		if !parts[i].IsPunctuation("=") || i+3 >= end {
			continue
		}
		if parts[i+1].Kind != types.PartSpace || !parts[i+2].IsKeyword("default") || !parts[i+3].IsPunctuation("(") {
			continue
		}
		closing := closingParen(parts, i+3)
		if closing == -1 || closing >= end {
			continue
		}
		out = append(out, parts[next:i+3]...)
		next = closing + 1
		i = closing
	}
	if out == nil {
		return parts
	}
	return append(out, parts[next:]...)
}
