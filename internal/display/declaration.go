// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package display

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

// declaration renders the bare declaration of sym: modifiers, signature
// and constraint clauses, without attributes or base list.
func (r *Renderer) declaration(sym types.Symbol, context string) (types.Parts, error) {
	var b builder
	var err error
	switch s := sym.(type) {
	case *types.Namespace:
		r.namespaceDecl(&b, s)
	case *types.NamedType:
		err = r.typeDecl(&b, s, context)
	case *types.Method:
		err = r.methodDecl(&b, s, context)
	case *types.Property:
		err = r.propertyDecl(&b, s, context)
	case *types.Field:
		err = r.fieldDecl(&b, s, context)
	case *types.Event:
		r.eventDecl(&b, s, context)
	default:
		return nil, fmt.Errorf("unsupported symbol %T", sym)
	}
	if err != nil {
		return nil, err
	}
	return b.parts, nil
}

func (r *Renderer) namespaceDecl(b *builder, ns *types.Namespace) {
	b.keyword("namespace")
	b.space()
	for i, seg := range strings.Split(ns.FullName(), ".") {
		if i > 0 {
			b.punctuation(".")
		}
		b.add(types.PartNamespaceName, seg)
	}
}

func (r *Renderer) typeDecl(b *builder, t *types.NamedType, context string) error {
	b.keywords(t.Accessibility.Keywords())

	m := t.Modifiers
	switch t.TypeKind {
	case types.TypeKindClass:
		switch {
		case m.Has(types.ModStatic):
			b.modifier("static")
		case m.Has(types.ModAbstract):
			b.modifier("abstract")
		case m.Has(types.ModSealed):
			b.modifier("sealed")
		}
	case types.TypeKindStruct:
		if m.Has(types.ModReadOnly) {
			b.modifier("readonly")
		}
		if m.Has(types.ModRef) {
			b.modifier("ref")
		}
	}

	b.keyword(t.TypeKind.String())
	b.space()

	if t.TypeKind == types.TypeKindDelegate && t.Invoke != nil {
		r.returnType(b, t.Invoke.ReturnType, context)
		b.space()
	}

	b.addSymbol(typeNamePartKind(t.TypeKind), t.Name, t)
	r.typeParameterList(b, t.TypeParameters)

	if t.TypeKind == types.TypeKindEnum && t.EnumUnderlying != nil {
		b.space()
		b.punctuation(":")
		b.space()
		r.typeRef(b, *t.EnumUnderlying, context)
	}

	if t.TypeKind == types.TypeKindDelegate && t.Invoke != nil {
		if err := r.parameterList(b, t.Invoke.Parameters, "(", ")", context); err != nil {
			return err
		}
	}

	r.constraints(b, t.TypeParameters, context)
	return nil
}

func (r *Renderer) typeParameterList(b *builder, tps []types.TypeParameter) {
	if len(tps) == 0 {
		return
	}
	b.punctuation("<")
	for i, tp := range tps {
		if i > 0 {
			b.punctuation(",")
			b.space()
		}
		switch tp.Variance {
		case types.VarianceIn:
			b.modifier("in")
		case types.VarianceOut:
			b.modifier("out")
		}
		b.add(types.PartTypeParameterName, tp.Name)
	}
	b.punctuation(">")
}

// constraints appends one " where T : ..." clause per constrained type
// parameter.
func (r *Renderer) constraints(b *builder, tps []types.TypeParameter, context string) {
	for _, tp := range tps {
		if !tp.HasConstraints() {
			continue
		}
		b.space()
		b.keyword("where")
		b.space()
		b.add(types.PartTypeParameterName, tp.Name)
		b.space()
		b.punctuation(":")
		b.space()

		first := true
		sep := func() {
			if !first {
				b.punctuation(",")
				b.space()
			}
			first = false
		}
		switch {
		case tp.ReferenceType:
			sep()
			b.keyword("class")
		case tp.Unmanaged:
			sep()
			b.keyword("unmanaged")
		case tp.ValueType:
			sep()
			b.keyword("struct")
		case tp.NotNull:
			sep()
			b.keyword("notnull")
		}
		for _, ct := range tp.ConstraintTypes {
			sep()
			r.typeRef(b, ct, context)
		}
		if tp.Constructor {
			sep()
			b.keyword("new")
			b.punctuation("(")
			b.punctuation(")")
		}
	}
}

func (r *Renderer) returnType(b *builder, ret *types.TypeRef, context string) {
	if ret == nil {
		b.keyword("void")
		return
	}
	r.typeRef(b, *ret, context)
}

// memberModifiers appends the modifiers shared by methods, properties and
// events. Interface members omit abstract.
func memberModifiers(b *builder, d *types.Decl) {
	m := d.Modifiers
	inInterface := d.Containing != nil && d.Containing.TypeKind == types.TypeKindInterface
	if m.Has(types.ModStatic) {
		b.modifier("static")
	}
	if m.Has(types.ModExtern) {
		b.modifier("extern")
	}
	if m.Has(types.ModAbstract) && !inInterface {
		b.modifier("abstract")
	}
	if m.Has(types.ModVirtual) {
		b.modifier("virtual")
	}
	if m.Has(types.ModSealed) {
		b.modifier("sealed")
	}
	if m.Has(types.ModOverride) {
		b.modifier("override")
	}
	if m.Has(types.ModReadOnly) {
		b.modifier("readonly")
	}
}

func (r *Renderer) methodDecl(b *builder, m *types.Method, context string) error {
	b.keywords(m.Accessibility.Keywords())
	memberModifiers(b, &m.Decl)

	switch m.MethodKind {
	case types.MethodConstructor, types.MethodStaticConstructor:
		name, kind := m.Name, types.PartClassName
		if m.Containing != nil {
			name, kind = m.Containing.Name, typeNamePartKind(m.Containing.TypeKind)
		}
		b.addSymbol(kind, name, m)
	case types.MethodDestructor:
		b.punctuation("~")
		name := m.Name
		if m.Containing != nil {
			name = m.Containing.Name
		}
		b.addSymbol(types.PartClassName, name, m)
	case types.MethodOperator:
		r.returnType(b, m.ReturnType, context)
		b.space()
		b.keyword("operator")
		b.space()
		b.addSymbol(types.PartOperator, m.Operator, m)
	case types.MethodConversion:
		if m.Modifiers.Has(types.ModImplicit) {
			b.keyword("implicit")
		} else {
			b.keyword("explicit")
		}
		b.space()
		b.addSymbol(types.PartKeyword, "operator", m)
		b.space()
		r.returnType(b, m.ReturnType, context)
	default:
		r.returnType(b, m.ReturnType, context)
		b.space()
		b.addSymbol(types.PartMethodName, m.Name, m)
		r.typeParameterList(b, m.TypeParameters)
	}

	if err := r.parameterList(b, m.Parameters, "(", ")", context); err != nil {
		return err
	}
	r.constraints(b, m.TypeParameters, context)
	return nil
}

func (r *Renderer) parameterList(b *builder, params []types.Parameter, open, end, context string) error {
	b.punctuation(open)
	for i, p := range params {
		if i > 0 {
			b.punctuation(",")
			b.space()
		}
		if kw := p.RefKind.Keyword(); kw != "" {
			b.keyword(kw)
			b.space()
		}
		r.typeRef(b, p.Type, context)
		b.space()
		b.add(types.PartParameterName, p.Name)
		if p.HasDefault {
			b.space()
			b.punctuation("=")
			b.space()
			if err := r.defaultValue(b, p, context); err != nil {
				return fmt.Errorf("parameter %s: %w", p.Name, err)
			}
		}
	}
	b.punctuation(end)
	return nil
}

// defaultValue appends the explicit default of p. A nil value is written
// as default(T) for value types and null otherwise.
func (r *Renderer) defaultValue(b *builder, p types.Parameter, context string) error {
	c := p.Default
	if c.Kind == types.ConstantPrimitive && c.Value == nil {
		if p.Type.IsValueType() && p.Type.Kind != types.RefNullable {
			b.keyword("default")
			b.punctuation("(")
			r.typeRef(b, p.Type, context)
			b.punctuation(")")
		} else {
			b.keyword("null")
		}
		return nil
	}
	return r.constant(b, c, context)
}

func (r *Renderer) propertyDecl(b *builder, p *types.Property, context string) error {
	b.keywords(p.Accessibility.Keywords())
	memberModifiers(b, &p.Decl)
	r.typeRef(b, p.Type, context)
	b.space()

	if p.IsIndexer {
		b.addSymbol(types.PartKeyword, "this", p)
		if err := r.parameterList(b, p.Parameters, "[", "]", context); err != nil {
			return err
		}
	} else {
		b.addSymbol(types.PartPropertyName, p.Name, p)
	}

	b.space()
	b.punctuation("{")
	b.space()
	r.accessor(b, p, p.Getter, "get")
	setter := "set"
	if p.InitOnly {
		setter = "init"
	}
	r.accessor(b, p, p.Setter, setter)
	b.punctuation("}")
	return nil
}

func (r *Renderer) accessor(b *builder, p *types.Property, acc *types.Method, keyword string) {
	if acc == nil {
		return
	}
	if acc.Accessibility != types.AccessNotApplicable && acc.Accessibility != p.Accessibility {
		b.keywords(acc.Accessibility.Keywords())
	}
	b.keyword(keyword)
	b.punctuation(";")
	b.space()
}

func (r *Renderer) fieldDecl(b *builder, f *types.Field, context string) error {
	if f.IsEnumMember() {
		b.addSymbol(types.PartEnumMemberName, f.Name, f)
		if f.Constant != nil {
			b.space()
			b.punctuation("=")
			b.space()
			b.add(types.PartNumericLiteral, enumLiteral(f.Containing, f.Constant.Value))
		}
		return nil
	}

	b.keywords(f.Accessibility.Keywords())
	m := f.Modifiers
	if f.IsConst() {
		b.modifier("const")
	} else {
		if m.Has(types.ModStatic) {
			b.modifier("static")
		}
		if m.Has(types.ModReadOnly) {
			b.modifier("readonly")
		}
		if m.Has(types.ModVolatile) {
			b.modifier("volatile")
		}
	}
	r.typeRef(b, f.Type, context)
	b.space()

	if !f.IsConst() {
		b.addSymbol(types.PartFieldName, f.Name, f)
		return nil
	}
	b.addSymbol(types.PartConstantName, f.Name, f)
	if f.Constant != nil {
		b.space()
		b.punctuation("=")
		b.space()
		if err := r.constant(b, *f.Constant, context); err != nil {
			return fmt.Errorf("constant %s: %w", f.Name, err)
		}
	}
	return nil
}

func (r *Renderer) eventDecl(b *builder, e *types.Event, context string) {
	b.keywords(e.Accessibility.Keywords())
	memberModifiers(b, &e.Decl)
	b.keyword("event")
	b.space()
	r.typeRef(b, e.Type, context)
	b.space()
	b.addSymbol(types.PartEventName, e.Name, e)
}
