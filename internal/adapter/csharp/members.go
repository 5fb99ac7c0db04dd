// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package csharp

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/petar-djukic/go-deflist/internal/typeexpr"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

var parameterModifiers = map[string]types.RefKind{
	"ref":    types.RefRef,
	"out":    types.RefOut,
	"in":     types.RefIn,
	"params": types.RefParams,
	"this":   types.RefThis,
}

// members converts one member declaration. Field and event declarations
// may declare several members.
func (c *converter) members(f *sourceFile, s typeexpr.Scope, n *sitter.Node, owner types.TypeKind) []types.Symbol {
	access, mods := modifiers(n, f.src)
	if access == types.AccessNotApplicable {
		access = memberDefault(owner)
	}
	attrs := c.attributes(f, s, n)

	var syms []types.Symbol
	switch n.Type() {
	case "field_declaration":
		syms = c.fields(f, s, n, mods)
	case "event_field_declaration":
		decl := childOfType(n, "variable_declaration")
		t := c.typeRef(f, s, field(decl, "type"))
		for _, v := range childrenOfType(decl, "variable_declarator") {
			syms = append(syms, types.NewEvent(nameOf(v, f.src), t))
		}
	case "event_declaration":
		ev := types.NewEvent(nameOf(n, f.src), c.typeRef(f, s, field(n, "type")))
		c.accessors(f, s, n, map[string]*types.Method{"add": ev.Adder, "remove": ev.Remover})
		syms = append(syms, ev)
	case "method_declaration":
		if m := c.method(f, s, n); m != nil {
			syms = append(syms, m)
		}
	case "constructor_declaration":
		m := types.NewConstructor(c.parameters(f, s, field(n, "parameters"))...)
		if mods.Has(types.ModStatic) {
			m.MethodKind = types.MethodStaticConstructor
			m.Name = ".cctor"
		}
		syms = append(syms, m)
	case "destructor_declaration":
		m := types.NewMethod("Finalize", types.Void())
		m.MethodKind = types.MethodDestructor
		access, mods = types.AccessProtected, mods|types.ModOverride
		syms = append(syms, m)
	case "operator_declaration":
		op := strings.TrimSpace(text(field(n, "operator"), f.src))
		syms = append(syms, types.NewOperator(op, c.returnType(f, s, n), c.parameters(f, s, field(n, "parameters"))...))
	case "conversion_operator_declaration":
		params := c.parameters(f, s, field(n, "parameters"))
		if len(params) != 1 {
			c.logger.Debug("skipping conversion", "file", f.path, "parameters", len(params))
			return nil
		}
		syms = append(syms, types.NewConversion(hasToken(n, "implicit"), c.typeRef(f, s, field(n, "type")), params[0]))
	case "property_declaration", "indexer_declaration":
		if p := c.property(f, s, n); p != nil {
			syms = append(syms, p)
		}
	default:
		return nil
	}

	for _, sym := range syms {
		d := sym.Info()
		d.Accessibility = access
		d.Modifiers |= mods
		d.Attributes = attrs
	}
	return syms
}

func (c *converter) fields(f *sourceFile, s typeexpr.Scope, n *sitter.Node, mods types.Modifiers) []types.Symbol {
	decl := childOfType(n, "variable_declaration")
	t := c.typeRef(f, s, field(decl, "type"))
	var syms []types.Symbol
	for _, v := range childrenOfType(decl, "variable_declarator") {
		name := nameOf(v, f.src)
		if !mods.Has(types.ModConst) {
			syms = append(syms, types.NewField(name, t))
			continue
		}
		value, ok := c.constant(f, s, initializer(v), t)
		if !ok {
			c.logger.Debug("constant value not evaluated", "file", f.path, "field", name)
			value = types.TypedConstant{Kind: types.ConstantPrimitive, Type: t}
		}
		syms = append(syms, types.NewConst(name, t, value))
	}
	return syms
}

// method converts a method declaration. Explicit interface
// implementations keep the interface in their name.
func (c *converter) method(f *sourceFile, s typeexpr.Scope, n *sitter.Node) *types.Method {
	tpList := field(n, "type_parameters")
	if tpList == nil {
		tpList = childOfType(n, "type_parameter_list")
	}
	s = s.With(typeParameterNames(tpList, f.src)...)

	m := types.NewMethod(nameOf(n, f.src), c.returnType(f, s, n), c.parameters(f, s, field(n, "parameters"))...)
	m.TypeParameters = c.typeParameters(f, s, tpList, constraintClauses(n))
	if iface := childOfType(n, "explicit_interface_specifier"); iface != nil {
		m.MethodKind = types.MethodExplicitInterfaceImplementation
		m.Name = strings.TrimSuffix(strings.TrimSpace(text(iface, f.src)), ".") + "." + m.Name
	}
	return m
}

// property converts a property or an indexer. An expression body declares
// a getter only.
func (c *converter) property(f *sourceFile, s typeexpr.Scope, n *sitter.Node) *types.Property {
	if childOfType(n, "explicit_interface_specifier") != nil {
		c.logger.Debug("skipping explicit interface property", "file", f.path, "property", text(field(n, "name"), f.src))
		return nil
	}
	t := c.typeRef(f, s, field(n, "type"))
	list := field(n, "accessors")
	if list == nil {
		list = childOfType(n, "accessor_list")
	}
	present := make(map[string]bool)
	for _, a := range childrenOfType(list, "accessor_declaration") {
		present[accessorKeyword(a, f.src)] = true
	}
	if list == nil {
		present["get"] = true
	}

	var p *types.Property
	if n.Type() == "indexer_declaration" {
		p = types.NewIndexer(t, present["get"], present["set"] || present["init"], c.parameters(f, s, field(n, "parameters"))...)
	} else {
		p = types.NewProperty(nameOf(n, f.src), t, present["get"], present["set"] || present["init"])
	}
	p.InitOnly = present["init"]
	c.accessors(f, s, n, map[string]*types.Method{"get": p.Getter, "set": p.Setter, "init": p.Setter})
	return p
}

// accessors applies the accessibility and attributes declared on
// accessors to the matching accessor methods.
func (c *converter) accessors(f *sourceFile, s typeexpr.Scope, n *sitter.Node, byKeyword map[string]*types.Method) {
	list := field(n, "accessors")
	if list == nil {
		list = childOfType(n, "accessor_list")
	}
	for _, a := range childrenOfType(list, "accessor_declaration") {
		m := byKeyword[accessorKeyword(a, f.src)]
		if m == nil {
			continue
		}
		if access, _ := modifiers(a, f.src); access != types.AccessNotApplicable {
			m.Accessibility = access
		}
		m.Attributes = c.attributes(f, s, a)
	}
}

func accessorKeyword(n *sitter.Node, src []byte) string {
	if name := field(n, "name"); name != nil {
		return text(name, src)
	}
	for _, kw := range []string{"get", "set", "init", "add", "remove"} {
		if hasToken(n, kw) {
			return kw
		}
	}
	return ""
}

// parameters converts a parameter list or bracketed parameter list.
func (c *converter) parameters(f *sourceFile, s typeexpr.Scope, list *sitter.Node) []types.Parameter {
	var params []types.Parameter
	for i, pn := range childrenOfType(list, "parameter", "parameter_array") {
		name := nameOf(pn, f.src)
		if name == "" {
			name = "arg" + strconv.Itoa(i)
		}
		tn := field(pn, "type")
		if tn == nil && pn.Type() == "parameter_array" {
			tn = firstNamed(pn)
			for _, ch := range namedChildren(pn) {
				if ch.Type() != "attribute_list" {
					tn = ch
					break
				}
			}
		}
		p := types.Param(name, c.typeRef(f, s, tn))
		p.Attributes = c.attributes(f, s, pn)
		p.RefKind = refKind(pn, f.src)
		if expr := initializer(pn); expr != nil {
			p.HasDefault = true
			value, ok := c.constant(f, s, expr, p.Type)
			if !ok {
				c.logger.Debug("default value not evaluated", "file", f.path, "parameter", name)
				value = types.TypedConstant{Kind: types.ConstantPrimitive, Type: p.Type}
			}
			p.Default = value
		}
		params = append(params, p)
	}
	return params
}

func refKind(n *sitter.Node, src []byte) types.RefKind {
	if n.Type() == "parameter_array" {
		return types.RefParams
	}
	for _, m := range childrenOfType(n, "parameter_modifier", "modifier") {
		if k, ok := parameterModifiers[strings.TrimSpace(text(m, src))]; ok {
			return k
		}
	}
	for kw, k := range parameterModifiers {
		if hasToken(n, kw) {
			return k
		}
	}
	return types.RefNone
}
