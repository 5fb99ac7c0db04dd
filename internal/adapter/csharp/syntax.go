// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package csharp

import (
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

// declarationKinds maps type declaration nodes to type kinds.
var declarationKinds = map[string]types.TypeKind{
	"class_declaration":         types.TypeKindClass,
	"record_declaration":        types.TypeKindClass,
	"record_struct_declaration": types.TypeKindStruct,
	"struct_declaration":        types.TypeKindStruct,
	"interface_declaration":     types.TypeKindInterface,
	"enum_declaration":          types.TypeKindEnum,
	"delegate_declaration":      types.TypeKindDelegate,
}

func isTypeDeclaration(n *sitter.Node) bool {
	_, ok := declarationKinds[n.Type()]
	return ok
}

// kindOf returns the kind of a type declaration. A record declared with
// "record struct" is a struct.
func kindOf(n *sitter.Node) types.TypeKind {
	kind := declarationKinds[n.Type()]
	if n.Type() == "record_declaration" && hasToken(n, "struct") {
		return types.TypeKindStruct
	}
	return kind
}

// field returns the first child found under one of the field names.
func field(n *sitter.Node, names ...string) *sitter.Node {
	if n == nil {
		return nil
	}
	for _, name := range names {
		if c := n.ChildByFieldName(name); c != nil {
			return c
		}
	}
	return nil
}

func text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := range int(n.NamedChildCount()) {
		out = append(out, n.NamedChild(i))
	}
	return out
}

func childrenOfType(n *sitter.Node, kinds ...string) []*sitter.Node {
	var out []*sitter.Node
	for _, c := range namedChildren(n) {
		if slices.Contains(kinds, c.Type()) {
			out = append(out, c)
		}
	}
	return out
}

func childOfType(n *sitter.Node, kinds ...string) *sitter.Node {
	if cs := childrenOfType(n, kinds...); len(cs) > 0 {
		return cs[0]
	}
	return nil
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if n == nil || n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}

func lastNamed(n *sitter.Node) *sitter.Node {
	if n == nil || n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(int(n.NamedChildCount()) - 1)
}

// hasToken reports whether n has an anonymous child with the given token.
func hasToken(n *sitter.Node, token string) bool {
	for i := range int(n.ChildCount()) {
		if c := n.Child(i); !c.IsNamed() && c.Type() == token {
			return true
		}
	}
	return false
}

// nameOf returns the declared name of n: its name field or, failing that,
// its last identifier child.
func nameOf(n *sitter.Node, src []byte) string {
	if name := field(n, "name"); name != nil {
		return text(name, src)
	}
	ids := childrenOfType(n, "identifier")
	if len(ids) == 0 {
		return ""
	}
	return text(ids[len(ids)-1], src)
}

// initializer returns the expression after '=' in a declarator, parameter
// or enum member.
func initializer(n *sitter.Node) *sitter.Node {
	if v := field(n, "value"); v != nil {
		return v
	}
	if eq := childOfType(n, "equals_value_clause"); eq != nil {
		return firstNamed(eq)
	}
	seen := false
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		if !c.IsNamed() && c.Type() == "=" {
			seen = true
			continue
		}
		if seen && c.IsNamed() {
			return c
		}
	}
	return nil
}

// typeDeclarations calls fn for each type declared directly in a
// compilation unit or namespace body, with its namespace.
func typeDeclarations(n *sitter.Node, src []byte, ns string, fn func(decl *sitter.Node, ns string)) {
	for _, c := range namedChildren(n) {
		switch c.Type() {
		case "namespace_declaration":
			inner := qualify(ns, strings.Join(strings.Fields(text(field(c, "name"), src)), ""))
			typeDeclarations(field(c, "body"), src, inner, fn)
		case "file_scoped_namespace_declaration":
			ns = qualify(ns, strings.Join(strings.Fields(text(field(c, "name"), src)), ""))
			typeDeclarations(c, src, ns, fn)
		case "declaration_list":
			typeDeclarations(c, src, ns, fn)
		default:
			if isTypeDeclaration(c) {
				fn(c, ns)
			}
		}
	}
}

// usings returns the namespaces imported by the using directives of a
// file. Aliases and static imports are skipped.
func usings(n *sitter.Node, src []byte) []string {
	var out []string
	for _, c := range namedChildren(n) {
		switch c.Type() {
		case "using_directive":
			if hasToken(c, "static") || hasToken(c, "=") || childOfType(c, "name_equals") != nil {
				continue
			}
			if name := lastNamed(c); name != nil {
				out = append(out, strings.Join(strings.Fields(text(name, src)), ""))
			}
		case "namespace_declaration":
			out = append(out, usings(field(c, "body"), src)...)
		case "file_scoped_namespace_declaration", "declaration_list":
			out = append(out, usings(c, src)...)
		}
	}
	return out
}

func qualify(parts ...string) string {
	return strings.Join(slices.DeleteFunc(slices.Clone(parts), func(s string) bool { return s == "" }), ".")
}
