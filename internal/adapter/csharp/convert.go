// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package csharp

import (
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/petar-djukic/go-deflist/internal/typeexpr"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

// wellKnownAttributes places attributes commonly applied without a
// namespace qualifier.
var wellKnownAttributes = map[string]string{
	"AttributeUsageAttribute":          "System",
	"CLSCompliantAttribute":            "System",
	"FlagsAttribute":                   "System",
	"ObsoleteAttribute":                "System",
	"SerializableAttribute":            "System",
	"ParamArrayAttribute":              "System",
	"ConditionalAttribute":             "System.Diagnostics",
	"DebuggerDisplayAttribute":         "System.Diagnostics",
	"DebuggerHiddenAttribute":          "System.Diagnostics",
	"DebuggerNonUserCodeAttribute":     "System.Diagnostics",
	"DebuggerStepThroughAttribute":     "System.Diagnostics",
	"DefaultValueAttribute":            "System.ComponentModel",
	"EditorBrowsableAttribute":         "System.ComponentModel",
	"CompilerGeneratedAttribute":       "System.Runtime.CompilerServices",
	"ExtensionAttribute":               "System.Runtime.CompilerServices",
	"DefaultMemberAttribute":           "System.Reflection",
	"AssemblyVersionAttribute":         "System.Reflection",
	"AssemblyTitleAttribute":           "System.Reflection",
	"InternalsVisibleToAttribute":      "System.Runtime.CompilerServices",
	"MethodImplAttribute":              "System.Runtime.CompilerServices",
	"StructLayoutAttribute":            "System.Runtime.InteropServices",
	"NotNullWhenAttribute":             "System.Diagnostics.CodeAnalysis",
	"DoesNotReturnAttribute":           "System.Diagnostics.CodeAnalysis",
	"ExcludeFromCodeCoverageAttribute": "System.Diagnostics.CodeAnalysis",
}

// interfaceName matches the I-prefixed interface naming convention.
var interfaceName = regexp.MustCompile(`^I[A-Z]`)

var modifierKeywords = map[string]types.Modifiers{
	"static":   types.ModStatic,
	"abstract": types.ModAbstract,
	"virtual":  types.ModVirtual,
	"override": types.ModOverride,
	"sealed":   types.ModSealed,
	"readonly": types.ModReadOnly,
	"const":    types.ModConst,
	"volatile": types.ModVolatile,
	"extern":   types.ModExtern,
	"ref":      types.ModRef,
}

// converter turns parsed files into the types of one assembly. Partial
// declarations of a type are merged into one builder.
type converter struct {
	asm    *types.Assembly
	scope  typeexpr.Scope
	enums  map[string]map[string]int64 // Qualified enum name to member values
	decls  map[string]*typeDecl
	tops   []*typeDecl
	logger *slog.Logger
}

type typeDecl struct {
	ns   string
	kind types.TypeKind
	b    *types.TypeBuilder
}

func newConverter(asm *types.Assembly, logger *slog.Logger) *converter {
	return &converter{
		asm:    asm,
		scope:  typeexpr.NewScope(),
		enums:  make(map[string]map[string]int64),
		decls:  make(map[string]*typeDecl),
		logger: logger,
	}
}

// declare records the types declared in f and evaluates enum member
// values. Every file is declared before any is converted.
func (c *converter) declare(f *sourceFile) {
	typeDeclarations(f.tree.RootNode(), f.src, "", func(n *sitter.Node, ns string) {
		c.declareType(f, n, ns, nil)
	})
}

func (c *converter) declareType(f *sourceFile, n *sitter.Node, ns string, containing []string) {
	name := nameOf(n, f.src)
	if name == "" {
		return
	}
	kind := kindOf(n)
	c.scope.Declare(name, typeexpr.Declared{Namespace: ns, Containing: containing, Kind: kind})
	if kind == types.TypeKindEnum {
		c.enumValues(f, n, qualify(ns, qualify(containing...), name))
	}
	inner := append(slices.Clone(containing), name)
	for _, m := range namedChildren(body(n)) {
		if isTypeDeclaration(m) {
			c.declareType(f, m, ns, inner)
		}
	}
}

// enumValues evaluates member values: an explicit value, or one more than
// the previous member.
func (c *converter) enumValues(f *sourceFile, n *sitter.Node, qualified string) {
	values, ok := c.enums[qualified]
	if !ok {
		values = make(map[string]int64)
		c.enums[qualified] = values
	}
	enum := nameOf(n, f.src)
	var next int64
	for _, m := range childrenOfType(body(n), "enum_member_declaration") {
		name := nameOf(m, f.src)
		v := next
		if expr := initializer(m); expr != nil {
			if ev, ok := evalInt(expr, f.src, enum, values); ok {
				v = ev
			} else {
				c.logger.Debug("enum value not constant", "file", f.path, "member", qualified+"."+name)
			}
		}
		values[name] = v
		next = v + 1
	}
}

// convert adds the declarations of f to the assembly.
func (c *converter) convert(f *sourceFile) {
	root := f.tree.RootNode()
	s := c.scope
	s.Imports = append([]string{"System"}, usings(root, f.src)...)

	for _, a := range childrenOfType(root, "global_attribute_list", "attribute_list") {
		target := childOfType(a, "attribute_target_specifier")
		if a.Type() == "attribute_list" && (target == nil || !strings.HasPrefix(text(target, f.src), "assembly")) {
			continue
		}
		c.asm.Attributes = append(c.asm.Attributes, c.attributeList(f, s, a)...)
	}

	typeDeclarations(root, f.src, "", func(n *sitter.Node, ns string) {
		c.typeDecl(f, s, n, ns, nil, nil)
	})
}

// finish builds the merged type declarations.
func (c *converter) finish() {
	for _, td := range c.tops {
		c.asm.AddType(td.b.Build(c.asm.Namespace(td.ns)))
	}
}

func (c *converter) typeDecl(f *sourceFile, s typeexpr.Scope, n *sitter.Node, ns string, containing []string, parent *typeDecl) {
	name := nameOf(n, f.src)
	if name == "" {
		return
	}
	kind := kindOf(n)
	tpList := field(n, "type_parameters")
	if tpList == nil {
		tpList = childOfType(n, "type_parameter_list")
	}
	tpNames := typeParameterNames(tpList, f.src)
	s = s.With(tpNames...)

	key := qualify(ns, qualify(containing...), name)
	if len(tpNames) > 0 {
		key += "`" + strconv.Itoa(len(tpNames))
	}
	access, mods := modifiers(n, f.src)
	td, merged := c.decls[key]
	if !merged {
		def := types.AccessInternal
		if parent != nil {
			def = memberDefault(parent.kind)
		}
		td = &typeDecl{ns: ns, kind: kind, b: types.NewType(kind, name).Access(def)}
		c.decls[key] = td
		if parent != nil {
			parent.b.Nest(td.b)
		} else {
			c.tops = append(c.tops, td)
		}
		td.b.TypeParameters(c.typeParameters(f, s, tpList, constraintClauses(n))...)
	}
	if access != types.AccessNotApplicable {
		td.b.Access(access)
	}
	td.b.Modifiers(mods).Attributes(c.attributes(f, s, n)...)

	c.bases(f, s, n, td)
	if kind == types.TypeKindDelegate {
		td.b.Signature(c.returnType(f, s, n), c.parameters(f, s, field(n, "parameters"))...)
		return
	}
	if kind == types.TypeKindEnum {
		c.enumMembers(f, s, n, td, key)
		return
	}

	inner := append(slices.Clone(containing), name)
	var names []string
	for _, m := range namedChildren(body(n)) {
		if isTypeDeclaration(m) {
			c.typeDecl(f, s, m, ns, inner, td)
			continue
		}
		for _, sym := range c.members(f, s, m, kind) {
			names = append(names, sym.Info().Name)
			td.b.Add(sym)
		}
	}
	if params := recordParameters(n); params != nil {
		c.record(f, s, n, params, td, names)
	}
}

// bases fills the base list. An enum base is its underlying type. The first
// base of a class is its base class unless it names an interface: a type
// declared as one, or a type outside the sources that follows the
// I-prefixed naming convention.
func (c *converter) bases(f *sourceFile, s typeexpr.Scope, n *sitter.Node, td *typeDecl) {
	list := field(n, "bases")
	if list == nil {
		list = childOfType(n, "base_list")
	}
	for i, bn := range namedChildren(list) {
		switch bn.Type() {
		case "argument_list":
			continue
		case "primary_constructor_base_type":
			bn = firstNamed(bn)
		}
		ref := c.typeRef(f, s, bn)
		switch {
		case td.kind == types.TypeKindEnum:
			td.b.Underlying(ref)
		case td.kind == types.TypeKindClass && i == 0 && !c.isInterface(ref):
			td.b.Base(ref)
		default:
			if ref.Kind == types.RefNamed && c.isInterface(ref) {
				ref.TypeKind = types.TypeKindInterface
			}
			td.b.Implements(ref)
		}
	}
}

func (c *converter) isInterface(ref types.TypeRef) bool {
	if ref.Kind != types.RefNamed || ref.Special != types.SpecialNone {
		return ref.Special == types.SpecialIEnumerable || ref.Special == types.SpecialIEnumerableT
	}
	if d, ok := c.scope.Names[ref.Name]; ok && d.Namespace == ref.Namespace {
		return d.Kind == types.TypeKindInterface
	}
	return interfaceName.MatchString(ref.Name)
}

func (c *converter) enumMembers(f *sourceFile, s typeexpr.Scope, n *sitter.Node, td *typeDecl, key string) {
	values := c.enums[key]
	for _, m := range childrenOfType(body(n), "enum_member_declaration") {
		name := nameOf(m, f.src)
		member := types.NewEnumMember(name, values[name])
		member.Attributes = c.attributes(f, s, m)
		td.b.Add(member)
	}
}

// recordParameters returns the primary constructor parameters of a record.
func recordParameters(n *sitter.Node) *sitter.Node {
	if n.Type() != "record_declaration" && n.Type() != "record_struct_declaration" {
		return nil
	}
	if params := field(n, "parameters"); params != nil {
		return params
	}
	return childOfType(n, "parameter_list")
}

// record adds the primary constructor of a record and a property for each
// of its parameters the body does not declare itself.
func (c *converter) record(f *sourceFile, s typeexpr.Scope, n, list *sitter.Node, td *typeDecl, declared []string) {
	params := c.parameters(f, s, list)
	td.b.Add(types.NewConstructor(params...))
	mutable := td.kind == types.TypeKindStruct && !hasModifier(n, f.src, "readonly")
	for _, p := range params {
		if slices.Contains(declared, p.Name) {
			continue
		}
		prop := types.NewProperty(p.Name, p.Type, true, true)
		prop.InitOnly = !mutable
		td.b.Add(prop)
	}
}

// body returns the member list of a type declaration.
func body(n *sitter.Node) *sitter.Node {
	if b := field(n, "body"); b != nil {
		return b
	}
	return childOfType(n, "declaration_list", "enum_member_declaration_list")
}

// memberDefault returns the accessibility of members declared without one.
func memberDefault(owner types.TypeKind) types.Accessibility {
	if owner == types.TypeKindInterface || owner == types.TypeKindEnum {
		return types.AccessPublic
	}
	return types.AccessPrivate
}

// modifiers reads the modifier keywords of a declaration.
func modifiers(n *sitter.Node, src []byte) (types.Accessibility, types.Modifiers) {
	var access []string
	var mods types.Modifiers
	for _, m := range childrenOfType(n, "modifier") {
		kw := strings.TrimSpace(text(m, src))
		switch kw {
		case "public", "private", "protected", "internal":
			access = append(access, kw)
		default:
			mods |= modifierKeywords[kw]
		}
	}
	return accessibility(access), mods
}

func hasModifier(n *sitter.Node, src []byte, kw string) bool {
	for _, m := range childrenOfType(n, "modifier") {
		if strings.TrimSpace(text(m, src)) == kw {
			return true
		}
	}
	return false
}

func accessibility(keywords []string) types.Accessibility {
	slices.Sort(keywords)
	switch strings.Join(keywords, " ") {
	case "public":
		return types.AccessPublic
	case "internal":
		return types.AccessInternal
	case "protected":
		return types.AccessProtected
	case "private":
		return types.AccessPrivate
	case "internal protected":
		return types.AccessProtectedOrInternal
	case "private protected":
		return types.AccessProtectedAndInternal
	default:
		return types.AccessNotApplicable
	}
}

// typeRef parses a type node. Types the parser does not understand, such
// as function pointers, are kept as written.
func (c *converter) typeRef(f *sourceFile, s typeexpr.Scope, n *sitter.Node) types.TypeRef {
	if n == nil {
		return types.Special(types.SpecialObject)
	}
	expr := strings.TrimSpace(text(n, f.src))
	for _, prefix := range []string{"scoped ", "ref readonly ", "ref "} {
		expr = strings.TrimPrefix(expr, prefix)
	}
	ref, err := s.Parse(expr)
	if err != nil {
		c.logger.Debug("keeping type as written", "file", f.path, "type", expr, "error", err)
		return types.Keyword(expr)
	}
	return ref
}

func (c *converter) returnType(f *sourceFile, s typeexpr.Scope, n *sitter.Node) types.TypeRef {
	return c.typeRef(f, s, field(n, "returns", "type"))
}

func typeParameterNames(list *sitter.Node, src []byte) []string {
	var names []string
	for _, tp := range childrenOfType(list, "type_parameter") {
		names = append(names, nameOf(tp, src))
	}
	return names
}

func constraintClauses(n *sitter.Node) []*sitter.Node {
	return childrenOfType(n, "type_parameter_constraints_clause")
}

// typeParameters converts a type parameter list and its where clauses.
func (c *converter) typeParameters(f *sourceFile, s typeexpr.Scope, list *sitter.Node, clauses []*sitter.Node) []types.TypeParameter {
	var tps []types.TypeParameter
	for _, tpn := range childrenOfType(list, "type_parameter") {
		tp := types.TypeParameter{Name: nameOf(tpn, f.src), Attributes: c.attributes(f, s, tpn)}
		switch {
		case hasToken(tpn, "in"):
			tp.Variance = types.VarianceIn
		case hasToken(tpn, "out"):
			tp.Variance = types.VarianceOut
		}
		tps = append(tps, tp)
	}
	for _, clause := range clauses {
		target := field(clause, "target")
		if target == nil {
			target = childOfType(clause, "identifier")
		}
		i := slices.IndexFunc(tps, func(tp types.TypeParameter) bool { return tp.Name == text(target, f.src) })
		if i < 0 {
			continue
		}
		for _, cn := range namedChildren(clause) {
			if target != nil && cn.StartByte() == target.StartByte() {
				continue
			}
			c.constraint(f, s, cn, &tps[i])
		}
	}
	return tps
}

func (c *converter) constraint(f *sourceFile, s typeexpr.Scope, n *sitter.Node, tp *types.TypeParameter) {
	kw := strings.Join(strings.Fields(text(n, f.src)), "")
	switch kw {
	case "class", "class?":
		tp.ReferenceType = true
	case "struct":
		tp.ValueType = true
	case "unmanaged":
		tp.Unmanaged = true
	case "notnull":
		tp.NotNull = true
	case "new()":
		tp.Constructor = true
	case "default", "":
	default:
		tn := n
		if n.Type() == "type_parameter_constraint" || n.Type() == "type_constraint" {
			if inner := field(n, "type"); inner != nil {
				tn = inner
			} else if inner := firstNamed(n); inner != nil {
				tn = inner
			}
		}
		tp.ConstraintTypes = append(tp.ConstraintTypes, c.typeRef(f, s, tn))
	}
}

// attributes converts the attribute lists of a declaration, skipping
// lists that target something other than the declaration itself.
func (c *converter) attributes(f *sourceFile, s typeexpr.Scope, n *sitter.Node) []types.Attribute {
	var attrs []types.Attribute
	for _, list := range childrenOfType(n, "attribute_list") {
		if childOfType(list, "attribute_target_specifier") != nil {
			continue
		}
		attrs = append(attrs, c.attributeList(f, s, list)...)
	}
	return attrs
}

// attributeList converts the attributes of one list. An argument that does
// not evaluate to a constant drops all of the attribute's arguments, since
// the remaining positional arguments would bind to the wrong parameters.
func (c *converter) attributeList(f *sourceFile, s typeexpr.Scope, list *sitter.Node) []types.Attribute {
	var attrs []types.Attribute
	for _, an := range childrenOfType(list, "attribute") {
		attr := types.Attribute{Type: c.attributeType(f, s, field(an, "name"))}
		for _, arg := range childrenOfType(childOfType(an, "attribute_argument_list"), "attribute_argument") {
			name := ""
			if ne := childOfType(arg, "name_equals"); ne != nil {
				name = text(firstNamed(ne), f.src)
			}
			value, ok := c.constant(f, s, lastNamed(arg), types.TypeRef{})
			if !ok {
				c.logger.Debug("attribute argument not constant", "file", f.path, "argument", text(arg, f.src))
				attr.ConstructorArgs, attr.NamedArgs = nil, nil
				break
			}
			if name != "" {
				attr.NamedArgs = append(attr.NamedArgs, types.NamedArgument{Name: name, Value: value})
			} else {
				attr.ConstructorArgs = append(attr.ConstructorArgs, value)
			}
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// attributeType resolves an attribute name, adding the Attribute suffix.
func (c *converter) attributeType(f *sourceFile, s typeexpr.Scope, n *sitter.Node) types.TypeRef {
	name := strings.TrimSpace(text(n, f.src))
	if !strings.HasSuffix(name, "Attribute") {
		name += "Attribute"
	}
	ref, err := s.Parse(name)
	if err != nil {
		return types.Named("", name, types.TypeKindClass)
	}
	if ref.Namespace == "" && len(ref.ContainingTypes) == 0 {
		if ns, ok := wellKnownAttributes[ref.Name]; ok {
			ref = types.Named(ns, ref.Name, types.TypeKindClass)
		}
	}
	return ref
}
