// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package golang builds the symbol graph from type-checked Go packages.
//
// A module becomes an assembly and each package a namespace. Structs,
// interfaces and function types map to structs, interfaces and delegates;
// a named basic type with constants of that type maps to an enum; other
// named types map to classes. Package-level functions, variables and
// constants become static members of a class named after the package.
// Embedded types and the interfaces a type implements form its base list.
// Exported identifiers are public and unexported ones internal.
package golang

import (
	"go/constant"
	"go/token"
	gotypes "go/types"
	"path"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

// Converter converts the packages of one module.
type Converter struct {
	modulePath string
	stringer   *gotypes.Interface
	errorIface *gotypes.Interface
}

// NewConverter returns a converter for packages of the given module.
func NewConverter(modulePath string) *Converter {
	str := gotypes.NewFunc(0, nil, "String", gotypes.NewSignatureType(nil, nil, nil, nil,
		gotypes.NewTuple(gotypes.NewVar(0, nil, "", gotypes.Typ[gotypes.String])), false))
	return &Converter{
		modulePath: modulePath,
		stringer:   gotypes.NewInterfaceType([]*gotypes.Func{str}, nil).Complete(),
		errorIface: gotypes.Universe.Lookup("error").Type().Underlying().(*gotypes.Interface),
	}
}

// Namespace returns the namespace of a package: its import path relative
// to the module, prefixed with the module's last path element, with '/'
// turned into '.'. Packages outside the module use their full path.
func (c *Converter) Namespace(pkgPath, pkgName string) string {
	var rel string
	switch {
	case pkgPath == c.modulePath:
		rel = path.Base(c.modulePath)
	case c.modulePath != "" && strings.HasPrefix(pkgPath, c.modulePath+"/"):
		rel = path.Base(c.modulePath) + pkgPath[len(c.modulePath):]
	case pkgPath == "" || pkgPath == "main":
		rel = pkgName
	default:
		rel = pkgPath
	}
	segments := strings.Split(rel, "/")
	for i, s := range segments {
		segments[i] = identifier(s)
	}
	return strings.Join(segments, ".")
}

// identifier replaces characters that cannot appear in an identifier.
func identifier(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func accessOf(name string) types.Accessibility {
	if token.IsExported(name) {
		return types.AccessPublic
	}
	return types.AccessInternal
}

// Package adds the declarations of pkg to asm.
func (c *Converter) Package(asm *types.Assembly, pkg *gotypes.Package) {
	ns := asm.Namespace(c.Namespace(pkg.Path(), pkg.Name()))
	scope := pkg.Scope()

	var named []*gotypes.TypeName
	var funcs []*gotypes.Func
	var vars []*gotypes.Var
	var consts []*gotypes.Const
	for _, name := range scope.Names() {
		switch obj := scope.Lookup(name).(type) {
		case *gotypes.TypeName:
			if !obj.IsAlias() {
				named = append(named, obj)
			}
		case *gotypes.Func:
			funcs = append(funcs, obj)
		case *gotypes.Var:
			vars = append(vars, obj)
		case *gotypes.Const:
			consts = append(consts, obj)
		}
	}

	// Constants typed with a named integer type make that type an enum.
	// Other typed constants stay on the package class.
	enumValues := make(map[*gotypes.TypeName][]*gotypes.Const)
	var loose []*gotypes.Const
	for _, k := range consts {
		if n, ok := k.Type().(*gotypes.Named); ok && n.Obj().Pkg() == pkg {
			if b, basic := n.Underlying().(*gotypes.Basic); basic && b.Info()&gotypes.IsInteger != 0 {
				enumValues[n.Obj()] = append(enumValues[n.Obj()], k)
				continue
			}
		}
		loose = append(loose, k)
	}

	var ifaces []*gotypes.Named
	for _, tn := range named {
		if n, ok := tn.Type().(*gotypes.Named); ok && gotypes.IsInterface(n) {
			ifaces = append(ifaces, n)
		}
	}

	for _, tn := range named {
		asm.AddType(c.namedType(tn, enumValues[tn], ifaces).Build(ns))
	}
	if len(funcs)+len(vars)+len(loose) > 0 {
		asm.AddType(c.packageClass(pkg, funcs, vars, loose).Build(ns))
	}
}

func (c *Converter) namedType(tn *gotypes.TypeName, values []*gotypes.Const, ifaces []*gotypes.Named) *types.TypeBuilder {
	n := tn.Type().(*gotypes.Named)
	kind := typeKindOf(n)
	if len(values) > 0 {
		kind = types.TypeKindEnum
	}
	b := types.NewType(kind, tn.Name()).Access(accessOf(tn.Name()))
	if tps := n.TypeParams(); tps != nil {
		for i := range tps.Len() {
			b.TypeParameters(c.typeParameter(tps.At(i)))
		}
	}

	switch u := n.Underlying().(type) {
	case *gotypes.Struct:
		for i := range u.NumFields() {
			f := u.Field(i)
			if f.Embedded() {
				t := f.Type()
				if ptr, ok := t.(*gotypes.Pointer); ok {
					t = ptr.Elem()
				}
				b.Implements(c.typeRef(t))
				continue
			}
			b.Add(c.field(f))
		}
	case *gotypes.Interface:
		for i := range u.NumEmbeddeds() {
			b.Implements(c.typeRef(u.EmbeddedType(i)))
		}
		for i := range u.NumExplicitMethods() {
			b.Add(c.method(u.ExplicitMethod(i)))
		}
	case *gotypes.Signature:
		b.Signature(c.results(u), c.parameters(u)...)
	case *gotypes.Basic:
		if kind == types.TypeKindEnum {
			b.Underlying(c.typeRef(u))
			for _, k := range values {
				f := types.NewEnumMember(k.Name(), enumValue(k.Val()))
				f.Accessibility = accessOf(k.Name())
				b.Add(f)
			}
		}
	default:
		if kind == types.TypeKindClass {
			b.Base(c.typeRef(u))
		}
	}

	if kind != types.TypeKindInterface && kind != types.TypeKindDelegate {
		for _, iface := range c.implemented(n, ifaces) {
			b.Implements(iface)
		}
	}
	for i := range n.NumMethods() {
		b.Add(c.method(n.Method(i)))
	}
	return b
}

// implemented returns the same-package interfaces, error and fmt.Stringer
// that n or *n implements.
func (c *Converter) implemented(n *gotypes.Named, ifaces []*gotypes.Named) []types.TypeRef {
	if n.TypeParams() != nil {
		return nil
	}
	ptr := gotypes.NewPointer(n)
	implements := func(iface *gotypes.Interface) bool {
		if iface.NumMethods() == 0 {
			return false
		}
		return gotypes.Implements(n, iface) || gotypes.Implements(ptr, iface)
	}

	var refs []types.TypeRef
	for _, iface := range ifaces {
		if iface.TypeParams() != nil {
			continue
		}
		if implements(iface.Underlying().(*gotypes.Interface)) {
			refs = append(refs, c.typeRef(iface))
		}
	}
	if implements(c.errorIface) {
		refs = append(refs, types.Keyword("error"))
	}
	if implements(c.stringer) {
		refs = append(refs, types.Named("fmt", "Stringer", types.TypeKindInterface))
	}
	return refs
}

func (c *Converter) typeParameter(tp *gotypes.TypeParam) types.TypeParameter {
	out := types.TypeParameter{Name: tp.Obj().Name()}
	constraint := gotypes.Unalias(tp.Constraint())
	if named, ok := constraint.(*gotypes.Named); ok {
		if named.Obj().Pkg() == nil && named.Obj().Name() == "comparable" {
			out.NotNull = true
		} else {
			out.ConstraintTypes = append(out.ConstraintTypes, c.typeRef(named))
		}
		return out
	}
	if iface, ok := constraint.(*gotypes.Interface); ok {
		for i := range iface.NumEmbeddeds() {
			if _, ok := iface.EmbeddedType(i).(*gotypes.Named); ok {
				out.ConstraintTypes = append(out.ConstraintTypes, c.typeRef(iface.EmbeddedType(i)))
			}
		}
	}
	return out
}

func (c *Converter) field(v *gotypes.Var) *types.Field {
	f := types.NewField(v.Name(), c.typeRef(v.Type()))
	f.Accessibility = accessOf(v.Name())
	return f
}

func (c *Converter) method(fn *gotypes.Func) *types.Method {
	sig := fn.Type().(*gotypes.Signature)
	m := types.NewMethod(fn.Name(), c.results(sig), c.parameters(sig)...)
	m.Accessibility = accessOf(fn.Name())
	if tps := sig.TypeParams(); tps != nil {
		for i := range tps.Len() {
			m.TypeParameters = append(m.TypeParameters, c.typeParameter(tps.At(i)))
		}
	}
	return m
}

// parameters converts the parameter list of sig. Unnamed parameters are
// numbered; a variadic parameter becomes a params array.
func (c *Converter) parameters(sig *gotypes.Signature) []types.Parameter {
	params := make([]types.Parameter, 0, sig.Params().Len())
	for i := range sig.Params().Len() {
		v := sig.Params().At(i)
		name := v.Name()
		if name == "" || name == "_" {
			name = "arg" + strconv.Itoa(i)
		}
		p := types.Param(name, c.typeRef(v.Type()))
		if sig.Variadic() && i == sig.Params().Len()-1 {
			p.RefKind = types.RefParams
		}
		params = append(params, p)
	}
	return params
}

// packageClass collects package-level functions, variables and constants
// into a static class named after the package.
func (c *Converter) packageClass(pkg *gotypes.Package, funcs []*gotypes.Func, vars []*gotypes.Var, consts []*gotypes.Const) *types.TypeBuilder {
	name := pkg.Name()
	b := types.NewType(types.TypeKindClass, strings.ToUpper(name[:1])+name[1:]).
		Access(types.AccessPublic).
		Modifiers(types.ModStatic)

	for _, k := range consts {
		t := c.typeRef(k.Type())
		f := types.NewConst(k.Name(), t, constantValue(t, k.Val()))
		f.Accessibility = accessOf(k.Name())
		b.Add(f)
	}
	for _, v := range vars {
		f := c.field(v)
		f.Modifiers |= types.ModStatic
		b.Add(f)
	}
	for _, fn := range funcs {
		if fn.Name() == "init" || fn.Name() == "main" {
			continue
		}
		m := c.method(fn)
		m.Modifiers |= types.ModStatic
		b.Add(m)
	}
	return b
}

// enumValue returns the int64 bit pattern of an integer constant.
func enumValue(v constant.Value) int64 {
	v = constant.ToInt(v)
	if n, ok := constant.Int64Val(v); ok {
		return n
	}
	if n, ok := constant.Uint64Val(v); ok {
		return int64(n)
	}
	return 0
}

// constantValue converts a Go constant of type t.
func constantValue(t types.TypeRef, v constant.Value) types.TypedConstant {
	st := t.Special
	switch v.Kind() {
	case constant.Bool:
		return types.BoolConstant(constant.BoolVal(v))
	case constant.String:
		return types.StringConstant(constant.StringVal(v))
	case constant.Int:
		if st == types.SpecialUInt64 {
			if n, ok := constant.Uint64Val(v); ok {
				return types.Primitive(st, n)
			}
		}
		if n, ok := constant.Int64Val(v); ok {
			if !isInteger(st) {
				st = types.SpecialInt64
			}
			return types.Primitive(st, n)
		}
	case constant.Float:
		f, _ := constant.Float64Val(v)
		if st != types.SpecialSingle {
			st = types.SpecialDouble
		}
		return types.Primitive(st, f)
	}
	return types.StringConstant(v.ExactString())
}

var integerTypes = []types.SpecialType{
	types.SpecialSByte, types.SpecialByte, types.SpecialInt16, types.SpecialUInt16,
	types.SpecialInt32, types.SpecialUInt32, types.SpecialInt64, types.SpecialUInt64,
}

func isInteger(st types.SpecialType) bool { return slices.Contains(integerTypes, st) }
