// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petar-djukic/go-deflist/internal/typeexpr"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

// Manifest errors.
var (
	ErrMissingName     = errors.New("missing name")
	ErrUnknownKind     = errors.New("unknown kind")
	ErrUnknownModifier = errors.New("unknown modifier")
	ErrUnknownAccess   = errors.New("unknown accessibility")
	ErrInvalidValue    = errors.New("invalid value")
)

// Build converts a decoded document into assemblies whose type references
// are linked across the whole document.
func Build(doc *Document) ([]*types.Assembly, error) {
	root := scope{typeexpr.NewScope()}
	for _, a := range doc.Assemblies {
		for _, ns := range a.Namespaces {
			collect(root.Scope, ns.Name, nil, ns.Types)
		}
	}

	assemblies := make([]*types.Assembly, 0, len(doc.Assemblies))
	for _, a := range doc.Assemblies {
		asm, err := buildAssembly(root, a)
		if err != nil {
			return nil, fmt.Errorf("assembly %q: %w", a.Name, err)
		}
		assemblies = append(assemblies, asm)
	}
	types.Resolve(assemblies...)
	return assemblies, nil
}

// collect records the declaring namespace of every type name. The first
// declaration of a simple name wins.
func collect(s typeexpr.Scope, namespace string, containing []string, specs []TypeSpec) {
	for _, t := range specs {
		kind, err := parseTypeKind(t.Kind)
		if err != nil {
			continue
		}
		s.Declare(t.Name, typeexpr.Declared{Namespace: namespace, Containing: containing, Kind: kind})
		inner := append(append([]string(nil), containing...), t.Name)
		collect(s, namespace, inner, t.Types)
	}
}

func buildAssembly(s scope, spec AssemblySpec) (*types.Assembly, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("assembly: %w", ErrMissingName)
	}
	asm := types.NewAssembly(spec.Name, spec.Version)
	attrs, err := s.attributes(spec.Attributes)
	if err != nil {
		return nil, err
	}
	asm.Attributes = attrs

	for _, nsSpec := range spec.Namespaces {
		ns := asm.Namespace(nsSpec.Name)
		for _, ts := range nsSpec.Types {
			b, err := s.typeBuilder(ts, types.AccessInternal)
			if err != nil {
				return nil, fmt.Errorf("type %s: %w", qualify(nsSpec.Name, ts.Name), err)
			}
			asm.AddType(b.Build(ns))
		}
	}
	return asm, nil
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// typeBuilder converts a type declaration. Access defaults to def, which is
// internal for top-level types and private for nested ones.
func (s scope) typeBuilder(spec TypeSpec, def types.Accessibility) (*types.TypeBuilder, error) {
	if spec.Name == "" {
		return nil, ErrMissingName
	}
	kind, err := parseTypeKind(spec.Kind)
	if err != nil {
		return nil, err
	}
	access, err := parseAccess(spec.Access, def)
	if err != nil {
		return nil, err
	}
	mods, err := parseModifiers(spec.Modifiers)
	if err != nil {
		return nil, err
	}
	s = s.with(spec.TypeParameters)
	tps, err := s.typeParameters(spec.TypeParameters)
	if err != nil {
		return nil, err
	}
	attrs, err := s.attributes(spec.Attributes)
	if err != nil {
		return nil, err
	}

	b := types.NewType(kind, spec.Name).
		Access(access).
		Modifiers(mods).
		Attributes(attrs...).
		TypeParameters(tps...)
	if spec.Implicit {
		b.Implicit()
	}

	base, err := s.optional(spec.Base)
	if err != nil {
		return nil, err
	}
	if base != nil {
		b.Base(*base)
	}
	for _, expr := range spec.Interfaces {
		ref, err := s.parse(expr)
		if err != nil {
			return nil, err
		}
		ref.TypeKind = types.TypeKindInterface
		b.Implements(ref)
	}

	switch kind {
	case types.TypeKindEnum:
		underlying, err := s.optional(spec.Underlying)
		if err != nil {
			return nil, err
		}
		if underlying != nil {
			b.Underlying(*underlying)
		}
	case types.TypeKindDelegate:
		ret := types.Void()
		if r, err := s.optional(spec.Returns); err != nil {
			return nil, err
		} else if r != nil {
			ret = *r
		}
		params, err := s.parameters(spec.Parameters)
		if err != nil {
			return nil, err
		}
		b.Signature(ret, params...)
	}

	var next int64
	for _, ms := range spec.Members {
		if kind == types.TypeKindEnum && ms.Value == nil {
			ms.Value = next
		}
		m, err := s.member(ms, kind)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", ms.Name, err)
		}
		if f, ok := m.(*types.Field); ok && kind == types.TypeKindEnum {
			next = f.Constant.Value.(int64) + 1
		}
		b.Add(m)
	}
	for _, nested := range spec.Types {
		nb, err := s.typeBuilder(nested, types.AccessPrivate)
		if err != nil {
			return nil, fmt.Errorf("nested type %s: %w", nested.Name, err)
		}
		b.Nest(nb)
	}
	return b, nil
}

func (s scope) typeParameters(specs []TypeParameterSpec) ([]types.TypeParameter, error) {
	var tps []types.TypeParameter
	for _, spec := range specs {
		tp := types.TypeParameter{Name: spec.Name}
		switch strings.ToLower(spec.Variance) {
		case "":
		case "in":
			tp.Variance = types.VarianceIn
		case "out":
			tp.Variance = types.VarianceOut
		default:
			return nil, fmt.Errorf("%w: variance %q", ErrUnknownKind, spec.Variance)
		}
		for _, c := range spec.Constraints {
			switch strings.TrimSpace(c) {
			case "class":
				tp.ReferenceType = true
			case "struct":
				tp.ValueType = true
			case "unmanaged":
				tp.Unmanaged = true
			case "notnull":
				tp.NotNull = true
			case "new()":
				tp.Constructor = true
			default:
				ref, err := s.parse(c)
				if err != nil {
					return nil, err
				}
				tp.ConstraintTypes = append(tp.ConstraintTypes, ref)
			}
		}
		attrs, err := s.attributes(spec.Attributes)
		if err != nil {
			return nil, err
		}
		tp.Attributes = attrs
		tps = append(tps, tp)
	}
	return tps, nil
}

func (s scope) parameters(specs []ParameterSpec) ([]types.Parameter, error) {
	params := make([]types.Parameter, 0, len(specs))
	for _, spec := range specs {
		t, err := s.parse(spec.Type)
		if err != nil {
			return nil, err
		}
		p := types.Param(spec.Name, t)
		switch spec.Ref {
		case "":
		case "ref":
			p.RefKind = types.RefRef
		case "out":
			p.RefKind = types.RefOut
		case "in":
			p.RefKind = types.RefIn
		case "params":
			p.RefKind = types.RefParams
		case "this":
			p.RefKind = types.RefThis
		default:
			return nil, fmt.Errorf("%w: parameter modifier %q", ErrUnknownModifier, spec.Ref)
		}
		if spec.Optional || spec.Default != nil {
			def, err := s.value(spec.Default, t)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", spec.Name, err)
			}
			p.HasDefault = true
			p.Default = def
		}
		if p.Attributes, err = s.attributes(spec.Attributes); err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func (s scope) attributes(specs []AttributeSpec) ([]types.Attribute, error) {
	var attrs []types.Attribute
	for _, spec := range specs {
		t, err := s.parse(spec.Type)
		if err != nil {
			return nil, err
		}
		a := types.NewAttribute(t)
		for _, v := range spec.Args {
			c, err := s.value(v, types.TypeRef{})
			if err != nil {
				return nil, fmt.Errorf("attribute %s: %w", spec.Type, err)
			}
			a.ConstructorArgs = append(a.ConstructorArgs, c)
		}
		for _, name := range sortedKeys(spec.Named) {
			c, err := s.value(spec.Named[name], types.TypeRef{})
			if err != nil {
				return nil, fmt.Errorf("attribute %s: %s: %w", spec.Type, name, err)
			}
			a.NamedArgs = append(a.NamedArgs, types.NamedArgument{Name: name, Value: c})
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func parseTypeKind(s string) (types.TypeKind, error) {
	switch strings.ToLower(s) {
	case "class", "record":
		return types.TypeKindClass, nil
	case "struct", "record struct":
		return types.TypeKindStruct, nil
	case "interface":
		return types.TypeKindInterface, nil
	case "enum":
		return types.TypeKindEnum, nil
	case "delegate":
		return types.TypeKindDelegate, nil
	default:
		return 0, fmt.Errorf("%w: type kind %q", ErrUnknownKind, s)
	}
}

// parseAccess parses an accessibility such as "protected internal". An
// empty string yields def.
func parseAccess(s string, def types.Accessibility) (types.Accessibility, error) {
	switch strings.Join(strings.Fields(strings.ToLower(s)), " ") {
	case "":
		return def, nil
	case "public":
		return types.AccessPublic, nil
	case "internal":
		return types.AccessInternal, nil
	case "protected":
		return types.AccessProtected, nil
	case "private":
		return types.AccessPrivate, nil
	case "protected internal", "internal protected":
		return types.AccessProtectedOrInternal, nil
	case "private protected", "protected private":
		return types.AccessProtectedAndInternal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAccess, s)
	}
}

var modifierNames = map[string]types.Modifiers{
	"static":   types.ModStatic,
	"abstract": types.ModAbstract,
	"virtual":  types.ModVirtual,
	"override": types.ModOverride,
	"sealed":   types.ModSealed,
	"readonly": types.ModReadOnly,
	"const":    types.ModConst,
	"volatile": types.ModVolatile,
	"extern":   types.ModExtern,
	"implicit": types.ModImplicit,
	"ref":      types.ModRef,
}

func parseModifiers(names []string) (types.Modifiers, error) {
	var mods types.Modifiers
	for _, n := range names {
		m, ok := modifierNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownModifier, n)
		}
		mods |= m
	}
	return mods, nil
}
