// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

// member converts a member declaration of a type of the given kind.
func (s scope) member(spec MemberSpec, owner types.TypeKind) (types.Symbol, error) {
	def := types.AccessPrivate
	if owner == types.TypeKindInterface || owner == types.TypeKindEnum {
		def = types.AccessPublic
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
	attrs, err := s.attributes(spec.Attributes)
	if err != nil {
		return nil, err
	}
	params, err := s.parameters(spec.Parameters)
	if err != nil {
		return nil, err
	}

	kind := strings.ToLower(spec.Kind)
	var sym types.Symbol
	switch kind {
	case "member":
		if owner != types.TypeKindEnum {
			return nil, fmt.Errorf("%w: enum member outside an enum", ErrUnknownKind)
		}
		n, err := enumInteger(spec.Value)
		if err != nil {
			return nil, err
		}
		sym = types.NewEnumMember(spec.Name, n)
	case "field":
		t, err := s.parse(spec.Type)
		if err != nil {
			return nil, err
		}
		sym = types.NewField(spec.Name, t)
	case "const":
		t, err := s.parse(spec.Type)
		if err != nil {
			return nil, err
		}
		c, err := s.value(spec.Value, t)
		if err != nil {
			return nil, err
		}
		sym = types.NewConst(spec.Name, t, c)
	case "constructor":
		sym = types.NewConstructor(params...)
	case "method":
		ret, err := s.returnType(spec.Type)
		if err != nil {
			return nil, err
		}
		m := types.NewMethod(spec.Name, ret, params...)
		if m.TypeParameters, err = s.typeParameters(spec.TypeParameters); err != nil {
			return nil, err
		}
		sym = m
	case "operator":
		ret, err := s.parse(spec.Type)
		if err != nil {
			return nil, err
		}
		sym = types.NewOperator(spec.Operator, ret, params...)
	case "conversion":
		to, err := s.parse(spec.Type)
		if err != nil {
			return nil, err
		}
		if len(params) != 1 {
			return nil, fmt.Errorf("%w: conversion takes one parameter", ErrInvalidValue)
		}
		sym = types.NewConversion(mods.Has(types.ModImplicit), to, params[0])
	case "property", "indexer":
		p, err := s.property(spec, params, access)
		if err != nil {
			return nil, err
		}
		sym = p
	case "event":
		t, err := s.parse(spec.Type)
		if err != nil {
			return nil, err
		}
		ev := types.NewEvent(spec.Name, t)
		if err := s.accessorAttributes(spec, map[string]*types.Method{"add": ev.Adder, "remove": ev.Remover}); err != nil {
			return nil, err
		}
		sym = ev
	default:
		return nil, fmt.Errorf("%w: member kind %q", ErrUnknownKind, spec.Kind)
	}

	d := sym.Info()
	if kind != "member" {
		d.Accessibility = access
	}
	d.Modifiers |= mods
	d.Attributes = attrs
	d.Implicit = spec.Implicit
	return sym, nil
}

func (s scope) returnType(expr string) (types.TypeRef, error) {
	if strings.TrimSpace(expr) == "" {
		return types.Void(), nil
	}
	return s.parse(expr)
}

// property converts a property or indexer. Accessors default to "get; set".
func (s scope) property(spec MemberSpec, params []types.Parameter, owner types.Accessibility) (*types.Property, error) {
	t, err := s.parse(spec.Type)
	if err != nil {
		return nil, err
	}
	accessors := spec.Accessors
	if strings.TrimSpace(accessors) == "" {
		accessors = "get; set"
	}

	var p *types.Property
	if strings.EqualFold(spec.Kind, "indexer") {
		p = types.NewIndexer(t, true, true, params...)
	} else {
		p = types.NewProperty(spec.Name, t, true, true)
	}
	getter, setter := p.Getter, p.Setter
	p.Getter, p.Setter = nil, nil

	for _, decl := range strings.Split(accessors, ";") {
		words := strings.Fields(decl)
		if len(words) == 0 {
			continue
		}
		keyword := words[len(words)-1]
		var acc *types.Method
		switch keyword {
		case "get":
			acc, p.Getter = getter, getter
		case "set":
			acc, p.Setter = setter, setter
		case "init":
			acc, p.Setter = setter, setter
			p.InitOnly = true
		default:
			return nil, fmt.Errorf("%w: accessor %q", ErrUnknownKind, keyword)
		}
		if len(words) > 1 {
			a, err := parseAccess(strings.Join(words[:len(words)-1], " "), owner)
			if err != nil {
				return nil, err
			}
			acc.Accessibility = a
		}
	}

	byKeyword := map[string]*types.Method{"get": p.Getter, "set": p.Setter, "init": p.Setter}
	if err := s.accessorAttributes(spec, byKeyword); err != nil {
		return nil, err
	}
	return p, nil
}

func (s scope) accessorAttributes(spec MemberSpec, byKeyword map[string]*types.Method) error {
	for _, keyword := range sortedKeys(spec.AccessorAttributes) {
		acc := byKeyword[keyword]
		if acc == nil {
			return fmt.Errorf("%w: attributes for missing accessor %q", ErrUnknownKind, keyword)
		}
		attrs, err := s.attributes(spec.AccessorAttributes[keyword])
		if err != nil {
			return err
		}
		acc.Attributes = attrs
	}
	return nil
}
