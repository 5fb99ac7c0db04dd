// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package typeexpr parses type expressions written in declaration syntax,
// such as "List<int>", "(string, int)[]" or "Outer.Inner?", into type
// references. Names declared in the input being converted are qualified
// with their declaring namespace and containing types; other dotted names
// are taken as namespace-qualified.
package typeexpr

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

// ErrInvalid is returned for a type expression that does not parse.
var ErrInvalid = errors.New("invalid type expression")

var keywordTypes = []string{"dynamic", "nint", "nuint"}

// Declared records where a simple type name was declared.
type Declared struct {
	Namespace  string
	Containing []string
	Kind       types.TypeKind
}

// Scope resolves type expressions inside one declaration.
type Scope struct {
	Names      map[string]Declared
	TypeParams []string
	Imports    []string // Namespaces searched for well-known types, e.g. "System"
}

// NewScope returns an empty scope.
func NewScope() Scope {
	return Scope{Names: make(map[string]Declared)}
}

// Declare records name unless an earlier declaration already claimed it.
func (s Scope) Declare(name string, d Declared) {
	if _, ok := s.Names[name]; !ok {
		s.Names[name] = d
	}
}

// With returns a scope that also sees the given type parameters.
func (s Scope) With(typeParams ...string) Scope {
	if len(typeParams) == 0 {
		return s
	}
	inner := s
	inner.TypeParams = append(slices.Clone(s.TypeParams), typeParams...)
	return inner
}

// Parse parses a type expression. Runs of whitespace are insignificant and
// a leading "global::" alias is dropped.
func (s Scope) Parse(expr string) (types.TypeRef, error) {
	src := strings.Join(strings.Fields(expr), " ")
	src = strings.ReplaceAll(src, "global::", "")
	p := &parser{src: src, scope: s}
	ref, err := p.typ()
	if err == nil {
		p.skipSpace()
		if p.pos < len(p.src) {
			err = p.errorf("unexpected %q", p.src[p.pos:])
		}
	}
	if err != nil {
		return types.TypeRef{}, err
	}
	return ref, nil
}

// Optional parses expr, returning nil for an empty expression.
func (s Scope) Optional(expr string) (*types.TypeRef, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	ref, err := s.Parse(expr)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

type parser struct {
	src   string
	pos   int
	scope Scope
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %q: %s", ErrInvalid, p.src, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *parser) accept(c byte) bool {
	if p.peek() == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) typ() (types.TypeRef, error) {
	var ref types.TypeRef
	var err error
	if p.accept('(') {
		ref, err = p.tuple()
	} else {
		ref, err = p.named()
	}
	if err != nil {
		return ref, err
	}
	for {
		switch {
		case p.accept('?'):
			elem := ref
			ref = types.TypeRef{Kind: types.RefNullable, Elem: &elem, TypeKind: types.TypeKindStruct}
		case p.accept('*'):
			elem := ref
			ref = types.TypeRef{Kind: types.RefPointer, Elem: &elem}
		case p.accept('['):
			rank := 1
			for p.accept(',') {
				rank++
			}
			if !p.accept(']') {
				return ref, p.errorf("unterminated array rank")
			}
			ref = types.ArrayOf(ref)
			ref.Rank = rank
		default:
			return ref, nil
		}
	}
}

func (p *parser) tuple() (types.TypeRef, error) {
	ref := types.TypeRef{Kind: types.RefTuple, TypeKind: types.TypeKindStruct}
	for {
		elem, err := p.typ()
		if err != nil {
			return ref, err
		}
		// Element names are accepted and dropped.
		p.ident()
		ref.Elems = append(ref.Elems, elem)
		if p.accept(')') {
			break
		}
		if !p.accept(',') {
			return ref, p.errorf("expected ',' or ')'")
		}
	}
	if len(ref.Elems) < 2 {
		return ref, p.errorf("tuple needs at least two elements")
	}
	return ref, nil
}

func (p *parser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// named parses a dotted name with an optional '+' nested-type chain and
// type argument list.
func (p *parser) named() (types.TypeRef, error) {
	var dotted, nested []string
	for {
		id := p.ident()
		if id == "" {
			return types.TypeRef{}, p.errorf("expected a type name")
		}
		dotted = append(dotted, id)
		if p.pos < len(p.src) && p.src[p.pos] == '.' {
			p.pos++
			continue
		}
		break
	}
	for p.pos < len(p.src) && p.src[p.pos] == '+' {
		p.pos++
		id := p.ident()
		if id == "" {
			return types.TypeRef{}, p.errorf("expected a nested type name")
		}
		nested = append(nested, id)
	}

	var args []types.TypeRef
	if p.accept('<') {
		for {
			arg, err := p.typ()
			if err != nil {
				return types.TypeRef{}, err
			}
			args = append(args, arg)
			if p.accept('>') {
				break
			}
			if !p.accept(',') {
				return types.TypeRef{}, p.errorf("expected ',' or '>'")
			}
		}
	}
	return p.scope.resolve(dotted, nested, args), nil
}

func (s Scope) resolve(dotted, nested []string, args []types.TypeRef) types.TypeRef {
	if len(dotted) == 1 && len(nested) == 0 && len(args) == 0 {
		name := dotted[0]
		if slices.Contains(s.TypeParams, name) {
			return types.TypeParam(name)
		}
		if _, ok := s.Names[name]; !ok {
			if st := types.SpecialTypeOf(name); st != types.SpecialNone {
				return types.Special(st)
			}
			if slices.Contains(keywordTypes, name) {
				return types.Keyword(name)
			}
		}
	}

	if _, ok := s.Names[dotted[0]]; !ok && len(dotted) == 1 && len(nested) == 0 {
		if ref, ok := s.imported(dotted[0], args); ok {
			return ref
		}
	}

	// A declared leading name is qualified with its declaring namespace and
	// containing types; the dotted names after it are nested types.
	var namespace string
	var chain []string
	if d, ok := s.Names[dotted[0]]; ok {
		namespace = d.Namespace
		chain = append(slices.Clone(d.Containing), dotted...)
		chain = append(chain, nested...)
	} else {
		namespace = strings.Join(dotted[:len(dotted)-1], ".")
		chain = append([]string{dotted[len(dotted)-1]}, nested...)
	}
	name := chain[len(chain)-1]
	containing := chain[:len(chain)-1]
	if len(containing) == 0 {
		containing = nil
	}

	kind := types.TypeKindClass
	if d, ok := s.Names[name]; ok && d.Namespace == namespace && slices.Equal(d.Containing, containing) {
		kind = d.Kind
	}

	ref := types.Generic(namespace, name, kind, args...)
	ref.ContainingTypes = containing
	if ref.Special != types.SpecialNone {
		special := types.Special(ref.Special)
		special.Args = ref.Args
		return special
	}
	return ref
}

// imported looks name up as a well-known type in the imported namespaces.
func (s Scope) imported(name string, args []types.TypeRef) (types.TypeRef, bool) {
	for _, ns := range s.Imports {
		probe := types.Generic(ns, name, types.TypeKindClass, args...)
		if probe.Special != types.SpecialNone {
			ref := types.Special(probe.Special)
			ref.Args = args
			return ref, true
		}
	}
	return types.TypeRef{}, false
}
