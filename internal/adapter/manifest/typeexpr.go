// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"github.com/petar-djukic/go-deflist/internal/typeexpr"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

// ErrInvalidTypeExpr is returned for a type reference that does not parse.
var ErrInvalidTypeExpr = typeexpr.ErrInvalid

// scope resolves the type expressions of one declaration against every
// type the document declares.
type scope struct {
	typeexpr.Scope
}

// with returns a scope that also sees the given type parameters.
func (s scope) with(tps []TypeParameterSpec) scope {
	names := make([]string, 0, len(tps))
	for _, tp := range tps {
		names = append(names, tp.Name)
	}
	return scope{s.With(names...)}
}

func (s scope) parse(expr string) (types.TypeRef, error) { return s.Parse(expr) }

func (s scope) optional(expr string) (*types.TypeRef, error) { return s.Optional(expr) }
