// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package typeexpr

import (
	"testing"

	"github.com/petar-djukic/go-deflist/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScope() Scope {
	s := NewScope()
	s.Declare("Outer", Declared{Namespace: "Acme", Kind: types.TypeKindClass})
	s.Declare("Inner", Declared{Namespace: "Acme", Containing: []string{"Outer"}, Kind: types.TypeKindStruct})
	s.Declare("Outer", Declared{Namespace: "Other", Kind: types.TypeKindInterface})
	return s.With("T")
}

func TestScope_Parse(t *testing.T) {
	s := testScope()
	tests := []struct {
		expr      string
		kind      types.TypeRefKind
		qualified string
	}{
		{"int", types.RefNamed, "System.Int32"},
		{"  string ", types.RefNamed, "System.String"},
		{"T", types.RefTypeParameter, "T"},
		{"dynamic", types.RefKeyword, "dynamic"},
		{"Outer", types.RefNamed, "Acme.Outer"},
		{"Outer.Inner", types.RefNamed, "Acme.Outer.Inner"},
		{"Outer+Inner", types.RefNamed, "Acme.Outer.Inner"},
		{"global::System.IO.Stream", types.RefNamed, "System.IO.Stream"},
		{"List<T>", types.RefNamed, "List"},
		{"int?", types.RefNullable, ""},
		{"byte*", types.RefPointer, ""},
		{"int[,]", types.RefArray, ""},
		{"(int id, string name)", types.RefTuple, ""},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ref, err := s.Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, ref.Kind)
			if tt.qualified != "" {
				assert.Equal(t, tt.qualified, ref.QualifiedName())
			}
		})
	}
}

func TestScope_ParseShapes(t *testing.T) {
	s := testScope()

	inner, err := s.Parse("Outer.Inner")
	require.NoError(t, err)
	assert.Equal(t, types.TypeKindStruct, inner.TypeKind)
	assert.Equal(t, []string{"Outer"}, inner.ContainingTypes)

	outer, err := s.Parse("Outer")
	require.NoError(t, err)
	assert.Equal(t, types.TypeKindClass, outer.TypeKind, "first declaration wins")

	arr, err := s.Parse("int[,]")
	require.NoError(t, err)
	assert.Equal(t, 2, arr.Rank)

	tuple, err := s.Parse("(int id, string name)")
	require.NoError(t, err)
	require.Len(t, tuple.Elems, 2)
	assert.Equal(t, types.SpecialString, tuple.Elems[1].Special)

	gen, err := s.Parse("IEnumerable<T>")
	require.NoError(t, err)
	require.Len(t, gen.Args, 1)
	assert.Equal(t, types.RefTypeParameter, gen.Args[0].Kind)

	opt, err := s.Optional("   ")
	require.NoError(t, err)
	assert.Nil(t, opt)
}

func TestScope_ParseErrors(t *testing.T) {
	s := testScope()
	for _, expr := range []string{"", "List<int", "(int)", "int[", "int]", "a.", "Outer+"} {
		t.Run(expr, func(t *testing.T) {
			_, err := s.Parse(expr)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestScope_Imports(t *testing.T) {
	s := NewScope()
	s.Imports = []string{"System.Collections.Generic", "System"}

	ref, err := s.Parse("IEnumerable<string>")
	require.NoError(t, err)
	assert.Equal(t, types.SpecialIEnumerableT, ref.Special)
	require.Len(t, ref.Args, 1)

	str, err := s.Parse("String")
	require.NoError(t, err)
	assert.Equal(t, types.SpecialString, str.Special)

	other, err := s.Parse("Dictionary<string, int>")
	require.NoError(t, err)
	assert.Equal(t, types.SpecialNone, other.Special)
	assert.Equal(t, "Dictionary", other.QualifiedName())
}
