// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package display

import (
	"testing"

	"github.com/petar-djukic/go-deflist/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punct(s string) types.Part { return types.Part{Kind: types.PartPunctuation, Text: s} }

func TestScanner_Step(t *testing.T) {
	var s Scanner
	for _, p := range []types.Part{punct("("), punct("["), punct("<"), punct("{")} {
		s.Step(p)
	}
	assert.Equal(t, Scanner{Parens: 1, Brackets: 1, Braces: 1, Angles: 1}, s)
	assert.False(t, s.AtTop())

	s.Step(types.Part{Kind: types.PartStringLiteral, Text: ")"})
	assert.Equal(t, 1, s.Parens, "literal text does not count")

	for _, p := range []types.Part{punct("}"), punct(">"), punct("]"), punct(")")} {
		s.Step(p)
	}
	assert.True(t, s.AtTop())
}

func TestParameterList(t *testing.T) {
	r := testRenderer(t, omitted)

	dict := types.Generic("System.Collections.Generic", "Dictionary", types.TypeKindClass,
		types.Special(types.SpecialInt32),
		types.Generic("System.Collections.Generic", "List", types.TypeKindClass, types.TypeParam("T")))
	generic := types.NewMethod("M", types.Void(), types.Param("a", dict), types.Param("b", types.Special(types.SpecialInt32)))
	generic.TypeParameters = []types.TypeParameter{{Name: "T"}}

	tuple := types.TypeRef{Kind: types.RefTuple, Elems: []types.TypeRef{types.Special(types.SpecialInt32), types.Special(types.SpecialString)}}
	tupleReturn := types.NewMethod("Pair", tuple, types.Param("x", types.Special(types.SpecialInt32)))

	indexer := types.NewIndexer(types.ArrayOf(types.Special(types.SpecialInt32)), true, false,
		types.Param("i", types.Special(types.SpecialInt32)), types.Param("j", types.Special(types.SpecialInt32)))

	toTuple := types.NewConversion(false, tuple, types.Param("b", types.Special(types.SpecialInt32)))

	host(generic, tupleReturn, indexer, toTuple)

	tests := []struct {
		name       string
		sym        types.Symbol
		wantOpen   string
		wantInside string
		wantCommas int
	}{
		{"generic parameter types", generic, "(", "Dictionary<int, List<T>> a, int b", 1},
		{"tuple return type", tupleReturn, "(", "int x", 0},
		{"indexer with array type", indexer, "[", "int i, int j", 1},
		{"conversion to tuple", toTuple, "(", "int b", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := r.Render(tt.sym)
			require.NoError(t, err)

			open, end, ok := ParameterList(tt.sym, parts, 0)
			require.True(t, ok)
			assert.Equal(t, tt.wantOpen, parts[open].Text)
			assert.Contains(t, parts[open+1:end].String(), tt.wantInside)
			assert.Len(t, separators(parts, open, end), tt.wantCommas)
		})
	}
}

func TestParameterList_Misses(t *testing.T) {
	m := types.NewMethod("M", types.Void())
	host(m)

	unclosed := types.Parts{
		{Kind: types.PartMethodName, Text: "M", Symbol: m},
		punct("("),
		{Kind: types.PartParameterName, Text: "x"},
	}
	_, _, ok := ParameterList(m, unclosed, 0)
	assert.False(t, ok, "missing close")

	_, _, ok = ParameterList(m, types.Parts{punct("("), punct(")")}, 0)
	assert.False(t, ok, "missing anchor")

	field := types.NewField("F", types.Special(types.SpecialInt32))
	_, _, ok = ParameterList(field, types.Parts{punct("("), punct(")")}, 0)
	assert.False(t, ok, "fields have no list")

	assert.Equal(t, unclosed, useDefaultLiteral(m, unclosed, 0), "miss leaves the stream unchanged")
}
