// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ordering

import (
	"testing"

	"github.com/petar-djukic/go-deflist/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32Ref() types.TypeRef  { return types.Special(types.SpecialInt32) }
func stringRef() types.TypeRef { return types.Special(types.SpecialString) }

func memberNames(symbols []types.Symbol) []string {
	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = s.Info().Name
	}
	return names
}

func TestCompare_MembersByKindRank(t *testing.T) {
	ns := types.NewAssembly("Acme", "1.0").Namespace("Acme")
	ctor := types.NewConstructor()
	count := types.NewField("Count", int32Ref())
	count.Modifiers |= types.ModStatic
	types.NewType(types.TypeKindClass, "Foo").Add(ctor, count).Build(ns)

	for _, policy := range []Policy{ByKind, ByKindThenName} {
		t.Run(policy.String(), func(t *testing.T) {
			members := []types.Symbol{ctor, count}
			Sort(New(Config{Policy: policy}), members)
			assert.Equal(t, []types.Symbol{count, ctor}, members)
		})
	}
}

func TestCompare_ByKindThenName(t *testing.T) {
	ns := types.NewAssembly("Acme", "1.0").Namespace("Acme")

	zeta := types.NewMethod("Zeta", types.Void())
	alpha := types.NewMethod("Alpha", types.Void())
	alphaOne := types.NewMethod("Alpha", types.Void(), types.Param("x", int32Ref()))
	alphaStr := types.NewMethod("Alpha", types.Void(), types.Param("x", stringRef()))
	generic := types.NewMethod("Alpha", types.Void())
	generic.TypeParameters = []types.TypeParameter{{Name: "T"}}
	static := types.NewMethod("Omega", types.Void())
	static.Modifiers |= types.ModStatic
	internal := types.NewMethod("Beta", types.Void())
	internal.Accessibility = types.AccessInternal
	name := types.NewProperty("Name", stringRef(), true, false)
	changed := types.NewEvent("Changed", types.Named("System", "EventHandler", types.TypeKindDelegate))

	types.NewType(types.TypeKindClass, "Foo").
		Add(changed, zeta, internal, alphaStr, generic, static, alphaOne, alpha, name).
		Build(ns)

	members := []types.Symbol{changed, zeta, internal, alphaStr, generic, static, alphaOne, alpha, name}
	Sort(New(Config{Policy: ByKindThenName}), members)

	want := []types.Symbol{name, static, alpha, alphaOne, alphaStr, generic, zeta, internal, changed}
	assert.Equal(t, memberNames(want), memberNames(members))
	assert.Equal(t, want, members)
}

func TestCompare_ByKindKeepsInputOrderOnTies(t *testing.T) {
	ns := types.NewAssembly("Acme", "1.0").Namespace("Acme")
	b := types.NewMethod("B", types.Void())
	a := types.NewMethod("A", types.Void())
	types.NewType(types.TypeKindClass, "Foo").Add(b, a).Build(ns)

	members := []types.Symbol{b, a}
	c := New(Config{Policy: ByKind})
	Sort(c, members)
	assert.Equal(t, []types.Symbol{b, a}, members)
	assert.True(t, c.Equal(a, b))
	assert.Equal(t, c.Hash(a), c.Hash(b))
}

func TestCompare_Types(t *testing.T) {
	asm := types.NewAssembly("Acme", "1.0")
	ns := asm.Namespace("Acme")
	handler := types.NewType(types.TypeKindDelegate, "Handler").Signature(types.Void()).Build(ns)
	color := types.NewType(types.TypeKindEnum, "Color").Build(ns)
	iface := types.NewType(types.TypeKindInterface, "IThing").Build(ns)
	point := types.NewType(types.TypeKindStruct, "Point").Build(ns)
	zoo := types.NewType(types.TypeKindClass, "Zoo").Build(ns)
	list := types.NewType(types.TypeKindClass, "List").Build(ns)
	listT := types.NewType(types.TypeKindClass, "List").TypeParameters(types.TypeParameter{Name: "T"}).Build(ns)

	typesList := []*types.NamedType{handler, color, iface, point, listT, zoo, list}
	Sort(New(Config{Policy: ByKindThenName}), typesList)
	assert.Equal(t, []*types.NamedType{list, listT, zoo, point, iface, color, handler}, typesList)
}

func TestCompare_Namespaces(t *testing.T) {
	asm := types.NewAssembly("Acme", "1.0")
	acme := asm.Namespace("Acme")
	system := asm.Namespace("System")
	systemIO := asm.Namespace("System.IO")
	microsoft := asm.Namespace("Microsoft.Win32")
	systematic := asm.Namespace("Systematic")
	global := asm.Global()

	tests := []struct {
		name string
		cfg  Config
		want []*types.Namespace
	}{
		{
			name: "system first",
			cfg:  Config{PlaceSystemNamespaceFirst: true},
			want: []*types.Namespace{global, system, systemIO, acme, microsoft, systematic},
		},
		{
			name: "ordinal",
			cfg:  Config{},
			want: []*types.Namespace{global, acme, microsoft, system, systemIO, systematic},
		},
		{
			name: "custom root",
			cfg:  Config{PlaceSystemNamespaceFirst: true, SystemNamespace: "Microsoft"},
			want: []*types.Namespace{global, microsoft, acme, system, systemIO, systematic},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []*types.Namespace{systematic, microsoft, systemIO, acme, global, system}
			Sort(New(tt.cfg), got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEqualAndHash_AcrossAssemblies(t *testing.T) {
	c := New(Config{Policy: ByKindThenName, PlaceSystemNamespaceFirst: true})
	first := types.NewAssembly("A", "1.0").Namespace("Acme.Core")
	second := types.NewAssembly("B", "1.0").Namespace("Acme.Core")
	other := types.NewAssembly("B", "1.0").Namespace("Acme.Other")

	assert.True(t, c.Equal(first, second))
	assert.Equal(t, c.Hash(first), c.Hash(second))
	assert.False(t, c.Equal(first, other))
	assert.NotEqual(t, c.Hash(first), c.Hash(other))
}

// TestCompare_TotalOrder checks reflexivity, antisymmetry and transitivity
// over a mixed symbol set.
func TestCompare_TotalOrder(t *testing.T) {
	asm := types.NewAssembly("Acme", "1.0")
	ns := asm.Namespace("Acme")
	sys := asm.Namespace("System")

	var symbols []types.Symbol
	symbols = append(symbols, ns, sys, asm.Global())

	foo := types.NewType(types.TypeKindClass, "Foo").
		Add(
			types.NewField("a", int32Ref()),
			types.NewConst("B", int32Ref(), types.IntConstant(1)),
			types.NewMethod("M", types.Void()),
			types.NewMethod("M", types.Void(), types.Param("x", int32Ref())),
			types.NewProperty("P", stringRef(), true, true),
			types.NewIndexer(stringRef(), true, false, types.Param("i", int32Ref())),
			types.NewOperator("+", int32Ref(), types.Param("a", int32Ref()), types.Param("b", int32Ref())),
		).
		Nest(types.NewType(types.TypeKindStruct, "Inner")).
		Build(ns)
	symbols = append(symbols, foo, types.NewType(types.TypeKindEnum, "E").Build(sys))
	symbols = append(symbols, foo.Members...)

	for _, policy := range []Policy{ByKind, ByKindThenName} {
		c := New(Config{Policy: policy, PlaceSystemNamespaceFirst: true})
		for _, a := range symbols {
			require.Equal(t, 0, c.Compare(a, a))
			for _, b := range symbols {
				ab, ba := c.Compare(a, b), c.Compare(b, a)
				require.Equal(t, -ab, ba, "antisymmetry %v %v", types.QualifiedName(a), types.QualifiedName(b))
				if ab == 0 {
					require.Equal(t, c.Hash(a), c.Hash(b))
				}
				for _, x := range symbols {
					if ab <= 0 && c.Compare(b, x) <= 0 {
						require.LessOrEqual(t, c.Compare(a, x), 0, "transitivity")
					}
				}
			}
		}
	}
}

func TestMemberRank(t *testing.T) {
	ns := types.NewAssembly("Acme", "1.0").Namespace("Acme")
	red := types.NewEnumMember("Red", 0)
	types.NewType(types.TypeKindEnum, "Color").Add(red).Build(ns)

	dtor := types.NewMethod("Finalize", types.Void())
	dtor.MethodKind = types.MethodDestructor

	tests := []struct {
		sym  types.Symbol
		want Rank
	}{
		{types.NewConst("X", int32Ref(), types.IntConstant(1)), RankConst},
		{types.NewField("x", int32Ref()), RankField},
		{red, RankField},
		{types.NewConstructor(), RankConstructor},
		{dtor, RankDestructor},
		{types.NewIndexer(int32Ref(), true, false), RankIndexer},
		{types.NewProperty("P", int32Ref(), true, false), RankProperty},
		{types.NewMethod("M", types.Void()), RankMethod},
		{types.NewOperator("+", int32Ref()), RankOperator},
		{types.NewConversion(true, int32Ref(), types.Param("v", stringRef())), RankConversion},
		{types.NewEvent("E", int32Ref()), RankEvent},
		{types.NewType(types.TypeKindClass, "N").Build(ns), RankNestedType},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, MemberRank(tt.sym))
		})
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("kind")
	require.NoError(t, err)
	assert.Equal(t, ByKind, p)

	p, err = ParsePolicy("Kind-Then-Name")
	require.NoError(t, err)
	assert.Equal(t, ByKindThenName, p)

	_, err = ParsePolicy("name")
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}
