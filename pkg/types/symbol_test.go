// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespace_FullNameAndSegments(t *testing.T) {
	asm := NewAssembly("Acme", "1.0")
	ns := asm.Namespace("Acme.Collections.Generic")

	assert.Equal(t, "Acme.Collections.Generic", ns.FullName())
	assert.Equal(t, "Generic", ns.Name)
	assert.Equal(t, "Acme", ns.Root().FullName())

	var names []string
	for _, s := range ns.Segments() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Acme", "Collections", "Generic"}, names)

	assert.Same(t, ns, asm.Namespace("Acme.Collections.Generic"), "namespaces are interned")
	assert.True(t, asm.Namespace("").IsGlobal())
	assert.True(t, ns.Root().Namespace.IsGlobal())
}

func TestMetadataName(t *testing.T) {
	asm := NewAssembly("Acme", "1.0")
	ns := asm.Namespace("Acme")

	inner := NewType(TypeKindClass, "Inner").
		TypeParameters(TypeParameter{Name: "T"}).
		Add(NewMethod("Run", Void()))
	outer := NewType(TypeKindClass, "Outer").Nest(inner).Build(ns)

	nested := outer.TypeMembers()
	require.Len(t, nested, 1)

	assert.Equal(t, "Acme.Outer", MetadataName(outer))
	assert.Equal(t, "Acme.Outer+Inner`1", MetadataName(nested[0]))
	assert.Equal(t, "Acme.Outer.Inner", QualifiedName(nested[0]))

	var run Symbol
	for _, m := range nested[0].Members {
		if m.Info().Name == "Run" {
			run = m
		}
	}
	require.NotNil(t, run)
	assert.Equal(t, "Acme.Outer+Inner`1.Run", MetadataName(run))
	assert.Equal(t, "Acme.Outer.Inner.Run", QualifiedName(run))
}

func TestTypeBuilder_DefaultConstructor(t *testing.T) {
	ns := NewAssembly("Acme", "1.0").Namespace("Acme")

	tests := []struct {
		name     string
		builder  *TypeBuilder
		wantCtor bool
		wantImpl bool
	}{
		{name: "class without constructor", builder: NewType(TypeKindClass, "A"), wantCtor: true, wantImpl: true},
		{name: "class with constructor", builder: NewType(TypeKindClass, "B").Add(NewConstructor(Param("x", Special(SpecialInt32)))), wantCtor: true},
		{name: "static class", builder: NewType(TypeKindClass, "C").Modifiers(ModStatic)},
		{name: "struct", builder: NewType(TypeKindStruct, "D")},
		{name: "interface", builder: NewType(TypeKindInterface, "E")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := tt.builder.Build(ns)
			var ctor *Method
			for _, m := range typ.Members {
				if mm, ok := m.(*Method); ok && mm.MethodKind == MethodConstructor {
					ctor = mm
				}
			}
			if !tt.wantCtor {
				assert.Nil(t, ctor)
				return
			}
			require.NotNil(t, ctor)
			assert.Equal(t, tt.wantImpl, ctor.Implicit)
			assert.Same(t, typ, ctor.Containing)
		})
	}
}

func TestTypeBuilder_BuildDoesNotShareMembers(t *testing.T) {
	ns := NewAssembly("Acme", "1.0").Namespace("Acme")
	b := NewType(TypeKindClass, "Foo").Add(NewField("Count", Special(SpecialInt32)))

	first := b.Build(ns)
	second := b.Build(ns)

	require.Len(t, first.Members, 2)
	require.Len(t, second.Members, 2)
	first.Members[0] = nil
	assert.NotNil(t, second.Members[0])
}

func TestTypeBuilder_LinksAccessorsAndEnumMembers(t *testing.T) {
	ns := NewAssembly("Acme", "1.0").Namespace("Acme")

	prop := NewProperty("Name", Special(SpecialString), true, true)
	ev := NewEvent("Changed", Named("System", "EventHandler", TypeKindDelegate))
	cls := NewType(TypeKindClass, "Widget").Add(prop, ev).Build(ns)

	assert.Same(t, cls, prop.Containing)
	assert.Same(t, prop, prop.Getter.Associated)
	assert.Same(t, prop, prop.Setter.Associated)
	assert.Same(t, cls, ev.Adder.Containing)
	assert.Same(t, ev, ev.Remover.Associated)

	red := NewEnumMember("Red", 1)
	color := NewType(TypeKindEnum, "Color").Add(red).Build(ns)

	assert.True(t, red.IsEnumMember())
	assert.Equal(t, ConstantEnum, red.Constant.Kind)
	assert.Equal(t, int64(1), red.Constant.Value)
	assert.Same(t, color, red.Type.Definition)
}

func TestAssembly_TypesIncludesNested(t *testing.T) {
	asm := NewAssembly("Acme", "1.2")
	ns := asm.Namespace("Acme")
	asm.AddType(
		NewType(TypeKindClass, "Outer").Nest(NewType(TypeKindStruct, "Inner")).Build(ns),
		NewType(TypeKindInterface, "IThing").Build(ns),
	)

	var names []string
	for _, typ := range asm.Types(nil) {
		names = append(names, typ.Name)
	}
	assert.Equal(t, []string{"Outer", "Inner", "IThing"}, names)

	topLevel := asm.Types(func(t *NamedType) bool { return t.Containing == nil })
	assert.Len(t, topLevel, 2)
}

func TestAssembly_Identity(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.2", "Acme, Version=1.2.0.0, Culture=neutral, PublicKeyToken=null"},
		{"v3.4.5", "Acme, Version=3.4.5.0, Culture=neutral, PublicKeyToken=null"},
		{"", "Acme, Version=0.0.0.0, Culture=neutral, PublicKeyToken=null"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, NewAssembly("Acme", tt.version).Identity())
		})
	}
}

func TestTypeRef_SpecialAndValueType(t *testing.T) {
	assert.Equal(t, SpecialInt32, Named("System", "Int32", TypeKindStruct).Special)
	assert.Equal(t, SpecialIEnumerableT, Generic("System.Collections.Generic", "IEnumerable", TypeKindInterface, TypeParam("T")).Special)
	assert.Equal(t, SpecialIEnumerable, Named("System.Collections", "IEnumerable", TypeKindInterface).Special)
	assert.Equal(t, "int", SpecialInt32.KeywordAlias())

	assert.True(t, Special(SpecialInt32).IsValueType())
	assert.True(t, TypeParam("T").IsValueType())
	assert.False(t, Special(SpecialString).IsValueType())
	assert.False(t, ArrayOf(Special(SpecialInt32)).IsValueType())
	assert.Equal(t, "System.Collections.Generic.IEnumerable`1",
		Generic("System.Collections.Generic", "IEnumerable", TypeKindInterface, TypeParam("T")).MetadataName())
}

func TestNamedType_IsFlagsEnum(t *testing.T) {
	ns := NewAssembly("Acme", "1.0").Namespace("Acme")
	flags := NewType(TypeKindEnum, "Options").
		Attributes(NewAttribute(Named("System", "FlagsAttribute", TypeKindClass))).
		Build(ns)
	plain := NewType(TypeKindEnum, "Color").Build(ns)

	assert.True(t, flags.IsFlagsEnum())
	assert.False(t, plain.IsFlagsEnum())
}
