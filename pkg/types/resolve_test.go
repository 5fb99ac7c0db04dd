// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	lib := NewAssembly("Lib", "1.0")
	marker := NewType(TypeKindClass, "MarkerAttribute").Access(AccessInternal).Build(lib.Namespace("Lib"))
	mode := NewType(TypeKindEnum, "Mode").Add(NewEnumMember("On", 1)).Build(lib.Namespace("Lib"))
	box := NewType(TypeKindStruct, "Box").TypeParameters(TypeParameter{Name: "T"}).Build(lib.Namespace("Lib"))
	lib.AddType(marker, mode, box)

	app := NewAssembly("App", "1.0")
	run := NewMethod("Run",
		Generic("Lib", "Box", TypeKindClass, Special(SpecialInt32)),
		OptionalParam("m", Named("Lib", "Mode", TypeKindClass), EnumConstant(Named("Lib", "Mode", TypeKindClass), 1)),
		Param("boxes", ArrayOf(Named("Lib", "Box", TypeKindClass))),
	)
	run.Attributes = []Attribute{NewAttribute(Named("Lib", "MarkerAttribute", TypeKindClass), TypeOfConstant(Named("Lib", "Mode", TypeKindClass)))}
	svc := NewType(TypeKindClass, "Service").Add(run).Build(app.Namespace("App"))
	app.AddType(svc)

	Resolve(app, lib)

	require.NotNil(t, run.ReturnType.Definition)
	assert.Same(t, box, run.ReturnType.Definition)
	assert.Equal(t, TypeKindStruct, run.ReturnType.TypeKind)
	assert.Same(t, mode, run.Parameters[0].Type.Definition)
	assert.Same(t, mode, run.Parameters[0].Default.Type.Definition)
	assert.Nil(t, run.Parameters[1].Type.Elem.Definition, "arity must match")

	attr := run.Attributes[0]
	assert.Same(t, marker, attr.Type.Definition)
	typeOf, ok := attr.ConstructorArgs[0].Value.(TypeRef)
	require.True(t, ok)
	assert.Same(t, mode, typeOf.Definition)

	assert.Nil(t, run.ReturnType.Args[0].Definition, "special types stay unlinked")
}

func TestResolve_NestedTypes(t *testing.T) {
	asm := NewAssembly("Acme", "1.0")
	outer := NewType(TypeKindClass, "Outer").
		Nest(NewType(TypeKindInterface, "IInner")).
		Add(NewField("inner", TypeRef{Kind: RefNamed, Namespace: "Acme", ContainingTypes: []string{"Outer"}, Name: "IInner"})).
		Build(asm.Namespace("Acme"))
	asm.AddType(outer)

	Resolve(asm)

	var field *Field
	for _, m := range outer.Members {
		if f, ok := m.(*Field); ok {
			field = f
		}
	}
	require.NotNil(t, field)
	assert.Same(t, outer.TypeMembers()[0], field.Type.Definition)
	assert.Equal(t, TypeKindInterface, field.Type.TypeKind)
}
