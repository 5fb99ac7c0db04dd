// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package golang

import (
	gotypes "go/types"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

var basicTypes = map[gotypes.BasicKind]types.SpecialType{
	gotypes.Bool:          types.SpecialBoolean,
	gotypes.UntypedBool:   types.SpecialBoolean,
	gotypes.String:        types.SpecialString,
	gotypes.UntypedString: types.SpecialString,
	gotypes.Int:           types.SpecialInt64,
	gotypes.UntypedInt:    types.SpecialInt64,
	gotypes.Int8:          types.SpecialSByte,
	gotypes.Int16:         types.SpecialInt16,
	gotypes.Int32:         types.SpecialInt32,
	gotypes.UntypedRune:   types.SpecialInt32,
	gotypes.Int64:         types.SpecialInt64,
	gotypes.Uint:          types.SpecialUInt64,
	gotypes.Uint8:         types.SpecialByte,
	gotypes.Uint16:        types.SpecialUInt16,
	gotypes.Uint32:        types.SpecialUInt32,
	gotypes.Uint64:        types.SpecialUInt64,
	gotypes.Float32:       types.SpecialSingle,
	gotypes.Float64:       types.SpecialDouble,
	gotypes.UntypedFloat:  types.SpecialDouble,
}

// typeRef maps a Go type to a reference. Maps, channels and function
// types become their closest generic library equivalents.
func (c *Converter) typeRef(t gotypes.Type) types.TypeRef {
	switch t := gotypes.Unalias(t).(type) {
	case *gotypes.Basic:
		if st, ok := basicTypes[t.Kind()]; ok {
			return types.Special(st)
		}
		switch t.Kind() {
		case gotypes.Uintptr:
			return types.Keyword("nuint")
		case gotypes.UnsafePointer:
			ptr := types.Void()
			return types.TypeRef{Kind: types.RefPointer, Elem: &ptr}
		case gotypes.Complex64, gotypes.Complex128, gotypes.UntypedComplex:
			return types.Named("System.Numerics", "Complex", types.TypeKindStruct)
		}
		return types.Special(types.SpecialObject)
	case *gotypes.Pointer:
		elem := c.typeRef(t.Elem())
		return types.TypeRef{Kind: types.RefPointer, Elem: &elem}
	case *gotypes.Slice:
		return types.ArrayOf(c.typeRef(t.Elem()))
	case *gotypes.Array:
		return types.ArrayOf(c.typeRef(t.Elem()))
	case *gotypes.Map:
		return types.Generic("System.Collections.Generic", "Dictionary", types.TypeKindClass,
			c.typeRef(t.Key()), c.typeRef(t.Elem()))
	case *gotypes.Chan:
		return types.Generic("System.Threading.Channels", "Channel", types.TypeKindClass, c.typeRef(t.Elem()))
	case *gotypes.Signature:
		return c.funcRef(t)
	case *gotypes.Tuple:
		return c.tupleRef(t)
	case *gotypes.TypeParam:
		return types.TypeParam(t.Obj().Name())
	case *gotypes.Named:
		return c.namedRef(t)
	default:
		// Unnamed structs and interfaces.
		return types.Special(types.SpecialObject)
	}
}

func (c *Converter) namedRef(t *gotypes.Named) types.TypeRef {
	obj := t.Obj()
	if obj.Pkg() == nil {
		// error and comparable live in the universe scope.
		return types.Keyword(obj.Name())
	}
	var args []types.TypeRef
	if targs := t.TypeArgs(); targs != nil {
		for i := range targs.Len() {
			args = append(args, c.typeRef(targs.At(i)))
		}
	} else if tps := t.TypeParams(); tps != nil {
		for i := range tps.Len() {
			args = append(args, types.TypeParam(tps.At(i).Obj().Name()))
		}
	}
	return types.Generic(c.Namespace(obj.Pkg().Path(), obj.Pkg().Name()), obj.Name(), typeKindOf(t), args...)
}

// funcRef maps a function type to Action<...> or Func<..., R>.
func (c *Converter) funcRef(sig *gotypes.Signature) types.TypeRef {
	var args []types.TypeRef
	for v := range sig.Params().Variables() {
		args = append(args, c.typeRef(v.Type()))
	}
	if sig.Results().Len() == 0 {
		if len(args) == 0 {
			return types.Named("System", "Action", types.TypeKindDelegate)
		}
		return types.Generic("System", "Action", types.TypeKindDelegate, args...)
	}
	args = append(args, c.results(sig))
	return types.Generic("System", "Func", types.TypeKindDelegate, args...)
}

// results returns the return type of sig: void, the single result, or a
// tuple of all results.
func (c *Converter) results(sig *gotypes.Signature) types.TypeRef {
	switch sig.Results().Len() {
	case 0:
		return types.Void()
	case 1:
		return c.typeRef(sig.Results().At(0).Type())
	default:
		return c.tupleRef(sig.Results())
	}
}

func (c *Converter) tupleRef(tuple *gotypes.Tuple) types.TypeRef {
	ref := types.TypeRef{Kind: types.RefTuple, TypeKind: types.TypeKindStruct}
	for v := range tuple.Variables() {
		ref.Elems = append(ref.Elems, c.typeRef(v.Type()))
	}
	return ref
}

// typeKindOf returns the declaration kind a named Go type maps to.
func typeKindOf(t gotypes.Type) types.TypeKind {
	switch gotypes.Unalias(t).Underlying().(type) {
	case *gotypes.Struct:
		return types.TypeKindStruct
	case *gotypes.Interface:
		return types.TypeKindInterface
	case *gotypes.Signature:
		return types.TypeKindDelegate
	default:
		return types.TypeKindClass
	}
}
