// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

// value converts a decoded scalar or tagged map into a constant. The target
// type t selects the primitive type of scalars; a zero t infers it from the
// value.
func (s scope) value(v any, t types.TypeRef) (types.TypedConstant, error) {
	if m, ok := v.(map[string]any); ok {
		return s.tagged(m)
	}
	if v == nil {
		return types.TypedConstant{Kind: types.ConstantPrimitive, Type: t}, nil
	}
	if list, ok := v.([]any); ok {
		elem := types.Special(types.SpecialObject)
		if t.Kind == types.RefArray && t.Elem != nil {
			elem = *t.Elem
		}
		return s.array(elem, list)
	}

	if t.Kind == types.RefNullable && t.Elem != nil {
		t = *t.Elem
	}
	if t.Kind == types.RefNamed && t.Special == types.SpecialNone && t.TypeKind == types.TypeKindEnum {
		n, err := enumInteger(v)
		if err != nil {
			return types.TypedConstant{}, err
		}
		return types.EnumConstant(t, n), nil
	}

	switch t.Special {
	case types.SpecialNone, types.SpecialObject:
		return infer(v)
	case types.SpecialBoolean:
		b, ok := v.(bool)
		if !ok {
			return types.TypedConstant{}, fmt.Errorf("%w: %v is not a bool", ErrInvalidValue, v)
		}
		return types.BoolConstant(b), nil
	case types.SpecialString:
		str, ok := v.(string)
		if !ok {
			return types.TypedConstant{}, fmt.Errorf("%w: %v is not a string", ErrInvalidValue, v)
		}
		return types.StringConstant(str), nil
	case types.SpecialChar:
		str, ok := v.(string)
		if !ok || utf8.RuneCountInString(str) != 1 {
			return types.TypedConstant{}, fmt.Errorf("%w: %v is not a single character", ErrInvalidValue, v)
		}
		r, _ := utf8.DecodeRuneInString(str)
		return types.Primitive(types.SpecialChar, r), nil
	case types.SpecialSingle, types.SpecialDouble, types.SpecialDecimal:
		f, err := float(v)
		if err != nil {
			return types.TypedConstant{}, err
		}
		return types.Primitive(t.Special, f), nil
	case types.SpecialUInt64:
		if u, ok := v.(uint64); ok {
			return types.Primitive(t.Special, u), nil
		}
		n, err := integer(v)
		if err != nil {
			return types.TypedConstant{}, err
		}
		if n < 0 {
			return types.TypedConstant{}, fmt.Errorf("%w: %d is negative", ErrInvalidValue, n)
		}
		return types.Primitive(t.Special, uint64(n)), nil
	default:
		n, err := integer(v)
		if err != nil {
			return types.TypedConstant{}, err
		}
		return types.Primitive(t.Special, n), nil
	}
}

// tagged converts the map forms {typeof}, {enum, value}, {array, values}
// and {type, value}.
func (s scope) tagged(m map[string]any) (types.TypedConstant, error) {
	typeName := func(key string) (types.TypeRef, error) {
		str, ok := m[key].(string)
		if !ok {
			return types.TypeRef{}, fmt.Errorf("%w: %q must be a type name", ErrInvalidValue, key)
		}
		return s.parse(str)
	}

	switch {
	case m["typeof"] != nil:
		t, err := typeName("typeof")
		if err != nil {
			return types.TypedConstant{}, err
		}
		return types.TypeOfConstant(t), nil
	case m["enum"] != nil:
		t, err := typeName("enum")
		if err != nil {
			return types.TypedConstant{}, err
		}
		n, err := enumInteger(m["value"])
		if err != nil {
			return types.TypedConstant{}, err
		}
		t.TypeKind = types.TypeKindEnum
		return types.EnumConstant(t, n), nil
	case m["array"] != nil:
		elem, err := typeName("array")
		if err != nil {
			return types.TypedConstant{}, err
		}
		list, _ := m["values"].([]any)
		return s.array(elem, list)
	case m["type"] != nil:
		t, err := typeName("type")
		if err != nil {
			return types.TypedConstant{}, err
		}
		return s.value(m["value"], t)
	default:
		return types.TypedConstant{}, fmt.Errorf("%w: map with keys %v", ErrInvalidValue, sortedKeys(m))
	}
}

func (s scope) array(elem types.TypeRef, list []any) (types.TypedConstant, error) {
	values := make([]types.TypedConstant, 0, len(list))
	for _, item := range list {
		c, err := s.value(item, elem)
		if err != nil {
			return types.TypedConstant{}, err
		}
		values = append(values, c)
	}
	return types.ArrayConstant(elem, values...), nil
}

// infer picks the primitive type of an untyped scalar: bool, string, int
// when the value fits, long otherwise, and double for fractions.
func infer(v any) (types.TypedConstant, error) {
	switch x := v.(type) {
	case bool:
		return types.BoolConstant(x), nil
	case string:
		return types.StringConstant(x), nil
	}
	if n, err := integer(v); err == nil {
		if n >= math.MinInt32 && n <= math.MaxInt32 {
			return types.IntConstant(n), nil
		}
		return types.Primitive(types.SpecialInt64, n), nil
	}
	f, err := float(v)
	if err != nil {
		return types.TypedConstant{}, err
	}
	return types.Primitive(types.SpecialDouble, f), nil
}

// integer normalizes the integer forms produced by the YAML, TOML and JSON
// decoders. Integral floats are accepted.
func integer(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", ErrInvalidValue, n)
		}
		return int64(n), nil
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1<<63 {
			return int64(n), nil
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidValue, v)
}

// enumInteger is integer for enum values, which also admit the full ulong
// range. Values above MaxInt64 are kept as their int64 bit pattern.
func enumInteger(v any) (int64, error) {
	switch n := v.(type) {
	case uint64:
		return int64(n), nil
	case float64:
		if n == math.Trunc(n) && n >= 1<<63 && n < 1<<64 {
			return int64(uint64(n)), nil
		}
	case json.Number:
		if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
			return int64(u), nil
		}
	}
	return integer(v)
}

func float(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return f, nil
	}
	if i, err := integer(v); err == nil {
		return float64(i), nil
	}
	return 0, fmt.Errorf("%w: %v is not a number", ErrInvalidValue, v)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
