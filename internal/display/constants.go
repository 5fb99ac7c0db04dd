// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package display

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

// Rendering errors. Both mean the adapter produced a constant the renderer
// has no syntax for; they abort the render.
var (
	ErrUnknownConstantKind = errors.New("unknown constant kind")
	ErrUnknownSpecialType  = errors.New("unknown primitive constant type")
)

// constant appends the source form of c.
func (r *Renderer) constant(b *builder, c types.TypedConstant, context string) error {
	switch c.Kind {
	case types.ConstantPrimitive:
		return r.primitive(b, c)
	case types.ConstantEnum:
		r.enumValue(b, c, context)
		return nil
	case types.ConstantType:
		ref, ok := c.Value.(types.TypeRef)
		if !ok {
			return fmt.Errorf("%w: typeof value of type %T", ErrUnknownConstantKind, c.Value)
		}
		b.keyword("typeof")
		b.punctuation("(")
		r.typeRef(b, ref, context)
		b.punctuation(")")
		return nil
	case types.ConstantArray:
		if c.Type.Kind != types.RefArray || c.Type.Elem == nil {
			return fmt.Errorf("%w: array constant without element type", ErrUnknownConstantKind)
		}
		b.keyword("new")
		b.space()
		r.typeRef(b, *c.Type.Elem, context)
		b.punctuation("[")
		b.punctuation("]")
		b.space()
		b.punctuation("{")
		b.space()
		for i, v := range c.Values {
			if i > 0 {
				b.punctuation(",")
				b.space()
			}
			if err := r.constant(b, v, context); err != nil {
				return err
			}
		}
		if len(c.Values) > 0 {
			b.space()
		}
		b.punctuation("}")
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnknownConstantKind, c.Kind)
	}
}

func (r *Renderer) primitive(b *builder, c types.TypedConstant) error {
	if c.Value == nil {
		b.keyword("null")
		return nil
	}

	var kind types.PartKind
	switch c.Type.Special {
	case types.SpecialBoolean:
		kind = types.PartKeyword
	case types.SpecialSByte, types.SpecialByte, types.SpecialInt16, types.SpecialUInt16,
		types.SpecialInt32, types.SpecialUInt32, types.SpecialInt64, types.SpecialUInt64,
		types.SpecialSingle, types.SpecialDouble, types.SpecialDecimal:
		kind = types.PartNumericLiteral
	case types.SpecialChar, types.SpecialString:
		kind = types.PartStringLiteral
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSpecialType, c.Type.QualifiedName())
	}

	text, err := formatPrimitive(c.Value, c.Type.Special == types.SpecialChar)
	if err != nil {
		return err
	}
	b.add(kind, text)
	return nil
}

// formatPrimitive formats a primitive value invariantly, quoting strings
// and chars.
func formatPrimitive(v any, char bool) (string, error) {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x), nil
	case string:
		if char {
			return quote(x, '\''), nil
		}
		return quote(x, '"'), nil
	case rune:
		if char {
			return quote(string(x), '\''), nil
		}
		return strconv.FormatInt(int64(x), 10), nil
	case int:
		return strconv.Itoa(x), nil
	case int8:
		return strconv.FormatInt(int64(x), 10), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint8:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'G', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'G', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: primitive value of type %T", ErrUnknownConstantKind, v)
	}
}

var escapes = map[rune]string{
	'\\': `\\`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	0:    `\0`,
}

func quote(s string, delim rune) string {
	var b strings.Builder
	b.WriteRune(delim)
	for _, c := range s {
		switch {
		case c == delim:
			b.WriteRune('\\')
			b.WriteRune(c)
		case escapes[c] != "":
			b.WriteString(escapes[c])
		default:
			b.WriteRune(c)
		}
	}
	b.WriteRune(delim)
	return b.String()
}

// enumValue writes an enum constant as a named member, an OR of flag
// members, or a cast of the raw value.
func (r *Renderer) enumValue(b *builder, c types.TypedConstant, context string) {
	value := int64Of(c.Value)
	fields := enumFields(c.Type.Definition, value)
	if len(fields) == 0 {
		b.punctuation("(")
		r.typeRef(b, c.Type, context)
		b.punctuation(")")
		b.add(types.PartNumericLiteral, enumLiteral(c.Type.Definition, c.Value))
		return
	}
	for i, f := range fields {
		if i > 0 {
			b.space()
			b.punctuation("|")
			b.space()
		}
		r.typeRef(b, c.Type, context)
		b.punctuation(".")
		b.addSymbol(types.PartEnumMemberName, f.Name, f)
	}
}

// enumFields returns the members of enum whose values make up value: the
// first member equal to value, or for flags enums the set of flag members
// that ORs to value, ordered by value. It returns nil when neither exists.
func enumFields(enum *types.NamedType, value int64) []*types.Field {
	if enum == nil {
		return nil
	}
	var candidates []*types.Field
	for _, f := range enum.Fields() {
		if f.Constant == nil {
			continue
		}
		v := int64Of(f.Constant.Value)
		if v == value {
			return []*types.Field{f}
		}
		if v != 0 {
			candidates = append(candidates, f)
		}
	}
	if !enum.IsFlagsEnum() || value == 0 {
		return nil
	}

	// Largest first, comparing bit patterns so unsigned flags above
	// MaxInt64 sort high.
	slices.SortStableFunc(candidates, func(a, b *types.Field) int {
		va, vb := uint64(int64Of(a.Constant.Value)), uint64(int64Of(b.Constant.Value))
		return cmp.Compare(vb, va)
	})

	var chosen []*types.Field
	remaining := value
	for _, f := range candidates {
		v := int64Of(f.Constant.Value)
		if v&remaining == v {
			chosen = append(chosen, f)
			remaining &^= v
		}
	}
	if remaining != 0 {
		return nil
	}
	slices.Reverse(chosen)
	return chosen
}

// enumLiteral formats an enum value. Values are unsigned when the enum's
// underlying type is or the value itself is.
func enumLiteral(enum *types.NamedType, v any) string {
	n := int64Of(v)
	if enum != nil && enum.EnumUnderlying != nil && enum.EnumUnderlying.Special.IsUnsigned() {
		return strconv.FormatUint(uint64(n), 10)
	}
	switch v.(type) {
	case uint64, uint32, uint16, uint8:
		return strconv.FormatUint(uint64(n), 10)
	}
	return strconv.FormatInt(n, 10)
}

func int64Of(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int8:
		return int64(n)
	case uint64:
		return int64(n)
	case uint32:
		return int64(n)
	case uint16:
		return int64(n)
	case uint8:
		return int64(n)
	default:
		return 0
	}
}
