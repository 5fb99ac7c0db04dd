// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package csharp

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/petar-djukic/go-deflist/internal/typeexpr"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

// constant evaluates a constant expression of type t. A zero t infers the
// type from the literal. It reports false for expressions that are not
// compile-time constants the adapter understands.
func (c *converter) constant(f *sourceFile, s typeexpr.Scope, n *sitter.Node, t types.TypeRef) (types.TypedConstant, bool) {
	if n == nil {
		return types.TypedConstant{}, false
	}
	if t.Kind == types.RefNullable && t.Elem != nil && n.Type() != "null_literal" {
		t = *t.Elem
	}
	switch n.Type() {
	case "parenthesized_expression":
		return c.constant(f, s, firstNamed(n), t)
	case "null_literal", "default_expression":
		if n.Type() == "default_expression" && field(n, "type") != nil {
			t = c.typeRef(f, s, field(n, "type"))
		}
		return types.TypedConstant{Kind: types.ConstantPrimitive, Type: t}, true
	case "boolean_literal":
		return types.BoolConstant(text(n, f.src) == "true"), true
	case "string_literal", "verbatim_string_literal", "raw_string_literal":
		str, ok := stringLiteral(text(n, f.src))
		return types.StringConstant(str), ok
	case "character_literal":
		str := unescape(unquote(text(n, f.src)))
		r, size := utf8.DecodeRuneInString(str)
		if size == 0 {
			return types.TypedConstant{}, false
		}
		return types.Primitive(types.SpecialChar, r), true
	case "integer_literal", "real_literal":
		v, st, ok := numberLiteral(text(n, f.src))
		if !ok {
			return types.TypedConstant{}, false
		}
		return numeric(v, st, t), true
	case "prefix_unary_expression":
		op := strings.TrimSpace(text(n, f.src))[:1]
		inner, ok := c.constant(f, s, lastNamed(n), t)
		if !ok || inner.Kind == types.ConstantType || inner.Kind == types.ConstantArray {
			return types.TypedConstant{}, false
		}
		return negate(inner, op)
	case "typeof_expression":
		tn := field(n, "type")
		if tn == nil {
			tn = firstNamed(n)
		}
		return types.TypeOfConstant(c.typeRef(f, s, tn)), tn != nil
	case "cast_expression":
		return c.constant(f, s, field(n, "value"), c.typeRef(f, s, field(n, "type")))
	case "member_access_expression":
		return c.enumMember(f, s, n)
	case "array_creation_expression", "implicit_array_creation_expression":
		elem := types.Special(types.SpecialObject)
		if t.Kind == types.RefArray && t.Elem != nil {
			elem = *t.Elem
		}
		if tn := field(n, "type"); tn != nil {
			if at := c.typeRef(f, s, tn); at.Kind == types.RefArray && at.Elem != nil {
				elem = *at.Elem
			}
		}
		init := childOfType(n, "initializer_expression")
		if init == nil {
			return types.ArrayConstant(elem), true
		}
		return c.array(f, s, init, elem)
	case "initializer_expression":
		elem := types.Special(types.SpecialObject)
		if t.Kind == types.RefArray && t.Elem != nil {
			elem = *t.Elem
		}
		return c.array(f, s, n, elem)
	}
	return types.TypedConstant{}, false
}

func (c *converter) array(f *sourceFile, s typeexpr.Scope, init *sitter.Node, elem types.TypeRef) (types.TypedConstant, bool) {
	var values []types.TypedConstant
	for _, e := range namedChildren(init) {
		v, ok := c.constant(f, s, e, elem)
		if !ok {
			return types.TypedConstant{}, false
		}
		values = append(values, v)
	}
	return types.ArrayConstant(elem, values...), true
}

// enumMember evaluates a qualified reference to an enum member declared
// in the sources, such as Mode.On.
func (c *converter) enumMember(f *sourceFile, s typeexpr.Scope, n *sitter.Node) (types.TypedConstant, bool) {
	expr, name := field(n, "expression"), field(n, "name")
	if expr == nil || name == nil {
		return types.TypedConstant{}, false
	}
	ref, err := s.Parse(text(expr, f.src))
	if err != nil {
		return types.TypedConstant{}, false
	}
	values, ok := c.enums[ref.QualifiedName()]
	if !ok {
		return types.TypedConstant{}, false
	}
	v, ok := values[text(name, f.src)]
	if !ok {
		return types.TypedConstant{}, false
	}
	ref.TypeKind = types.TypeKindEnum
	return types.EnumConstant(ref, v), true
}

// numeric converts a literal value to the target type t.
func numeric(v any, st types.SpecialType, t types.TypeRef) types.TypedConstant {
	if t.Kind == types.RefNamed && t.Special == types.SpecialNone && t.TypeKind == types.TypeKindEnum {
		return types.EnumConstant(t, toInt64(v))
	}
	switch t.Special {
	case types.SpecialSingle, types.SpecialDouble, types.SpecialDecimal:
		return types.Primitive(t.Special, toFloat64(v))
	case types.SpecialUInt64:
		return types.Primitive(t.Special, uint64(toInt64(v)))
	case types.SpecialSByte, types.SpecialByte, types.SpecialInt16, types.SpecialUInt16,
		types.SpecialInt32, types.SpecialUInt32, types.SpecialInt64:
		if _, isFloat := v.(float64); !isFloat {
			return types.Primitive(t.Special, toInt64(v))
		}
	}
	if u, ok := v.(uint64); ok && st != types.SpecialUInt64 {
		return types.Primitive(st, int64(u))
	}
	return types.Primitive(st, v)
}

func negate(c types.TypedConstant, op string) (types.TypedConstant, bool) {
	switch v := c.Value.(type) {
	case int64:
		switch op {
		case "-":
			c.Value = -v
		case "~":
			c.Value = ^v
		case "+":
		default:
			return c, false
		}
	case uint64:
		if op != "-" || v > math.MaxInt64 {
			return c, false
		}
		c.Value = -int64(v)
	case float64:
		if op != "-" {
			return c, op == "+"
		}
		c.Value = -v
	default:
		return c, false
	}
	return c, true
}

// numberLiteral parses an integer or real literal with its type suffix.
// Integers without a suffix take the first of int, uint, long and ulong
// that holds the value.
func numberLiteral(lit string) (any, types.SpecialType, bool) {
	s := strings.ToLower(strings.ReplaceAll(lit, "_", ""))
	hex := strings.HasPrefix(s, "0x")
	if !hex && (strings.ContainsAny(s, ".e") || strings.HasSuffix(s, "f") || strings.HasSuffix(s, "d") || strings.HasSuffix(s, "m")) {
		st := types.SpecialDouble
		switch s[len(s)-1] {
		case 'f':
			st = types.SpecialSingle
		case 'm':
			st = types.SpecialDecimal
		}
		f, err := strconv.ParseFloat(strings.TrimRight(s, "fdm"), 64)
		return f, st, err == nil
	}

	digits := strings.TrimRight(s, "ul")
	suffix := s[len(digits):]
	base := 10
	switch {
	case hex:
		digits, base = digits[2:], 16
	case strings.HasPrefix(digits, "0b"):
		digits, base = digits[2:], 2
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return nil, 0, false
	}
	unsigned, long := strings.Contains(suffix, "u"), strings.Contains(suffix, "l")
	switch {
	case !unsigned && !long && u <= math.MaxInt32:
		return int64(u), types.SpecialInt32, true
	case !long && u <= math.MaxUint32:
		return int64(u), types.SpecialUInt32, true
	case !unsigned && u <= math.MaxInt64:
		return int64(u), types.SpecialInt64, true
	default:
		return u, types.SpecialUInt64, true
	}
}

// evalInt evaluates an integer expression for enum member values. Names
// refer to earlier members of the same enum.
func evalInt(n *sitter.Node, src []byte, enum string, members map[string]int64) (int64, bool) {
	if n == nil {
		return 0, false
	}
	switch n.Type() {
	case "integer_literal":
		v, _, ok := numberLiteral(text(n, src))
		if !ok {
			return 0, false
		}
		return toInt64(v), true
	case "character_literal":
		r, _ := utf8.DecodeRuneInString(unescape(unquote(text(n, src))))
		return int64(r), true
	case "parenthesized_expression":
		return evalInt(firstNamed(n), src, enum, members)
	case "cast_expression":
		return evalInt(field(n, "value"), src, enum, members)
	case "identifier":
		v, ok := members[text(n, src)]
		return v, ok
	case "member_access_expression":
		if e := field(n, "expression"); e != nil && text(e, src) == enum {
			v, ok := members[text(field(n, "name"), src)]
			return v, ok
		}
	case "prefix_unary_expression":
		v, ok := evalInt(lastNamed(n), src, enum, members)
		switch strings.TrimSpace(text(n, src))[:1] {
		case "-":
			return -v, ok
		case "~":
			return ^v, ok
		case "+":
			return v, ok
		}
	case "binary_expression":
		l, lok := evalInt(field(n, "left"), src, enum, members)
		r, rok := evalInt(field(n, "right"), src, enum, members)
		if !lok || !rok {
			return 0, false
		}
		return binary(operatorOf(n, src), l, r)
	}
	return 0, false
}

func binary(op string, l, r int64) (int64, bool) {
	switch op {
	case "|":
		return l | r, true
	case "&":
		return l & r, true
	case "^":
		return l ^ r, true
	case "<<":
		return l << uint64(r), r >= 0
	case ">>":
		return l >> uint64(r), r >= 0
	case "+":
		return l + r, true
	case "-":
		return l - r, true
	case "*":
		return l * r, true
	case "/":
		if r == 0 {
			return 0, false
		}
		return l / r, true
	}
	return 0, false
}

// operatorOf returns the operator token of a binary expression.
func operatorOf(n *sitter.Node, src []byte) string {
	if op := field(n, "operator"); op != nil {
		return text(op, src)
	}
	for i := range int(n.ChildCount()) {
		if ch := n.Child(i); !ch.IsNamed() {
			return ch.Type()
		}
	}
	return ""
}

// stringLiteral decodes a regular, verbatim or raw string literal.
func stringLiteral(lit string) (string, bool) {
	switch {
	case strings.HasPrefix(lit, `"""`):
		n := len(lit) - len(strings.TrimLeft(lit, `"`))
		if len(lit) < 2*n {
			return "", false
		}
		body := lit[n : len(lit)-n]
		if lines := strings.Split(body, "\n"); len(lines) > 2 {
			body = strings.Join(lines[1:len(lines)-1], "\n")
		}
		return body, true
	case strings.HasPrefix(lit, `@"`):
		return strings.ReplaceAll(lit[2:len(lit)-1], `""`, `"`), true
	case strings.HasPrefix(lit, `"`) && len(lit) >= 2:
		return unescape(lit[1 : len(lit)-1]), true
	}
	return "", false
}

// unquote strips the delimiters of a character literal.
func unquote(lit string) string {
	if len(lit) < 2 {
		return ""
	}
	return lit[1 : len(lit)-1]
}

// unescape decodes the escape sequences of a regular string or character
// literal.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case '0':
			b.WriteByte(0)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case 'u', 'U', 'x':
			width := map[byte]int{'u': 4, 'U': 8, 'x': 4}[s[i]]
			j := i + 1
			for j < len(s) && j < i+1+width && isHex(s[j]) {
				j++
			}
			if r, err := strconv.ParseUint(s[i+1:j], 16, 32); err == nil && j > i+1 {
				b.WriteRune(rune(r))
				i = j - 1
				continue
			}
			b.WriteByte(s[i])
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	case rune:
		return int64(n)
	}
	return 0
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}
