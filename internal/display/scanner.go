// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package display

import "github.com/petar-djukic/go-deflist/pkg/types"

// Scanner tracks bracket nesting over a part stream. Only punctuation parts
// move the counters, so brackets inside literals are ignored.
type Scanner struct {
	Parens   int
	Brackets int
	Braces   int
	Angles   int
}

// Step updates the counters for p.
func (s *Scanner) Step(p types.Part) {
	if p.Kind != types.PartPunctuation {
		return
	}
	switch p.Text {
	case "(":
		s.Parens++
	case ")":
		s.Parens--
	case "[":
		s.Brackets++
	case "]":
		s.Brackets--
	case "{":
		s.Braces++
	case "}":
		s.Braces--
	case "<":
		s.Angles++
	case ">":
		s.Angles--
	}
}

// AtTop reports whether every counter is zero.
func (s Scanner) AtTop() bool {
	return s == Scanner{}
}

// listTokens returns the open and close punctuation of the parameter list
// of sym: brackets for indexers, parentheses for methods and delegates.
func listTokens(sym types.Symbol) (open, end string, ok bool) {
	switch s := sym.(type) {
	case *types.Method:
		return "(", ")", true
	case *types.NamedType:
		return "(", ")", s.TypeKind == types.TypeKindDelegate
	case *types.Property:
		return "[", "]", s.IsIndexer
	}
	return "", "", false
}

// ParameterList locates the parameter list of sym in parts, ignoring the
// first skip parts. The search starts at the part naming sym, or after the
// target type of a conversion operator, and takes the first opening token
// found at depth zero. It returns the indices of the opening and closing
// tokens; ok is false when either cannot be found.
func ParameterList(sym types.Symbol, parts types.Parts, skip int) (open, end int, ok bool) {
	openTok, _, ok := listTokens(sym)
	if !ok {
		return -1, -1, false
	}

	anchor := -1
	for i := skip; i < len(parts); i++ {
		if parts[i].Symbol == sym {
			anchor = i
			break
		}
	}
	if anchor == -1 {
		return -1, -1, false
	}

	start := anchor
	if m, isMethod := sym.(*types.Method); isMethod && m.MethodKind == types.MethodConversion {
		start = skipTuple(parts, anchor+1)
	}

	open = -1
	var s Scanner
	for i := start; i < len(parts); i++ {
		if s.AtTop() && parts[i].IsPunctuation(openTok) {
			open = i
			break
		}
		s.Step(parts[i])
	}
	if open == -1 {
		return -1, -1, false
	}

	s = Scanner{}
	for i := open; i < len(parts); i++ {
		s.Step(parts[i])
		if s.AtTop() {
			return open, i, true
		}
	}
	return -1, -1, false
}

// skipTuple returns the index after a tuple type starting at or after i,
// or i when the next non-space part does not open one. Conversion operators
// name their target type between the symbol and the parameter list.
func skipTuple(parts types.Parts, i int) int {
	j := i
	for j < len(parts) && parts[j].Kind == types.PartSpace {
		j++
	}
	if j == len(parts) || !parts[j].IsPunctuation("(") {
		return i
	}
	if end := closingParen(parts, j); end != -1 {
		return end + 1
	}
	return len(parts)
}

// separators returns the indices of the commas that separate parameters in
// the list spanning open..end. Each is followed by a space part.
func separators(parts types.Parts, open, end int) []int {
	var s Scanner
	s.Step(parts[open])
	top := s

	var commas []int
	for i := open + 1; i < end; i++ {
		p := parts[i]
		if s == top && p.IsPunctuation(",") && parts[i+1].Kind == types.PartSpace {
			commas = append(commas, i)
		}
		s.Step(p)
	}
	return commas
}

// closingParen returns the index of the parenthesis closing the one at
// open, or -1.
func closingParen(parts types.Parts, open int) int {
	depth := 0
	for i := open; i < len(parts); i++ {
		switch {
		case parts[i].IsPunctuation("("):
			depth++
		case parts[i].IsPunctuation(")"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
