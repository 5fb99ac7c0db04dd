// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package display

import "github.com/petar-djukic/go-deflist/pkg/types"

// builder accumulates display parts.
type builder struct {
	parts types.Parts
}

func (b *builder) add(kind types.PartKind, text string) {
	b.parts = append(b.parts, types.Part{Kind: kind, Text: text})
}

// addSymbol appends a part that refers back to sym.
func (b *builder) addSymbol(kind types.PartKind, text string, sym types.Symbol) {
	b.parts = append(b.parts, types.Part{Kind: kind, Text: text, Symbol: sym})
}

func (b *builder) keyword(text string)     { b.add(types.PartKeyword, text) }
func (b *builder) punctuation(text string) { b.add(types.PartPunctuation, text) }
func (b *builder) space()                  { b.add(types.PartSpace, " ") }
func (b *builder) lineBreak()              { b.add(types.PartLineBreak, "\n") }

func (b *builder) indentation(chars string) { b.add(types.PartIndentation, chars) }

// modifier appends a keyword followed by a space.
func (b *builder) modifier(word string) {
	b.keyword(word)
	b.space()
}

func (b *builder) keywords(words []string) {
	for _, w := range words {
		b.keyword(w)
		b.space()
	}
}

// trimTrailingSpace drops a trailing space part.
func (b *builder) trimTrailingSpace() {
	if n := len(b.parts); n > 0 && b.parts[n-1].Kind == types.PartSpace {
		b.parts = b.parts[:n-1]
	}
}

func (b *builder) append(parts ...types.Part) {
	b.parts = append(b.parts, parts...)
}

// insert returns parts with ins inserted at index i.
func insert(parts types.Parts, i int, ins ...types.Part) types.Parts {
	out := make(types.Parts, 0, len(parts)+len(ins))
	out = append(out, parts[:i]...)
	out = append(out, ins...)
	return append(out, parts[i:]...)
}

func spacePart() types.Part { return types.Part{Kind: types.PartSpace, Text: " "} }

func typeNamePartKind(k types.TypeKind) types.PartKind {
	switch k {
	case types.TypeKindStruct:
		return types.PartStructName
	case types.TypeKindInterface:
		return types.PartInterfaceName
	case types.TypeKindEnum:
		return types.PartEnumName
	case types.TypeKindDelegate:
		return types.PartDelegateName
	default:
		return types.PartClassName
	}
}
