// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "strings"

// PartKind classifies a display part.
type PartKind int

const (
	PartText PartKind = iota
	PartKeyword
	PartPunctuation
	PartSpace
	PartLineBreak
	PartIndentation
	PartNamespaceName
	PartClassName
	PartStructName
	PartInterfaceName
	PartEnumName
	PartDelegateName
	PartTypeParameterName
	PartMethodName
	PartPropertyName
	PartFieldName
	PartConstantName
	PartEnumMemberName
	PartEventName
	PartParameterName
	PartOperator
	PartNumericLiteral
	PartStringLiteral
)

// IsTypeName reports whether the part names a type.
func (k PartKind) IsTypeName() bool {
	switch k {
	case PartClassName, PartStructName, PartInterfaceName, PartEnumName, PartDelegateName, PartTypeParameterName:
		return true
	}
	return false
}

// Part is one typed token of a rendered declaration. Symbol refers back to
// the symbol the token names, if any.
type Part struct {
	Kind   PartKind
	Text   string
	Symbol Symbol
}

func (p Part) String() string { return p.Text }

// IsKeyword reports whether p is the given keyword.
func (p Part) IsKeyword(text string) bool {
	return p.Kind == PartKeyword && p.Text == text
}

// IsPunctuation reports whether p is the given punctuation.
func (p Part) IsPunctuation(text string) bool {
	return p.Kind == PartPunctuation && p.Text == text
}

// Parts is a rendered declaration.
type Parts []Part

// String concatenates the text of all parts.
func (ps Parts) String() string {
	var b strings.Builder
	for _, p := range ps {
		b.WriteString(p.Text)
	}
	return b.String()
}
