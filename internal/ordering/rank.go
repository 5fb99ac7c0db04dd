// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ordering

import (
	"github.com/petar-djukic/go-deflist/internal/invariant"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

// Rank is the declaration-kind rank of a member. Members are listed in
// ascending rank.
type Rank int

const (
	RankConst Rank = iota
	RankField
	RankConstructor
	RankDestructor
	RankIndexer
	RankProperty
	RankMethod
	RankOperator
	RankConversion
	RankEvent
	RankNestedType

	// RankUnknown is the fallback for kinds missing from the table. It
	// sorts last.
	RankUnknown Rank = 99
)

func (r Rank) String() string {
	switch r {
	case RankConst:
		return "const"
	case RankField:
		return "field"
	case RankConstructor:
		return "constructor"
	case RankDestructor:
		return "destructor"
	case RankIndexer:
		return "indexer"
	case RankProperty:
		return "property"
	case RankMethod:
		return "method"
	case RankOperator:
		return "operator"
	case RankConversion:
		return "conversion"
	case RankEvent:
		return "event"
	case RankNestedType:
		return "nested type"
	default:
		return "unknown"
	}
}

// MemberRank returns the declaration-kind rank of a member symbol.
func MemberRank(sym types.Symbol) Rank {
	switch s := sym.(type) {
	case *types.Field:
		if s.IsConst() && !s.IsEnumMember() {
			return RankConst
		}
		return RankField
	case *types.Method:
		switch s.MethodKind {
		case types.MethodConstructor, types.MethodStaticConstructor:
			return RankConstructor
		case types.MethodDestructor:
			return RankDestructor
		case types.MethodOrdinary, types.MethodExplicitInterfaceImplementation, types.MethodDelegateInvoke:
			return RankMethod
		case types.MethodOperator:
			return RankOperator
		case types.MethodConversion:
			return RankConversion
		}
		invariant.Fail("no member rank for method kind %v of %s", s.MethodKind, types.QualifiedName(s))
		return RankUnknown
	case *types.Property:
		if s.IsIndexer {
			return RankIndexer
		}
		return RankProperty
	case *types.Event:
		return RankEvent
	case *types.NamedType:
		return RankNestedType
	}
	invariant.Fail("no member rank for symbol kind %v", sym.Kind())
	return RankUnknown
}

// TypeRank returns the rank of a type kind: class, struct, interface,
// enum, delegate.
func TypeRank(k types.TypeKind) Rank {
	switch k {
	case types.TypeKindClass, types.TypeKindStruct, types.TypeKindInterface, types.TypeKindEnum, types.TypeKindDelegate:
		return Rank(k)
	}
	invariant.Fail("no type rank for type kind %v", k)
	return RankUnknown
}

// accessRank orders public declarations first.
func accessRank(a types.Accessibility) int {
	return int(types.AccessPublic - a)
}
