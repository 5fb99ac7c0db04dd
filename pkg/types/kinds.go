// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// SymbolKind identifies the variant of a Symbol.
type SymbolKind int

const (
	KindNamespace SymbolKind = iota // Namespace
	KindNamedType                   // Class, struct, interface, enum or delegate
	KindMethod                      // Method, constructor, operator or accessor
	KindProperty                    // Property or indexer
	KindField                       // Field, constant or enum member
	KindEvent                       // Event
)

// String returns the human-readable name of the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case KindNamespace:
		return "Namespace"
	case KindNamedType:
		return "NamedType"
	case KindMethod:
		return "Method"
	case KindProperty:
		return "Property"
	case KindField:
		return "Field"
	case KindEvent:
		return "Event"
	default:
		return "Unknown"
	}
}

// TypeKind identifies the declaration form of a named type.
type TypeKind int

const (
	TypeKindClass TypeKind = iota
	TypeKindStruct
	TypeKindInterface
	TypeKindEnum
	TypeKindDelegate
)

func (k TypeKind) String() string {
	switch k {
	case TypeKindClass:
		return "class"
	case TypeKindStruct:
		return "struct"
	case TypeKindInterface:
		return "interface"
	case TypeKindEnum:
		return "enum"
	case TypeKindDelegate:
		return "delegate"
	default:
		return "unknown"
	}
}

// IsValueType reports whether values of the kind are copied by value.
func (k TypeKind) IsValueType() bool {
	return k == TypeKindStruct || k == TypeKindEnum
}

// MethodKind identifies the role of a method symbol.
type MethodKind int

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
	MethodStaticConstructor
	MethodDestructor
	MethodConversion
	MethodOperator
	MethodPropertyGet
	MethodPropertySet
	MethodEventAdd
	MethodEventRemove
	MethodEventRaise
	MethodExplicitInterfaceImplementation
	MethodDelegateInvoke
)

func (k MethodKind) String() string {
	switch k {
	case MethodOrdinary:
		return "Ordinary"
	case MethodConstructor:
		return "Constructor"
	case MethodStaticConstructor:
		return "StaticConstructor"
	case MethodDestructor:
		return "Destructor"
	case MethodConversion:
		return "Conversion"
	case MethodOperator:
		return "UserDefinedOperator"
	case MethodPropertyGet:
		return "PropertyGet"
	case MethodPropertySet:
		return "PropertySet"
	case MethodEventAdd:
		return "EventAdd"
	case MethodEventRemove:
		return "EventRemove"
	case MethodEventRaise:
		return "EventRaise"
	case MethodExplicitInterfaceImplementation:
		return "ExplicitInterfaceImplementation"
	case MethodDelegateInvoke:
		return "DelegateInvoke"
	default:
		return "Unknown"
	}
}

// IsAccessor reports whether the method belongs to a property or event.
func (k MethodKind) IsAccessor() bool {
	switch k {
	case MethodPropertyGet, MethodPropertySet, MethodEventAdd, MethodEventRemove, MethodEventRaise:
		return true
	}
	return false
}

// Accessibility is the accessibility a symbol was declared with.
type Accessibility int

const (
	AccessNotApplicable Accessibility = iota
	AccessPrivate
	AccessProtectedAndInternal // private protected
	AccessProtected
	AccessInternal
	AccessProtectedOrInternal // protected internal
	AccessPublic
)

// Keywords returns the source keywords for the accessibility.
func (a Accessibility) Keywords() []string {
	switch a {
	case AccessPrivate:
		return []string{"private"}
	case AccessProtectedAndInternal:
		return []string{"private", "protected"}
	case AccessProtected:
		return []string{"protected"}
	case AccessInternal:
		return []string{"internal"}
	case AccessProtectedOrInternal:
		return []string{"protected", "internal"}
	case AccessPublic:
		return []string{"public"}
	default:
		return nil
	}
}

func (a Accessibility) String() string {
	switch a {
	case AccessNotApplicable:
		return "NotApplicable"
	case AccessPrivate:
		return "Private"
	case AccessProtectedAndInternal:
		return "ProtectedAndInternal"
	case AccessProtected:
		return "Protected"
	case AccessInternal:
		return "Internal"
	case AccessProtectedOrInternal:
		return "ProtectedOrInternal"
	case AccessPublic:
		return "Public"
	default:
		return "Unknown"
	}
}

// Visibility is the effective accessibility tier of a symbol, taking its
// containing types into account.
type Visibility int

const (
	VisibilityNotApplicable Visibility = iota
	VisibilityPrivate
	VisibilityInternal
	VisibilityPublic
)

func (v Visibility) String() string {
	switch v {
	case VisibilityNotApplicable:
		return "NotApplicable"
	case VisibilityPrivate:
		return "Private"
	case VisibilityInternal:
		return "Internal"
	case VisibilityPublic:
		return "Public"
	default:
		return "Unknown"
	}
}

// Modifiers is a set of declaration modifiers.
type Modifiers uint32

const (
	ModStatic Modifiers = 1 << iota
	ModAbstract
	ModVirtual
	ModOverride
	ModSealed
	ModReadOnly
	ModConst
	ModVolatile
	ModExtern
	ModImplicit // conversion operator is implicit rather than explicit
	ModRef      // ref struct
)

// Has reports whether all modifiers in m2 are set.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// RefKind describes how a parameter is passed.
type RefKind int

const (
	RefNone RefKind = iota
	RefRef
	RefOut
	RefIn
	RefParams
	RefThis // first parameter of an extension method
)

// Keyword returns the parameter modifier keyword, or "" for RefNone.
func (k RefKind) Keyword() string {
	switch k {
	case RefRef:
		return "ref"
	case RefOut:
		return "out"
	case RefIn:
		return "in"
	case RefParams:
		return "params"
	case RefThis:
		return "this"
	default:
		return ""
	}
}

// Variance of a generic type parameter.
type Variance int

const (
	VarianceNone Variance = iota
	VarianceIn
	VarianceOut
)
