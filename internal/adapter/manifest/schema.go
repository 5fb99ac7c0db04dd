// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package manifest builds the symbol graph from a declarative description
// of assemblies written in YAML, TOML or JSON.
//
// Type references are written in source syntax: "int", "string[]",
// "Acme.Box<T>", "Acme.Outer+Inner", "(int, string)", "int?". Unqualified
// names resolve to a type declared anywhere in the document, then to a type
// parameter in scope, then to a keyword alias.
package manifest

// Document is the root of a manifest file.
type Document struct {
	Assemblies []AssemblySpec `yaml:"assemblies" toml:"assemblies" json:"assemblies"`
}

// AssemblySpec declares one assembly.
type AssemblySpec struct {
	Name       string          `yaml:"name" toml:"name" json:"name"`
	Version    string          `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty"`
	Attributes []AttributeSpec `yaml:"attributes,omitempty" toml:"attributes,omitempty" json:"attributes,omitempty"`
	Namespaces []NamespaceSpec `yaml:"namespaces" toml:"namespaces" json:"namespaces"`
}

// NamespaceSpec groups the top-level types of one namespace. An empty name
// is the global namespace.
type NamespaceSpec struct {
	Name  string     `yaml:"name" toml:"name" json:"name"`
	Types []TypeSpec `yaml:"types" toml:"types" json:"types"`
}

// TypeSpec declares a class, struct, interface, enum or delegate.
type TypeSpec struct {
	Kind           string              `yaml:"kind" toml:"kind" json:"kind"`
	Name           string              `yaml:"name" toml:"name" json:"name"`
	Access         string              `yaml:"access,omitempty" toml:"access,omitempty" json:"access,omitempty"`
	Modifiers      []string            `yaml:"modifiers,omitempty" toml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Implicit       bool                `yaml:"implicit,omitempty" toml:"implicit,omitempty" json:"implicit,omitempty"`
	TypeParameters []TypeParameterSpec `yaml:"typeParameters,omitempty" toml:"typeParameters,omitempty" json:"typeParameters,omitempty"`
	Base           string              `yaml:"base,omitempty" toml:"base,omitempty" json:"base,omitempty"`
	Interfaces     []string            `yaml:"interfaces,omitempty" toml:"interfaces,omitempty" json:"interfaces,omitempty"`
	Underlying     string              `yaml:"underlying,omitempty" toml:"underlying,omitempty" json:"underlying,omitempty"` // Enum underlying type
	Returns        string              `yaml:"returns,omitempty" toml:"returns,omitempty" json:"returns,omitempty"`          // Delegate return type
	Parameters     []ParameterSpec     `yaml:"parameters,omitempty" toml:"parameters,omitempty" json:"parameters,omitempty"` // Delegate parameters
	Attributes     []AttributeSpec     `yaml:"attributes,omitempty" toml:"attributes,omitempty" json:"attributes,omitempty"`
	Members        []MemberSpec        `yaml:"members,omitempty" toml:"members,omitempty" json:"members,omitempty"`
	Types          []TypeSpec          `yaml:"types,omitempty" toml:"types,omitempty" json:"types,omitempty"` // Nested types
}

// TypeParameterSpec declares a generic type parameter. Constraints are
// "class", "struct", "unmanaged", "notnull", "new()" or a type.
type TypeParameterSpec struct {
	Name        string          `yaml:"name" toml:"name" json:"name"`
	Variance    string          `yaml:"variance,omitempty" toml:"variance,omitempty" json:"variance,omitempty"`
	Constraints []string        `yaml:"constraints,omitempty" toml:"constraints,omitempty" json:"constraints,omitempty"`
	Attributes  []AttributeSpec `yaml:"attributes,omitempty" toml:"attributes,omitempty" json:"attributes,omitempty"`
}

// MemberSpec declares a member. Kind is one of field, const, constructor,
// method, property, indexer, event, operator, conversion or member (an
// enum member).
type MemberSpec struct {
	Kind               string                     `yaml:"kind" toml:"kind" json:"kind"`
	Name               string                     `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
	Access             string                     `yaml:"access,omitempty" toml:"access,omitempty" json:"access,omitempty"`
	Modifiers          []string                   `yaml:"modifiers,omitempty" toml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Implicit           bool                       `yaml:"implicit,omitempty" toml:"implicit,omitempty" json:"implicit,omitempty"`
	Type               string                     `yaml:"type,omitempty" toml:"type,omitempty" json:"type,omitempty"` // Member type, return type or conversion target
	Value              any                        `yaml:"value,omitempty" toml:"value,omitempty" json:"value,omitempty"`
	Operator           string                     `yaml:"operator,omitempty" toml:"operator,omitempty" json:"operator,omitempty"`
	TypeParameters     []TypeParameterSpec        `yaml:"typeParameters,omitempty" toml:"typeParameters,omitempty" json:"typeParameters,omitempty"`
	Parameters         []ParameterSpec            `yaml:"parameters,omitempty" toml:"parameters,omitempty" json:"parameters,omitempty"`
	Accessors          string                     `yaml:"accessors,omitempty" toml:"accessors,omitempty" json:"accessors,omitempty"` // e.g. "get; private set"
	AccessorAttributes map[string][]AttributeSpec `yaml:"accessorAttributes,omitempty" toml:"accessorAttributes,omitempty" json:"accessorAttributes,omitempty"`
	Attributes         []AttributeSpec            `yaml:"attributes,omitempty" toml:"attributes,omitempty" json:"attributes,omitempty"`
}

// ParameterSpec declares a parameter. A parameter with a default value, or
// marked optional, renders with "= value"; an optional parameter without a
// value defaults to null or default(T).
type ParameterSpec struct {
	Name       string          `yaml:"name" toml:"name" json:"name"`
	Type       string          `yaml:"type" toml:"type" json:"type"`
	Ref        string          `yaml:"ref,omitempty" toml:"ref,omitempty" json:"ref,omitempty"` // ref, out, in, params or this
	Optional   bool            `yaml:"optional,omitempty" toml:"optional,omitempty" json:"optional,omitempty"`
	Default    any             `yaml:"default,omitempty" toml:"default,omitempty" json:"default,omitempty"`
	Attributes []AttributeSpec `yaml:"attributes,omitempty" toml:"attributes,omitempty" json:"attributes,omitempty"`
}

// AttributeSpec applies an attribute. Args and Named values are scalars or
// one of the tagged forms {typeof: T}, {enum: T, value: n},
// {array: T, values: [...]} and {type: T, value: v}.
type AttributeSpec struct {
	Type  string         `yaml:"type" toml:"type" json:"type"`
	Args  []any          `yaml:"args,omitempty" toml:"args,omitempty" json:"args,omitempty"`
	Named map[string]any `yaml:"named,omitempty" toml:"named,omitempty" json:"named,omitempty"`
}
