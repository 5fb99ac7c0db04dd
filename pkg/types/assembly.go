// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"fmt"
	"strings"
)

// Assembly is one top-level program unit: an identity, its attributes and
// the named types it declares.
type Assembly struct {
	Name           string
	Version        string // Dotted version; missing components are zero-filled
	Culture        string // "" renders as neutral
	PublicKeyToken string // "" renders as null
	Attributes     []Attribute

	global     *Namespace
	namespaces map[string]*Namespace
	types      []*NamedType
}

// NewAssembly creates an empty assembly.
func NewAssembly(name, version string) *Assembly {
	return &Assembly{
		Name:       name,
		Version:    version,
		global:     &Namespace{},
		namespaces: make(map[string]*Namespace),
	}
}

// Identity returns the display identity, e.g.
// "Acme, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null".
func (a *Assembly) Identity() string {
	culture := a.Culture
	if culture == "" {
		culture = "neutral"
	}
	token := a.PublicKeyToken
	if token == "" {
		token = "null"
	}
	return fmt.Sprintf("%s, Version=%s, Culture=%s, PublicKeyToken=%s", a.Name, NormalizeVersion(a.Version), culture, token)
}

// NormalizeVersion zero-fills a dotted version to four components.
func NormalizeVersion(v string) string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	var parts []string
	if v != "" {
		parts = strings.Split(v, ".")
	}
	for len(parts) < 4 {
		parts = append(parts, "0")
	}
	return strings.Join(parts[:4], ".")
}

// Global returns the unnamed global namespace.
func (a *Assembly) Global() *Namespace {
	return a.global
}

// Namespace returns the namespace with the given dotted name, creating it
// and its parents on first use. The empty name returns the global namespace.
func (a *Assembly) Namespace(fullName string) *Namespace {
	if fullName == "" {
		return a.global
	}
	if ns, ok := a.namespaces[fullName]; ok {
		return ns
	}
	parent := a.global
	name := fullName
	if i := strings.LastIndexByte(fullName, '.'); i >= 0 {
		parent = a.Namespace(fullName[:i])
		name = fullName[i+1:]
	}
	ns := &Namespace{Decl: Decl{Name: name, Namespace: parent}}
	a.namespaces[fullName] = ns
	return ns
}

// AddType registers top-level types built with TypeBuilder.Build.
func (a *Assembly) AddType(types ...*NamedType) {
	a.types = append(a.types, types...)
}

// Types returns every named type in the assembly, nested types included,
// in declaration order. A nil keep function keeps everything.
func (a *Assembly) Types(keep func(*NamedType) bool) []*NamedType {
	var out []*NamedType
	var visit func(t *NamedType)
	visit = func(t *NamedType) {
		if keep == nil || keep(t) {
			out = append(out, t)
		}
		for _, nested := range t.TypeMembers() {
			visit(nested)
		}
	}
	for _, t := range a.types {
		visit(t)
	}
	return out
}
