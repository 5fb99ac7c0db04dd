// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package display

import (
	"slices"
	"strings"

	"github.com/petar-djukic/go-deflist/internal/options"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

// hiddenAttributes are compiler infrastructure attributes that never
// appear in a definition list.
var hiddenAttributes = map[string]struct{}{
	"System.ParamArrayAttribute":                                      {},
	"System.Diagnostics.DebuggableAttribute":                          {},
	"System.Diagnostics.DebuggerHiddenAttribute":                      {},
	"System.Diagnostics.DebuggerNonUserCodeAttribute":                 {},
	"System.Diagnostics.DebuggerStepThroughAttribute":                 {},
	"System.Reflection.DefaultMemberAttribute":                        {},
	"System.Runtime.CompilerServices.AsyncStateMachineAttribute":      {},
	"System.Runtime.CompilerServices.CompilationRelaxationsAttribute": {},
	"System.Runtime.CompilerServices.CompilerGeneratedAttribute":      {},
	"System.Runtime.CompilerServices.DynamicAttribute":                {},
	"System.Runtime.CompilerServices.ExtensionAttribute":              {},
	"System.Runtime.CompilerServices.IsByRefLikeAttribute":            {},
	"System.Runtime.CompilerServices.IsReadOnlyAttribute":             {},
	"System.Runtime.CompilerServices.IsUnmanagedAttribute":            {},
	"System.Runtime.CompilerServices.IteratorStateMachineAttribute":   {},
	"System.Runtime.CompilerServices.NullableAttribute":               {},
	"System.Runtime.CompilerServices.NullableContextAttribute":        {},
	"System.Runtime.CompilerServices.NullablePublicOnlyAttribute":     {},
	"System.Runtime.CompilerServices.RuntimeCompatibilityAttribute":   {},
	"System.Runtime.CompilerServices.TupleElementNamesAttribute":      {},
	"System.Runtime.Versioning.TargetFrameworkAttribute":              {},
}

// ShouldBeDisplayed is the default attribute filter: the attribute type
// must be public and must not be compiler infrastructure.
func ShouldBeDisplayed(attributeType types.TypeRef) bool {
	if def := attributeType.Definition; def != nil && options.EffectiveVisibility(def) != types.VisibilityPublic {
		return false
	}
	_, hidden := hiddenAttributes[attributeType.MetadataName()]
	return !hidden
}

// attributeMode controls the layout of an attribute list.
type attributeMode struct {
	split    bool // One bracket group per attribute
	newLine  bool // Line break after each group; a space otherwise
	assembly bool // Prefix each group with the assembly target
}

// visibleAttributes filters attrs and sorts them by their displayed type
// name.
func (r *Renderer) visibleAttributes(attrs []types.Attribute, context string) []types.Attribute {
	var visible []types.Attribute
	for _, a := range attrs {
		if r.isVisibleAttribute(a.Type) {
			visible = append(visible, a)
		}
	}
	slices.SortStableFunc(visible, func(a, b types.Attribute) int {
		return strings.Compare(r.typeRefString(a.Type, context), r.typeRefString(b.Type, context))
	})
	return visible
}

// attributeList renders the visible attributes of attrs. It returns no parts
// when none is visible. With newLine unset the caller separates the list
// from what follows.
func (r *Renderer) attributeList(attrs []types.Attribute, context string, mode attributeMode) (types.Parts, error) {
	visible := r.visibleAttributes(attrs, context)
	if len(visible) == 0 {
		return nil, nil
	}

	var b builder
	open := func() {
		b.punctuation("[")
		if mode.assembly {
			b.keyword("assembly")
			b.punctuation(":")
			b.space()
		}
	}

	open()
	for i, a := range visible {
		if i > 0 {
			if mode.split {
				b.punctuation("]")
				if mode.newLine {
					b.lineBreak()
				} else {
					b.space()
				}
				open()
			} else {
				b.punctuation(",")
				b.space()
			}
		}
		r.typeRefTrimmed(&b, a.Type, context, true)
		if r.opts.IncludeAttributeArguments() {
			if err := r.attributeArguments(&b, a, context); err != nil {
				return nil, err
			}
		}
	}
	b.punctuation("]")
	if mode.newLine {
		b.lineBreak()
	}
	return b.parts, nil
}

func (r *Renderer) attributeArguments(b *builder, a types.Attribute, context string) error {
	if len(a.ConstructorArgs) == 0 && len(a.NamedArgs) == 0 {
		return nil
	}
	b.punctuation("(")
	for i, arg := range a.ConstructorArgs {
		if i > 0 {
			b.punctuation(",")
			b.space()
		}
		if err := r.constant(b, arg, context); err != nil {
			return err
		}
	}
	for i, arg := range a.NamedArgs {
		if i > 0 || len(a.ConstructorArgs) > 0 {
			b.punctuation(",")
			b.space()
		}
		b.add(types.PartPropertyName, arg.Name)
		b.space()
		b.punctuation("=")
		b.space()
		if err := r.constant(b, arg.Value, context); err != nil {
			return err
		}
	}
	b.punctuation(")")
	return nil
}

// hasVisibleAttributes reports whether any of attrs passes the filter.
func (r *Renderer) hasVisibleAttributes(attrs []types.Attribute) bool {
	return slices.ContainsFunc(attrs, func(a types.Attribute) bool { return r.isVisibleAttribute(a.Type) })
}
