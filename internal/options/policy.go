// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package options

import (
	"errors"
	"fmt"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

// ErrUnknownVisibility is returned for a symbol whose effective visibility
// is outside Public, Internal and Private. It means the adapter produced a
// symbol without a declared accessibility.
var ErrUnknownVisibility = errors.New("unknown visibility")

// VisibilityOf maps a declared accessibility to its visibility tier.
func VisibilityOf(a types.Accessibility) types.Visibility {
	switch a {
	case types.AccessPrivate:
		return types.VisibilityPrivate
	case types.AccessInternal, types.AccessProtectedAndInternal:
		return types.VisibilityInternal
	case types.AccessProtected, types.AccessProtectedOrInternal, types.AccessPublic:
		return types.VisibilityPublic
	default:
		return types.VisibilityNotApplicable
	}
}

// EffectiveVisibility returns the most restrictive visibility along the
// chain of sym and its containing types. Namespaces are always public.
func EffectiveVisibility(sym types.Symbol) types.Visibility {
	if sym.Kind() == types.KindNamespace {
		return types.VisibilityPublic
	}
	vis := VisibilityOf(sym.Info().Accessibility)
	for c := sym.Info().Containing; c != nil && vis != types.VisibilityNotApplicable; c = c.Containing {
		if cv := VisibilityOf(c.Accessibility); cv < vis {
			vis = cv
		}
	}
	return vis
}

// IsVisible reports whether the effective visibility of sym is in the
// configured set.
func (o *Options) IsVisible(sym types.Symbol) (bool, error) {
	switch v := EffectiveVisibility(sym); v {
	case types.VisibilityPrivate, types.VisibilityInternal, types.VisibilityPublic:
		return o.visible[v], nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownVisibility, types.QualifiedName(sym))
	}
}

// ShouldBeIgnored reports whether the metadata name of sym is in the
// ignored list or sym carries an ignored attribute. Matching is exact.
func (o *Options) ShouldBeIgnored(sym types.Symbol) bool {
	if _, ok := o.ignoredNames[types.MetadataName(sym)]; ok {
		return true
	}
	return o.HasIgnoredAttribute(sym)
}

// HasIgnoredAttribute reports whether sym carries an attribute whose type
// is in the ignored attribute list. Namespaces never match.
func (o *Options) HasIgnoredAttribute(sym types.Symbol) bool {
	if sym.Kind() == types.KindNamespace || len(o.ignoredAttrs) == 0 {
		return false
	}
	for _, a := range sym.Info().Attributes {
		if _, ok := o.ignoredAttrs[a.Type.MetadataName()]; ok {
			return true
		}
	}
	return false
}
